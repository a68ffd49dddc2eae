// Утилиты очистки вывода LLM.
package utils

import "strings"

// CleanJsonBlock удаляет markdown-обёртку вокруг JSON.
//
// Модели иногда возвращают аргументы инструмента обёрнутыми в кодовый блок:
//
//	```json
//	{"key": "value"}
//	```
//
// Функция снимает такую обёртку, возвращая чистый JSON. Строка без
// обёртки возвращается как есть.
func CleanJsonBlock(s string) string {
	s = strings.TrimSpace(s)

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```Json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
