// Интерфейс Tool и структуры определений.

package tools

import "context"

// JSONSchema представляет JSON Schema для параметров инструмента.
//
// Используется вместо interface{} для типобезопасности.
// Формат соответствует JSON Schema specification для Function Calling API.
type JSONSchema map[string]any

// ToolDefinition описывает инструмент для LLM (Function Calling API format).
type ToolDefinition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"` // JSON Schema объекта аргументов
}

// Tool — контракт, который должен реализовать любой инструмент.
//
// Инвариант: Execute никогда не паникует и не пропускает наружу ошибки
// бэкенда, которые модель должна пересказать пользователю — такие ошибки
// возвращаются как обычный текстовый результат. Ошибка (второе значение)
// означает сбой самого инструмента.
type Tool interface {
	// Definition возвращает описание инструмента для LLM.
	Definition() ToolDefinition

	// Execute выполняет логику инструмента.
	// argsJSON — сырой JSON с аргументами, который прислала LLM.
	// token — bearer-токен пользователя, передаётся в бэкенд без изменений.
	// Возвращает результат (обычно JSON или готовую фразу) или ошибку.
	Execute(ctx context.Context, argsJSON string, token string) (string, error)
}
