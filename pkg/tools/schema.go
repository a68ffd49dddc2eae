// Статическое описание параметров и трансляция в JSON Schema.

package tools

import "sort"

// ParamType — примитивный тип параметра инструмента.
type ParamType string

// Поддерживаемые типы параметров.
const (
	TypeNumber  ParamType = "number"
	TypeString  ParamType = "string"
	TypeBoolean ParamType = "boolean"
	TypeEnum    ParamType = "enum" // строка из фиксированного набора значений
)

// Param — статическое описание одного параметра инструмента.
//
// Из списка Param механически выводятся и JSON Schema для модели,
// и список обязательных полей — отдельный ручной список required не
// ведётся, чтобы схема и валидация не расходились.
type Param struct {
	Type        ParamType
	Description string   // Переносится в схему дословно
	Optional    bool     // Явно необязательный параметр
	Default     any      // Значение по умолчанию (наличие делает параметр необязательным)
	Enum        []string // Допустимые значения для TypeEnum
}

// ObjectSchema транслирует список параметров в JSON Schema объекта
// аргументов для Function Calling API.
//
// Правила трансляции:
//   - number → "number", всё остальное (string, boolean, enum) → "string";
//     допустимые значения enum модель видит через description
//   - required — имена параметров без Optional и без Default,
//     отсортированы для детерминизма
//   - пустой список параметров даёт пустые properties и required,
//     это валидная схема
func ObjectSchema(params map[string]Param) JSONSchema {
	properties := make(map[string]any, len(params))
	required := make([]string, 0)

	for name, p := range params {
		field := map[string]any{
			"type": externalType(p.Type),
		}
		if p.Description != "" {
			field["description"] = p.Description
		}
		properties[name] = field

		if !p.Optional && p.Default == nil {
			required = append(required, name)
		}
	}

	sort.Strings(required)

	return JSONSchema{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// externalType возвращает тип поля во внешней схеме.
func externalType(t ParamType) string {
	if t == TypeNumber {
		return "number"
	}
	return "string"
}
