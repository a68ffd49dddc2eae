// Реестр (каталог) инструментов и диспетчер вызовов.
package tools

import (
	"context"
	"errors"
	"fmt"
)

// ErrToolNotFound возвращается диспетчером если модель запросила инструмент,
// которого нет в каталоге. Это сигнал о рассинхронизации каталога и схемы,
// поэтому ошибка должна дойти до оркестратора, а не превращаться в текст.
var ErrToolNotFound = errors.New("tool not found")

// Registry — неизменяемый каталог инструментов.
//
// Собирается один раз при старте процесса из наборов доменных инструментов
// и дальше только читается — потокобезопасен без блокировок.
type Registry struct {
	tools map[string]Tool
	order []string // Порядок регистрации для стабильного Definitions()
}

// NewRegistry создает каталог из одного или нескольких наборов инструментов.
//
// Валидирует определение каждого инструмента и уникальность имён.
// Возвращает ошибку если каталог собрать нельзя — это ошибка конфигурации
// процесса, стартовать с неполным каталогом нельзя.
func NewRegistry(toolsets ...[]Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]Tool),
	}

	for _, set := range toolsets {
		for _, tool := range set {
			def := tool.Definition()

			if err := validateToolDefinition(def); err != nil {
				return nil, err
			}
			if _, exists := r.tools[def.Name]; exists {
				return nil, fmt.Errorf("duplicate tool name: %s", def.Name)
			}

			r.tools[def.Name] = tool
			r.order = append(r.order, def.Name)
		}
	}

	return r, nil
}

// validateToolDefinition проверяет что ToolDefinition соответствует
// ожиданиям Function Calling API.
//
// Валидирует:
//   - Name не пустой
//   - Parameters не nil
//   - Parameters.type == "object"
//   - Parameters.required является массивом строк
func validateToolDefinition(def ToolDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	if def.Parameters == nil {
		return fmt.Errorf("tool '%s': parameters cannot be nil", def.Name)
	}

	typeVal, ok := def.Parameters["type"]
	if !ok {
		return fmt.Errorf("tool '%s': parameters must have 'type' field", def.Name)
	}
	typeStr, ok := typeVal.(string)
	if !ok || typeStr != "object" {
		return fmt.Errorf("tool '%s': parameters.type must be 'object', got: %v", def.Name, typeVal)
	}

	if requiredVal, exists := def.Parameters["required"]; exists {
		switch required := requiredVal.(type) {
		case []string:
			// ок
		case []any:
			for i, item := range required {
				if _, ok := item.(string); !ok {
					return fmt.Errorf("tool '%s': parameters.required[%d] must be a string, got: %T", def.Name, i, item)
				}
			}
		default:
			return fmt.Errorf("tool '%s': parameters.required must be an array of strings", def.Name)
		}
	}

	return nil
}

// Get ищет инструмент по имени.
func (r *Registry) Get(name string) (Tool, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return tool, nil
}

// Len возвращает количество инструментов в каталоге.
func (r *Registry) Len() int {
	return len(r.order)
}

// Definitions возвращает список всех определений для отправки в LLM.
//
// Порядок стабилен (порядок регистрации), повторные вызовы дают
// идентичный результат.
func (r *Registry) Definitions() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Execute — диспетчер: находит инструмент по имени и выполняет его.
//
// Неизвестное имя возвращает ErrToolNotFound (обёрнутую, проверять через
// errors.Is). Результат и ошибка найденного инструмента возвращаются без
// переинтерпретации — аргументы диспетчер не валидирует, это контракт
// самого инструмента.
func (r *Registry) Execute(ctx context.Context, name string, argsJSON string, token string) (string, error) {
	tool, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return tool.Execute(ctx, argsJSON, token)
}
