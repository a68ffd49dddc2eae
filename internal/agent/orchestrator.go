// Package agent реализует оркестрацию диалогового хода с инструментами (tools).
//
// Orchestrator обрабатывает один ход диалога:
//   - Загружает историю беседы из внешнего сервиса (best effort)
//   - Отправляет модели контекст вместе с определениями инструментов
//   - Выполняет не более ОДНОГО запрошенного моделью инструмента
//   - Возвращает финальный текстовый ответ модели
//
// Оркестратор не хранит состояние между вызовами: история каждый раз
// перечитывается заново, поэтому Run безопасен для конкурентных вызовов.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ilkoid/inventory-ai/pkg/llm"
	"github.com/ilkoid/inventory-ai/pkg/tools"
	"github.com/ilkoid/inventory-ai/pkg/utils"
)

// Ошибки уровня запроса. Сервер транслирует их в HTTP-статусы.
var (
	// ErrEmptyMessage — пользовательское сообщение пустое или из пробелов.
	ErrEmptyMessage = errors.New("message is required")

	// ErrUnauthorized — bearer-токен отсутствует.
	ErrUnauthorized = errors.New("missing bearer token")
)

// HistorySource загружает историю беседы по её идентификатору.
//
// Реализация: pkg/history.Client.
type HistorySource interface {
	Fetch(ctx context.Context, conversationID int64, token string) ([]llm.Message, error)
}

// Config конфигурация для создания Orchestrator.
type Config struct {
	// LLM — провайдер языковой модели (обязательный)
	LLM llm.Provider

	// Registry — реестр зарегистрированных инструментов (обязательный)
	Registry *tools.Registry

	// History — источник истории беседы (опциональный; nil = без истории)
	History HistorySource

	// SystemPrompt — системный промпт агента
	SystemPrompt string
}

// TurnRequest — один ход диалога.
type TurnRequest struct {
	// Message — текст пользователя
	Message string

	// ConversationID — идентификатор беседы для подгрузки истории.
	// Ноль означает новую беседу без истории.
	ConversationID int64

	// Token — bearer-токен пользователя, прокидывается во все
	// вызовы бэкенда без изменений
	Token string
}

// Orchestrator — stateless-оркестратор одного хода диалога.
type Orchestrator struct {
	llm          llm.Provider
	registry     *tools.Registry
	history      HistorySource
	systemPrompt string
}

// New создаёт новый Orchestrator с заданной конфигурацией.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.LLM == nil {
		return nil, fmt.Errorf("cfg.LLM is required")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("cfg.Registry is required")
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt()
	}

	return &Orchestrator{
		llm:          cfg.LLM,
		registry:     cfg.Registry,
		history:      cfg.History,
		systemPrompt: cfg.SystemPrompt,
	}, nil
}

// Run выполняет один ход диалога: история → модель → максимум один
// инструмент → финальный ответ.
//
// Ошибки инструментов делятся на два класса:
//   - неизвестное имя инструмента — сбой управления, ошибка возвращается
//     наверх (модель запросила то, чего нет в каталоге)
//   - ошибка выполнения — данные: текст ошибки уходит модели как результат
//     инструмента, и модель сама пересказывает проблему пользователю
//
// Может вызываться одновременно из разных горутин.
func (o *Orchestrator) Run(ctx context.Context, req TurnRequest) (string, error) {
	if req.Token == "" {
		return "", ErrUnauthorized
	}
	if strings.TrimSpace(req.Message) == "" {
		return "", ErrEmptyMessage
	}

	utils.Info("=== Turn STARTED ===", "conversation_id", req.ConversationID)

	// 1. История беседы. Сбой загрузки не роняет ход — просто начинаем
	// с чистого контекста.
	var history []llm.Message
	if o.history != nil && req.ConversationID > 0 {
		var err error
		history, err = o.history.Fetch(ctx, req.ConversationID, req.Token)
		if err != nil {
			utils.Warn("Failed to load conversation history, continuing without it",
				"conversation_id", req.ConversationID,
				"error", err)
			history = nil
		}
	}

	// 2. Контекст для модели: system + история + текущее сообщение
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: o.systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Message})

	// 3. Первый вызов модели с полным каталогом инструментов
	reply, err := o.llm.Generate(ctx, messages, o.registry.Definitions())
	if err != nil {
		return "", fmt.Errorf("llm generate failed: %w", err)
	}

	// Модель ответила текстом без инструментов — ход завершён
	if len(reply.ToolCalls) == 0 {
		utils.Info("=== Turn COMPLETED === (no tool call)")
		return reply.Content, nil
	}

	// 4. Выполняем только первый запрошенный инструмент
	if len(reply.ToolCalls) > 1 {
		utils.Warn("Model requested multiple tool calls, executing only the first",
			"requested", len(reply.ToolCalls))
	}
	call := reply.ToolCalls[0]

	utils.Info("Executing tool", "tool", call.Name)

	// Некоторые модели оборачивают аргументы в markdown-блок
	args := utils.CleanJsonBlock(call.Args)

	result, err := o.registry.Execute(ctx, call.Name, args, req.Token)
	if err != nil {
		if errors.Is(err, tools.ErrToolNotFound) {
			return "", err
		}
		// Ошибка выполнения — данные для модели
		result = fmt.Sprintf("Tool execution error: %v", err)
	}

	// 5. Второй вызов модели: пересказать результат инструмента
	messages = append(messages, reply)
	messages = append(messages, llm.Message{
		Role:       llm.RoleTool,
		Name:       call.Name,
		ToolCallID: call.ID,
		Content:    result,
	})

	final, err := o.llm.Generate(ctx, messages, o.registry.Definitions())
	if err != nil {
		return "", fmt.Errorf("llm generate after tool failed: %w", err)
	}

	utils.Info("=== Turn COMPLETED ===", "tool", call.Name)

	return final.Content, nil
}

// defaultSystemPrompt возвращает дефолтный системный промпт агента.
func defaultSystemPrompt() string {
	return `You are an inventory management assistant for a business ERP system.

## Your capabilities

You have access to tools for working with the inventory catalog:
- Browse and filter items (get_all_items)
- Search items by keyword (search_items)
- Fetch a single item (get_item_by_id)
- Create items (add_item)
- Update items (edit_item)
- Enable or disable items (toggle_item_status)
- Provide import template and export download links (get_bulk_template, get_bulk_download)

## Rules

1. Use tools to get real data — never invent item details, IDs, or prices
2. Before creating an item, make sure you have Name, Category, Unit, Purchase Price and Selling Price; ask the user for anything missing
3. To update or disable an item you MUST know its numeric ID; look it up first if needed
4. If a tool reports an error, explain it to the user in plain language
5. Keep answers short and structured; use lists for multiple items
`
}
