// Package items предоставляет инструменты работы с каталогом inventory.
//
// Каждый инструмент — тонкая обёртка над pkg/inventory SDK по контракту
// "Raw In, String Out": сырой JSON аргументов на входе, текст для модели
// на выходе. Ошибки бэкенда конвертируются в описательный текст здесь же,
// чтобы модель могла пересказать их пользователю.
package items

import (
	"github.com/ilkoid/inventory-ai/pkg/config"
	"github.com/ilkoid/inventory-ai/pkg/inventory"
	"github.com/ilkoid/inventory-ai/pkg/tools"
)

// Toolset собирает набор item-инструментов с учётом конфигурации.
//
// Инструменты, явно выключенные в секции tools конфига (enabled: false),
// в набор не попадают. Не упомянутые в конфиге инструменты включены.
// Description из конфига перекрывает дефолтное описание инструмента.
func Toolset(client *inventory.Client, toolCfgs map[string]config.ToolConfig) []tools.Tool {
	all := []tools.Tool{
		NewGetAllItemsTool(client, toolCfgs["get_all_items"]),
		NewSearchItemsTool(client, toolCfgs["search_items"]),
		NewGetItemByIDTool(client, toolCfgs["get_item_by_id"]),
		NewAddItemTool(client, toolCfgs["add_item"]),
		NewEditItemTool(client, toolCfgs["edit_item"]),
		NewToggleItemStatusTool(client, toolCfgs["toggle_item_status"]),
		NewGetBulkTemplateTool(client, toolCfgs["get_bulk_template"]),
		NewGetBulkDownloadTool(client, toolCfgs["get_bulk_download"]),
	}

	enabled := make([]tools.Tool, 0, len(all))
	for _, t := range all {
		if !toolCfgs[t.Definition().Name].IsEnabled() {
			continue
		}
		enabled = append(enabled, t)
	}

	return enabled
}

// описание инструмента: из конфига или дефолтное.
func applyDescription(cfg config.ToolConfig, fallback string) string {
	if cfg.Description != "" {
		return cfg.Description
	}
	return fallback
}
