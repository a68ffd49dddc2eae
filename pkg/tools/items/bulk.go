package items

import (
	"context"
	"fmt"

	"github.com/ilkoid/inventory-ai/pkg/config"
	"github.com/ilkoid/inventory-ai/pkg/inventory"
	"github.com/ilkoid/inventory-ai/pkg/tools"
)

// === Bulk Operations (Template / Export Links) ===

const bulkTemplateDescription = "Get the download link for the Item Import Excel Template."

const bulkDownloadDescription = "Get the download link for the full item export (all items as Excel)."

// GetBulkTemplateTool — инструмент выдачи ссылки на шаблон импорта.
//
// Сетевых вызовов не делает: ссылка собирается из базового URL бэкенда.
type GetBulkTemplateTool struct {
	client      *inventory.Client
	description string
}

// NewGetBulkTemplateTool создает инструмент ссылки на шаблон импорта.
func NewGetBulkTemplateTool(client *inventory.Client, cfg config.ToolConfig) *GetBulkTemplateTool {
	return &GetBulkTemplateTool{
		client:      client,
		description: applyDescription(cfg, bulkTemplateDescription),
	}
}

// Definition возвращает определение инструмента для function calling.
func (t *GetBulkTemplateTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "get_bulk_template",
		Description: t.description,
		Parameters:  tools.ObjectSchema(nil),
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *GetBulkTemplateTool) Execute(ctx context.Context, argsJSON string, token string) (string, error) {
	return fmt.Sprintf("You can download the template here: %s", t.client.TemplateURL()), nil
}

// GetBulkDownloadTool — инструмент выдачи ссылки на полный экспорт каталога.
type GetBulkDownloadTool struct {
	client      *inventory.Client
	description string
}

// NewGetBulkDownloadTool создает инструмент ссылки на экспорт каталога.
func NewGetBulkDownloadTool(client *inventory.Client, cfg config.ToolConfig) *GetBulkDownloadTool {
	return &GetBulkDownloadTool{
		client:      client,
		description: applyDescription(cfg, bulkDownloadDescription),
	}
}

// Definition возвращает определение инструмента для function calling.
func (t *GetBulkDownloadTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "get_bulk_download",
		Description: t.description,
		Parameters:  tools.ObjectSchema(nil),
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *GetBulkDownloadTool) Execute(ctx context.Context, argsJSON string, token string) (string, error) {
	return fmt.Sprintf("You can download the full item export here: %s", t.client.BulkDownloadURL()), nil
}
