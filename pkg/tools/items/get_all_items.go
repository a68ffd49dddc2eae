package items

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ilkoid/inventory-ai/pkg/config"
	"github.com/ilkoid/inventory-ai/pkg/inventory"
	"github.com/ilkoid/inventory-ai/pkg/tools"
	"github.com/ilkoid/inventory-ai/pkg/utils"
)

// === Get All Items (Smart Filter) ===

const getAllItemsDescription = "Browse the full inventory catalog or items. Use this tool when the user asks to 'list', 'show', 'browse', or 'filter' items. " +
	"Useful for queries like 'Show me all items', 'List active services', 'List active products' or 'What brands do we have?'. " +
	"Supports filtering by Type (Goods/Services), Category, Brand, and Status."

// GetAllItemsTool — инструмент для постраничного просмотра каталога.
//
// Использует POST /v1/items/all с фильтром в теле. Если модель не задала
// active, SDK подставляет active=true — каталог по умолчанию показывает
// только действующие позиции.
type GetAllItemsTool struct {
	client      *inventory.Client
	description string
}

// NewGetAllItemsTool создает инструмент просмотра каталога.
func NewGetAllItemsTool(client *inventory.Client, cfg config.ToolConfig) *GetAllItemsTool {
	return &GetAllItemsTool{
		client:      client,
		description: applyDescription(cfg, getAllItemsDescription),
	}
}

// Definition возвращает определение инструмента для function calling.
func (t *GetAllItemsTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "get_all_items",
		Description: t.description,
		Parameters: tools.ObjectSchema(map[string]tools.Param{
			"page": {
				Type:        tools.TypeNumber,
				Default:     0,
				Description: "Page number (starts at 0)",
			},
			"size": {
				Type:        tools.TypeNumber,
				Default:     10,
				Description: "Number of items per page",
			},
			"itemType": {
				Type:        tools.TypeEnum,
				Optional:    true,
				Enum:        []string{inventory.ItemTypeProduct, inventory.ItemTypeService},
				Description: "Filter by Item Type: PRODUCT or SERVICE",
			},
			"brand": {
				Type:        tools.TypeString,
				Optional:    true,
				Description: "Filter by Brand Name",
			},
			"category": {
				Type:        tools.TypeString,
				Optional:    true,
				Description: "Filter by Category",
			},
			"active": {
				Type:        tools.TypeBoolean,
				Default:     true,
				Description: "Filter by Active status (default true)",
			},
		}),
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *GetAllItemsTool) Execute(ctx context.Context, argsJSON string, token string) (string, error) {
	var args struct {
		Page     int        `json:"page"`
		Size     int        `json:"size"`
		ItemType *string    `json:"itemType"`
		Brand    *string    `json:"brand"`
		Category *string    `json:"category"`
		Active   *looseBool `json:"active"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments json: %w", err)
	}

	// Дефолтные значения
	if args.Page < 0 {
		args.Page = 0
	}
	if args.Size <= 0 {
		args.Size = 10
	}

	// Пустой itemType означает "без фильтра"
	if args.ItemType != nil && *args.ItemType == "" {
		args.ItemType = nil
	}

	var active *bool
	if args.Active != nil {
		v := args.Active.Bool()
		active = &v
	}

	filter := inventory.SearchFilter{
		ItemType: args.ItemType,
		Brand:    args.Brand,
		Category: args.Category,
		Active:   active,
	}

	utils.Debug("Fetching items",
		"page", args.Page,
		"size", args.Size)

	data, err := t.client.ListItems(ctx, token, args.Page, args.Size, filter)
	if err != nil {
		// Ошибка бэкенда — данные для модели, не control failure
		return fmt.Sprintf("Error fetching items: %v", err), nil
	}

	return string(data), nil
}
