package items

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ilkoid/inventory-ai/pkg/config"
	"github.com/ilkoid/inventory-ai/pkg/inventory"
	"github.com/ilkoid/inventory-ai/pkg/tools"
)

// === Get Item By ID ===

const getItemByIDDescription = "Fetch full details of a single inventory item by its numeric ID. " +
	"Use this when the user asks about one specific item and you already know its ID."

// GetItemByIDTool — инструмент получения одной позиции по ID.
//
// Использует GET /v1/items/{id}.
type GetItemByIDTool struct {
	client      *inventory.Client
	description string
}

// NewGetItemByIDTool создает инструмент получения позиции по ID.
func NewGetItemByIDTool(client *inventory.Client, cfg config.ToolConfig) *GetItemByIDTool {
	return &GetItemByIDTool{
		client:      client,
		description: applyDescription(cfg, getItemByIDDescription),
	}
}

// Definition возвращает определение инструмента для function calling.
func (t *GetItemByIDTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "get_item_by_id",
		Description: t.description,
		Parameters: tools.ObjectSchema(map[string]tools.Param{
			"id": {
				Type:        tools.TypeNumber,
				Description: "The numeric ID of the item",
			},
		}),
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *GetItemByIDTool) Execute(ctx context.Context, argsJSON string, token string) (string, error) {
	var args struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments json: %w", err)
	}

	if args.ID == nil {
		return "", fmt.Errorf("id is required")
	}

	data, err := t.client.GetItem(ctx, token, *args.ID)
	if err != nil {
		return fmt.Sprintf("Error fetching item %d: %v", *args.ID, err), nil
	}

	return string(data), nil
}
