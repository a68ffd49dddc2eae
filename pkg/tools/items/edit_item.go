package items

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ilkoid/inventory-ai/pkg/config"
	"github.com/ilkoid/inventory-ai/pkg/inventory"
	"github.com/ilkoid/inventory-ai/pkg/tools"
)

// === Edit Item ===

const editItemDescription = "Update details of an existing item. You MUST identify the item by its numeric ID."

// EditItemTool — инструмент частичного обновления позиции.
//
// В бэкенд уходят только те поля, которые модель явно передала.
type EditItemTool struct {
	client      *inventory.Client
	description string
}

// NewEditItemTool создает инструмент редактирования позиции.
func NewEditItemTool(client *inventory.Client, cfg config.ToolConfig) *EditItemTool {
	return &EditItemTool{
		client:      client,
		description: applyDescription(cfg, editItemDescription),
	}
}

// Definition возвращает определение инструмента для function calling.
func (t *EditItemTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "edit_item",
		Description: t.description,
		Parameters: tools.ObjectSchema(map[string]tools.Param{
			"id": {
				Type:        tools.TypeNumber,
				Description: "The numeric ID of the item to update",
			},
			// Все поля ниже опциональны — обновляться может одно поле
			"name":          {Type: tools.TypeString, Optional: true, Description: "New Item Name"},
			"sellingPrice":  {Type: tools.TypeNumber, Optional: true, Description: "New Selling Price"},
			"purchasePrice": {Type: tools.TypeNumber, Optional: true, Description: "New Purchase Price"},
			"category":      {Type: tools.TypeString, Optional: true, Description: "New Category"},
			"brand":         {Type: tools.TypeString, Optional: true, Description: "New Brand"},
			"description":   {Type: tools.TypeString, Optional: true, Description: "New Description"},
		}),
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *EditItemTool) Execute(ctx context.Context, argsJSON string, token string) (string, error) {
	var args struct {
		ID            *int64   `json:"id"`
		Name          *string  `json:"name"`
		SellingPrice  *float64 `json:"sellingPrice"`
		PurchasePrice *float64 `json:"purchasePrice"`
		Category      *string  `json:"category"`
		Brand         *string  `json:"brand"`
		Description   *string  `json:"description"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments json: %w", err)
	}

	if args.ID == nil {
		return "", fmt.Errorf("id is required")
	}

	// Собираем только переданные поля
	updates := make(map[string]any)
	if args.Name != nil {
		updates["name"] = *args.Name
	}
	if args.SellingPrice != nil {
		updates["sellingPrice"] = *args.SellingPrice
	}
	if args.PurchasePrice != nil {
		updates["purchasePrice"] = *args.PurchasePrice
	}
	if args.Category != nil {
		updates["category"] = *args.Category
	}
	if args.Brand != nil {
		updates["brand"] = *args.Brand
	}
	if args.Description != nil {
		updates["description"] = *args.Description
	}

	if len(updates) == 0 {
		return "No fields to update were provided. Ask the user what exactly should change.", nil
	}

	if _, err := t.client.UpdateItem(ctx, token, *args.ID, updates); err != nil {
		return fmt.Sprintf("Update failed: %v", err), nil
	}

	return fmt.Sprintf("Successfully updated details for Item ID %d.", *args.ID), nil
}
