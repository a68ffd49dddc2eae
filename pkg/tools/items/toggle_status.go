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

// === Toggle Item Status (Soft Delete) ===

const toggleStatusDescription = "Enable or Disable an item (Soft Delete)."

// ToggleItemStatusTool — инструмент включения/отключения позиции.
//
// Жесткого удаления в каталоге нет, деактивация и есть "удаление".
type ToggleItemStatusTool struct {
	client      *inventory.Client
	description string
}

// NewToggleItemStatusTool создает инструмент переключения статуса.
func NewToggleItemStatusTool(client *inventory.Client, cfg config.ToolConfig) *ToggleItemStatusTool {
	return &ToggleItemStatusTool{
		client:      client,
		description: applyDescription(cfg, toggleStatusDescription),
	}
}

// Definition возвращает определение инструмента для function calling.
func (t *ToggleItemStatusTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "toggle_item_status",
		Description: t.description,
		Parameters: tools.ObjectSchema(map[string]tools.Param{
			"id": {
				Type:        tools.TypeNumber,
				Description: "The numeric ID of the item",
			},
			"active": {
				Type:        tools.TypeBoolean,
				Description: "Set true to activate, false to deactivate (soft delete)",
			},
		}),
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *ToggleItemStatusTool) Execute(ctx context.Context, argsJSON string, token string) (string, error) {
	var args struct {
		ID     *int64     `json:"id"`
		Active *looseBool `json:"active"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments json: %w", err)
	}

	if args.ID == nil {
		return "", fmt.Errorf("id is required")
	}
	if args.Active == nil {
		return "", fmt.Errorf("active is required")
	}

	active := args.Active.Bool()

	utils.Info("Toggling item status", "id", *args.ID, "active", active)

	if err := t.client.ToggleStatus(ctx, token, *args.ID, active); err != nil {
		return fmt.Sprintf("Status change failed: %v", err), nil
	}

	state := "Inactive"
	if active {
		state = "Active"
	}
	return fmt.Sprintf("Item %d is now %s.", *args.ID, state), nil
}
