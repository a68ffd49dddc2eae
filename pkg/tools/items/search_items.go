package items

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ilkoid/inventory-ai/pkg/config"
	"github.com/ilkoid/inventory-ai/pkg/inventory"
	"github.com/ilkoid/inventory-ai/pkg/tools"
)

// === Search Items (Keyword Search) ===

const searchItemsDescription = "Search for items using a specific keyword (matches Name or Description)."

// SearchItemsTool — инструмент поиска позиций по ключевому слову.
//
// Использует выделенный эндпоинт POST /v1/items/search.
type SearchItemsTool struct {
	client      *inventory.Client
	description string
}

// NewSearchItemsTool создает инструмент поиска.
func NewSearchItemsTool(client *inventory.Client, cfg config.ToolConfig) *SearchItemsTool {
	return &SearchItemsTool{
		client:      client,
		description: applyDescription(cfg, searchItemsDescription),
	}
}

// Definition возвращает определение инструмента для function calling.
func (t *SearchItemsTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "search_items",
		Description: t.description,
		Parameters: tools.ObjectSchema(map[string]tools.Param{
			"query": {
				Type:        tools.TypeString,
				Description: "The search keyword (e.g. 'Samsung', 'Cable')",
			},
		}),
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *SearchItemsTool) Execute(ctx context.Context, argsJSON string, token string) (string, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments json: %w", err)
	}

	query := strings.TrimSpace(args.Query)
	if query == "" {
		return "", fmt.Errorf("query cannot be empty")
	}

	filter := inventory.SearchFilter{
		SearchQuery: &query,
	}

	data, err := t.client.SearchItems(ctx, token, filter)
	if err != nil {
		return fmt.Sprintf("Search failed: %v", err), nil
	}

	return string(data), nil
}
