package items

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/inventory-ai/pkg/config"
	"github.com/ilkoid/inventory-ai/pkg/inventory"
)

// capturedRequest — запрос, пойманный тестовым бэкендом.
type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// newTestBackend поднимает httptest-сервер, запоминающий последний запрос.
func newTestBackend(t *testing.T, status int, response string) (*inventory.Client, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Query = r.URL.RawQuery
		captured.Auth = r.Header.Get("Authorization")
		captured.Body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, response)
	}))
	t.Cleanup(srv.Close)

	client, err := inventory.NewFromConfig(config.InventoryConfig{
		BaseURL:       srv.URL,
		RetryAttempts: 1,
	})
	require.NoError(t, err)

	return client, captured
}

func TestGetAllItems_DefaultActiveFilter(t *testing.T) {
	client, captured := newTestBackend(t, http.StatusOK, `{"content": []}`)
	tool := NewGetAllItemsTool(client, config.ToolConfig{})

	result, err := tool.Execute(context.Background(), `{}`, "tok")
	require.NoError(t, err)
	assert.Equal(t, `{"content": []}`, result)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/v1/items/all", captured.Path)
	assert.Contains(t, captured.Query, "page=0")
	assert.Contains(t, captured.Query, "size=10")
	assert.Equal(t, "Bearer tok", captured.Auth)

	// Незаданный active подменяется дефолтом true
	var filter map[string]any
	require.NoError(t, json.Unmarshal(captured.Body, &filter))
	assert.Equal(t, true, filter["active"])
}

func TestGetAllItems_ExplicitInactiveFilter(t *testing.T) {
	client, captured := newTestBackend(t, http.StatusOK, `{"content": []}`)
	tool := NewGetAllItemsTool(client, config.ToolConfig{})

	// Модель может прислать bool и строкой — схема объявляет его строкой
	_, err := tool.Execute(context.Background(), `{"active": "false"}`, "tok")
	require.NoError(t, err)

	var filter map[string]any
	require.NoError(t, json.Unmarshal(captured.Body, &filter))
	assert.Equal(t, false, filter["active"])
}

func TestGetAllItems_BackendErrorIsData(t *testing.T) {
	client, _ := newTestBackend(t, http.StatusInternalServerError, `{"error": "db down"}`)
	tool := NewGetAllItemsTool(client, config.ToolConfig{})

	result, err := tool.Execute(context.Background(), `{}`, "tok")

	// Ошибка бэкенда — текст для модели, не ошибка хода
	require.NoError(t, err)
	assert.Contains(t, result, "Error fetching items:")
	assert.Contains(t, result, "500")
}

func TestSearchItems(t *testing.T) {
	client, captured := newTestBackend(t, http.StatusOK, `{"content": [{"id": 1}]}`)
	tool := NewSearchItemsTool(client, config.ToolConfig{})

	result, err := tool.Execute(context.Background(), `{"query": "Samsung"}`, "tok")
	require.NoError(t, err)
	assert.Contains(t, result, `"id": 1`)

	assert.Equal(t, "/v1/items/search", captured.Path)

	var filter map[string]any
	require.NoError(t, json.Unmarshal(captured.Body, &filter))
	assert.Equal(t, "Samsung", filter["searchQuery"])
}

func TestSearchItems_EmptyQuery(t *testing.T) {
	client, _ := newTestBackend(t, http.StatusOK, `{}`)
	tool := NewSearchItemsTool(client, config.ToolConfig{})

	_, err := tool.Execute(context.Background(), `{"query": "   "}`, "tok")
	require.Error(t, err)
}

func TestGetItemByID(t *testing.T) {
	client, captured := newTestBackend(t, http.StatusOK, `{"id": 7, "name": "Cable"}`)
	tool := NewGetItemByIDTool(client, config.ToolConfig{})

	result, err := tool.Execute(context.Background(), `{"id": 7}`, "tok")
	require.NoError(t, err)
	assert.Contains(t, result, "Cable")

	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/v1/items/7", captured.Path)
}

func TestGetItemByID_MissingID(t *testing.T) {
	client, _ := newTestBackend(t, http.StatusOK, `{}`)
	tool := NewGetItemByIDTool(client, config.ToolConfig{})

	_, err := tool.Execute(context.Background(), `{}`, "tok")
	require.Error(t, err)
}

func TestAddItem_GeneratesCodeAndForcesActive(t *testing.T) {
	client, captured := newTestBackend(t, http.StatusOK, `{"id": 10}`)
	tool := NewAddItemTool(client, config.ToolConfig{})

	args := `{
		"name": "USB Cable",
		"category": "Electronics",
		"unitOfMeasure": "PCS",
		"purchasePrice": 40,
		"sellingPrice": 99.5
	}`
	result, err := tool.Execute(context.Background(), args, "tok")
	require.NoError(t, err)

	assert.Equal(t, "/v1/items", captured.Path)

	var payload inventory.Item
	require.NoError(t, json.Unmarshal(captured.Body, &payload))
	assert.Regexp(t, regexp.MustCompile(`^ITM-\d{4}$`), payload.ItemCode)
	assert.True(t, payload.IsActive, "new items must always be active")
	assert.Equal(t, "PRODUCT", payload.ItemType)
	assert.Equal(t, 40.0, payload.PurchasePrice)

	assert.Equal(t, fmt.Sprintf("Success! Created Item 'USB Cable' with Code: %s.", payload.ItemCode), result)
}

func TestAddItem_ExplicitCodeKept(t *testing.T) {
	client, captured := newTestBackend(t, http.StatusOK, `{"id": 11}`)
	tool := NewAddItemTool(client, config.ToolConfig{})

	args := `{
		"name": "Bolt",
		"category": "Hardware",
		"unitOfMeasure": "KG",
		"purchasePrice": 1,
		"sellingPrice": 2,
		"itemCode": "BOLT-01"
	}`
	result, err := tool.Execute(context.Background(), args, "tok")
	require.NoError(t, err)

	var payload inventory.Item
	require.NoError(t, json.Unmarshal(captured.Body, &payload))
	assert.Equal(t, "BOLT-01", payload.ItemCode)
	assert.Equal(t, "Success! Created Item 'Bolt' with Code: BOLT-01.", result)
}

func TestAddItem_MissingRequired(t *testing.T) {
	client, _ := newTestBackend(t, http.StatusOK, `{}`)
	tool := NewAddItemTool(client, config.ToolConfig{})

	_, err := tool.Execute(context.Background(), `{"name": "Bolt"}`, "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
	assert.Contains(t, err.Error(), "purchasePrice")
}

func TestAddItem_BackendErrorIsData(t *testing.T) {
	client, _ := newTestBackend(t, http.StatusConflict, `{"error": "duplicate code"}`)
	tool := NewAddItemTool(client, config.ToolConfig{})

	args := `{
		"name": "Bolt",
		"category": "Hardware",
		"unitOfMeasure": "KG",
		"purchasePrice": 1,
		"sellingPrice": 2
	}`
	result, err := tool.Execute(context.Background(), args, "tok")
	require.NoError(t, err)
	assert.Contains(t, result, "Failed to create item. Reason:")
}

func TestEditItem_SendsOnlyProvidedFields(t *testing.T) {
	client, captured := newTestBackend(t, http.StatusOK, `{}`)
	tool := NewEditItemTool(client, config.ToolConfig{})

	result, err := tool.Execute(context.Background(), `{"id": 5, "sellingPrice": 120}`, "tok")
	require.NoError(t, err)
	assert.Equal(t, "Successfully updated details for Item ID 5.", result)

	assert.Equal(t, "/v1/items/5/update", captured.Path)

	var updates map[string]any
	require.NoError(t, json.Unmarshal(captured.Body, &updates))
	assert.Equal(t, map[string]any{"sellingPrice": 120.0}, updates)
}

func TestEditItem_NoFields(t *testing.T) {
	client, _ := newTestBackend(t, http.StatusOK, `{}`)
	tool := NewEditItemTool(client, config.ToolConfig{})

	result, err := tool.Execute(context.Background(), `{"id": 5}`, "tok")
	require.NoError(t, err)
	assert.Contains(t, result, "No fields to update")
}

func TestToggleItemStatus(t *testing.T) {
	tests := []struct {
		name   string
		args   string
		query  string
		result string
	}{
		{
			name:   "deactivate",
			args:   `{"id": 3, "active": false}`,
			query:  "active=false",
			result: "Item 3 is now Inactive.",
		},
		{
			name:   "activate with string bool",
			args:   `{"id": 3, "active": "true"}`,
			query:  "active=true",
			result: "Item 3 is now Active.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, captured := newTestBackend(t, http.StatusOK, `{}`)
			tool := NewToggleItemStatusTool(client, config.ToolConfig{})

			result, err := tool.Execute(context.Background(), tt.args, "tok")
			require.NoError(t, err)
			assert.Equal(t, tt.result, result)
			assert.Equal(t, "/v1/items/3/status", captured.Path)
			assert.Contains(t, captured.Query, tt.query)
		})
	}
}

func TestBulkLinks(t *testing.T) {
	client, _ := newTestBackend(t, http.StatusOK, `{}`)

	template := NewGetBulkTemplateTool(client, config.ToolConfig{})
	result, err := template.Execute(context.Background(), `{}`, "tok")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result, "You can download the template here: "))
	assert.Contains(t, result, "/v1/items/template")

	download := NewGetBulkDownloadTool(client, config.ToolConfig{})
	result, err = download.Execute(context.Background(), `{}`, "tok")
	require.NoError(t, err)
	assert.Contains(t, result, "/v1/items/bulk/download")
}

func TestToolset_DisableAndOverride(t *testing.T) {
	client, _ := newTestBackend(t, http.StatusOK, `{}`)

	disabled := false
	set := Toolset(client, map[string]config.ToolConfig{
		"get_bulk_download": {Enabled: &disabled},
		"search_items":      {Description: "Custom search description"},
	})

	names := make(map[string]string, len(set))
	for _, tool := range set {
		def := tool.Definition()
		names[def.Name] = def.Description
	}

	assert.NotContains(t, names, "get_bulk_download")
	assert.Contains(t, names, "get_all_items")
	assert.Equal(t, "Custom search description", names["search_items"])
	assert.Len(t, set, 7)
}

func TestGenerateItemCode_Format(t *testing.T) {
	re := regexp.MustCompile(`^ITM-\d{4}$`)
	for i := 0; i < 100; i++ {
		code := GenerateItemCode()
		assert.Regexp(t, re, code)
	}
}
