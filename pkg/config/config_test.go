package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validConfig = `
server:
  port: 9000
models:
  default_chat: "test-model"
  definitions:
    test-model:
      provider: "openai"
      model_name: "gpt-4o-mini"
      api_key: "${TEST_CFG_API_KEY}"
      max_tokens: 1024
      temperature: 0.3
inventory:
  base_url: "http://inv.local"
tools:
  get_bulk_download:
    enabled: false
  search_items:
    description: "Custom"
`

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_CFG_API_KEY", "sk-secret")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	model, ok := cfg.GetChatModel("")
	require.True(t, ok)
	assert.Equal(t, "sk-secret", model.APIKey)
	assert.Equal(t, "gpt-4o-mini", model.ModelName)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "http://inv.local", cfg.Inventory.BaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_MissingDefaultChat(t *testing.T) {
	_, err := Load(writeConfig(t, `
models:
  definitions:
    foo:
      provider: "openai"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_chat")
}

func TestLoad_UndefinedDefaultChat(t *testing.T) {
	_, err := Load(writeConfig(t, `
models:
  default_chat: "ghost"
  definitions:
    foo:
      provider: "openai"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestServerConfig_GetDefaults(t *testing.T) {
	cfg := ServerConfig{}
	defaults := cfg.GetDefaults()

	assert.Equal(t, 8085, defaults.Port)
	assert.Equal(t, "60s", defaults.RequestTimeout)

	// Заданные значения не перетираются
	custom := ServerConfig{Port: 9090, RequestTimeout: "30s"}
	assert.Equal(t, custom, custom.GetDefaults())
}

func TestInventoryConfig_GetDefaults(t *testing.T) {
	defaults := (&InventoryConfig{}).GetDefaults()

	assert.Equal(t, "http://localhost:8085", defaults.BaseURL)
	assert.Equal(t, 100, defaults.RateLimit)
	assert.Equal(t, 5, defaults.BurstLimit)
	assert.Equal(t, 3, defaults.RetryAttempts)
	assert.Equal(t, "5s", defaults.Timeout)
}

func TestToolConfig_IsEnabled(t *testing.T) {
	t.Setenv("TEST_CFG_API_KEY", "k")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	// Явное enabled: false выключает
	assert.False(t, cfg.Tools["get_bulk_download"].IsEnabled())
	// Упомянут только с description — остаётся включённым
	assert.True(t, cfg.Tools["search_items"].IsEnabled())
	// Не упомянут вовсе — включён
	assert.True(t, cfg.Tools["add_item"].IsEnabled())
	assert.Equal(t, "Custom", cfg.Tools["search_items"].Description)
}

func TestGetChatModel_ByName(t *testing.T) {
	t.Setenv("TEST_CFG_API_KEY", "k")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	_, ok := cfg.GetChatModel("test-model")
	assert.True(t, ok)

	_, ok = cfg.GetChatModel("unknown")
	assert.False(t, ok)
}
