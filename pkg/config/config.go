package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
// Она зеркалит структуру config.yaml.
type AppConfig struct {
	Server    ServerConfig          `yaml:"server"`
	Models    ModelsConfig          `yaml:"models"`
	Inventory InventoryConfig       `yaml:"inventory"`
	History   HistoryConfig         `yaml:"history"`
	Agent     AgentConfig           `yaml:"agent"`
	Tools     map[string]ToolConfig `yaml:"tools"`
}

// ServerConfig — настройки входящего HTTP сервера.
type ServerConfig struct {
	Port           int    `yaml:"port"`            // Порт для прослушивания
	RequestTimeout string `yaml:"request_timeout"` // Таймаут обработки одного запроса ("60s")
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *ServerConfig) GetDefaults() ServerConfig {
	result := *c

	if result.Port == 0 {
		result.Port = 8085
	}
	if result.RequestTimeout == "" {
		result.RequestTimeout = "60s"
	}

	return result
}

// ModelsConfig — настройки AI моделей.
type ModelsConfig struct {
	DefaultChat string              `yaml:"default_chat"` // Алиас модели по умолчанию
	Definitions map[string]ModelDef `yaml:"definitions"`  // Словарь определений моделей
}

// ModelDef — параметры конкретной модели.
type ModelDef struct {
	Provider    string  `yaml:"provider"`   // "openai", "zai" и т.д.
	ModelName   string  `yaml:"model_name"` // Реальное имя в API
	APIKey      string  `yaml:"api_key"`    // Поддерживает ${VAR}
	BaseURL     string  `yaml:"base_url"`   // Для OpenAI-совместимых провайдеров
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// InventoryConfig — настройки клиента inventory бэкенда.
type InventoryConfig struct {
	BaseURL       string `yaml:"base_url"`       // Базовый URL inventory API
	RateLimit     int    `yaml:"rate_limit"`     // Запросов в минуту
	BurstLimit    int    `yaml:"burst_limit"`    // Burst для rate limiter
	RetryAttempts int    `yaml:"retry_attempts"` // Количество retry попыток
	Timeout       string `yaml:"timeout"`        // Timeout для HTTP запросов (например, "5s")
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *InventoryConfig) GetDefaults() InventoryConfig {
	result := *c // Копируем текущие значения

	if result.BaseURL == "" {
		result.BaseURL = "http://localhost:8085"
	}
	if result.RateLimit == 0 {
		result.RateLimit = 100 // запросов в минуту
	}
	if result.BurstLimit == 0 {
		result.BurstLimit = 5
	}
	if result.RetryAttempts == 0 {
		result.RetryAttempts = 3
	}
	if result.Timeout == "" {
		result.Timeout = "5s"
	}

	return result
}

// HistoryConfig — настройки клиента внешнего сервиса истории диалогов.
type HistoryConfig struct {
	BaseURL string `yaml:"base_url"` // Базовый URL сервиса истории
	Timeout string `yaml:"timeout"`  // Timeout для HTTP запросов
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *HistoryConfig) GetDefaults() HistoryConfig {
	result := *c

	if result.BaseURL == "" {
		result.BaseURL = "http://localhost:8085"
	}
	if result.Timeout == "" {
		result.Timeout = "5s"
	}

	return result
}

// AgentConfig — настройки оркестратора.
type AgentConfig struct {
	SystemPrompt     string `yaml:"system_prompt"`      // Inline системный промпт
	SystemPromptFile string `yaml:"system_prompt_file"` // Путь к файлу с промптом (приоритетнее inline)
}

// ToolConfig — настройки отдельного инструмента каталога.
//
// Инструменты, не упомянутые в секции tools, включены по умолчанию.
// Enabled — указатель, чтобы отличать "не задано" от явного false.
type ToolConfig struct {
	Enabled     *bool  `yaml:"enabled"`
	Description string `yaml:"description"` // Переопределение описания для модели
}

// IsEnabled сообщает, включён ли инструмент. Незаданное значение — включён.
func (c ToolConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения.
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML в структуру
	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 5. Валидируем критические настройки
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate проверяет обязательные поля.
func (c *AppConfig) validate() error {
	if c.Models.DefaultChat == "" {
		return fmt.Errorf("models.default_chat is required")
	}
	if _, ok := c.Models.Definitions[c.Models.DefaultChat]; !ok {
		return fmt.Errorf("default_chat model '%s' is not defined in definitions", c.Models.DefaultChat)
	}
	return nil
}

// GetChatModel возвращает конфигурацию модели по умолчанию или по имени.
func (c *AppConfig) GetChatModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.DefaultChat
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}
