// Сервис inventory-ai: HTTP-мост между фронтендом ERP и языковой моделью
// с инструментами работы с каталогом.
//
// Запуск:
//
//	inventory-server -config config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ilkoid/inventory-ai/internal/agent"
	"github.com/ilkoid/inventory-ai/internal/server"
	"github.com/ilkoid/inventory-ai/pkg/config"
	"github.com/ilkoid/inventory-ai/pkg/history"
	"github.com/ilkoid/inventory-ai/pkg/inventory"
	llmopenai "github.com/ilkoid/inventory-ai/pkg/llm/openai"
	"github.com/ilkoid/inventory-ai/pkg/tools"
	"github.com/ilkoid/inventory-ai/pkg/tools/items"
	"github.com/ilkoid/inventory-ai/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "путь к YAML конфигурации")
	flag.Parse()

	if err := utils.InitLogger(); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	ctx, shutdown := utils.SetupGracefulShutdownWithContext()
	defer shutdown()

	// 1. Конфигурация
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. LLM провайдер
	modelDef, ok := cfg.GetChatModel("")
	if !ok {
		return fmt.Errorf("chat model '%s' is not defined", cfg.Models.DefaultChat)
	}
	provider := llmopenai.NewClient(modelDef)

	// 3. Клиенты бэкендов
	invClient, err := inventory.NewFromConfig(cfg.Inventory)
	if err != nil {
		return fmt.Errorf("failed to create inventory client: %w", err)
	}
	histClient, err := history.NewFromConfig(cfg.History)
	if err != nil {
		return fmt.Errorf("failed to create history client: %w", err)
	}

	// 4. Каталог инструментов
	registry, err := tools.NewRegistry(items.Toolset(invClient, cfg.Tools))
	if err != nil {
		return fmt.Errorf("failed to build tool registry: %w", err)
	}
	utils.Info("Tool registry ready", "tools", registry.Len())

	// 5. Оркестратор
	systemPrompt, err := resolveSystemPrompt(cfg.Agent)
	if err != nil {
		return err
	}
	orch, err := agent.New(agent.Config{
		LLM:          provider,
		Registry:     registry,
		History:      histClient,
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	// 6. HTTP сервер
	serverCfg := cfg.Server.GetDefaults()
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: server.New(orch, serverCfg),
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		// Graceful shutdown: даём активным запросам время завершиться
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		utils.Info("Server stopped")
		return nil
	}
}

// resolveSystemPrompt возвращает системный промпт из конфига.
// Файл приоритетнее inline-значения; пустой результат означает дефолт.
func resolveSystemPrompt(cfg config.AgentConfig) (string, error) {
	if cfg.SystemPromptFile != "" {
		data, err := os.ReadFile(cfg.SystemPromptFile)
		if err != nil {
			return "", fmt.Errorf("failed to read system prompt file: %w", err)
		}
		return string(data), nil
	}
	return cfg.SystemPrompt, nil
}
