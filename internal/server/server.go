// Package server предоставляет HTTP-слой сервиса: единственный эндпоинт
// POST /v1/ai/generate, принимающий сообщение пользователя и возвращающий
// ответ агента.
//
// Слой намеренно тонкий: вся логика хода живёт в internal/agent, здесь
// только декодирование запроса, маппинг ошибок в статусы и сериализация.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ilkoid/inventory-ai/internal/agent"
	"github.com/ilkoid/inventory-ai/pkg/config"
	"github.com/ilkoid/inventory-ai/pkg/utils"
)

// Generator выполняет один ход диалога. Реализация: agent.Orchestrator.
type Generator interface {
	Run(ctx context.Context, req agent.TurnRequest) (string, error)
}

// generateRequest — тело POST /v1/ai/generate.
type generateRequest struct {
	Message        string `json:"message"`
	ConversationID int64  `json:"conversationId"`
}

// generateResponse — единый формат ответа, включая ошибки.
// Фронтенд показывает reply как сообщение ассистента в любом случае.
type generateResponse struct {
	Reply string `json:"reply"`
}

// New собирает chi-роутер сервиса.
func New(gen Generator, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(corsAllowAll)

	if d, err := time.ParseDuration(cfg.RequestTimeout); err == nil && d > 0 {
		r.Use(middleware.Timeout(d))
	}

	r.Post("/v1/ai/generate", handleGenerate(gen))

	return r
}

// handleGenerate обрабатывает один ход диалога.
//
// Маппинг ошибок:
//   - пустое сообщение  → 400 "Message required."
//   - нет bearer-токена → 401 "Unauthorized"
//   - всё остальное     → 500 с общим извинением; детали только в логе
func handleGenerate(gen Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeReply(w, http.StatusBadRequest, "Message required.")
			return
		}

		token := bearerToken(r)

		reply, err := gen.Run(r.Context(), agent.TurnRequest{
			Message:        req.Message,
			ConversationID: req.ConversationID,
			Token:          token,
		})
		if err != nil {
			switch {
			case errors.Is(err, agent.ErrEmptyMessage):
				writeReply(w, http.StatusBadRequest, "Message required.")
			case errors.Is(err, agent.ErrUnauthorized):
				writeReply(w, http.StatusUnauthorized, "Unauthorized")
			default:
				utils.Error("Turn failed", "error", err)
				writeReply(w, http.StatusInternalServerError, "I encountered an internal error.")
			}
			return
		}

		writeReply(w, http.StatusOK, reply)
	}
}

// bearerToken извлекает токен из заголовка Authorization.
// Пустая строка означает отсутствие токена.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == auth {
		// Заголовок есть, но схема не Bearer
		return ""
	}
	return strings.TrimSpace(token)
}

func writeReply(w http.ResponseWriter, status int, reply string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(generateResponse{Reply: reply}); err != nil {
		utils.Error("Failed to encode response", "error", err)
	}
}

// corsAllowAll разрешает запросы с любого origin. Сервис живёт за
// внутренним шлюзом, тонкая настройка CORS не требуется.
func corsAllowAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
