package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/inventory-ai/internal/agent"
	"github.com/ilkoid/inventory-ai/pkg/config"
)

// mockGenerator — мок оркестратора для тестирования HTTP слоя.
type mockGenerator struct {
	reply   string
	err     error
	lastReq agent.TurnRequest
	calls   int
}

func (m *mockGenerator) Run(ctx context.Context, req agent.TurnRequest) (string, error) {
	m.calls++
	m.lastReq = req
	return m.reply, m.err
}

func doRequest(t *testing.T, handler http.Handler, body string, auth string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/ai/generate", strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeReply(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Reply
}

func TestGenerate_Success(t *testing.T) {
	gen := &mockGenerator{reply: "Here are your items."}
	handler := New(gen, config.ServerConfig{})

	rec := doRequest(t, handler, `{"message": "list items", "conversationId": 7}`, "Bearer tok-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Here are your items.", decodeReply(t, rec))

	assert.Equal(t, "list items", gen.lastReq.Message)
	assert.Equal(t, int64(7), gen.lastReq.ConversationID)
	assert.Equal(t, "tok-1", gen.lastReq.Token)
}

func TestGenerate_EmptyMessage(t *testing.T) {
	gen := &mockGenerator{err: agent.ErrEmptyMessage}
	handler := New(gen, config.ServerConfig{})

	rec := doRequest(t, handler, `{"message": ""}`, "Bearer tok")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Message required.", decodeReply(t, rec))
}

func TestGenerate_MalformedBody(t *testing.T) {
	gen := &mockGenerator{}
	handler := New(gen, config.ServerConfig{})

	rec := doRequest(t, handler, `{not json`, "Bearer tok")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Message required.", decodeReply(t, rec))
	assert.Equal(t, 0, gen.calls)
}

func TestGenerate_Unauthorized(t *testing.T) {
	gen := &mockGenerator{err: agent.ErrUnauthorized}
	handler := New(gen, config.ServerConfig{})

	rec := doRequest(t, handler, `{"message": "hi"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decodeReply(t, rec))
	// Без заголовка токен пустой
	assert.Equal(t, "", gen.lastReq.Token)
}

func TestGenerate_InternalErrorIsGeneric(t *testing.T) {
	gen := &mockGenerator{err: errors.New("tool not found: secret_tool at /internal/path")}
	handler := New(gen, config.ServerConfig{})

	rec := doRequest(t, handler, `{"message": "hi"}`, "Bearer tok")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Детали ошибки не утекают в ответ
	assert.Equal(t, "I encountered an internal error.", decodeReply(t, rec))
	assert.NotContains(t, rec.Body.String(), "secret_tool")
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name string
		auth string
		want string
	}{
		{name: "bearer", auth: "Bearer abc123", want: "abc123"},
		{name: "missing", auth: "", want: ""},
		{name: "wrong scheme", auth: "Basic abc123", want: ""},
		{name: "bearer with spaces", auth: "Bearer  abc123 ", want: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			assert.Equal(t, tt.want, bearerToken(req))
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	gen := &mockGenerator{}
	handler := New(gen, config.ServerConfig{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/ai/generate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, 0, gen.calls)
}
