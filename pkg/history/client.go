// Package history предоставляет клиент внешнего сервиса истории диалогов.
//
// Сервис — единственный владелец истории: оркестратор ничего не пишет
// обратно и перечитывает историю заново на каждый turn.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ilkoid/inventory-ai/pkg/config"
	"github.com/ilkoid/inventory-ai/pkg/llm"
)

// HTTPClient интерфейс для выполнения HTTP запросов.
//
// Позволяет мокировать HTTP клиент в тестах.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client — клиент сервиса истории.
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

// storedMessage — одно сообщение в формате сервиса истории.
type storedMessage struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// messagesResponse — обертка ответа сервиса истории.
type messagesResponse struct {
	Data []storedMessage `json:"data"`
}

// NewFromConfig создает новый клиент из конфигурации.
func NewFromConfig(cfg config.HistoryConfig) (*Client, error) {
	cfg = cfg.GetDefaults()

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid history.timeout format: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// SetHTTPClient подменяет HTTP клиент (для тестов).
func (c *Client) SetHTTPClient(hc HTTPClient) {
	c.httpClient = hc
}

// Fetch загружает прошлые сообщения диалога.
//
// GET {base}/v1/mcp/chat/{conversationId}/messages с bearer-токеном
// пользователя. Маппинг ролей: sender == "user" → RoleUser, всё остальное
// считается ответами модели → RoleAssistant.
//
// Ошибка здесь не фатальна для turn'а — оркестратор деградирует до пустой
// истории.
func (c *Client) Fetch(ctx context.Context, conversationID int64, token string) ([]llm.Message, error) {
	u := fmt.Sprintf("%s/v1/mcp/chat/%d/messages", c.baseURL, conversationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("history request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read history body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history api error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed messagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}

	messages := make([]llm.Message, 0, len(parsed.Data))
	for _, m := range parsed.Data {
		role := llm.RoleAssistant
		if m.Sender == "user" {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages, nil
}
