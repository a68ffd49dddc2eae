// Package inventory предоставляет SDK для inventory бэкенда.
//
// Это API SDK, а не "тупой" HTTP клиент:
//   - HTTP клиент с retry, rate limiting и обработкой 429
//   - Высокоуровневые методы под эндпоинты /v1/items
//   - Bearer-токен пользователя передаётся в каждый вызов и уходит в бэкенд
//     без изменений — клиент не хранит и не проверяет credentials
//
// Паттерн использования:
//   - pkg/inventory — переиспользуемый SDK
//   - pkg/tools/items — тонкие обёртки для LLM function calling
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ilkoid/inventory-ai/pkg/config"
	"golang.org/x/time/rate"
)

// HTTPClient интерфейс для выполнения HTTP запросов.
//
// Позволяет мокировать HTTP клиент в тестах.
// Стандартный *http.Client реализует этот интерфейс.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client — клиент inventory бэкенда.
//
// Создаётся один раз при старте, дальше только читается —
// безопасен для конкурентного использования из разных turn'ов.
type Client struct {
	baseURL       string
	httpClient    HTTPClient
	retryAttempts int
	rateLimit     int // запросов в минуту
	burst         int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter // operation ID → limiter
}

// NewFromConfig создает новый клиент из конфигурации.
//
// Поля с нулевыми значениями используют дефолтные значения через GetDefaults.
// Лимитеры создаются динамически при первом вызове операции.
func NewFromConfig(cfg config.InventoryConfig) (*Client, error) {
	cfg = cfg.GetDefaults()

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid inventory.timeout format: %w", err)
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		retryAttempts: cfg.RetryAttempts,
		rateLimit:     cfg.RateLimit,
		burst:         cfg.BurstLimit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiters: make(map[string]*rate.Limiter),
	}, nil
}

// SetHTTPClient подменяет HTTP клиент (для тестов).
func (c *Client) SetHTTPClient(hc HTTPClient) {
	c.httpClient = hc
}

// getOrCreateLimiter возвращает существующий limiter для операции или создаёт новый.
func (c *Client) getOrCreateLimiter(opID string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limiter, exists := c.limiters[opID]; exists {
		return limiter
	}

	// rateLimit в запросах/минуту → rate.Limit в запросах/секунду
	ratePerSec := float64(c.rateLimit) / 60.0
	limiter := rate.NewLimiter(rate.Limit(ratePerSec), c.burst)
	c.limiters[opID] = limiter

	return limiter
}

// doRequest выполняет HTTP запрос с retry логикой и rate limiting.
//
// Возвращает сырое JSON тело ответа — вызывающий код решает,
// парсить его или передать модели как есть.
func (c *Client) doRequest(ctx context.Context, opID string, token string, method string, rawURL string, body any) (json.RawMessage, error) {
	limiter := c.getOrCreateLimiter(opID)

	var bodyJSON []byte
	if body != nil {
		var err error
		bodyJSON, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
	}

	var lastErr error

	// Retry loop
	for i := 0; i < c.retryAttempts; i++ {
		// Ждем разрешения от лимитера (блокирует горутину, если превысили лимит)
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		var reqBody io.Reader
		if bodyJSON != nil {
			reqBody = strings.NewReader(string(bodyJSON))
		}

		httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
		if err != nil {
			return nil, err
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			lastErr = err
			continue // Сетевая ошибка, пробуем еще
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		// Обработка 429 (Too Many Requests)
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := 1 * time.Second // Дефолт
			if s := resp.Header.Get("Retry-After"); s != "" {
				if sec, err := strconv.Atoi(s); err == nil {
					retryAfter = time.Duration(sec) * time.Second
				}
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryAfter):
				continue
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("inventory api error: status %d, body: %s", resp.StatusCode, string(respBody))
		}

		if len(respBody) == 0 {
			return json.RawMessage(`{}`), nil
		}
		return json.RawMessage(respBody), nil
	}

	return nil, fmt.Errorf("max retries exceeded, last error: %v", lastErr)
}

// ListItems возвращает страницу позиций каталога с фильтрацией.
//
// POST /v1/items/all?page=&size= с фильтром в теле.
// Если active в фильтре не задан, подставляется дефолт active=true —
// стандартное поведение каталога; явное значение в фильтре его перекрывает.
func (c *Client) ListItems(ctx context.Context, token string, page, size int, filter SearchFilter) (json.RawMessage, error) {
	if filter.Active == nil {
		active := true
		filter.Active = &active
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	u := fmt.Sprintf("%s/v1/items/all?%s", c.baseURL, q.Encode())
	return c.doRequest(ctx, "list_items", token, http.MethodPost, u, filter)
}

// SearchItems выполняет поиск позиций по фильтру (обычно searchQuery).
//
// POST /v1/items/search.
func (c *Client) SearchItems(ctx context.Context, token string, filter SearchFilter) (json.RawMessage, error) {
	u := c.baseURL + "/v1/items/search"
	return c.doRequest(ctx, "search_items", token, http.MethodPost, u, filter)
}

// CreateItem создаёт новую позицию каталога.
//
// POST /v1/items.
func (c *Client) CreateItem(ctx context.Context, token string, item Item) (json.RawMessage, error) {
	u := c.baseURL + "/v1/items"
	return c.doRequest(ctx, "create_item", token, http.MethodPost, u, item)
}

// GetItem возвращает позицию по числовому ID.
//
// GET /v1/items/{id}.
func (c *Client) GetItem(ctx context.Context, token string, id int64) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/v1/items/%d", c.baseURL, id)
	return c.doRequest(ctx, "get_item", token, http.MethodGet, u, nil)
}

// UpdateItem частично обновляет позицию: отправляются только переданные поля.
//
// POST /v1/items/{id}/update.
func (c *Client) UpdateItem(ctx context.Context, token string, id int64, updates map[string]any) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/v1/items/%d/update", c.baseURL, id)
	return c.doRequest(ctx, "update_item", token, http.MethodPost, u, updates)
}

// ToggleStatus включает или выключает позицию (soft delete).
//
// POST /v1/items/{id}/status?active={bool} с пустым телом.
func (c *Client) ToggleStatus(ctx context.Context, token string, id int64, active bool) error {
	u := fmt.Sprintf("%s/v1/items/%d/status?active=%t", c.baseURL, id, active)
	_, err := c.doRequest(ctx, "toggle_item_status", token, http.MethodPost, u, struct{}{})
	return err
}

// TemplateURL возвращает ссылку на Excel шаблон импорта.
//
// Статический аксессор — запрос в бэкенд не выполняется.
func (c *Client) TemplateURL() string {
	return c.baseURL + "/v1/items/template"
}

// BulkDownloadURL возвращает ссылку на полную выгрузку каталога.
//
// Статический аксессор — запрос в бэкенд не выполняется.
func (c *Client) BulkDownloadURL() string {
	return c.baseURL + "/v1/items/bulk/download"
}
