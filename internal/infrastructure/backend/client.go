package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client — HTTP-клиент REST-бэкенда ассистента: обе модели предсказаний,
// ИИ-консультант и советы по выращиванию.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиента бэкенда.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// postJSON отправляет JSON-запрос и возвращает тело и статус ответа.
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// truncate ограничивает тело ответа в тексте ошибки.
// Режем по рунам: ответ может содержать не только ASCII.
func truncate(body []byte, limit int) string {
	runes := []rune(string(body))
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return string(runes)
}

// extraFields собирает неизвестные поля ответа: сервер может добавлять
// новые поля, типизация их не должна терять.
func extraFields(body []byte, known ...string) map[string]any {
	var all map[string]any
	if err := json.Unmarshal(body, &all); err != nil {
		return nil
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil
	}
	return all
}
