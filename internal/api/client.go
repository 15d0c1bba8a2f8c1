// Package api реализует HTTP-клиент к REST API бэкенда VisionFlow.
//
// Клиент подставляет bearer-токен из источника токенов в каждый исходящий
// запрос и перехватывает ответы 401: настроенный обработчик вызывается
// ровно один раз на ответ, после чего ошибка всё равно возвращается
// вызывающему коду как обычная ошибка запроса.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/sl"
)

// TokenSource отдаёт текущий bearer-токен; пустая строка — запрос без аутентификации.
type TokenSource interface {
	Token() string
}

// Client — HTTP-клиент к бэкенду.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	log            *slog.Logger
}

// New создаёт клиент с базовым URL и таймаутом из конфига.
func New(log *slog.Logger, baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log,
	}
}

// SetUnauthorizedHandler устанавливает обработчик ответов 401.
// Обработчик вызывается не более одного раза на каждый отклонённый ответ.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// Get выполняет GET-запрос и декодирует JSON-ответ в out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

// Post выполняет POST с JSON-телом.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// Put выполняет PUT с JSON-телом.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

// Patch выполняет PATCH с JSON-телом.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete выполняет DELETE; body может быть nil (bulk-удаление передаёт массив id).
func (c *Client) Delete(ctx context.Context, path string, query url.Values, body, out any) error {
	if body == nil {
		return c.do(ctx, http.MethodDelete, path, query, "", nil, out)
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("api.Delete: %w", err)
	}
	return c.do(ctx, http.MethodDelete, path, query, "application/json", bytes.NewReader(buf), out)
}

// PostMultipart выполняет POST c multipart-телом: файл плюс обычные поля.
func (c *Client) PostMultipart(ctx context.Context, path, fileField, fileName string, file io.Reader, fields map[string]string, out any) error {
	const op = "api.PostMultipart"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(fileField, fileName)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.do(ctx, http.MethodPost, path, nil, mw.FormDataContentType(), &buf, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("api.%s %s: %w", method, path, err)
	}
	return c.do(ctx, method, path, query, "application/json", bytes.NewReader(buf), out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	const op = "api.Client.do"

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeError(resp.StatusCode, raw)
		c.log.Debug("request failed",
			sl.Op(op),
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
