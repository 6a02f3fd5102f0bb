package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"guideadmin/internal/dashboard/domain"
	"guideadmin/internal/shared/auth"
	"guideadmin/internal/shared/logger"
)

const maxResponseSize = 4 << 20 // 4MB

// envelope — общий формат ответов бэкенда
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client — HTTP клиент REST API платформы. Токен бэкенда берётся
// из сессии в контексте; повторов нет, ошибка сразу уходит вызывающему.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient создает клиент; timeout <= 0 — без таймаута
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do выполняет запрос и раскладывает data в out (если out != nil).
// Возвращает message из конверта.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) (string, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := auth.BackendToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithContext(ctx).Error(logger.Entry{
			Action:  "backend_request_failed",
			Message: fmt.Sprintf("%s %s", method, path),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return "", fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrBackendUnavailable, err)
	}

	c.log.WithContext(ctx).Debug(logger.Entry{
		Action:  "backend_request",
		Message: fmt.Sprintf("%s %s -> %d", method, path, resp.StatusCode),
		Additional: map[string]any{
			"duration_ms": time.Since(started).Milliseconds(),
		},
	})

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// не конверт (HTML от прокси и т.п.): сообщения бэкенда нет.
		// 401 остаётся BackendError, по нему гейт завершает сессию.
		if resp.StatusCode == http.StatusUnauthorized {
			return "", &domain.BackendError{Status: resp.StatusCode}
		}
		return "", fmt.Errorf("%w: %s %s -> %d: decode envelope: %v",
			domain.ErrBackendUnavailable, method, path, resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		msg := env.Message
		if msg == "" && env.Error != nil {
			msg = env.Error.Message
		}
		return "", &domain.BackendError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("decode %s data: %w", path, err)
		}
	}

	return env.Message, nil
}

// listQuery — page/limit/search/sortBy/sortOrder/fields как их ждёт бэкенд
func listQuery(q domain.ListQuery) url.Values {
	v := url.Values{}
	v.Set("page", fmt.Sprint(q.Page))
	v.Set("limit", fmt.Sprint(q.Limit))
	v.Set("search", q.Search)
	v.Set("sortBy", q.SortBy)
	v.Set("sortOrder", q.SortOrder)
	v.Set("fields", q.Fields)
	return v
}

func idPath(prefix string, id domain.ID) (string, error) {
	if strings.TrimSpace(id.String()) == "" {
		return "", domain.ErrInvalidID
	}
	return prefix + url.PathEscape(id.String()), nil
}

// IsUnavailable — сеть/транспорт, а не бизнес-ошибка
func IsUnavailable(err error) bool {
	return errors.Is(err, domain.ErrBackendUnavailable)
}
