// Package social - клиент X API v2 для чтения последних постов пользователя.
package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody ограничивает размер тела ответа, сохраняемого в UpstreamError.
const maxErrorBody = 4 << 10

// UpstreamError возвращается, когда X API ответил статусом вне диапазона 2xx.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// ErrUserNotFound - API не вернул идентификатор для имени пользователя.
var ErrUserNotFound = errors.New("user not found")

// Post - пост в том виде, в каком его отдает API.
type Post struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type userResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

type postsResponse struct {
	Data []Post `json:"data"`
}

// Client выполняет запросы к X API с bearer-токеном.
// Ответы не кешируются, повторов нет.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	log     *slog.Logger
}

// NewClient создает клиент X API. Пустой token допустим:
// такой клиент сообщает об этом через HasCredential.
func NewClient(baseURL, token string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
		log:     log.With(slog.String("component", "social")),
	}
}

// HasCredential сообщает, задан ли токен.
func (c *Client) HasCredential() bool { return c.token != "" }

// PostsByUsername читает последние посты одним запросом по имени пользователя.
func (c *Client) PostsByUsername(ctx context.Context, username string, maxResults int) ([]Post, error) {
	query := url.Values{}
	query.Set("max_results", strconv.Itoa(maxResults))
	query.Set("tweet.fields", "created_at")
	var resp postsResponse
	path := "/2/users/by/username/" + url.PathEscape(username) + "/tweets"
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UserID возвращает стабильный идентификатор пользователя по имени.
func (c *Client) UserID(ctx context.Context, username string) (string, error) {
	var resp userResponse
	if err := c.get(ctx, "/2/users/by/username/"+url.PathEscape(username), nil, &resp); err != nil {
		return "", err
	}
	if resp.Data.ID == "" {
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return resp.Data.ID, nil
}

// PostsByUserID читает последние посты пользователя вместе с датой создания.
func (c *Client) PostsByUserID(ctx context.Context, userID string, maxResults int) ([]Post, error) {
	query := url.Values{}
	query.Set("max_results", strconv.Itoa(maxResults))
	query.Set("tweet.fields", "created_at")
	query.Set("expansions", "author_id")
	var resp postsResponse
	if err := c.get(ctx, "/2/users/"+url.PathEscape(userID)+"/tweets", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	const op = "social.Client.get"
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	log := c.log.With(slog.String("op", op), slog.String("url", endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Error("Upstream request failed", slog.Any("error", err))
		return fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Error("Upstream rejected request", slog.Int("status_code", resp.StatusCode))
		return &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	log.Debug("Upstream request completed",
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}
