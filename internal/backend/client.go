// Package backend wraps the external warehouse API that owns all business
// logic and persistence. The gateway forwards one backend call per inbound
// route and passes payloads through unchanged, including the pagination
// convention ({pageNumber,size} -> {items, page:{totalElements,totalPages}}).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxResponseBytes = 10 << 20 // 10 MB

type Config struct {
	BaseURL string        `mapstructure:"base_url" json:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend.NewClient: base URL is empty")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("backend.NewClient: invalid base URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Call describes one backend operation. Mutating calls carry the anti-forgery
// token in addition to the bearer token.
type Call struct {
	Method   string
	Path     string
	Query    url.Values
	Body     json.RawMessage
	Mutating bool
}

// Do performs one backend call and returns the raw JSON payload on success.
// Non-success responses come back as *ValidationError (declared validation
// failure) or *StatusError (anything else).
func (c *Client) Do(ctx context.Context, token, xsrf string, call Call) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, call.Method, call.Path, call.Query, call.Body)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if call.Mutating && xsrf != "" {
		req.Header.Set("X-XSRF-TOKEN", xsrf)
	}

	body, _, err := c.do(req)
	if err != nil {
		return nil, err
	}

	return body, nil
}

// SignIn exchanges credentials for a session token. The backend answers a
// plain token body on success; any non-success status is surfaced so the
// login route can pass it through.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", fmt.Errorf("backend.Client.SignIn: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/sign-in", nil, payload)
	if err != nil {
		return "", err
	}

	body, _, err := c.do(req)
	if err != nil {
		return "", err
	}

	token := tokenFromBody(body)
	if token == "" {
		return "", fmt.Errorf("backend.Client.SignIn: empty token in sign-in response")
	}

	return token, nil
}

// XSRFToken fetches the anti-forgery token paired with a fresh session token.
func (c *Client) XSRFToken(ctx context.Context, token string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/xsrf-token", nil, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, _, err := c.do(req)
	if err != nil {
		return "", err
	}

	xsrf := tokenFromBody(body)
	if xsrf == "" {
		return "", fmt.Errorf("backend.Client.XSRFToken: empty token in response")
	}

	return xsrf, nil
}

// SignOut revokes the session for the given user id and returns the backend
// result untouched.
func (c *Client) SignOut(ctx context.Context, token, userID string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("id", userID)

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/sign-out", query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, _, err := c.do(req)
	if err != nil {
		return nil, err
	}

	return body, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body json.RawMessage) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("backend.Client: build request %s %s: %w", method, path, err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}

func (c *Client) do(req *http.Request) (json.RawMessage, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("backend.Client: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("backend.Client: read response of %s %s: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, resp.StatusCode, nil
	}

	return nil, resp.StatusCode, classifyError(resp.StatusCode, body)
}

// errorEnvelope covers both backend error shapes: {"message","details"} and
// the older {"error"} form.
type errorEnvelope struct {
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

func classifyError(status int, body []byte) error {
	env := errorEnvelope{}
	_ = json.Unmarshal(body, &env)

	message := env.Message
	if message == "" {
		message = env.Error
	}
	if message == "" {
		message = http.StatusText(status)
	}

	if status == http.StatusBadRequest || status == http.StatusUnprocessableEntity {
		return &ValidationError{Status: status, Message: message, Details: env.Details}
	}

	return &StatusError{Status: status, Message: message}
}

// tokenFromBody accepts both a bare token body and a JSON-quoted string.
func tokenFromBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal([]byte(s), &unquoted); err == nil {
			return unquoted
		}
	}

	return s
}
