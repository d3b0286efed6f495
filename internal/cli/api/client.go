// Package api is the CLI's HTTP client for the passkeeper server.
package api

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

	"passkeeper/internal/common"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 15 * time.Second

// Client is an explicit session: server base URL plus an optional bearer token.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New creates a client with a bounded http.Client.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

// Error is a non-2xx server response. It unwraps to the matching common sentinel,
// so callers can use errors.Is(err, common.ErrTokenExpired) and friends.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

func (e *Error) Unwrap() error { return common.FromCode(e.Code) }

// Credential is one stored entry as returned by GET /api/items.
type Credential struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
	Error     string    `json:"error,omitempty"`
}

// Identity is the response of GET /api/me.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register creates an account and returns a fresh token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var out tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/signup", map[string]string{
		"name":            name,
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	}, &out)
	return out.Token, err
}

// Login exchanges email and password for a token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/signin", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out.Token, err
}

// Me returns the identity bound to the current token.
func (c *Client) Me(ctx context.Context) (Identity, error) {
	var out Identity
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &out)
	return out, err
}

// CreateCredential stores a named password and returns its id.
func (c *Client) CreateCredential(ctx context.Context, name, password string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/api/item", map[string]string{
		"name":     name,
		"password": password,
	}, &out)
	return out.ID, err
}

// ListCredentials returns the caller's entries, newest first.
func (c *Client) ListCredentials(ctx context.Context) ([]Credential, error) {
	var out []Credential
	err := c.do(ctx, http.MethodGet, "/api/items", nil, &out)
	return out, err
}

// DeleteCredential removes one entry by id.
func (c *Client) DeleteCredential(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/item/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := hc.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) && ue.Timeout() {
			return fmt.Errorf("%w: %v", common.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	e := &Error{Status: status}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		e.Code = body.Error
		e.Message = body.Message
		return e
	}
	// ответ не в формате сервера, например прокси
	switch {
	case status == http.StatusUnauthorized:
		e.Code = "unauthenticated"
	case status >= 500:
		e.Code = "unavailable"
	}
	e.Message = strings.TrimSpace(string(raw))
	return e
}
