// Package client talks to the Uzazi Salama HTTP API. It implements the
// sync engine's RemoteStore on top of the /api/user/data routes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"uzazi-salama-backend/models"
	"uzazi-salama-backend/section"
	"uzazi-salama-backend/syncengine"
)

// DefaultTimeout bounds every request when no http.Client is supplied
const DefaultTimeout = 10 * time.Second

// Client is an API client bound to one base URL and bearer token
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option is a functional option for Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the request timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http = &http.Client{Timeout: d}
	}
}

// WithToken sets the bearer token sent with every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a client for baseURL, e.g. http://localhost:5001/api
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// envelope is the common response shape of the API
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
	User    *models.User    `json:"user"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", syncengine.ErrRemoteUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

// decodeResponse maps status codes onto the engine and codec error sentinels
func decodeResponse(resp *http.Response) (*envelope, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", syncengine.ErrRemoteUnavailable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if decodeErr != nil {
			return nil, fmt.Errorf("%w: malformed response: %v", syncengine.ErrRemoteUnavailable, decodeErr)
		}
		if !env.Success {
			return nil, fmt.Errorf("%w: %s", syncengine.ErrRemoteUnavailable, messageOr(env.Message, "request failed"))
		}
		return &env, nil
	case resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", section.ErrValidation, messageOr(env.Message, resp.Status))
	case resp.StatusCode == http.StatusUnauthorized:
		if env.Message == "Invalid email or password" {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %s", syncengine.ErrUnauthenticated, messageOr(env.Message, resp.Status))
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusNotFound:
		// The token no longer resolves to a usable account
		return nil, fmt.Errorf("%w: %s", syncengine.ErrUnauthenticated, messageOr(env.Message, resp.Status))
	case resp.StatusCode == http.StatusConflict:
		return nil, models.ErrEmailTaken
	default:
		return nil, fmt.Errorf("%w: %s", syncengine.ErrRemoteUnavailable, messageOr(env.Message, resp.Status))
	}
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

// Register creates an account and stores the returned token on the client
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	c.SetToken(env.Token)
	return env.User, nil
}

// Login authenticates and stores the returned token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	c.SetToken(env.Token)
	return env.User, nil
}

// Me returns the profile of the token's user
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// UpdateProfile changes the non-nil profile fields of req
func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPut, "/auth/profile", req)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Get fetches one section. userID is implied by the token.
func (c *Client) Get(ctx context.Context, userID string, kind section.Kind) (json.RawMessage, bool, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/data/"+url.PathEscape(string(kind)), nil)
	if err != nil {
		return nil, false, err
	}
	trimmed := bytes.TrimSpace(env.Data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false, nil
	}
	return env.Data, true, nil
}

type saveRequest struct {
	DataType section.Kind    `json:"dataType"`
	Data     json.RawMessage `json:"data"`
}

// Put replaces one section and returns the stored value
func (c *Client) Put(ctx context.Context, userID string, kind section.Kind, data json.RawMessage) (json.RawMessage, error) {
	env, err := c.do(ctx, http.MethodPost, "/user/data", saveRequest{DataType: kind, Data: data})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetAll fetches every stored section keyed by dataType
func (c *Client) GetAll(ctx context.Context) (map[section.Kind]json.RawMessage, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/data", nil)
	if err != nil {
		return nil, err
	}
	all := make(map[section.Kind]json.RawMessage)
	if err := json.Unmarshal(env.Data, &all); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", syncengine.ErrRemoteUnavailable, err)
	}
	return all, nil
}

// CreateExport asks the server to snapshot every section to object storage
func (c *Client) CreateExport(ctx context.Context) (*models.Export, error) {
	env, err := c.do(ctx, http.MethodPost, "/user/export", nil)
	if err != nil {
		return nil, err
	}
	var export models.Export
	if err := json.Unmarshal(env.Data, &export); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", syncengine.ErrRemoteUnavailable, err)
	}
	return &export, nil
}

var _ syncengine.RemoteStore = (*Client)(nil)
