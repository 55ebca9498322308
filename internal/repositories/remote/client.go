// Package remote implements the ledger repository against the HTTP API, so the
// application store can run on a networked backend unchanged.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/dto"
	"github.com/SscSPs/orbit_finance/internal/middleware"
)

// DefaultTimeout bounds a single API call.
const DefaultTimeout = 15 * time.Second

// Client talks to the /api/v1 routes. It keeps the session token returned by
// login or registration and sends it with every later call.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.RWMutex
	token     string
	selfID    string
	selfEmail string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken starts the client with an existing session token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a client for the API served at baseURL, e.g. "http://localhost:8080/api/v1".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current session token, or "" before login.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setSession(auth dto.AuthResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = auth.Token
	c.selfID = auth.User.ID
	c.selfEmail = auth.User.Email
}

func (c *Client) clearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token, c.selfID, c.selfEmail = "", "", ""
}

func (c *Client) session() (id, email string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selfID, c.selfEmail
}

// do sends one request. A nil body sends none; a nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Error connecting to API", slog.String("method", method), slog.String("path", path), slog.String("error", err.Error()))
		return apperrors.NewExternalServiceError("API connection error", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error("Failed to decode API response", slog.String("path", path), slog.String("error", err.Error()))
		return apperrors.NewExternalServiceError("invalid API response", err)
	}
	return nil
}

// decodeError maps an error response back onto the apperrors sentinels.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body dto.ErrorResponse
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.NewNotFoundError(msg)
	case http.StatusConflict:
		return apperrors.NewConflictError(msg)
	case http.StatusForbidden:
		return apperrors.NewForbiddenError(msg)
	case http.StatusBadRequest:
		return apperrors.NewValidationFailedError(msg)
	case http.StatusUnauthorized:
		return apperrors.NewAppError(http.StatusUnauthorized, msg, apperrors.ErrUnauthorized)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusTooManyRequests:
		return apperrors.NewExternalServiceError(msg, nil)
	default:
		return apperrors.NewAppError(resp.StatusCode, msg, errors.New(http.StatusText(resp.StatusCode)))
	}
}

func pathf(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}
