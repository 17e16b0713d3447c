// Package api wraps the storefront REST API, one function per endpoint.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Credentials supplies the bearer token and is cleared when the API rejects it.
// session.AuthStore satisfies it.
type Credentials interface {
	Token() (string, error)
	Clear() error
}

// Config holds API connection details.
type Config struct {
	BaseURL string
	// Timeout bounds each request. Zero leaves the transport default.
	Timeout time.Duration
}

// Client calls the REST API. It never retries.
type Client struct {
	baseURL        string
	timeout        time.Duration
	creds          Credentials
	http           *fiber.Client
	logger         *zap.Logger
	onUnauthorized func()
}

// NewClient creates a Client. creds may be nil for anonymous use.
func NewClient(cfg Config, creds Credentials, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		creds:   creds,
		http:    &fiber.Client{},
		logger:  logger,
	}
}

// OnUnauthorized sets the hook run after a 401 has cleared the session.
// The CLI uses it to send the user to the login flow.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) agent(method, target string) (*fiber.Agent, error) {
	switch method {
	case fiber.MethodGet:
		return c.http.Get(target), nil
	case fiber.MethodPost:
		return c.http.Post(target), nil
	case fiber.MethodPut:
		return c.http.Put(target), nil
	case fiber.MethodPatch:
		return c.http.Patch(target), nil
	case fiber.MethodDelete:
		return c.http.Delete(target), nil
	default:
		return nil, fmt.Errorf("unsupported method %s", method)
	}
}

// do sends one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	a, err := c.agent(method, target)
	if err != nil {
		return err
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	if c.creds != nil {
		token, err := c.creds.Token()
		if err != nil {
			return fmt.Errorf("failed to read session token: %w", err)
		}
		if token != "" {
			a.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
	}
	if body != nil {
		a.JSON(body)
	}
	if timeout := c.requestTimeout(ctx); timeout > 0 {
		a.Timeout(timeout)
	}

	status, respBody, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}
	c.logger.Debug("api call", zap.String("method", method), zap.String("path", path), zap.Int("status", status))

	if status == fiber.StatusUnauthorized {
		c.invalidateSession()
	}
	if status < 200 || status >= 300 {
		return newError(status, respBody)
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// requestTimeout is the tighter of the configured timeout and the context deadline.
func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout == 0 || remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

func (c *Client) invalidateSession() {
	if c.creds != nil {
		if err := c.creds.Clear(); err != nil {
			c.logger.Warn("failed to clear session after 401", zap.Error(err))
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, fiber.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, fiber.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, fiber.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, fiber.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, fiber.MethodDelete, path, nil, body, out)
}

// dataEnvelope is the {data: ...} wrapper some endpoints use.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// messageResponse is the {message: ...} body of acknowledgement endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

func escape(id string) string {
	return url.PathEscape(id)
}
