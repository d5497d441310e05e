// Package api is the authenticated session layer over the task backend: one
// explicitly constructed transport with a persistent cookie jar, four typed
// service facades derived from it, and translation of failures into
// user-displayable messages.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/abyxtask/taskctl/internal/infrastructure/config"
	"github.com/abyxtask/taskctl/internal/infrastructure/logger"
)

// Client owns the shared transport configuration: base URL, the cookie-jarred
// HTTP client, the outbound rate limiter, and the request validator. Service
// facades are initialized on first access and reused for the process
// lifetime. Construct one at startup and pass it down; there is no package
// level instance.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	jar      *CookieJar
	limiter  *rate.Limiter
	validate *validator.Validate
	logger   *logger.Logger

	authOnce sync.Once
	auth     *AuthService

	usersOnce sync.Once
	users     *UserService

	projectsOnce sync.Once
	projects     *ProjectService

	tasksOnce sync.Once
	tasks     *TaskService
}

// New creates a client for the backend at cfg.BaseURL, sending and persisting
// session cookies through jar.
func New(cfg config.APIConfig, jar *CookieJar, log *logger.Logger) (*Client, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	if log == nil {
		log = logger.Nop()
	}

	burst := cfg.RateLimitBurst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(cfg.RateLimitRPS)
	if limit <= 0 {
		limit = rate.Inf
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.Timeout,
		},
		jar:      jar,
		limiter:  rate.NewLimiter(limit, burst),
		validate: validator.New(),
		logger:   log.WithComponent("api"),
	}, nil
}

// Auth returns the authentication service facade.
func (c *Client) Auth() *AuthService {
	c.authOnce.Do(func() {
		c.auth = &AuthService{client: c}
	})
	return c.auth
}

// Users returns the user service facade.
func (c *Client) Users() *UserService {
	c.usersOnce.Do(func() {
		c.users = &UserService{client: c}
	})
	return c.users
}

// Projects returns the project service facade.
func (c *Client) Projects() *ProjectService {
	c.projectsOnce.Do(func() {
		c.projects = &ProjectService{client: c}
	})
	return c.projects
}

// Tasks returns the task service facade.
func (c *Client) Tasks() *TaskService {
	c.tasksOnce.Do(func() {
		c.tasks = &TaskService{client: c}
	})
	return c.tasks
}

// endpoint joins path segments onto the base URL, escaping each segment.
func (c *Client) endpoint(parts ...string) *url.URL {
	return c.baseURL.JoinPath(parts...)
}

// doJSON sends a request with an optional JSON body and decodes a successful
// response into out. Request payloads are validated before anything is sent.
func (c *Client) doJSON(ctx context.Context, method string, endpoint *url.URL, body, out any) error {
	var reader io.Reader
	contentType := ""

	if body != nil {
		if err := c.validate.Struct(body); err != nil {
			return fmt.Errorf("invalid request: %w", err)
		}

		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	return c.do(ctx, method, endpoint, contentType, reader, out)
}

// do issues a single request. Failed responses come back as *Error with the
// translated message; transport failures are returned wrapped for Advice to
// classify. No retries: every failure is terminal for its call.
func (c *Client) do(ctx context.Context, method string, endpoint *url.URL, contentType string, body io.Reader, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).Debugw("HTTP request failed",
			"method", method, "path", endpoint.Path, "request_id", requestID)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.LogHTTPRequest(method, endpoint.Path, requestID, resp.StatusCode,
		float64(time.Since(start).Milliseconds()))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return translate(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
