package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultServiceName names the service in errors and logs.
const DefaultServiceName = "dexi"

// HeaderRequestID carries the per-request id.
const HeaderRequestID = "X-Request-Id"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client sends requests relative to a base URL. Requests are not retried.
type Client struct {
	client      *http.Client
	baseURL     string
	serviceName string
	limiter     *rate.Limiter
	logger      *zap.Logger

	// beforeRequest is called before each request (for auth headers, etc.)
	beforeRequest func(req *http.Request)
}

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	Client        *http.Client
	BaseURL       string
	ServiceName   string
	BeforeRequest func(req *http.Request)

	// Limiter, if set, is waited on before each request.
	Limiter *rate.Limiter

	Logger *zap.Logger
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		client:        cfg.Client,
		baseURL:       cfg.BaseURL,
		serviceName:   cfg.ServiceName,
		limiter:       cfg.Limiter,
		logger:        cfg.Logger,
		beforeRequest: cfg.BeforeRequest,
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: DefaultTimeout}
	}
	if c.serviceName == "" {
		c.serviceName = DefaultServiceName
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}

	return c
}

// BaseURL returns the base URL with its trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// HTTPClient returns the underlying client.
func (c *Client) HTTPClient() *http.Client { return c.client }

// URL resolves path against the base URL.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + strings.TrimPrefix(path, "/")
}

// Request executes an HTTP request with a JSON encoded body.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return c.RequestWithHeaders(ctx, method, path, body, nil)
}

// RequestWithHeaders executes an HTTP request with custom headers.
func (c *Client) RequestWithHeaders(
	ctx context.Context,
	method, path string,
	body any,
	headers map[string]string,
) (*http.Response, error) {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	}

	return c.do(ctx, method, path, bodyReader, contentType, headers)
}

// RequestStream executes a request whose body is streamed from body. The
// body is read once; if it is an io.Closer it is closed by the transport.
func (c *Client) RequestStream(
	ctx context.Context,
	method, path, contentType string,
	body io.Reader,
) (*http.Response, error) {
	return c.do(ctx, method, path, body, contentType, nil)
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	body io.Reader,
	contentType string,
	headers map[string]string,
) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s rate limit wait: %w", c.serviceName, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if id, err := nanoid.New(); err == nil {
		req.Header.Set(HeaderRequestID, id)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if c.beforeRequest != nil {
		c.beforeRequest(req)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", req.Header.Get(HeaderRequestID)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s request failed: %w", c.serviceName, err)
	}

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", req.Header.Get(HeaderRequestID)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	return resp, nil
}

// Get performs a GET request and decodes the response into result.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	resp, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// Post performs a POST request and decodes the response into result.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	resp, err := c.Request(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// GetRaw performs a GET request and returns the raw response body.
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp) {
		return nil, c.parseError(resp, path)
	}

	return io.ReadAll(resp.Body)
}

// Open performs a GET request and returns the response with its body
// unread. The caller must close the body. Non-2xx responses are returned as
// *APIError with the body already closed.
func (c *Client) Open(ctx context.Context, path string) (*http.Response, error) {
	resp, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	if !success(resp) {
		defer resp.Body.Close()
		return nil, c.parseError(resp, path)
	}

	return resp, nil
}

// handleResponse checks status and decodes the response body.
func (c *Client) handleResponse(resp *http.Response, path string, result any) error {
	if !success(resp) {
		return c.parseError(resp, path)
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", c.serviceName, err)
	}

	return nil
}

// parseError parses an error response into an APIError.
func (c *Client) parseError(resp *http.Response, path string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{
		Service:    c.serviceName,
		StatusCode: resp.StatusCode,
		Endpoint:   path,
		RequestID:  resp.Header.Get(HeaderRequestID),
	}
	if resp.Request != nil {
		apiErr.Method = resp.Request.Method
		if apiErr.RequestID == "" {
			apiErr.RequestID = resp.Request.Header.Get(HeaderRequestID)
		}
	}

	if gjson.ValidBytes(body) {
		msg := gjson.GetManyBytes(body, "message", "error", "msg")
		for _, m := range msg {
			if m.Type == gjson.String && m.Str != "" {
				apiErr.Message = m.Str
				break
			}
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

func success(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
