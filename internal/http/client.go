// Package http implements the authenticated JSON transport shared by all
// resource clients.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/nordlys-io/ndp-client/internal/auth"
	"github.com/nordlys-io/ndp-client/internal/constants"
	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// Logger is the logging interface used by the HTTP layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one HTTP request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is one HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the authenticated JSON transport. Transport-level retries
// apply to idempotent (GET) requests only; multi-item write retries are
// the executor's responsibility, where idempotence must be declared.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	httpClient   *retryablehttp.Client
	logger       Logger
	debug        bool
	userAgent    string
	cache        ndp.Cache
	cacheTTL     time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes transport-level retries for idempotent requests.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithHTTPTimeout bounds each request.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithCache caches successful GET responses.
func WithCache(cache ndp.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// NewClient creates a transport rooted at baseURL. tokenManager may be nil
// for unauthenticated requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultTransportRetryMax
	retryClient.RetryWaitMin = constants.DefaultTransportRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultTransportRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil
	retryClient.CheckRetry = checkRetry

	client := &Client{
		baseURL:      baseURL,
		tokenManager: tokenManager,
		httpClient:   retryClient,
		cacheTTL:     constants.DefaultCacheTTL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

type contextKey string

const methodKey contextKey = "request-method"

// checkRetry restricts transport-level retries to idempotent requests.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if method, ok := ctx.Value(methodKey).(string); ok && method != http.MethodGet {
		return false, nil
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// Do executes one request. Non-2xx responses return both the Response and
// a *ndp.RequestError; transport failures after the request was sent are
// wrapped with ndp.ErrAmbiguousResult so callers can classify unknown
// outcomes.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	cacheKey := req.Method + " " + fullURL
	if cached := c.fromCache(ctx, req, cacheKey); cached != nil {
		return cached, nil
	}

	var bodyReader io.Reader

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(
		context.WithValue(ctx, methodKey, req.Method), req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	err = c.setHeaders(ctx, httpReq, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(req.Method, req.Path, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		// The response started arriving and was cut off; the server may
		// have applied the request.
		return nil, fmt.Errorf("%s %s: reading response: %v: %w",
			req.Method, req.Path, err, ndp.ErrAmbiguousResult)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	if resp.StatusCode >= 400 {
		return resp, c.requestError(req, resp)
	}

	c.toCache(ctx, req, cacheKey, resp)

	return resp, nil
}

func (c *Client) setHeaders(ctx context.Context, httpReq *retryablehttp.Request, req *Request) error {
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("api-version", constants.APIVersion)
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("getting token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return nil
}

func (c *Client) requestError(req *Request, resp *Response) error {
	reqErr := &ndp.RequestError{
		StatusCode: resp.StatusCode,
		Method:     req.Method,
		Path:       req.Path,
	}

	errResp, err := ndp.ParseResponseError(resp.Body)
	if err == nil && errResp.Err.Message != "" {
		reqErr.APIError = &errResp.Err
	}

	return reqErr
}

func (c *Client) fromCache(ctx context.Context, req *Request, key string) *Response {
	if c.cache == nil || req.Method != http.MethodGet {
		return nil
	}

	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	return &Response{StatusCode: http.StatusOK, Body: entry.Data}
}

func (c *Client) toCache(ctx context.Context, req *Request, key string, resp *Response) {
	if c.cache == nil || req.Method != http.MethodGet || resp.StatusCode != http.StatusOK {
		return
	}

	_ = c.cache.Set(ctx, key, &ndp.CacheEntry{
		Data:      resp.Body,
		ExpiresAt: time.Now().Add(c.cacheTTL),
		ETag:      resp.Headers.Get("ETag"),
	})
}

// classifyTransportError distinguishes failures where the request never
// reached the server (safe to report failed) from failures after send,
// whose outcome is unknowable.
func classifyTransportError(method, path string, err error) error {
	if errors.Is(err, syscall.ECONNREFUSED) {
		// Never sent; a plain, retryable failure.
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, ndp.ErrAmbiguousResult)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, ndp.ErrAmbiguousResult)
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, syscall.ECONNRESET) {
		// Connection dropped after the request went out.
		return fmt.Errorf("%s %s: %v: %w", method, path, err, ndp.ErrAmbiguousResult)
	}

	return fmt.Errorf("%s %s: %w", method, path, err)
}
