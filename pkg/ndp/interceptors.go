package ndp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/nordlys-io/ndp-client/internal/constants"
)

// ErrCircuitBreakerOpen is returned while the circuit breaker is open.
var ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

// InterceptedRequest represents an HTTP request that can be intercepted.
type InterceptedRequest struct {
	Method   string
	Path     string
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// InterceptedResponse represents an HTTP response that can be intercepted.
type InterceptedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *InterceptedRequest) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *InterceptedRequest) error {
	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// LoggingInterceptor logs requests.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *InterceptedRequest) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		}

		if resp.Error != nil {
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// RateLimitInterceptor implements client-side rate limiting with a token
// bucket refilled once per interval.
func RateLimitInterceptor(requestsPerSecond int) RequestInterceptor {
	bucket := make(chan struct{}, requestsPerSecond)

	for i := 0; i < requestsPerSecond; i++ {
		bucket <- struct{}{}
	}

	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(requestsPerSecond))
		defer ticker.Stop()

		for range ticker.C {
			select {
			case bucket <- struct{}{}:
			default:
			}
		}
	}()

	return func(ctx context.Context, req *InterceptedRequest) error {
		select {
		case <-bucket:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// HeaderInterceptor adds custom headers to requests.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *InterceptedRequest) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// EndpointMetrics aggregates per-endpoint call statistics.
type EndpointMetrics struct {
	TotalRequests   int64
	TotalErrors     int64
	TotalLatency    time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time
}

// MetricsCollector collects API metrics per "METHOD path" endpoint key.
type MetricsCollector struct {
	mu       sync.Mutex
	metrics  map[string]*EndpointMetrics
	onChange func(endpoint string, metrics *EndpointMetrics)
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]*EndpointMetrics),
	}
}

// SetOnChange sets a callback invoked after each update.
func (m *MetricsCollector) SetOnChange(fn func(endpoint string, metrics *EndpointMetrics)) {
	m.onChange = fn
}

// GetMetrics returns metrics for an endpoint, or nil.
func (m *MetricsCollector) GetMetrics(endpoint string) *EndpointMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.metrics[endpoint]
}

// MetricsRequestInterceptor records the request start time.
func MetricsRequestInterceptor(collector *MetricsCollector) RequestInterceptor {
	return func(ctx context.Context, req *InterceptedRequest) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata["start_time"] = time.Now()

		return nil
	}
}

// MetricsResponseInterceptor records response metrics.
func MetricsResponseInterceptor(collector *MetricsCollector) ResponseInterceptor {
	return func(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
		endpoint := fmt.Sprintf("%s %s", req.Method, req.Path)

		collector.mu.Lock()

		metrics, ok := collector.metrics[endpoint]
		if !ok {
			metrics = &EndpointMetrics{}
			collector.metrics[endpoint] = metrics
		}

		metrics.TotalRequests++
		metrics.LastRequestTime = time.Now()

		if req.Metadata != nil {
			if startTime, ok := req.Metadata["start_time"].(time.Time); ok {
				latency := time.Since(startTime)
				metrics.TotalLatency += latency
				metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.TotalRequests)
			}
		}

		if resp.Error != nil || resp.StatusCode >= 400 {
			metrics.TotalErrors++
		}

		collector.mu.Unlock()

		if collector.onChange != nil {
			collector.onChange(endpoint, metrics)
		}

		return nil
	}
}

// CircuitBreakerConfig tunes the circuit breaker interceptors.
type CircuitBreakerConfig struct {
	// Threshold is the number of consecutive failures before opening.
	Threshold int

	// Timeout is how long the circuit stays open before a probe.
	Timeout time.Duration

	// SuccessThreshold is the number of successes that close a half-open
	// circuit.
	SuccessThreshold int
}

// CircuitBreaker tracks circuit state across requests.
type CircuitBreaker struct {
	mu          sync.Mutex
	config      *CircuitBreakerConfig
	failures    int
	successes   int
	state       string // "closed", "open", "half-open"
	lastFailure time.Time
}

// NewCircuitBreaker creates a new circuit breaker.
func NewCircuitBreaker(config *CircuitBreakerConfig) *CircuitBreaker {
	if config == nil {
		config = &CircuitBreakerConfig{
			Threshold:        constants.CircuitBreakerThreshold,
			Timeout:          constants.CircuitBreakerTimeout,
			SuccessThreshold: constants.CircuitBreakerSuccessThreshold,
		}
	}

	return &CircuitBreaker{
		config: config,
		state:  "closed",
	}
}

// CircuitBreakerRequestInterceptor checks circuit state before requests.
func CircuitBreakerRequestInterceptor(breaker *CircuitBreaker) RequestInterceptor {
	return func(ctx context.Context, req *InterceptedRequest) error {
		breaker.mu.Lock()
		defer breaker.mu.Unlock()

		if breaker.state == "open" {
			if time.Since(breaker.lastFailure) > breaker.config.Timeout {
				breaker.state = "half-open"
				breaker.successes = 0
			} else {
				return ErrCircuitBreakerOpen
			}
		}

		return nil
	}
}

// CircuitBreakerResponseInterceptor updates circuit state from responses.
func CircuitBreakerResponseInterceptor(breaker *CircuitBreaker) ResponseInterceptor {
	return func(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
		breaker.mu.Lock()
		defer breaker.mu.Unlock()

		if resp.Error != nil || resp.StatusCode >= 500 {
			breaker.failures++
			breaker.lastFailure = time.Now()

			if breaker.failures >= breaker.config.Threshold || breaker.state == "half-open" {
				breaker.state = "open"
			}

			return nil
		}

		switch breaker.state {
		case "half-open":
			breaker.successes++
			if breaker.successes >= breaker.config.SuccessThreshold {
				breaker.state = "closed"
				breaker.failures = 0
			}
		case "closed":
			breaker.failures = 0
		}

		return nil
	}
}
