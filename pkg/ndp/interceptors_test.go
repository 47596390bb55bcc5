package ndp_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/nordlys-io/ndp-client/pkg/ndp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	debugs []string
	errors []string
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.debugs = append(l.debugs, msg)
}
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  {}
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.errors = append(l.errors, msg)
}

func TestInterceptorChain_Order(t *testing.T) {
	chain := ndp.NewInterceptorChain()

	var calls []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *ndp.InterceptedRequest) error {
		calls = append(calls, "first")

		return nil
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *ndp.InterceptedRequest) error {
		calls = append(calls, "second")

		return nil
	})

	req := &ndp.InterceptedRequest{Method: "GET", Path: "/assets"}
	require.NoError(t, chain.ExecuteRequestInterceptors(context.Background(), req))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	chain := ndp.NewInterceptorChain()
	boom := errors.New("boom")

	chain.AddRequestInterceptor(func(ctx context.Context, req *ndp.InterceptedRequest) error {
		return boom
	})

	reached := false

	chain.AddRequestInterceptor(func(ctx context.Context, req *ndp.InterceptedRequest) error {
		reached = true

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &ndp.InterceptedRequest{})
	require.ErrorIs(t, err, boom)
	assert.False(t, reached)
}

func TestLoggingInterceptors(t *testing.T) {
	logger := &recordingLogger{}
	chain := ndp.NewInterceptorChain()
	chain.AddRequestInterceptor(ndp.LoggingInterceptor(logger))
	chain.AddResponseInterceptor(ndp.LoggingResponseInterceptor(logger))

	req := &ndp.InterceptedRequest{Method: "POST", Path: "/events"}
	require.NoError(t, chain.ExecuteRequestInterceptors(context.Background(), req))
	require.NoError(t, chain.ExecuteResponseInterceptors(context.Background(), req,
		&ndp.InterceptedResponse{StatusCode: 200}))
	require.NoError(t, chain.ExecuteResponseInterceptors(context.Background(), req,
		&ndp.InterceptedResponse{StatusCode: 503, Error: errors.New("unavailable")}))

	assert.Equal(t, []string{"API Request", "API Response"}, logger.debugs)
	assert.Equal(t, []string{"API Response Error"}, logger.errors)
}

func TestHeaderInterceptor(t *testing.T) {
	interceptor := ndp.HeaderInterceptor(map[string]string{"X-Env": "staging"})

	req := &ndp.InterceptedRequest{Method: "GET", Path: "/assets"}
	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "staging", req.Headers.Get("X-Env"))
}

func TestRateLimitInterceptor_RespectsContext(t *testing.T) {
	interceptor := ndp.RateLimitInterceptor(1)

	// Consume the initial token.
	require.NoError(t, interceptor(context.Background(), &ndp.InterceptedRequest{}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := interceptor(ctx, &ndp.InterceptedRequest{})
	if err != nil {
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}
}

func TestMetricsInterceptors(t *testing.T) {
	collector := ndp.NewMetricsCollector()
	request := ndp.MetricsRequestInterceptor(collector)
	response := ndp.MetricsResponseInterceptor(collector)

	ctx := context.Background()
	req := &ndp.InterceptedRequest{Method: "GET", Path: "/timeseries"}

	require.NoError(t, request(ctx, req))
	require.NoError(t, response(ctx, req, &ndp.InterceptedResponse{StatusCode: 200}))
	require.NoError(t, request(ctx, req))
	require.NoError(t, response(ctx, req, &ndp.InterceptedResponse{StatusCode: 502}))

	metrics := collector.GetMetrics("GET /timeseries")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)

	assert.Nil(t, collector.GetMetrics("GET /unknown"))
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	breaker := ndp.NewCircuitBreaker(&ndp.CircuitBreakerConfig{
		Threshold:        2,
		Timeout:          time.Minute,
		SuccessThreshold: 1,
	})

	check := ndp.CircuitBreakerRequestInterceptor(breaker)
	record := ndp.CircuitBreakerResponseInterceptor(breaker)

	ctx := context.Background()
	req := &ndp.InterceptedRequest{Method: "POST", Path: "/assets"}
	failure := &ndp.InterceptedResponse{StatusCode: http.StatusServiceUnavailable}

	require.NoError(t, check(ctx, req))
	require.NoError(t, record(ctx, req, failure))
	require.NoError(t, check(ctx, req))
	require.NoError(t, record(ctx, req, failure))

	err := check(ctx, req)
	assert.ErrorIs(t, err, ndp.ErrCircuitBreakerOpen)
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	breaker := ndp.NewCircuitBreaker(&ndp.CircuitBreakerConfig{
		Threshold:        1,
		Timeout:          time.Millisecond,
		SuccessThreshold: 1,
	})

	check := ndp.CircuitBreakerRequestInterceptor(breaker)
	record := ndp.CircuitBreakerResponseInterceptor(breaker)

	ctx := context.Background()
	req := &ndp.InterceptedRequest{Method: "GET", Path: "/assets"}

	require.NoError(t, record(ctx, req, &ndp.InterceptedResponse{StatusCode: 500}))
	assert.ErrorIs(t, check(ctx, req), ndp.ErrCircuitBreakerOpen)

	// After the timeout the breaker probes half-open; one success closes it.
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, check(ctx, req))
	require.NoError(t, record(ctx, req, &ndp.InterceptedResponse{StatusCode: 200}))
	require.NoError(t, check(ctx, req))
}
