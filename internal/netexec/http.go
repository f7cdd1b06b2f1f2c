package netexec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/okvist/syncbridge/internal/core/bridge"
	"github.com/okvist/syncbridge/internal/core/domain"
	"github.com/okvist/syncbridge/internal/telemetry/logger"
)

// Defaults.
const (
	DefaultUserAgent    = "syncbridge/1.0"
	DefaultMaxBodyBytes = 32 << 20 // 32 MiB
)

// HTTPExecutor implements bridge.Executor over net/http.
type HTTPExecutor struct {
	client       *http.Client
	limiter      *rate.Limiter
	userAgent    string
	maxBodyBytes int64
	log          logger.Logger
}

// Option configures an HTTPExecutor.
type Option func(*HTTPExecutor)

// WithClient sets the underlying HTTP client.
func WithClient(c *http.Client) Option {
	return func(e *HTTPExecutor) { e.client = c }
}

// WithRateLimit enables client-side rate limiting of outgoing
// operations. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(e *HTTPExecutor) {
		if rps <= 0 {
			e.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		e.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the User-Agent header for requests that don't
// carry their own.
func WithUserAgent(ua string) Option {
	return func(e *HTTPExecutor) { e.userAgent = ua }
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(e *HTTPExecutor) {
		if n > 0 {
			e.maxBodyBytes = n
		}
	}
}

// WithLogger sets the executor logger.
func WithLogger(l logger.Logger) Option {
	return func(e *HTTPExecutor) { e.log = l }
}

// New creates a new HTTPExecutor.
func New(opts ...Option) *HTTPExecutor {
	e := &HTTPExecutor{
		client:       &http.Client{},
		userAgent:    DefaultUserAgent,
		maxBodyBytes: DefaultMaxBodyBytes,
		log:          logger.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// cancelHandle cancels the operation's request context.
type cancelHandle context.CancelFunc

func (h cancelHandle) Cancel() { h() }

// Start begins the operation on its own goroutine and returns a
// cancellable handle. complete is invoked exactly once.
func (e *HTTPExecutor) Start(req *bridge.Request, complete func(*bridge.Result)) bridge.Handle {
	ctx, cancel := context.WithCancel(context.Background())
	go e.run(ctx, cancel, req, complete)
	return cancelHandle(cancel)
}

func (e *HTTPExecutor) run(ctx context.Context, cancel context.CancelFunc, req *bridge.Request, complete func(*bridge.Result)) {
	defer cancel()

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			complete(&bridge.Result{Err: err})
			return
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		complete(&bridge.Result{Err: domain.ErrExecutorStart.WithCause(err)})
		return
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		complete(&bridge.Result{Err: err})
		return
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBodyBytes))
	if err != nil {
		complete(&bridge.Result{
			Status: resp.StatusCode,
			Header: resp.Header,
			Err:    fmt.Errorf("read body: %w", err),
		})
		return
	}

	e.log.Debug("operation completed",
		"url", req.URL,
		"status", resp.StatusCode,
		"bytes", len(payload),
	)

	complete(&bridge.Result{
		Payload: payload,
		Status:  resp.StatusCode,
		Header:  resp.Header,
	})
}
