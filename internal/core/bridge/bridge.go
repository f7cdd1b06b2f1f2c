package bridge

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/okvist/syncbridge/internal/core/marker"
	"github.com/okvist/syncbridge/internal/core/waitloop"
	"github.com/okvist/syncbridge/internal/telemetry/logger"
	"github.com/okvist/syncbridge/internal/telemetry/metric"
)

// Bridge composes the marker store and the wait loop around an
// executor.
type Bridge struct {
	exec         Executor
	store        *marker.Store
	log          logger.Logger
	metrics      *metric.Registry
	pollInterval time.Duration
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithStore sets the marker store. A store is created with defaults
// when none is supplied.
func WithStore(s *marker.Store) Option {
	return func(b *Bridge) { b.store = s }
}

// WithLogger sets the bridge logger.
func WithLogger(l logger.Logger) Option {
	return func(b *Bridge) { b.log = l }
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(b *Bridge) { b.metrics = m }
}

// WithPollInterval sets the wait loop's probe cadence.
func WithPollInterval(d time.Duration) Option {
	return func(b *Bridge) { b.pollInterval = d }
}

// New creates a Bridge around the given executor.
func New(exec Executor, opts ...Option) *Bridge {
	b := &Bridge{
		exec:         exec,
		log:          logger.Default(),
		pollInterval: waitloop.DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.store == nil {
		b.store = marker.New(marker.WithLogger(b.log), marker.WithMetrics(b.metrics))
	}
	return b
}

// Store returns the bridge's marker store.
func (b *Bridge) Store() *marker.Store {
	return b.store
}

// Do starts the operation and blocks until it completes or the
// context's deadline/cancellation forces a stop.
//
// The returned error is reserved for the single hard failure path:
// failing to issue the operation ID. Everything the operation itself
// reports, including its cancellation error, arrives inside the
// Result, untouched.
//
// A nil Result with a nil error means the wait was forced to stop
// before any outcome was captured; callers that need a fallback value
// in that case use DoValue.
func (b *Bridge) Do(ctx context.Context, req *Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	id, err := b.store.Issue()
	if err != nil {
		return nil, fmt.Errorf("issue operation id: %w", err)
	}

	log := b.log.With("op_id", id, "url", req.URL)
	log.Debug("starting synchronous call")

	// The result slot is written by the completion handler and read
	// after the wait unblocks. The forced-stop path returns without
	// synchronizing against the handler, so the slot must be atomic;
	// whichever side acts first wins.
	var slot atomic.Pointer[Result]

	handle := b.exec.Start(req, func(r *Result) {
		slot.Store(r)
		b.store.Remove(id)
	})

	var probe waitloop.Probe
	if ctx.Done() != nil {
		probe = func() bool {
			if ctx.Err() != nil {
				handle.Cancel()
				return true
			}
			return false
		}
	}

	if b.metrics != nil {
		b.metrics.WaitsInFlight.Inc()
	}
	start := time.Now()

	reason := waitloop.Wait(b.store, id, probe, b.pollInterval)

	elapsed := time.Since(start)
	if b.metrics != nil {
		b.metrics.WaitsInFlight.Dec()
		b.metrics.WaitDuration.Observe(elapsed.Seconds())
	}

	res := slot.Load()
	if b.metrics != nil {
		b.metrics.CallsTotal.WithLabelValues(outcome(reason, res)).Inc()
	}
	log.Debug("synchronous call finished",
		"reason", reason.String(),
		"elapsed", elapsed,
		"captured", res != nil,
	)

	return res, nil
}

// Get performs a synchronous GET against the destination.
func (b *Bridge) Get(ctx context.Context, url string) (*Result, error) {
	return b.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

// Post performs a synchronous POST against the destination.
func (b *Bridge) Post(ctx context.Context, url, contentType string, body []byte) (*Result, error) {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return b.Do(ctx, &Request{
		Method: http.MethodPost,
		URL:    url,
		Header: header,
		Body:   body,
	})
}

// DoValue runs the operation synchronously and decodes the captured
// result into a caller-defined value. fallback is returned when the
// call was stopped before any outcome was captured.
func DoValue[T any](b *Bridge, ctx context.Context, req *Request, fallback T, decode func(*Result) (T, error)) (T, error) {
	res, err := b.Do(ctx, req)
	if err != nil {
		return fallback, err
	}
	if res == nil {
		return fallback, nil
	}
	return decode(res)
}

func outcome(reason waitloop.Reason, res *Result) string {
	switch {
	case reason == waitloop.Stopped:
		return metric.OutcomeStopped
	case res != nil && res.Err != nil:
		return metric.OutcomeError
	default:
		return metric.OutcomeCompleted
	}
}
