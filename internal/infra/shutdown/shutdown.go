// Package shutdown ties OS interrupt signals to context cancellation.
//
// A synchronous call blocked in the wait loop unblocks when its context
// is cancelled, so interrupt handling reduces to cancelling the root
// context handed to the bridge.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okvist/syncbridge/internal/telemetry/logger"
)

// Context returns a context that is cancelled when one of the given
// signals arrives (SIGINT and SIGTERM by default). The returned stop
// function releases the signal registration and cancels the context.
func Context(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Warn("interrupt received, cancelling in-flight operations",
				"signal", sig.String(),
			)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
