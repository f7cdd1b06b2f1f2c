package waitloop

import (
	"time"

	"github.com/okvist/syncbridge/internal/core/marker"
)

// DefaultPollInterval is the default probe cadence.
const DefaultPollInterval = 25 * time.Millisecond

// Probe is a caller-supplied per-iteration check invoked while waiting.
// Returning true forces the wait to stop before natural completion;
// the probe is where the caller requests cancellation of the underlying
// operation.
type Probe func() bool

// Reason reports why a wait returned.
type Reason int

const (
	// Completed means the operation's marker disappeared.
	Completed Reason = iota

	// Stopped means the probe forced termination.
	Stopped
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case Completed:
		return "completed"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Wait blocks until the operation's marker is gone or the probe forces
// a stop.
//
// If the marker is already absent (the completion handler raced ahead
// of the wait) it returns immediately. A nil probe waits for
// completion alone. interval governs how often the probe runs;
// non-positive values fall back to DefaultPollInterval.
//
// On exit for any reason the marker is removed once more. That guards
// against a forced stop leaving the marker live while the operation's
// own completion handler never runs; removal is idempotent, so the
// usual case where the handler already cleaned up costs nothing.
func Wait(store *marker.Store, id string, probe Probe, interval time.Duration) Reason {
	defer store.Remove(id)

	if !store.Has(id) {
		return Completed
	}

	done := store.Done(id)

	if probe == nil {
		<-done
		return Completed
	}

	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return Completed
		case <-ticker.C:
			if probe() {
				return Stopped
			}
		}
	}
}
