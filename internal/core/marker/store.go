package marker

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okvist/syncbridge/internal/core/domain"
	"github.com/okvist/syncbridge/internal/telemetry/logger"
	"github.com/okvist/syncbridge/internal/telemetry/metric"
	"github.com/okvist/syncbridge/pkg/cmap"
)

const (
	// removeAttempts bounds best-effort marker file deletion.
	removeAttempts = 10

	// removeRetryDelay is the pause between deletion attempts.
	removeRetryDelay = 5 * time.Millisecond

	// issueAttempts bounds ID regeneration on a live collision and
	// working-directory name regeneration on a namespace collision.
	issueAttempts = 8

	// dirPrefix prefixes the per-process working directory name.
	dirPrefix = "syncbridge-"
)

// closedDone is returned for IDs that are not live, so waiters on an
// already-finished operation never block.
var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// pending tracks one live operation.
type pending struct {
	done chan struct{}
	once sync.Once
	path string
}

// Store issues operation IDs and owns their markers. It is constructed
// explicitly and passed to whoever needs it; there is no package-level
// instance.
type Store struct {
	registry *cmap.Map[*pending]
	log      logger.Logger
	metrics  *metric.Registry

	baseDir string
	dirOnce sync.Once
	dir     string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithBaseDir overrides the namespace the working directory is created
// under. Defaults to the system temp directory.
func WithBaseDir(dir string) Option {
	return func(s *Store) { s.baseDir = dir }
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates a new Store.
func New(opts ...Option) *Store {
	s := &Store{
		registry: cmap.New[*pending](),
		log:      logger.Default(),
		baseDir:  os.TempDir(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// workDir returns the store's working directory, creating it lazily on
// first use. The directory name carries a fresh random suffix and is
// checked for collision against the shared namespace, so concurrent
// store instances never share markers. On creation failure the store
// degrades to the shared base directory instead of failing the caller.
func (s *Store) workDir() string {
	s.dirOnce.Do(func() {
		for i := 0; i < issueAttempts; i++ {
			suffix := make([]byte, 8)
			if _, err := rand.Read(suffix); err != nil {
				break
			}
			candidate := filepath.Join(s.baseDir, dirPrefix+hex.EncodeToString(suffix))
			if _, err := os.Stat(candidate); err == nil {
				continue // already claimed by another instance
			}
			if err := os.Mkdir(candidate, 0o700); err != nil {
				continue
			}
			s.dir = candidate
			return
		}
		s.log.Warn("cannot create marker working directory, degrading to shared temp dir",
			"base_dir", s.baseDir,
		)
		s.dir = s.baseDir
	})
	return s.dir
}

// Dir returns the working directory holding the marker files.
func (s *Store) Dir() string {
	return s.workDir()
}

// Issue generates a unique operation ID and materializes its marker.
//
// The ID is guaranteed distinct from every currently live ID: the
// registry claim is atomic and a colliding candidate is regenerated.
// On return the marker exists; if it cannot be created the claim is
// released and the call fails. The rest of the system assumes a handed
// out ID has a live marker, so this is the one hard failure path.
func (s *Store) Issue() (string, error) {
	for i := 0; i < issueAttempts; i++ {
		id, err := domain.NewOpID()
		if err != nil {
			return "", err
		}

		p := &pending{
			done: make(chan struct{}),
			path: filepath.Join(s.workDir(), id),
		}
		if !s.registry.SetIfAbsent(id, p) {
			continue // live collision, regenerate
		}

		if err := os.WriteFile(p.path, nil, 0o600); err != nil {
			s.registry.Delete(id)
			return "", domain.ErrMarkerCreate.WithCause(err)
		}

		return id, nil
	}
	return "", domain.ErrOpIDExhausted
}

// Has reports whether the operation is still live.
//
// The answer is eventually consistent: a concurrent Remove may land
// right after the check. Callers treat a true result as "possibly still
// pending", never as an ordering guarantee.
func (s *Store) Has(id string) bool {
	return s.registry.Has(id)
}

// Done returns the operation's completion channel. The channel is
// closed when the operation finishes; for an ID that is not live the
// returned channel is already closed.
func (s *Store) Done(id string) <-chan struct{} {
	if p, ok := s.registry.Get(id); ok {
		return p.done
	}
	return closedDone
}

// Remove marks the operation done and deletes its marker. It is
// idempotent: the done channel closes exactly once and repeated calls
// are no-ops. File deletion is best-effort with a bounded retry and
// gives up silently beyond it.
func (s *Store) Remove(id string) {
	p, ok := s.registry.Get(id)
	if !ok {
		return
	}

	p.once.Do(func() {
		close(p.done)
	})
	s.registry.Delete(id)
	s.removeFile(p.path, id)
}

// Count returns the number of live operations.
func (s *Store) Count() int {
	return s.registry.Count()
}

func (s *Store) removeFile(path, id string) {
	for attempt := 1; attempt <= removeAttempts; attempt++ {
		err := os.Remove(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return
		}
		if s.metrics != nil {
			s.metrics.MarkerRemoveRetries.Inc()
		}
		time.Sleep(removeRetryDelay)
	}
	s.log.Warn("giving up on marker file removal",
		"op_id", id,
		"attempts", removeAttempts,
	)
}
