package marker

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/okvist/syncbridge/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(WithBaseDir(t.TempDir()))
}

func TestIssue(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if !domain.ValidateOpIDFormat(id) {
		t.Errorf("issued id %q has invalid format", id)
	}
	if !s.Has(id) {
		t.Error("issued id should be live")
	}

	// Marker file must exist on return.
	if _, err := os.Stat(filepath.Join(s.Dir(), id)); err != nil {
		t.Errorf("marker file missing after Issue: %v", err)
	}
}

func TestIssueConcurrentUnique(t *testing.T) {
	s := newTestStore(t)

	const n = 200
	var wg sync.WaitGroup
	ids := make(chan string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Issue()
			if err != nil {
				t.Errorf("Issue() error: %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate live id %q", id)
		}
		seen[id] = true
	}

	if s.Count() != n {
		t.Errorf("Count() = %d, want %d", s.Count(), n)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	path := filepath.Join(s.Dir(), id)

	s.Remove(id)

	if s.Has(id) {
		t.Error("id should not be live after Remove")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("marker file should be gone after Remove, stat err = %v", err)
	}

	select {
	case <-s.Done(id):
	default:
		t.Error("Done channel for removed id should be closed")
	}
}

func TestRemoveIdempotent(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	s.Remove(id)
	s.Remove(id) // second call is a no-op, must not panic
	s.Remove("sbop-never-issued")
}

func TestRemoveConcurrent(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	// Completion handler and forced-stop cleanup may both remove the
	// marker near-simultaneously; neither side may panic or deadlock.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Remove(id)
		}()
	}
	wg.Wait()

	if s.Has(id) {
		t.Error("id should not be live after concurrent removes")
	}
}

func TestDoneUnknownIDIsClosed(t *testing.T) {
	s := newTestStore(t)

	select {
	case <-s.Done("sbop-unknown"):
	default:
		t.Error("Done for unknown id should be a closed channel")
	}
}

func TestWorkDirUniquePerStore(t *testing.T) {
	base := t.TempDir()
	s1 := New(WithBaseDir(base))
	s2 := New(WithBaseDir(base))

	if s1.Dir() == s2.Dir() {
		t.Errorf("two stores share working directory %q", s1.Dir())
	}
	for _, s := range []*Store{s1, s2} {
		if !strings.HasPrefix(filepath.Base(s.Dir()), dirPrefix) {
			t.Errorf("working dir %q missing prefix %q", s.Dir(), dirPrefix)
		}
	}
}

func TestWorkDirFallback(t *testing.T) {
	// A base dir that cannot host new directories forces the
	// degrade-gracefully path: the store falls back to the base itself.
	base := filepath.Join(t.TempDir(), "missing", "nested")
	s := New(WithBaseDir(base))

	if got := s.Dir(); got != base {
		t.Errorf("Dir() = %q, want fallback to base %q", got, base)
	}

	// Issue still fails visibly because the marker cannot be created,
	// the one hard failure path.
	if _, err := s.Issue(); err == nil {
		t.Error("Issue() should fail when markers cannot be materialized")
	} else if !domain.IsDomainError(err, "SB-TOKN-5000") {
		t.Errorf("Issue() error = %v, want SB-TOKN-5000", err)
	}
}

func TestNoResidualMarkers(t *testing.T) {
	s := newTestStore(t)

	const n = 100
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id, err := s.Issue()
		if err != nil {
			t.Fatalf("Issue() error: %v", err)
		}
		ids = append(ids, id)
	}
	for _, id := range ids {
		s.Remove(id)
	}

	if s.Count() != 0 {
		t.Errorf("Count() = %d after removing all, want 0", s.Count())
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("%d marker files left behind", len(entries))
	}
}
