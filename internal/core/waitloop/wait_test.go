package waitloop

import (
	"testing"
	"time"

	"github.com/okvist/syncbridge/internal/core/marker"
)

func newTestStore(t *testing.T) *marker.Store {
	t.Helper()
	return marker.New(marker.WithBaseDir(t.TempDir()))
}

func TestWaitAlreadyFinished(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	s.Remove(id) // completion handler raced ahead of the wait call

	start := time.Now()
	reason := Wait(s, id, nil, DefaultPollInterval)
	elapsed := time.Since(start)

	if reason != Completed {
		t.Errorf("reason = %v, want Completed", reason)
	}
	if elapsed > 10*time.Millisecond {
		t.Errorf("wait on finished operation took %v, want immediate return", elapsed)
	}
}

func TestWaitUnknownID(t *testing.T) {
	s := newTestStore(t)

	if reason := Wait(s, "sbop-unknown", nil, 0); reason != Completed {
		t.Errorf("reason = %v, want Completed", reason)
	}
}

func TestWaitUntilCompletion(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		s.Remove(id)
	}()

	start := time.Now()
	reason := Wait(s, id, nil, DefaultPollInterval)
	elapsed := time.Since(start)

	if reason != Completed {
		t.Errorf("reason = %v, want Completed", reason)
	}
	if elapsed < 40*time.Millisecond {
		t.Errorf("wait returned after %v, before completion", elapsed)
	}
	if s.Has(id) {
		t.Error("id should not be live after wait returns")
	}
}

func TestWaitProbeStops(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	deadline := time.Now().Add(60 * time.Millisecond)
	probe := func() bool {
		return time.Now().After(deadline)
	}

	start := time.Now()
	reason := Wait(s, id, probe, 10*time.Millisecond)
	elapsed := time.Since(start)

	if reason != Stopped {
		t.Errorf("reason = %v, want Stopped", reason)
	}
	if elapsed < 60*time.Millisecond {
		t.Errorf("forced stop after %v, before the deadline", elapsed)
	}
	if elapsed > 200*time.Millisecond {
		t.Errorf("forced stop after %v, too long past the deadline", elapsed)
	}

	// The forced stop must not leave the marker live.
	if s.Has(id) {
		t.Error("id still live after forced stop")
	}
}

func TestWaitCompletionBeatsProbe(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	probeCalls := 0
	probe := func() bool {
		probeCalls++
		return false
	}

	go func() {
		time.Sleep(30 * time.Millisecond)
		s.Remove(id)
	}()

	if reason := Wait(s, id, probe, 10*time.Millisecond); reason != Completed {
		t.Errorf("reason = %v, want Completed", reason)
	}
	if probeCalls == 0 {
		t.Error("probe should have run at least once while waiting")
	}
}

func TestReasonString(t *testing.T) {
	tests := []struct {
		reason Reason
		want   string
	}{
		{Completed, "completed"},
		{Stopped, "stopped"},
		{Reason(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("Reason(%d).String() = %q, want %q", tt.reason, got, tt.want)
		}
	}
}
