package display

import "testing"

func TestNewProgressTracker_Quiet(t *testing.T) {
	tr := NewProgressTracker(3, "fetching", true)
	if _, ok := tr.(NoOpProgressTracker); !ok {
		t.Fatalf("expected NoOpProgressTracker for quiet mode, got %T", tr)
	}
	// NoOpProgressTracker methods must be safe to call unconditionally.
	tr.Increment("origin")
	tr.SetTotal(5)
	tr.Complete()
	tr.Fail(nil)
}
