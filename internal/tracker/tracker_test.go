package tracker

import (
	"testing"
	"time"
)

func TestNewTracker(t *testing.T) {
	tr := New()
	if tr == nil {
		t.Fatal("New() returned nil")
	}
	if tr.Len() != 0 {
		t.Errorf("New() should start empty, got %d entries", tr.Len())
	}
}

func TestIsNovel(t *testing.T) {
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		recorded *time.Time // nil = nothing recorded
		check    time.Time
		want     bool
	}{
		{
			name:  "unseen instance is novel",
			check: base,
			want:  true,
		},
		{
			name:     "same timestamp is not novel",
			recorded: &base,
			check:    base,
			want:     false,
		},
		{
			name:     "later timestamp is novel",
			recorded: &base,
			check:    base.Add(5 * time.Minute),
			want:     true,
		},
		{
			name:     "earlier timestamp is novel",
			recorded: &base,
			check:    base.Add(-5 * time.Minute),
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			if tt.recorded != nil {
				tr.Record("i-001", *tt.recorded)
			}
			if got := tr.IsNovel("i-001", tt.check); got != tt.want {
				t.Errorf("IsNovel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNovelEqualInstantDifferentLocation(t *testing.T) {
	// Equality is instant-based, not representation-based.
	utc := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	other := utc.In(time.FixedZone("UTC+2", 2*3600))

	tr := New()
	tr.Record("i-001", utc)

	if tr.IsNovel("i-001", other) {
		t.Error("IsNovel() = true for the same instant in another zone, want false")
	}
}

func TestRecordOverwrites(t *testing.T) {
	tr := New()
	t1 := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	tr.Record("i-001", t1)
	tr.Record("i-001", t2)

	seen, ok := tr.Seen("i-001")
	if !ok {
		t.Fatal("Seen() reported no entry after Record()")
	}
	if !seen.Equal(t2) {
		t.Errorf("Seen() = %v, want %v", seen, t2)
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
}

func TestRecordIdempotent(t *testing.T) {
	tr := New()
	ts := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	tr.Record("i-001", ts)
	tr.Record("i-001", ts)

	seen, ok := tr.Seen("i-001")
	if !ok || !seen.Equal(ts) {
		t.Errorf("Seen() = %v, %v after double Record, want %v, true", seen, ok, ts)
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d after double Record, want 1", tr.Len())
	}
	if tr.IsNovel("i-001", ts) {
		t.Error("IsNovel() = true after double Record of the same timestamp")
	}
}

func TestTrackerIndependentInstances(t *testing.T) {
	tr := New()
	ts := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	tr.Record("i-001", ts)

	if !tr.IsNovel("i-002", ts) {
		t.Error("IsNovel() = false for an instance that was never recorded")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tr := New()
	t1 := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	tr.Record("i-001", t1)

	snap := tr.Snapshot()
	snap["i-001"] = t1.Add(time.Hour)
	snap["i-002"] = t1

	seen, _ := tr.Seen("i-001")
	if !seen.Equal(t1) {
		t.Error("mutating Snapshot() result changed tracker state")
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d after mutating snapshot, want 1", tr.Len())
	}
}
