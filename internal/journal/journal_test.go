package journal

import (
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/utility-advisor/internal/advisor"
	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

func openTemp(t *testing.T) *Recorder {
	t.Helper()
	rec, err := Open(filepath.Join(t.TempDir(), "decisions.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { rec.Close() })
	return rec
}

// 1. Recorded transitions round-trip through Entries.
func TestRecorder_RoundTrip(t *testing.T) {
	rec := openTemp(t)

	rec.Record(1, "e1", advisor.Transition{Action: advisor.ActionAdopt, Identity: "Chase(target=p)", Score: 4.0})
	rec.Record(2, "e1", advisor.Transition{Action: advisor.ActionRefresh, Identity: "Chase(target=p)", Score: 6.5})
	rec.Record(2, "e2", advisor.Transition{Action: advisor.ActionReplace, Identity: "Flee(threat=p)", Score: 11.0, Desync: true})

	entries, err := rec.Entries(10)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Entries returns most recent first.
	latest := entries[0]
	if latest.Entity != "e2" || latest.Action != advisor.ActionReplace {
		t.Errorf("unexpected latest entry: %+v", latest)
	}
	if !latest.Desync {
		t.Error("expected desync flag preserved")
	}
	if latest.Score != 11.0 {
		t.Errorf("expected score 11.0, got %v", latest.Score)
	}
	if latest.RunID != rec.RunID() {
		t.Errorf("expected run %s, got %s", rec.RunID(), latest.RunID)
	}
	if latest.CreatedAt.IsZero() {
		t.Error("expected created_at set")
	}
}

// 2. EntityHistory filters to one entity and orders by cycle.
func TestRecorder_EntityHistory(t *testing.T) {
	rec := openTemp(t)

	rec.Record(1, "e1", advisor.Transition{Action: advisor.ActionAdopt, Identity: "Idle", Score: 1})
	rec.Record(1, "e2", advisor.Transition{Action: advisor.ActionAdopt, Identity: "Idle", Score: 1})
	rec.Record(2, "e1", advisor.Transition{Action: advisor.ActionReplace, Identity: "Chase(target=p)", Score: 5})

	history, err := rec.EntityHistory(world.EntityID("e1"), 10)
	if err != nil {
		t.Fatalf("EntityHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries for e1, got %d", len(history))
	}
	if history[0].Cycle != 1 || history[1].Cycle != 2 {
		t.Errorf("expected cycle order 1,2, got %d,%d", history[0].Cycle, history[1].Cycle)
	}
	for _, e := range history {
		if e.Entity != "e1" {
			t.Errorf("expected only e1 entries, got %s", e.Entity)
		}
	}
}

// 3. ActionCounts aggregates the recorder's own run only.
func TestRecorder_ActionCountsPerRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decisions.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	first.Record(1, "e1", advisor.Transition{Action: advisor.ActionAdopt, Identity: "Idle", Score: 1})
	first.Record(2, "e1", advisor.Transition{Action: advisor.ActionRefresh, Identity: "Idle", Score: 1})
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if second.RunID() == first.RunID() {
		t.Fatal("expected a fresh run ID per Open")
	}
	second.Record(1, "e1", advisor.Transition{Action: advisor.ActionAdopt, Identity: "Idle", Score: 1})

	counts, err := second.ActionCounts()
	if err != nil {
		t.Fatalf("ActionCounts: %v", err)
	}
	if counts[advisor.ActionAdopt] != 1 || counts[advisor.ActionRefresh] != 0 {
		t.Errorf("expected counts scoped to the second run, got %v", counts)
	}

	// Both runs remain visible to Entries.
	entries, err := second.Entries(10)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries across runs, got %d", len(entries))
	}
}

// 4. The recorder plugs into the decision pipeline as a sink.
func TestRecorder_AsSink(t *testing.T) {
	var _ advisor.Sink = (*Recorder)(nil)
}
