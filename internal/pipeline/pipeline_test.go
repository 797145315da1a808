package pipeline

import (
	"testing"

	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

// 1. Phases run in order and every stage sees the same cycle number.
func TestPipeline_PhaseOrder(t *testing.T) {
	w := world.New()
	var trace []string

	stage := func(name string) Stage {
		return func(w *world.World, cycle int) {
			trace = append(trace, name)
			if cycle != 1 {
				t.Errorf("stage %s: expected cycle 1, got %d", name, cycle)
			}
		}
	}

	New(w).
		AddSuggest(stage("s1"), stage("s2")).
		AddDecide(stage("d1")).
		AddAct(stage("a1")).
		RunCycle()

	want := []string{"s1", "s2", "d1", "a1"}
	if len(trace) != len(want) {
		t.Fatalf("expected %d stage runs, got %d", len(want), len(trace))
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], trace[i])
		}
	}
}

// 2. Commands queued in one phase are applied before the next phase runs.
func TestPipeline_FlushBetweenPhases(t *testing.T) {
	w := world.New()
	e := w.Spawn()
	e.GrantAdvisor(struct{}{}, 1)

	p := New(w).
		AddDecide(func(w *world.World, cycle int) {
			w.Commands(e.ID()).Insert(0, "record")
			if e.Slots().Get(0) != nil {
				t.Error("decide: expected insert still deferred")
			}
		}).
		AddAct(func(w *world.World, cycle int) {
			if e.Slots().Get(0) != "record" {
				t.Error("act: expected record visible after decide flush")
			}
		})
	p.RunCycle()

	if w.PendingCommands() != 0 {
		t.Error("expected queue drained after the cycle")
	}
}

// 3. Cycle numbering starts at 1 and advances per RunCycle.
func TestPipeline_CycleCount(t *testing.T) {
	w := world.New()
	var seen []int
	p := New(w).AddSuggest(func(w *world.World, cycle int) {
		seen = append(seen, cycle)
	})

	if p.Cycle() != 0 {
		t.Fatalf("expected 0 completed cycles, got %d", p.Cycle())
	}
	p.Run(3)
	if p.Cycle() != 3 {
		t.Fatalf("expected 3 completed cycles, got %d", p.Cycle())
	}
	for i, c := range seen {
		if c != i+1 {
			t.Errorf("run %d: expected cycle %d, got %d", i, i+1, c)
		}
	}
}
