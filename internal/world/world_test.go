package world

import "testing"

// 1. Spawn is immediate, IDs are unique, Each visits in spawn order.
func TestWorld_SpawnOrder(t *testing.T) {
	w := New()
	a := w.Spawn()
	b := w.Spawn()
	c := w.Spawn()

	if a.ID() == b.ID() || b.ID() == c.ID() {
		t.Fatal("expected unique entity IDs")
	}
	if w.Len() != 3 {
		t.Fatalf("expected 3 entities, got %d", w.Len())
	}

	var visited []EntityID
	w.Each(func(e *Entity) {
		visited = append(visited, e.ID())
	})
	if len(visited) != 3 || visited[0] != a.ID() || visited[1] != b.ID() || visited[2] != c.ID() {
		t.Errorf("expected spawn-order visit, got %v", visited)
	}
}

// 2. Insert and Remove are deferred until Flush.
func TestWorld_DeferredCommands(t *testing.T) {
	w := New()
	e := w.Spawn()
	e.GrantAdvisor(struct{}{}, 2)

	cmd := w.Commands(e.ID())
	cmd.Insert(0, "record")
	if e.Slots().Get(0) != nil {
		t.Fatal("expected insert to be deferred")
	}
	if w.PendingCommands() != 1 {
		t.Fatalf("expected 1 pending command, got %d", w.PendingCommands())
	}

	w.Flush()
	if e.Slots().Get(0) != "record" {
		t.Fatal("expected record attached after flush")
	}
	if w.PendingCommands() != 0 {
		t.Error("expected queue drained after flush")
	}

	cmd.Remove(0)
	if e.Slots().Get(0) != "record" {
		t.Fatal("expected remove to be deferred")
	}
	w.Flush()
	if e.Slots().Get(0) != nil {
		t.Fatal("expected slot cleared after flush")
	}
}

// 3. Commands apply in issue order: a later insert to the same slot wins.
func TestWorld_CommandOrder(t *testing.T) {
	w := New()
	e := w.Spawn()
	e.GrantAdvisor(struct{}{}, 1)

	cmd := w.Commands(e.ID())
	cmd.Insert(0, "old")
	cmd.Remove(0)
	cmd.Insert(0, "new")
	w.Flush()

	if e.Slots().Get(0) != "new" {
		t.Fatalf("expected last insert to win, got %v", e.Slots().Get(0))
	}
}

// 4. Despawn is deferred; commands against a despawned entity are dropped.
func TestWorld_Despawn(t *testing.T) {
	w := New()
	e := w.Spawn()
	e.GrantAdvisor(struct{}{}, 1)

	w.Despawn(e.ID())
	if _, ok := w.Entity(e.ID()); !ok {
		t.Fatal("expected despawn to be deferred")
	}
	w.Commands(e.ID()).Insert(0, "record")
	w.Flush()

	if _, ok := w.Entity(e.ID()); ok {
		t.Fatal("expected entity gone after flush")
	}
	if w.Len() != 0 {
		t.Errorf("expected empty world, got %d", w.Len())
	}
	w.Each(func(e *Entity) {
		t.Error("expected no entities visited")
	})
}

// 5. Facts round-trip; absent facts read as nil.
func TestEntity_Facts(t *testing.T) {
	w := New()
	e := w.Spawn()

	if e.Fact("position") != nil {
		t.Fatal("expected absent fact to be nil")
	}
	e.SetFact("position", 42)
	if e.Fact("position") != 42 {
		t.Fatalf("expected 42, got %v", e.Fact("position"))
	}
	e.SetFact("position", 43)
	if e.Fact("position") != 43 {
		t.Fatal("expected fact overwrite")
	}
}

// 6. Slot access is bounds-safe and Populated counts non-nil slots.
func TestSlots_Bounds(t *testing.T) {
	s := NewSlots(2)
	if s.Get(-1) != nil || s.Get(2) != nil {
		t.Fatal("expected out-of-range access to read nil")
	}
	if s.Populated() != 0 {
		t.Fatalf("expected 0 populated, got %d", s.Populated())
	}
	s.set(1, "record")
	if s.Populated() != 1 {
		t.Fatalf("expected 1 populated, got %d", s.Populated())
	}
	if s.Get(1) != "record" {
		t.Fatal("expected slot 1 readable")
	}
}
