package world

import (
	"github.com/google/uuid"
)

// #region entity-id

// EntityID identifies an entity for its lifetime.
type EntityID string

// NewEntityID returns a fresh random entity ID.
func NewEntityID() EntityID {
	return EntityID(uuid.New().String())
}

// #endregion entity-id

// #region entity

// Entity is one controlled entity: an optional advisor, a fixed-size
// behavior slot table, and free-form facts for scoring and act systems.
type Entity struct {
	id      EntityID
	slots   Slots
	advisor any
	facts   map[string]any
}

// ID returns the entity's identifier.
func (e *Entity) ID() EntityID {
	return e.id
}

// Slots returns the entity's behavior slot table. Nil until an advisor
// is granted.
func (e *Entity) Slots() Slots {
	return e.slots
}

// Advisor returns the advisor granted to this entity, or nil.
func (e *Entity) Advisor() any {
	return e.advisor
}

// GrantAdvisor attaches decision-making state to the entity and sizes its
// behavior slot table to slotCount (one slot per schema variant). The
// advisor lives until the entity is despawned.
func (e *Entity) GrantAdvisor(advisor any, slotCount int) {
	e.advisor = advisor
	e.slots = NewSlots(slotCount)
}

// Fact reads a named fact. Returns nil when absent.
func (e *Entity) Fact(name string) any {
	return e.facts[name]
}

// SetFact stores a named fact on the entity.
func (e *Entity) SetFact(name string, value any) {
	if e.facts == nil {
		e.facts = make(map[string]any)
	}
	e.facts[name] = value
}

// #endregion entity

// #region world

// World owns all entities and the deferred command queue. Mutations issued
// through EntityCommands are buffered and applied only at Flush, never
// mid-pass.
type World struct {
	entities map[EntityID]*Entity
	order    []EntityID
	pending  []command
}

// New creates an empty world.
func New() *World {
	return &World{
		entities: make(map[EntityID]*Entity),
	}
}

// Spawn creates a new entity, visible immediately.
func (w *World) Spawn() *Entity {
	e := &Entity{id: NewEntityID()}
	w.entities[e.id] = e
	w.order = append(w.order, e.id)
	return e
}

// Despawn schedules removal of an entity and everything attached to it.
// Takes effect at the next Flush.
func (w *World) Despawn(id EntityID) {
	w.pending = append(w.pending, command{entity: id, kind: cmdDespawn})
}

// Entity looks up an entity by ID.
func (w *World) Entity(id EntityID) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Each visits all live entities in spawn order.
func (w *World) Each(fn func(e *Entity)) {
	for _, id := range w.order {
		if e, ok := w.entities[id]; ok {
			fn(e)
		}
	}
}

// #endregion world

// #region commands

type commandKind int

const (
	cmdInsert commandKind = iota
	cmdRemove
	cmdDespawn
)

// command is one deferred mutation against an entity.
type command struct {
	entity EntityID
	kind   commandKind
	slot   int
	record any
}

// EntityCommands queues deferred mutations for one entity.
type EntityCommands struct {
	world  *World
	entity EntityID
}

// Commands returns a deferred-mutation handle for the given entity.
func (w *World) Commands(id EntityID) EntityCommands {
	return EntityCommands{world: w, entity: id}
}

// Entity returns the entity the commands target.
func (c EntityCommands) Entity() EntityID {
	return c.entity
}

// Insert schedules a behavior record into the given slot, replacing any
// record already there when the queue is flushed.
func (c EntityCommands) Insert(slot int, record any) {
	c.world.pending = append(c.world.pending, command{
		entity: c.entity,
		kind:   cmdInsert,
		slot:   slot,
		record: record,
	})
}

// Remove schedules clearing of the given slot.
func (c EntityCommands) Remove(slot int) {
	c.world.pending = append(c.world.pending, command{
		entity: c.entity,
		kind:   cmdRemove,
		slot:   slot,
	})
}

// Flush applies all pending commands in issue order. Commands against
// entities despawned earlier in the queue are dropped silently.
func (w *World) Flush() {
	queue := w.pending
	w.pending = nil
	for _, cmd := range queue {
		e, ok := w.entities[cmd.entity]
		if !ok {
			continue
		}
		switch cmd.kind {
		case cmdInsert:
			e.slots.set(cmd.slot, cmd.record)
		case cmdRemove:
			e.slots.set(cmd.slot, nil)
		case cmdDespawn:
			delete(w.entities, cmd.entity)
			for i, id := range w.order {
				if id == cmd.entity {
					w.order = append(w.order[:i], w.order[i+1:]...)
					break
				}
			}
		}
	}
}

// PendingCommands reports how many mutations are queued but not yet applied.
func (w *World) PendingCommands() int {
	return len(w.pending)
}

// #endregion commands
