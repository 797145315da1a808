package advisor

import (
	"github.com/danielpatrickdp/utility-advisor/internal/pipeline"
	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

// #region sink

// Sink receives one transition report per entity per Decide pass.
type Sink interface {
	Record(cycle int, entity world.EntityID, t Transition)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(cycle int, entity world.EntityID, t Transition)

// Record implements Sink.
func (f SinkFunc) Record(cycle int, entity world.EntityID, t Transition) {
	f(cycle, entity, t)
}

// #endregion sink

// #region update-system

// UpdateSystem builds the Decide-phase stage for one schema: it visits every
// entity carrying an Advisor of that schema, runs its Decide pass against an
// accessor view built from the entity's slot table, and forwards the
// transition to sink (which may be nil). Entities are disjoint, so the pass
// touches each one independently.
func UpdateSystem[S Suggestion[K, A], K Identity, A any](view func(world.Slots) A, sink Sink) pipeline.Stage {
	return func(w *world.World, cycle int) {
		w.Each(func(e *world.Entity) {
			adv, ok := e.Advisor().(*Advisor[S, K, A])
			if !ok {
				return
			}
			t := adv.Decide(view(e.Slots()), w.Commands(e.ID()))
			if sink != nil {
				sink.Record(cycle, e.ID(), t)
			}
		})
	}
}

// #endregion update-system
