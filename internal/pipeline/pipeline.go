package pipeline

import (
	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

// #region stage

// Stage is one system run during a phase. cycle starts at 1.
type Stage func(w *world.World, cycle int)

// #endregion stage

// #region pipeline

// Pipeline runs the three decision phases in fixed order every cycle:
// Suggest, then Decide, then Act. The host constructs it once and registers
// stages explicitly; there is no implicit global registration. The world's
// command queue is flushed between phases, so deferred inserts and removals
// are visible before the next phase reads them.
type Pipeline struct {
	world   *world.World
	suggest []Stage
	decide  []Stage
	act     []Stage
	cycle   int
}

// New creates a pipeline over the given world.
func New(w *world.World) *Pipeline {
	return &Pipeline{world: w}
}

// AddSuggest registers Suggest-phase stages (scoring systems).
func (p *Pipeline) AddSuggest(stages ...Stage) *Pipeline {
	p.suggest = append(p.suggest, stages...)
	return p
}

// AddDecide registers Decide-phase stages (one advisor update system per
// schema).
func (p *Pipeline) AddDecide(stages ...Stage) *Pipeline {
	p.decide = append(p.decide, stages...)
	return p
}

// AddAct registers Act-phase stages (systems that read behavior records and
// perform effects).
func (p *Pipeline) AddAct(stages ...Stage) *Pipeline {
	p.act = append(p.act, stages...)
	return p
}

// World returns the world the pipeline drives.
func (p *Pipeline) World() *world.World {
	return p.world
}

// Cycle returns the number of completed cycles.
func (p *Pipeline) Cycle() int {
	return p.cycle
}

// RunCycle executes one full Suggest -> Decide -> Act pass. Suggest fully
// completes before Decide starts, and Decide before Act.
func (p *Pipeline) RunCycle() {
	p.cycle++
	for _, s := range p.suggest {
		s(p.world, p.cycle)
	}
	p.world.Flush()
	for _, s := range p.decide {
		s(p.world, p.cycle)
	}
	p.world.Flush()
	for _, s := range p.act {
		s(p.world, p.cycle)
	}
	p.world.Flush()
}

// Run executes n consecutive cycles.
func (p *Pipeline) Run(n int) {
	for i := 0; i < n; i++ {
		p.RunCycle()
	}
}

// #endregion pipeline
