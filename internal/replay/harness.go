// Package replay runs scripted suggestion sequences through the real
// decision pipeline and reports the transition each cycle produced. JSON
// fixtures pin expected transitions so tuning changes that alter decisions
// show up as test failures.
package replay

import (
	"github.com/danielpatrickdp/utility-advisor/internal/advisor"
	"github.com/danielpatrickdp/utility-advisor/internal/behaviors"
	"github.com/danielpatrickdp/utility-advisor/internal/pipeline"
	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

// #region types
// ScriptedSuggestion is one scored offer made during a scripted cycle.
type ScriptedSuggestion struct {
	Score      float32
	Suggestion behaviors.EnemySuggestion
}

// Cycle is the script for a single pipeline cycle, offers in call order.
type Cycle struct {
	Suggestions []ScriptedSuggestion
}

// Result captures the transition a single cycle produced.
type Result struct {
	Cycle    int
	Action   advisor.Action
	Identity string
	Score    float32
	Desync   bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalCycles int
	Adopts      int
	Refreshes   int
	Replaces    int
	NoOps       int
	Desyncs     int
}

// #endregion types

// #region replay
// Replay drives one advisor through the scripted cycles using the real
// pipeline: offers go in during the Suggest phase, the Decide phase runs
// the update system, commands flush between phases. One Result per cycle.
func Replay(consistencyBonus float32, cycles []Cycle) []Result {
	w := world.New()
	e := w.Spawn()
	behaviors.GrantEnemyAdvisor(e, consistencyBonus)

	results := make([]Result, 0, len(cycles))
	collect := advisor.SinkFunc(func(cycle int, entity world.EntityID, t advisor.Transition) {
		results = append(results, Result{
			Cycle:    cycle,
			Action:   t.Action,
			Identity: t.Identity,
			Score:    t.Score,
			Desync:   t.Desync,
		})
	})

	script := func(w *world.World, cycle int) {
		idx := cycle - 1
		if idx < 0 || idx >= len(cycles) {
			return
		}
		adv, ok := behaviors.EnemyAdvisorFor(e)
		if !ok {
			return
		}
		for _, s := range cycles[idx].Suggestions {
			adv.Suggest(s.Score, s.Suggestion)
		}
	}

	p := pipeline.New(w).
		AddSuggest(script).
		AddDecide(behaviors.EnemyUpdateSystem(collect))
	p.Run(len(cycles))

	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result) Summary {
	s := Summary{TotalCycles: len(results)}
	for _, r := range results {
		switch r.Action {
		case advisor.ActionAdopt:
			s.Adopts++
		case advisor.ActionRefresh:
			s.Refreshes++
		case advisor.ActionReplace:
			s.Replaces++
		case advisor.ActionNone:
			s.NoOps++
		}
		if r.Desync {
			s.Desyncs++
		}
	}
	return s
}

// #endregion replay
