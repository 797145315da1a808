// Package behaviors is the worked example for the decision core: an enemy
// AI schema (Idle / Chase / Flee) compiled by advisorgen, plus the scoring
// and act systems that drive it over a small 2-D world. The replay harness
// and the simulate command both run on this package.
package behaviors

//go:generate go run github.com/danielpatrickdp/utility-advisor/cmd/advisorgen -schema enemy.yaml -out enemy_gen.go

import (
	"math"

	"github.com/danielpatrickdp/utility-advisor/internal/advisor"
	"github.com/danielpatrickdp/utility-advisor/internal/pipeline"
	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

// #region config

// DemoConfig tunes the example scoring and act systems.
type DemoConfig struct {
	ConsistencyBonus float32 // hysteresis toward the active behavior
	SightRange       float32 // player visibility radius for Chase
	FleeHealth       float32 // health below which Flee is offered
	ChaseSpeed       float32 // distance covered per cycle while chasing
	FleeSpeed        float32 // distance covered per cycle while fleeing
	HealPerCycle     float32 // health regained per cycle while fleeing
	IdleScore        float32 // constant floor score for Idle
}

// DefaultDemoConfig returns the tuning used by the simulate command.
func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		ConsistencyBonus: 2.0,
		SightRange:       10.0,
		FleeHealth:       3.0,
		ChaseSpeed:       0.5,
		FleeSpeed:        0.75,
		HealPerCycle:     0.2,
		IdleScore:        1.0,
	}
}

// #endregion config

// #region facts

const (
	factPosition = "position"
	factHealth   = "health"
	factPlayer   = "player"
)

// Position is a 2-D location fact.
type Position struct {
	X float32
	Y float32
}

// SetPosition stores an entity's position fact.
func SetPosition(e *world.Entity, x, y float32) {
	e.SetFact(factPosition, &Position{X: x, Y: y})
}

// GetPosition reads an entity's position fact.
func GetPosition(e *world.Entity) (*Position, bool) {
	p, ok := e.Fact(factPosition).(*Position)
	return p, ok
}

// Health is a mutable health fact.
type Health struct {
	Current float32
}

// SetHealth stores an entity's health fact.
func SetHealth(e *world.Entity, h float32) {
	e.SetFact(factHealth, &Health{Current: h})
}

// GetHealth reads an entity's health fact.
func GetHealth(e *world.Entity) (*Health, bool) {
	h, ok := e.Fact(factHealth).(*Health)
	return h, ok
}

// #endregion facts

// #region spawning

// SpawnPlayer spawns the player entity at the given position.
func SpawnPlayer(w *world.World, x, y float32) *world.Entity {
	e := w.Spawn()
	e.SetFact(factPlayer, true)
	SetPosition(e, x, y)
	return e
}

// SpawnEnemy spawns an enemy with position, health and an Enemy advisor.
func SpawnEnemy(w *world.World, cfg DemoConfig, x, y, health float32) *world.Entity {
	e := w.Spawn()
	SetPosition(e, x, y)
	SetHealth(e, health)
	GrantEnemyAdvisor(e, cfg.ConsistencyBonus)
	return e
}

// FindPlayer returns the player entity, if spawned.
func FindPlayer(w *world.World) (*world.Entity, bool) {
	var player *world.Entity
	w.Each(func(e *world.Entity) {
		if player == nil && e.Fact(factPlayer) == true {
			player = e
		}
	})
	return player, player != nil
}

// #endregion spawning

// #region suggest-systems

// SuggestIdle offers Idle to every enemy at a constant floor score, so an
// enemy with nothing better to do always has a behavior.
func SuggestIdle(cfg DemoConfig) pipeline.Stage {
	return func(w *world.World, cycle int) {
		w.Each(func(e *world.Entity) {
			adv, ok := EnemyAdvisorFor(e)
			if !ok {
				return
			}
			adv.Suggest(cfg.IdleScore, EnemyIdleSuggestion())
		})
	}
}

// SuggestChase offers Chase toward the player when it is within sight.
// Closer scores higher, so near enemies commit harder to the chase.
func SuggestChase(cfg DemoConfig) pipeline.Stage {
	return func(w *world.World, cycle int) {
		player, ok := FindPlayer(w)
		if !ok {
			return
		}
		playerPos, ok := GetPosition(player)
		if !ok {
			return
		}
		w.Each(func(e *world.Entity) {
			adv, ok := EnemyAdvisorFor(e)
			if !ok {
				return
			}
			pos, ok := GetPosition(e)
			if !ok {
				return
			}
			d := distance(pos, playerPos)
			if d > cfg.SightRange {
				return
			}
			adv.Suggest(cfg.SightRange-d, EnemyChaseSuggestion(player.ID(), d))
		})
	}
}

// SuggestFlee offers Flee when health drops below the threshold, scored
// above any possible Chase score. The regroup point is picked once at
// suggestion time; as a state field it stays fixed while Flee is active.
func SuggestFlee(cfg DemoConfig) pipeline.Stage {
	return func(w *world.World, cycle int) {
		player, ok := FindPlayer(w)
		if !ok {
			return
		}
		playerPos, ok := GetPosition(player)
		if !ok {
			return
		}
		w.Each(func(e *world.Entity) {
			adv, ok := EnemyAdvisorFor(e)
			if !ok {
				return
			}
			health, ok := GetHealth(e)
			if !ok || health.Current >= cfg.FleeHealth {
				return
			}
			pos, ok := GetPosition(e)
			if !ok {
				return
			}
			d := distance(pos, playerPos)
			regroupAt := pos.X + float32(math.Copysign(float64(cfg.SightRange), float64(pos.X-playerPos.X)))
			adv.Suggest(cfg.SightRange+1, EnemyFleeSuggestion(player.ID(), d, regroupAt))
		})
	}
}

// #endregion suggest-systems

// #region act-systems

// ActChase moves entities with a Chase record toward their target. Reads
// the record's refreshed Distance input to stop short of overshooting.
func ActChase(cfg DemoConfig) pipeline.Stage {
	return func(w *world.World, cycle int) {
		w.Each(func(e *world.Entity) {
			acc := ViewEnemyRecords(e.Slots())
			if acc.Chase == nil {
				return
			}
			target, ok := w.Entity(acc.Chase.Target)
			if !ok {
				return
			}
			targetPos, ok := GetPosition(target)
			if !ok {
				return
			}
			pos, ok := GetPosition(e)
			if !ok {
				return
			}
			step := cfg.ChaseSpeed
			if acc.Chase.Distance < step {
				step = acc.Chase.Distance
			}
			moveToward(pos, targetPos, step)
		})
	}
}

// ActFlee moves fleeing entities toward their regroup point and lets them
// heal. The RegroupAt state field belongs to this system once Flee is
// chosen; the engine never rewrites it.
func ActFlee(cfg DemoConfig) pipeline.Stage {
	return func(w *world.World, cycle int) {
		w.Each(func(e *world.Entity) {
			acc := ViewEnemyRecords(e.Slots())
			if acc.Flee == nil {
				return
			}
			pos, ok := GetPosition(e)
			if !ok {
				return
			}
			moveToward(pos, &Position{X: acc.Flee.RegroupAt, Y: pos.Y}, cfg.FleeSpeed)
			if health, ok := GetHealth(e); ok {
				health.Current += cfg.HealPerCycle
			}
		})
	}
}

// #endregion act-systems

// #region pipeline

// BuildPipeline wires the demo stages around the Enemy update system.
// sink may be nil.
func BuildPipeline(w *world.World, cfg DemoConfig, sink advisor.Sink) *pipeline.Pipeline {
	return pipeline.New(w).
		AddSuggest(SuggestIdle(cfg), SuggestChase(cfg), SuggestFlee(cfg)).
		AddDecide(EnemyUpdateSystem(sink)).
		AddAct(ActChase(cfg), ActFlee(cfg))
}

// #endregion pipeline

// #region helpers

// distance computes euclidean distance between two positions.
func distance(a, b *Position) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// moveToward advances pos toward target by at most step.
func moveToward(pos, target *Position, step float32) {
	d := distance(pos, target)
	if d == 0 || step <= 0 {
		return
	}
	if step > d {
		step = d
	}
	pos.X += (target.X - pos.X) / d * step
	pos.Y += (target.Y - pos.Y) / d * step
}

// #endregion helpers
