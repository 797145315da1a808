// Package advisor implements the per-entity decision engine: scored
// suggestions accumulate during the Suggest phase, and once per cycle the
// Decide pass picks the winner and reconciles the entity's attached
// behavior record with it, patching in place when the winner is the same
// logical behavior and replacing the record when it is not. A consistency
// bonus biases selection toward the currently active behavior so near-tied
// candidates do not flicker.
package advisor

import (
	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

// #region transition

// Action names the reconciliation outcome of one Decide pass.
type Action string

const (
	// ActionNone: no suggestion arrived this cycle; prior state untouched.
	ActionNone Action = "no_op"
	// ActionAdopt: first behavior for an entity with no active identity.
	ActionAdopt Action = "adopt"
	// ActionRefresh: winner matched the active identity; record patched.
	ActionRefresh Action = "refresh"
	// ActionReplace: identity changed (or patch desynced); old record
	// removed, new record attached.
	ActionReplace Action = "replace"
)

// Transition reports what one Decide pass did, for journaling.
type Transition struct {
	Action   Action
	Identity string // winner identity text; empty for no_op
	Score    float32
	Desync   bool // replace was a fallback after a failed patch
}

// #endregion transition

// #region advisor

// Advisor holds one entity's decision state. S is the schema's suggestion
// union, K its identity type, A its record accessor.
type Advisor[S Suggestion[K, A], K Identity, A any] struct {
	consistencyBonus float32

	active    K
	hasActive bool

	// Pending top suggestion for the current cycle. The stored score is the
	// effective score (consistency bonus included) computed when the
	// suggestion was offered; it is never recomputed. Cleared by Decide.
	pendingScore      float32
	pendingSuggestion S
	hasPending        bool
}

// New creates an advisor. consistencyBonus is added to the score of any
// suggestion matching the currently active behavior and is fixed for the
// advisor's lifetime.
func New[S Suggestion[K, A], K Identity, A any](consistencyBonus float32) *Advisor[S, K, A] {
	return &Advisor[S, K, A]{consistencyBonus: consistencyBonus}
}

// ConsistencyBonus returns the advisor's configured hysteresis bonus.
func (a *Advisor[S, K, A]) ConsistencyBonus() float32 {
	return a.consistencyBonus
}

// ActiveIdentity returns the identity of the currently active behavior.
// Scoring systems can branch on it to get state-machine-like rules.
func (a *Advisor[S, K, A]) ActiveIdentity() (K, bool) {
	return a.active, a.hasActive
}

// #endregion advisor

// #region suggest

// Suggest offers a candidate behavior for this cycle. Call it any number of
// times per cycle during the Suggest phase; only the top-scoring suggestion
// survives to the Decide pass. A suggestion matching the active identity
// competes with consistencyBonus added. The first suggestion to reach a
// given effective score keeps it: later ties do not displace it.
func (a *Advisor[S, K, A]) Suggest(score float32, s S) {
	effective := score
	if a.hasActive && a.active == s.Identity() {
		effective += a.consistencyBonus
	}
	if a.hasPending && effective <= a.pendingScore {
		return
	}
	a.pendingScore = effective
	a.pendingSuggestion = s
	a.hasPending = true
}

// #endregion suggest

// #region decide

// Decide runs the once-per-cycle reconciliation for this entity. It takes
// and clears the pending suggestion; with none pending the entity keeps
// doing whatever it was doing. Otherwise the winner is materialized:
// attached fresh when the entity was idle, patched in place when its
// identity matches the active one, and swapped in (remove old, add new)
// when the identity changed. A failed patch means the accessor and the
// identity bookkeeping disagree; that is recovered by full replacement and
// reported, never raised.
func (a *Advisor[S, K, A]) Decide(acc A, cmd world.EntityCommands) Transition {
	if !a.hasPending {
		return Transition{Action: ActionNone}
	}
	winner := a.pendingSuggestion
	score := a.pendingScore
	a.hasPending = false
	var zero S
	a.pendingSuggestion = zero

	identity := winner.Identity()

	if !a.hasActive {
		winner.Attach(cmd)
		a.active = identity
		a.hasActive = true
		return Transition{Action: ActionAdopt, Identity: identity.String(), Score: score}
	}

	desync := false
	if a.active == identity {
		if err := winner.Patch(acc); err == nil {
			return Transition{Action: ActionRefresh, Identity: identity.String(), Score: score}
		}
		warnf("advisor: record for %s missing despite matching identity, replacing instead of patching", identity)
		desync = true
	}

	a.active.Detach(cmd)
	winner.Attach(cmd)
	a.active = identity
	return Transition{Action: ActionReplace, Identity: identity.String(), Score: score, Desync: desync}
}

// #endregion decide
