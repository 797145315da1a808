package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/utility-advisor/internal/behaviors"
	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description      string         `json:"description"`
	ConsistencyBonus float32        `json:"consistency_bonus"`
	Cycles           []FixtureCycle `json:"cycles"`
}

// FixtureCycle scripts one cycle's offers and the expected transition.
type FixtureCycle struct {
	Suggestions []FixtureSuggestion `json:"suggestions"`
	Expected    FixtureExpected     `json:"expected"`
}

// FixtureSuggestion is one scored offer in JSON form. Variant selects the
// Enemy variant; the remaining fields apply per variant.
type FixtureSuggestion struct {
	Variant   string  `json:"variant"`
	Score     float32 `json:"score"`
	Target    string  `json:"target,omitempty"`
	Threat    string  `json:"threat,omitempty"`
	Distance  float32 `json:"distance,omitempty"`
	RegroupAt float32 `json:"regroup_at,omitempty"`
}

// FixtureExpected captures the expected transition for a cycle.
type FixtureExpected struct {
	Action   string `json:"action"`
	Identity string `json:"identity"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// #endregion fixture-loader

// #region fixture-converters

// ToSuggestion converts the JSON form to a scored domain suggestion.
func (f FixtureSuggestion) ToSuggestion() (ScriptedSuggestion, error) {
	s := ScriptedSuggestion{Score: f.Score}
	switch f.Variant {
	case "Idle":
		s.Suggestion = behaviors.EnemyIdleSuggestion()
	case "Chase":
		s.Suggestion = behaviors.EnemyChaseSuggestion(world.EntityID(f.Target), f.Distance)
	case "Flee":
		s.Suggestion = behaviors.EnemyFleeSuggestion(world.EntityID(f.Threat), f.Distance, f.RegroupAt)
	default:
		return ScriptedSuggestion{}, fmt.Errorf("unknown variant %q", f.Variant)
	}
	return s, nil
}

// ToCycles converts the fixture's scripted cycles to domain cycles.
func (f *Fixture) ToCycles() ([]Cycle, error) {
	cycles := make([]Cycle, len(f.Cycles))
	for i, fc := range f.Cycles {
		for j, fs := range fc.Suggestions {
			s, err := fs.ToSuggestion()
			if err != nil {
				return nil, fmt.Errorf("cycle %d suggestion %d: %w", i, j, err)
			}
			cycles[i].Suggestions = append(cycles[i].Suggestions, s)
		}
	}
	return cycles, nil
}

// #endregion fixture-converters
