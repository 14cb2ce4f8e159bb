package skillgraph

import (
	"encoding/json"

	"github.com/abhisek/socratiq/internal/ring"
)

// MaxRecentSignals is the fixed capacity of a skill's signal window.
const MaxRecentSignals = 20

// SkillState is a learner's accumulated state for one skill.
type SkillState struct {
	// Exposures counts every observation routed to this skill, whether or
	// not its signal was admitted. Monotonic.
	Exposures int

	// Band is derived from exposures and recent signals after every fold.
	Band ConfidenceBand

	signals *ring.Buffer[float64]
}

func newSkillState() *SkillState {
	return &SkillState{signals: ring.New[float64](MaxRecentSignals)}
}

// RecentSignals returns the admitted signal strengths, oldest first.
func (s *SkillState) RecentSignals() []float64 {
	return s.signals.Values()
}

// SignalMean returns the mean of the recent signals, or 0 when empty.
func (s *SkillState) SignalMean() float64 {
	vs := s.signals.Values()
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func (s *SkillState) clone() *SkillState {
	return &SkillState{
		Exposures: s.Exposures,
		Band:      s.Band,
		signals:   s.signals.Clone(),
	}
}

// skillStateJSON is the wire shape of SkillState.
type skillStateJSON struct {
	Exposures      int            `json:"exposures"`
	ConfidenceBand ConfidenceBand `json:"confidenceBand"`
	RecentSignals  []float64      `json:"recentSignals"`
}

// MarshalJSON serializes the state with its signal window flattened.
func (s *SkillState) MarshalJSON() ([]byte, error) {
	return json.Marshal(skillStateJSON{
		Exposures:      s.Exposures,
		ConfidenceBand: s.Band,
		RecentSignals:  s.signals.Values(),
	})
}

// UnmarshalJSON restores a state, re-clamping the signal window to its
// fixed capacity.
func (s *SkillState) UnmarshalJSON(data []byte) error {
	var w skillStateJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.Exposures = w.Exposures
	s.Band = recomputeBand(w.Exposures, w.RecentSignals)
	s.signals = ring.FromValues(MaxRecentSignals, w.RecentSignals)
	return nil
}

// Graph is one learner's skill graph. Created empty on first contact,
// mutated only through Apply, evicted only with the owning learner record.
type Graph struct {
	states map[SkillID]*SkillState
}

// NewGraph creates an empty skill graph.
func NewGraph() *Graph {
	return &Graph{states: make(map[SkillID]*SkillState)}
}

// State returns the state for a skill, or nil if the skill has never been
// observed.
func (g *Graph) State(id SkillID) *SkillState {
	return g.states[id]
}

// Skills returns the observed skill ids in the fixed display order, so
// iteration is deterministic.
func (g *Graph) Skills() []SkillID {
	var out []SkillID
	for _, id := range AllSkills() {
		if _, ok := g.states[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for id, st := range g.states {
		c.states[id] = st.clone()
	}
	return c
}

// MarshalJSON serializes the graph as a map keyed by skill id.
// encoding/json sorts map keys, so output is deterministic.
func (g *Graph) MarshalJSON() ([]byte, error) {
	m := make(map[SkillID]*SkillState, len(g.states))
	for id, st := range g.states {
		m[id] = st
	}
	return json.Marshal(m)
}

// UnmarshalJSON restores a graph from its map form.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var m map[SkillID]*SkillState
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	g.states = make(map[SkillID]*SkillState, len(m))
	for id, st := range m {
		if id.Valid() && st != nil {
			g.states[id] = st
		}
	}
	return nil
}
