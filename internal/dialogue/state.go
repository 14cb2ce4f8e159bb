// Package dialogue implements the Socratic scaffolding state machine: given
// a learner utterance and the running dialogue state, it decides the next
// tutor move and emits the process observations the skill updater consumes.
package dialogue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/socratiq/internal/learner"
	"github.com/abhisek/socratiq/internal/ring"
)

// TutorMode selects the tutor's overall stance for a session.
type TutorMode string

const (
	ModeSocratic  TutorMode = "socratic"
	ModeExaminer  TutorMode = "examiner"
	ModeExplainer TutorMode = "explainer"
)

// Valid reports whether m is a declared mode.
func (m TutorMode) Valid() bool {
	switch m {
	case ModeSocratic, ModeExaminer, ModeExplainer:
		return true
	}
	return false
}

// ScaffoldStep is a stage in the Socratic tutoring sequence. Steps advance
// linearly with conditional holds; RevealMinimalSolution is reachable only
// after an attempt plus at least one hint or counterexample.
type ScaffoldStep int

const (
	StepClarifyGoal ScaffoldStep = iota
	StepElicitPriorKnowledge
	StepAskForAttempt
	StepOfferHint
	StepAskForReasoning
	StepRevealMinimalSolution
)

// Label returns the display label for a scaffold step.
func (s ScaffoldStep) Label() string {
	switch s {
	case StepClarifyGoal:
		return "ClarifyGoal"
	case StepElicitPriorKnowledge:
		return "ElicitPriorKnowledge"
	case StepAskForAttempt:
		return "AskForAttempt"
	case StepOfferHint:
		return "OfferHint"
	case StepAskForReasoning:
		return "AskForReasoning"
	case StepRevealMinimalSolution:
		return "RevealMinimalSolution"
	default:
		return "Unknown"
	}
}

// MarshalText serializes steps as their labels.
func (s ScaffoldStep) MarshalText() ([]byte, error) {
	return []byte(s.Label()), nil
}

// UnmarshalText restores a step from its label.
func (s *ScaffoldStep) UnmarshalText(text []byte) error {
	for step := StepClarifyGoal; step <= StepRevealMinimalSolution; step++ {
		if step.Label() == string(text) {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("unknown scaffold step: %q", text)
}

// RefusalReason is a public-facing reason code for a guardrail refusal.
type RefusalReason string

const (
	RefusalAgeBandRestriction        RefusalReason = "AgeBandRestriction"
	RefusalHighStakesCheatingAttempt RefusalReason = "HighStakesCheatingAttempt"
	RefusalContractVersionMismatch   RefusalReason = "ContractVersionMismatch"
)

// KnownRefusalReasons returns every public-facing reason code. Visibility
// filtering treats anything outside this set as internal detail.
func KnownRefusalReasons() []RefusalReason {
	return []RefusalReason{
		RefusalAgeBandRestriction,
		RefusalHighStakesCheatingAttempt,
		RefusalContractVersionMismatch,
	}
}

// Valid reports whether r is a declared public reason code.
func (r RefusalReason) Valid() bool {
	switch r {
	case RefusalAgeBandRestriction, RefusalHighStakesCheatingAttempt, RefusalContractVersionMismatch:
		return true
	}
	return false
}

// MaxHistoryTurns is the fixed capacity of the per-session turn history.
const MaxHistoryTurns = 20

// TurnRole identifies who produced a history turn.
type TurnRole string

const (
	RoleLearner TurnRole = "learner"
	RoleTutor   TurnRole = "tutor"
)

// Turn is one entry in the dialogue history.
type Turn struct {
	Role      TurnRole     `json:"role"`
	Content   string       `json:"content"`
	Step      ScaffoldStep `json:"step"`
	Timestamp time.Time    `json:"timestamp"`
}

// State is the per-session dialogue state, threaded by the caller from one
// turn to the next. Never shared across sessions.
type State struct {
	SessionID              string
	Profile                learner.Profile
	Mode                   TutorMode
	Topic                  string
	Goal                   learner.Goal
	Step                   ScaffoldStep
	HasMadeAttempt         bool
	HintsOffered           int
	CounterexamplesOffered int
	Uncertainties          []string
	Flags                  learner.ContextFlags
	TurnCount              int

	history *ring.Buffer[Turn]
}

// NewState creates the dialogue state for a session's first turn.
func NewState(sessionID string, profile learner.Profile, mode TutorMode, goal learner.Goal, flags learner.ContextFlags) State {
	return State{
		SessionID: sessionID,
		Profile:   profile,
		Mode:      mode,
		Topic:     goal.Topic,
		Goal:      goal,
		Step:      StepClarifyGoal,
		Flags:     flags,
		history:   ring.New[Turn](MaxHistoryTurns),
	}
}

// History returns the retained turns, oldest first.
func (s *State) History() []Turn {
	if s.history == nil {
		return nil
	}
	return s.history.Values()
}

func (s State) clone() State {
	c := s
	c.Uncertainties = append([]string(nil), s.Uncertainties...)
	if s.history == nil {
		c.history = ring.New[Turn](MaxHistoryTurns)
	} else {
		c.history = s.history.Clone()
	}
	return c
}

// stateJSON is the wire shape of State, used when callers thread state
// through a serialization boundary.
type stateJSON struct {
	SessionID              string               `json:"sessionId"`
	Profile                learner.Profile      `json:"learnerProfile"`
	Mode                   TutorMode            `json:"mode"`
	Topic                  string               `json:"topic"`
	Goal                   learner.Goal         `json:"goal"`
	Step                   ScaffoldStep         `json:"currentStep"`
	HasMadeAttempt         bool                 `json:"hasMadeAttempt"`
	HintsOffered           int                  `json:"hintsOffered"`
	CounterexamplesOffered int                  `json:"counterexamplesOffered"`
	Uncertainties          []string             `json:"uncertainties"`
	Flags                  learner.ContextFlags `json:"contextFlags"`
	TurnCount              int                  `json:"turnCount"`
	History                []Turn               `json:"history"`
}

// MarshalJSON flattens the history ring into a plain slice.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{
		SessionID:              s.SessionID,
		Profile:                s.Profile,
		Mode:                   s.Mode,
		Topic:                  s.Topic,
		Goal:                   s.Goal,
		Step:                   s.Step,
		HasMadeAttempt:         s.HasMadeAttempt,
		HintsOffered:           s.HintsOffered,
		CounterexamplesOffered: s.CounterexamplesOffered,
		Uncertainties:          s.Uncertainties,
		Flags:                  s.Flags,
		TurnCount:              s.TurnCount,
		History:                s.History(),
	})
}

// UnmarshalJSON restores a state, re-clamping history to its capacity.
func (s *State) UnmarshalJSON(data []byte) error {
	var w stateJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.SessionID = w.SessionID
	s.Profile = w.Profile
	s.Mode = w.Mode
	s.Topic = w.Topic
	s.Goal = w.Goal
	s.Step = w.Step
	s.HasMadeAttempt = w.HasMadeAttempt
	s.HintsOffered = w.HintsOffered
	s.CounterexamplesOffered = w.CounterexamplesOffered
	s.Uncertainties = w.Uncertainties
	s.Flags = w.Flags
	s.TurnCount = w.TurnCount
	s.history = ring.FromValues(MaxHistoryTurns, w.History)
	return nil
}
