// Package assessment defines the contract with the assessment-content
// collaborator: which assessment kinds exist, who is eligible for them,
// and the descriptor shape generators must produce. The engine validates
// eligibility and records that generation happened; wording is the
// generator's business.
package assessment

import (
	"github.com/abhisek/socratiq/internal/learner"
	"github.com/abhisek/socratiq/internal/skillgraph"
)

// Type is a kind of assessment artifact.
type Type string

const (
	TypeActiveRecall    Type = "active-recall"
	TypeConceptMap      Type = "concept-map"
	TypeSelfExplanation Type = "self-explanation"
)

// Valid reports whether t is a declared assessment type.
func (t Type) Valid() bool {
	switch t {
	case TypeActiveRecall, TypeConceptMap, TypeSelfExplanation:
		return true
	}
	return false
}

// Descriptor is the artifact handed back to the caller: prompts to put in
// front of the learner, never answers or scores.
type Descriptor struct {
	Type       Type                 `json:"type"`
	Title      string               `json:"title"`
	Prompts    []string             `json:"prompts"`
	SkillFocus []skillgraph.SkillID `json:"skillFocus,omitempty"`
}

// Input carries the session context a generator may draw on.
type Input struct {
	Type    Type
	Goal    learner.Goal
	Profile learner.Profile
	Flags   learner.ContextFlags
	// RecentUncertainties are the unresolved uncertainty notes from the
	// dialogue, so prompts can target them.
	RecentUncertainties []string
}
