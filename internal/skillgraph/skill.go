package skillgraph

import "fmt"

// SkillID identifies a process-level cognitive skill. The vocabulary is
// deliberately closed: there is no field anywhere in this package that can
// carry a trait label, diagnosis, or rank, so such values are
// unrepresentable rather than filtered out at runtime.
type SkillID string

const (
	SkillUncertaintyHandling SkillID = "uncertainty-handling"
	SkillEvidenceUse         SkillID = "evidence-use"
	SkillErrorCorrection     SkillID = "error-correction"
	SkillQuestionFormulation SkillID = "question-formulation"
	SkillMetacognition       SkillID = "metacognition"
)

// AllSkills returns all skill ids in display order.
func AllSkills() []SkillID {
	return []SkillID{
		SkillUncertaintyHandling,
		SkillEvidenceUse,
		SkillErrorCorrection,
		SkillQuestionFormulation,
		SkillMetacognition,
	}
}

// Valid reports whether id is part of the closed skill vocabulary.
func (id SkillID) Valid() bool {
	switch id {
	case SkillUncertaintyHandling, SkillEvidenceUse, SkillErrorCorrection,
		SkillQuestionFormulation, SkillMetacognition:
		return true
	}
	return false
}

// DisplayName returns a human-readable name for a skill.
func (id SkillID) DisplayName() string {
	switch id {
	case SkillUncertaintyHandling:
		return "Handling Uncertainty"
	case SkillEvidenceUse:
		return "Using Evidence"
	case SkillErrorCorrection:
		return "Correcting Errors"
	case SkillQuestionFormulation:
		return "Asking Questions"
	case SkillMetacognition:
		return "Thinking About Thinking"
	default:
		return string(id)
	}
}

// ConfidenceBand is a coarse indicator of how much evidence exists for a
// skill. It is always derived from (exposures, recent signals) — never
// hand-set — and says nothing about learner ability.
type ConfidenceBand int

const (
	BandLow ConfidenceBand = iota
	BandMedium
	BandHigh
)

// Label returns the display label for a confidence band.
func (b ConfidenceBand) Label() string {
	switch b {
	case BandLow:
		return "Low"
	case BandMedium:
		return "Medium"
	case BandHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so bands serialize as
// their labels rather than raw ints.
func (b ConfidenceBand) MarshalText() ([]byte, error) {
	return []byte(b.Label()), nil
}

// UnmarshalText restores a band from its label.
func (b *ConfidenceBand) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Low":
		*b = BandLow
	case "Medium":
		*b = BandMedium
	case "High":
		*b = BandHigh
	default:
		return fmt.Errorf("unknown confidence band: %q", text)
	}
	return nil
}
