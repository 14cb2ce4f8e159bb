// Package learner holds the entity definitions shared by the tutoring
// engine: who the learner is, what they are working toward, and the
// safety context the current session runs under. Types only, no behavior.
package learner

// AgeBand is a coarse age bracket used for pedagogy and safety gating.
type AgeBand string

const (
	AgeBand6To9   AgeBand = "6-9"
	AgeBand10To12 AgeBand = "10-12"
	AgeBandTeen   AgeBand = "teen"
	AgeBandAdult  AgeBand = "adult"
)

// AllAgeBands returns the age bands in ascending order.
func AllAgeBands() []AgeBand {
	return []AgeBand{AgeBand6To9, AgeBand10To12, AgeBandTeen, AgeBandAdult}
}

// Valid reports whether b is one of the declared bands.
func (b AgeBand) Valid() bool {
	switch b {
	case AgeBand6To9, AgeBand10To12, AgeBandTeen, AgeBandAdult:
		return true
	}
	return false
}

// SafetyFlags carries the caller-asserted safety context for a learner.
type SafetyFlags struct {
	// Minor is true when the learner is legally a minor. It gates
	// observation admission, assessment eligibility and visibility defaults.
	Minor bool `json:"minor"`

	// InstitutionMode is true when the learner account is managed by a
	// school or similar institution.
	InstitutionMode bool `json:"institutionMode"`
}

// Profile identifies a learner for one session. Immutable once a session
// starts; supplied by the caller on every request.
type Profile struct {
	LearnerID string      `json:"learnerId"`
	AgeBand   AgeBand     `json:"ageBand"`
	Safety    SafetyFlags `json:"safety"`
}

// ContextFlags describes the situational context of a single session turn.
type ContextFlags struct {
	IsTeacherPresent       bool `json:"isTeacherPresent"`
	IsHighStakesAssessment bool `json:"isHighStakesAssessment"`
}

// Goal is what the learner is trying to achieve this session.
type Goal struct {
	Subject   string `json:"subject"`
	Topic     string `json:"topic"`
	Objective string `json:"objective"`
}
