package assessment

import "github.com/abhisek/socratiq/internal/learner"

// Eligible reports whether an assessment of type t may be generated for
// this learner in this context. A false result is not a refusal of the
// whole session, only of the assessment request.
func Eligible(t Type, profile learner.Profile, flags learner.ContextFlags) bool {
	if !t.Valid() {
		return false
	}
	if flags.IsHighStakesAssessment && profile.Safety.Minor && !flags.IsTeacherPresent {
		return false
	}
	// Young minors get closed-form recall practice only.
	if profile.AgeBand == learner.AgeBand6To9 && t != TypeActiveRecall {
		return false
	}
	return true
}

// EligibleTypes returns the assessment types allowed for this learner and
// context, in declaration order.
func EligibleTypes(profile learner.Profile, flags learner.ContextFlags) []Type {
	all := []Type{TypeActiveRecall, TypeConceptMap, TypeSelfExplanation}
	out := make([]Type, 0, len(all))
	for _, t := range all {
		if Eligible(t, profile, flags) {
			out = append(out, t)
		}
	}
	return out
}
