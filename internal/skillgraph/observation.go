package skillgraph

import "time"

// ObservationType categorizes a single process-level signal extracted from
// a learner utterance.
type ObservationType string

const (
	ObsStatedUncertainty       ObservationType = "stated-uncertainty"
	ObsProvidedEvidence        ObservationType = "provided-evidence"
	ObsCorrectedSelf           ObservationType = "corrected-self"
	ObsAskedClarifyingQuestion ObservationType = "asked-clarifying-question"
	ObsReflectedOnThinking     ObservationType = "reflected-on-thinking"
)

// Observation is one session-scoped signal about how a learner is working.
// Observations are ephemeral: they feed the updater and the bounded
// per-session list, nothing else.
type Observation struct {
	Type      ObservationType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	// Strength is the signal strength in [0,1], derived from lexical
	// markers at extraction time.
	Strength  float64 `json:"strength"`
	SessionID string  `json:"sessionId"`
	// SkillHint optionally routes the observation to a specific skill.
	// When empty the default mapping for the observation type applies.
	SkillHint SkillID `json:"skillHint,omitempty"`
}

// skillFor resolves the target skill for an observation: the explicit hint
// when valid, otherwise the default mapping for its type.
func skillFor(obs Observation) (SkillID, bool) {
	if obs.SkillHint != "" {
		if obs.SkillHint.Valid() {
			return obs.SkillHint, true
		}
		return "", false
	}
	switch obs.Type {
	case ObsStatedUncertainty:
		return SkillUncertaintyHandling, true
	case ObsProvidedEvidence:
		return SkillEvidenceUse, true
	case ObsCorrectedSelf:
		return SkillErrorCorrection, true
	case ObsAskedClarifyingQuestion:
		return SkillQuestionFormulation, true
	case ObsReflectedOnThinking:
		return SkillMetacognition, true
	}
	return "", false
}
