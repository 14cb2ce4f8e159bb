// Package session composes one full tutoring turn: plan the tutor move,
// fold observations into the skill graph, optionally generate an
// assessment, and produce a deterministic, hashable trace.
package session

import (
	"time"

	"github.com/abhisek/socratiq/internal/assessment"
	"github.com/abhisek/socratiq/internal/dialogue"
	"github.com/abhisek/socratiq/internal/learner"
	"github.com/abhisek/socratiq/internal/skillgraph"
)

// ContractsVersion is the version of the output contract this engine
// produces. Stamped into every trace; requests asserting a different
// major version are refused rather than silently reinterpreted.
const ContractsVersion = "0.1"

// Request is the input to one orchestrated turn. State and Graph are
// threaded by the caller from the previous turn; both may be nil on the
// first turn of a session.
type Request struct {
	SessionID string               `json:"sessionId"`
	Profile   learner.Profile      `json:"learnerProfile"`
	Goal      learner.Goal         `json:"goal"`
	Mode      dialogue.TutorMode   `json:"mode"`
	Flags     learner.ContextFlags `json:"contextFlags"`
	Utterance string               `json:"utterance"`

	// RequestedAssessment asks for an assessment descriptor alongside the
	// turn. Empty means none. Eligibility is checked before generation.
	RequestedAssessment assessment.Type `json:"requestedAssessment,omitempty"`

	// ContractsVersion lets the caller assert the contract it was built
	// against. Empty means current.
	ContractsVersion string `json:"contractsVersion,omitempty"`

	State *dialogue.State   `json:"dialogueState,omitempty"`
	Graph *skillgraph.Graph `json:"skillGraph,omitempty"`

	// Now stamps timestamps in the trace and observations. It never
	// affects control flow. Zero means time.Now at call time.
	Now time.Time `json:"-"`
}

// Trace is the immutable audit record for one orchestrated turn.
type Trace struct {
	TimestampISO        string   `json:"timestampIso"`
	InputsHash          string   `json:"inputsHash"`
	ContractsVersion    string   `json:"contractsVersion"`
	SessionID           string   `json:"sessionId"`
	LearnerID           string   `json:"learnerId"`
	Refusals            []string `json:"refusals"`
	Notes               []string `json:"notes"`
	TurnCount           int      `json:"turnCount"`
	AssessmentGenerated bool     `json:"assessmentGenerated"`
	SkillUpdatesCount   int      `json:"skillUpdatesCount"`
}

// GraphDelta pairs the updated graph with the audit entries describing
// what changed. NewGraph is the prior graph by reference when nothing
// changed.
type GraphDelta struct {
	Updates  []skillgraph.AuditEntry `json:"updates"`
	NewGraph *skillgraph.Graph       `json:"newGraph"`
}

// Output is the complete result of one orchestrated turn.
type Output struct {
	TutorTurn       dialogue.TurnPlan        `json:"tutorTurn"`
	Observations    []skillgraph.Observation `json:"observations"`
	SkillGraphDelta GraphDelta               `json:"skillGraphDelta"`
	Assessment      *assessment.Descriptor   `json:"assessment,omitempty"`
	Trace           Trace                    `json:"sessionTrace"`
	DialogueState   dialogue.State           `json:"dialogueState"`
}
