package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/socratiq/internal/assessment"
	"github.com/abhisek/socratiq/internal/dialogue"
	"github.com/abhisek/socratiq/internal/skillgraph"
)

// ErrMissingSessionID is returned for requests without a session id.
var ErrMissingSessionID = errors.New("session: missing session id")

// ErrMissingLearnerID is returned for requests without a learner id.
var ErrMissingLearnerID = errors.New("session: missing learner id")

// Orchestrator runs learning-session turns. Safe for concurrent use; all
// per-turn state travels in the request and output.
type Orchestrator struct {
	generator assessment.Generator
}

// NewOrchestrator creates an orchestrator. A nil generator falls back to
// the static template generator, keeping assessment requests servable
// without any provider configured.
func NewOrchestrator(generator assessment.Generator) *Orchestrator {
	if generator == nil {
		generator = assessment.NewStaticGenerator()
	}
	return &Orchestrator{generator: generator}
}

// RunLearningSession composes one full turn.
//
// Refusals are data: a guardrail or contract-version refusal yields a
// valid Output whose TutorTurn has ShouldRefuse set, with the prior graph
// returned by reference and the dialogue state unchanged. Errors are
// reserved for malformed requests.
func (o *Orchestrator) RunLearningSession(ctx context.Context, req Request) (Output, error) {
	if req.SessionID == "" {
		return Output{}, ErrMissingSessionID
	}
	if req.Profile.LearnerID == "" {
		return Output{}, ErrMissingLearnerID
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	state := dialogue.NewState(req.SessionID, req.Profile, req.Mode, req.Goal, req.Flags)
	if req.State != nil {
		state = *req.State
		// Context flags are per-request facts, not session history: a
		// teacher can arrive mid-session and a turn can become high
		// stakes, so the guardrail gate always sees the current flags.
		state.Flags = req.Flags
	}
	graph := req.Graph
	if graph == nil {
		graph = skillgraph.NewGraph()
	}

	trace := Trace{
		TimestampISO:     now.UTC().Format(time.RFC3339),
		InputsHash:       InputsHash(req),
		ContractsVersion: ContractsVersion,
		SessionID:        req.SessionID,
		LearnerID:        req.Profile.LearnerID,
		Refusals:         []string{},
		Notes:            []string{},
	}

	if !compatibleContract(req.ContractsVersion) {
		reason := dialogue.RefusalContractVersionMismatch
		trace.Refusals = append(trace.Refusals, string(reason))
		trace.Notes = append(trace.Notes,
			fmt.Sprintf("request asserts contract version %q, engine speaks %q", req.ContractsVersion, ContractsVersion))
		trace.TurnCount = state.TurnCount
		return Output{
			TutorTurn: dialogue.TurnPlan{
				Message:       "This request was built against a different output contract. Update the caller before continuing.",
				ScaffoldStep:  state.Step,
				ShouldRefuse:  true,
				RefusalReason: reason,
				Actions:       []dialogue.Action{{Kind: dialogue.ActionNone}},
			},
			SkillGraphDelta: GraphDelta{NewGraph: graph},
			Trace:           trace,
			DialogueState:   state,
		}, nil
	}

	plan, nextState, observations := dialogue.PlanTurn(state, req.Utterance, now)

	if plan.ShouldRefuse {
		trace.Refusals = append(trace.Refusals, string(plan.RefusalReason))
		trace.TurnCount = nextState.TurnCount
		return Output{
			TutorTurn:       plan,
			SkillGraphDelta: GraphDelta{NewGraph: graph},
			Trace:           trace,
			DialogueState:   nextState,
		}, nil
	}

	newGraph, updates := skillgraph.Apply(graph, req.Profile, observations)

	out := Output{
		TutorTurn:    plan,
		Observations: observations,
		SkillGraphDelta: GraphDelta{
			Updates:  updates,
			NewGraph: newGraph,
		},
		DialogueState: nextState,
	}

	trace.TurnCount = nextState.TurnCount
	trace.SkillUpdatesCount = len(updates)

	if req.RequestedAssessment != "" {
		out.Assessment = o.maybeGenerateAssessment(ctx, req, nextState, &trace)
	}

	out.Trace = trace
	return out, nil
}

// maybeGenerateAssessment generates a descriptor when the requested type
// passes eligibility. Ineligible or failed generation leaves the
// assessment absent, never a placeholder.
func (o *Orchestrator) maybeGenerateAssessment(ctx context.Context, req Request, state dialogue.State, trace *Trace) *assessment.Descriptor {
	if !assessment.Eligible(req.RequestedAssessment, req.Profile, req.Flags) {
		trace.Notes = append(trace.Notes,
			fmt.Sprintf("assessment %q not available for this learner", req.RequestedAssessment))
		return nil
	}

	d, err := o.generator.Generate(ctx, assessment.Input{
		Type:                req.RequestedAssessment,
		Goal:                req.Goal,
		Profile:             req.Profile,
		Flags:               req.Flags,
		RecentUncertainties: append([]string(nil), state.Uncertainties...),
	})
	if err != nil {
		trace.Notes = append(trace.Notes,
			fmt.Sprintf("assessment %q could not be generated", req.RequestedAssessment))
		return nil
	}

	trace.AssessmentGenerated = true
	return d
}

// compatibleContract reports whether the caller's asserted contract
// version can be served. Empty means current; otherwise the major
// versions must agree.
func compatibleContract(v string) bool {
	if v == "" || v == ContractsVersion {
		return true
	}
	want := semver.Major("v" + ContractsVersion)
	got := semver.Major("v" + v)
	if got == "" {
		return false
	}
	return got == want
}
