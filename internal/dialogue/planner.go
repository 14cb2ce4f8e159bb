package dialogue

import (
	"fmt"
	"time"

	"github.com/abhisek/socratiq/internal/learner"
	"github.com/abhisek/socratiq/internal/skillgraph"
)

// ActionKind tags the concrete tutor actions a plan can carry.
type ActionKind string

const (
	ActionOfferHint           ActionKind = "offer_hint"
	ActionOfferCounterexample ActionKind = "offer_counterexample"
	ActionRevealSolution      ActionKind = "reveal_solution"
	ActionNone                ActionKind = "none"
)

// Action is one tagged tutor action.
type Action struct {
	Kind ActionKind `json:"kind"`
}

// TurnPlan is the planner's decision for a single turn: what kind of move
// the tutor makes next. Prose generation happens elsewhere; Message and
// Questions are the deterministic plan-level text.
type TurnPlan struct {
	Message          string        `json:"message"`
	Questions        []string      `json:"questions"`
	ScaffoldStep     ScaffoldStep  `json:"scaffoldStep"`
	ShouldRefuse     bool          `json:"shouldRefuse"`
	RefusalReason    RefusalReason `json:"refusalReason,omitempty"`
	UncertaintyNotes []string      `json:"uncertaintyNotes,omitempty"`
	Actions          []Action      `json:"actions"`
}

// PlanTurn decides the next tutor move. It is a pure function of (state,
// utterance); now only stamps timestamps and never affects control flow.
//
// It returns the plan, the successor dialogue state (history appended and
// clamped, counters advanced) and the observations extracted from the
// utterance. On a guardrail refusal the input state is returned unchanged
// and no observations are emitted.
func PlanTurn(state State, utterance string, now time.Time) (TurnPlan, State, []skillgraph.Observation) {
	if reason, refuse := evaluateGuardrails(state); refuse {
		return TurnPlan{
			Message:       refusalMessage(reason),
			ScaffoldStep:  state.Step,
			ShouldRefuse:  true,
			RefusalReason: reason,
			Actions:       []Action{{Kind: ActionNone}},
		}, state, nil
	}

	next := state.clone()
	intent := ClassifyIntent(utterance)
	observations := ExtractObservations(utterance, state.SessionID, now)

	if intent == IntentAttempt || intent == IntentSelfCorrection {
		next.HasMadeAttempt = true
	}
	if intent == IntentUncertainty {
		next.Uncertainties = appendUnique(next.Uncertainties, normalize(utterance))
	}

	step, action := nextMove(&next, intent, utterance != "")
	next.Step = step
	next.TurnCount++

	plan := TurnPlan{
		Message:          messageFor(step, intent, next.Topic),
		Questions:        questionsFor(step, next.Topic),
		ScaffoldStep:     step,
		UncertaintyNotes: append([]string(nil), next.Uncertainties...),
		Actions:          []Action{{Kind: action}},
	}

	if utterance != "" {
		next.history.Push(Turn{Role: RoleLearner, Content: utterance, Step: state.Step, Timestamp: now})
	}
	next.history.Push(Turn{Role: RoleTutor, Content: plan.Message, Step: step, Timestamp: now})

	return plan, next, observations
}

// evaluateGuardrails runs the hard policy checks that precede any step
// computation.
func evaluateGuardrails(state State) (RefusalReason, bool) {
	if state.Mode == ModeExaminer &&
		state.Profile.AgeBand == learner.AgeBand6To9 &&
		!state.Flags.IsTeacherPresent {
		return RefusalAgeBandRestriction, true
	}
	if state.Flags.IsHighStakesAssessment &&
		state.Profile.Safety.Minor &&
		!state.Flags.IsTeacherPresent {
		return RefusalHighStakesCheatingAttempt, true
	}
	return "", false
}

// revealEligible reports whether the terminal step may be entered: the
// learner has attempted and received at least one hint or counterexample.
func revealEligible(s *State) bool {
	return s.HasMadeAttempt && (s.HintsOffered > 0 || s.CounterexamplesOffered > 0)
}

// nextMove computes the successor step and action, mutating the counters
// on s as actions are committed. Every path that yields
// StepRevealMinimalSolution is guarded by revealEligible.
func nextMove(s *State, intent Intent, hasUtterance bool) (ScaffoldStep, ActionKind) {
	// An answer demand is handled before normal advancement: eligible
	// learners get the minimal reveal, everyone else is redirected to a
	// hint — explicitly, never silently.
	if intent == IntentAnswerDemand {
		if revealEligible(s) {
			return StepRevealMinimalSolution, ActionRevealSolution
		}
		s.HintsOffered++
		return StepOfferHint, ActionOfferHint
	}

	// A confident assertion without grounds earns a counterexample at any
	// point after the goal is clear.
	if intent == IntentConfidentAssertion && s.Step >= StepAskForAttempt {
		s.CounterexamplesOffered++
		return StepOfferHint, ActionOfferCounterexample
	}

	switch s.Step {
	case StepClarifyGoal:
		// Hold until the learner has actually said something about the
		// goal; the opening turn poses the clarifying question.
		if !hasUtterance || intent == IntentClarifyingQuestion {
			return StepClarifyGoal, ActionNone
		}
		return StepElicitPriorKnowledge, ActionNone

	case StepElicitPriorKnowledge:
		return StepAskForAttempt, ActionNone

	case StepAskForAttempt:
		if !s.HasMadeAttempt {
			return StepAskForAttempt, ActionNone
		}
		s.HintsOffered++
		return StepOfferHint, ActionOfferHint

	case StepOfferHint:
		return StepAskForReasoning, ActionNone

	case StepAskForReasoning:
		if intent == IntentEvidence && revealEligible(s) {
			return StepRevealMinimalSolution, ActionRevealSolution
		}
		if intent == IntentUncertainty {
			s.HintsOffered++
			return StepOfferHint, ActionOfferHint
		}
		return StepAskForReasoning, ActionNone

	case StepRevealMinimalSolution:
		return StepRevealMinimalSolution, ActionNone

	default:
		return s.Step, ActionNone
	}
}

func refusalMessage(reason RefusalReason) string {
	switch reason {
	case RefusalAgeBandRestriction:
		return "Examiner mode needs a teacher present for this age group. Let's switch to practicing together instead."
	case RefusalHighStakesCheatingAttempt:
		return "This looks like a graded assessment. I can help you practice, but not during the assessment itself unless a teacher is present."
	default:
		return "I can't take that turn right now."
	}
}

func messageFor(step ScaffoldStep, intent Intent, topic string) string {
	if intent == IntentAnswerDemand && step == StepOfferHint {
		return fmt.Sprintf("I won't hand over the answer yet — you'll remember %s better if you get there yourself. Here's a nudge instead.", topic)
	}
	switch step {
	case StepClarifyGoal:
		return fmt.Sprintf("Let's make sure we agree on the goal for %s before we dig in.", topic)
	case StepElicitPriorKnowledge:
		return fmt.Sprintf("Before we start, let's surface what you already know about %s.", topic)
	case StepAskForAttempt:
		return "Give it a try — a rough first attempt is exactly what we want."
	case StepOfferHint:
		return "Here's a hint to push your thinking forward."
	case StepAskForReasoning:
		return "Walk me through your reasoning step by step."
	case StepRevealMinimalSolution:
		return fmt.Sprintf("You've earned a look at the key step for %s. Compare it with your own attempt.", topic)
	default:
		return ""
	}
}

func questionsFor(step ScaffoldStep, topic string) []string {
	switch step {
	case StepClarifyGoal:
		return []string{
			fmt.Sprintf("What exactly would success on %s look like to you?", topic),
		}
	case StepElicitPriorKnowledge:
		return []string{
			fmt.Sprintf("What do you already know that might connect to %s?", topic),
			"Where have you seen something similar before?",
		}
	case StepAskForAttempt:
		return []string{"What's your first attempt, even a partial one?"}
	case StepOfferHint:
		return []string{"Does the hint change how you'd approach it?"}
	case StepAskForReasoning:
		return []string{
			"Why do you believe that step is right?",
			"What evidence supports it?",
		}
	case StepRevealMinimalSolution:
		return []string{"Where does this differ from your attempt, and why?"}
	default:
		return nil
	}
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
