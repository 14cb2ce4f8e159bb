package dialogue

import (
	"testing"
	"time"

	"github.com/abhisek/socratiq/internal/learner"
	"github.com/abhisek/socratiq/internal/skillgraph"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func socraticState(profile learner.Profile) State {
	return NewState("s-1", profile, ModeSocratic, learner.Goal{
		Subject:   "math",
		Topic:     "fractions",
		Objective: "compare fractions with unlike denominators",
	}, learner.ContextFlags{})
}

func adult() learner.Profile {
	return learner.Profile{LearnerID: "l-1", AgeBand: learner.AgeBandAdult}
}

func youngMinor() learner.Profile {
	return learner.Profile{
		LearnerID: "l-2",
		AgeBand:   learner.AgeBand6To9,
		Safety:    learner.SafetyFlags{Minor: true},
	}
}

// run advances the state through a sequence of utterances and returns the
// final plan and state.
func run(t *testing.T, state State, utterances ...string) (TurnPlan, State) {
	t.Helper()
	var plan TurnPlan
	for _, u := range utterances {
		plan, state, _ = PlanTurn(state, u, testNow)
		if plan.ShouldRefuse {
			t.Fatalf("unexpected refusal %q on utterance %q", plan.RefusalReason, u)
		}
	}
	return plan, state
}

func TestOpeningTurnStaysAtClarifyGoal(t *testing.T) {
	plan, next, obs := PlanTurn(socraticState(adult()), "", testNow)
	if plan.ScaffoldStep != StepClarifyGoal {
		t.Errorf("step = %s, want ClarifyGoal", plan.ScaffoldStep.Label())
	}
	if len(obs) != 0 {
		t.Errorf("observations = %d, want 0 for empty utterance", len(obs))
	}
	if next.TurnCount != 1 {
		t.Errorf("turn count = %d, want 1", next.TurnCount)
	}
	if len(plan.Questions) == 0 {
		t.Error("expected at least one question on the opening turn")
	}
}

func TestLinearAdvance(t *testing.T) {
	state := socraticState(adult())

	plan, state := run(t, state, "I want to get better at comparing fractions")
	if plan.ScaffoldStep != StepElicitPriorKnowledge {
		t.Fatalf("step = %s, want ElicitPriorKnowledge", plan.ScaffoldStep.Label())
	}

	plan, state = run(t, state, "We learned equivalent fractions last year")
	if plan.ScaffoldStep != StepAskForAttempt {
		t.Fatalf("step = %s, want AskForAttempt", plan.ScaffoldStep.Label())
	}

	plan, state = run(t, state, "I think it's 3/4 because the numerator is bigger")
	if plan.ScaffoldStep != StepOfferHint {
		t.Fatalf("step = %s, want OfferHint after attempt", plan.ScaffoldStep.Label())
	}
	if !state.HasMadeAttempt {
		t.Error("hasMadeAttempt not set after attempt")
	}
	if state.HintsOffered != 1 {
		t.Errorf("hintsOffered = %d, want 1", state.HintsOffered)
	}
}

func TestNoAttemptHoldsAtAskForAttempt(t *testing.T) {
	state := socraticState(adult())
	plan, _ := run(t, state,
		"I want to compare fractions",
		"We learned equivalent fractions",
		"hmm",
	)
	if plan.ScaffoldStep != StepAskForAttempt {
		t.Errorf("step = %s, want AskForAttempt to hold without an attempt", plan.ScaffoldStep.Label())
	}
}

func TestAnswerDemandRedirectedBeforeAttempt(t *testing.T) {
	state := socraticState(adult())
	plan, next, _ := PlanTurn(state, "just tell me the answer", testNow)
	if plan.ScaffoldStep != StepOfferHint {
		t.Errorf("step = %s, want OfferHint redirect", plan.ScaffoldStep.Label())
	}
	if len(plan.Actions) != 1 || plan.Actions[0].Kind != ActionOfferHint {
		t.Errorf("actions = %v, want single offer_hint", plan.Actions)
	}
	if next.HintsOffered != 1 {
		t.Errorf("hintsOffered = %d, want 1", next.HintsOffered)
	}
	if plan.Message == "" {
		t.Error("redirect must be explicit, not silent")
	}
}

func TestAnswerDemandRevealsWhenEligible(t *testing.T) {
	state := socraticState(adult())
	// Attempt + a hint makes the reveal eligible.
	_, state = run(t, state,
		"I want to compare fractions",
		"We learned equivalent fractions",
		"I think it's 3/4",
	)
	plan, _, _ := PlanTurn(state, "ok just tell me the answer", testNow)
	if plan.ScaffoldStep != StepRevealMinimalSolution {
		t.Errorf("step = %s, want RevealMinimalSolution", plan.ScaffoldStep.Label())
	}
	if plan.Actions[0].Kind != ActionRevealSolution {
		t.Errorf("action = %s, want reveal_solution", plan.Actions[0].Kind)
	}
}

func TestRevealImpliesAttemptAndHint(t *testing.T) {
	// Fuzz the scaffold with a fixed utterance corpus and assert the
	// invariant at every turn.
	corpus := []string{
		"just tell me the answer",
		"i think it's 5 because of the denominators",
		"not sure",
		"obviously it's 7",
		"because both are halves",
		"what do you mean?",
		"",
	}
	state := socraticState(adult())
	for i := 0; i < 40; i++ {
		u := corpus[i%len(corpus)]
		plan, next, _ := PlanTurn(state, u, testNow)
		if plan.ShouldRefuse {
			t.Fatalf("unexpected refusal at turn %d", i)
		}
		if plan.ScaffoldStep == StepRevealMinimalSolution {
			if !next.HasMadeAttempt {
				t.Fatalf("turn %d: reveal without attempt", i)
			}
			if next.HintsOffered == 0 && next.CounterexamplesOffered == 0 {
				t.Fatalf("turn %d: reveal without hint or counterexample", i)
			}
		}
		state = next
	}
}

func TestConfidentAssertionDrawsCounterexample(t *testing.T) {
	state := socraticState(adult())
	_, state = run(t, state,
		"I want to compare fractions",
		"We learned equivalent fractions",
	)
	plan, next, _ := PlanTurn(state, "obviously it's 3/4", testNow)
	if plan.Actions[0].Kind != ActionOfferCounterexample {
		t.Errorf("action = %s, want offer_counterexample", plan.Actions[0].Kind)
	}
	if next.CounterexamplesOffered != 1 {
		t.Errorf("counterexamplesOffered = %d, want 1", next.CounterexamplesOffered)
	}
}

func TestExaminerModeRefusedForYoungMinorsWithoutTeacher(t *testing.T) {
	state := NewState("s-1", youngMinor(), ModeExaminer, learner.Goal{Topic: "addition"}, learner.ContextFlags{})
	plan, next, obs := PlanTurn(state, "ready", testNow)
	if !plan.ShouldRefuse {
		t.Fatal("expected refusal")
	}
	if plan.RefusalReason != RefusalAgeBandRestriction {
		t.Errorf("reason = %q, want AgeBandRestriction", plan.RefusalReason)
	}
	if len(obs) != 0 {
		t.Errorf("observations = %d, want 0 on refusal", len(obs))
	}
	if next.TurnCount != 0 {
		t.Errorf("turn count advanced to %d on refusal", next.TurnCount)
	}
	if plan.ScaffoldStep != state.Step {
		t.Error("step advanced on refusal")
	}
}

func TestExaminerModeAllowedWithTeacherPresent(t *testing.T) {
	state := NewState("s-1", youngMinor(), ModeExaminer, learner.Goal{Topic: "addition"},
		learner.ContextFlags{IsTeacherPresent: true})
	plan, _, _ := PlanTurn(state, "ready", testNow)
	if plan.ShouldRefuse {
		t.Errorf("unexpected refusal %q with teacher present", plan.RefusalReason)
	}
}

func TestHighStakesMinorWithoutTeacherRefused(t *testing.T) {
	state := NewState("s-1", youngMinor(), ModeSocratic, learner.Goal{Topic: "addition"},
		learner.ContextFlags{IsHighStakesAssessment: true})
	plan, _, _ := PlanTurn(state, "help me with question 3", testNow)
	if !plan.ShouldRefuse {
		t.Fatal("expected refusal")
	}
	if plan.RefusalReason != RefusalHighStakesCheatingAttempt {
		t.Errorf("reason = %q, want HighStakesCheatingAttempt", plan.RefusalReason)
	}
}

func TestUncertaintyEchoedNotDropped(t *testing.T) {
	state := socraticState(adult())
	plan, _ := run(t, state, "I'm not sure where to start")
	if len(plan.UncertaintyNotes) == 0 {
		t.Error("uncertainty silently dropped from the plan")
	}
}

func TestDeterministicForSameInputs(t *testing.T) {
	state := socraticState(adult())
	a, nextA, obsA := PlanTurn(state, "i think it's 4 because 2+2", testNow)
	b, nextB, obsB := PlanTurn(state, "i think it's 4 because 2+2", testNow)

	if a.Message != b.Message || a.ScaffoldStep != b.ScaffoldStep {
		t.Error("plans differ across identical calls")
	}
	if len(obsA) != len(obsB) {
		t.Errorf("observation counts differ: %d vs %d", len(obsA), len(obsB))
	}
	if nextA.TurnCount != nextB.TurnCount || nextA.Step != nextB.Step {
		t.Error("successor states differ across identical calls")
	}
}

func TestHistoryBounded(t *testing.T) {
	state := socraticState(adult())
	for i := 0; i < 30; i++ {
		_, state, _ = PlanTurn(state, "i think it's 4", testNow)
	}
	if got := len(state.History()); got != MaxHistoryTurns {
		t.Errorf("history length = %d, want %d", got, MaxHistoryTurns)
	}
}

func TestPlanTurnDoesNotMutateInput(t *testing.T) {
	state := socraticState(adult())
	_, _, _ = PlanTurn(state, "i think it's 4", testNow)
	if state.TurnCount != 0 || state.HasMadeAttempt {
		t.Error("input state mutated")
	}
	if len(state.History()) != 0 {
		t.Error("input history mutated")
	}
}

func TestObservationExtraction(t *testing.T) {
	tests := []struct {
		utterance string
		wantTypes []skillgraph.ObservationType
	}{
		{"i'm not sure, maybe 4", []skillgraph.ObservationType{skillgraph.ObsStatedUncertainty}},
		{"it's 4 because 2+2", []skillgraph.ObservationType{skillgraph.ObsProvidedEvidence}},
		{"wait, actually i was wrong", []skillgraph.ObservationType{skillgraph.ObsCorrectedSelf}},
		{"what do you mean by denominator", []skillgraph.ObservationType{skillgraph.ObsAskedClarifyingQuestion}},
		{"i'm not sure, but i think so because both are even", []skillgraph.ObservationType{
			skillgraph.ObsStatedUncertainty, skillgraph.ObsProvidedEvidence}},
		{"hello", nil},
	}

	for _, tt := range tests {
		obs := ExtractObservations(tt.utterance, "s-1", testNow)
		if len(obs) != len(tt.wantTypes) {
			t.Errorf("%q: got %d observations, want %d", tt.utterance, len(obs), len(tt.wantTypes))
			continue
		}
		for i, want := range tt.wantTypes {
			if obs[i].Type != want {
				t.Errorf("%q: observation[%d] = %s, want %s", tt.utterance, i, obs[i].Type, want)
			}
			if obs[i].Strength <= 0 || obs[i].Strength > 1 {
				t.Errorf("%q: strength %f outside (0,1]", tt.utterance, obs[i].Strength)
			}
		}
	}
}

func TestClassifierPriority(t *testing.T) {
	// An answer demand that also hedges must classify as the demand.
	got := ClassifyIntent("i'm not sure, just tell me the answer")
	if got != IntentAnswerDemand {
		t.Errorf("intent = %s, want answer-demand", got)
	}
}
