package dialogue

import "strings"

// Intent is the primary communicative intent of a learner utterance.
type Intent string

const (
	IntentAnswerDemand       Intent = "answer-demand"
	IntentSelfCorrection     Intent = "self-correction"
	IntentClarifyingQuestion Intent = "clarifying-question"
	IntentAttempt            Intent = "attempt"
	IntentUncertainty        Intent = "uncertainty"
	IntentEvidence           Intent = "evidence"
	IntentConfidentAssertion Intent = "confident-assertion"
	IntentNeutral            Intent = "neutral"
)

// Classifier is a rule-based utterance classifier.
// Returns an intent and confidence (0.0–1.0), or ("", 0) if the rule
// doesn't apply.
type Classifier interface {
	Name() string
	Classify(utterance string) (Intent, float64)
}

// DefaultClassifiers returns classifiers in priority order. Answer demands
// rank first: a "just tell me" must be redirected even when the utterance
// also hedges or reasons.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&AnswerDemandClassifier{},
		&SelfCorrectionClassifier{},
		&ClarifyingQuestionClassifier{},
		&AttemptClassifier{},
		&UncertaintyClassifier{},
		&EvidenceClassifier{},
		&ConfidentAssertionClassifier{},
	}
}

// ClassifyIntent runs the default classifiers in order and returns the
// first match, or IntentNeutral if no rule applies.
func ClassifyIntent(utterance string) Intent {
	intent, _, _ := RunClassifiers(DefaultClassifiers(), utterance)
	if intent == "" {
		return IntentNeutral
	}
	return intent
}

// RunClassifiers executes classifiers in order.
// Returns the first match, or ("", 0, "") if no rule applies.
func RunClassifiers(classifiers []Classifier, utterance string) (Intent, float64, string) {
	normalized := normalize(utterance)
	for _, c := range classifiers {
		if intent, conf := c.Classify(normalized); intent != "" {
			return intent, conf, c.Name()
		}
	}
	return "", 0, ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

var answerDemandMarkers = []string{
	"just tell me",
	"tell me the answer",
	"give me the answer",
	"what's the answer",
	"what is the answer",
	"skip to the answer",
	"just give it to me",
	"stop asking and tell me",
}

// AnswerDemandClassifier detects requests to skip the scaffold and be
// handed the solution.
type AnswerDemandClassifier struct{}

func (c *AnswerDemandClassifier) Name() string { return "answer-demand" }

func (c *AnswerDemandClassifier) Classify(utterance string) (Intent, float64) {
	if containsAny(utterance, answerDemandMarkers) {
		return IntentAnswerDemand, 0.9
	}
	return "", 0
}

var selfCorrectionMarkers = []string{
	"wait, actually",
	"actually, no",
	"i was wrong",
	"that's not right, let me",
	"no wait",
	"let me fix that",
	"i made a mistake",
}

// SelfCorrectionClassifier detects the learner revising their own answer.
type SelfCorrectionClassifier struct{}

func (c *SelfCorrectionClassifier) Name() string { return "self-correction" }

func (c *SelfCorrectionClassifier) Classify(utterance string) (Intent, float64) {
	if containsAny(utterance, selfCorrectionMarkers) {
		return IntentSelfCorrection, 0.85
	}
	return "", 0
}

var clarifyingMarkers = []string{
	"what do you mean",
	"can you explain the question",
	"i don't understand the question",
	"what does that word mean",
	"do you mean",
}

// ClarifyingQuestionClassifier detects questions about the task itself
// rather than answers to it.
type ClarifyingQuestionClassifier struct{}

func (c *ClarifyingQuestionClassifier) Name() string { return "clarifying-question" }

func (c *ClarifyingQuestionClassifier) Classify(utterance string) (Intent, float64) {
	if containsAny(utterance, clarifyingMarkers) {
		return IntentClarifyingQuestion, 0.8
	}
	if strings.HasSuffix(utterance, "?") && containsAny(utterance, []string{"why", "how", "which"}) {
		return IntentClarifyingQuestion, 0.6
	}
	return "", 0
}

var attemptMarkers = []string{
	"i think it's",
	"i think it is",
	"my answer is",
	"i tried",
	"maybe it's",
	"i got",
	"it could be",
	"is it ",
	"i would say",
	"my guess is",
	"it equals",
	"=",
}

// AttemptClassifier detects a genuine attempt at the problem.
type AttemptClassifier struct{}

func (c *AttemptClassifier) Name() string { return "attempt" }

func (c *AttemptClassifier) Classify(utterance string) (Intent, float64) {
	if containsAny(utterance, attemptMarkers) {
		return IntentAttempt, 0.8
	}
	return "", 0
}

var uncertaintyMarkers = []string{
	"not sure",
	"i'm confused",
	"i am confused",
	"i don't know",
	"i dont know",
	"no idea",
	"i'm lost",
	"i guess",
	"i'm stuck",
}

// UncertaintyClassifier detects hedging language.
type UncertaintyClassifier struct{}

func (c *UncertaintyClassifier) Name() string { return "uncertainty" }

func (c *UncertaintyClassifier) Classify(utterance string) (Intent, float64) {
	if containsAny(utterance, uncertaintyMarkers) {
		return IntentUncertainty, 0.75
	}
	return "", 0
}

var evidenceMarkers = []string{
	"because",
	"since",
	"the reason is",
	"that means",
	"so it follows",
	"we know that",
}

// EvidenceClassifier detects reasoning backed by stated grounds.
type EvidenceClassifier struct{}

func (c *EvidenceClassifier) Name() string { return "evidence" }

func (c *EvidenceClassifier) Classify(utterance string) (Intent, float64) {
	if containsAny(utterance, evidenceMarkers) {
		return IntentEvidence, 0.7
	}
	return "", 0
}

var confidentMarkers = []string{
	"obviously",
	"definitely",
	"it's clearly",
	"it is clearly",
	"everyone knows",
	"of course it's",
}

// ConfidentAssertionClassifier detects strong claims made without any
// supporting grounds — the cue for offering a counterexample.
type ConfidentAssertionClassifier struct{}

func (c *ConfidentAssertionClassifier) Name() string { return "confident-assertion" }

func (c *ConfidentAssertionClassifier) Classify(utterance string) (Intent, float64) {
	if containsAny(utterance, confidentMarkers) && !containsAny(utterance, evidenceMarkers) {
		return IntentConfidentAssertion, 0.7
	}
	return "", 0
}
