package assessment

import (
	"context"
	"fmt"
)

// StaticGenerator produces template-based descriptors without any network
// dependency. Used when no LLM provider is configured, and as the
// deterministic fallback in tests.
type StaticGenerator struct{}

// NewStaticGenerator creates a template-based generator.
func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (g *StaticGenerator) Generate(_ context.Context, input Input) (*Descriptor, error) {
	if !Eligible(input.Type, input.Profile, input.Flags) {
		return nil, ErrNotEligible
	}

	topic := input.Goal.Topic
	if topic == "" {
		topic = input.Goal.Subject
	}

	d := &Descriptor{
		Type:       input.Type,
		SkillFocus: skillFocusFor(input.Type),
	}

	switch input.Type {
	case TypeActiveRecall:
		d.Title = fmt.Sprintf("Recall check: %s", topic)
		d.Prompts = []string{
			fmt.Sprintf("Without looking at your notes, write down the three most important ideas about %s.", topic),
			fmt.Sprintf("What is one question about %s you could answer now that you could not answer before?", topic),
		}
	case TypeConceptMap:
		d.Title = fmt.Sprintf("Concept map: %s", topic)
		d.Prompts = []string{
			fmt.Sprintf("List the key concepts in %s and draw arrows showing how they relate.", topic),
			"Pick two concepts on your map and describe the link between them in one sentence.",
		}
	case TypeSelfExplanation:
		d.Title = fmt.Sprintf("Explain it back: %s", topic)
		d.Prompts = []string{
			fmt.Sprintf("Explain %s in your own words, as if teaching a friend who missed the lesson.", topic),
			"Which part of your explanation are you least sure about, and why?",
		}
	}

	for _, u := range input.RecentUncertainties {
		if len(d.Prompts) >= 5 {
			break
		}
		d.Prompts = append(d.Prompts, fmt.Sprintf("Earlier you were unsure about %q. How would you approach that now?", u))
	}

	return d, nil
}
