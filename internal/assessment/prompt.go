package assessment

import (
	"fmt"
	"strings"
)

const generateSystemPrompt = `You are designing short formative self-checks for a Socratic tutoring system. The learner answers these on their own — you never grade them. Produce prompts only, never answers, scores, or model solutions.`

func buildGenerateUserMessage(input Input) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Assessment type: %s\n", input.Type))
	b.WriteString(fmt.Sprintf("Subject: %s\n", input.Goal.Subject))
	b.WriteString(fmt.Sprintf("Topic: %s\n", input.Goal.Topic))
	if input.Goal.Objective != "" {
		b.WriteString(fmt.Sprintf("Objective: %s\n", input.Goal.Objective))
	}
	b.WriteString(fmt.Sprintf("Age band: %s\n", input.Profile.AgeBand))

	if len(input.RecentUncertainties) > 0 {
		b.WriteString("\nThings the learner said they were unsure about:\n")
		for _, u := range input.RecentUncertainties {
			b.WriteString(fmt.Sprintf("- %s\n", u))
		}
	}

	b.WriteString("\nInstructions:\n")
	switch input.Type {
	case TypeActiveRecall:
		b.WriteString("Write 2-4 short recall questions the learner should answer from memory, without notes. Keep each to one sentence.")
	case TypeConceptMap:
		b.WriteString("Write 1-3 prompts asking the learner to name the key concepts in this topic and describe how they connect. Ask for links, not definitions.")
	case TypeSelfExplanation:
		b.WriteString("Write 1-3 prompts asking the learner to explain their own reasoning on this topic in their own words, as if teaching someone else.")
	}
	b.WriteString("\nMatch the language to the learner's age band. Target the stated uncertainties where any are listed.")

	return b.String()
}
