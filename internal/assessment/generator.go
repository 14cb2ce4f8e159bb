package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/socratiq/internal/llm"
	"github.com/abhisek/socratiq/internal/skillgraph"
)

// ErrNotEligible is returned when the requested assessment type is not
// allowed for the learner in the current context.
var ErrNotEligible = errors.New("assessment type not eligible for this learner")

// Generator produces assessment descriptors. Implementations must respect
// the eligibility rules; Generate is expected to call Eligible itself.
type Generator interface {
	Generate(ctx context.Context, input Input) (*Descriptor, error)
}

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for assessment generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.5,
	}
}

// skillFocusFor maps an assessment type to the skills it exercises.
func skillFocusFor(t Type) []skillgraph.SkillID {
	switch t {
	case TypeActiveRecall:
		return []skillgraph.SkillID{skillgraph.SkillErrorCorrection}
	case TypeConceptMap:
		return []skillgraph.SkillID{skillgraph.SkillEvidenceUse, skillgraph.SkillQuestionFormulation}
	case TypeSelfExplanation:
		return []skillgraph.SkillID{skillgraph.SkillMetacognition, skillgraph.SkillUncertaintyHandling}
	}
	return nil
}

// LLMGenerator asks an LLM provider for assessment content.
type LLMGenerator struct {
	provider llm.Provider
	cfg      Config
}

// NewLLMGenerator creates a generator backed by the given provider.
func NewLLMGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, cfg: cfg}
}

type descriptorOutput struct {
	Title   string   `json:"title"`
	Prompts []string `json:"prompts"`
}

func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*Descriptor, error) {
	if !Eligible(input.Type, input.Profile, input.Flags) {
		return nil, ErrNotEligible
	}

	ctx = llm.WithPurpose(ctx, "assessment")

	req := llm.Request{
		System: generateSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGenerateUserMessage(input)},
		},
		Schema:      DescriptorSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("assessment generation: %w", err)
	}

	var out descriptorOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse assessment response: %w", err)
	}

	return &Descriptor{
		Type:       input.Type,
		Title:      out.Title,
		Prompts:    out.Prompts,
		SkillFocus: skillFocusFor(input.Type),
	}, nil
}
