package dialogue

import (
	"strings"
	"time"

	"github.com/abhisek/socratiq/internal/skillgraph"
)

var metacognitionMarkers = []string{
	"i realize",
	"i noticed that i",
	"my thinking was",
	"i need to check",
	"let me think about how",
	"i usually get this wrong",
}

// observationRule maps a marker family to the observation it produces.
type observationRule struct {
	obsType skillgraph.ObservationType
	markers []string
}

// observationRules is evaluated in a fixed order so extraction is
// deterministic. An utterance can yield several observations — hedging
// while giving evidence is two signals, not one.
var observationRules = []observationRule{
	{skillgraph.ObsStatedUncertainty, uncertaintyMarkers},
	{skillgraph.ObsProvidedEvidence, evidenceMarkers},
	{skillgraph.ObsCorrectedSelf, selfCorrectionMarkers},
	{skillgraph.ObsAskedClarifyingQuestion, clarifyingMarkers},
	{skillgraph.ObsReflectedOnThinking, metacognitionMarkers},
}

// ExtractObservations derives process observations from an utterance.
// Strengths come from lexical marker density, never from randomness: one
// matched marker scores 0.6, each additional marker adds 0.15, capped at
// 0.95. The timestamp stamps the observations and affects nothing else.
func ExtractObservations(utterance, sessionID string, now time.Time) []skillgraph.Observation {
	normalized := normalize(utterance)
	if normalized == "" {
		return nil
	}

	var out []skillgraph.Observation
	for _, rule := range observationRules {
		n := countMarkers(normalized, rule.markers)
		if n == 0 {
			continue
		}
		out = append(out, skillgraph.Observation{
			Type:      rule.obsType,
			Timestamp: now,
			Strength:  markerStrength(n),
			SessionID: sessionID,
		})
	}
	return out
}

func countMarkers(s string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(s, m) {
			n++
		}
	}
	return n
}

func markerStrength(matched int) float64 {
	strength := 0.6 + 0.15*float64(matched-1)
	if strength > 0.95 {
		strength = 0.95
	}
	return strength
}
