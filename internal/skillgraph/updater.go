package skillgraph

import (
	"fmt"

	"github.com/abhisek/socratiq/internal/learner"
)

// Confidence band thresholds. Bands upgrade when both the exposure count
// and the mean of the recent signal window clear the bar.
const (
	mediumMinExposures = 3
	mediumMinMean      = 0.5
	highMinExposures   = 10
	highMinMean        = 0.7
)

// youngMinorMinStrength is the admission threshold applied to signals for
// young minors. Weak signals are suppressed to reduce noise; exposures
// still count so totals stay comparable across age bands.
const youngMinorMinStrength = 0.5

// AuditSnapshot captures a skill's state for an audit entry.
type AuditSnapshot struct {
	Exposures      int            `json:"exposures"`
	ConfidenceBand ConfidenceBand `json:"confidenceBand"`
	SignalCount    int            `json:"signalCount"`
}

// AuditEntry records one mutation made by Apply. Entries use only the
// closed skill vocabulary and mechanical action descriptions.
type AuditEntry struct {
	Skill    SkillID       `json:"skill"`
	Action   string        `json:"action"`
	Reason   string        `json:"reason"`
	Previous AuditSnapshot `json:"previousState"`
	New      AuditSnapshot `json:"newState"`
}

// Apply folds observations into a learner's skill graph.
//
// For each observation the target skill's exposure count increments
// unconditionally; the signal strength joins the recent-signal window only
// if it passes the age-band admission filter. The confidence band is
// recomputed after every fold but never downgrades within one Apply call.
//
// When no observation maps to a known skill, the input graph is returned
// unchanged by reference so callers can cheaply detect a no-op. Otherwise
// a new graph is returned and the input is left untouched.
func Apply(g *Graph, profile learner.Profile, observations []Observation) (*Graph, []AuditEntry) {
	if g == nil {
		g = NewGraph()
	}

	var out *Graph
	var audit []AuditEntry

	// Highest band computed per skill during this call. Monotonicity is
	// scoped to one Apply call; across calls the band is recomputed from
	// exposures and the signal window alone, so dilution can lower it.
	floor := make(map[SkillID]ConfidenceBand)

	for _, obs := range observations {
		skill, ok := skillFor(obs)
		if !ok {
			continue
		}
		if out == nil {
			out = g.Clone()
		}

		st := out.states[skill]
		if st == nil {
			st = newSkillState()
			out.states[skill] = st
		}

		prev := snapshotOf(st)

		st.Exposures++
		strength := clamp01(obs.Strength)
		admitted := admit(profile, strength)
		if admitted {
			st.signals.Push(strength)
		}

		band := recomputeBand(st.Exposures, st.signals.Values())
		if f, seen := floor[skill]; seen && band < f {
			band = f
		}
		bandChanged := band != st.Band
		st.Band = band
		if f, seen := floor[skill]; !seen || band > f {
			floor[skill] = band
		}

		action := "Recorded exposure"
		reason := fmt.Sprintf("observation %s counted toward %s", obs.Type, skill.DisplayName())
		if admitted {
			action = "Added signal"
			reason = fmt.Sprintf("observation %s admitted at strength %.2f", obs.Type, strength)
		}
		audit = append(audit, AuditEntry{
			Skill:    skill,
			Action:   action,
			Reason:   reason,
			Previous: prev,
			New:      snapshotOf(st),
		})
		if bandChanged {
			audit = append(audit, AuditEntry{
				Skill:    skill,
				Action:   "Updated confidence band",
				Reason:   fmt.Sprintf("evidence for %s now supports the %s band", skill.DisplayName(), band.Label()),
				Previous: prev,
				New:      snapshotOf(st),
			})
		}
	}

	if out == nil {
		return g, nil
	}
	return out, audit
}

// admit applies the age-band admission filter to a signal strength.
func admit(profile learner.Profile, strength float64) bool {
	if profile.AgeBand == learner.AgeBand6To9 && profile.Safety.Minor {
		return strength > youngMinorMinStrength
	}
	return true
}

// recomputeBand derives the confidence band from exposures and signals.
// Pure function; the only writer of SkillState.Band goes through here.
func recomputeBand(exposures int, signals []float64) ConfidenceBand {
	mean := 0.0
	if len(signals) > 0 {
		sum := 0.0
		for _, s := range signals {
			sum += s
		}
		mean = sum / float64(len(signals))
	}
	switch {
	case exposures >= highMinExposures && mean >= highMinMean:
		return BandHigh
	case exposures >= mediumMinExposures && mean >= mediumMinMean:
		return BandMedium
	default:
		return BandLow
	}
}

func snapshotOf(st *SkillState) AuditSnapshot {
	return AuditSnapshot{
		Exposures:      st.Exposures,
		ConfidenceBand: st.Band,
		SignalCount:    st.signals.Len(),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
