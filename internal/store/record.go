// Package store holds session records and learner state under hard caps.
// Everything here is volatile and process-local; durability belongs to the
// journal. Growth is bounded by construction: the caps are re-applied on
// every write, oldest entries dropped first.
package store

import (
	"time"

	"github.com/abhisek/socratiq/internal/dialogue"
	"github.com/abhisek/socratiq/internal/learner"
	"github.com/abhisek/socratiq/internal/session"
	"github.com/abhisek/socratiq/internal/skillgraph"
)

// Caps on retained data. Tunable constants, but the enforcement itself is
// not optional.
const (
	MaxSessionsPerLearner     = 200
	MaxTurnsPerSession        = 50
	MaxObservationsPerSession = 200
)

// KernelTraceEntry is one labeled step inside a kernel run's trace.
type KernelTraceEntry struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// KernelRun is an opaque record of an external computation attached to a
// session by a collaborator. The engine stores and redacts these; it never
// produces or interprets them.
type KernelRun struct {
	ID          string             `json:"id"`
	Label       string             `json:"label"`
	Description string             `json:"description"`
	Trace       []KernelTraceEntry `json:"trace,omitempty"`
}

// SessionRecord is one stored session. TutorTurns and Observations are
// clamped to the newest entries on every write.
type SessionRecord struct {
	SessionID    string                   `json:"sessionId"`
	LearnerID    string                   `json:"learnerId"`
	Goal         learner.Goal             `json:"goal"`
	Mode         dialogue.TutorMode       `json:"mode"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
	TutorTurns   []dialogue.TurnPlan      `json:"tutorTurns"`
	Observations []skillgraph.Observation `json:"observations"`
	Traces       []session.Trace          `json:"traces,omitempty"`
	Refusals     []string                 `json:"refusals,omitempty"`
	Notes        []string                 `json:"notes,omitempty"`
	KernelRuns   []KernelRun              `json:"kernelRuns,omitempty"`

	// VisibilityNote is set only on filtered views, never on stored
	// records.
	VisibilityNote string `json:"visibilityNote,omitempty"`
}

// Clone deep-copies the record so callers can't mutate stored state.
func (r SessionRecord) Clone() SessionRecord {
	c := r
	c.TutorTurns = cloneTurns(r.TutorTurns)
	c.Observations = append([]skillgraph.Observation(nil), r.Observations...)
	c.Traces = cloneTraces(r.Traces)
	c.Refusals = append([]string(nil), r.Refusals...)
	c.Notes = append([]string(nil), r.Notes...)
	c.KernelRuns = CloneKernelRuns(r.KernelRuns)
	return c
}

// LearnerRecord is the one-per-learner persistent state: the profile and
// the accumulated skill graph.
type LearnerRecord struct {
	LearnerID  string            `json:"learnerId"`
	Profile    learner.Profile   `json:"learnerProfile"`
	Graph      *skillgraph.Graph `json:"skillGraph"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Notes      []string          `json:"notes,omitempty"`
	KernelRuns []KernelRun       `json:"kernelRuns,omitempty"`

	// VisibilityNote is set only on filtered views.
	VisibilityNote string `json:"visibilityNote,omitempty"`
}

// Clone deep-copies the record.
func (r LearnerRecord) Clone() LearnerRecord {
	c := r
	if r.Graph != nil {
		c.Graph = r.Graph.Clone()
	}
	c.Notes = append([]string(nil), r.Notes...)
	c.KernelRuns = CloneKernelRuns(r.KernelRuns)
	return c
}

// CloneKernelRuns deep-copies a kernel run list.
func CloneKernelRuns(runs []KernelRun) []KernelRun {
	if runs == nil {
		return nil
	}
	out := make([]KernelRun, len(runs))
	for i, run := range runs {
		out[i] = run
		out[i].Trace = append([]KernelTraceEntry(nil), run.Trace...)
	}
	return out
}

func cloneTurns(turns []dialogue.TurnPlan) []dialogue.TurnPlan {
	if turns == nil {
		return nil
	}
	out := make([]dialogue.TurnPlan, len(turns))
	for i, t := range turns {
		out[i] = t
		out[i].Questions = append([]string(nil), t.Questions...)
		out[i].UncertaintyNotes = append([]string(nil), t.UncertaintyNotes...)
		out[i].Actions = append([]dialogue.Action(nil), t.Actions...)
	}
	return out
}

func cloneTraces(traces []session.Trace) []session.Trace {
	if traces == nil {
		return nil
	}
	out := make([]session.Trace, len(traces))
	for i, tr := range traces {
		out[i] = tr
		out[i].Refusals = append([]string(nil), tr.Refusals...)
		out[i].Notes = append([]string(nil), tr.Notes...)
	}
	return out
}
