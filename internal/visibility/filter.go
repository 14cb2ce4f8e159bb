package visibility

import (
	"strings"

	"github.com/abhisek/socratiq/internal/dialogue"
	"github.com/abhisek/socratiq/internal/skillgraph"
	"github.com/abhisek/socratiq/internal/store"
)

// AccessDeniedNote tags the stub returned to roles the policy excludes.
const AccessDeniedNote = "Access denied for this role"

// internalMarkers prefix strings that must never leave the engine.
var internalMarkers = []string{"internal:", "system:", "debug:"}

// FilterSessionForViewer returns the view of a session record the given
// role is allowed to see. Learners always see their own sessions in full;
// parents and teachers are gated by the policy and receive an
// empty-content stub when denied. Pass-through views are scrubbed of
// internal marker strings.
func FilterSessionForViewer(rec store.SessionRecord, role Role, policy Policy) store.SessionRecord {
	if !allowed(role, policy) {
		return store.SessionRecord{
			SessionID:      rec.SessionID,
			LearnerID:      rec.LearnerID,
			CreatedAt:      rec.CreatedAt,
			UpdatedAt:      rec.UpdatedAt,
			TutorTurns:     []dialogue.TurnPlan{},
			Observations:   []skillgraph.Observation{},
			KernelRuns:     nil,
			VisibilityNote: AccessDeniedNote,
		}
	}

	out := rec.Clone()
	out.Refusals = scrubRefusals(out.Refusals)
	out.Notes = scrubStrings(out.Notes)
	out.KernelRuns = scrubKernelRuns(out.KernelRuns)
	for i := range out.TutorTurns {
		out.TutorTurns[i].UncertaintyNotes = scrubStrings(out.TutorTurns[i].UncertaintyNotes)
	}
	for i := range out.Traces {
		out.Traces[i].Refusals = scrubRefusals(out.Traces[i].Refusals)
		out.Traces[i].Notes = scrubStrings(out.Traces[i].Notes)
	}
	return out
}

// FilterLearnerStateForViewer is the learner-state counterpart of
// FilterSessionForViewer.
func FilterLearnerStateForViewer(rec store.LearnerRecord, role Role, policy Policy) store.LearnerRecord {
	if !allowed(role, policy) {
		return store.LearnerRecord{
			LearnerID:      rec.LearnerID,
			UpdatedAt:      rec.UpdatedAt,
			VisibilityNote: AccessDeniedNote,
		}
	}

	out := rec.Clone()
	out.Notes = scrubStrings(out.Notes)
	out.KernelRuns = scrubKernelRuns(out.KernelRuns)
	return out
}

func allowed(role Role, policy Policy) bool {
	switch role {
	case RoleLearner:
		// Self-access is never denied.
		return true
	case RoleParent:
		return policy.ParentCanView
	case RoleTeacher:
		return policy.TeacherCanView
	}
	return false
}

func hasInternalMarker(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, m := range internalMarkers {
		if strings.HasPrefix(lower, m) {
			return true
		}
	}
	return false
}

// scrubRefusals drops everything that is not a declared public reason
// code or is tagged with an internal marker.
func scrubRefusals(refusals []string) []string {
	if refusals == nil {
		return nil
	}
	out := make([]string, 0, len(refusals))
	for _, r := range refusals {
		if dialogue.RefusalReason(r).Valid() {
			out = append(out, r)
			continue
		}
		if !hasInternalMarker(r) {
			out = append(out, r)
		}
	}
	return out
}

// scrubStrings drops strings tagged with an internal marker.
func scrubStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !hasInternalMarker(v) {
			out = append(out, v)
		}
	}
	return out
}

// scrubKernelRuns blanks marked labels and descriptions on each run and
// drops marked trace entries entirely.
func scrubKernelRuns(runs []store.KernelRun) []store.KernelRun {
	if runs == nil {
		return nil
	}
	out := store.CloneKernelRuns(runs)
	for i := range out {
		if hasInternalMarker(out[i].Label) {
			out[i].Label = ""
		}
		if hasInternalMarker(out[i].Description) {
			out[i].Description = ""
		}
		kept := out[i].Trace[:0]
		for _, entry := range out[i].Trace {
			if hasInternalMarker(entry.Label) || hasInternalMarker(entry.Description) {
				continue
			}
			kept = append(kept, entry)
		}
		out[i].Trace = kept
	}
	return out
}
