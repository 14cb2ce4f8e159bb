// Package visibility produces role-scoped views of stored sessions and
// learner state. Filtering is pure: the same record, role and policy
// always yield byte-identical output.
package visibility

import "github.com/abhisek/socratiq/internal/learner"

// Role identifies who is asking to see a record.
type Role string

const (
	RoleLearner Role = "learner"
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
)

// Policy says which non-learner roles may view a learner's records.
type Policy struct {
	ParentCanView  bool `json:"parentCanView"`
	TeacherCanView bool `json:"teacherCanView"`
}

// GetPolicy derives the visibility policy from the learner's profile.
// Minors are visible to parents and teachers; adults are private unless
// they opted their teacher in. There is no parent access for adults.
func GetPolicy(profile learner.Profile, teacherOptIn bool) Policy {
	isMinor := profile.Safety.Minor
	return Policy{
		ParentCanView:  isMinor,
		TeacherCanView: isMinor || teacherOptIn,
	}
}
