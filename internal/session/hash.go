package session

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/abhisek/socratiq/internal/assessment"
	"github.com/abhisek/socratiq/internal/dialogue"
	"github.com/abhisek/socratiq/internal/learner"
)

// hashInput is the canonical serialization the inputs hash is computed
// over. Field order is fixed by the struct; encoding/json emits struct
// fields in declaration order, so identical requests hash identically.
type hashInput struct {
	SessionID           string             `json:"sessionId"`
	LearnerID           string             `json:"learnerId"`
	Goal                learner.Goal       `json:"goal"`
	Mode                dialogue.TutorMode `json:"mode"`
	Utterance           string             `json:"utterance"`
	RequestedAssessment assessment.Type    `json:"requestedAssessment"`
}

// InputsHash computes the deterministic hash of a request. Two requests
// with the same session id, learner id, goal, mode, utterance and
// assessment request produce the same hash.
func InputsHash(req Request) string {
	canonical, err := json.Marshal(hashInput{
		SessionID:           req.SessionID,
		LearnerID:           req.Profile.LearnerID,
		Goal:                req.Goal,
		Mode:                req.Mode,
		Utterance:           req.Utterance,
		RequestedAssessment: req.RequestedAssessment,
	})
	if err != nil {
		// hashInput is plain string-typed data; Marshal cannot fail.
		panic(err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
