package store

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/abhisek/socratiq/internal/ring"
)

// ErrMissingSessionID is returned for writes without a session id.
var ErrMissingSessionID = errors.New("store: missing session id")

// ErrMissingLearnerID is returned for operations without a learner id.
var ErrMissingLearnerID = errors.New("store: missing learner id")

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

const shardCount = 16

// Store is a bounded in-memory store. Writes for one learner serialize on
// that learner's shard; learners on different shards never contend.
// Records are cloned on the way in and out.
type Store struct {
	shards [shardCount]*shard

	// ownerMu guards owner, the session id → learner id index that lets
	// GetSession find the right shard from a session id alone.
	ownerMu sync.RWMutex
	owner   map[string]string
}

type shard struct {
	mu sync.RWMutex

	// sessions holds records keyed by session id; order tracks insertion
	// order per learner, oldest first, for FIFO eviction.
	sessions map[string]*SessionRecord
	order    map[string][]string

	learners map[string]*LearnerRecord
}

// New creates an empty bounded store.
func New() *Store {
	s := &Store{owner: make(map[string]string)}
	for i := range s.shards {
		s.shards[i] = &shard{
			sessions: make(map[string]*SessionRecord),
			order:    make(map[string][]string),
			learners: make(map[string]*LearnerRecord),
		}
	}
	return s
}

func (s *Store) shardFor(learnerID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(learnerID))
	return s.shards[h.Sum32()%shardCount]
}

// AppendSession inserts or overwrites a session record by session id and
// re-applies all three caps: turns and observations are clamped to the
// newest entries, and the learner's oldest sessions are evicted beyond
// the per-learner cap.
func (s *Store) AppendSession(rec SessionRecord) error {
	if rec.SessionID == "" {
		return fmt.Errorf("append session: %w", ErrMissingSessionID)
	}
	if rec.LearnerID == "" {
		return fmt.Errorf("append session %q: %w", rec.SessionID, ErrMissingLearnerID)
	}

	stored := rec.Clone()
	stored.VisibilityNote = ""
	stored.TutorTurns = ring.FromValues(MaxTurnsPerSession, stored.TutorTurns).Values()
	stored.Observations = ring.FromValues(MaxObservationsPerSession, stored.Observations).Values()

	sh := s.shardFor(rec.LearnerID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, exists := sh.sessions[rec.SessionID]; !exists {
		sh.order[rec.LearnerID] = append(sh.order[rec.LearnerID], rec.SessionID)
	}
	sh.sessions[rec.SessionID] = &stored

	var evicted []string
	for len(sh.order[rec.LearnerID]) > MaxSessionsPerLearner {
		oldest := sh.order[rec.LearnerID][0]
		sh.order[rec.LearnerID] = sh.order[rec.LearnerID][1:]
		delete(sh.sessions, oldest)
		evicted = append(evicted, oldest)
	}

	s.ownerMu.Lock()
	s.owner[rec.SessionID] = rec.LearnerID
	for _, id := range evicted {
		delete(s.owner, id)
	}
	s.ownerMu.Unlock()
	return nil
}

// GetSession returns a clone of one stored session.
func (s *Store) GetSession(sessionID string) (SessionRecord, error) {
	if sessionID == "" {
		return SessionRecord{}, fmt.Errorf("get session: %w", ErrMissingSessionID)
	}
	s.ownerMu.RLock()
	learnerID, ok := s.owner[sessionID]
	s.ownerMu.RUnlock()
	if !ok {
		return SessionRecord{}, fmt.Errorf("get session %q: %w", sessionID, ErrNotFound)
	}

	sh := s.shardFor(learnerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	rec, ok := sh.sessions[sessionID]
	if !ok {
		return SessionRecord{}, fmt.Errorf("get session %q: %w", sessionID, ErrNotFound)
	}
	return rec.Clone(), nil
}

// ListSessions returns clones of a learner's sessions, newest first.
// limit <= 0 means all retained sessions.
func (s *Store) ListSessions(learnerID string, limit int) ([]SessionRecord, error) {
	if learnerID == "" {
		return nil, fmt.Errorf("list sessions: %w", ErrMissingLearnerID)
	}
	sh := s.shardFor(learnerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	ids := sh.order[learnerID]
	n := len(ids)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]SessionRecord, 0, n)
	for i := len(ids) - 1; i >= 0 && len(out) < n; i-- {
		if rec, ok := sh.sessions[ids[i]]; ok {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

// SessionCount returns the number of retained sessions for a learner.
func (s *Store) SessionCount(learnerID string) int {
	sh := s.shardFor(learnerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return len(sh.order[learnerID])
}

// SaveLearnerState upserts the one-per-learner record.
func (s *Store) SaveLearnerState(rec LearnerRecord) error {
	if rec.LearnerID == "" {
		return fmt.Errorf("save learner state: %w", ErrMissingLearnerID)
	}
	stored := rec.Clone()
	stored.VisibilityNote = ""

	sh := s.shardFor(rec.LearnerID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.learners[rec.LearnerID] = &stored
	return nil
}

// GetLearnerState returns a clone of the learner's record.
func (s *Store) GetLearnerState(learnerID string) (LearnerRecord, error) {
	if learnerID == "" {
		return LearnerRecord{}, fmt.Errorf("get learner state: %w", ErrMissingLearnerID)
	}
	sh := s.shardFor(learnerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	rec, ok := sh.learners[learnerID]
	if !ok {
		return LearnerRecord{}, fmt.Errorf("get learner state %q: %w", learnerID, ErrNotFound)
	}
	return rec.Clone(), nil
}
