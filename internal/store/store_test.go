package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/socratiq/internal/dialogue"
	"github.com/abhisek/socratiq/internal/skillgraph"
)

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func record(learnerID, sessionID string) SessionRecord {
	return SessionRecord{
		SessionID: sessionID,
		LearnerID: learnerID,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
		TutorTurns: []dialogue.TurnPlan{
			{Message: "opening"},
		},
	}
}

func TestAppendSessionValidation(t *testing.T) {
	s := New()

	err := s.AppendSession(SessionRecord{LearnerID: "l1"})
	if !errors.Is(err, ErrMissingSessionID) {
		t.Errorf("err = %v, want ErrMissingSessionID", err)
	}

	err = s.AppendSession(SessionRecord{SessionID: "s1"})
	if !errors.Is(err, ErrMissingLearnerID) {
		t.Errorf("err = %v, want ErrMissingLearnerID", err)
	}
}

func TestAppendOverwritesBySessionID(t *testing.T) {
	s := New()

	rec := record("l1", "s1")
	if err := s.AppendSession(rec); err != nil {
		t.Fatalf("AppendSession: %v", err)
	}
	rec.Notes = []string{"second write"}
	if err := s.AppendSession(rec); err != nil {
		t.Fatalf("AppendSession: %v", err)
	}

	if got := s.SessionCount("l1"); got != 1 {
		t.Errorf("SessionCount = %d, want 1", got)
	}
	stored, err := s.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if len(stored.Notes) != 1 || stored.Notes[0] != "second write" {
		t.Errorf("Notes = %v", stored.Notes)
	}
}

func TestGetSessionBySessionIDAlone(t *testing.T) {
	s := New()
	if err := s.AppendSession(record("l1", "s1")); err != nil {
		t.Fatalf("AppendSession: %v", err)
	}
	if err := s.AppendSession(record("l2", "s2")); err != nil {
		t.Fatalf("AppendSession: %v", err)
	}

	got, err := s.GetSession("s2")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.LearnerID != "l2" {
		t.Errorf("LearnerID = %q, want l2", got.LearnerID)
	}

	if _, err := s.GetSession(""); !errors.Is(err, ErrMissingSessionID) {
		t.Errorf("err = %v, want ErrMissingSessionID", err)
	}
}

func TestSessionCapFIFO(t *testing.T) {
	s := New()

	for i := 0; i < MaxSessionsPerLearner+25; i++ {
		rec := record("l1", fmt.Sprintf("s%03d", i))
		if err := s.AppendSession(rec); err != nil {
			t.Fatalf("AppendSession: %v", err)
		}
	}

	if got := s.SessionCount("l1"); got != MaxSessionsPerLearner {
		t.Errorf("SessionCount = %d, want %d", got, MaxSessionsPerLearner)
	}

	// Oldest 25 are gone, the rest survive.
	if _, err := s.GetSession("s000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("s000 should be evicted, err = %v", err)
	}
	if _, err := s.GetSession("s024"); !errors.Is(err, ErrNotFound) {
		t.Errorf("s024 should be evicted, err = %v", err)
	}
	if _, err := s.GetSession("s025"); err != nil {
		t.Errorf("s025 should survive, err = %v", err)
	}
}

func TestTurnAndObservationCaps(t *testing.T) {
	s := New()

	rec := record("l1", "s1")
	rec.TutorTurns = nil
	for i := 0; i < MaxTurnsPerSession+10; i++ {
		rec.TutorTurns = append(rec.TutorTurns, dialogue.TurnPlan{Message: fmt.Sprintf("turn %d", i)})
	}
	for i := 0; i < MaxObservationsPerSession+30; i++ {
		rec.Observations = append(rec.Observations, skillgraph.Observation{
			Type: skillgraph.ObsStatedUncertainty, Strength: 0.5,
		})
	}
	if err := s.AppendSession(rec); err != nil {
		t.Fatalf("AppendSession: %v", err)
	}

	stored, err := s.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if len(stored.TutorTurns) != MaxTurnsPerSession {
		t.Errorf("retained %d turns, want %d", len(stored.TutorTurns), MaxTurnsPerSession)
	}
	// Newest preserved, oldest dropped.
	if stored.TutorTurns[0].Message != "turn 10" {
		t.Errorf("oldest retained turn = %q, want %q", stored.TutorTurns[0].Message, "turn 10")
	}
	last := stored.TutorTurns[len(stored.TutorTurns)-1].Message
	if last != fmt.Sprintf("turn %d", MaxTurnsPerSession+9) {
		t.Errorf("newest retained turn = %q", last)
	}
	if len(stored.Observations) != MaxObservationsPerSession {
		t.Errorf("retained %d observations, want %d", len(stored.Observations), MaxObservationsPerSession)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		if err := s.AppendSession(record("l1", fmt.Sprintf("s%d", i))); err != nil {
			t.Fatalf("AppendSession: %v", err)
		}
	}

	got, err := s.ListSessions("l1", 0)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d sessions, want 5", len(got))
	}
	for i, rec := range got {
		want := fmt.Sprintf("s%d", 4-i)
		if rec.SessionID != want {
			t.Errorf("got[%d] = %q, want %q", i, rec.SessionID, want)
		}
	}

	limited, err := s.ListSessions("l1", 2)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(limited) != 2 || limited[0].SessionID != "s4" || limited[1].SessionID != "s3" {
		t.Errorf("limited = %v", limited)
	}
}

func TestListSessionsUnknownLearnerEmpty(t *testing.T) {
	s := New()
	got, err := s.ListSessions("nobody", 0)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d sessions, want 0", len(got))
	}
}

func TestStoredRecordsAreIsolated(t *testing.T) {
	s := New()
	rec := record("l1", "s1")
	rec.Notes = []string{"original"}
	if err := s.AppendSession(rec); err != nil {
		t.Fatalf("AppendSession: %v", err)
	}

	// Mutating the caller's copy must not reach the store.
	rec.Notes[0] = "mutated"
	rec.TutorTurns[0].Message = "mutated"

	stored, err := s.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if stored.Notes[0] != "original" {
		t.Error("stored notes aliased to caller slice")
	}
	if stored.TutorTurns[0].Message != "opening" {
		t.Error("stored turns aliased to caller slice")
	}

	// Mutating a read result must not reach the store either.
	stored.Notes[0] = "mutated again"
	again, _ := s.GetSession("s1")
	if again.Notes[0] != "original" {
		t.Error("read result aliased to stored record")
	}
}

func TestLearnerStateUpsert(t *testing.T) {
	s := New()

	if _, err := s.GetLearnerState("l1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	g := skillgraph.NewGraph()
	if err := s.SaveLearnerState(LearnerRecord{LearnerID: "l1", Graph: g, UpdatedAt: baseTime}); err != nil {
		t.Fatalf("SaveLearnerState: %v", err)
	}

	got, err := s.GetLearnerState("l1")
	if err != nil {
		t.Fatalf("GetLearnerState: %v", err)
	}
	if got.LearnerID != "l1" || got.Graph == nil {
		t.Errorf("record = %+v", got)
	}
	if got.Graph == g {
		t.Error("returned graph aliased to saved graph")
	}

	// One record per learner: a second save replaces the first.
	if err := s.SaveLearnerState(LearnerRecord{LearnerID: "l1", UpdatedAt: baseTime.Add(time.Hour)}); err != nil {
		t.Fatalf("SaveLearnerState: %v", err)
	}
	got, _ = s.GetLearnerState("l1")
	if !got.UpdatedAt.Equal(baseTime.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v", got.UpdatedAt)
	}
}
