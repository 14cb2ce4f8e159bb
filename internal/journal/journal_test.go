package journal

import (
	"context"
	"testing"

	"github.com/abhisek/socratiq/internal/llm"
	"github.com/abhisek/socratiq/internal/session"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func sampleTrace(sessionID string, turn int) session.Trace {
	return session.Trace{
		TimestampISO:     "2026-03-01T10:00:00Z",
		InputsHash:       "abc123",
		ContractsVersion: session.ContractsVersion,
		SessionID:        sessionID,
		LearnerID:        "l1",
		Refusals:         []string{},
		Notes:            []string{},
		TurnCount:        turn,
	}
}

func TestPragmasApplied(t *testing.T) {
	j := openTestJournal(t)
	db := j.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAppendAndListTraces(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := j.AppendTrace(ctx, sampleTrace("s1", i)); err != nil {
			t.Fatalf("AppendTrace: %v", err)
		}
	}

	traces, err := j.ListTraces(ctx, "l1", 0)
	if err != nil {
		t.Fatalf("ListTraces: %v", err)
	}
	if len(traces) != 3 {
		t.Fatalf("got %d traces, want 3", len(traces))
	}
	// Newest first.
	if traces[0].TurnCount != 3 || traces[2].TurnCount != 1 {
		t.Errorf("order = %d,%d,%d", traces[0].TurnCount, traces[1].TurnCount, traces[2].TurnCount)
	}
	if traces[0].InputsHash != "abc123" {
		t.Errorf("InputsHash = %q", traces[0].InputsHash)
	}

	limited, err := j.ListTraces(ctx, "l1", 1)
	if err != nil {
		t.Fatalf("ListTraces: %v", err)
	}
	if len(limited) != 1 || limited[0].TurnCount != 3 {
		t.Errorf("limited = %+v", limited)
	}
}

func TestListTracesUnknownLearner(t *testing.T) {
	j := openTestJournal(t)
	traces, err := j.ListTraces(context.Background(), "nobody", 0)
	if err != nil {
		t.Fatalf("ListTraces: %v", err)
	}
	if len(traces) != 0 {
		t.Errorf("got %d traces, want 0", len(traces))
	}
}

func TestAppendRequestImplementsRequestLog(t *testing.T) {
	j := openTestJournal(t)
	var _ llm.RequestLog = j

	err := j.AppendRequest(context.Background(), llm.RequestRecord{
		Model:        "mock",
		Purpose:      "assessment",
		InputTokens:  12,
		OutputTokens: 40,
		LatencyMs:    5,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("AppendRequest: %v", err)
	}

	var count int
	if err := j.DB().QueryRow("SELECT COUNT(*) FROM llm_requests").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
