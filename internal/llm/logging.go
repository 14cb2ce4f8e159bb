package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// RequestRecord summarizes one model call for the audit journal.
type RequestRecord struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestLog receives a record per model call. Implemented by the journal;
// a nil log disables recording.
type RequestLog interface {
	AppendRequest(ctx context.Context, rec RequestRecord) error
}

// purposeKey carries the request purpose through the context.
type purposeKey struct{}

// WithPurpose tags a context with what the model call is for
// (e.g. "assessment").
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom extracts the purpose tag, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok {
		return p
	}
	return "unknown"
}

// LoggingProvider records every model call to a RequestLog.
type LoggingProvider struct {
	inner Provider
	log   RequestLog
}

// WithLogging wraps a Provider with request recording.
func WithLogging(p Provider, log RequestLog) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	rec := RequestRecord{
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		rec.Model = resp.Model
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Recording failures must not fail the request.
	if l.log != nil {
		if logErr := l.log.AppendRequest(ctx, rec); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record model request: %v\n", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
