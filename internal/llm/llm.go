package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts the scoring oracle: it turns applicant document text into
// a raw JSON evaluation. Parsing and normalization are the caller's job.
type Client interface {
	Screen(ctx context.Context, input Input) (json.RawMessage, error)
}

// Input captures the document texts and metadata for one screening request.
type Input struct {
	ResumeText      string
	CoverLetterText string
	TranscriptText  string
	Position        string
}

// Character budgets applied per document class before prompt assembly.
// The rubric is calibrated against these limits; callers must not exceed them.
const (
	MaxResumeChars      = 4000
	MaxCoverLetterChars = 2000
	MaxTranscriptChars  = 2000
)

// Truncate returns s cut to at most limit characters.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit]
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
// Every call fails, which drives callers into their fallback-result path.
type PlaceholderClient struct{}

// Screen returns ErrNotConfigured.
func (PlaceholderClient) Screen(ctx context.Context, input Input) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}
