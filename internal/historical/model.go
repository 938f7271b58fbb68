package historical

import (
	"errors"
	"time"
)

// Hire outcomes.
const (
	OutcomePositive = "positive"
	OutcomeNegative = "negative"
	OutcomeNeutral  = "neutral"
)

var (
	ErrNotFound     = errors.New("historical hire not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Hire is one past hiring decision kept as training material for future
// screening calibration. Only the outcome is required.
type Hire struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	HiredDate         *time.Time `json:"hired_date"`
	Position          string     `json:"position"`
	ResumeText        string     `json:"resume_text,omitempty"`
	CoverLetterText   string     `json:"cover_letter_text,omitempty"`
	TranscriptText    string     `json:"transcript_text,omitempty"`
	Outcome           string     `json:"outcome"`
	OutcomeNotes      string     `json:"outcome_notes"`
	TenureMonths      *int       `json:"tenure_months"`
	PerformanceRating *float64   `json:"performance_rating"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ValidOutcome reports whether s is a known hire outcome.
func ValidOutcome(s string) bool {
	switch s {
	case OutcomePositive, OutcomeNegative, OutcomeNeutral:
		return true
	}
	return false
}

// Stats aggregates the historical pool.
type Stats struct {
	TotalHires               int            `json:"total_hires"`
	OutcomeBreakdown         map[string]int `json:"outcome_breakdown"`
	AverageTenureMonths      *float64       `json:"average_tenure_months"`
	AveragePerformanceRating *float64       `json:"average_performance_rating"`
}
