package screening

import (
	"encoding/json"
	"time"
)

// Confidence levels reported by the scoring oracle.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Result is the structured outcome of screening one applicant. It is created
// once, immediately after the oracle call resolves, and never mutated; rank
// and percentile are derived at read time and only set on response copies.
type Result struct {
	OverallScore            float64   `json:"overall_score"`
	ResumeScore             *float64  `json:"resume_score"`
	CoverLetterScore        *float64  `json:"cover_letter_score"`
	TranscriptScore         *float64  `json:"transcript_score"`
	Strengths               []string  `json:"strengths"`
	Weaknesses              []string  `json:"weaknesses"`
	Reasoning               string    `json:"reasoning"`
	RecommendedForInterview bool      `json:"recommended_for_interview"`
	ConfidenceLevel         string    `json:"confidence_level"`
	Rank                    *int      `json:"rank"`
	Percentile              *float64  `json:"percentile"`
	ScreenedAt              time.Time `json:"screened_at"`
	AIModelUsed             string    `json:"ai_model_used"`
}

// EncodeStringList serializes a string list to its JSON text form, the shape
// used for the strengths/weaknesses text columns. A nil list encodes as [].
func EncodeStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeStringList parses the JSON text form back into a string list,
// preserving order. Malformed input decodes as empty.
func DecodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	if items == nil {
		return []string{}
	}
	return items
}
