package screening

import (
	"encoding/json"
	"fmt"
)

// Defaults applied when the oracle response parses but omits fields. These
// are distinct from the hard-failure fallback score and must stay that way.
const (
	defaultOverallScore = 50.0
	fallbackScore       = 30.0
	defaultReasoning    = "No reasoning provided"
)

type rawResult struct {
	OverallScore            *float64 `json:"overall_score"`
	ResumeScore             *float64 `json:"resume_score"`
	CoverLetterScore        *float64 `json:"cover_letter_score"`
	TranscriptScore         *float64 `json:"transcript_score"`
	Strengths               []string `json:"strengths"`
	Weaknesses              []string `json:"weaknesses"`
	Reasoning               string   `json:"reasoning"`
	RecommendedForInterview *bool    `json:"recommended_for_interview"`
	ConfidenceLevel         string   `json:"confidence_level"`
}

// Normalize binds the oracle's raw JSON to a Result. A payload that fails to
// parse is an error and the caller falls through to the fallback path; a
// payload that parses with missing fields gets documented defaults.
func Normalize(raw json.RawMessage) (Result, error) {
	var parsed rawResult
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result{}, fmt.Errorf("oracle response parse: %w", err)
	}

	result := Result{
		OverallScore:     defaultOverallScore,
		ResumeScore:      clampPtr(parsed.ResumeScore),
		CoverLetterScore: clampPtr(parsed.CoverLetterScore),
		TranscriptScore:  clampPtr(parsed.TranscriptScore),
		Strengths:        orEmpty(parsed.Strengths),
		Weaknesses:       orEmpty(parsed.Weaknesses),
		Reasoning:        parsed.Reasoning,
		ConfidenceLevel:  normalizeConfidence(parsed.ConfidenceLevel),
	}
	if parsed.OverallScore != nil {
		result.OverallScore = clamp(*parsed.OverallScore)
	}
	if parsed.RecommendedForInterview != nil {
		result.RecommendedForInterview = *parsed.RecommendedForInterview
	}
	if result.Reasoning == "" {
		result.Reasoning = defaultReasoning
	}
	return result, nil
}

// Fallback builds the deterministic degraded result used when the oracle
// call or its response parsing fails. Screening always produces a result.
func Fallback(cause error) Result {
	reason := "unknown error"
	if cause != nil {
		reason = cause.Error()
	}
	return Result{
		OverallScore:            fallbackScore,
		Strengths:               []string{"Unable to analyze"},
		Weaknesses:              []string{"Screening failed"},
		Reasoning:               fmt.Sprintf("Automated screening encountered an error: %s", reason),
		RecommendedForInterview: false,
		ConfidenceLevel:         ConfidenceLow,
	}
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clampPtr(score *float64) *float64 {
	if score == nil {
		return nil
	}
	clamped := clamp(*score)
	return &clamped
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func normalizeConfidence(level string) string {
	switch level {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return level
	default:
		return ConfidenceMedium
	}
}
