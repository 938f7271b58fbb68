package ranking

import (
	"math"

	"screener-backend/internal/applicants"
)

// Summary aggregates the screening state of the whole applicant pool.
type Summary struct {
	TotalApplicants    int     `json:"total_applicants"`
	ScreenedCount      int     `json:"screened_count"`
	PendingCount       int     `json:"pending_count"`
	TopFifteenPctCount int     `json:"top_15_percent_count"`
	AverageScore       float64 `json:"average_score"`
	RecommendedCount   int     `json:"recommended_count"`
}

// Summarize computes pool-level counts and the mean overall score, rounded
// to one decimal place. The mean and the top-fraction count are zero when
// nothing has been screened.
func Summarize(list []applicants.Applicant) Summary {
	s := Summary{TotalApplicants: len(list)}

	var sum float64
	for _, a := range list {
		if !a.Screened() {
			continue
		}
		s.ScreenedCount++
		sum += a.ScreeningResult.OverallScore
		if a.ScreeningResult.RecommendedForInterview {
			s.RecommendedCount++
		}
	}
	s.PendingCount = s.TotalApplicants - s.ScreenedCount
	s.TopFifteenPctCount = SelectionSize(s.ScreenedCount, DefaultFraction)
	if s.ScreenedCount > 0 {
		s.AverageScore = math.Round(sum/float64(s.ScreenedCount)*10) / 10
	}
	return s
}
