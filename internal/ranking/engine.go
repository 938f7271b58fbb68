package ranking

import "screener-backend/internal/applicants"

// DefaultFraction is the share of screened applicants selected when no
// percentage is given.
const DefaultFraction = 15.0

// TopList is the outcome of a top-fraction selection. TotalCount is the
// screened population the fraction was applied to, so consumers can compute
// absolute rank locally.
type TopList struct {
	TotalCount    int                    `json:"total_count"`
	TopPercentage float64                `json:"top_percentage"`
	Candidates    []applicants.Applicant `json:"candidates"`
}

// TopCandidates selects the highest-scoring fraction of screened applicants.
// Ordering is stable descending by overall score; the selection size is
// floor(N * fraction / 100) with a minimum of 1 whenever anyone is screened.
func TopCandidates(list []applicants.Applicant, fraction float64) TopList {
	if fraction <= 0 || fraction > 100 {
		fraction = DefaultFraction
	}

	screened := make([]applicants.Applicant, 0, len(list))
	for _, a := range list {
		if a.Screened() {
			screened = append(screened, a)
		}
	}
	if len(screened) == 0 {
		return TopList{TopPercentage: fraction, Candidates: []applicants.Applicant{}}
	}

	applicants.SortByScore(screened)
	applicants.AttachRanks(screened)

	count := SelectionSize(len(screened), fraction)
	return TopList{
		TotalCount:    len(screened),
		TopPercentage: fraction,
		Candidates:    screened[:count],
	}
}

// SelectionSize returns floor(n * fraction / 100), at least 1 when n >= 1.
func SelectionSize(n int, fraction float64) int {
	if n <= 0 {
		return 0
	}
	count := int(float64(n) * fraction / 100)
	if count < 1 {
		count = 1
	}
	if count > n {
		count = n
	}
	return count
}
