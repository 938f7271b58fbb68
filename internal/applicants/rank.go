package applicants

import "sort"

// SortByScore orders applicants by overall score descending, unscreened
// records last. The sort is stable, so ties and unscreened records keep
// store order.
func SortByScore(list []Applicant) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Screened() != b.Screened() {
			return a.Screened()
		}
		if !a.Screened() {
			return false
		}
		return a.ScreeningResult.OverallScore > b.ScreeningResult.OverallScore
	})
}

// AttachRanks derives rank and percentile for every screened applicant in a
// score-sorted list. Ranks are 1-based over the screened population; the
// percentile is the share of that population scoring at or below the record.
// Derivation happens on response copies only, nothing is persisted.
func AttachRanks(list []Applicant) {
	total := 0
	for i := range list {
		if list[i].Screened() {
			total++
		}
	}
	if total == 0 {
		return
	}
	rank := 0
	for i := range list {
		if !list[i].Screened() {
			continue
		}
		rank++
		result := *list[i].ScreeningResult
		r := rank
		p := float64(total-r) / float64(total) * 100
		result.Rank = &r
		result.Percentile = &p
		list[i].ScreeningResult = &result
	}
}
