package analytics

import (
	"fmt"
)

// Insights converts a comparison set into ordered human-readable
// sentences: jobs first, then wages, then pending payments. Metrics
// that tied produce no sentence, and person-days has no sentence at
// all. The result is always a finite 0-3 element slice built fresh per
// request.
func Insights(set ComparisonSet, district1Name, district2Name string) []string {
	insights := []string{}

	if w, l, ok := pickNames(set.Jobs.Winner, district1Name, district2Name); ok {
		insights = append(insights, fmt.Sprintf(
			"%s has provided %s%% more jobs than %s", w, formatOneDecimal(set.Jobs.Percentage), l))
	}

	if w, _, ok := pickNames(set.Wages.Winner, district1Name, district2Name); ok {
		insights = append(insights, fmt.Sprintf("%s has better wage payment rate", w))
	}

	if w, _, ok := pickNames(set.Pending.Winner, district1Name, district2Name); ok {
		insights = append(insights, fmt.Sprintf("%s has lower pending payments", w))
	}

	return insights
}

// pickNames resolves a winner tag into (winner, loser) district names.
// ok is false on a tie.
func pickNames(winner, name1, name2 string) (string, string, bool) {
	switch winner {
	case WinnerDistrict1:
		return name1, name2, true
	case WinnerDistrict2:
		return name2, name1, true
	}
	return "", "", false
}
