package analytics

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/ourvoice/mgnrega-api/internal/models"
)

// Winner identifies which side of a pairwise comparison came out ahead.
const (
	WinnerDistrict1 = "district1"
	WinnerDistrict2 = "district2"
	WinnerTie       = "tie"
)

// tieThreshold is the band, in percentage points, within which two
// values are declared equal rather than ranked.
const tieThreshold = 1.0

// Comparison is the outcome of comparing one metric across two
// districts. Percentage is the non-negative magnitude of the delta and
// Difference the signed delta, both rounded to one decimal place.
// Difference can be non-zero while Winner is "tie" (within the
// threshold band).
//
// Comparable is false when either input was zero or missing; the
// comparison then degrades to a zero/tie result instead of dividing by
// zero. A legitimately zero metric (say, zero pending payments) is
// indistinguishable from missing data here; that ambiguity is
// long-standing upstream behavior and is kept as-is.
type Comparison struct {
	Percentage float64
	Winner     string
	Difference float64
	Comparable bool
}

// MarshalJSON renders the wire format the mobile clients already parse:
// one-decimal strings for percentage and difference, or a bare numeric
// zero with no difference key when the comparison was degenerate.
func (c Comparison) MarshalJSON() ([]byte, error) {
	if !c.Comparable {
		return json.Marshal(struct {
			Percentage int    `json:"percentage"`
			Winner     string `json:"winner"`
		}{0, c.Winner})
	}

	return json.Marshal(struct {
		Percentage string `json:"percentage"`
		Winner     string `json:"winner"`
		Difference string `json:"difference"`
	}{
		Percentage: formatOneDecimal(c.Percentage),
		Winner:     c.Winner,
		Difference: formatOneDecimal(c.Difference),
	})
}

func formatOneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

// Compare evaluates v1 against v2 for a single metric. higherIsBetter
// selects the winning direction: jobs, wages and person-days reward the
// larger value, pending payments the smaller one.
func Compare(v1, v2 float64, higherIsBetter bool) Comparison {
	if v1 == 0 || v2 == 0 {
		return Comparison{Winner: WinnerTie}
	}

	diff := (v1 - v2) / v2 * 100

	c := Comparison{
		Percentage: roundOneDecimal(math.Abs(diff)),
		Difference: roundOneDecimal(diff),
		Comparable: true,
	}

	switch {
	case math.Abs(diff) < tieThreshold:
		c.Winner = WinnerTie
	case higherIsBetter && v1 > v2, !higherIsBetter && v1 < v2:
		c.Winner = WinnerDistrict1
	default:
		c.Winner = WinnerDistrict2
	}

	return c
}

// ComparisonSet groups the four per-metric comparisons for a pair of
// districts.
type ComparisonSet struct {
	Jobs       Comparison `json:"jobs"`
	Wages      Comparison `json:"wages"`
	Pending    Comparison `json:"pending"`
	PersonDays Comparison `json:"personDays"`
}

// CompareRecords runs the pairwise comparison over the current-period
// records of two districts.
func CompareRecords(a, b models.MetricRecord) ComparisonSet {
	return ComparisonSet{
		Jobs:       Compare(float64(a.JobsProvided), float64(b.JobsProvided), true),
		Wages:      Compare(a.WagesPaidPercentage, b.WagesPaidPercentage, true),
		Pending:    Compare(a.PendingPaymentsCrores, b.PendingPaymentsCrores, false),
		PersonDays: Compare(float64(a.PersonDays), float64(b.PersonDays), true),
	}
}
