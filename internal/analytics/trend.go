package analytics

import (
	"strconv"

	"github.com/ourvoice/mgnrega-api/internal/models"
)

// Trends holds the month-over-month change for each tracked metric,
// formatted as signed percentage strings ("+10.0%", "-3.2%", "0.0%").
type Trends struct {
	Jobs       string `json:"jobs"`
	Wages      string `json:"wages"`
	Pending    string `json:"pending"`
	PersonDays string `json:"personDays"`
}

// NeutralTrends is returned when there is not enough history to compute
// a period-over-period change. Absence of data is not an error here.
func NeutralTrends() Trends {
	return Trends{Jobs: "0%", Wages: "0%", Pending: "0%", PersonDays: "0%"}
}

// TrendPercent formats the percentage change from previous to current
// to one decimal place, with an explicit leading "+" for positive
// changes. A zero previous value short-circuits to "0%" instead of
// dividing by zero.
func TrendPercent(current, previous float64) string {
	if previous == 0 {
		return "0%"
	}

	change := (current - previous) / previous * 100
	s := strconv.FormatFloat(change, 'f', 1, 64)

	// The sign is decided on the rounded value, so a +0.04% change
	// renders as "0.0%" rather than "+0.0%".
	if v, _ := strconv.ParseFloat(s, 64); v > 0 {
		s = "+" + s
	}
	return s + "%"
}

// ComputeTrends derives per-metric trends from a most-recent-first
// sequence of records for a single district. Fewer than two records
// yields the neutral result for every metric.
func ComputeTrends(records []models.MetricRecord) Trends {
	if len(records) < 2 {
		return NeutralTrends()
	}

	current, previous := records[0], records[1]
	return Trends{
		Jobs:       TrendPercent(float64(current.JobsProvided), float64(previous.JobsProvided)),
		Wages:      TrendPercent(current.WagesPaidPercentage, previous.WagesPaidPercentage),
		Pending:    TrendPercent(current.PendingPaymentsCrores, previous.PendingPaymentsCrores),
		PersonDays: TrendPercent(float64(current.PersonDays), float64(previous.PersonDays)),
	}
}
