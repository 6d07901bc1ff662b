package models

import (
	"time"
)

// MetricRecord is one MGNREGA performance snapshot for a district.
// The (district_id, month, year) triple is unique; the sync endpoint
// upserts on that key rather than inserting duplicates.
type MetricRecord struct {
	ID                    int       `json:"id"`
	DistrictID            int       `json:"district_id"`
	Month                 int       `json:"month"`
	Year                  int       `json:"year"`
	JobsProvided          int64     `json:"jobs_provided"`
	WagesPaidPercentage   float64   `json:"wages_paid_percentage"`
	PendingPaymentsCrores float64   `json:"pending_payments_crores"`
	PersonDays            int64     `json:"person_days"`
	LastUpdated           time.Time `json:"last_updated"`
}

// MetricInput carries the four tracked indicators as submitted by the
// external sync job.
type MetricInput struct {
	JobsProvided          int64   `json:"jobsProvided"`
	WagesPaidPercentage   float64 `json:"wagesPaidPercentage"`
	PendingPaymentsCrores float64 `json:"pendingPaymentsCrores"`
	PersonDays            int64   `json:"personDays"`
}
