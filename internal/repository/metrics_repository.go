package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ourvoice/mgnrega-api/internal/database"
	"github.com/ourvoice/mgnrega-api/internal/models"
)

// DistrictMetrics joins a metric record with its district's display fields.
type DistrictMetrics struct {
	Record       models.MetricRecord
	DistrictName string
	State        string
}

// PairHistoryEntry is one historical row in a two-district comparison,
// tagged with the owning district's name.
type PairHistoryEntry struct {
	Record       models.MetricRecord
	DistrictName string
}

// MetricsRepository defines the interface for MGNREGA metric data access.
type MetricsRepository interface {
	// CurrentForDistrict returns the record for the given district and
	// period joined with district metadata.
	// Returns nil, nil if no record exists (not an error).
	CurrentForDistrict(ctx context.Context, districtID, month, year int) (*DistrictMetrics, error)

	// History returns up to limit records for one district, most recent
	// period first. Returns an empty slice if none exist.
	History(ctx context.Context, districtID, limit int) ([]models.MetricRecord, error)

	// PairHistory returns up to limit records across two districts,
	// most recent period first, name as the final sort key.
	PairHistory(ctx context.Context, districtID1, districtID2, limit int) ([]PairHistoryEntry, error)

	// Upsert inserts or overwrites the record for (districtID, month,
	// year) and returns the stored row.
	Upsert(ctx context.Context, districtID, month, year int, in models.MetricInput) (*models.MetricRecord, error)
}

// metricsRepository is the concrete implementation of MetricsRepository.
type metricsRepository struct {
	db *database.Database
}

// NewMetricsRepository creates a new instance of MetricsRepository.
func NewMetricsRepository(db *database.Database) MetricsRepository {
	return &metricsRepository{db: db}
}

const metricColumns = `md.id, md.district_id, md.month, md.year,
	md.jobs_provided, md.wages_paid_percentage, md.pending_payments_crores,
	md.person_days, md.last_updated`

func (r *metricsRepository) CurrentForDistrict(ctx context.Context, districtID, month, year int) (*DistrictMetrics, error) {
	query := `
		SELECT ` + metricColumns + `, d.name, d.state
		FROM mgnrega_data md
		JOIN districts d ON md.district_id = d.id
		WHERE md.district_id = $1 AND md.month = $2 AND md.year = $3
		LIMIT 1
	`

	var dm DistrictMetrics
	err := r.db.Pool.QueryRow(ctx, query, districtID, month, year).Scan(
		&dm.Record.ID,
		&dm.Record.DistrictID,
		&dm.Record.Month,
		&dm.Record.Year,
		&dm.Record.JobsProvided,
		&dm.Record.WagesPaidPercentage,
		&dm.Record.PendingPaymentsCrores,
		&dm.Record.PersonDays,
		&dm.Record.LastUpdated,
		&dm.DistrictName,
		&dm.State,
	)

	// No record for the period is not an error at the repository level
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query metrics for district %d period %d/%d: %w",
			districtID, month, year, err)
	}

	return &dm, nil
}

func (r *metricsRepository) History(ctx context.Context, districtID, limit int) ([]models.MetricRecord, error) {
	query := `
		SELECT ` + metricColumns + `
		FROM mgnrega_data md
		WHERE md.district_id = $1
		ORDER BY md.year DESC, md.month DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, districtID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query metric history for district %d: %w", districtID, err)
	}
	defer rows.Close()

	var records []models.MetricRecord

	for rows.Next() {
		var m models.MetricRecord
		if err := rows.Scan(
			&m.ID,
			&m.DistrictID,
			&m.Month,
			&m.Year,
			&m.JobsProvided,
			&m.WagesPaidPercentage,
			&m.PendingPaymentsCrores,
			&m.PersonDays,
			&m.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan metric row: %w", err)
		}
		records = append(records, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metric rows: %w", err)
	}

	if records == nil {
		records = []models.MetricRecord{}
	}

	return records, nil
}

func (r *metricsRepository) PairHistory(ctx context.Context, districtID1, districtID2, limit int) ([]PairHistoryEntry, error) {
	query := `
		SELECT ` + metricColumns + `, d.name
		FROM mgnrega_data md
		JOIN districts d ON md.district_id = d.id
		WHERE md.district_id IN ($1, $2)
		ORDER BY md.year DESC, md.month DESC, d.name
		LIMIT $3
	`

	rows, err := r.db.Pool.Query(ctx, query, districtID1, districtID2, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pair history for districts %d, %d: %w",
			districtID1, districtID2, err)
	}
	defer rows.Close()

	var entries []PairHistoryEntry

	for rows.Next() {
		var e PairHistoryEntry
		if err := rows.Scan(
			&e.Record.ID,
			&e.Record.DistrictID,
			&e.Record.Month,
			&e.Record.Year,
			&e.Record.JobsProvided,
			&e.Record.WagesPaidPercentage,
			&e.Record.PendingPaymentsCrores,
			&e.Record.PersonDays,
			&e.Record.LastUpdated,
			&e.DistrictName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pair history row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pair history rows: %w", err)
	}

	if entries == nil {
		entries = []PairHistoryEntry{}
	}

	return entries, nil
}

func (r *metricsRepository) Upsert(ctx context.Context, districtID, month, year int, in models.MetricInput) (*models.MetricRecord, error) {
	query := `
		INSERT INTO mgnrega_data (
			district_id, month, year,
			jobs_provided, wages_paid_percentage,
			pending_payments_crores, person_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (district_id, month, year)
		DO UPDATE SET
			jobs_provided = EXCLUDED.jobs_provided,
			wages_paid_percentage = EXCLUDED.wages_paid_percentage,
			pending_payments_crores = EXCLUDED.pending_payments_crores,
			person_days = EXCLUDED.person_days,
			last_updated = CURRENT_TIMESTAMP
		RETURNING id, district_id, month, year,
			jobs_provided, wages_paid_percentage, pending_payments_crores,
			person_days, last_updated
	`

	var m models.MetricRecord
	err := r.db.Pool.QueryRow(ctx, query,
		districtID, month, year,
		in.JobsProvided, in.WagesPaidPercentage,
		in.PendingPaymentsCrores, in.PersonDays,
	).Scan(
		&m.ID,
		&m.DistrictID,
		&m.Month,
		&m.Year,
		&m.JobsProvided,
		&m.WagesPaidPercentage,
		&m.PendingPaymentsCrores,
		&m.PersonDays,
		&m.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert metrics for district %d period %d/%d: %w",
			districtID, month, year, err)
	}

	return &m, nil
}
