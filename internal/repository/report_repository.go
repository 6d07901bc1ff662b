package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ourvoice/mgnrega-api/internal/database"
	"github.com/ourvoice/mgnrega-api/internal/models"
)

// ReportFilter narrows the issue-report listing.
type ReportFilter struct {
	DistrictID *int
	Status     string
	Limit      int
}

// ReportSummary is the listing row for the admin dashboard: the report
// joined with its district's display fields. Voice note URLs are
// intentionally excluded from listings.
type ReportSummary struct {
	ID            int       `json:"id"`
	IssueType     string    `json:"issue_type"`
	Description   *string   `json:"description"`
	ContactNumber *string   `json:"contact_number"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	DistrictName  string    `json:"district_name"`
	State         string    `json:"state"`
}

// ReportRepository defines the interface for issue-report persistence.
type ReportRepository interface {
	// Insert stores a new report and returns its id and creation time.
	Insert(ctx context.Context, in models.IssueReportInput) (int, time.Time, error)

	// List returns reports matching the filter, newest first.
	// Returns an empty slice if none match.
	List(ctx context.Context, f ReportFilter) ([]ReportSummary, error)
}

// reportRepository is the concrete implementation of ReportRepository.
type reportRepository struct {
	db *database.Database
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *database.Database) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Insert(ctx context.Context, in models.IssueReportInput) (int, time.Time, error) {
	query := `
		INSERT INTO issue_reports (
			district_id, issue_type, description,
			voice_note_url, contact_number
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	var id int
	var createdAt time.Time
	err := r.db.Pool.QueryRow(ctx, query,
		in.DistrictID, in.IssueType, in.Description,
		in.VoiceNoteURL, in.ContactNumber,
	).Scan(&id, &createdAt)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to insert issue report for district %d: %w",
			in.DistrictID, err)
	}

	return id, createdAt, nil
}

func (r *reportRepository) List(ctx context.Context, f ReportFilter) ([]ReportSummary, error) {
	query := `
		SELECT
			ir.id, ir.issue_type, ir.description, ir.contact_number,
			ir.status, ir.created_at, d.name, d.state
		FROM issue_reports ir
		JOIN districts d ON ir.district_id = d.id
		WHERE ir.status = $1
			AND ($2::int IS NULL OR ir.district_id = $2)
		ORDER BY ir.created_at DESC
		LIMIT $3
	`

	rows, err := r.db.Pool.Query(ctx, query, f.Status, f.DistrictID, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query issue reports: %w", err)
	}
	defer rows.Close()

	var reports []ReportSummary

	for rows.Next() {
		var rep ReportSummary
		if err := rows.Scan(
			&rep.ID,
			&rep.IssueType,
			&rep.Description,
			&rep.ContactNumber,
			&rep.Status,
			&rep.CreatedAt,
			&rep.DistrictName,
			&rep.State,
		); err != nil {
			return nil, fmt.Errorf("failed to scan issue report row: %w", err)
		}
		reports = append(reports, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating issue report rows: %w", err)
	}

	if reports == nil {
		reports = []ReportSummary{}
	}

	return reports, nil
}
