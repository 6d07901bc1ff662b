package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ourvoice/mgnrega-api/internal/logger"
	"github.com/ourvoice/mgnrega-api/internal/models"
	"github.com/ourvoice/mgnrega-api/internal/repository"
)

// ErrInvalidIssueType is returned when a report carries an unknown issue type.
var ErrInvalidIssueType = errors.New("invalid issue type")

// SubmittedReport is the acknowledgement for a stored issue report.
type SubmittedReport struct {
	ID          int
	SubmittedAt time.Time
}

// ReportService defines the interface for citizen issue reports.
type ReportService interface {
	// Submit validates and stores a new issue report.
	// Returns ErrInvalidIssueType for unknown issue types.
	Submit(ctx context.Context, in models.IssueReportInput) (*SubmittedReport, error)

	// List retrieves reports matching the filter, newest first.
	List(ctx context.Context, f repository.ReportFilter) ([]repository.ReportSummary, error)
}

// reportService is the concrete implementation of ReportService.
type reportService struct {
	repo repository.ReportRepository
	log  *logger.Logger
}

// NewReportService creates a new instance of ReportService.
func NewReportService(repo repository.ReportRepository, log *logger.Logger) ReportService {
	return &reportService{
		repo: repo,
		log:  log,
	}
}

func (s *reportService) Submit(ctx context.Context, in models.IssueReportInput) (*SubmittedReport, error) {
	if !models.ValidIssueType(in.IssueType) {
		s.log.Warn("Rejected report with unknown issue type", map[string]interface{}{
			"district_id": in.DistrictID,
			"issue_type":  in.IssueType,
		})
		return nil, fmt.Errorf("%w: %s", ErrInvalidIssueType, in.IssueType)
	}

	id, createdAt, err := s.repo.Insert(ctx, in)
	if err != nil {
		s.log.Error("Failed to store issue report", err, map[string]interface{}{
			"district_id": in.DistrictID,
			"issue_type":  in.IssueType,
		})
		return nil, fmt.Errorf("failed to store issue report: %w", err)
	}

	s.log.Info("Issue report submitted", map[string]interface{}{
		"report_id":   id,
		"district_id": in.DistrictID,
		"issue_type":  in.IssueType,
	})

	return &SubmittedReport{ID: id, SubmittedAt: createdAt}, nil
}

func (s *reportService) List(ctx context.Context, f repository.ReportFilter) ([]repository.ReportSummary, error) {
	reports, err := s.repo.List(ctx, f)
	if err != nil {
		s.log.Error("Failed to list issue reports", err, map[string]interface{}{
			"status": f.Status,
		})
		return nil, fmt.Errorf("failed to list issue reports: %w", err)
	}

	return reports, nil
}
