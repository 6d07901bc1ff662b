package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ourvoice/mgnrega-api/internal/analytics"
	"github.com/ourvoice/mgnrega-api/internal/logger"
	"github.com/ourvoice/mgnrega-api/internal/metrics"
	"github.com/ourvoice/mgnrega-api/internal/models"
	"github.com/ourvoice/mgnrega-api/internal/repository"
)

// PerformanceReport bundles the current-period snapshot, the historical
// window and the derived trends for one district. Current is nil when
// no record exists for the running period; that is not an error.
type PerformanceReport struct {
	Current *repository.DistrictMetrics
	History []models.MetricRecord
	Trends  analytics.Trends
}

// MetricsService defines the interface for metric retrieval and sync.
type MetricsService interface {
	// GetPerformance retrieves current data, up to months of history
	// and the per-metric trends for a district.
	GetPerformance(ctx context.Context, districtID, months int) (*PerformanceReport, error)

	// Sync upserts the current-period record for a district with data
	// pushed by the external sync job, returning the stored row.
	Sync(ctx context.Context, districtID int, in models.MetricInput) (*models.MetricRecord, error)
}

// metricsService is the concrete implementation of MetricsService.
type metricsService struct {
	repo repository.MetricsRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewMetricsService creates a new instance of MetricsService.
func NewMetricsService(repo repository.MetricsRepository, log *logger.Logger) MetricsService {
	return &metricsService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (s *metricsService) GetPerformance(ctx context.Context, districtID, months int) (*PerformanceReport, error) {
	month, year := currentPeriod(s.now())

	current, err := s.repo.CurrentForDistrict(ctx, districtID, month, year)
	if err != nil {
		s.log.Error("Failed to query current metrics", err, map[string]interface{}{
			"district_id": districtID,
		})
		return nil, fmt.Errorf("failed to query current metrics: %w", err)
	}

	history, err := s.repo.History(ctx, districtID, months)
	if err != nil {
		s.log.Error("Failed to query metric history", err, map[string]interface{}{
			"district_id": districtID,
			"months":      months,
		})
		return nil, fmt.Errorf("failed to query metric history: %w", err)
	}

	report := &PerformanceReport{
		Current: current,
		History: history,
		Trends:  analytics.ComputeTrends(history),
	}

	s.log.Debug("Performance report built", map[string]interface{}{
		"district_id":  districtID,
		"has_current":  current != nil,
		"history_rows": len(history),
	})

	return report, nil
}

func (s *metricsService) Sync(ctx context.Context, districtID int, in models.MetricInput) (*models.MetricRecord, error) {
	month, year := currentPeriod(s.now())

	record, err := s.repo.Upsert(ctx, districtID, month, year, in)
	if err != nil {
		metrics.MetricSyncsTotal.WithLabelValues("error").Inc()
		s.log.Error("Failed to upsert metrics", err, map[string]interface{}{
			"district_id": districtID,
			"month":       month,
			"year":        year,
		})
		return nil, fmt.Errorf("failed to upsert metrics: %w", err)
	}

	metrics.MetricSyncsTotal.WithLabelValues("success").Inc()

	s.log.Info("Metrics synced", map[string]interface{}{
		"district_id": districtID,
		"month":       month,
		"year":        year,
		"record_id":   record.ID,
	})

	return record, nil
}

// currentPeriod maps a wall-clock time to the (month, year) metric key.
func currentPeriod(t time.Time) (int, int) {
	return int(t.Month()), t.Year()
}
