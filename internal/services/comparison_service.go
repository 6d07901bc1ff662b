package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ourvoice/mgnrega-api/internal/analytics"
	"github.com/ourvoice/mgnrega-api/internal/logger"
	"github.com/ourvoice/mgnrega-api/internal/metrics"
	"github.com/ourvoice/mgnrega-api/internal/models"
	"github.com/ourvoice/mgnrega-api/internal/repository"
)

// pairHistoryLimit caps how many historical rows a comparison carries.
const pairHistoryLimit = 12

// ErrDistrictDataNotFound is returned when a compared district does not
// exist or has no record for the current period.
var ErrDistrictDataNotFound = errors.New("district data not found")

// ComparedDistrict pairs a district with its current-period record.
type ComparedDistrict struct {
	District models.District
	Record   models.MetricRecord
}

// DistrictComparison is the full result of comparing two districts:
// per-metric outcomes, generated insight sentences and the combined
// recent history of both districts.
type DistrictComparison struct {
	District1   ComparedDistrict
	District2   ComparedDistrict
	Comparisons analytics.ComparisonSet
	Insights    []string
	History     []repository.PairHistoryEntry
}

// ComparisonService defines the interface for the pairwise district comparison.
type ComparisonService interface {
	// Compare evaluates district1 against district2 on the current
	// period's data. Returns ErrDistrictDataNotFound if either district
	// is unknown or has no current-period record.
	Compare(ctx context.Context, districtID1, districtID2 int) (*DistrictComparison, error)
}

// comparisonService is the concrete implementation of ComparisonService.
type comparisonService struct {
	districts repository.DistrictRepository
	metrics   repository.MetricsRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewComparisonService creates a new instance of ComparisonService.
func NewComparisonService(
	districts repository.DistrictRepository,
	metricsRepo repository.MetricsRepository,
	log *logger.Logger,
) ComparisonService {
	return &comparisonService{
		districts: districts,
		metrics:   metricsRepo,
		log:       log,
		now:       time.Now,
	}
}

func (s *comparisonService) Compare(ctx context.Context, districtID1, districtID2 int) (*DistrictComparison, error) {
	month, year := currentPeriod(s.now())

	side1, err := s.loadSide(ctx, districtID1, month, year)
	if err != nil {
		return nil, err
	}
	side2, err := s.loadSide(ctx, districtID2, month, year)
	if err != nil {
		return nil, err
	}

	set := analytics.CompareRecords(side1.Record, side2.Record)
	insights := analytics.Insights(set, side1.District.Name, side2.District.Name)

	history, err := s.metrics.PairHistory(ctx, districtID1, districtID2, pairHistoryLimit)
	if err != nil {
		s.log.Error("Failed to query pair history", err, map[string]interface{}{
			"district1": districtID1,
			"district2": districtID2,
		})
		return nil, fmt.Errorf("failed to query pair history: %w", err)
	}

	metrics.ComparisonsTotal.Inc()

	s.log.Info("Districts compared", map[string]interface{}{
		"district1": side1.District.Name,
		"district2": side2.District.Name,
		"insights":  len(insights),
	})

	return &DistrictComparison{
		District1:   *side1,
		District2:   *side2,
		Comparisons: set,
		Insights:    insights,
		History:     history,
	}, nil
}

// loadSide fetches one district and its current-period record,
// collapsing both absences into ErrDistrictDataNotFound.
func (s *comparisonService) loadSide(ctx context.Context, districtID, month, year int) (*ComparedDistrict, error) {
	district, err := s.districts.FindByID(ctx, districtID)
	if err != nil {
		s.log.Error("Failed to query district", err, map[string]interface{}{
			"district_id": districtID,
		})
		return nil, fmt.Errorf("failed to query district: %w", err)
	}
	if district == nil {
		s.log.Debug("Compared district does not exist", map[string]interface{}{
			"district_id": districtID,
		})
		return nil, ErrDistrictDataNotFound
	}

	current, err := s.metrics.CurrentForDistrict(ctx, districtID, month, year)
	if err != nil {
		s.log.Error("Failed to query current metrics", err, map[string]interface{}{
			"district_id": districtID,
		})
		return nil, fmt.Errorf("failed to query current metrics: %w", err)
	}
	if current == nil {
		s.log.Debug("Compared district has no current-period record", map[string]interface{}{
			"district_id": districtID,
			"month":       month,
			"year":        year,
		})
		return nil, ErrDistrictDataNotFound
	}

	return &ComparedDistrict{District: *district, Record: current.Record}, nil
}
