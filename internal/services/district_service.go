package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ourvoice/mgnrega-api/internal/analytics"
	"github.com/ourvoice/mgnrega-api/internal/logger"
	"github.com/ourvoice/mgnrega-api/internal/metrics"
	"github.com/ourvoice/mgnrega-api/internal/models"
	"github.com/ourvoice/mgnrega-api/internal/repository"
)

// Coordinate validation constants
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Service-level errors
var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrNoDistricts        = errors.New("no districts found")
)

// DistrictService defines the interface for district business logic operations.
type DistrictService interface {
	// ListByState retrieves all districts of a state ordered by name.
	ListByState(ctx context.Context, state string) ([]models.District, error)

	// Locate resolves GPS coordinates to the nearest known district.
	// Returns ErrInvalidCoordinates if coordinates are out of valid range.
	// Returns ErrNoDistricts if the reference set is empty.
	Locate(ctx context.Context, lat, lng float64) (*analytics.NearestDistrict, error)
}

// districtService is the concrete implementation of DistrictService.
type districtService struct {
	repo repository.DistrictRepository
	log  *logger.Logger
}

// NewDistrictService creates a new instance of DistrictService.
func NewDistrictService(repo repository.DistrictRepository, log *logger.Logger) DistrictService {
	return &districtService{
		repo: repo,
		log:  log,
	}
}

func (s *districtService) ListByState(ctx context.Context, state string) ([]models.District, error) {
	districts, err := s.repo.ListByState(ctx, state)
	if err != nil {
		s.log.Error("Failed to list districts", err, map[string]interface{}{
			"state": state,
		})
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}

	s.log.Debug("Districts listed", map[string]interface{}{
		"state": state,
		"count": len(districts),
	})

	return districts, nil
}

// Locate validates the coordinates, loads the full reference set and
// hands it to the planar nearest-neighbor resolver.
func (s *districtService) Locate(ctx context.Context, lat, lng float64) (*analytics.NearestDistrict, error) {
	if lat < MinLatitude || lat > MaxLatitude {
		s.log.Warn("Invalid latitude provided", map[string]interface{}{
			"lat": lat,
			"lng": lng,
		})
		return nil, fmt.Errorf("%w: latitude must be between %f and %f, got %f",
			ErrInvalidCoordinates, MinLatitude, MaxLatitude, lat)
	}

	if lng < MinLongitude || lng > MaxLongitude {
		s.log.Warn("Invalid longitude provided", map[string]interface{}{
			"lat": lat,
			"lng": lng,
		})
		return nil, fmt.Errorf("%w: longitude must be between %f and %f, got %f",
			ErrInvalidCoordinates, MinLongitude, MaxLongitude, lng)
	}

	districts, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("Failed to load district reference set", err, map[string]interface{}{
			"lat": lat,
			"lng": lng,
		})
		return nil, fmt.Errorf("failed to load districts: %w", err)
	}

	nearest, err := analytics.Nearest(districts, lat, lng)
	if err != nil {
		if errors.Is(err, analytics.ErrNoDistricts) {
			return nil, ErrNoDistricts
		}
		return nil, fmt.Errorf("failed to resolve nearest district: %w", err)
	}

	metrics.NearestLookupsTotal.Inc()

	s.log.Info("Nearest district resolved", map[string]interface{}{
		"lat":         lat,
		"lng":         lng,
		"district_id": nearest.District.ID,
		"district":    nearest.District.Name,
		"distance":    nearest.Distance,
	})

	return &nearest, nil
}
