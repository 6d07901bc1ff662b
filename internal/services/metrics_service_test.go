package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourvoice/mgnrega-api/internal/logger"
	"github.com/ourvoice/mgnrega-api/internal/models"
	"github.com/ourvoice/mgnrega-api/internal/repository"
)

// fixedClock pins the current period to March 2024 for deterministic tests.
func fixedClock() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func newMetricsServiceWithClock(repo repository.MetricsRepository) MetricsService {
	svc := NewMetricsService(repo, logger.New("test")).(*metricsService)
	svc.now = fixedClock
	return svc
}

func TestGetPerformance_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockMetricsRepository)
	service := newMetricsServiceWithClock(mockRepo)

	ctx := context.Background()
	current := &repository.DistrictMetrics{
		Record: models.MetricRecord{
			ID: 10, DistrictID: 1, Month: 3, Year: 2024,
			JobsProvided: 2250000, WagesPaidPercentage: 84.0,
			PendingPaymentsCrores: 12.5, PersonDays: 4500000,
		},
		DistrictName: "Raipur",
		State:        "Chhattisgarh",
	}
	history := []models.MetricRecord{
		current.Record,
		{ID: 9, DistrictID: 1, Month: 2, Year: 2024,
			JobsProvided: 2000000, WagesPaidPercentage: 80.0,
			PendingPaymentsCrores: 15.0, PersonDays: 4000000},
	}

	mockRepo.On("CurrentForDistrict", ctx, 1, 3, 2024).Return(current, nil)
	mockRepo.On("History", ctx, 1, 6).Return(history, nil)

	// Act
	report, err := service.GetPerformance(ctx, 1, 6)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, current, report.Current)
	assert.Len(t, report.History, 2)
	assert.Equal(t, "+12.5%", report.Trends.Jobs)
	assert.Equal(t, "+5.0%", report.Trends.Wages)
	assert.Equal(t, "-16.7%", report.Trends.Pending)
	assert.Equal(t, "+12.5%", report.Trends.PersonDays)
	mockRepo.AssertExpectations(t)
}

func TestGetPerformance_NoCurrentData(t *testing.T) {
	// Arrange
	mockRepo := new(MockMetricsRepository)
	service := newMetricsServiceWithClock(mockRepo)

	ctx := context.Background()
	// Repository returns nil, nil when no record exists for the period
	mockRepo.On("CurrentForDistrict", ctx, 1, 3, 2024).Return(nil, nil)
	mockRepo.On("History", ctx, 1, 6).Return([]models.MetricRecord{}, nil)

	// Act
	report, err := service.GetPerformance(ctx, 1, 6)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Nil(t, report.Current)
	assert.Empty(t, report.History)
	assert.Equal(t, "0%", report.Trends.Jobs)
	assert.Equal(t, "0%", report.Trends.Wages)
	assert.Equal(t, "0%", report.Trends.Pending)
	assert.Equal(t, "0%", report.Trends.PersonDays)
	mockRepo.AssertExpectations(t)
}

func TestGetPerformance_CurrentQueryError(t *testing.T) {
	// Arrange
	mockRepo := new(MockMetricsRepository)
	service := newMetricsServiceWithClock(mockRepo)

	ctx := context.Background()
	dbError := errors.New("database connection failed")
	mockRepo.On("CurrentForDistrict", ctx, 1, 3, 2024).Return(nil, dbError)

	// Act
	report, err := service.GetPerformance(ctx, 1, 6)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, dbError)
	mockRepo.AssertNotCalled(t, "History")
}

func TestGetPerformance_HistoryQueryError(t *testing.T) {
	// Arrange
	mockRepo := new(MockMetricsRepository)
	service := newMetricsServiceWithClock(mockRepo)

	ctx := context.Background()
	dbError := errors.New("database connection failed")
	mockRepo.On("CurrentForDistrict", ctx, 1, 3, 2024).Return(nil, nil)
	mockRepo.On("History", ctx, 1, 6).Return(nil, dbError)

	// Act
	report, err := service.GetPerformance(ctx, 1, 6)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, dbError)
	mockRepo.AssertExpectations(t)
}

func TestSync_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockMetricsRepository)
	service := newMetricsServiceWithClock(mockRepo)

	ctx := context.Background()
	input := models.MetricInput{
		JobsProvided:          2250000,
		WagesPaidPercentage:   85.0,
		PendingPaymentsCrores: 12.5,
		PersonDays:            4500000,
	}
	stored := &models.MetricRecord{
		ID: 42, DistrictID: 1, Month: 3, Year: 2024,
		JobsProvided: 2250000, WagesPaidPercentage: 85.0,
		PendingPaymentsCrores: 12.5, PersonDays: 4500000,
		LastUpdated: fixedClock(),
	}

	mockRepo.On("Upsert", ctx, 1, 3, 2024, input).Return(stored, nil)

	// Act
	record, err := service.Sync(ctx, 1, input)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, stored, record)
	mockRepo.AssertExpectations(t)
}

func TestSync_RepositoryError(t *testing.T) {
	// Arrange
	mockRepo := new(MockMetricsRepository)
	service := newMetricsServiceWithClock(mockRepo)

	ctx := context.Background()
	input := models.MetricInput{JobsProvided: 100}
	dbError := errors.New("database connection failed")
	mockRepo.On("Upsert", ctx, 1, 3, 2024, input).Return(nil, dbError)

	// Act
	record, err := service.Sync(ctx, 1, input)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, dbError)
	mockRepo.AssertExpectations(t)
}

func TestCurrentPeriod(t *testing.T) {
	month, year := currentPeriod(time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, 12, month)
	assert.Equal(t, 2024, year)

	month, year = currentPeriod(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, month)
	assert.Equal(t, 2025, year)
}
