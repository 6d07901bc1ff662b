package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ourvoice/mgnrega-api/internal/models"
	"github.com/ourvoice/mgnrega-api/internal/repository"
)

// MockDistrictRepository is a mock implementation of DistrictRepository for testing
type MockDistrictRepository struct {
	mock.Mock
}

func (m *MockDistrictRepository) ListByState(ctx context.Context, state string) ([]models.District, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.District), args.Error(1)
}

func (m *MockDistrictRepository) ListAll(ctx context.Context) ([]models.District, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.District), args.Error(1)
}

func (m *MockDistrictRepository) FindByID(ctx context.Context, id int) (*models.District, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.District), args.Error(1)
}

// MockMetricsRepository is a mock implementation of MetricsRepository for testing
type MockMetricsRepository struct {
	mock.Mock
}

func (m *MockMetricsRepository) CurrentForDistrict(ctx context.Context, districtID, month, year int) (*repository.DistrictMetrics, error) {
	args := m.Called(ctx, districtID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DistrictMetrics), args.Error(1)
}

func (m *MockMetricsRepository) History(ctx context.Context, districtID, limit int) ([]models.MetricRecord, error) {
	args := m.Called(ctx, districtID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MetricRecord), args.Error(1)
}

func (m *MockMetricsRepository) PairHistory(ctx context.Context, districtID1, districtID2, limit int) ([]repository.PairHistoryEntry, error) {
	args := m.Called(ctx, districtID1, districtID2, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PairHistoryEntry), args.Error(1)
}

func (m *MockMetricsRepository) Upsert(ctx context.Context, districtID, month, year int, in models.MetricInput) (*models.MetricRecord, error) {
	args := m.Called(ctx, districtID, month, year, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MetricRecord), args.Error(1)
}

// MockReportRepository is a mock implementation of ReportRepository for testing
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Insert(ctx context.Context, in models.IssueReportInput) (int, time.Time, error) {
	args := m.Called(ctx, in)
	return args.Int(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockReportRepository) List(ctx context.Context, f repository.ReportFilter) ([]repository.ReportSummary, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ReportSummary), args.Error(1)
}
