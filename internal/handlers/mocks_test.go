package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/ourvoice/mgnrega-api/internal/analytics"
	"github.com/ourvoice/mgnrega-api/internal/logger"
	"github.com/ourvoice/mgnrega-api/internal/middleware"
	"github.com/ourvoice/mgnrega-api/internal/models"
	"github.com/ourvoice/mgnrega-api/internal/repository"
	"github.com/ourvoice/mgnrega-api/internal/services"
)

// newTestRouter creates a gin engine with the request-id and logging
// middleware installed, matching the production chain.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.New("test")))
	return router
}

// MockDistrictService is a mock implementation of DistrictService for testing
type MockDistrictService struct {
	mock.Mock
}

func (m *MockDistrictService) ListByState(ctx context.Context, state string) ([]models.District, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.District), args.Error(1)
}

func (m *MockDistrictService) Locate(ctx context.Context, lat, lng float64) (*analytics.NearestDistrict, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.NearestDistrict), args.Error(1)
}

// MockMetricsService is a mock implementation of MetricsService for testing
type MockMetricsService struct {
	mock.Mock
}

func (m *MockMetricsService) GetPerformance(ctx context.Context, districtID, months int) (*services.PerformanceReport, error) {
	args := m.Called(ctx, districtID, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PerformanceReport), args.Error(1)
}

func (m *MockMetricsService) Sync(ctx context.Context, districtID int, in models.MetricInput) (*models.MetricRecord, error) {
	args := m.Called(ctx, districtID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MetricRecord), args.Error(1)
}

// MockComparisonService is a mock implementation of ComparisonService for testing
type MockComparisonService struct {
	mock.Mock
}

func (m *MockComparisonService) Compare(ctx context.Context, districtID1, districtID2 int) (*services.DistrictComparison, error) {
	args := m.Called(ctx, districtID1, districtID2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DistrictComparison), args.Error(1)
}

// MockReportService is a mock implementation of ReportService for testing
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Submit(ctx context.Context, in models.IssueReportInput) (*services.SubmittedReport, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SubmittedReport), args.Error(1)
}

func (m *MockReportService) List(ctx context.Context, f repository.ReportFilter) ([]repository.ReportSummary, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ReportSummary), args.Error(1)
}
