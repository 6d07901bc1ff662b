package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ourvoice/mgnrega-api/internal/analytics"
	apierrors "github.com/ourvoice/mgnrega-api/internal/errors"
	"github.com/ourvoice/mgnrega-api/internal/models"
	"github.com/ourvoice/mgnrega-api/internal/repository"
	"github.com/ourvoice/mgnrega-api/internal/services"
)

func setupComparisonRouter(service services.ComparisonService) *gin.Engine {
	handler := NewComparisonHandler(service)
	router := newTestRouter()
	router.GET("/compare-districts", handler.Compare)
	return router
}

func comparisonFixture() *services.DistrictComparison {
	rec1 := models.MetricRecord{
		ID: 10, DistrictID: 1, Month: 3, Year: 2024,
		JobsProvided: 2250000, WagesPaidPercentage: 78.0,
		PendingPaymentsCrores: 20.0, PersonDays: 4500000,
	}
	rec2 := models.MetricRecord{
		ID: 11, DistrictID: 2, Month: 3, Year: 2024,
		JobsProvided: 1980000, WagesPaidPercentage: 85.0,
		PendingPaymentsCrores: 12.0, PersonDays: 4000000,
	}
	set := analytics.CompareRecords(rec1, rec2)

	return &services.DistrictComparison{
		District1: services.ComparedDistrict{
			District: models.District{ID: 1, Name: "Raipur", State: "Chhattisgarh"},
			Record:   rec1,
		},
		District2: services.ComparedDistrict{
			District: models.District{ID: 2, Name: "Bastar", State: "Chhattisgarh"},
			Record:   rec2,
		},
		Comparisons: set,
		Insights:    analytics.Insights(set, "Raipur", "Bastar"),
		History: []repository.PairHistoryEntry{
			{Record: rec1, DistrictName: "Raipur"},
			{Record: rec2, DistrictName: "Bastar"},
		},
	}
}

func TestCompareDistricts_Success(t *testing.T) {
	// Arrange
	mockService := new(MockComparisonService)
	router := setupComparisonRouter(mockService)

	mockService.On("Compare", mock.Anything, 1, 2).Return(comparisonFixture(), nil)

	// Act
	req, err := http.NewRequest(http.MethodGet, "/compare-districts?district1=1&district2=2", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success    bool `json:"success"`
		Comparison struct {
			District1 struct {
				ID    int    `json:"id"`
				Name  string `json:"name"`
				State string `json:"state"`
				Data  struct {
					JobsProvided int64 `json:"jobs_provided"`
				} `json:"data"`
			} `json:"district1"`
			District2 struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"district2"`
			Comparisons map[string]json.RawMessage `json:"comparisons"`
			Insights    []string                   `json:"insights"`
			Historical  []PairHistoryEntry         `json:"historicalData"`
		} `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.True(t, response.Success)
	assert.Equal(t, 1, response.Comparison.District1.ID)
	assert.Equal(t, "Raipur", response.Comparison.District1.Name)
	assert.Equal(t, int64(2250000), response.Comparison.District1.Data.JobsProvided)
	assert.Equal(t, "Bastar", response.Comparison.District2.Name)

	// Comparison values serialize as one-decimal strings
	assert.JSONEq(t,
		`{"percentage":"13.6","winner":"district1","difference":"13.6"}`,
		string(response.Comparison.Comparisons["jobs"]))
	assert.JSONEq(t,
		`{"percentage":"8.2","winner":"district2","difference":"-8.2"}`,
		string(response.Comparison.Comparisons["wages"]))
	assert.JSONEq(t,
		`{"percentage":"66.7","winner":"district2","difference":"66.7"}`,
		string(response.Comparison.Comparisons["pending"]))

	require.Len(t, response.Comparison.Insights, 3)
	assert.Equal(t, "Raipur has provided 13.6% more jobs than Bastar", response.Comparison.Insights[0])
	assert.Equal(t, "Bastar has better wage payment rate", response.Comparison.Insights[1])
	assert.Equal(t, "Bastar has lower pending payments", response.Comparison.Insights[2])

	require.Len(t, response.Comparison.Historical, 2)
	assert.Equal(t, "Raipur", response.Comparison.Historical[0].DistrictName)
	mockService.AssertExpectations(t)
}

func TestCompareDistricts_MissingIDs(t *testing.T) {
	testCases := []struct {
		name string
		url  string
	}{
		{name: "Missing district1", url: "/compare-districts?district2=2"},
		{name: "Missing district2", url: "/compare-districts?district1=1"},
		{name: "Missing both", url: "/compare-districts"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockComparisonService)
			router := setupComparisonRouter(mockService)

			req, err := http.NewRequest(http.MethodGet, tc.url, nil)
			require.NoError(t, err)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response apierrors.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, "Both district IDs required for comparison", response.Error)
			mockService.AssertNotCalled(t, "Compare")
		})
	}
}

func TestCompareDistricts_InvalidID(t *testing.T) {
	// Arrange
	mockService := new(MockComparisonService)
	router := setupComparisonRouter(mockService)

	// Act
	req, err := http.NewRequest(http.MethodGet, "/compare-districts?district1=abc&district2=2", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response apierrors.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Invalid district ID", response.Error)
	mockService.AssertNotCalled(t, "Compare")
}

func TestCompareDistricts_DataNotFound(t *testing.T) {
	// Arrange
	mockService := new(MockComparisonService)
	router := setupComparisonRouter(mockService)

	mockService.On("Compare", mock.Anything, 1, 2).Return(nil, services.ErrDistrictDataNotFound)

	// Act
	req, err := http.NewRequest(http.MethodGet, "/compare-districts?district1=1&district2=2", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)

	var response apierrors.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "District data not found", response.Error)
}

func TestCompareDistricts_ServiceError(t *testing.T) {
	// Arrange
	mockService := new(MockComparisonService)
	router := setupComparisonRouter(mockService)

	mockService.On("Compare", mock.Anything, 1, 2).
		Return(nil, errors.New("database connection failed"))

	// Act
	req, err := http.NewRequest(http.MethodGet, "/compare-districts?district1=1&district2=2", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response apierrors.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Failed to compare districts", response.Error)
}
