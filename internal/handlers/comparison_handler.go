package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ourvoice/mgnrega-api/internal/analytics"
	apierrors "github.com/ourvoice/mgnrega-api/internal/errors"
	"github.com/ourvoice/mgnrega-api/internal/services"
)

// ComparisonHandler handles pairwise district comparison requests.
type ComparisonHandler struct {
	service services.ComparisonService
}

// NewComparisonHandler creates a new ComparisonHandler instance.
func NewComparisonHandler(service services.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{service: service}
}

// ComparedDistrictData is one side of the comparison response.
type ComparedDistrictData struct {
	ID    int            `json:"id"`
	Name  string         `json:"name"`
	State string         `json:"state"`
	Data  ComparedValues `json:"data"`
}

// ComparedValues carries the four raw current-period values.
type ComparedValues struct {
	JobsProvided          int64   `json:"jobs_provided"`
	WagesPaidPercentage   float64 `json:"wages_paid_percentage"`
	PendingPaymentsCrores float64 `json:"pending_payments_crores"`
	PersonDays            int64   `json:"person_days"`
}

// PairHistoryEntry is one historical row across either compared district.
type PairHistoryEntry struct {
	DistrictName          string  `json:"district_name"`
	JobsProvided          int64   `json:"jobs_provided"`
	WagesPaidPercentage   float64 `json:"wages_paid_percentage"`
	PendingPaymentsCrores float64 `json:"pending_payments_crores"`
	PersonDays            int64   `json:"person_days"`
	Month                 int     `json:"month"`
	Year                  int     `json:"year"`
}

// ComparisonData is the comparison payload.
type ComparisonData struct {
	District1      ComparedDistrictData    `json:"district1"`
	District2      ComparedDistrictData    `json:"district2"`
	Comparisons    analytics.ComparisonSet `json:"comparisons"`
	Insights       []string                `json:"insights"`
	HistoricalData []PairHistoryEntry      `json:"historicalData"`
}

// CompareResponse is the response for the comparison endpoint.
type CompareResponse struct {
	Success    bool           `json:"success"`
	Comparison ComparisonData `json:"comparison"`
}

// Compare handles GET /compare-districts.
// It evaluates district1 against district2 on the current period's
// data and generates insight sentences.
func (h *ComparisonHandler) Compare(c *gin.Context) {
	param1 := c.Query("district1")
	param2 := c.Query("district2")
	if param1 == "" || param2 == "" {
		apierrors.BadRequest(c, "Both district IDs required for comparison")
		return
	}

	districtID1, err1 := strconv.Atoi(param1)
	districtID2, err2 := strconv.Atoi(param2)
	if err1 != nil || err2 != nil {
		apierrors.BadRequest(c, "Invalid district ID")
		return
	}

	result, err := h.service.Compare(c.Request.Context(), districtID1, districtID2)
	if err != nil {
		if errors.Is(err, services.ErrDistrictDataNotFound) {
			apierrors.NotFound(c, "District data not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to compare districts", err)
		return
	}

	history := make([]PairHistoryEntry, 0, len(result.History))
	for _, e := range result.History {
		history = append(history, PairHistoryEntry{
			DistrictName:          e.DistrictName,
			JobsProvided:          e.Record.JobsProvided,
			WagesPaidPercentage:   e.Record.WagesPaidPercentage,
			PendingPaymentsCrores: e.Record.PendingPaymentsCrores,
			PersonDays:            e.Record.PersonDays,
			Month:                 e.Record.Month,
			Year:                  e.Record.Year,
		})
	}

	c.JSON(http.StatusOK, CompareResponse{
		Success: true,
		Comparison: ComparisonData{
			District1:      mapComparedDistrict(result.District1),
			District2:      mapComparedDistrict(result.District2),
			Comparisons:    result.Comparisons,
			Insights:       result.Insights,
			HistoricalData: history,
		},
	})
}

func mapComparedDistrict(side services.ComparedDistrict) ComparedDistrictData {
	return ComparedDistrictData{
		ID:    side.District.ID,
		Name:  side.District.Name,
		State: side.District.State,
		Data: ComparedValues{
			JobsProvided:          side.Record.JobsProvided,
			WagesPaidPercentage:   side.Record.WagesPaidPercentage,
			PendingPaymentsCrores: side.Record.PendingPaymentsCrores,
			PersonDays:            side.Record.PersonDays,
		},
	}
}
