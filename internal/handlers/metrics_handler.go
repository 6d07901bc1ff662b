package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ourvoice/mgnrega-api/internal/analytics"
	apierrors "github.com/ourvoice/mgnrega-api/internal/errors"
	"github.com/ourvoice/mgnrega-api/internal/models"
	"github.com/ourvoice/mgnrega-api/internal/repository"
	"github.com/ourvoice/mgnrega-api/internal/services"
)

// MetricsHandler handles MGNREGA performance data requests.
type MetricsHandler struct {
	service       services.MetricsService
	defaultMonths int
}

// NewMetricsHandler creates a new MetricsHandler instance.
func NewMetricsHandler(service services.MetricsService, defaultMonths int) *MetricsHandler {
	return &MetricsHandler{
		service:       service,
		defaultMonths: defaultMonths,
	}
}

// CurrentData is the current-period snapshot joined with district
// display fields.
type CurrentData struct {
	JobsProvided          int64     `json:"jobs_provided"`
	WagesPaidPercentage   float64   `json:"wages_paid_percentage"`
	PendingPaymentsCrores float64   `json:"pending_payments_crores"`
	PersonDays            int64     `json:"person_days"`
	Month                 int       `json:"month"`
	Year                  int       `json:"year"`
	LastUpdated           time.Time `json:"last_updated"`
	DistrictName          string    `json:"district_name"`
	State                 string    `json:"state"`
}

// HistoryEntry is one historical period's metrics.
type HistoryEntry struct {
	JobsProvided          int64   `json:"jobs_provided"`
	WagesPaidPercentage   float64 `json:"wages_paid_percentage"`
	PendingPaymentsCrores float64 `json:"pending_payments_crores"`
	PersonDays            int64   `json:"person_days"`
	Month                 int     `json:"month"`
	Year                  int     `json:"year"`
}

// PerformanceResponse is the response for the performance endpoint.
// CurrentData is null when the running period has no record yet.
type PerformanceResponse struct {
	Success        bool             `json:"success"`
	CurrentData    *CurrentData     `json:"currentData"`
	HistoricalData []HistoryEntry   `json:"historicalData"`
	Trends         analytics.Trends `json:"trends"`
}

// SyncRequest is the payload pushed by the external sync job.
type SyncRequest struct {
	DistrictID *int                `json:"districtId"`
	Data       *models.MetricInput `json:"data"`
}

// SyncResponse acknowledges an upsert with the stored row.
type SyncResponse struct {
	Success bool                `json:"success"`
	Data    models.MetricRecord `json:"data"`
}

// Performance handles GET /mgnrega-data.
// It returns the current snapshot, a historical window and derived
// trends for one district.
func (h *MetricsHandler) Performance(c *gin.Context) {
	districtParam := c.Query("districtId")
	if districtParam == "" {
		apierrors.BadRequest(c, "District ID required")
		return
	}

	districtID, err := strconv.Atoi(districtParam)
	if err != nil {
		apierrors.BadRequest(c, "Invalid district ID")
		return
	}

	months := h.defaultMonths
	if monthsParam := c.Query("months"); monthsParam != "" {
		months, err = strconv.Atoi(monthsParam)
		if err != nil || months < 1 {
			apierrors.BadRequest(c, "Invalid months value")
			return
		}
	}

	report, err := h.service.GetPerformance(c.Request.Context(), districtID, months)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch MGNREGA data", err)
		return
	}

	history := make([]HistoryEntry, 0, len(report.History))
	for _, rec := range report.History {
		history = append(history, HistoryEntry{
			JobsProvided:          rec.JobsProvided,
			WagesPaidPercentage:   rec.WagesPaidPercentage,
			PendingPaymentsCrores: rec.PendingPaymentsCrores,
			PersonDays:            rec.PersonDays,
			Month:                 rec.Month,
			Year:                  rec.Year,
		})
	}

	c.JSON(http.StatusOK, PerformanceResponse{
		Success:        true,
		CurrentData:    mapCurrentData(report.Current),
		HistoricalData: history,
		Trends:         report.Trends,
	})
}

// Sync handles POST /mgnrega-data.
// It upserts the current period's record for a district. Called by the
// external job runner, not by the mobile clients.
func (h *MetricsHandler) Sync(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.DistrictID == nil || req.Data == nil {
		apierrors.BadRequest(c, "District ID and data required")
		return
	}

	record, err := h.service.Sync(c.Request.Context(), *req.DistrictID, *req.Data)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to sync data", err)
		return
	}

	c.JSON(http.StatusOK, SyncResponse{
		Success: true,
		Data:    *record,
	})
}

// mapCurrentData converts the joined repository row to the response
// DTO, preserving null for an absent current period.
func mapCurrentData(dm *repository.DistrictMetrics) *CurrentData {
	if dm == nil {
		return nil
	}

	return &CurrentData{
		JobsProvided:          dm.Record.JobsProvided,
		WagesPaidPercentage:   dm.Record.WagesPaidPercentage,
		PendingPaymentsCrores: dm.Record.PendingPaymentsCrores,
		PersonDays:            dm.Record.PersonDays,
		Month:                 dm.Record.Month,
		Year:                  dm.Record.Year,
		LastUpdated:           dm.Record.LastUpdated,
		DistrictName:          dm.DistrictName,
		State:                 dm.State,
	}
}
