package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/ourvoice/mgnrega-api/internal/errors"
	"github.com/ourvoice/mgnrega-api/internal/models"
	"github.com/ourvoice/mgnrega-api/internal/repository"
	"github.com/ourvoice/mgnrega-api/internal/services"
)

// Listing defaults for the admin view.
const (
	defaultReportStatus = "pending"
	defaultReportLimit  = 50
)

// ReportHandler handles citizen issue-report intake and listing.
type ReportHandler struct {
	service services.ReportService
}

// NewReportHandler creates a new ReportHandler instance.
func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// SubmitReportRequest is the intake payload.
type SubmitReportRequest struct {
	DistrictID    *int    `json:"districtId"`
	IssueType     string  `json:"issueType"`
	Description   *string `json:"description"`
	VoiceNoteURL  *string `json:"voiceNoteUrl" binding:"omitempty,url"`
	ContactNumber *string `json:"contactNumber"`
}

// SubmitReportResponse acknowledges a stored report.
type SubmitReportResponse struct {
	Success     bool      `json:"success"`
	ReportID    int       `json:"reportId"`
	SubmittedAt time.Time `json:"submittedAt"`
	Message     string    `json:"message"`
}

// ListReportsResponse is the admin listing response.
type ListReportsResponse struct {
	Success bool                       `json:"success"`
	Reports []repository.ReportSummary `json:"reports"`
}

// Submit handles POST /issue-reports.
func (h *ReportHandler) Submit(c *gin.Context) {
	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.DistrictID == nil || req.IssueType == "" {
		apierrors.BadRequest(c, "District ID and issue type required")
		return
	}

	submitted, err := h.service.Submit(c.Request.Context(), models.IssueReportInput{
		DistrictID:    *req.DistrictID,
		IssueType:     req.IssueType,
		Description:   req.Description,
		VoiceNoteURL:  req.VoiceNoteURL,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidIssueType) {
			apierrors.BadRequest(c, "Invalid issue type")
			return
		}
		apierrors.InternalServerError(c, "Failed to submit issue report", err)
		return
	}

	c.JSON(http.StatusOK, SubmitReportResponse{
		Success:     true,
		ReportID:    submitted.ID,
		SubmittedAt: submitted.SubmittedAt,
		Message:     "Issue reported successfully. Your report will be reviewed by authorities.",
	})
}

// List handles GET /issue-reports.
// Status defaults to pending and the limit to 50; districtId narrows
// to a single district when present.
func (h *ReportHandler) List(c *gin.Context) {
	filter := repository.ReportFilter{
		Status: c.DefaultQuery("status", defaultReportStatus),
		Limit:  defaultReportLimit,
	}

	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 1 {
			apierrors.BadRequest(c, "Invalid limit value")
			return
		}
		filter.Limit = limit
	}

	if districtParam := c.Query("districtId"); districtParam != "" {
		districtID, err := strconv.Atoi(districtParam)
		if err != nil {
			apierrors.BadRequest(c, "Invalid district ID")
			return
		}
		filter.DistrictID = &districtID
	}

	reports, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch reports", err)
		return
	}

	c.JSON(http.StatusOK, ListReportsResponse{
		Success: true,
		Reports: reports,
	})
}
