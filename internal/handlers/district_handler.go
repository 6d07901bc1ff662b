package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/ourvoice/mgnrega-api/internal/errors"
	"github.com/ourvoice/mgnrega-api/internal/middleware"
	"github.com/ourvoice/mgnrega-api/internal/models"
	"github.com/ourvoice/mgnrega-api/internal/services"
)

// DistrictHandler handles district listing and GPS resolution requests.
type DistrictHandler struct {
	service      services.DistrictService
	defaultState string
}

// NewDistrictHandler creates a new DistrictHandler instance.
func NewDistrictHandler(service services.DistrictService, defaultState string) *DistrictHandler {
	return &DistrictHandler{
		service:      service,
		defaultState: defaultState,
	}
}

// LocateRequest is the body for coordinate-to-district resolution.
// Pointers distinguish a missing coordinate from a literal zero.
type LocateRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

// ListDistrictsResponse is the response for the district listing.
type ListDistrictsResponse struct {
	Success   bool              `json:"success"`
	Districts []models.District `json:"districts"`
}

// NearestDistrictData is a district plus its planar distance from the
// query point.
type NearestDistrictData struct {
	models.District
	Distance float64 `json:"distance"`
}

// LocateResponse is the response for coordinate resolution.
type LocateResponse struct {
	Success  bool                `json:"success"`
	District NearestDistrictData `json:"district"`
}

// List handles GET /districts.
// It returns all districts of a state, name ascending. The state
// parameter defaults to the configured home state.
func (h *DistrictHandler) List(c *gin.Context) {
	state := c.DefaultQuery("state", h.defaultState)

	districts, err := h.service.ListByState(c.Request.Context(), state)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch districts", err)
		return
	}

	c.JSON(http.StatusOK, ListDistrictsResponse{
		Success:   true,
		Districts: districts,
	})
}

// Locate handles POST /districts.
// It resolves a device's GPS coordinates to the nearest known district.
func (h *DistrictHandler) Locate(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req LocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		apierrors.BadRequest(c, "Latitude and longitude required")
		return
	}

	if log != nil {
		log.Info("Resolving device location", map[string]interface{}{
			"lat": *req.Latitude,
			"lng": *req.Longitude,
		})
	}

	nearest, err := h.service.Locate(c.Request.Context(), *req.Latitude, *req.Longitude)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCoordinates) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, services.ErrNoDistricts) {
			apierrors.NotFound(c, "No districts found")
			return
		}
		apierrors.InternalServerError(c, "Failed to find district", err)
		return
	}

	c.JSON(http.StatusOK, LocateResponse{
		Success: true,
		District: NearestDistrictData{
			District: nearest.District,
			Distance: nearest.Distance,
		},
	})
}
