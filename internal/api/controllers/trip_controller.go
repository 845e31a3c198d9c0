package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tripsmith/internal/models/request_models"
	"tripsmith/internal/services"
	"tripsmith/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// PlanTrip godoc
// @Summary Plan and validate a trip
// @Description Runs the planner/reviewer pipeline for the given group and persists the resulting itinerary revisions
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.PlanTripRequest true "Destination, dates, travelers and their interests"
// @Success 200 {object} response_models.PlanRunResponse
// @Security BearerAuth
// @Router /trips/plan [post]
func (t *TripController) PlanTrip(c *gin.Context) {
	var req request_models.PlanTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid trip request")
		return
	}

	userId := c.GetString("user_id")
	result, err := t.tripService.PlanTrip(c.Request.Context(), userId, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Trip planned successfully")
}

// GetTripById godoc
// @Summary Get trip details
// @Description Fetch a trip with all itinerary revisions and reviewer delta lines
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.TripDetailResponse
// @Security BearerAuth
// @Router /trips/{tripId} [get]
func (t *TripController) GetTripById(c *gin.Context) {
	tripId := c.Param("tripId")
	if tripId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	userId := c.GetString("user_id")
	trip, err := t.tripService.GetTripDetail(c.Request.Context(), userId, tripId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

// ListTrips godoc
// @Summary List the caller's trips
// @Tags Trip
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(5) minimum(1) maximum(100)
// @Success 200 {array} response_models.TripResponse
// @Security BearerAuth
// @Router /trips [get]
func (t *TripController) ListTrips(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "5")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	userId := c.GetString("user_id")
	trips, err := t.tripService.ListTrips(c.Request.Context(), userId, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}
