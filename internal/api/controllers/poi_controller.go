package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tripsmith/internal/models/request_models"
	"tripsmith/internal/services"
	"tripsmith/pkg/utils"
)

type POIController struct {
	poiService services.POIServiceInterface
}

func NewPOIController(poiService services.POIServiceInterface) *POIController {
	return &POIController{
		poiService: poiService,
	}
}

// CreatePOI godoc
// @Summary Add a place to the knowledge base
// @Tags POI
// @Accept json
// @Produce json
// @Param request body request_models.CreatePOIRequest true "Place details"
// @Success 200 {object} response_models.POIResponse
// @Security BearerAuth
// @Router /pois [post]
func (p *POIController) CreatePOI(c *gin.Context) {
	var req request_models.CreatePOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid POI payload")
		return
	}

	poi, err := p.poiService.CreatePOI(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI created successfully")
}

// ListByDestination godoc
// @Summary List knowledge-base places for a destination
// @Tags POI
// @Produce json
// @Param destination path string true "Destination"
// @Success 200 {array} response_models.POIResponse
// @Router /pois/{destination} [get]
func (p *POIController) ListByDestination(c *gin.Context) {
	destination := c.Param("destination")
	if destination == "" {
		utils.RespondError(c, http.StatusBadRequest, "Destination is required")
		return
	}

	pois, err := p.poiService.ListByDestination(c.Request.Context(), destination)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pois, "POIs fetched successfully")
}
