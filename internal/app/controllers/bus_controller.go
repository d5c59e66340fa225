package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/atharvapawar/bustrack/internal/app/models/dto"
	"github.com/atharvapawar/bustrack/internal/app/services"
	"github.com/atharvapawar/bustrack/internal/middleware"
)

// BusController handles bus read endpoints for students and write endpoints
// for tracker devices.
type BusController struct {
	busService *services.BusService
	logger     zerolog.Logger
}

// NewBusController creates a new BusController
func NewBusController(busService *services.BusService, logger zerolog.Logger) *BusController {
	return &BusController{
		busService: busService,
		logger:     logger,
	}
}

// GetBusDetails returns the authenticated student's bus and driver.
func (c *BusController) GetBusDetails(ctx *gin.Context) {
	prn, ok := middleware.StudentPRN(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Access token required"))
		return
	}

	resp, err := c.busService.GetBusDetails(ctx.Request.Context(), prn)
	if err != nil {
		c.logger.Warn().Err(err).Str("prn", prn).Msg("Failed to fetch bus details")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetBusLocation returns the last reported position of the student's bus.
func (c *BusController) GetBusLocation(ctx *gin.Context) {
	prn, ok := middleware.StudentPRN(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Access token required"))
		return
	}

	resp, err := c.busService.GetBusLocation(ctx.Request.Context(), prn)
	if err != nil {
		c.logger.Warn().Err(err).Str("prn", prn).Msg("Failed to fetch bus location")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetETA returns an arrival estimate for the student's bus.
func (c *BusController) GetETA(ctx *gin.Context) {
	prn, ok := middleware.StudentPRN(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Access token required"))
		return
	}

	resp, err := c.busService.GetETA(ctx.Request.Context(), prn)
	if err != nil {
		c.logger.Warn().Err(err).Str("prn", prn).Msg("Failed to calculate ETA")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateLocation stores a tracker-reported bus position.
func (c *BusController) UpdateLocation(ctx *gin.Context) {
	var req dto.UpdateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update location payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Bus number, latitude, and longitude are required"))
		return
	}

	if err := c.busService.UpdateLocation(ctx.Request.Context(), &req); err != nil {
		c.logger.Warn().Err(err).Str("busNumber", req.BusNumber).Msg("Failed to update bus location")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Bus location updated successfully"})
}

// CreateBus registers a new bus.
func (c *BusController) CreateBus(ctx *gin.Context) {
	var req dto.CreateBusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create bus payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Bus number and number plate are required"))
		return
	}

	resp, err := c.busService.CreateBus(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("busNumber", req.BusNumber).Msg("Failed to create bus")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}
