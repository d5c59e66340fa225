package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atharvapawar/bustrack/internal/app/controllers"
	"github.com/atharvapawar/bustrack/internal/app/models/dto"
	"github.com/atharvapawar/bustrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	busController *controllers.BusController,
	authMiddleware *middleware.AuthMiddleware,
	trackerAPIKey string,
) {
	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated auth routes ---
	authProtected := api.Group("/auth")
	authProtected.Use(authMiddleware.JWTAuth())
	{
		authProtected.POST("/change-password", authController.ChangePassword)
	}

	// --- Student-facing bus routes ---
	bus := api.Group("/bus")
	bus.Use(authMiddleware.JWTAuth())
	{
		bus.GET("/details", busController.GetBusDetails)
		bus.GET("/location", busController.GetBusLocation)
		bus.GET("/eta", busController.GetETA)
	}

	// --- Tracker-facing routes, guarded by the shared device key ---
	tracker := api.Group("/bus")
	tracker.Use(middleware.TrackerKeyRequired(trackerAPIKey))
	{
		tracker.POST("/update-location", busController.UpdateLocation)
		tracker.POST("", busController.CreateBus)
	}

	// Health check endpoint (public)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "Bus Tracking API is running!"})
	})
}
