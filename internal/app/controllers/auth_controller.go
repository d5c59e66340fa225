// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/atharvapawar/bustrack/internal/app/models/dto"
	"github.com/atharvapawar/bustrack/internal/app/services"
	"github.com/atharvapawar/bustrack/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login authenticates a student with email and PRN and returns a bearer
// token plus the student's profile with bus and driver summaries.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Email and PRN are required"))
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ChangePassword replaces the authenticated student's credential.
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	prn, ok := middleware.StudentPRN(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Access token required"))
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid change password payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Current and new password are required"))
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), prn, &req); err != nil {
		c.logger.Warn().Err(err).Str("prn", prn).Msg("Password change failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}
