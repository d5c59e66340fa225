package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atharvapawar/bustrack/internal/app/models/dto"
	"github.com/atharvapawar/bustrack/internal/pkg/apperrors"
	"github.com/atharvapawar/bustrack/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Authentication
// failures keep one generic message regardless of cause, and unexpected
// errors never leak internal detail to the client.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid email or PRN"))
	case errors.Is(err, apperrors.ErrStudentNotFound):
		// A valid token for a student that no longer exists
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid or expired token"))
	case errors.Is(err, apperrors.ErrNoBusAssigned):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("No bus assigned to this student"))
	case errors.Is(err, apperrors.ErrBusNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Bus not found"))
	case errors.Is(err, apperrors.ErrBusNumberExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("Bus number already exists"))
	case errors.Is(err, apperrors.ErrNumberPlateExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("Number plate already exists"))
	case errors.Is(err, apperrors.ErrDriverAlreadyOnBus):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("Driver is already assigned to another bus"))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("Email already exists"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error"))
	}
}
