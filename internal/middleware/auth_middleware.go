package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atharvapawar/bustrack/internal/app/models/dto"
	"github.com/atharvapawar/bustrack/internal/pkg/auth"
)

// ContextKeyStudentPRN is the gin context key holding the authenticated
// student's PRN.
const ContextKeyStudentPRN = "studentPrn"

// AuthMiddleware guards routes behind bearer-token authentication.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth validates the Authorization header and stores the embedded PRN in
// the request context. Expired and malformed tokens get the same response
// body so the cause is not observable from outside.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Access token required"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid or expired token"))
			return
		}

		prn, err := m.jwtService.ValidateAndExtractPRN(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid or expired token"))
			return
		}

		c.Set(ContextKeyStudentPRN, prn)
		c.Next()
	}
}

// StudentPRN extracts the authenticated student's PRN from the context.
func StudentPRN(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextKeyStudentPRN)
	if !exists {
		return "", false
	}
	prn, ok := v.(string)
	return prn, ok && prn != ""
}
