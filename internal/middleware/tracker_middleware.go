package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atharvapawar/bustrack/internal/app/models/dto"
)

// TrackerKeyHeader carries the shared credential presented by tracker
// devices on administrative endpoints.
const TrackerKeyHeader = "X-Tracker-Key"

// TrackerKeyRequired guards tracker-facing endpoints with a shared API key.
// There is no per-device identity; all trackers present the same key.
func TrackerKeyRequired(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(TrackerKeyHeader)
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid tracker key"))
			return
		}
		c.Next()
	}
}
