// api/middleware/auth.go

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/sagelms/sage/api/logging"
	"github.com/sagelms/sage/api/service"
	"github.com/sagelms/sage/api/util"
)

// Authenticate validates the Bearer token (signature, expiry, revocation
// registry) and stores the principal in the request context. A token found
// in the registry is rejected even when it would otherwise verify.
func Authenticate(authService service.IAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		principal, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("Token rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(util.PrincipalKey, principal)
		c.Next()
	}
}
