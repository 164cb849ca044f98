// api/util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sagelms/sage/api/errors"
	logger "github.com/sagelms/sage/api/logging"
	"github.com/sagelms/sage/api/model"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// PrincipalKey is where the auth middleware stores the request principal.
const PrincipalKey = "principal"

func GetPrincipalFromContext(c *gin.Context) (model.Principal, error) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return model.Principal{}, errors.ErrUnauthorized
	}
	principal, ok := value.(model.Principal)
	if !ok {
		return model.Principal{}, errors.ErrUnauthorized
	}
	return principal, nil
}
