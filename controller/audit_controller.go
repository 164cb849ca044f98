// api/controller/audit_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sagelms/sage/api/audit"
	sage_errors "github.com/sagelms/sage/api/errors"
	"github.com/sagelms/sage/api/model"
	"github.com/sagelms/sage/api/util"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", ac.QueryEntries)
}

// QueryEntries returns audit entries in a time window, admins only. The
// window defaults to the last 24 hours.
func (ac *AuditController) QueryEntries(c *gin.Context) {
	principal, err := util.GetPrincipalFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	if principal.Role != model.RoleAdmin {
		util.RespondWithError(c, http.StatusForbidden, "Admin access required", sage_errors.ErrForbidden)
		return
	}

	to := time.Now()
	from := to.Add(-24 * time.Hour)
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid from timestamp", sage_errors.ErrInvalidInput)
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid to timestamp", sage_errors.ErrInvalidInput)
			return
		}
	}

	entries, err := ac.auditService.QueryEntries(c.Request.Context(), from, to, c.Query("user_id"))
	if err != nil {
		respondWithOperationError(c, err, "Failed to query audit entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": len(entries), "entries": entries})
}
