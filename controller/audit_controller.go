// controller/audit_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/warden-authz/warden/audit"
	"github.com/warden-authz/warden/util"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{auditService: auditService}
}

func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", ac.QueryEntries)
}

// QueryEntries returns audit entries in a time window, defaulting to the
// last 24 hours.
func (ac *AuditController) QueryEntries(c *gin.Context) {
	now := time.Now().UTC()
	from := now.Add(-24 * time.Hour)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid from timestamp", err)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid to timestamp", err)
			return
		}
		to = parsed
	}

	entries, err := ac.auditService.Query(c, from, to, c.Query("subject"), c.Query("event"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit entries", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
