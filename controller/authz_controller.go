// controller/authz_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warden-authz/warden/authz"
	warden_errors "github.com/warden-authz/warden/errors"
	"github.com/warden-authz/warden/model"
	"github.com/warden-authz/warden/service"
	"github.com/warden-authz/warden/util"
)

type AuthzController struct {
	authzService service.IAuthorizationService
}

func NewAuthzController(authzService service.IAuthorizationService) *AuthzController {
	return &AuthzController{
		authzService: authzService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuthzController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/enforce", ac.Enforce)

	grants := r.Group("/grants")
	{
		grants.POST("", ac.Grant)
		grants.DELETE("", ac.Revoke)
	}

	r.GET("/subjects/:subject/policies", ac.ListPolicies)
	r.GET("/roles/:level", ac.Roles)
	r.POST("/cache/warm", ac.Warm)
}

// Enforce endpoint. Internal failures never surface as errors here: an
// authorization question that cannot be positively answered is answered
// "denied".
func (ac *AuthzController) Enforce(c *gin.Context) {
	var req model.EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid enforce request", err)
		return
	}

	level, err := model.ParseLevel(req.Level)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid authorization level", err)
		return
	}

	allowed, err := ac.authzService.Enforce(c, req.Subject, level, req.Object, req.Action)
	if err != nil {
		// Fail closed: resolution errors become a deny, not a 5xx.
		c.JSON(http.StatusOK, gin.H{"allowed": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"allowed": allowed})
}

// Grant endpoint
func (ac *AuthzController) Grant(c *gin.Context) {
	var req model.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid grant request", err)
		return
	}

	level, err := model.ParseLevel(req.Level)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid authorization level", err)
		return
	}

	actor := util.GetActorFromContext(c)
	policy, err := ac.authzService.Grant(c, level, req.Subject, req.Object, req.Role, actor)
	if err != nil {
		switch {
		case errors.Is(err, warden_errors.ErrInvalidRole):
			util.RespondWithError(c, http.StatusBadRequest, "Role is not valid at this level", err)
		case errors.Is(err, warden_errors.ErrInvalidSubject):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid subject", err)
		case errors.Is(err, warden_errors.ErrStorageOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Policy store operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to grant role", warden_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"granted": true, "policy": policy})
}

// Revoke endpoint
func (ac *AuthzController) Revoke(c *gin.Context) {
	var req model.RevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid revoke request", err)
		return
	}

	level, err := model.ParseLevel(req.Level)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid authorization level", err)
		return
	}

	actor := util.GetActorFromContext(c)
	if err := ac.authzService.Revoke(c, level, req.Subject, req.Object, actor); err != nil {
		switch {
		case errors.Is(err, warden_errors.ErrStorageOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Policy store operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to revoke role", warden_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"revoked": true})
}

// ListPolicies endpoint
func (ac *AuthzController) ListPolicies(c *gin.Context) {
	subject := c.Param("subject")
	policies, err := ac.authzService.ListPolicies(c, subject)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list policies", err)
		return
	}
	if policies == nil {
		policies = []model.Policy{}
	}
	c.JSON(http.StatusOK, gin.H{"subject": subject, "policies": policies})
}

// Roles endpoint enumerates the grantable roles at a level.
func (ac *AuthzController) Roles(c *gin.Context) {
	level, err := model.ParseLevel(c.Param("level"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid authorization level", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"level": level, "roles": authz.RolesForLevel(level)})
}

// Warm endpoint pre-populates the policy cache for a batch of subjects.
func (ac *AuthzController) Warm(c *gin.Context) {
	var req model.WarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid warm request", err)
		return
	}

	if err := ac.authzService.WarmSubjects(c, req.Subjects); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to warm cache", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warmed": len(req.Subjects)})
}
