// controller/controllers.go
package controller

import "github.com/warden-authz/warden/service"

// Controllers groups every HTTP controller for route registration.
type Controllers struct {
	Authz *AuthzController
	Audit *AuditController
}

func InitControllers(authzService service.IAuthorizationService, auditController *AuditController) *Controllers {
	return &Controllers{
		Authz: NewAuthzController(authzService),
		Audit: auditController,
	}
}
