// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/warden-authz/warden/logging"
	"github.com/warden-authz/warden/model"
)

type NotificationService struct {
	// A message queue client would live here once notifications leave
	// the process.
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyPolicyChange(ctx context.Context, changeType string, policy model.Policy) error {
	switch changeType {
	case "granted":
		logger.Info("NOTIFICATION: Role granted",
			zap.String("subject", policy.Subject),
			zap.String("level", string(policy.Level)),
			zap.String("object", policy.Object),
			zap.String("role", policy.Role))
	case "revoked":
		logger.Info("NOTIFICATION: Role revoked",
			zap.String("subject", policy.Subject),
			zap.String("level", string(policy.Level)),
			zap.String("object", policy.Object))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}

	return nil
}
