// service/authorization_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/warden-authz/warden/audit"
	"github.com/warden-authz/warden/authz"
	warden_errors "github.com/warden-authz/warden/errors"
	logger "github.com/warden-authz/warden/logging"
	"github.com/warden-authz/warden/model"
	"github.com/warden-authz/warden/util"
)

// PolicyStore is the durable policy adapter as the service needs it.
type PolicyStore interface {
	Put(ctx context.Context, policy model.Policy) (string, error)
	ScanBySubject(ctx context.Context, subject string) ([]model.Policy, error)
	Delete(ctx context.Context, level model.Level, subject, object string) error
}

// PolicyResolver resolves a subject's policy set, normally through the
// TTL cache, and invalidates it after mutations.
type PolicyResolver interface {
	GetPolicies(ctx context.Context, subject string) ([]model.Policy, error)
	Invalidate(ctx context.Context, subject string) error
}

// IAuthorizationService is the interface consumed by the HTTP layer.
type IAuthorizationService interface {
	Enforce(ctx context.Context, subject string, level model.Level, object, action string) (bool, error)
	Grant(ctx context.Context, level model.Level, subject, object, role, actor string) (model.Policy, error)
	Revoke(ctx context.Context, level model.Level, subject, object, actor string) error
	ListPolicies(ctx context.Context, subject string) ([]model.Policy, error)
	WarmSubjects(ctx context.Context, subjects []string) error
}

// accessEvaluation is the payload published for every enforcement decision.
type accessEvaluation struct {
	Subject string
	Level   model.Level
	Object  string
	Action  string
	Allowed bool
}

// AuthorizationService handles grant, revoke and enforcement over the
// policy model. It is the only mutating entry point into the store and
// owns the replace-not-append invariant: a grant always revokes the scope
// before putting the new row, within the same call.
type AuthorizationService struct {
	store           PolicyStore
	resolver        PolicyResolver
	notificationSvc *util.NotificationService
	auditSvc        audit.Service
	eventBus        *util.EventBus
	staffSuffix     string
}

// NewAuthorizationService creates a new instance of AuthorizationService
func NewAuthorizationService(
	store PolicyStore,
	resolver PolicyResolver,
	notificationSvc *util.NotificationService,
	auditSvc audit.Service,
	eventBus *util.EventBus,
	staffSuffix string,
) *AuthorizationService {
	service := &AuthorizationService{
		store:           store,
		resolver:        resolver,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		eventBus:        eventBus,
		staffSuffix:     staffSuffix,
	}

	// Set up event subscriptions
	eventBus.Subscribe("policy.granted", service.handlePolicyGranted)
	eventBus.Subscribe("policy.revoked", service.handlePolicyRevoked)
	eventBus.Subscribe("access.evaluated", service.handleAccessEvaluated)

	return service
}

// Enforce answers the composed authorization question: resolve the
// subject's policies through the cache, build an enforcer over them, and
// evaluate. A store failure during resolution surfaces as an error with a
// deny; it never turns into an allow.
func (s *AuthorizationService) Enforce(ctx context.Context, subject string, level model.Level, object, action string) (bool, error) {
	subject = util.NormalizeSubject(subject)
	if !level.Valid() {
		return false, warden_errors.ErrInvalidLevel
	}

	policies, err := s.resolver.GetPolicies(ctx, subject)
	if err != nil {
		logger.Error("Failed to resolve policies, denying",
			zap.Error(err), zap.String("subject", subject))
		return false, err
	}

	enforcer := authz.NewEnforcer(policies, s.staffSuffix)
	allowed := enforcer.Enforce(level, object, action)

	s.eventBus.Publish(ctx, "access.evaluated", accessEvaluation{
		Subject: subject,
		Level:   level,
		Object:  object,
		Action:  action,
		Allowed: allowed,
	})

	return allowed, nil
}

// Grant assigns role to subject over object at level. The role must be
// valid at that level; validation fails before any write. Any existing
// assignment at the same scope is revoked first, so the store never holds
// two active rows for one scope after a grant returns.
func (s *AuthorizationService) Grant(ctx context.Context, level model.Level, subject, object, role, actor string) (model.Policy, error) {
	subject = util.NormalizeSubject(subject)
	if !level.Valid() {
		return model.Policy{}, warden_errors.ErrInvalidLevel
	}
	if subject == "" {
		return model.Policy{}, warden_errors.ErrInvalidSubject
	}
	if !authz.ValidRole(level, role) {
		logger.Warn("Rejected grant with invalid role",
			zap.String("role", role), zap.String("level", string(level)))
		return model.Policy{}, fmt.Errorf("%w: %q at level %s", warden_errors.ErrInvalidRole, role, level)
	}

	if err := s.store.Delete(ctx, level, subject, object); err != nil {
		return model.Policy{}, err
	}

	policy := model.Policy{
		Level:     level,
		Subject:   subject,
		Object:    object,
		Role:      role,
		GrantedAt: time.Now().UTC(),
	}
	id, err := s.store.Put(ctx, policy)
	if err != nil {
		return model.Policy{}, err
	}
	policy.ID = id

	s.invalidate(ctx, subject)

	s.eventBus.Publish(ctx, "policy.granted", grantedEvent{Policy: policy, Actor: actor})

	logger.Info("Granted role",
		zap.String("subject", subject),
		zap.String("level", string(level)),
		zap.String("object", object),
		zap.String("role", role))
	return policy, nil
}

// Revoke deletes any assignment at (level, subject, object). Revoking a
// scope that holds nothing is a no-op, not an error.
func (s *AuthorizationService) Revoke(ctx context.Context, level model.Level, subject, object, actor string) error {
	subject = util.NormalizeSubject(subject)
	if !level.Valid() {
		return warden_errors.ErrInvalidLevel
	}

	if err := s.store.Delete(ctx, level, subject, object); err != nil {
		return err
	}

	s.invalidate(ctx, subject)

	s.eventBus.Publish(ctx, "policy.revoked", grantedEvent{
		Policy: model.Policy{Level: level, Subject: subject, Object: object},
		Actor:  actor,
	})

	logger.Info("Revoked role",
		zap.String("subject", subject),
		zap.String("level", string(level)),
		zap.String("object", object))
	return nil
}

// ListPolicies returns the subject's resolved policy set (cache-backed).
func (s *AuthorizationService) ListPolicies(ctx context.Context, subject string) ([]model.Policy, error) {
	return s.resolver.GetPolicies(ctx, util.NormalizeSubject(subject))
}

// WarmSubjects pre-populates the cache for a batch of subjects.
func (s *AuthorizationService) WarmSubjects(ctx context.Context, subjects []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, subject := range subjects {
		subject := subject
		g.Go(func() error {
			_, err := s.resolver.GetPolicies(ctx, subject)
			return err
		})
	}
	return g.Wait()
}

// invalidate drops and re-warms the subject's cache entry. The store
// mutation has already completed by the time this runs; a failed warm-up
// only costs the next read a trip to the store, so it is logged, not
// surfaced.
func (s *AuthorizationService) invalidate(ctx context.Context, subject string) {
	if err := s.resolver.Invalidate(ctx, subject); err != nil {
		logger.Warn("Cache re-warm after mutation failed",
			zap.Error(err), zap.String("subject", subject))
	}
}

type grantedEvent struct {
	Policy model.Policy
	Actor  string
}

func (s *AuthorizationService) handlePolicyGranted(ctx context.Context, event util.Event) error {
	payload, ok := event.Payload.(grantedEvent)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	if err := s.notificationSvc.NotifyPolicyChange(ctx, "granted", payload.Policy); err != nil {
		logger.Warn("Failed to send grant notification", zap.Error(err))
	}

	return s.auditSvc.Record(ctx, audit.Entry{
		Actor:   payload.Actor,
		Event:   "grant",
		Subject: payload.Policy.Subject,
		Level:   string(payload.Policy.Level),
		Object:  payload.Policy.Object,
		Role:    payload.Policy.Role,
	})
}

func (s *AuthorizationService) handlePolicyRevoked(ctx context.Context, event util.Event) error {
	payload, ok := event.Payload.(grantedEvent)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	if err := s.notificationSvc.NotifyPolicyChange(ctx, "revoked", payload.Policy); err != nil {
		logger.Warn("Failed to send revoke notification", zap.Error(err))
	}

	return s.auditSvc.Record(ctx, audit.Entry{
		Actor:   payload.Actor,
		Event:   "revoke",
		Subject: payload.Policy.Subject,
		Level:   string(payload.Policy.Level),
		Object:  payload.Policy.Object,
	})
}

func (s *AuthorizationService) handleAccessEvaluated(ctx context.Context, event util.Event) error {
	payload, ok := event.Payload.(accessEvaluation)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	allowed := payload.Allowed
	return s.auditSvc.Record(ctx, audit.Entry{
		Event:   "enforce",
		Subject: payload.Subject,
		Level:   string(payload.Level),
		Object:  payload.Object,
		Action:  payload.Action,
		Allowed: &allowed,
	})
}
