// dao/policy_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	warden_errors "github.com/warden-authz/warden/errors"
	logger "github.com/warden-authz/warden/logging"
	"github.com/warden-authz/warden/model"
	"github.com/warden-authz/warden/util"
)

// scanPageSize bounds a single round trip when scanning a subject's
// policies. Scans page until a short batch comes back.
const scanPageSize = 100

// PolicyDAO is the durable adapter over policy tuples. It performs no
// deduplication: the grant flow above it is responsible for keeping at most
// one active row per (level, subject, object). Every call runs under the
// caller's context, so a request deadline bounds the store round trip.
type PolicyDAO struct {
	Driver neo4j.DriverWithContext
}

func NewPolicyDAO(driver neo4j.DriverWithContext) *PolicyDAO {
	dao := &PolicyDAO{Driver: driver}
	ctx := context.Background()
	if err := dao.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to ensure policy schema", zap.Error(err))
	}
	return dao
}

// EnsureSchema creates the unique id constraint and the subject index the
// scan path depends on.
func (dao *PolicyDAO) EnsureSchema(ctx context.Context) error {
	logger.Info("Ensuring policy schema")
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer func() {
		if err := session.Close(ctx); err != nil {
			logger.Error("Failed to close Neo4j session", zap.Error(err))
		}
	}()

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		statements := []string{
			`CREATE CONSTRAINT unique_policy_id IF NOT EXISTS
			 FOR (p:POLICY) REQUIRE p.id IS UNIQUE`,
			`CREATE INDEX policy_subject IF NOT EXISTS
			 FOR (p:POLICY) ON (p.subject)`,
		}
		for _, query := range statements {
			if _, err := tx.Run(ctx, query, nil); err != nil {
				return nil, fmt.Errorf("failed to apply schema statement: %w", err)
			}
		}
		return nil, nil
	})
	if err != nil {
		logger.Error("Failed to ensure policy schema", zap.Error(err))
		return fmt.Errorf("%w: %v", warden_errors.ErrStorageOperation, err)
	}

	logger.Info("Successfully ensured policy schema")
	return nil
}

// Put inserts a new policy row with a fresh id. The subject is normalized
// before storage so that reads by any spelling of the same principal hit
// the same rows.
func (dao *PolicyDAO) Put(ctx context.Context, policy model.Policy) (string, error) {
	start := time.Now()
	policy.Subject = util.NormalizeSubject(policy.Subject)
	if policy.ID == "" {
		policy.ID = uuid.New().String()
	}
	logger.Info("Storing policy",
		zap.String("subject", policy.Subject),
		zap.String("level", string(policy.Level)),
		zap.String("object", policy.Object),
		zap.String("role", policy.Role))

	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        CREATE (p:POLICY {
            id: $id,
            level: $level,
            subject: $subject,
            object: $object,
            role: $role,
            grantedAt: $grantedAt
        })
        RETURN p.id AS id
        `
		parameters := map[string]interface{}{
			"id":        policy.ID,
			"level":     string(policy.Level),
			"subject":   policy.Subject,
			"object":    policy.Object,
			"role":      policy.Role,
			"grantedAt": time.Now().UTC().Format(time.RFC3339),
		}
		result, err := tx.Run(ctx, query, parameters)
		if err != nil {
			return nil, err
		}
		if !result.Next(ctx) {
			return nil, fmt.Errorf("policy row was not created")
		}
		return nil, result.Err()
	})
	if err != nil {
		logger.Error("Failed to store policy", zap.Error(err), zap.String("subject", policy.Subject))
		return "", fmt.Errorf("%w: %v", warden_errors.ErrStorageOperation, err)
	}

	logger.Debug("Policy stored",
		zap.String("policyID", policy.ID),
		zap.Duration("duration", time.Since(start)))
	return policy.ID, nil
}

// ScanBySubject returns every policy row for the subject across all levels,
// paging through the store until exhausted.
func (dao *PolicyDAO) ScanBySubject(ctx context.Context, subject string) ([]model.Policy, error) {
	subject = util.NormalizeSubject(subject)
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	var policies []model.Policy
	for offset := 0; ; offset += scanPageSize {
		batch, err := dao.scanPage(ctx, session, subject, offset)
		if err != nil {
			logger.Error("Failed to scan policies",
				zap.Error(err), zap.String("subject", subject))
			return nil, fmt.Errorf("%w: %v", warden_errors.ErrStorageOperation, err)
		}
		policies = append(policies, batch...)
		if len(batch) < scanPageSize {
			break
		}
	}

	logger.Debug("Scanned policies",
		zap.String("subject", subject),
		zap.Int("count", len(policies)))
	return policies, nil
}

func (dao *PolicyDAO) scanPage(ctx context.Context, session neo4j.SessionWithContext, subject string, offset int) ([]model.Policy, error) {
	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MATCH (p:POLICY {subject: $subject})
        RETURN p.id AS id, p.level AS level, p.subject AS subject,
               p.object AS object, p.role AS role, p.grantedAt AS grantedAt
        ORDER BY p.grantedAt, p.id
        SKIP $offset LIMIT $limit
        `
		parameters := map[string]interface{}{
			"subject": subject,
			"offset":  offset,
			"limit":   scanPageSize,
		}
		records, err := tx.Run(ctx, query, parameters)
		if err != nil {
			return nil, err
		}

		var batch []model.Policy
		for records.Next(ctx) {
			policy, err := recordToPolicy(records.Record())
			if err != nil {
				return nil, err
			}
			batch = append(batch, policy)
		}
		return batch, records.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.Policy), nil
}

// Delete removes every row at (level, subject, object). Deleting a scope
// with no rows is a no-op, not an error.
func (dao *PolicyDAO) Delete(ctx context.Context, level model.Level, subject, object string) error {
	subject = util.NormalizeSubject(subject)
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MATCH (p:POLICY {level: $level, subject: $subject, object: $object})
        DELETE p
        `
		parameters := map[string]interface{}{
			"level":   string(level),
			"subject": subject,
			"object":  object,
		}
		_, err := tx.Run(ctx, query, parameters)
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to delete policy",
			zap.Error(err),
			zap.String("subject", subject),
			zap.String("level", string(level)),
			zap.String("object", object))
		return fmt.Errorf("%w: %v", warden_errors.ErrStorageOperation, err)
	}

	logger.Debug("Deleted policy scope",
		zap.String("subject", subject),
		zap.String("level", string(level)),
		zap.String("object", object))
	return nil
}

func recordToPolicy(record *neo4j.Record) (model.Policy, error) {
	var policy model.Policy

	id, ok := record.Get("id")
	if !ok {
		return policy, fmt.Errorf("policy record missing id")
	}
	level, _ := record.Get("level")
	subject, _ := record.Get("subject")
	object, _ := record.Get("object")
	role, _ := record.Get("role")

	policy.ID, _ = id.(string)
	policy.Subject, _ = subject.(string)
	policy.Object, _ = object.(string)
	policy.Role, _ = role.(string)
	levelStr, _ := level.(string)
	policy.Level = model.Level(levelStr)

	if grantedAt, ok := record.Get("grantedAt"); ok {
		if s, ok := grantedAt.(string); ok {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				policy.GrantedAt = t
			}
		}
	}

	return policy, nil
}
