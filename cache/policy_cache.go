// cache/policy_cache.go
package cache

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	logger "github.com/warden-authz/warden/logging"
	"github.com/warden-authz/warden/model"
	"github.com/warden-authz/warden/util"
)

const keyPrefix = "authz:policies:"

// PolicyStore is the slice of the store adapter the cache needs to fall
// back to on a miss.
type PolicyStore interface {
	ScanBySubject(ctx context.Context, subject string) ([]model.Policy, error)
}

// PolicyCache keeps resolved policy sets in Redis under a hash of the
// subject, with a fixed TTL. The cache is an optimization layer only:
// every backend failure is swallowed and treated as a miss, so a broken
// cache degrades to reading the store on each check but never blocks or
// corrupts a decision.
type PolicyCache struct {
	client *redis.Client
	store  PolicyStore
	ttl    time.Duration
	secret []byte
}

// NewPolicyCache wires the cache to its Redis backend and the store it
// falls back to. secret, when non-empty, must be a 32-byte AES-256 key
// used to encrypt cached entries at rest.
func NewPolicyCache(client *redis.Client, store PolicyStore, ttl time.Duration, secret []byte) (*PolicyCache, error) {
	if len(secret) != 0 && len(secret) != 32 {
		return nil, fmt.Errorf("invalid cache encryption key length: must be 32 bytes")
	}
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	return &PolicyCache{client: client, store: store, ttl: ttl, secret: secret}, nil
}

// Key returns the cache key for a subject. Exposed for tests and for the
// pattern used by invalidation.
func (c *PolicyCache) Key(subject string) string {
	return keyPrefix + util.SubjectHash(subject)
}

// GetPolicies returns the subject's policies, serving from cache when a
// fresh entry exists and falling through to the store otherwise. Store
// errors are returned unchanged; cache errors are not errors here.
func (c *PolicyCache) GetPolicies(ctx context.Context, subject string) ([]model.Policy, error) {
	subject = util.NormalizeSubject(subject)
	key := c.Key(subject)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if policies, decodeErr := c.decode(raw); decodeErr == nil {
			logger.Debug("Policy cache hit", zap.String("subject", subject))
			return policies, nil
		} else {
			logger.Warn("Discarding undecodable cache entry",
				zap.Error(decodeErr), zap.String("subject", subject))
		}
	} else if err != redis.Nil {
		logger.Warn("Policy cache read failed, falling through to store",
			zap.Error(err), zap.String("subject", subject))
	}

	policies, err := c.store.ScanBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	if encoded, encodeErr := c.encode(policies); encodeErr != nil {
		logger.Warn("Failed to encode policies for cache", zap.Error(encodeErr))
	} else if setErr := c.client.Set(ctx, key, encoded, c.ttl).Err(); setErr != nil {
		logger.Warn("Failed to populate policy cache",
			zap.Error(setErr), zap.String("subject", subject))
	}

	return policies, nil
}

// Invalidate removes every cache entry for the subject and eagerly
// re-warms the cache so the next real request is served hot. The returned
// error comes only from the store during the warm read.
func (c *PolicyCache) Invalidate(ctx context.Context, subject string) error {
	subject = util.NormalizeSubject(subject)
	pattern := c.Key(subject) + "*"

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Failed to delete cache entry",
				zap.Error(err), zap.String("key", iter.Val()))
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("Cache invalidation scan failed",
			zap.Error(err), zap.String("subject", subject))
	}

	_, err := c.GetPolicies(ctx, subject)
	return err
}

func (c *PolicyCache) encode(policies []model.Policy) (string, error) {
	data, err := json.Marshal(policies)
	if err != nil {
		return "", fmt.Errorf("failed to marshal policies: %w", err)
	}
	if len(c.secret) == 0 {
		return string(data), nil
	}
	sealed, err := c.encrypt(data)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt policies: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *PolicyCache) decode(raw string) ([]model.Policy, error) {
	data := []byte(raw)
	if len(c.secret) != 0 {
		sealed, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode cache entry: %w", err)
		}
		if data, err = c.decrypt(sealed); err != nil {
			return nil, fmt.Errorf("failed to decrypt cache entry: %w", err)
		}
	}

	var policies []model.Policy
	if err := json.Unmarshal(data, &policies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return policies, nil
}

func (c *PolicyCache) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(c.secret)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (c *PolicyCache) decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(c.secret)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
