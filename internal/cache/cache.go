// Package cache provides a Redis-backed advisory TTL cache for company
// records, keyed by the owning identity. The cache is a latency optimization
// only: every failure degrades to "fetch fresh" and is never surfaced.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jordan/vibe-jobs/internal/db"
)

// CompanyCacheTTL is the freshness window for a cached company record.
const CompanyCacheTTL = 5 * time.Minute

func companyKey(identityID uuid.UUID) string {
	return fmt.Sprintf("company:identity:%s", identityID)
}

// envelope wraps a cached company with its write time so freshness is
// checked against the entry itself, not only key expiry.
type envelope struct {
	Company  *db.Company `json:"company"`
	CachedAt time.Time   `json:"cached_at"`
}

// CompanyCache is a TTL cache of company records keyed by identity.
type CompanyCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
	now    func() time.Time
}

// New connects to Redis and returns a company cache. The connection is
// verified up front; a missing Redis at startup is an error, but every
// later cache operation swallows failures.
func New(addr, password string, database int, logger *zap.Logger) (*CompanyCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           database,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("connected to redis", zap.String("addr", addr))

	return &CompanyCache{
		client: client,
		logger: logger,
		ttl:    CompanyCacheTTL,
		now:    time.Now,
	}, nil
}

// Close closes the underlying client.
func (c *CompanyCache) Close() error {
	return c.client.Close()
}

// Get returns the cached company for an identity if a fresh entry exists.
// Any read or decode failure behaves as a miss.
func (c *CompanyCache) Get(ctx context.Context, identityID uuid.UUID) (*db.Company, bool) {
	data, err := c.client.Get(ctx, companyKey(identityID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Debug("company cache read failed",
			zap.String("identity_id", identityID.String()),
			zap.Error(err),
		)
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.Debug("company cache entry corrupt",
			zap.String("identity_id", identityID.String()),
			zap.Error(err),
		)
		return nil, false
	}
	if env.Company == nil {
		return nil, false
	}
	// Key expiry normally covers this; the stamp guards against a Redis
	// running without eviction.
	if c.now().Sub(env.CachedAt) >= c.ttl {
		return nil, false
	}

	return env.Company, true
}

// Set stores a company for an identity with the freshness TTL. Write
// failures are swallowed.
func (c *CompanyCache) Set(ctx context.Context, identityID uuid.UUID, company *db.Company) {
	if company == nil {
		return
	}

	data, err := json.Marshal(envelope{Company: company, CachedAt: c.now()})
	if err != nil {
		c.logger.Debug("company cache marshal failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, companyKey(identityID), data, c.ttl).Err(); err != nil {
		c.logger.Debug("company cache write failed",
			zap.String("identity_id", identityID.String()),
			zap.Error(err),
		)
	}
}

// Delete removes the entry for an identity. Failures are swallowed.
func (c *CompanyCache) Delete(ctx context.Context, identityID uuid.UUID) {
	if err := c.client.Del(ctx, companyKey(identityID)).Err(); err != nil {
		c.logger.Debug("company cache delete failed",
			zap.String("identity_id", identityID.String()),
			zap.Error(err),
		)
	}
}

// Clear removes every company entry. Called on sign-out.
func (c *CompanyCache) Clear(ctx context.Context) {
	keys, err := c.client.Keys(ctx, "company:identity:*").Result()
	if err != nil {
		c.logger.Debug("company cache clear failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Debug("company cache clear failed", zap.Error(err))
	}
}
