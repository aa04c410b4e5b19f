package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/persistence"
)

// UserCache is a read-through cache over Redis. Entries are written on read,
// invalidated on mutation, and bounded by a TTL so a lost invalidation
// self-heals. All failures degrade to a cache miss.
type UserCache struct {
	redis  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewUserCache builds a cache over the given Redis wrapper. A disabled Redis
// yields a cache that always misses.
func NewUserCache(r *persistence.Redis, ttl time.Duration, logger *zap.Logger) *UserCache {
	return &UserCache{redis: r, ttl: ttl, logger: logger}
}

func userKey(id string) string {
	return "user:" + id
}

// Get returns the cached user or nil on miss.
func (c *UserCache) Get(ctx context.Context, id string) *domain.User {
	if c == nil || !c.redis.Enabled() {
		return nil
	}

	payload, err := c.redis.Client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("user cache get failed", zap.Error(err))
		}
		return nil
	}

	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		c.logger.Warn("user cache entry corrupt, dropping", zap.String("id", id), zap.Error(err))
		c.Invalidate(ctx, id)
		return nil
	}
	return &user
}

// Set stores the user under its id with the configured TTL.
func (c *UserCache) Set(ctx context.Context, user *domain.User) {
	if c == nil || !c.redis.Enabled() || user == nil {
		return
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, userKey(user.ID), payload, c.ttl).Err(); err != nil {
		c.logger.Debug("user cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached entry for the given id.
func (c *UserCache) Invalidate(ctx context.Context, id string) {
	if c == nil || !c.redis.Enabled() {
		return
	}
	if err := c.redis.Client.Del(ctx, userKey(id)).Err(); err != nil {
		c.logger.Debug("user cache invalidate failed", zap.Error(err))
	}
}
