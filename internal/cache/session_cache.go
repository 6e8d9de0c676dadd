package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache indexes the active session per participant. Mongo
// remains the source of truth; the index only makes conflict checks
// and ownership lookups cheap. Entries expire with the inactivity
// window so a stale key never outlives its session.
type SessionCache interface {
	SetActive(ctx context.Context, participantID, sessionID string, ttl time.Duration) error
	GetActive(ctx context.Context, participantID string) (string, error)
	Refresh(ctx context.Context, participantID string, ttl time.Duration) error
	ClearActive(ctx context.Context, participantID string) error
}

type sessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a session cache on the given Redis client.
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{client: client}
}

func (c *sessionCache) activeKey(participantID string) string {
	return fmt.Sprintf("participant:%s:active", participantID)
}

func (c *sessionCache) SetActive(ctx context.Context, participantID, sessionID string, ttl time.Duration) error {
	return c.client.Set(ctx, c.activeKey(participantID), sessionID, ttl).Err()
}

// GetActive returns the active session id, or "" when none is cached.
func (c *sessionCache) GetActive(ctx context.Context, participantID string) (string, error) {
	val, err := c.client.Get(ctx, c.activeKey(participantID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *sessionCache) Refresh(ctx context.Context, participantID string, ttl time.Duration) error {
	return c.client.Expire(ctx, c.activeKey(participantID), ttl).Err()
}

func (c *sessionCache) ClearActive(ctx context.Context, participantID string) error {
	return c.client.Del(ctx, c.activeKey(participantID)).Err()
}
