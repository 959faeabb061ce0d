package repository

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "session:revoked:"

// SessionRepository records logged-out tokens until they would have expired.
type SessionRepository struct {
	redis *goredis.Client
	now   func() time.Time
}

func NewSessionRepository(redisClient *goredis.Client) *SessionRepository {
	return &SessionRepository{redis: redisClient, now: time.Now}
}

// Revoke marks tokenID as unusable. Tokens that are already past expiresAt
// need no record.
func (r *SessionRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.redis.Set(ctx, revokedTokenKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (r *SessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.redis.Exists(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n > 0, nil
}
