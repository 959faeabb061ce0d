package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/eaglebank/banking-service/shared/models"
	sharedredis "github.com/eaglebank/banking-service/shared/redis"
	goredis "github.com/redis/go-redis/v9"
)

const userViewKeyPrefix = "user:view:"

// UserReadRepository handles all read operations for users.
// It uses Redis as the primary read store, falling back to PostgreSQL on a miss.
type UserReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.UserView]
}

func NewUserReadRepository(db *sql.DB, redisClient *goredis.Client, ttl time.Duration, logger logging.Logger) *UserReadRepository {
	return &UserReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.UserView](redisClient, ttl, logger),
	}
}

// GetByID returns a UserView from Redis first, then PostgreSQL.
func (r *UserReadRepository) GetByID(ctx context.Context, id string) (*models.UserView, error) {
	cacheKey := userViewKeyPrefix + id

	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	query := `
		SELECT id, name, email, username, created_at
		FROM users
		WHERE id = $1
	`
	var view models.UserView
	pgErr := r.db.QueryRowContext(ctx, query, id).Scan(
		&view.ID, &view.Name, &view.Email, &view.Username, &view.CreatedAt,
	)
	if errors.Is(pgErr, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if pgErr != nil {
		return nil, fmt.Errorf("failed to get user: %w", pgErr)
	}

	// Warm the cache
	r.CacheUserView(ctx, &view)
	return &view, nil
}

// CacheUserView stores or refreshes the Redis read model for a user.
func (r *UserReadRepository) CacheUserView(ctx context.Context, view *models.UserView) {
	r.cache.Set(ctx, userViewKeyPrefix+view.ID, view)
}
