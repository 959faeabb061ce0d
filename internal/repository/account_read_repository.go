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
	"github.com/shopspring/decimal"
)

// Account views are keyed by owner: every account lookup starts from the
// authenticated user.
const accountViewKeyPrefix = "account:view:"

// accountCacheEntry is the internal Redis representation of an account.
// Unlike models.AccountView, it serialises UserID.
type accountCacheEntry struct {
	AccountNumber int64           `json:"accountNumber"`
	UserID        string          `json:"userId"`
	Balance       decimal.Decimal `json:"balance"`
	UpdatedAt     time.Time       `json:"updatedTimestamp"`
}

// AccountReadRepository handles all read operations for accounts.
// It treats Redis as the primary read store (the CQRS read model) and falls
// back to PostgreSQL transparently, warming the cache on every cold read.
type AccountReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[accountCacheEntry]
}

func NewAccountReadRepository(db *sql.DB, redisClient *goredis.Client, ttl time.Duration, logger logging.Logger) *AccountReadRepository {
	return &AccountReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[accountCacheEntry](redisClient, ttl, logger),
	}
}

// GetByUserID returns the AccountView owned by userID, trying Redis first
// then PostgreSQL.
func (r *AccountReadRepository) GetByUserID(ctx context.Context, userID string) (*models.AccountView, error) {
	cacheKey := accountViewKeyPrefix + userID

	if entry, ok := r.cache.Get(ctx, cacheKey); ok {
		return &models.AccountView{
			AccountNumber: entry.AccountNumber,
			UserID:        entry.UserID,
			Balance:       entry.Balance,
			UpdatedAt:     entry.UpdatedAt,
		}, nil
	}

	query := `
		SELECT account_number, user_id, balance, updated_at
		FROM accounts
		WHERE user_id = $1
	`
	var view models.AccountView
	pgErr := r.db.QueryRowContext(ctx, query, userID).Scan(
		&view.AccountNumber, &view.UserID, &view.Balance, &view.UpdatedAt,
	)
	if errors.Is(pgErr, sql.ErrNoRows) {
		return nil, models.ErrNoAccount
	}
	if pgErr != nil {
		return nil, fmt.Errorf("failed to get account: %w", pgErr)
	}

	// Warm the cache
	r.CacheAccountView(ctx, &view)
	return &view, nil
}

// CacheAccountView stores or refreshes the Redis read model for an account.
// Called when an account is opened and on every cold read.
func (r *AccountReadRepository) CacheAccountView(ctx context.Context, view *models.AccountView) {
	r.cache.Set(ctx, accountViewKeyPrefix+view.UserID, &accountCacheEntry{
		AccountNumber: view.AccountNumber,
		UserID:        view.UserID,
		Balance:       view.Balance,
		UpdatedAt:     view.UpdatedAt,
	})
}

// InvalidateAccountView drops the cached view so the next read goes to
// PostgreSQL.
func (r *AccountReadRepository) InvalidateAccountView(ctx context.Context, userID string) {
	r.cache.Delete(ctx, accountViewKeyPrefix+userID)
}
