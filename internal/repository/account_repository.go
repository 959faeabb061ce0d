package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/banking-service/shared/dbx"
	"github.com/eaglebank/banking-service/shared/models"
	"github.com/shopspring/decimal"
)

const (
	accountNumberConstraint = "accounts_account_number_key"
	accountOwnerConstraint  = "accounts_user_id_key"
)

// BalanceFunc computes a new balance from the current one. Returning an error
// aborts the update and leaves the balance untouched.
type BalanceFunc func(current decimal.Decimal) (decimal.Decimal, error)

// AccountWriteRepository handles all state-mutating operations for accounts.
// It operates exclusively against the PostgreSQL write store (source of truth).
type AccountWriteRepository struct {
	db *sql.DB
}

func NewAccountWriteRepository(db *sql.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

// Create inserts an account and fills in its id. It returns
// models.ErrAccountNumberTaken when the number is in use and
// models.ErrAlreadyHasAccount when the owner already has an account.
func (r *AccountWriteRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (account_number, user_id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		account.AccountNumber, account.UserID, account.Balance, account.CreatedAt, account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		if code, constraint, ok := violation(err); ok {
			switch {
			case code == pqUniqueViolation && constraint == accountNumberConstraint:
				return models.ErrAccountNumberTaken
			case code == pqUniqueViolation && constraint == accountOwnerConstraint:
				return models.ErrAlreadyHasAccount
			case code == pqForeignKeyViolation:
				return models.ErrUserNotFound
			}
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountWriteRepository) GetByUserID(ctx context.Context, userID string) (*models.Account, error) {
	query := `
		SELECT id, account_number, user_id, balance, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
	`
	return scanAccount(r.db.QueryRowContext(ctx, query, userID))
}

// UpdateBalance applies fn to the balance of userID's account inside one
// transaction, holding the row lock between the read and the write.
func (r *AccountWriteRepository) UpdateBalance(ctx context.Context, userID string, fn BalanceFunc) (*models.Account, error) {
	var account *models.Account
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `
			SELECT id, account_number, user_id, balance, created_at, updated_at
			FROM accounts
			WHERE user_id = $1
			FOR UPDATE
		`
		current, err := scanAccount(tx.QueryRowContext(ctx, query, userID))
		if err != nil {
			return err
		}

		newBalance, err := fn(current.Balance)
		if err != nil {
			return err
		}

		update := `
			UPDATE accounts
			SET balance = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at
		`
		if err := tx.QueryRowContext(ctx, update, current.ID, newBalance).Scan(&current.UpdatedAt); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		current.Balance = newBalance
		account = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID, &account.AccountNumber, &account.UserID,
		&account.Balance, &account.CreatedAt, &account.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNoAccount
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}
