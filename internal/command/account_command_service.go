package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eaglebank/banking-service/internal/repository"
	"github.com/eaglebank/banking-service/shared/cqrs"
	"github.com/eaglebank/banking-service/shared/events"
	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/eaglebank/banking-service/shared/models"
	"github.com/eaglebank/banking-service/shared/utils"
	"github.com/shopspring/decimal"
)

type AccountWriter interface {
	Create(ctx context.Context, account *models.Account) error
	GetByUserID(ctx context.Context, userID string) (*models.Account, error)
	UpdateBalance(ctx context.Context, userID string, fn repository.BalanceFunc) (*models.Account, error)
}

type AccountViewCache interface {
	CacheAccountView(ctx context.Context, view *models.AccountView)
	InvalidateAccountView(ctx context.Context, userID string)
}

// NumberRange is the inclusive range account numbers are drawn from, and how
// many collisions OpenAccount tolerates before giving up.
type NumberRange struct {
	Min         int64
	Max         int64
	MaxAttempts int
}

// AccountCommandService writes account state and keeps the read model in sync.
type AccountCommandService struct {
	writeRepo AccountWriter
	readRepo  AccountViewCache
	publisher EventPublisher
	logger    logging.Logger
	numbers   NumberRange
	draw      func() (int64, error)
}

func NewAccountCommandService(
	writeRepo AccountWriter,
	readRepo AccountViewCache,
	publisher EventPublisher,
	numbers NumberRange,
	logger logging.Logger,
) *AccountCommandService {
	return &AccountCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
		logger:    logger.With("service", "account_command"),
		numbers:   numbers,
		draw: func() (int64, error) {
			return utils.RandomInRange(numbers.Min, numbers.Max)
		},
	}
}

// OpenAccount creates the caller's only account. Numbers are drawn at random
// and the unique constraint decides; a collision means another draw, up to
// NumberRange.MaxAttempts. An existing account is reported as
// models.ErrAlreadyHasAccount even when the number space is saturated.
func (s *AccountCommandService) OpenAccount(ctx context.Context, cmd cqrs.OpenAccountCommand) (*models.Account, error) {
	if err := s.ensureNoAccount(ctx, cmd.UserID); err != nil {
		return nil, err
	}
	balance := ParseInitialBalance(cmd.RawInitialBalance)

	for attempt := 1; attempt <= s.numbers.MaxAttempts; attempt++ {
		number, err := s.draw()
		if err != nil {
			return nil, fmt.Errorf("failed to draw account number: %w", err)
		}

		now := time.Now().UTC()
		account := &models.Account{
			AccountNumber: number,
			UserID:        cmd.UserID,
			Balance:       balance,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		err = s.writeRepo.Create(ctx, account)
		if errors.Is(err, models.ErrAccountNumberTaken) {
			s.logger.Debug(ctx, "account number collision", "attempt", attempt, "account_number", number)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.readRepo.CacheAccountView(ctx, models.AccountToView(account))
		if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountOpened, events.AccountOpenedEvent{
			AccountNumber:  account.AccountNumber,
			UserID:         account.UserID,
			InitialBalance: account.Balance.String(),
		}); err != nil {
			s.logger.Warn(ctx, "failed to publish event", "event", events.AccountOpened, "user_id", account.UserID, "error", err)
		}
		s.logger.Info(ctx, "account opened", "user_id", account.UserID, "account_number", account.AccountNumber)
		return account, nil
	}

	// A concurrent open for the same user may have won while we were drawing.
	if err := s.ensureNoAccount(ctx, cmd.UserID); err != nil {
		return nil, err
	}
	s.logger.Error(ctx, "no free account number found",
		"attempts", s.numbers.MaxAttempts, "min", s.numbers.Min, "max", s.numbers.Max)
	return nil, models.ErrAccountNumberSpaceExhausted
}

func (s *AccountCommandService) ensureNoAccount(ctx context.Context, userID string) error {
	_, err := s.writeRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		return models.ErrAlreadyHasAccount
	case errors.Is(err, models.ErrNoAccount):
		return nil
	default:
		return err
	}
}

// Deposit fails with models.ErrBalanceLimitExceeded when the new balance
// would exceed models.MaxBalance.
func (s *AccountCommandService) Deposit(ctx context.Context, cmd cqrs.DepositCommand) (*models.AccountView, error) {
	if err := checkAmount(cmd.Amount); err != nil {
		return nil, err
	}
	return s.applyBalance(ctx, cmd.UserID, func(current decimal.Decimal) (decimal.Decimal, error) {
		next := current.Add(cmd.Amount)
		if next.GreaterThan(models.MaxBalance) {
			return current, models.ErrBalanceLimitExceeded
		}
		return next, nil
	})
}

// Withdraw fails with models.ErrInsufficientFunds when amount exceeds the
// balance; the balance is left unchanged.
func (s *AccountCommandService) Withdraw(ctx context.Context, cmd cqrs.WithdrawCommand) (*models.AccountView, error) {
	if err := checkAmount(cmd.Amount); err != nil {
		return nil, err
	}
	return s.applyBalance(ctx, cmd.UserID, func(current decimal.Decimal) (decimal.Decimal, error) {
		if cmd.Amount.GreaterThan(current) {
			return current, models.ErrInsufficientFunds
		}
		return current.Sub(cmd.Amount), nil
	})
}

func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return models.ErrInvalidAmount
	}
	return models.CheckMoney(amount)
}

// applyBalance drops the cached view instead of rewriting it, so concurrent
// mutations cannot leave an older balance behind; the next read reloads it.
func (s *AccountCommandService) applyBalance(ctx context.Context, userID string, fn repository.BalanceFunc) (*models.AccountView, error) {
	account, err := s.writeRepo.UpdateBalance(ctx, userID, fn)
	if err != nil {
		return nil, err
	}
	s.readRepo.InvalidateAccountView(ctx, userID)
	return models.AccountToView(account), nil
}

// ParseInitialBalance turns the client's opening balance into an amount.
// Missing, unparsable, negative and out-of-range values all open the account
// at zero.
func ParseInitialBalance(raw string) decimal.Decimal {
	amount, err := models.ParseMoney(raw)
	if err != nil || amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
