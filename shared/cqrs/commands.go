package cqrs

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterUserCommand struct {
	Name     string
	Email    string
	Username string
	Password string
}

type LoginCommand struct {
	Email    string
	Password string
}

type LogoutCommand struct {
	TokenID   string
	ExpiresAt time.Time
}

// OpenAccountCommand carries the initial balance exactly as the client sent
// it; the command service decides how to interpret it.
type OpenAccountCommand struct {
	UserID            string
	RawInitialBalance string
}

type DepositCommand struct {
	UserID string
	Amount decimal.Decimal
}

type WithdrawCommand struct {
	UserID string
	Amount decimal.Decimal
}
