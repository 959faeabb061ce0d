package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdTimestamp"`
}

// Account is the write model. A user owns at most one.
type Account struct {
	ID            int64           `json:"-"`
	AccountNumber int64           `json:"accountNumber"`
	UserID        string          `json:"-"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
	UpdatedAt     time.Time       `json:"updatedTimestamp"`
}
