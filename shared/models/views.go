package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserView is the read-optimised projection of a user.
// It never exposes PasswordHash.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// AccountView is the read-optimised projection of an account.
// UserID is kept for cache lookups but never serialised to the API response.
type AccountView struct {
	AccountNumber int64           `json:"accountNumber"`
	UserID        string          `json:"-"`
	Balance       decimal.Decimal `json:"balance"`
	UpdatedAt     time.Time       `json:"updatedTimestamp"`
}

// DashboardView combines the caller's identity with their account, if any.
type DashboardView struct {
	Username string       `json:"username"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Account  *AccountView `json:"account"`
}

func UserToView(u *User) *UserView {
	return &UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func AccountToView(a *Account) *AccountView {
	return &AccountView{
		AccountNumber: a.AccountNumber,
		UserID:        a.UserID,
		Balance:       a.Balance,
		UpdatedAt:     a.UpdatedAt,
	}
}
