package models

import "errors"

// Domain errors. Handlers translate them into status codes and user-facing
// messages; match them with errors.Is.
var (
	// ErrAlreadyExists is returned when the email or username is taken.
	ErrAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound = errors.New("user not found")

	ErrAlreadyHasAccount = errors.New("user already has an account")
	ErrNoAccount         = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount covers amounts that are not positive or do not fit the
	// balance column (see CheckMoney).
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrBalanceLimitExceeded is returned when a deposit would take the
	// balance above MaxBalance.
	ErrBalanceLimitExceeded = errors.New("balance limit exceeded")

	// ErrAccountNumberSpaceExhausted is returned when no free account number
	// was found within the configured number of attempts.
	ErrAccountNumberSpaceExhausted = errors.New("account number space exhausted")

	// ErrAccountNumberTaken is raised by repositories on an account number
	// collision so the caller can draw another number.
	ErrAccountNumberTaken = errors.New("account number already taken")
)
