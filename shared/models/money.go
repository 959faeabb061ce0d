package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Balances are stored as NUMERIC(20,2): two fractional digits and at most
// eighteen integer digits.
const (
	MoneyScale         = 2
	MoneyIntegerDigits = 18
)

// MaxBalance is the largest balance an account can hold.
var MaxBalance = decimal.New(1, MoneyIntegerDigits).Sub(decimal.New(1, -MoneyScale))

// Exponents outside this window are rejected before any arithmetic, since
// rescaling a decimal costs time and memory proportional to the exponent.
const (
	minMoneyExponent = -(MoneyScale + MoneyIntegerDigits)
	maxMoneyExponent = MoneyIntegerDigits
)

// CheckMoney reports whether d fits the balance column exactly: no more than
// two decimal places and no more than MaxBalance in magnitude.
func CheckMoney(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	if exp := d.Exponent(); exp < minMoneyExponent || exp > maxMoneyExponent {
		return ErrInvalidAmount
	}
	if !d.Equal(d.Truncate(MoneyScale)) {
		return ErrInvalidAmount
	}
	if d.Abs().GreaterThan(MaxBalance) {
		return ErrInvalidAmount
	}
	return nil
}

// ParseMoney parses a decimal string and applies CheckMoney. Zero comes back
// with exponent 0 regardless of how it was written.
func ParseMoney(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	if err := CheckMoney(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
