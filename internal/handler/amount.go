package handler

import (
	"encoding/json"

	"github.com/eaglebank/banking-service/shared/models"
	"github.com/shopspring/decimal"
)

// Amount holds a money value exactly as the client wrote it, whether as a
// JSON number or a string. It never fails to decode; interpretation is left
// to the caller.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = Amount(s)
		return nil
	}
	*a = Amount(b)
	return nil
}

// Decimal parses a strictly positive amount that fits an account balance.
func (a Amount) Decimal() (decimal.Decimal, error) {
	d, err := models.ParseMoney(string(a))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, models.ErrInvalidAmount
	}
	return d, nil
}
