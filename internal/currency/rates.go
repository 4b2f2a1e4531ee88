// Package currency holds the static exchange-rate table the engine consults.
// Rates are expressed relative to USD; there is no live rate service.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Supported currency codes.
const (
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
	JPY = "JPY"
)

var rates = map[string]decimal.Decimal{
	USD: decimal.NewFromInt(1),
	EUR: decimal.RequireFromString("0.92"),
	GBP: decimal.RequireFromString("0.79"),
	JPY: decimal.RequireFromString("150.5"),
}

// Rate returns the exchange rate for the given code relative to the base unit.
func Rate(code string) (decimal.Decimal, error) {
	rate, ok := rates[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown currency %q", code)
	}
	return rate, nil
}

// Supported reports whether the code exists in the rate table.
func Supported(code string) bool {
	_, ok := rates[code]
	return ok
}

// Convert re-denominates amount from one currency to another, rounded to
// two decimal places. Repeated conversions may compound rounding error;
// the balance is a point-in-time figure, not a ledger.
func Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	fromRate, err := Rate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := Rate(to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(toRate).Div(fromRate).Round(2), nil
}
