package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places money is displayed and rounded to.
const MoneyPlaces = 2

var amountNoise = []string{" ", "'", "CHF", "EUR", "USD", "GBP", "$", "€", "£"}

// ParseAmount parses a user-entered amount into an exact decimal. Currency
// markers, spaces and thousand separators (') are ignored and a comma is
// accepted as decimal separator.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	for _, noise := range amountNoise {
		amount = strings.ReplaceAll(amount, noise, "")
	}
	amount = strings.ReplaceAll(amount, ",", ".")
	if amount == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", amountStr, err)
	}
	return dec, nil
}

// RoundMoney rounds half away from zero to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// FormatMoney renders d with exactly two decimals and an optional currency suffix.
func FormatMoney(d decimal.Decimal, currency string) string {
	if currency == "" {
		return d.StringFixed(MoneyPlaces)
	}
	return fmt.Sprintf("%s %s", d.StringFixed(MoneyPlaces), currency)
}

// Ratio divides num by den. ok is false when den is zero; callers turn that
// into fterrors.ErrDivisionUndefined.
func Ratio(num, den decimal.Decimal) (ratio decimal.Decimal, ok bool) {
	if den.IsZero() {
		return decimal.Zero, false
	}
	return num.Div(den), true
}

// Percent converts a ratio into a display percentage. Only used for output.
func Percent(ratio decimal.Decimal) float64 {
	f, _ := ratio.Mul(decimal.NewFromInt(100)).Float64()
	return f
}
