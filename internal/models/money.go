package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Amounts beyond these bounds are rejected before any arithmetic. Exponent
// notation such as "1e20000000" would otherwise force a multi-million digit
// rescale on the first addition and overflow float64 on output.
const (
	MaxAmountExponent = 18
	MaxAmountDigits   = 30
)

// CheckMagnitude reports an error when d has too many digits or an exponent
// outside [-MaxAmountExponent, MaxAmountExponent].
func CheckMagnitude(d decimal.Decimal) error {
	if exp := d.Exponent(); exp > MaxAmountExponent || exp < -MaxAmountExponent {
		return fmt.Errorf("amount exponent %d out of range", exp)
	}
	if n := d.NumDigits(); n > MaxAmountDigits {
		return fmt.Errorf("amount has %d digits, at most %d allowed", n, MaxAmountDigits)
	}
	return nil
}

// ParseAmount parses a human-entered amount into a decimal.
//
// Currency codes and symbols, spaces and apostrophe thousand separators are removed.
// A comma is read as the decimal separator unless a dot is also present, in which
// case commas are thousand separators: "1,500" is 1.5 and "1,500.00" is 1500.
// Values failing CheckMagnitude are rejected.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	for _, noise := range []string{" ", "\u00a0", "'", "CHF", "EUR", "USD", "$", "€", "£"} {
		amount = strings.ReplaceAll(amount, noise, "")
	}
	if strings.Contains(amount, ".") {
		amount = strings.ReplaceAll(amount, ",", "")
	} else {
		amount = strings.ReplaceAll(amount, ",", ".")
	}
	if amount == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", amountStr, err)
	}
	if err := CheckMagnitude(dec); err != nil {
		return decimal.Zero, err
	}
	return dec, nil
}

// Percentage returns part / total * 100, or zero when total is zero.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

// FormatPercent renders a share of total with one decimal and a percent sign,
// or "0%" when total is zero.
func FormatPercent(part, total decimal.Decimal) string {
	if total.IsZero() {
		return "0%"
	}
	return Percentage(part, total).StringFixed(1) + "%"
}

// ToFloat converts a decimal to float64 for chart output.
func ToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
