package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney coerces user-entered fee text into a decimal. Fee tables arrive
// from free-text forms, so anything unparsable defaults to zero instead of
// failing the whole tree insert. This is the only place that policy lives.
func ParseMoney(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	// tolerate "2,50" style input
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// RoundAmount rounds a computed amount to 2 places and returns the remainder
// so the caller can accumulate it instead of dropping it.
func RoundAmount(d decimal.Decimal) (rounded, remainder decimal.Decimal) {
	rounded = d.Round(2)
	remainder = d.Sub(rounded)
	return rounded, remainder
}

// Percent applies a percentage rate to an amount: amount * rate / 100.
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(decimal.NewFromInt(100))
}

// MaxDecimal returns the larger of a and b.
func MaxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// MinDecimal returns the smaller of a and b.
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}
