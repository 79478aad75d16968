package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user input into a non-negative amount. Anything that
// does not parse as a number yields zero. Grouping commas, underscores and a
// leading currency marker are ignored.
func ParseAmount(s string) decimal.Decimal {
	d, err := ParseAmountStrict(s)
	if err != nil {
		return decimal.Zero
	}
	return NonNegative(d)
}

// ParseAmountStrict is ParseAmount without the coercion: malformed input is
// reported and negative values are returned as is. Empty input is zero.
func ParseAmountStrict(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "RD$")
	s = strings.TrimPrefix(s, "$")
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	return d, nil
}

// ParseMonths converts user input into a month count of at least one.
// Fractional values are floored.
func ParseMonths(s string) int {
	d := ParseAmount(s)
	if !d.Floor().LessThan(decimal.NewFromInt(1 << 20)) {
		return 1 << 20
	}
	return ClampMonths(int(d.Floor().IntPart()))
}

// ParsePeriodType maps user input onto a PeriodType, defaulting to monthly.
func ParsePeriodType(s string) PeriodType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "semimonthly", "semi-monthly", "semi_monthly", "quincenal":
		return PeriodSemiMonthly
	default:
		return PeriodMonthly
	}
}

// NonNegative returns d, or zero when d is negative.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ClampMonths returns max(1, n).
func ClampMonths(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
