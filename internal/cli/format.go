// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is prefixed to money values when none is configured.
const DefaultCurrency = "RD$"

// FormatAmount formats a money value with thousands separators and two
// decimals, e.g. 25000 -> "25,000.00".
func FormatAmount(d decimal.Decimal) string {
	fixed := d.Round(2).StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + whole + "." + frac
	}
	return sign + humanize.Comma(n) + "." + frac
}

// FormatMoney formats a money value with a currency prefix,
// e.g. "RD$ 25,000.00".
func FormatMoney(currency string, d decimal.Decimal) string {
	if currency == "" {
		return FormatAmount(d)
	}
	return currency + " " + FormatAmount(d)
}

// FormatPercent formats a 0-100 percentage rounded to a whole number.
func FormatPercent(p decimal.Decimal) string {
	return p.Round(0).StringFixed(0) + "%"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatBytes formats a file size, e.g. 1536 -> "1.5 KiB".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// FormatAgo formats a timestamp relative to now, e.g. "3 minutes ago".
func FormatAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// PeriodLabel returns the short label of a 1-based period index, e.g. "P3".
func PeriodLabel(index int) string {
	return fmt.Sprintf("P%d", index)
}
