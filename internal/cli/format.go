// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats a monetary amount with comma grouping and two
// decimal places. e.g., 1234567.5 -> "1,234,567.50"
func FormatMoney(d decimal.Decimal) string {
	return groupFixed(d, ",", ".")
}

// FormatMoneyEU formats a monetary amount in the European style.
// e.g., 1234567.5 -> "1.234.567,50"
func FormatMoneyEU(d decimal.Decimal) string {
	return groupFixed(d, ".", ",")
}

// FormatCompact abbreviates a monetary amount for tight spaces.
// e.g., 1234567 -> "1.2M", -52000 -> "-52.0K", 950 -> "950"
func FormatCompact(d decimal.Decimal) string {
	f, _ := d.Float64()
	abs := math.Abs(f)

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", f/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", f/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("%.1fK", f/1_000)
	default:
		return d.StringFixed(0)
	}
}

// FormatUsers adds comma separators to a subscriber count.
// e.g., 1234567 -> "1,234,567"
func FormatUsers(n int64) string {
	if n < 0 {
		return "-" + FormatUsers(-n)
	}
	return groupDigits(strconv.FormatInt(n, 10), ",")
}

// FormatPercent formats a 0-1 ratio as a percentage string.
// e.g., 0.125 -> "12.5%"
func FormatPercent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// FormatDelta formats the change between two amounts with an explicit sign.
func FormatDelta(current, previous decimal.Decimal) string {
	delta := current.Sub(previous)
	if delta.Sign() >= 0 {
		return "+" + FormatMoney(delta)
	}
	return FormatMoney(delta)
}

// Floats converts a decimal series for chart rendering, where float
// precision is sufficient.
func Floats(ds []decimal.Decimal) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i], _ = d.Float64()
	}
	return out
}

// groupFixed renders d with two decimal places, a thousands separator in
// the integer part, and the given decimal point.
func groupFixed(d decimal.Decimal, thousands, point string) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(groupDigits(intPart, thousands))
	b.WriteString(point)
	b.WriteString(fracPart)
	return b.String()
}

// groupDigits inserts sep every three digits from the right.
func groupDigits(s, sep string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
