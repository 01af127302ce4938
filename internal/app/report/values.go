package report

import (
	"github.com/shopspring/decimal"

	"vault_reporter/internal/domain/payload"
)

const (
	// NotAvailable replaces any value that is missing, null or unusable.
	NotAvailable = "N/A"
	// Ellipsis is appended whenever a value is cut.
	Ellipsis = "..."
	// DefaultMaxLength bounds property values in the transaction report.
	DefaultMaxLength = 50

	dataKey       = "data"
	dataMaxLength = 20
)

var hundred = decimal.NewFromInt(100)

// numeric extracts a number from v. Falsy values (absent, null, 0, "") count
// as missing, so a genuine zero renders as N/A.
func numeric(v payload.Value) (decimal.Decimal, bool) {
	if !v.Truthy() {
		return decimal.Zero, false
	}
	return v.Decimal()
}

// FormatUSD renders v as dollars with two decimals, e.g. "$1234.50".
func FormatUSD(v payload.Value) string {
	d, ok := numeric(v)
	if !ok {
		return NotAvailable
	}
	return "$" + d.StringFixed(2)
}

// FormatPercent renders a fraction as a percentage, e.g. 0.1523 -> "15.23%".
func FormatPercent(v payload.Value) string {
	d, ok := numeric(v)
	if !ok {
		return NotAvailable
	}
	return d.Mul(hundred).StringFixed(2) + "%"
}

// FormatNative renders a token amount with six decimals followed by its symbol.
func FormatNative(v payload.Value, symbol string) string {
	d, ok := numeric(v)
	if !ok {
		return NotAvailable
	}
	return d.StringFixed(6) + " " + symbol
}

// Truncate cuts value to DefaultMaxLength runes, or to 20 runes when key is "data".
func Truncate(key, value string) string {
	return TruncateTo(key, value, DefaultMaxLength)
}

// TruncateTo is Truncate with an explicit bound for non-data keys.
func TruncateTo(key, value string, maxLength int) string {
	if key == dataKey {
		if cut, ok := cutRunes(value, dataMaxLength); ok {
			return cut + Ellipsis
		}
	}
	if cut, ok := cutRunes(value, maxLength); ok {
		return cut + Ellipsis
	}
	return value
}

// ShortenName keeps at most limit runes of name, marking the cut with an ellipsis.
func ShortenName(name string, limit int) string {
	if cut, ok := cutRunes(name, limit); ok {
		return cut + Ellipsis
	}
	return name
}

// cutRunes returns the first n runes of s and true when s is longer than n.
func cutRunes(s string, n int) (string, bool) {
	if n < 0 {
		n = 0
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}

// orNA is the render-or-N/A helper for optional text accessors.
func orNA(s string, ok bool) string {
	if !ok {
		return NotAvailable
	}
	return s
}
