// Package utils provides shared helpers for the journal backend.
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GenerateID generates a unique ID with optional prefix.
func GenerateID(prefix string) string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	id := hex.EncodeToString(bytes)
	if prefix != "" {
		return fmt.Sprintf("%s_%s", prefix, id)
	}
	return id
}

// GenerateTradeID generates a unique trade ID.
func GenerateTradeID() string {
	return GenerateID("trd")
}

// ParseMoney parses a monetary string as exported by broker platforms.
// It tolerates currency symbols, thousands separators, surrounding
// whitespace, and accounting-style parentheses for negatives.
// Returns false when nothing numeric remains.
func ParseMoney(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c == '.', c == '-', c == '+':
			b.WriteRune(c)
		case c == ',', c == '$', c == '€', c == '£', c == ' ':
			// Stripped
		default:
			return decimal.Zero, false
		}
	}

	cleaned := b.String()
	if cleaned == "" || cleaned == "-" || cleaned == "+" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// dateLayouts are the timestamp formats accepted from broker exports,
// most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseDate parses a timestamp string in any of the accepted broker
// formats. Date-only values are interpreted as midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateKey truncates a timestamp to its UTC calendar day (YYYY-MM-DD).
// UTC is the single timezone policy for all daily grouping.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Round2 rounds a decimal to currency precision and returns it as a
// float64 for chart consumption. decimal.Round rounds half away from
// zero, which is the required rounding mode for emitted values.
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// RoundFloat2 rounds a float64 to 2 decimal places, half away from zero.
func RoundFloat2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatMoney formats a decimal as a currency label.
func FormatMoney(d decimal.Decimal, currency string) string {
	switch strings.ToUpper(currency) {
	case "", "USD":
		return "$" + d.StringFixed(2)
	case "GBP":
		return "£" + d.StringFixed(2)
	case "EUR":
		return "€" + d.StringFixed(2)
	default:
		return d.StringFixed(2) + " " + currency
	}
}

// MinDecimal returns the minimum of two decimals.
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// MaxDecimal returns the maximum of two decimals.
func MaxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
