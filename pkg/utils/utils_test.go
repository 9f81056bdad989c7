// Package utils_test provides tests for shared helpers.
package utils_test

import (
	"testing"
	"time"

	"github.com/tradelens/journal-backend/pkg/utils"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1234.56", 1234.56, true},
		{"$1,234.56", 1234.56, true},
		{"(50.00)", -50, true},
		{"-£42", -42, true},
		{"  100 ", 100, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"$", 0, false},
	}

	for _, tc := range cases {
		got, ok := utils.ParseMoney(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseMoney(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got.InexactFloat64() != tc.want {
			t.Errorf("ParseMoney(%q) = %s, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	cases := []string{
		"2024-01-02T15:04:05Z",
		"2024-01-02 15:04:05",
		"2024-01-02",
		"01/02/2024",
	}

	for _, in := range cases {
		parsed, ok := utils.ParseDate(in)
		if !ok {
			t.Errorf("ParseDate(%q) rejected", in)
			continue
		}
		if parsed.Year() != 2024 || parsed.Month() != time.January || parsed.Day() != 2 {
			t.Errorf("ParseDate(%q) = %v, wrong day", in, parsed)
		}
	}

	if _, ok := utils.ParseDate("yesterday"); ok {
		t.Error("Expected 'yesterday' to be rejected")
	}
}

func TestDateKeyUsesUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	est := time.FixedZone("EST", -5*3600)
	local := time.Date(2024, 1, 1, 23, 30, 0, 0, est)

	if key := utils.DateKey(local); key != "2024-01-02" {
		t.Errorf("Expected UTC day 2024-01-02, got %s", key)
	}
}

func TestRoundFloat2HalfAwayFromZero(t *testing.T) {
	if got := utils.RoundFloat2(0.125); got != 0.13 {
		t.Errorf("Expected 0.13, got %v", got)
	}
	if got := utils.RoundFloat2(-0.125); got != -0.13 {
		t.Errorf("Expected -0.13, got %v", got)
	}
}
