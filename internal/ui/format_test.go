package ui

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"quotedesk/internal/domain"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     string
	}{
		{"12500000", "VND", "12,500,000 VND"},
		{"12500000.6", "vnd", "12,500,001 VND"},
		{"1250.5", "USD", "1,250.50 USD"},
		{"-3.456", "EUR", "-3.46 EUR"},
		{"0", "", "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.amount+tc.currency, func(t *testing.T) {
			got := FormatMoney(domain.Money{Amount: decimal.RequireFromString(tc.amount), Currency: tc.currency})
			if got != tc.want {
				t.Fatalf("FormatMoney = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := FormatQuantity(decimal.RequireFromString("1200.5")); got != "1,200.5" {
		t.Fatalf("got %q", got)
	}
	if got := FormatQuantity(decimal.NewFromInt(3)); got != "3" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatDates(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })

	if got := FormatDate(now); got != "10/03/2026" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "—" {
		t.Fatalf("zero date = %q", got)
	}
	if got := FormatRelative(now.Add(-72 * time.Hour)); got != "3 days ago" {
		t.Fatalf("FormatRelative = %q", got)
	}
}

func TestTruncateCell(t *testing.T) {
	if got := truncateCell("Steel pipe DN50", 8); got != "Steel p…" {
		t.Fatalf("got %q", got)
	}
	if got := truncateCell("Bolt", 8); got != "Bolt" {
		t.Fatalf("got %q", got)
	}
}
