package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"quotedesk/internal/domain"
)

var timeNow = time.Now

// zeroDecimalCurrencies are printed without a fractional part.
var zeroDecimalCurrencies = map[string]bool{"VND": true, "JPY": true, "KRW": true}

// FormatMoney groups thousands and appends the currency code.
func FormatMoney(m domain.Money) string {
	cur := strings.ToUpper(strings.TrimSpace(m.Currency))
	out := formatDecimal(m.Amount, currencyPlaces(cur))
	if cur != "" {
		out += " " + cur
	}
	return out
}

// FormatQuantity prints a quantity with grouping and no trailing zeros.
func FormatQuantity(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 0 {
		places = 0
	}
	return formatDecimal(d, places)
}

func currencyPlaces(cur string) int32 {
	if zeroDecimalCurrencies[cur] {
		return 0
	}
	return 2
}

func formatDecimal(d decimal.Decimal, places int32) string {
	rounded := d.Round(places)
	abs := rounded.Abs()
	whole := abs.Truncate(0)
	out := humanize.Comma(whole.IntPart())
	if places > 0 {
		frac := abs.Sub(whole).Shift(places).IntPart()
		out += fmt.Sprintf(".%0*d", places, frac)
	}
	if rounded.IsNegative() {
		out = "-" + out
	}
	return out
}

// FormatDate renders a compact absolute date for table cells.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	local := t.In(timeNow().Location())
	return local.Format("02/01/2006")
}

// FormatRelative renders a humanized distance from now, e.g. "3 days ago".
func FormatRelative(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, timeNow(), "ago", "from now")
}

// truncateCell shortens s to width display cells with an ellipsis.
func truncateCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
