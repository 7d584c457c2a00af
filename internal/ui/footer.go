package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quotedesk/internal/search"
	"quotedesk/internal/ui/theme"
)

// footerHint is a key hint for the footer bar, shorter than the help text.
type footerHint struct {
	key  string
	desc string
}

var globalFooterHints = []footerHint{
	{"⇥", "Filters"},
	{"r", "Reload"},
	{"q", "Quit"},
	{"?", "Help"},
}

var tableFooterHints = []footerHint{
	{"↑↓", "Navigate"},
	{"⏎", "Detail"},
	{"n/p", "Page"},
	{"y", "Copy"},
	{"/", "Keyword"},
}

var filterFooterHints = []footerHint{
	{"↑↓", "Options"},
	{"⏎", "Select"},
	{"Esc", "Table"},
}

var detailFooterHints = []footerHint{
	{"↑↓", "Scroll"},
	{"y", "Copy"},
	{"Esc", "Back"},
	{"q", "Quit"},
}

func (m *App) renderFooter() string {
	var hints []footerHint
	switch {
	case m.controller.Mode() == search.ViewDetail:
		hints = detailFooterHints
	case m.focus == FocusTable:
		hints = append(append(hints, tableFooterHints...), globalFooterHints...)
	default:
		hints = append(append(hints, filterFooterHints...), globalFooterHints...)
	}

	right := styleMuted().Render("theme " + theme.CurrentName())
	available := m.width - lipgloss.Width(right) - 2
	hints = trimHintsToFit(hints, available)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, "  ")
	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 2)
	return left + strings.Repeat(" ", spacing) + right
}

// trimHintsToFit drops hints from the end until the rest fit in width.
func trimHintsToFit(hints []footerHint, width int) []footerHint {
	for len(hints) > 0 {
		total := 0
		for i, h := range hints {
			if i > 0 {
				total += 2
			}
			total += lipgloss.Width(keyPill(h.key, h.desc))
		}
		if total <= width {
			return hints
		}
		hints = hints[:len(hints)-1]
	}
	return hints
}

func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleMuted().Render(desc)
}
