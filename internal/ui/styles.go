package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"quotedesk/internal/domain"
	"quotedesk/internal/ui/theme"
)

// Styles are functions so a theme switch takes effect on the next frame.

func styleAppHeader() lipgloss.Style {
	p := theme.Current()
	return lipgloss.NewStyle().Foreground(p.Background).Background(p.Primary).Bold(true).Padding(0, 1)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted)
}

func styleText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text)
}

func styleCode() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent).Bold(true)
}

func styleSelectedRow() lipgloss.Style {
	p := theme.Current()
	return lipgloss.NewStyle().Background(p.Surface).Foreground(p.TextBold).Bold(true)
}

func styleTableHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary).Bold(true)
}

func stylePane(focused bool) lipgloss.Style {
	p := theme.Current()
	if focused {
		return lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(p.BorderFocus)
	}
	return lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.Border)
}

func styleField() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary).Bold(true).Width(12)
}

func styleSectionHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextBold).Bold(true)
}

func styleChip() lipgloss.Style {
	p := theme.Current()
	return lipgloss.NewStyle().Foreground(p.Text).Background(p.Sunken).Padding(0, 1)
}

func styleErrorToast() lipgloss.Style {
	p := theme.Current()
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Error).Foreground(p.Text).Padding(0, 1)
}

func styleSuccessToast() lipgloss.Style {
	p := theme.Current()
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Success).Foreground(p.Text).Padding(0, 1)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Error).Bold(true)
}

func styleKeyPill() lipgloss.Style {
	p := theme.Current()
	return lipgloss.NewStyle().Background(p.Primary).Foreground(p.Background).Bold(true)
}

// styleStatus colors a quotation status.
func styleStatus(s domain.Status) lipgloss.Style {
	p := theme.Current()
	switch s {
	case domain.StatusApproved:
		return lipgloss.NewStyle().Foreground(p.Success)
	case domain.StatusRejected:
		return lipgloss.NewStyle().Foreground(p.Error)
	case domain.StatusSubmitted:
		return lipgloss.NewStyle().Foreground(p.Warning)
	default:
		return lipgloss.NewStyle().Foreground(p.TextMuted)
	}
}

// buildMarkdownRenderer returns a notes renderer. "plain" or a renderer
// failure falls back to word wrapping.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	switch style {
	case "plain":
		return fallback
	case "", "rich":
		style = "dark"
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
