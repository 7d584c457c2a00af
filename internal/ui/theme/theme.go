// Package theme provides the semantic color palettes of the quotation screen.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette is a set of semantic colors. Every entry is adaptive so the same
// palette works on light and dark terminals.
type Palette struct {
	Primary   lipgloss.AdaptiveColor // focused borders, header
	Secondary lipgloss.AdaptiveColor // field labels
	Accent    lipgloss.AdaptiveColor // codes, titles

	Error   lipgloss.AdaptiveColor // rejected, failures
	Warning lipgloss.AdaptiveColor // overdue, submitted
	Success lipgloss.AdaptiveColor // approved
	Info    lipgloss.AdaptiveColor

	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor
	TextBold  lipgloss.AdaptiveColor

	Background lipgloss.AdaptiveColor
	Surface    lipgloss.AdaptiveColor // selected rows, toasts
	Sunken     lipgloss.AdaptiveColor // chips, badges

	Border      lipgloss.AdaptiveColor
	BorderFocus lipgloss.AdaptiveColor
}

func c(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}

var tokyoNight = Palette{
	Primary:     c("#82aaff", "#2e7de9"),
	Secondary:   c("#c099ff", "#9854f1"),
	Accent:      c("#ff966c", "#b15c00"),
	Error:       c("#ff757f", "#f52a65"),
	Warning:     c("#ffc777", "#8c6c3e"),
	Success:     c("#c3e88d", "#587539"),
	Info:        c("#7dcfff", "#0db9d7"),
	Text:        c("#c8d3f5", "#3760bf"),
	TextMuted:   c("#636da6", "#848cb5"),
	TextBold:    c("#ffc777", "#8c6c3e"),
	Background:  c("#222436", "#e1e2e7"),
	Surface:     c("#2f334d", "#c8c9ce"),
	Sunken:      c("#1e2030", "#d5d6db"),
	Border:      c("#3b4261", "#a8aecb"),
	BorderFocus: c("#82aaff", "#2e7de9"),
}

var gruvbox = Palette{
	Primary:     c("#83a598", "#076678"),
	Secondary:   c("#d3869b", "#8f3f71"),
	Accent:      c("#fabd2f", "#b57614"),
	Error:       c("#fb4934", "#9d0006"),
	Warning:     c("#fe8019", "#af3a03"),
	Success:     c("#b8bb26", "#79740e"),
	Info:        c("#83a598", "#076678"),
	Text:        c("#ebdbb2", "#3c3836"),
	TextMuted:   c("#a89984", "#7c6f64"),
	TextBold:    c("#fabd2f", "#b57614"),
	Background:  c("#282828", "#fbf1c7"),
	Surface:     c("#504945", "#ebdbb2"),
	Sunken:      c("#1d2021", "#d5c4a1"),
	Border:      c("#504945", "#bdae93"),
	BorderFocus: c("#83a598", "#076678"),
}

// https://www.nordtheme.com/docs/colors-and-palettes
var nord = Palette{
	Primary:     c("#88C0D0", "#5E81AC"),
	Secondary:   c("#81A1C1", "#81A1C1"),
	Accent:      c("#8FBCBB", "#8FBCBB"),
	Error:       c("#BF616A", "#BF616A"),
	Warning:     c("#EBCB8B", "#D08770"),
	Success:     c("#A3BE8C", "#A3BE8C"),
	Info:        c("#88C0D0", "#5E81AC"),
	Text:        c("#ECEFF4", "#2E3440"),
	TextMuted:   c("#4C566A", "#4C566A"),
	TextBold:    c("#EBCB8B", "#D08770"),
	Background:  c("#2E3440", "#ECEFF4"),
	Surface:     c("#3B4252", "#E5E9F0"),
	Sunken:      c("#2E3440", "#D8DEE9"),
	Border:      c("#434C5E", "#D8DEE9"),
	BorderFocus: c("#88C0D0", "#5E81AC"),
}

func init() {
	Register("tokyonight", tokyoNight)
	Register("gruvbox", gruvbox)
	Register("nord", nord)
}
