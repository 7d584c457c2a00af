package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"quotedesk/internal/ui/theme"
)

// helpSection groups key bindings for the help overlay.
type helpSection struct {
	title string
	rows  [][]string
}

func helpRow(b key.Binding) []string {
	return []string{b.Help().Key, b.Help().Desc}
}

// getHelpSections derives the help text from the key map.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "LIST",
			rows: [][]string{
				helpRow(keys.Up),
				helpRow(keys.Home),
				helpRow(keys.End),
				helpRow(keys.NextPage),
				helpRow(keys.PrevPage),
				helpRow(keys.Enter),
				helpRow(keys.Copy),
			},
		},
		{
			title: "FILTERS",
			rows: [][]string{
				helpRow(keys.Search),
				helpRow(keys.Tab),
				helpRow(keys.BackTab),
				{"⏎  Space", "Select option"},
				helpRow(keys.Clear),
			},
		},
		{
			title: "GENERAL",
			rows: [][]string{
				helpRow(keys.Back),
				helpRow(keys.Refresh),
				helpRow(keys.Theme),
				helpRow(keys.Help),
				helpRow(keys.Quit),
			},
		},
	}
}

// renderHelpOverlay builds the bordered help block. The caller positions it.
func renderHelpOverlay(keys KeyMap, width, height int) string {
	sections := getHelpSections(keys)
	left := renderHelpSectionTable(sections[0])
	right := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSectionTable(sections[1]),
		"",
		renderHelpSectionTable(sections[2]),
	)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	p := theme.Current()
	title := lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Render("✦ QUOTEDESK HELP ✦")
	divider := lipgloss.NewStyle().Foreground(p.Border).Render(strings.Repeat("─", max(lipgloss.Width(columns), 40)))
	footer := styleMuted().Render("Press ? or Esc to close")

	content := lipgloss.JoinVertical(lipgloss.Center, title, divider, "", columns, "", footer)
	overlay := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderFocus).
		Padding(1, 2).
		MaxWidth(width).
		MaxHeight(height).
		Render(content)
	return overlay
}

func renderHelpSectionTable(section helpSection) string {
	p := theme.Current()
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Width(14)
			}
			return styleText()
		}).
		Rows(section.rows...)

	header := styleSectionHeader().Render(section.title)
	underline := lipgloss.NewStyle().Foreground(p.Border).Render(strings.Repeat("─", len(section.title)))
	return lipgloss.JoinVertical(lipgloss.Left, header, underline, strings.TrimPrefix(t.String(), "\n"))
}
