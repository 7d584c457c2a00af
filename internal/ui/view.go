package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quotedesk/internal/domain"
	"quotedesk/internal/search"
	"quotedesk/internal/session"
)

func (m *App) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	filters := m.renderFilterBar()
	body := m.renderBody()
	footer := m.renderFooter()
	base := lipgloss.JoinVertical(lipgloss.Left, header, filters, body, footer)

	bodyTop := 1 + filterBarHeight
	now := timeNow()
	var layers []Layer
	if m.showHelp {
		help := renderHelpOverlay(m.keys, m.width, m.height)
		w, h := blockDimensions(help)
		layers = append(layers, Layer{X: max((m.width-w)/2, 0), Y: max((m.height-h)/2, 0), Content: help})
	} else if dropdown := m.focusedDropdown(); dropdown.Content != "" {
		layers = append(layers, dropdown)
	}
	layers = append(layers,
		bottomRightLayer(m.errorToast.render(now), m.width, bodyTop, m.bodyHeight()),
	)
	if !m.errorToast.visible(now) {
		layers = append(layers, bottomRightLayer(m.copyToast.render(now), m.width, bodyTop, m.bodyHeight()))
	}
	return composeLayers(base, m.width, m.height, layers...)
}

func (m *App) renderHeader() string {
	title := "QUOTEDESK"
	if m.version != "" {
		title += " " + m.version
	}
	left := styleAppHeader().Render(title) + " " + styleText().Render(m.statusLine())

	var right string
	switch m.controller.Authorization() {
	case session.AuthorizationGranted:
		right = styleMuted().Render("● " + m.identity.UserID)
	case session.AuthorizationDenied:
		who := m.identity.UserID
		if who == "" {
			who = "no identity"
		}
		right = styleError().Render("● " + who + " (read only)")
	default:
		right = styleMuted().Render("○ resolving session")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncateCell(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// statusLine summarizes the current query for the header.
func (m *App) statusLine() string {
	c := m.controller
	switch c.Status() {
	case search.QueryLoading:
		return m.spinner.View() + " loading"
	case search.QueryFailed:
		return styleError().Render("query failed")
	case search.QueryReady:
		line := pageSummary(c.Page(), c.TotalPages(), c.Total())
		if crit := c.Criteria(); !crit.IsEmpty() {
			line += " · " + styleMuted().Render("filtered")
		}
		return line
	}
	return ""
}

func (m *App) renderFilterBar() string {
	boxWidth := max((m.width-4)/4, 16)
	keyword := m.renderKeywordBox(boxWidth)
	parts := []string{keyword}
	for _, entity := range domain.EntityTypes {
		parts = append(parts, m.selector[entity].View())
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, spaced(parts)...)
	return lipgloss.NewStyle().Width(m.width).Height(filterBarHeight).MaxHeight(filterBarHeight).Render(bar)
}

func (m *App) renderKeywordBox(width int) string {
	p := stylePane(m.focus == FocusKeyword).Border(lipgloss.RoundedBorder()).Width(width - 2)
	return styleField().Render("Keyword") + "\n" + p.Render(m.keyword.View())
}

func spaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}

// focusedDropdown positions the open selector's option list under its box.
func (m *App) focusedDropdown() Layer {
	if m.focus != FocusState && m.focus != FocusProject && m.focus != FocusSupplier {
		return Layer{}
	}
	entity := focusEntity(m.focus)
	content := m.selector[entity].DropdownView()
	if content == "" {
		return Layer{}
	}
	boxWidth := max((m.width-4)/4, 16)
	column := 1
	for i, e := range domain.EntityTypes {
		if e == entity {
			column = i + 1
		}
	}
	return Layer{X: column * (boxWidth + 1), Y: 1 + filterBarHeight, Content: content}
}

func (m *App) renderBody() string {
	height := m.bodyHeight()
	if m.controller.Mode() == search.ViewDetail {
		return stylePane(true).Width(m.width - 2).Height(height - 2).Render(m.viewport.View())
	}
	c := m.controller
	view := tableView{
		rows:    c.Rows(),
		status:  c.Status(),
		err:     c.Err(),
		cursor:  m.cursor,
		offset:  m.offset,
		width:   m.width - 2,
		height:  height - 2,
		spinner: m.spinner.View(),
	}
	return stylePane(m.focus == FocusTable).Width(m.width - 2).Height(height - 2).MaxHeight(height).Render(view.Render())
}
