package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"quotedesk/internal/config"
	"quotedesk/internal/search"
	"quotedesk/internal/session"
	"quotedesk/internal/ui/theme"
)

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}
	if m.controller.Mode() == search.ViewDetail {
		return m.handleDetailKey(msg)
	}
	switch m.focus {
	case FocusKeyword:
		return m, m.handleKeywordKey(msg)
	case FocusState, FocusProject, FocusSupplier:
		return m, m.handleSelectorKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m *App) quit() (tea.Model, tea.Cmd) {
	m.lookup.Stop()
	m.controller.Stop()
	return m, tea.Quit
}

func (m *App) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := len(m.controller.Rows())
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, rows)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, rows)
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-rows, rows)
	case key.Matches(msg, m.keys.End):
		m.moveCursor(rows, rows)
	case key.Matches(msg, m.keys.NextPage):
		if cmd := m.controller.NextPage(); cmd != nil {
			m.cursor, m.offset = 0, 0
			return m, cmd
		}
	case key.Matches(msg, m.keys.PrevPage):
		if cmd := m.controller.PrevPage(); cmd != nil {
			m.cursor, m.offset = 0, 0
			return m, cmd
		}
	case key.Matches(msg, m.keys.Enter):
		return m, m.openDetail()
	case key.Matches(msg, m.keys.Search):
		return m, m.setFocus(FocusKeyword)
	case key.Matches(msg, m.keys.Tab):
		return m, m.cycleFocus(1)
	case key.Matches(msg, m.keys.BackTab):
		return m, m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.controller.Reload()
	case key.Matches(msg, m.keys.Clear):
		return m, m.clearFilters()
	case key.Matches(msg, m.keys.Copy):
		if row, ok := m.selectedRow(); ok {
			return m, m.copyCode(row.Code)
		}
	case key.Matches(msg, m.keys.Theme):
		name := theme.Cycle()
		if err := config.SaveTheme(name); err != nil {
			uiLog.Logf("save theme %s: %v", name, err)
		}
		m.refreshDetailContent()
	}
	return m, nil
}

func (m *App) moveCursor(delta, rows int) {
	if rows == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), rows-1)
	m.offset = scrollOffset(m.cursor, m.offset, m.visibleRows())
}

// openDetail opens the row under the cursor when the session allows it.
func (m *App) openDetail() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	cmd := m.controller.OpenDetail(row)
	if cmd == nil {
		if m.controller.Authorization() == session.AuthorizationDenied {
			m.errorToast = newErrorToast("Only the owner may open quotations", errNotOwner, timeNow())
			return scheduleToastTick()
		}
		return nil
	}
	m.viewport.GotoTop()
	m.refreshDetailContent()
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.controller.CloseDetail()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if row, ok := m.controller.Selected(); ok {
			return m, m.copyCode(row.Code)
		}
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *App) handleKeywordKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter":
		return m.setFocus(FocusTable)
	case "tab":
		return m.cycleFocus(1)
	case "shift+tab":
		return m.cycleFocus(-1)
	}
	var cmd tea.Cmd
	m.keyword, cmd = m.keyword.Update(msg)
	if !m.store.SetKeyword(m.keyword.Value()) {
		return cmd
	}
	return tea.Batch(cmd, m.criteriaChanged())
}

func (m *App) handleSelectorKey(msg tea.KeyMsg) tea.Cmd {
	entity := focusEntity(m.focus)
	box := m.selector[entity]
	switch msg.String() {
	case "tab":
		return m.cycleFocus(1)
	case "shift+tab":
		return m.cycleFocus(-1)
	case "esc":
		if !box.IsOpen() {
			return m.setFocus(FocusTable)
		}
	}
	next, cmd := box.Update(msg)
	m.selector[entity] = &next
	return cmd
}

// setFocus moves keyboard input to f. Focusing a backend selector fetches its
// first page when nothing has been loaded yet.
func (m *App) setFocus(f FocusArea) tea.Cmd {
	m.keyword.Blur()
	for _, box := range m.selector {
		box.Blur()
	}
	m.focus = f
	switch f {
	case FocusKeyword:
		return m.keyword.Focus()
	case FocusState, FocusProject, FocusSupplier:
		entity := focusEntity(f)
		return tea.Batch(m.selector[entity].Focus(), m.lookup.Open(entity))
	}
	return nil
}

func (m *App) cycleFocus(delta int) tea.Cmd {
	idx := 0
	for i, f := range focusOrder {
		if f == m.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(focusOrder)) % len(focusOrder)
	return m.setFocus(focusOrder[idx])
}

// clearFilters drops every filter, including the text typed into the inputs.
// Selectors whose lookup was narrowed by a keyword go back to the default
// page.
func (m *App) clearFilters() tea.Cmd {
	m.keyword.SetValue("")
	var cmds []tea.Cmd
	for entity, box := range m.selector {
		box.ClearSelection()
		if m.store.LookupKeyword(entity) != "" {
			cmds = append(cmds, m.store.SetLookupKeyword(entity, ""))
			m.syncSelectorOptions(entity)
		}
	}
	if m.store.Clear() {
		cmds = append(cmds, m.criteriaChanged())
	}
	return tea.Batch(cmds...)
}
