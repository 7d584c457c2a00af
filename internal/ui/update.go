package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"quotedesk/internal/domain"
	"quotedesk/internal/search"
)

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case authResolvedMsg:
		m.identity = msg.identity
		m.controller.SetAuthorization(msg.auth)
		if msg.err != nil {
			uiLog.Logf("identity unresolved: %v", msg.err)
		} else {
			uiLog.Logf("identity %s: %s", msg.identity.UserID, msg.auth)
		}
		return m, nil

	case search.LookupDueMsg:
		return m, m.lookup.HandleDue(msg)

	case search.LookupResultMsg:
		if m.lookup.HandleResult(msg) {
			m.syncSelectorOptions(msg.Entity)
		}
		return m, nil

	case search.QueryDueMsg:
		return m, m.controller.HandleDue(msg)

	case search.QueryResultMsg:
		if !m.controller.HandleResult(msg) {
			return m, nil
		}
		m.clampCursor()
		if err := m.controller.TakeNotice(); err != nil {
			m.errorToast = newErrorToast("Could not load quotations", err, timeNow())
			return m, scheduleToastTick()
		}
		return m, nil

	case search.DetailResultMsg:
		if m.controller.HandleDetail(msg) {
			m.refreshDetailContent()
		}
		return m, nil

	case ComboBoxInputMsg:
		cmd := m.store.SetLookupKeyword(msg.Entity, msg.Text)
		m.syncSelectorOptions(msg.Entity)
		return m, cmd

	case ComboBoxSelectedMsg:
		return m, m.applySelection(msg)

	case copyResultMsg:
		if msg.err != nil {
			uiLog.Logf("copy %s failed: %v", msg.code, msg.err)
			m.errorToast = newErrorToast("Could not copy to clipboard", msg.err, timeNow())
		} else {
			m.copyToast = newCopyToast(msg.code, timeNow())
		}
		return m, scheduleToastTick()

	case toastTickMsg:
		now := timeNow()
		if !m.errorToast.visible(now) {
			m.errorToast = nil
		}
		if !m.copyToast.visible(now) {
			m.copyToast = nil
		}
		if m.errorToast == nil && m.copyToast == nil {
			return m, nil
		}
		return m, scheduleToastTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.forwardToFocused(msg)
}

// resize recomputes every size-dependent component.
func (m *App) resize(width, height int) {
	m.width = max(width, minWidth)
	m.height = max(height, minHeight)
	if !m.ready {
		m.viewport = viewport.New(m.width-2, m.bodyHeight()-2)
		m.ready = true
	} else {
		m.viewport.Width = m.width - 2
		m.viewport.Height = m.bodyHeight() - 2
	}
	boxWidth := max((m.width-4)/4, 16)
	m.keyword.Width = boxWidth - 4
	for _, entity := range domain.EntityTypes {
		box := m.selector[entity].WithWidth(boxWidth)
		m.selector[entity] = &box
	}
	m.offset = scrollOffset(m.cursor, m.offset, m.visibleRows())
	if m.controller.Mode() == search.ViewDetail {
		m.refreshDetailContent()
	}
}

// visibleRows is the number of table rows that fit in the body.
func (m *App) visibleRows() int {
	return max(m.bodyHeight()-5, 1)
}

func (m *App) clampCursor() {
	n := len(m.controller.Rows())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.offset = scrollOffset(m.cursor, min(m.offset, m.cursor), m.visibleRows())
}

// applySelection folds a selector commit into the criteria and reacts to the
// change.
func (m *App) applySelection(msg ComboBoxSelectedMsg) tea.Cmd {
	first := ""
	if len(msg.IDs) > 0 {
		first = msg.IDs[0]
	}
	var changed bool
	switch msg.Entity {
	case domain.EntityState:
		codes := make([]domain.Status, 0, len(msg.IDs))
		for _, id := range msg.IDs {
			code, err := domain.ParseStatus(id)
			if err != nil {
				uiLog.Logf("ignoring state %q: %v", id, err)
				continue
			}
			codes = append(codes, code)
		}
		changed = m.store.SetStateCodes(codes)
	case domain.EntityProject:
		changed = m.store.SetProjectID(first)
	case domain.EntitySupplier:
		changed = m.store.SetSupplierID(first)
	}
	if !changed {
		return nil
	}
	return m.criteriaChanged()
}

// criteriaChanged hands the store's criteria to the controller and resets the
// table position.
func (m *App) criteriaChanged() tea.Cmd {
	m.cursor, m.offset = 0, 0
	return m.controller.OnCriteriaChange(m.store.Criteria())
}

// forwardToFocused passes non-key messages such as cursor blinks to the
// focused input.
func (m *App) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case FocusKeyword:
		m.keyword, cmd = m.keyword.Update(msg)
	case FocusState, FocusProject, FocusSupplier:
		entity := focusEntity(m.focus)
		box, c := m.selector[entity].Update(msg)
		m.selector[entity] = &box
		cmd = c
	default:
		if m.controller.Mode() == search.ViewDetail {
			m.viewport, cmd = m.viewport.Update(msg)
		}
	}
	return cmd
}

// focusEntity maps a selector focus area to its entity.
func focusEntity(f FocusArea) domain.EntityType {
	switch f {
	case FocusProject:
		return domain.EntityProject
	case FocusSupplier:
		return domain.EntitySupplier
	default:
		return domain.EntityState
	}
}
