// Demo program to try the project selector against a slow, jittery backend.
// Responses arrive out of order; only the newest keystroke's options show.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quotedesk/internal/api"
	"quotedesk/internal/domain"
	"quotedesk/internal/search"
	"quotedesk/internal/ui"
)

var demoProjects = []domain.ReferenceOption{
	{ID: "p-1", Label: "PRJ-HN01 · Hanoi Metro Line 3"},
	{ID: "p-2", Label: "PRJ-DN02 · Da Nang Riverside Towers"},
	{ID: "p-3", Label: "PRJ-SG03 · Saigon Logistics Hub"},
	{ID: "p-4", Label: "PRJ-HP04 · Hai Phong Port Expansion"},
	{ID: "p-5", Label: "PRJ-HN05 · Hanoi Ring Road 4"},
	{ID: "p-6", Label: "PRJ-CT06 · Can Tho Water Plant"},
}

// slowSource answers after a random 50-900ms delay.
type slowSource struct{}

func (slowSource) SearchProjects(ctx context.Context, p api.SearchParams) ([]domain.ReferenceOption, error) {
	select {
	case <-time.After(time.Duration(50+rand.IntN(850)) * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	kw := strings.ToLower(p.Keyword)
	var out []domain.ReferenceOption
	for _, o := range demoProjects {
		if strings.Contains(strings.ToLower(o.Label), kw) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (slowSource) SearchSuppliers(context.Context, api.SearchParams) ([]domain.ReferenceOption, error) {
	return nil, nil
}

type model struct {
	lookup   *search.LookupService
	combo    ui.ComboBox
	selected []string
	dropped  int
	quit     bool
}

func initialModel() model {
	cb := ui.NewComboBox(domain.EntityProject, false).WithWidth(44)
	cb.Focus()
	return model{
		lookup: search.NewLookupService(slowSource{}),
		combo:  cb,
	}
}

func (m model) Init() tea.Cmd {
	return m.lookup.Open(domain.EntityProject)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.combo.IsOpen() {
				m.quit = true
				m.lookup.Stop()
				return m, tea.Quit
			}
		}
	case ui.ComboBoxInputMsg:
		cmd := m.lookup.Search(msg.Entity, msg.Text)
		return m, cmd
	case ui.ComboBoxSelectedMsg:
		m.selected = msg.IDs
		return m, nil
	case search.LookupDueMsg:
		return m, m.lookup.HandleDue(msg)
	case search.LookupResultMsg:
		if m.lookup.HandleResult(msg) {
			m.combo.SetOptions(m.lookup.Options(msg.Entity))
		} else {
			m.dropped++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.combo, cmd = m.combo.Update(msg)
	return m, cmd
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
)

func (m model) View() string {
	if m.quit {
		return ""
	}

	s := titleStyle.Render("Project Selector Demo")
	s += "\n\n"
	s += m.combo.View()
	if dd := m.combo.DropdownView(); dd != "" {
		s += "\n" + dd
	}
	s += "\n\n"

	if len(m.selected) > 0 {
		s += "Selected: " + selectedStyle.Render(strings.Join(m.selected, ", ")) + "\n"
	}
	s += fmt.Sprintf("generation %d · stale responses dropped %d\n",
		m.lookup.Generation(domain.EntityProject), m.dropped)

	s += helpStyle.Render("\ntype to search • ↓ open • Enter select • Esc close • q quit")
	return s
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
