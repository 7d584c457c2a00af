package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quotedesk/internal/domain"
	"quotedesk/internal/ui/theme"
)

// ComboBoxInputMsg reports that the text typed into a selector changed.
type ComboBoxInputMsg struct {
	Entity domain.EntityType
	Text   string
}

// ComboBoxSelectedMsg reports the committed selection of a selector. A
// single-select box sends zero or one id.
type ComboBoxSelectedMsg struct {
	Entity domain.EntityType
	IDs    []string
}

// ComboBox is an autocomplete selector over reference options. The option
// list is owned by the lookup service: the box only displays what it is given
// and reports keystrokes and selections as messages.
type ComboBox struct {
	Entity     domain.EntityType
	Multi      bool
	Width      int
	MaxVisible int

	input     textinput.Model
	options   []domain.ReferenceOption
	selected  []domain.ReferenceOption
	open      bool
	highlight int
	scroll    int
	focused   bool
}

// NewComboBox creates a closed, unfocused selector for entity.
func NewComboBox(entity domain.EntityType, multi bool) ComboBox {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Prompt = ""
	ti.Placeholder = "Search " + strings.ToLower(entity.Title()) + "..."
	ti.Cursor.SetMode(cursor.CursorStatic)
	c := ComboBox{
		Entity:     entity,
		Multi:      multi,
		Width:      28,
		MaxVisible: 6,
		input:      ti,
	}
	c.input.Width = c.Width - 4
	return c
}

// WithWidth sets the display width.
func (c ComboBox) WithWidth(w int) ComboBox {
	c.Width = max(w, 8)
	c.input.Width = c.Width - 4
	return c
}

// Update handles keys while focused.
func (c ComboBox) Update(msg tea.Msg) (ComboBox, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !c.focused {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	switch keyMsg.String() {
	case "down", "ctrl+n":
		c.open = true
		c.moveHighlight(1)
		return c, nil
	case "up", "ctrl+p":
		c.open = true
		c.moveHighlight(-1)
		return c, nil
	case "enter", " ":
		if keyMsg.String() == " " && !c.open {
			break
		}
		return c.commitHighlighted()
	case "esc":
		c.open = false
		return c, nil
	case "backspace":
		if c.input.Value() == "" && len(c.selected) > 0 {
			c.selected = slices.Clone(c.selected[:len(c.selected)-1])
			return c, c.selectionCmd()
		}
	}

	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if after := c.input.Value(); after != before {
		c.open = true
		c.highlight, c.scroll = 0, 0
		entity := c.Entity
		return c, tea.Batch(cmd, func() tea.Msg { return ComboBoxInputMsg{Entity: entity, Text: after} })
	}
	return c, cmd
}

func (c *ComboBox) moveHighlight(delta int) {
	if len(c.options) == 0 {
		c.highlight = 0
		return
	}
	c.highlight = (c.highlight + delta + len(c.options)) % len(c.options)
	c.adjustScroll()
}

func (c *ComboBox) adjustScroll() {
	if c.MaxVisible <= 0 {
		return
	}
	if c.highlight < c.scroll {
		c.scroll = c.highlight
	}
	if c.highlight >= c.scroll+c.MaxVisible {
		c.scroll = c.highlight - c.MaxVisible + 1
	}
}

func (c ComboBox) commitHighlighted() (ComboBox, tea.Cmd) {
	if !c.open || len(c.options) == 0 {
		c.open = true
		return c, nil
	}
	opt := c.options[min(c.highlight, len(c.options)-1)]
	if c.Multi {
		c.selected = slices.Clone(c.selected)
		if idx := slices.IndexFunc(c.selected, func(o domain.ReferenceOption) bool { return o.ID == opt.ID }); idx >= 0 {
			c.selected = slices.Delete(c.selected, idx, idx+1)
		} else {
			c.selected = append(c.selected, opt)
		}
		return c, c.selectionCmd()
	}
	c.selected = []domain.ReferenceOption{opt}
	c.open = false
	return c, c.selectionCmd()
}

func (c ComboBox) selectionCmd() tea.Cmd {
	msg := ComboBoxSelectedMsg{Entity: c.Entity, IDs: c.SelectedIDs()}
	return func() tea.Msg { return msg }
}

// SetOptions replaces the displayed options, keeping the highlight in range.
func (c *ComboBox) SetOptions(opts []domain.ReferenceOption) {
	c.options = opts
	if c.highlight >= len(opts) {
		c.highlight = max(len(opts)-1, 0)
	}
	c.adjustScroll()
}

// Options returns the displayed options.
func (c ComboBox) Options() []domain.ReferenceOption { return c.options }

// SelectedIDs returns the ids of the committed selection.
func (c ComboBox) SelectedIDs() []string {
	ids := make([]string, 0, len(c.selected))
	for _, o := range c.selected {
		ids = append(ids, o.ID)
	}
	return ids
}

// ClearSelection drops the committed selection and the typed text without
// emitting messages.
func (c *ComboBox) ClearSelection() {
	c.selected = nil
	c.input.SetValue("")
	c.open = false
}

// InputValue is the typed keyword.
func (c ComboBox) InputValue() string { return c.input.Value() }

// Focus gives the box keyboard input.
func (c *ComboBox) Focus() tea.Cmd {
	c.focused = true
	return c.input.Focus()
}

// Blur removes focus and closes the dropdown.
func (c *ComboBox) Blur() {
	c.focused = false
	c.open = false
	c.input.Blur()
}

// Focused reports keyboard focus.
func (c ComboBox) Focused() bool { return c.focused }

// IsOpen reports whether the dropdown is shown.
func (c ComboBox) IsOpen() bool { return c.open }

// View renders the title, the selection chips and the input line. The
// dropdown is drawn separately by DropdownView so it can float over the
// content below.
func (c ComboBox) View() string {
	p := theme.Current()
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Width(c.Width - 2)
	if c.focused {
		border = border.BorderForeground(p.BorderFocus)
	}

	title := styleField().Render(c.Entity.Title())
	var chips []string
	for _, o := range c.selected {
		chips = append(chips, styleChip().Render(truncateCell(o.Label, c.Width-6)))
	}
	body := c.input.View()
	if len(chips) > 0 {
		body = strings.Join(chips, " ") + "\n" + body
	}
	return title + "\n" + border.Render(body)
}

// DropdownView renders the option list, or "" when the dropdown is closed.
func (c ComboBox) DropdownView() string {
	if !c.open || !c.focused {
		return ""
	}
	p := theme.Current()
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.BorderFocus).
		Background(p.Background).
		Render(c.renderDropdown())
}

func (c ComboBox) renderDropdown() string {
	if len(c.options) == 0 {
		return styleMuted().Italic(true).Render("  No matches")
	}
	end := min(c.scroll+c.MaxVisible, len(c.options))
	lines := make([]string, 0, end-c.scroll)
	for i := c.scroll; i < end; i++ {
		opt := c.options[i]
		mark := "  "
		if c.Multi && slices.ContainsFunc(c.selected, func(o domain.ReferenceOption) bool { return o.ID == opt.ID }) {
			mark = "✓ "
		}
		label := truncateCell(mark+opt.Label, c.Width-2)
		if i == c.highlight {
			lines = append(lines, styleSelectedRow().Width(c.Width-2).Render(label))
		} else {
			lines = append(lines, styleText().Render(label))
		}
	}
	if len(c.options) > end {
		lines = append(lines, styleMuted().Render("  …"))
	}
	return strings.Join(lines, "\n")
}
