package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"quotedesk/internal/domain"
)

func runKey(t *testing.T, c ComboBox, k tea.KeyMsg) (ComboBox, []tea.Msg) {
	t.Helper()
	c, cmd := c.Update(k)
	return c, collectMsgs(cmd)
}

// collectMsgs runs cmd and flattens batches.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestComboBoxTypingEmitsInput(t *testing.T) {
	c := NewComboBox(domain.EntityProject, false)
	c.Focus()

	c, msgs := runKey(t, c, keyRunes("s"))
	var got []ComboBoxInputMsg
	for _, m := range msgs {
		if in, ok := m.(ComboBoxInputMsg); ok {
			got = append(got, in)
		}
	}
	if diff := cmp.Diff([]ComboBoxInputMsg{{Entity: domain.EntityProject, Text: "s"}}, got); diff != "" {
		t.Fatalf("input msgs mismatch (-want +got):\n%s", diff)
	}
	if !c.IsOpen() {
		t.Fatal("typing should open the dropdown")
	}
}

func TestComboBoxSingleSelect(t *testing.T) {
	c := NewComboBox(domain.EntitySupplier, false)
	c.Focus()
	c.SetOptions([]domain.ReferenceOption{{ID: "s-1", Label: "Hoa Phat"}, {ID: "s-2", Label: "Towa"}})

	c, _ = runKey(t, c, tea.KeyMsg{Type: tea.KeyDown})
	c, msgs := runKey(t, c, tea.KeyMsg{Type: tea.KeyEnter})
	if len(msgs) != 1 {
		t.Fatalf("expected one selection message, got %v", msgs)
	}
	sel := msgs[0].(ComboBoxSelectedMsg)
	if diff := cmp.Diff([]string{"s-2"}, sel.IDs); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if c.IsOpen() {
		t.Fatal("single select closes the dropdown")
	}

	c, msgs = runKey(t, c, tea.KeyMsg{Type: tea.KeyBackspace})
	if sel := msgs[0].(ComboBoxSelectedMsg); len(sel.IDs) != 0 {
		t.Fatalf("backspace on empty input should clear, got %v", sel.IDs)
	}
}

func TestComboBoxMultiToggle(t *testing.T) {
	c := NewComboBox(domain.EntityState, true)
	c.Focus()
	c.SetOptions(domain.StatusOptions())

	c, _ = runKey(t, c, tea.KeyMsg{Type: tea.KeyDown}) // open, highlight APPROVED
	c, _ = runKey(t, c, tea.KeyMsg{Type: tea.KeyUp})   // back to SUBMITTED
	c, _ = runKey(t, c, tea.KeyMsg{Type: tea.KeyEnter})
	c, _ = runKey(t, c, tea.KeyMsg{Type: tea.KeyDown})
	c, msgs := runKey(t, c, tea.KeyMsg{Type: tea.KeyEnter})
	if diff := cmp.Diff([]string{"SUBMITTED", "APPROVED"}, msgs[0].(ComboBoxSelectedMsg).IDs); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if !c.IsOpen() {
		t.Fatal("multi select keeps the dropdown open")
	}

	c, msgs = runKey(t, c, tea.KeyMsg{Type: tea.KeyEnter})
	if diff := cmp.Diff([]string{"SUBMITTED"}, msgs[0].(ComboBoxSelectedMsg).IDs); diff != "" {
		t.Fatalf("toggle off mismatch (-want +got):\n%s", diff)
	}
}

func TestComboBoxIgnoresKeysWhenBlurred(t *testing.T) {
	c := NewComboBox(domain.EntityProject, false)
	c, msgs := runKey(t, c, keyRunes("x"))
	if len(msgs) != 0 || c.InputValue() != "" {
		t.Fatalf("blurred box should ignore keys, got %v", msgs)
	}
}

func TestComboBoxSetOptionsClampsHighlight(t *testing.T) {
	c := NewComboBox(domain.EntityProject, false)
	c.Focus()
	c.SetOptions([]domain.ReferenceOption{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	c, _ = runKey(t, c, tea.KeyMsg{Type: tea.KeyUp}) // wraps to c
	c.SetOptions([]domain.ReferenceOption{{ID: "a"}})
	_, msgs := runKey(t, c, tea.KeyMsg{Type: tea.KeyEnter})
	if diff := cmp.Diff([]string{"a"}, msgs[0].(ComboBoxSelectedMsg).IDs); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}
