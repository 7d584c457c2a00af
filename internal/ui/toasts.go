package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	errorToastDuration = 10 * time.Second
	copyToastDuration  = 4 * time.Second
)

// toastTickInterval is shortened in tests.
var toastTickInterval = time.Second

type toastKind int

const (
	toastError toastKind = iota
	toastCopy
)

// toast is a transient message drawn over the bottom-right of the body.
type toast struct {
	kind     toastKind
	title    string
	body     string
	started  time.Time
	duration time.Duration
}

func (t *toast) visible(now time.Time) bool {
	return t != nil && now.Sub(t.started) < t.duration
}

func (t *toast) remaining(now time.Time) int {
	left := t.duration - now.Sub(t.started)
	return max(int((left+time.Second-1)/time.Second), 0)
}

// toastTickMsg drives the countdown of visible toasts.
type toastTickMsg struct{}

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(time.Time) tea.Msg { return toastTickMsg{} })
}

// render draws the toast with a right-aligned countdown.
func (t *toast) render(now time.Time) string {
	if !t.visible(now) {
		return ""
	}
	countdown := styleMuted().Render(fmt.Sprintf("[%ds]", t.remaining(now)))
	lines := []string{t.title}
	if t.body != "" {
		lines = append(lines, t.body)
	}
	width := max(maxLineWidth(lines), 30)
	pad := max(width-lipgloss.Width(countdown), 0)
	content := strings.Join(lines, "\n") + "\n" + strings.Repeat(" ", pad) + countdown

	if t.kind == toastError {
		return styleErrorToast().Render(content)
	}
	return styleSuccessToast().Render(content)
}

func newErrorToast(title string, err error, now time.Time) *toast {
	return &toast{
		kind:     toastError,
		title:    styleError().Render("⚠ " + title),
		body:     shortError(err.Error(), 70),
		started:  now,
		duration: errorToastDuration,
	}
}

func newCopyToast(code string, now time.Time) *toast {
	return &toast{
		kind:     toastCopy,
		title:    fmt.Sprintf("Copied %s to clipboard.", styleCode().Render(code)),
		started:  now,
		duration: copyToastDuration,
	}
}

// shortError keeps the last wrapped segment of an error chain, which carries
// the most specific cause, and caps its width.
func shortError(msg string, width int) string {
	msg = strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
	if parts := strings.Split(msg, ": "); len(parts) > 2 {
		msg = strings.Join(parts[len(parts)-2:], ": ")
	}
	return truncateCell(msg, width)
}
