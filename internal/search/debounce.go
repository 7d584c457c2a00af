// Package search owns the filter state of the quotation screen: the
// debounced reference lookups that feed the selectors, the immutable filter
// criteria, and the primary list query with its view mode.
//
// Everything here is driven from a single Bubble Tea Update loop. Network
// calls and timers run inside tea.Cmd goroutines and report back through
// messages; a generation counter on every request stream decides whether a
// late message is still relevant.
package search

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Clock abstracts the timer source so debounce can be driven by tests.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock is the wall-clock implementation.
var SystemClock Clock = realClock{}

// Timer is the handle of one pending debounce. Stopping it makes the
// associated command return nil instead of its message.
type Timer struct {
	cancel context.CancelFunc
}

// Stop cancels the pending fire. Safe on nil and after firing.
func (t *Timer) Stop() {
	if t != nil && t.cancel != nil {
		t.cancel()
	}
}

// Debounce returns a handle and a command that yields fire() once d elapses,
// unless the handle is stopped first.
func Debounce(clock Clock, d time.Duration, fire func() tea.Msg) (*Timer, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	timer := &Timer{cancel: cancel}
	cmd := func() tea.Msg {
		defer cancel()
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-clock.After(d):
			// A stop racing the deadline still wins.
			if ctx.Err() != nil {
				return nil
			}
			return fire()
		}
	}
	return timer, cmd
}
