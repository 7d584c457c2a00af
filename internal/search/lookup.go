package search

import (
	"context"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quotedesk/internal/api"
	"quotedesk/internal/config"
	"quotedesk/internal/debug"
	"quotedesk/internal/domain"
	appErrors "quotedesk/internal/errors"
)

var lookupLog = debug.Scope("lookup")

// ReferenceSource is the backend surface used by the project and supplier
// selectors. api.Client satisfies it.
type ReferenceSource interface {
	SearchProjects(ctx context.Context, params api.SearchParams) ([]domain.ReferenceOption, error)
	SearchSuppliers(ctx context.Context, params api.SearchParams) ([]domain.ReferenceOption, error)
}

// lookupSession is the per-entity state of one selector's search stream.
type lookupSession struct {
	keyword    string
	generation uint64
	pending    *Timer
	options    []domain.ReferenceOption
	failures   int
}

// LookupService runs debounced, cancellable searches for the reference
// entities. The newest keystroke of an entity always wins: earlier timers are
// stopped and earlier responses are dropped by generation.
type LookupService struct {
	source   ReferenceSource
	clock    Clock
	debounce time.Duration
	pageSize int
	sessions map[domain.EntityType]*lookupSession
}

// LookupOption configures a LookupService.
type LookupOption func(*LookupService)

// WithLookupClock overrides the timer source.
func WithLookupClock(c Clock) LookupOption {
	return func(s *LookupService) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLookupDebounce overrides the quiet period.
func WithLookupDebounce(d time.Duration) LookupOption {
	return func(s *LookupService) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithLookupPageSize overrides the page size requested from the backend.
func WithLookupPageSize(n int) LookupOption {
	return func(s *LookupService) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewLookupService constructs a service reading against source.
func NewLookupService(source ReferenceSource, opts ...LookupOption) *LookupService {
	s := &LookupService{
		source:   source,
		clock:    SystemClock,
		debounce: config.DefaultDebounce,
		pageSize: config.DefaultLookupPageSize,
		sessions: make(map[domain.EntityType]*lookupSession, len(domain.EntityTypes)),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, entity := range domain.EntityTypes {
		s.sessions[entity] = &lookupSession{}
	}
	s.sessions[domain.EntityState].options = domain.StatusOptions()
	return s
}

func (s *LookupService) session(entity domain.EntityType) *lookupSession {
	sess, ok := s.sessions[entity]
	if !ok {
		sess = &lookupSession{}
		s.sessions[entity] = sess
	}
	return sess
}

// Search records a keystroke for entity. For projects and suppliers it
// restarts the debounce timer and returns the command that will deliver
// LookupDueMsg. The state enumeration is filtered locally and applied at
// once, so it returns nil.
func (s *LookupService) Search(entity domain.EntityType, keyword string) tea.Cmd {
	sess := s.session(entity)
	sess.pending.Stop()
	sess.pending = nil
	sess.generation++
	sess.keyword = keyword

	if entity == domain.EntityState {
		sess.options = domain.MatchStatusOptions(keyword)
		return nil
	}

	gen := sess.generation
	timer, cmd := Debounce(s.clock, s.debounce, func() tea.Msg {
		return LookupDueMsg{Entity: entity, Generation: gen}
	})
	sess.pending = timer
	return cmd
}

// Prime issues an immediate empty-keyword search for every backend entity
// whose option list has never been filled. Used on mount.
func (s *LookupService) Prime() tea.Cmd {
	var cmds []tea.Cmd
	for _, entity := range domain.EntityTypes {
		if entity == domain.EntityState {
			continue
		}
		if cmd := s.Open(entity); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Open is called when a selector gains focus. With no prior keyword and no
// options it fetches the default first page without waiting.
func (s *LookupService) Open(entity domain.EntityType) tea.Cmd {
	if entity == domain.EntityState {
		return nil
	}
	sess := s.session(entity)
	if sess.keyword != "" || len(sess.options) > 0 || sess.pending != nil {
		return nil
	}
	sess.generation++
	return s.fetch(entity, sess.generation, "")
}

// HandleDue turns a settled timer into the backend call. Stale timers yield
// nil.
func (s *LookupService) HandleDue(msg LookupDueMsg) tea.Cmd {
	sess := s.session(msg.Entity)
	if msg.Generation != sess.generation {
		lookupLog.Logf("%s: dropping stale timer gen=%d current=%d", msg.Entity, msg.Generation, sess.generation)
		return nil
	}
	sess.pending = nil
	return s.fetch(msg.Entity, msg.Generation, sess.keyword)
}

func (s *LookupService) fetch(entity domain.EntityType, gen uint64, keyword string) tea.Cmd {
	source := s.source
	params := api.SearchParams{Keyword: strings.TrimSpace(keyword), Page: 0, Size: s.pageSize}
	return func() tea.Msg {
		var (
			opts []domain.ReferenceOption
			err  error
		)
		ctx := context.Background()
		switch entity {
		case domain.EntityProject:
			opts, err = source.SearchProjects(ctx, params)
		case domain.EntitySupplier:
			opts, err = source.SearchSuppliers(ctx, params)
		default:
			opts = domain.MatchStatusOptions(keyword)
		}
		if err != nil {
			err = appErrors.New(appErrors.CodeLookupFailed, "search "+entity.String()+": "+err.Error(), err)
		}
		return LookupResultMsg{Entity: entity, Generation: gen, Keyword: keyword, Options: opts, Err: err}
	}
}

// HandleResult applies a lookup response if it belongs to the current
// generation and reports whether it did. Failures keep the previous options.
func (s *LookupService) HandleResult(msg LookupResultMsg) bool {
	sess := s.session(msg.Entity)
	if msg.Generation != sess.generation {
		lookupLog.Logf("%s: dropping stale result gen=%d current=%d keyword=%q", msg.Entity, msg.Generation, sess.generation, msg.Keyword)
		return false
	}
	if msg.Err != nil {
		sess.failures++
		lookupLog.Logf("%s: lookup failed keyword=%q: %v", msg.Entity, msg.Keyword, msg.Err)
		return false
	}
	sess.options = slices.Clone(msg.Options)
	if sess.options == nil {
		sess.options = []domain.ReferenceOption{}
	}
	return true
}

// Options returns the current option list for entity.
func (s *LookupService) Options(entity domain.EntityType) []domain.ReferenceOption {
	return slices.Clone(s.session(entity).options)
}

// Keyword returns the last keyword typed for entity.
func (s *LookupService) Keyword(entity domain.EntityType) string {
	return s.session(entity).keyword
}

// Generation exposes the current generation of entity.
func (s *LookupService) Generation(entity domain.EntityType) uint64 {
	return s.session(entity).generation
}

// Pending reports whether a debounce timer is armed for entity.
func (s *LookupService) Pending(entity domain.EntityType) bool {
	return s.session(entity).pending != nil
}

// Failures counts the lookup failures recorded for entity.
func (s *LookupService) Failures(entity domain.EntityType) int {
	return s.session(entity).failures
}

// Stop cancels every pending timer.
func (s *LookupService) Stop() {
	for _, sess := range s.sessions {
		sess.pending.Stop()
		sess.pending = nil
	}
}
