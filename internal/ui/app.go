package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"quotedesk/internal/api"
	"quotedesk/internal/debug"
	"quotedesk/internal/domain"
	appErrors "quotedesk/internal/errors"
	"quotedesk/internal/search"
	"quotedesk/internal/session"
)

const (
	minWidth  = 40
	minHeight = 12
	// filterBarHeight is the number of lines reserved above the table.
	filterBarHeight = 5
)

var uiLog = debug.Scope("ui")

var errNotOwner = appErrors.New(appErrors.CodeUnauthorized, "quotation details require the owner role", nil)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// FocusArea is the component receiving keys.
type FocusArea int

const (
	FocusTable FocusArea = iota
	FocusKeyword
	FocusState
	FocusProject
	FocusSupplier
)

// focusOrder is the tab order of the screen.
var focusOrder = []FocusArea{FocusTable, FocusKeyword, FocusState, FocusProject, FocusSupplier}

// Config configures the UI application.
type Config struct {
	Client         api.Client
	Resolver       session.Resolver
	RequiredRole   string
	LookupDebounce time.Duration
	ListDebounce   time.Duration
	LookupPageSize int
	ListPageSize   int
	Clock          search.Clock
	NotesStyle     string
	Version        string
}

// authResolvedMsg carries the outcome of the permission check.
type authResolvedMsg struct {
	identity session.Identity
	auth     session.Authorization
	err      error
}

// copyResultMsg reports the clipboard write.
type copyResultMsg struct {
	code string
	err  error
}

// App is the Bubble Tea model of the quotation list screen.
type App struct {
	store      *search.FilterStateStore
	lookup     *search.LookupService
	controller *search.ListQueryController
	resolver   session.Resolver
	role       string
	identity   session.Identity

	keys     KeyMap
	keyword  textinput.Model
	selector map[domain.EntityType]*ComboBox
	viewport viewport.Model
	spinner  spinner.Model
	focus    FocusArea

	cursor     int
	offset     int
	width      int
	height     int
	ready      bool
	showHelp   bool
	notesStyle string
	version    string

	errorToast *toast
	copyToast  *toast
}

// NewApp wires the lookup service, filter store and list controller around
// cfg.Client.
func NewApp(cfg Config) *App {
	clock := cfg.Clock
	if clock == nil {
		clock = search.SystemClock
	}
	lookup := search.NewLookupService(cfg.Client,
		search.WithLookupClock(clock),
		search.WithLookupDebounce(cfg.LookupDebounce),
		search.WithLookupPageSize(cfg.LookupPageSize),
	)
	controller := search.NewListQueryController(cfg.Client,
		search.WithQueryClock(clock),
		search.WithKeywordDebounce(cfg.ListDebounce),
		search.WithListPageSize(cfg.ListPageSize),
	)
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = session.StaticResolver{}
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Keyword (code, title)…"
	ti.CharLimit = 120
	ti.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	state := NewComboBox(domain.EntityState, true)
	project := NewComboBox(domain.EntityProject, false)
	supplier := NewComboBox(domain.EntitySupplier, false)
	state.SetOptions(lookup.Options(domain.EntityState))

	return &App{
		store:      search.NewFilterStateStore(lookup),
		lookup:     lookup,
		controller: controller,
		resolver:   resolver,
		role:       cfg.RequiredRole,
		keys:       DefaultKeyMap(),
		keyword:    ti,
		selector: map[domain.EntityType]*ComboBox{
			domain.EntityState:    &state,
			domain.EntityProject:  &project,
			domain.EntitySupplier: &supplier,
		},
		spinner:    sp,
		focus:      FocusTable,
		notesStyle: cfg.NotesStyle,
		version:    cfg.Version,
	}
}

// Init resolves the session, primes the selectors and issues the first
// query.
func (m *App) Init() tea.Cmd {
	return tea.Batch(
		m.resolveAuth(),
		m.lookup.Prime(),
		m.controller.Load(m.store.Criteria()),
		m.spinner.Tick,
	)
}

func (m *App) resolveAuth() tea.Cmd {
	resolver, role := m.resolver, m.role
	return func() tea.Msg {
		id, err := resolver.Resolve(context.Background())
		return authResolvedMsg{identity: id, auth: session.Authorize(id, err, role), err: err}
	}
}

func (m *App) copyCode(code string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{code: code, err: copyToClipboard(code)}
	}
}

// Store exposes the filter state.
func (m *App) Store() *search.FilterStateStore { return m.store }

// Controller exposes the list controller.
func (m *App) Controller() *search.ListQueryController { return m.controller }

// Focus returns the focused area.
func (m *App) Focus() FocusArea { return m.focus }

// selectedRow returns the row under the cursor.
func (m *App) selectedRow() (domain.QuotationSummary, bool) {
	rows := m.controller.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return domain.QuotationSummary{}, false
	}
	return rows[m.cursor], true
}

func (m *App) bodyHeight() int {
	return max(m.height-filterBarHeight-2, 3)
}

func (m *App) syncSelectorOptions(entity domain.EntityType) {
	if box, ok := m.selector[entity]; ok {
		box.SetOptions(m.store.Options(entity))
	}
}

func (m *App) refreshDetailContent() {
	row, ok := m.controller.Selected()
	if !ok {
		return
	}
	detail, err := m.controller.Detail()
	width := max(m.viewport.Width-2, 20)
	m.viewport.SetContent(renderDetail(row, detail, err, width, buildMarkdownRenderer(m.notesStyle, width)))
}
