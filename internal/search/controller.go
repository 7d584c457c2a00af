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
	"quotedesk/internal/session"
)

var queryLog = debug.Scope("query")

// QuotationSource is the backend surface of the primary list. api.Client
// satisfies it.
type QuotationSource interface {
	ListQuotations(ctx context.Context, params api.ListParams) (api.QuotationPage, error)
	GetQuotation(ctx context.Context, id string) (domain.QuotationDetail, error)
}

// QueryStatus is the lifecycle of the primary query.
type QueryStatus int

const (
	QueryIdle QueryStatus = iota
	QueryLoading
	QueryReady
	QueryFailed
)

func (s QueryStatus) String() string {
	switch s {
	case QueryLoading:
		return "loading"
	case QueryReady:
		return "ready"
	case QueryFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ViewMode selects between the list and a single record.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

func (m ViewMode) String() string {
	if m == ViewDetail {
		return "detail"
	}
	return "list"
}

// ListQueryController issues the primary list query and owns its result.
// Each query takes a fresh token; only the response carrying the current
// token is applied.
type ListQueryController struct {
	source   QuotationSource
	clock    Clock
	debounce time.Duration
	pageSize int

	token    uint64
	pending  *Timer
	status   QueryStatus
	criteria domain.FilterCriteria
	rows     []domain.QuotationSummary
	page     int
	total    int
	err      error
	notice   error

	auth        session.Authorization
	mode        ViewMode
	selected    domain.QuotationSummary
	detailToken uint64
	detail      *domain.QuotationDetail
	detailErr   error
}

// ControllerOption configures a ListQueryController.
type ControllerOption func(*ListQueryController)

// WithQueryClock overrides the timer source.
func WithQueryClock(c Clock) ControllerOption {
	return func(l *ListQueryController) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithKeywordDebounce overrides the quiet period applied to keyword edits.
func WithKeywordDebounce(d time.Duration) ControllerOption {
	return func(l *ListQueryController) {
		if d > 0 {
			l.debounce = d
		}
	}
}

// WithListPageSize overrides the page size of the list.
func WithListPageSize(n int) ControllerOption {
	return func(l *ListQueryController) {
		if n > 0 {
			l.pageSize = n
		}
	}
}

// NewListQueryController constructs an idle controller.
func NewListQueryController(source QuotationSource, opts ...ControllerOption) *ListQueryController {
	l := &ListQueryController{
		source:   source,
		clock:    SystemClock,
		debounce: config.DefaultDebounce,
		pageSize: config.DefaultListPageSize,
		criteria: domain.NewFilterCriteria("", nil, "", ""),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load issues the initial query for criteria without debouncing.
func (l *ListQueryController) Load(criteria domain.FilterCriteria) tea.Cmd {
	l.criteria = criteria
	l.page = 0
	return l.issue()
}

// Reload re-runs the current query on the current page.
func (l *ListQueryController) Reload() tea.Cmd {
	return l.issue()
}

// OnCriteriaChange reacts to a new filter. A change limited to the keyword is
// debounced; any other change queries at once. The page resets to the first.
func (l *ListQueryController) OnCriteriaChange(criteria domain.FilterCriteria) tea.Cmd {
	if criteria.Equal(l.criteria) {
		return nil
	}
	keywordOnly := criteria.WithKeyword(l.criteria.Keyword()).Equal(l.criteria)
	l.criteria = criteria
	l.page = 0
	if !keywordOnly {
		return l.issue()
	}

	l.supersede()
	token := l.token
	timer, cmd := Debounce(l.clock, l.debounce, func() tea.Msg {
		return QueryDueMsg{Token: token}
	})
	l.pending = timer
	return cmd
}

// supersede invalidates everything in flight and enters Loading.
func (l *ListQueryController) supersede() {
	l.pending.Stop()
	l.pending = nil
	l.token++
	l.status = QueryLoading
}

func (l *ListQueryController) issue() tea.Cmd {
	l.supersede()
	return l.query(l.token)
}

func (l *ListQueryController) query(token uint64) tea.Cmd {
	source := l.source
	params := api.ListParamsFromCriteria(l.criteria, l.page, l.pageSize)
	queryLog.Logf("token=%d %s page=%d", token, l.criteria, l.page)
	return func() tea.Msg {
		page, err := source.ListQuotations(context.Background(), params)
		return QueryResultMsg{Token: token, Page: page, Err: err}
	}
}

// HandleDue fires the query once a debounced keyword settles.
func (l *ListQueryController) HandleDue(msg QueryDueMsg) tea.Cmd {
	if msg.Token != l.token {
		return nil
	}
	l.pending = nil
	return l.query(msg.Token)
}

// HandleResult applies a query response if its token is current and reports
// whether it did.
func (l *ListQueryController) HandleResult(msg QueryResultMsg) bool {
	if msg.Token != l.token {
		queryLog.Logf("dropping superseded result token=%d current=%d", msg.Token, l.token)
		return false
	}
	if msg.Err != nil {
		l.status = QueryFailed
		l.rows = nil
		l.total = 0
		l.err = appErrors.New(appErrors.CodeQueryFailed, "load quotations: "+msg.Err.Error(), msg.Err)
		l.notice = l.err
		queryLog.Logf("token=%d failed: %v", msg.Token, msg.Err)
		return true
	}
	rows := slices.Clone(msg.Page.Rows)
	if rows == nil {
		rows = []domain.QuotationSummary{}
	}
	l.status = QueryReady
	l.rows = rows
	l.total = msg.Page.Total
	l.err = nil
	return true
}

// NextPage moves forward when another page exists.
func (l *ListQueryController) NextPage() tea.Cmd {
	if l.status != QueryReady || l.page+1 >= l.TotalPages() {
		return nil
	}
	l.page++
	return l.issue()
}

// PrevPage moves back when not on the first page.
func (l *ListQueryController) PrevPage() tea.Cmd {
	if l.status == QueryLoading || l.page == 0 {
		return nil
	}
	l.page--
	return l.issue()
}

// TakeNotice returns the pending failure notice once, then nil.
func (l *ListQueryController) TakeNotice() error {
	n := l.notice
	l.notice = nil
	return n
}

// SetAuthorization records the result of the permission check.
func (l *ListQueryController) SetAuthorization(a session.Authorization) {
	l.auth = a
}

// Authorization returns the current permission state.
func (l *ListQueryController) Authorization() session.Authorization { return l.auth }

// OpenDetail switches to the detail view for row and returns the command
// fetching the full record. It does nothing unless authorization is granted.
func (l *ListQueryController) OpenDetail(row domain.QuotationSummary) tea.Cmd {
	if l.auth != session.AuthorizationGranted || strings.TrimSpace(row.ID) == "" {
		return nil
	}
	l.mode = ViewDetail
	l.selected = row
	l.detail = nil
	l.detailErr = nil
	l.detailToken++
	token := l.detailToken
	source := l.source
	id := row.ID
	return func() tea.Msg {
		detail, err := source.GetQuotation(context.Background(), id)
		return DetailResultMsg{Token: token, Detail: detail, Err: err}
	}
}

// HandleDetail applies a detail response for the open row.
func (l *ListQueryController) HandleDetail(msg DetailResultMsg) bool {
	if l.mode != ViewDetail || msg.Token != l.detailToken {
		return false
	}
	if msg.Err != nil {
		l.detailErr = msg.Err
		return true
	}
	d := msg.Detail
	l.detail = &d
	return true
}

// CloseDetail returns to the list. Rows are kept and no query is issued.
func (l *ListQueryController) CloseDetail() {
	l.mode = ViewList
	l.selected = domain.QuotationSummary{}
	l.detail = nil
	l.detailErr = nil
	l.detailToken++
}

// Mode is the current view mode.
func (l *ListQueryController) Mode() ViewMode { return l.mode }

// Selected returns the row open in the detail view.
func (l *ListQueryController) Selected() (domain.QuotationSummary, bool) {
	return l.selected, l.mode == ViewDetail
}

// Detail returns the loaded record and any error fetching it.
func (l *ListQueryController) Detail() (*domain.QuotationDetail, error) {
	return l.detail, l.detailErr
}

// Status is the lifecycle state of the current query.
func (l *ListQueryController) Status() QueryStatus { return l.status }

// Rows returns a copy of the applied rows.
func (l *ListQueryController) Rows() []domain.QuotationSummary { return slices.Clone(l.rows) }

// Err is the failure of the current query.
func (l *ListQueryController) Err() error { return l.err }

// Criteria is the filter the current query was issued with.
func (l *ListQueryController) Criteria() domain.FilterCriteria { return l.criteria }

// Token is the current request token.
func (l *ListQueryController) Token() uint64 { return l.token }

// Page is the zero-based page index.
func (l *ListQueryController) Page() int { return l.page }

// Total is the number of matching rows across all pages.
func (l *ListQueryController) Total() int { return l.total }

// TotalPages derives the page count of the last applied result.
func (l *ListQueryController) TotalPages() int {
	return api.QuotationPage{Size: l.pageSize, Total: l.total}.TotalPages()
}

// Stop cancels a pending keyword timer.
func (l *ListQueryController) Stop() {
	l.pending.Stop()
	l.pending = nil
}
