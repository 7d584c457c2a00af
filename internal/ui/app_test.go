package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"quotedesk/internal/api"
	"quotedesk/internal/domain"
	"quotedesk/internal/search"
	"quotedesk/internal/session"
)

// instantClock fires every debounce at once.
type instantClock struct{}

func (instantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func testRows(n int) []domain.QuotationSummary {
	rows := make([]domain.QuotationSummary, 0, n)
	for i := range n {
		id := string(rune('a' + i))
		rows = append(rows, domain.QuotationSummary{
			ID:        id,
			Code:      "RFQ-" + strings.ToUpper(id),
			Kind:      domain.KindRFQ,
			Title:     "Steel pipes " + id,
			Status:    domain.StatusSubmitted,
			Total:     domain.Money{Amount: decimal.NewFromInt(1250000), Currency: "VND"},
			OwnerID:   "u-1",
			CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		})
	}
	return rows
}

func newTestClient() *api.MockClient {
	client := api.NewMockClient()
	client.ListQuotationsFn = func(_ context.Context, p api.ListParams) (api.QuotationPage, error) {
		return api.QuotationPage{Rows: testRows(3), Page: p.Page, Size: p.Size, Total: 120}, nil
	}
	client.GetQuotationFn = func(_ context.Context, id string) (domain.QuotationDetail, error) {
		for _, r := range testRows(3) {
			if r.ID == id {
				return domain.QuotationDetail{Summary: r, Notes: "Deliver to **site B**."}, nil
			}
		}
		return domain.QuotationDetail{}, errors.New("missing")
	}
	client.SearchProjectsFn = func(_ context.Context, p api.SearchParams) ([]domain.ReferenceOption, error) {
		return []domain.ReferenceOption{{ID: "p-1", Label: "PRJ-1 · Alpha " + p.Keyword}}, nil
	}
	client.SearchSuppliersFn = func(context.Context, api.SearchParams) ([]domain.ReferenceOption, error) {
		return []domain.ReferenceOption{{ID: "s-1", Label: "Hoa Phat (0101)"}}, nil
	}
	return client
}

func newTestApp(t *testing.T, client *api.MockClient, roles ...string) *App {
	t.Helper()
	toastTickInterval = time.Millisecond
	t.Cleanup(func() { toastTickInterval = time.Second })

	m := NewApp(Config{
		Client:       client,
		Resolver:     session.StaticResolver{Identity: session.Identity{UserID: "u-1", Roles: roles}},
		RequiredRole: "owner",
		ListPageSize: 50,
		Clock:        instantClock{},
		NotesStyle:   "plain",
		Version:      "test",
	})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	settle(t, m, m.Init())
	return m
}

// settle runs cmd and every command it leads to, feeding results back into
// the model. Ticks are dropped so the loop ends.
func settle(t *testing.T, m *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("commands did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil, spinner.TickMsg, toastTickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, follow := m.Update(msg)
			queue = append(queue, follow)
		}
	}
}

func press(t *testing.T, m *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := m.Update(msg)
		settle(t, m, cmd)
	}
}

func TestAppInit(t *testing.T) {
	client := newTestClient()
	m := newTestApp(t, client, "owner")

	if m.Controller().Status() != search.QueryReady {
		t.Fatalf("expected ready, got %s", m.Controller().Status())
	}
	if m.Controller().Authorization() != session.AuthorizationGranted {
		t.Fatalf("expected granted, got %s", m.Controller().Authorization())
	}
	if got := len(m.Controller().Rows()); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	list, _, projects, suppliers := client.Calls()
	if list != 1 || projects != 1 || suppliers != 1 {
		t.Fatalf("unexpected calls list=%d projects=%d suppliers=%d", list, projects, suppliers)
	}
	if got := m.selector[domain.EntitySupplier].Options(); len(got) != 1 || got[0].ID != "s-1" {
		t.Fatalf("supplier options not primed: %+v", got)
	}

	view := m.View()
	for _, want := range []string{"QUOTEDESK", "RFQ-A", "page 1/3"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestAppDetail(t *testing.T) {
	t.Run("granted opens and back keeps rows", func(t *testing.T) {
		client := newTestClient()
		m := newTestApp(t, client, "owner")

		press(t, m, "down", "enter")
		if m.Controller().Mode() != search.ViewDetail {
			t.Fatalf("expected detail mode, got %s", m.Controller().Mode())
		}
		if diff := cmp.Diff([]string{"b"}, client.GetCallArgs); diff != "" {
			t.Fatalf("detail fetch mismatch (-want +got):\n%s", diff)
		}
		detail, err := m.Controller().Detail()
		if err != nil || detail == nil {
			t.Fatalf("detail not loaded: %v", err)
		}
		if !strings.Contains(m.View(), "site B") {
			t.Fatal("notes should be rendered")
		}

		press(t, m, "esc")
		if m.Controller().Mode() != search.ViewList {
			t.Fatal("esc should return to the list")
		}
		if len(m.Controller().Rows()) != 3 {
			t.Fatal("rows must survive the round trip")
		}
		if list, _, _, _ := client.Calls(); list != 1 {
			t.Fatalf("back must not requery, got %d list calls", list)
		}
	})

	t.Run("denied stays on list", func(t *testing.T) {
		client := newTestClient()
		m := newTestApp(t, client, "viewer")

		press(t, m, "enter")
		if m.Controller().Mode() != search.ViewList {
			t.Fatal("detail must not open without the owner role")
		}
		if _, get, _, _ := client.Calls(); get != 0 {
			t.Fatalf("no detail fetch expected, got %d", get)
		}
		if m.errorToast == nil {
			t.Fatal("expected a toast explaining the denial")
		}
	})
}

func TestAppQueryFailureShowsToast(t *testing.T) {
	client := newTestClient()
	client.ListQuotationsFn = func(context.Context, api.ListParams) (api.QuotationPage, error) {
		return api.QuotationPage{}, errors.New("status 502")
	}
	m := newTestApp(t, client, "owner")

	if m.Controller().Status() != search.QueryFailed {
		t.Fatalf("expected failed, got %s", m.Controller().Status())
	}
	if m.errorToast == nil {
		t.Fatal("expected error toast")
	}
	if !strings.Contains(m.View(), "Could not load quotations") {
		t.Fatal("toast should be drawn")
	}
}

func TestAppFilters(t *testing.T) {
	t.Run("keyword", func(t *testing.T) {
		client := newTestClient()
		m := newTestApp(t, client, "owner")

		press(t, m, "/", "pipe")
		if m.Focus() != FocusKeyword {
			t.Fatalf("expected keyword focus, got %d", m.Focus())
		}
		last := client.ListCallArgs[len(client.ListCallArgs)-1]
		if last.Keyword != "pipe" {
			t.Fatalf("expected keyword query, got %+v", last)
		}
		if m.Store().Criteria().Keyword() != "pipe" {
			t.Fatal("store should carry the keyword")
		}
	})

	t.Run("state selection", func(t *testing.T) {
		client := newTestClient()
		m := newTestApp(t, client, "owner")

		press(t, m, "tab", "tab")
		if m.Focus() != FocusState {
			t.Fatalf("expected state focus, got %d", m.Focus())
		}
		press(t, m, "down", "enter")
		want := domain.Status(domain.StatusOptions()[1].ID)
		last := client.ListCallArgs[len(client.ListCallArgs)-1]
		if diff := cmp.Diff([]domain.Status{want}, last.States); diff != "" {
			t.Fatalf("states mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("project lookup and selection", func(t *testing.T) {
		client := newTestClient()
		m := newTestApp(t, client, "owner")

		press(t, m, "tab", "tab", "tab", "al")
		if m.Focus() != FocusProject {
			t.Fatalf("expected project focus, got %d", m.Focus())
		}
		args := client.SearchProjectsCallArgs
		if got := args[len(args)-1].Keyword; got != "al" {
			t.Fatalf("expected lookup for %q, got %q", "al", got)
		}
		if got := m.selector[domain.EntityProject].Options(); len(got) != 1 || !strings.Contains(got[0].Label, "al") {
			t.Fatalf("options not refreshed: %+v", got)
		}

		press(t, m, "down", "enter")
		if id, ok := m.Store().Criteria().ProjectID(); !ok || id != "p-1" {
			t.Fatalf("expected project p-1, got %q", id)
		}
		last := client.ListCallArgs[len(client.ListCallArgs)-1]
		if diff := cmp.Diff([]string{"p-1"}, last.ProjectIDs); diff != "" {
			t.Fatalf("project filter mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("clear", func(t *testing.T) {
		client := newTestClient()
		m := newTestApp(t, client, "owner")
		press(t, m, "/", "bolt", "esc")
		before := len(client.ListCallArgs)

		press(t, m, "x")
		if !m.Store().Criteria().IsEmpty() {
			t.Fatal("criteria should be empty")
		}
		if len(client.ListCallArgs) != before+1 {
			t.Fatal("clearing should requery once")
		}
		press(t, m, "x")
		if len(client.ListCallArgs) != before+1 {
			t.Fatal("clearing empty criteria must not requery")
		}
	})

	t.Run("clear resets selector lookups", func(t *testing.T) {
		client := newTestClient()
		m := newTestApp(t, client, "owner")

		press(t, m, "tab", "tab", "duyệt", "esc", "esc")
		if got := m.selector[domain.EntityState].Options(); len(got) != 1 {
			t.Fatalf("state options should be narrowed, got %+v", got)
		}
		press(t, m, "tab", "tab", "tab", "al", "esc", "esc")
		if m.Focus() != FocusTable {
			t.Fatalf("expected table focus, got %d", m.Focus())
		}
		if m.Store().LookupKeyword(domain.EntityProject) != "al" {
			t.Fatal("project lookup should carry the typed keyword")
		}
		lookups := len(client.SearchProjectsCallArgs)

		press(t, m, "x")
		for _, entity := range []domain.EntityType{domain.EntityState, domain.EntityProject} {
			if kw := m.Store().LookupKeyword(entity); kw != "" {
				t.Fatalf("%s lookup keyword should be reset, got %q", entity, kw)
			}
			if in := m.selector[entity].InputValue(); in != "" {
				t.Fatalf("%s input should be empty, got %q", entity, in)
			}
		}
		if diff := cmp.Diff(domain.StatusOptions(), m.selector[domain.EntityState].Options()); diff != "" {
			t.Fatalf("state options should be the full enumeration (-want +got):\n%s", diff)
		}
		args := client.SearchProjectsCallArgs
		if len(args) != lookups+1 || args[len(args)-1].Keyword != "" {
			t.Fatalf("expected one default-page project lookup, got %+v", args[lookups:])
		}

		press(t, m, "tab", "tab", "tab")
		if m.Focus() != FocusProject {
			t.Fatalf("expected project focus, got %d", m.Focus())
		}
		want := []domain.ReferenceOption{{ID: "p-1", Label: "PRJ-1 · Alpha "}}
		if diff := cmp.Diff(want, m.selector[domain.EntityProject].Options()); diff != "" {
			t.Fatalf("project options should be the default page (-want +got):\n%s", diff)
		}
	})
}

func TestAppPagination(t *testing.T) {
	client := newTestClient()
	m := newTestApp(t, client, "owner")

	press(t, m, "n")
	if got := client.ListCallArgs[len(client.ListCallArgs)-1].Page; got != 1 {
		t.Fatalf("expected page 1, got %d", got)
	}
	press(t, m, "p")
	if got := client.ListCallArgs[len(client.ListCallArgs)-1].Page; got != 0 {
		t.Fatalf("expected page 0, got %d", got)
	}
}

func TestAppCopyCode(t *testing.T) {
	var copied string
	original := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { copyToClipboard = original })

	m := newTestApp(t, newTestClient(), "owner")
	press(t, m, "down", "y")
	if copied != "RFQ-B" {
		t.Fatalf("expected RFQ-B copied, got %q", copied)
	}
	if m.copyToast == nil {
		t.Fatal("expected copy toast")
	}
}
