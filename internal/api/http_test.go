package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"quotedesk/internal/domain"
	appErrors "quotedesk/internal/errors"
	"quotedesk/internal/session"
)

var ownerResolver = session.StaticResolver{Identity: session.Identity{UserID: "u-1", Token: "tok", Roles: []string{"owner"}}}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...HTTPOption) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]HTTPOption{WithResolver(ownerResolver)}, opts...)
	client, err := NewHTTPClient(srv.URL, opts...)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	return client
}

func TestListQuotationsEncodesQueryAndDecodesPage(t *testing.T) {
	var gotQuery map[string][]string
	var gotUser, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/quotations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		gotUser = r.Header.Get(HeaderUserID)
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"content": [{
				"id": "q-1", "code": "RFQ-0001", "kind": "rfq", "title": "Steel pipe",
				"status": "SUBMITTED", "projectId": "p-1", "projectName": "Tower A",
				"supplierId": "s-1", "supplierName": "Hoa Phat", "totalAmount": "1250.50",
				"currency": "VND", "ownerId": "u-1", "createdAt": "2026-03-01T08:00:00Z"
			}],
			"page": 0, "size": 50, "totalElements": 51, "totalPages": 2
		}`))
	})

	criteria := domain.NewFilterCriteria("pipe", []domain.Status{domain.StatusRejected, domain.StatusSubmitted}, "p-1", "s-1")
	page, err := client.ListQuotations(context.Background(), ListParamsFromCriteria(criteria, 0, 50))
	if err != nil {
		t.Fatalf("ListQuotations: %v", err)
	}

	wantQuery := map[string][]string{
		"keyword":     {"pipe"},
		"states":      {"REJECTED", "SUBMITTED"},
		"projectIds":  {"p-1"},
		"supplierIds": {"s-1"},
		"page":        {"0"},
		"size":        {"50"},
	}
	if diff := cmp.Diff(wantQuery, gotQuery); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
	if gotUser != "u-1" || gotAuth != "Bearer tok" {
		t.Fatalf("identity headers not injected: user=%q auth=%q", gotUser, gotAuth)
	}
	if page.Total != 51 || page.TotalPages() != 2 || len(page.Rows) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	row := page.Rows[0]
	if row.Kind != domain.KindRFQ || row.Status != domain.StatusSubmitted {
		t.Fatalf("unexpected row %+v", row)
	}
	if !row.Total.Amount.Equal(decimal.RequireFromString("1250.5")) {
		t.Fatalf("unexpected total %s", row.Total.Amount)
	}
}

func TestSearchReferenceLabels(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("keyword"); got != "tow" {
			t.Errorf("keyword = %q", got)
		}
		switch r.URL.Path {
		case "/api/projects":
			_, _ = w.Write([]byte(`{"content":[{"id":"p-1","code":"PRJ-01","name":"Tower A"},{"id":"p-2","name":"Annex"}]}`))
		case "/api/suppliers":
			_, _ = w.Write([]byte(`{"content":[{"id":"s-1","name":"Towa Steel","taxCode":"0101"}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	projects, err := client.SearchProjects(context.Background(), SearchParams{Keyword: "tow", Size: 100})
	if err != nil {
		t.Fatalf("SearchProjects: %v", err)
	}
	want := []domain.ReferenceOption{{ID: "p-1", Label: "PRJ-01 · Tower A"}, {ID: "p-2", Label: "Annex"}}
	if diff := cmp.Diff(want, projects); diff != "" {
		t.Fatalf("projects mismatch (-want +got):\n%s", diff)
	}

	suppliers, err := client.SearchSuppliers(context.Background(), SearchParams{Keyword: "tow"})
	if err != nil {
		t.Fatalf("SearchSuppliers: %v", err)
	}
	if diff := cmp.Diff([]domain.ReferenceOption{{ID: "s-1", Label: "Towa Steel (0101)"}}, suppliers); diff != "" {
		t.Fatalf("suppliers mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   appErrors.Code
	}{
		{"unauthorized", http.StatusUnauthorized, "", appErrors.CodeUnauthorized},
		{"forbidden", http.StatusForbidden, "", appErrors.CodeUnauthorized},
		{"not found", http.StatusNotFound, "", appErrors.CodeNotFound},
		{"server error", http.StatusInternalServerError, "boom", appErrors.CodeHTTPFailed},
		{"bad json", http.StatusOK, "{not json", appErrors.CodeParseFailed},
		{"bad status value", http.StatusOK, `{"content":[{"id":"q-9","status":"DRAFT"}]}`, appErrors.CodeParseFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := client.ListQuotations(context.Background(), ListParams{})
			if !appErrors.IsCode(err, tc.want) {
				t.Fatalf("expected code %s, got %v (%s)", tc.want, err, appErrors.CodeOf(err))
			}
		})
	}
}

func TestMissingIdentityNeverHitsServer(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(srv.URL, WithResolver(session.StaticResolver{}))
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	_, err = client.SearchProjects(context.Background(), SearchParams{})
	if !appErrors.IsCode(err, appErrors.CodeMissingIdentity) {
		t.Fatalf("expected missing identity, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("expected no request, got %d", hits)
	}
}

func TestCancelledRequestReturnsContextError(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(5*time.Second))
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := client.SearchSuppliers(ctx, SearchParams{Keyword: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGetQuotationDecodesItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/quotations/q-1" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{
			"id": "q-1", "code": "BG-0001", "kind": "QUOTATION", "status": "APPROVED",
			"totalAmount": "300", "currency": "VND", "ownerId": "u-1",
			"createdAt": "2026-03-01T08:00:00Z", "notes": "**fast** delivery",
			"items": [{"name": "Bolt", "unit": "pcs", "quantity": "100", "unitPrice": "3"}]
		}`))
	})

	detail, err := client.GetQuotation(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("GetQuotation: %v", err)
	}
	if len(detail.Items) != 1 || detail.TotalMismatch() {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if _, err := client.GetQuotation(context.Background(), "q-404"); !appErrors.IsCode(err, appErrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNewHTTPClientRejectsBadURL(t *testing.T) {
	if _, err := NewHTTPClient("not a url"); !appErrors.IsCode(err, appErrors.CodeConfigurationError) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestTimeoutDoesNotMutateSharedClient(t *testing.T) {
	tests := []struct {
		name string
		opts func(shared *http.Client) []HTTPOption
		want time.Duration
	}{
		{
			name: "timeout after custom client",
			opts: func(shared *http.Client) []HTTPOption {
				return []HTTPOption{WithHTTPClient(shared), WithTimeout(2 * time.Second)}
			},
			want: 2 * time.Second,
		},
		{
			name: "timeout before custom client",
			opts: func(shared *http.Client) []HTTPOption {
				return []HTTPOption{WithTimeout(2 * time.Second), WithHTTPClient(shared)}
			},
			want: 2 * time.Second,
		},
		{
			name: "custom client keeps its own timeout",
			opts: func(shared *http.Client) []HTTPOption {
				return []HTTPOption{WithHTTPClient(shared)}
			},
			want: time.Minute,
		},
		{
			name: "default client",
			opts: func(*http.Client) []HTTPOption { return nil },
			want: defaultTimeout,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shared := &http.Client{Timeout: time.Minute}
			c, err := NewHTTPClient("http://localhost:8089", tt.opts(shared)...)
			if err != nil {
				t.Fatalf("NewHTTPClient: %v", err)
			}
			if got := c.(*httpClient).http.Timeout; got != tt.want {
				t.Fatalf("timeout = %s, want %s", got, tt.want)
			}
			if shared.Timeout != time.Minute {
				t.Fatalf("shared client timeout changed to %s", shared.Timeout)
			}
		})
	}
}
