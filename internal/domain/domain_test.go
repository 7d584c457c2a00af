package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"SUBMITTED":  StatusSubmitted,
		" approved ": StatusApproved,
		"Rejected":   StatusRejected,
	}
	for raw, expected := range cases {
		got, err := ParseStatus(raw)
		if err != nil {
			t.Fatalf("ParseStatus(%q) returned error: %v", raw, err)
		}
		if got != expected {
			t.Fatalf("ParseStatus(%q) = %q, want %q", raw, got, expected)
		}
	}

	for _, raw := range []string{"", "  ", "draft"} {
		if _, err := ParseStatus(raw); err == nil {
			t.Fatalf("expected ParseStatus(%q) to fail", raw)
		}
	}
}

func TestMatchStatusOptions(t *testing.T) {
	cases := []struct {
		keyword string
		want    []string
	}{
		{"", []string{"SUBMITTED", "APPROVED", "REJECTED"}},
		{"Đã gửi", []string{"SUBMITTED"}},
		{"đã", []string{"SUBMITTED", "APPROVED"}},
		{"TỪ", []string{"REJECTED"}},
		{"nothing", nil},
	}
	for _, tc := range cases {
		t.Run(tc.keyword, func(t *testing.T) {
			var got []string
			for _, opt := range MatchStatusOptions(tc.keyword) {
				got = append(got, opt.ID)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterCriteriaIsImmutable(t *testing.T) {
	base := NewFilterCriteria("pipe", nil, "", "")
	withStates := base.WithStateCodes([]Status{StatusRejected, StatusSubmitted, StatusSubmitted})

	if len(base.StateCodes()) != 0 {
		t.Fatal("WithStateCodes must not modify the receiver")
	}
	if diff := cmp.Diff([]Status{StatusRejected, StatusSubmitted}, withStates.StateCodes()); diff != "" {
		t.Fatalf("states should be sorted and deduplicated (-want +got):\n%s", diff)
	}

	codes := withStates.StateCodes()
	codes[0] = StatusApproved
	if withStates.StateCodes()[0] != StatusRejected {
		t.Fatal("StateCodes must return a copy")
	}

	withProject := withStates.WithProjectID("p-1")
	if _, ok := withStates.ProjectID(); ok {
		t.Fatal("WithProjectID must not modify the receiver")
	}
	if id, ok := withProject.ProjectID(); !ok || id != "p-1" {
		t.Fatalf("expected project p-1, got %q (%v)", id, ok)
	}
	if _, ok := withProject.WithProjectID("").ProjectID(); ok {
		t.Fatal("empty id should clear the project selection")
	}
}

func TestFilterCriteriaEqual(t *testing.T) {
	a := NewFilterCriteria("pipe", []Status{StatusSubmitted, StatusApproved}, "p-1", "")
	b := NewFilterCriteria("pipe", []Status{StatusApproved, StatusSubmitted}, " p-1 ", "")
	if !a.Equal(b) {
		t.Fatalf("expected %v == %v", a, b)
	}
	if a.Equal(a.WithKeyword("steel")) {
		t.Fatal("keyword change must break equality")
	}
	if a.Equal(a.WithSupplierID("s-9")) {
		t.Fatal("supplier change must break equality")
	}
	if !NewFilterCriteria("", nil, "", "").Equal(NewFilterCriteria("", []Status{}, "", "")) {
		t.Fatal("nil and empty state sets should be equal")
	}
	if got := a.String(); got != "keyword=pipe states=APPROVED,SUBMITTED project=p-1" {
		t.Fatalf("unexpected String(): %q", got)
	}
	if !(FilterCriteria{}).IsEmpty() {
		t.Fatal("zero criteria should be empty")
	}
}

func TestQuotationTotals(t *testing.T) {
	detail := QuotationDetail{
		Summary: QuotationSummary{ID: "q-1", Status: StatusSubmitted, Total: Money{Amount: decimal.RequireFromString("1250.50"), Currency: "VND"}},
		Items: []LineItem{
			{Name: "Steel pipe", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("100.05")},
			{Name: "Flange", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(83)},
		},
	}
	if got := detail.ComputedTotal(); !got.Equal(decimal.RequireFromString("1249.5")) {
		t.Fatalf("unexpected computed total %s", got)
	}
	if !detail.TotalMismatch() {
		t.Fatal("expected mismatch between declared and computed totals")
	}
	if err := detail.Summary.Validate(); err != nil {
		t.Fatalf("expected valid summary, got %v", err)
	}
	if err := (QuotationSummary{ID: "q-2", Status: "DRAFT"}).Validate(); err == nil {
		t.Fatal("expected invalid status to fail validation")
	}
}

func TestQuotationOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	q := QuotationSummary{Status: StatusSubmitted, DueAt: now.Add(-time.Hour)}
	if !q.Overdue(now) {
		t.Fatal("submitted quotation past due should be overdue")
	}
	q.Status = StatusApproved
	if q.Overdue(now) {
		t.Fatal("decided quotation is never overdue")
	}
}
