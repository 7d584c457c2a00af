package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"quotedesk/internal/api"
	"quotedesk/internal/domain"
)

func TestFilterStateStoreSetters(t *testing.T) {
	svc, _ := newTestLookup(api.NewMockClient())
	store := NewFilterStateStore(svc)

	before := store.Criteria()
	if !store.SetKeyword("pipe") {
		t.Fatal("keyword change should report a change")
	}
	if store.SetKeyword("pipe") {
		t.Fatal("same keyword should not report a change")
	}
	if before.Keyword() != "" {
		t.Fatal("previous criteria value must not be mutated")
	}

	if !store.SetStateCodes([]domain.Status{domain.StatusApproved}) {
		t.Fatal("state change should report a change")
	}
	if !store.SetStateCodes([]domain.Status{domain.StatusSubmitted}) {
		t.Fatal("replacing the states should report a change")
	}
	if store.SetStateCodes([]domain.Status{domain.StatusSubmitted, domain.StatusSubmitted}) {
		t.Fatal("an equal state set should not report a change")
	}
	if diff := cmp.Diff([]domain.Status{domain.StatusSubmitted}, store.Criteria().StateCodes()); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}

	if !store.SetProjectID("p-1") || store.SetProjectID(" p-1 ") {
		t.Fatal("project change detection is wrong")
	}
	if !store.SetSupplierID("s-1") {
		t.Fatal("supplier change should report a change")
	}
	if got := store.Criteria().String(); got != "keyword=pipe states=SUBMITTED project=p-1 supplier=s-1" {
		t.Fatalf("unexpected criteria %q", got)
	}
	if !store.Clear() || !store.Criteria().IsEmpty() {
		t.Fatal("clear should drop every filter")
	}
}

func TestFilterStateStoreLookupKeywordLeavesCriteria(t *testing.T) {
	svc, _ := newTestLookup(api.NewMockClient())
	store := NewFilterStateStore(svc)
	store.SetKeyword("pipe")
	before := store.Criteria()

	if cmd := store.SetLookupKeyword(domain.EntityState, "duyệt"); cmd != nil {
		t.Fatal("state lookup applies synchronously")
	}
	if cmd := store.SetLookupKeyword(domain.EntityProject, "tower"); cmd == nil {
		t.Fatal("project lookup should be debounced")
	}
	if !store.Criteria().Equal(before) {
		t.Fatal("lookup keywords must not change the criteria")
	}
	if store.LookupKeyword(domain.EntityProject) != "tower" {
		t.Fatal("lookup keyword not recorded")
	}
	if diff := cmp.Diff([]domain.ReferenceOption{{ID: "APPROVED", Label: "Đã duyệt"}}, store.Options(domain.EntityState)); diff != "" {
		t.Fatalf("state options mismatch (-want +got):\n%s", diff)
	}
	svc.Stop()
}
