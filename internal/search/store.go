package search

import (
	tea "github.com/charmbracelet/bubbletea"

	"quotedesk/internal/domain"
)

// FilterStateStore holds the current filter criteria and fronts the lookup
// service for the three selectors. It is owned by the UI model and passed by
// reference to the views.
type FilterStateStore struct {
	criteria domain.FilterCriteria
	lookup   *LookupService
}

// NewFilterStateStore starts from empty criteria.
func NewFilterStateStore(lookup *LookupService) *FilterStateStore {
	return &FilterStateStore{criteria: domain.NewFilterCriteria("", nil, "", ""), lookup: lookup}
}

// Criteria returns the current immutable criteria.
func (s *FilterStateStore) Criteria() domain.FilterCriteria { return s.criteria }

func (s *FilterStateStore) replace(next domain.FilterCriteria) bool {
	if next.Equal(s.criteria) {
		return false
	}
	s.criteria = next
	return true
}

// SetKeyword replaces the free-text filter and reports whether it changed.
func (s *FilterStateStore) SetKeyword(text string) bool {
	return s.replace(s.criteria.WithKeyword(text))
}

// SetStateCodes replaces the state selection.
func (s *FilterStateStore) SetStateCodes(codes []domain.Status) bool {
	return s.replace(s.criteria.WithStateCodes(codes))
}

// SetProjectID replaces the project selection; "" clears it.
func (s *FilterStateStore) SetProjectID(id string) bool {
	return s.replace(s.criteria.WithProjectID(id))
}

// SetSupplierID replaces the supplier selection; "" clears it.
func (s *FilterStateStore) SetSupplierID(id string) bool {
	return s.replace(s.criteria.WithSupplierID(id))
}

// Clear drops every filter.
func (s *FilterStateStore) Clear() bool {
	return s.replace(domain.NewFilterCriteria("", nil, "", ""))
}

// SetLookupKeyword forwards a selector keystroke to the lookup service. It
// never touches the criteria.
func (s *FilterStateStore) SetLookupKeyword(entity domain.EntityType, text string) tea.Cmd {
	return s.lookup.Search(entity, text)
}

// LookupKeyword returns the text typed into a selector.
func (s *FilterStateStore) LookupKeyword(entity domain.EntityType) string {
	return s.lookup.Keyword(entity)
}

// Options returns the option list of a selector.
func (s *FilterStateStore) Options(entity domain.EntityType) []domain.ReferenceOption {
	return s.lookup.Options(entity)
}

// Lookup exposes the underlying service for message routing.
func (s *FilterStateStore) Lookup() *LookupService { return s.lookup }
