package search

import (
	"quotedesk/internal/api"
	"quotedesk/internal/domain"
)

// LookupDueMsg fires when a lookup keyword has been quiet for the debounce
// period.
type LookupDueMsg struct {
	Entity     domain.EntityType
	Generation uint64
}

// LookupResultMsg carries the response of one reference lookup.
type LookupResultMsg struct {
	Entity     domain.EntityType
	Generation uint64
	Keyword    string
	Options    []domain.ReferenceOption
	Err        error
}

// QueryDueMsg fires when the free-text keyword of the list has settled.
type QueryDueMsg struct {
	Token uint64
}

// QueryResultMsg carries the response of one primary list query.
type QueryResultMsg struct {
	Token uint64
	Page  api.QuotationPage
	Err   error
}

// DetailResultMsg carries the full record requested by OpenDetail.
type DetailResultMsg struct {
	Token  uint64
	Detail domain.QuotationDetail
	Err    error
}
