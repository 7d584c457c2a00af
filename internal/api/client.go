package api

import (
	"context"

	"quotedesk/internal/domain"
)

// Client defines the backend operations the quotation screen consumes.
type Client interface {
	ListQuotations(ctx context.Context, params ListParams) (QuotationPage, error)
	GetQuotation(ctx context.Context, id string) (domain.QuotationDetail, error)
	SearchProjects(ctx context.Context, params SearchParams) ([]domain.ReferenceOption, error)
	SearchSuppliers(ctx context.Context, params SearchParams) ([]domain.ReferenceOption, error)
}

// ListParams is the query of the primary list endpoint.
type ListParams struct {
	Keyword     string
	States      []domain.Status
	ProjectIDs  []string
	SupplierIDs []string
	Page        int
	Size        int
}

// ListParamsFromCriteria converts a filter into list endpoint parameters.
func ListParamsFromCriteria(c domain.FilterCriteria, page, size int) ListParams {
	p := ListParams{
		Keyword: c.Keyword(),
		States:  c.StateCodes(),
		Page:    page,
		Size:    size,
	}
	if id, ok := c.ProjectID(); ok {
		p.ProjectIDs = []string{id}
	}
	if id, ok := c.SupplierID(); ok {
		p.SupplierIDs = []string{id}
	}
	return p
}

// SearchParams is the query of the project and supplier endpoints.
type SearchParams struct {
	Keyword string
	Page    int
	Size    int
}

// QuotationPage is one page of list results.
type QuotationPage struct {
	Rows  []domain.QuotationSummary
	Page  int
	Size  int
	Total int
}

// TotalPages derives the page count from Total and Size.
func (p QuotationPage) TotalPages() int {
	if p.Size <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.Size - 1) / p.Size
}
