package api

import (
	"context"
	"errors"
	"sync"

	"quotedesk/internal/domain"
)

// ErrMockNotImplemented is returned when a MockClient method lacks an override.
var ErrMockNotImplemented = errors.New("api.MockClient: method not implemented")

// MockClient is a test double for the Client interface.
type MockClient struct {
	ListQuotationsFn  func(context.Context, ListParams) (QuotationPage, error)
	GetQuotationFn    func(context.Context, string) (domain.QuotationDetail, error)
	SearchProjectsFn  func(context.Context, SearchParams) ([]domain.ReferenceOption, error)
	SearchSuppliersFn func(context.Context, SearchParams) ([]domain.ReferenceOption, error)

	mu                     sync.Mutex
	ListCallCount          int
	GetCallCount           int
	SearchProjectsCount    int
	SearchSuppliersCount   int
	ListCallArgs           []ListParams
	GetCallArgs            []string
	SearchProjectsCallArgs []SearchParams
	SearchSupplierCallArgs []SearchParams
}

// NewMockClient returns a MockClient with zeroed handlers.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// ListQuotations invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) ListQuotations(ctx context.Context, params ListParams) (QuotationPage, error) {
	m.mu.Lock()
	m.ListCallCount++
	m.ListCallArgs = append(m.ListCallArgs, params)
	m.mu.Unlock()

	if m.ListQuotationsFn == nil {
		return QuotationPage{}, ErrMockNotImplemented
	}
	return m.ListQuotationsFn(ctx, params)
}

// GetQuotation invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) GetQuotation(ctx context.Context, id string) (domain.QuotationDetail, error) {
	m.mu.Lock()
	m.GetCallCount++
	m.GetCallArgs = append(m.GetCallArgs, id)
	m.mu.Unlock()

	if m.GetQuotationFn == nil {
		return domain.QuotationDetail{}, ErrMockNotImplemented
	}
	return m.GetQuotationFn(ctx, id)
}

// SearchProjects invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) SearchProjects(ctx context.Context, params SearchParams) ([]domain.ReferenceOption, error) {
	m.mu.Lock()
	m.SearchProjectsCount++
	m.SearchProjectsCallArgs = append(m.SearchProjectsCallArgs, params)
	m.mu.Unlock()

	if m.SearchProjectsFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.SearchProjectsFn(ctx, params)
}

// SearchSuppliers invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) SearchSuppliers(ctx context.Context, params SearchParams) ([]domain.ReferenceOption, error) {
	m.mu.Lock()
	m.SearchSuppliersCount++
	m.SearchSupplierCallArgs = append(m.SearchSupplierCallArgs, params)
	m.mu.Unlock()

	if m.SearchSuppliersFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.SearchSuppliersFn(ctx, params)
}

// Calls returns a snapshot of the per-method call counts.
func (m *MockClient) Calls() (list, get, projects, suppliers int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ListCallCount, m.GetCallCount, m.SearchProjectsCount, m.SearchSuppliersCount
}
