package api

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quotedesk/internal/domain"
)

// PageDTO is the paged envelope returned by every list endpoint.
type PageDTO[T any] struct {
	Content       []T `json:"content"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
}

// QuotationDTO is the wire shape of one list row.
type QuotationDTO struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Kind         string          `json:"kind"`
	Title        string          `json:"title"`
	Status       string          `json:"status"`
	ProjectID    string          `json:"projectId"`
	ProjectName  string          `json:"projectName"`
	SupplierID   string          `json:"supplierId"`
	SupplierName string          `json:"supplierName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Currency     string          `json:"currency"`
	OwnerID      string          `json:"ownerId"`
	CreatedAt    time.Time       `json:"createdAt"`
	DueAt        *time.Time      `json:"dueAt,omitempty"`
}

// LineItemDTO is the wire shape of one priced row.
type LineItemDTO struct {
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// QuotationDetailDTO is the wire shape of the detail endpoint.
type QuotationDetailDTO struct {
	QuotationDTO
	Notes        string        `json:"notes"`
	Items        []LineItemDTO `json:"items"`
	ContactName  string        `json:"contactName"`
	ContactEmail string        `json:"contactEmail"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty"`
}

// ProjectDTO is the wire shape of a project lookup row.
type ProjectDTO struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// SupplierDTO is the wire shape of a supplier lookup row.
type SupplierDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxCode string `json:"taxCode"`
}

func (d QuotationDTO) toDomain() (domain.QuotationSummary, error) {
	status, err := domain.ParseStatus(d.Status)
	if err != nil {
		return domain.QuotationSummary{}, err
	}
	q := domain.QuotationSummary{
		ID:           d.ID,
		Code:         d.Code,
		Kind:         domain.Kind(strings.ToUpper(strings.TrimSpace(d.Kind))),
		Title:        d.Title,
		Status:       status,
		ProjectID:    d.ProjectID,
		ProjectName:  d.ProjectName,
		SupplierID:   d.SupplierID,
		SupplierName: d.SupplierName,
		Total:        domain.Money{Amount: d.TotalAmount, Currency: d.Currency},
		OwnerID:      d.OwnerID,
		CreatedAt:    d.CreatedAt,
	}
	if d.DueAt != nil {
		q.DueAt = *d.DueAt
	}
	return q, q.Validate()
}

func (d QuotationDetailDTO) toDomain() (domain.QuotationDetail, error) {
	summary, err := d.QuotationDTO.toDomain()
	if err != nil {
		return domain.QuotationDetail{}, err
	}
	detail := domain.QuotationDetail{
		Summary:     summary,
		Notes:       d.Notes,
		ContactName: d.ContactName,
		ContactMail: d.ContactEmail,
	}
	if d.UpdatedAt != nil {
		detail.UpdatedAt = *d.UpdatedAt
	}
	for _, item := range d.Items {
		detail.Items = append(detail.Items, domain.LineItem{
			Name:      item.Name,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return detail, nil
}

// ProjectOption projects a project record into a selector option.
func ProjectOption(p ProjectDTO) domain.ReferenceOption {
	label := strings.TrimSpace(p.Name)
	if code := strings.TrimSpace(p.Code); code != "" {
		label = code + " · " + label
	}
	return domain.ReferenceOption{ID: p.ID, Label: label}
}

// SupplierOption projects a supplier record into a selector option.
func SupplierOption(s SupplierDTO) domain.ReferenceOption {
	label := strings.TrimSpace(s.Name)
	if tax := strings.TrimSpace(s.TaxCode); tax != "" {
		label += " (" + tax + ")"
	}
	return domain.ReferenceOption{ID: s.ID, Label: label}
}
