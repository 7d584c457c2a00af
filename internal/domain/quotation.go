package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes an incoming request-for-quotation from a quotation.
type Kind string

const (
	KindRFQ       Kind = "RFQ"
	KindQuotation Kind = "QUOTATION"
)

// Label is the short column label.
func (k Kind) Label() string {
	switch k {
	case KindRFQ:
		return "RFQ"
	case KindQuotation:
		return "Báo giá"
	default:
		return string(k)
	}
}

// Money is an amount in a single currency.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// QuotationSummary is one row of the quotation list.
type QuotationSummary struct {
	ID           string
	Code         string
	Kind         Kind
	Title        string
	Status       Status
	ProjectID    string
	ProjectName  string
	SupplierID   string
	SupplierName string
	Total        Money
	OwnerID      string
	CreatedAt    time.Time
	DueAt        time.Time
}

// Validate checks the fields the list and detail views rely on.
func (q QuotationSummary) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return invalidQuotationError("quotation id is required", nil)
	}
	if err := q.Status.Validate(); err != nil {
		return invalidQuotationError("quotation "+q.ID+" has an invalid status", err)
	}
	return nil
}

// Overdue reports whether an undecided quotation passed its due date.
func (q QuotationSummary) Overdue(now time.Time) bool {
	return !q.DueAt.IsZero() && !q.Status.IsFinal() && now.After(q.DueAt)
}

// LineItem is one priced row of a quotation.
type LineItem struct {
	Name      string
	Unit      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Amount is quantity times unit price.
func (l LineItem) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// QuotationDetail is the full record shown by the detail view.
type QuotationDetail struct {
	Summary     QuotationSummary
	Notes       string
	Items       []LineItem
	ContactName string
	ContactMail string
	UpdatedAt   time.Time
}

// ComputedTotal sums the line items.
func (d QuotationDetail) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(item.Amount())
	}
	return total
}

// TotalMismatch reports whether the declared total disagrees with the items.
func (d QuotationDetail) TotalMismatch() bool {
	if len(d.Items) == 0 {
		return false
	}
	return !d.ComputedTotal().Equal(d.Summary.Total.Amount)
}
