package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"quotedesk/internal/domain"
	"quotedesk/internal/ui/theme"
)

// renderDetail builds the scrollable body of the detail view. detail may be
// nil while the full record is still loading, in which case the summary row
// is shown on its own.
func renderDetail(summary domain.QuotationSummary, detail *domain.QuotationDetail, loadErr error, width int, markdown func(string) string) string {
	width = max(width, 20)
	var b strings.Builder

	header := styleAppHeader().Render(summary.Code) + " " + styleSectionHeader().Render(wordwrap.String(summary.Title, width-lipgloss.Width(summary.Code)-4))
	b.WriteString(header + "\n\n")

	field := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			value = styleMuted().Render("—")
		}
		b.WriteString(styleField().Render(name) + " " + value + "\n")
	}
	field("Kind", summary.Kind.Label())
	field("Status", styleStatus(summary.Status).Render(summary.Status.Label()))
	field("Project", summary.ProjectName)
	field("Supplier", summary.SupplierName)
	field("Total", FormatMoney(summary.Total))
	created := FormatDate(summary.CreatedAt)
	if rel := FormatRelative(summary.CreatedAt); rel != "" {
		created += " (" + rel + ")"
	}
	field("Created", created)
	if !summary.DueAt.IsZero() {
		due := FormatDate(summary.DueAt)
		if summary.Overdue(timeNow()) {
			due += " " + styleError().Render("overdue")
		}
		field("Due", due)
	}

	switch {
	case loadErr != nil:
		b.WriteString("\n" + styleError().Render("Could not load details: "+loadErr.Error()) + "\n")
		return b.String()
	case detail == nil:
		b.WriteString("\n" + styleMuted().Render("Loading details…") + "\n")
		return b.String()
	}

	if detail.ContactName != "" || detail.ContactMail != "" {
		contact := strings.TrimSpace(detail.ContactName + " <" + detail.ContactMail + ">")
		field("Contact", strings.TrimSuffix(contact, " <>"))
	}
	if !detail.UpdatedAt.IsZero() {
		field("Updated", FormatRelative(detail.UpdatedAt))
	}

	if len(detail.Items) > 0 {
		b.WriteString("\n" + styleSectionHeader().Render("Items") + "\n")
		b.WriteString(renderLineItems(detail.Items, summary.Total.Currency, width))
		if detail.TotalMismatch() {
			computed := FormatMoney(domain.Money{Amount: detail.ComputedTotal(), Currency: summary.Total.Currency})
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Current().Warning).Render("⚠ items add up to "+computed) + "\n")
		}
	}

	if notes := strings.TrimSpace(detail.Notes); notes != "" {
		b.WriteString("\n" + styleSectionHeader().Render("Notes") + "\n")
		rendered := notes
		if markdown != nil {
			rendered = markdown(notes)
		}
		b.WriteString(indent.String(rendered, 1) + "\n")
	}
	return b.String()
}

func renderLineItems(items []domain.LineItem, currency string, width int) string {
	nameWidth := max(width-44, 10)
	var b strings.Builder
	for i, item := range items {
		qty := FormatQuantity(item.Quantity)
		if item.Unit != "" {
			qty += " " + item.Unit
		}
		line := fmt.Sprintf("%2d. %-*s %12s × %-12s %s",
			i+1,
			nameWidth, truncateCell(item.Name, nameWidth),
			qty,
			FormatQuantity(item.UnitPrice),
			FormatMoney(domain.Money{Amount: item.Amount(), Currency: currency}),
		)
		b.WriteString(styleText().Render(line) + "\n")
	}
	return b.String()
}
