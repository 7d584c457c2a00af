package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"quotedesk/internal/domain"
	"quotedesk/internal/search"
	"quotedesk/internal/ui/theme"
)

// column describes one table column. Columns with a higher drop rank are
// removed first when the terminal is narrow.
type column struct {
	title string
	width int
	drop  int
	cell  func(domain.QuotationSummary) string
}

var quotationColumns = []column{
	{"Code", 12, 0, func(q domain.QuotationSummary) string { return q.Code }},
	{"Kind", 8, 4, func(q domain.QuotationSummary) string { return q.Kind.Label() }},
	{"Title", 28, 0, func(q domain.QuotationSummary) string { return q.Title }},
	{"Status", 9, 0, func(q domain.QuotationSummary) string { return q.Status.Label() }},
	{"Project", 18, 2, func(q domain.QuotationSummary) string { return q.ProjectName }},
	{"Supplier", 18, 3, func(q domain.QuotationSummary) string { return q.SupplierName }},
	{"Total", 16, 1, func(q domain.QuotationSummary) string { return FormatMoney(q.Total) }},
	{"Created", 10, 5, func(q domain.QuotationSummary) string { return FormatDate(q.CreatedAt) }},
}

// fitColumns drops low-priority columns until the table fits width.
func fitColumns(width int) []column {
	cols := append([]column(nil), quotationColumns...)
	total := func() int {
		sum := 0
		for _, c := range cols {
			sum += c.width + 1
		}
		return sum + 1
	}
	for total() > width {
		worst := -1
		for i, c := range cols {
			if c.drop > 0 && (worst < 0 || c.drop > cols[worst].drop) {
				worst = i
			}
		}
		if worst < 0 {
			break
		}
		cols = append(cols[:worst], cols[worst+1:]...)
	}
	return cols
}

// tableView renders the list area for the controller state.
type tableView struct {
	rows    []domain.QuotationSummary
	status  search.QueryStatus
	err     error
	cursor  int
	offset  int
	width   int
	height  int
	spinner string
}

func (v tableView) Render() string {
	switch {
	case v.status == search.QueryFailed:
		msg := "Could not load quotations."
		if v.err != nil {
			msg += " " + v.err.Error()
		}
		return v.placeholder(styleError().Render(truncateCell(msg, v.width-4)) + "\n" + styleMuted().Render("press r to retry"))
	case v.status == search.QueryLoading && len(v.rows) == 0:
		return v.placeholder(v.spinner + " Loading quotations…")
	case v.status == search.QueryIdle:
		return v.placeholder(styleMuted().Render("Waiting for the first query…"))
	case len(v.rows) == 0:
		return v.placeholder(styleMuted().Render("No quotations match the current filters."))
	}

	cols := fitColumns(v.width)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.title
	}

	visible := max(v.height-3, 1)
	end := min(v.offset+visible, len(v.rows))
	page := v.rows[v.offset:end]
	data := make([][]string, 0, len(page))
	for _, q := range page {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = truncateCell(c.cell(q), c.width)
		}
		data = append(data, cells)
	}

	p := theme.Current()
	statusCol := -1
	for i, c := range cols {
		if c.title == "Status" {
			statusCol = i
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(p.Border)).
		BorderColumn(false).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader().Width(cols[col].width)
			}
			q := page[row]
			base := styleText()
			if v.offset+row == v.cursor {
				base = styleSelectedRow()
			} else if col == statusCol {
				base = styleStatus(q.Status)
			} else if col == 0 {
				base = styleCode()
			}
			if col == statusCol && q.Overdue(timeNow()) && v.offset+row != v.cursor {
				base = base.Foreground(p.Error)
			}
			return base.Width(cols[col].width)
		})
	return t.Render()
}

func (v tableView) placeholder(content string) string {
	return lipgloss.Place(max(v.width-2, 1), max(v.height-2, 1), lipgloss.Center, lipgloss.Center, content)
}

// scrollOffset keeps cursor inside the visible window.
func scrollOffset(cursor, offset, visible int) int {
	if visible <= 0 {
		return 0
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visible {
		return cursor - visible + 1
	}
	return offset
}

// pageSummary renders "page 2/5 · 230 quotations".
func pageSummary(page, pages, total int) string {
	if pages <= 0 {
		return fmt.Sprintf("%d quotations", total)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "page %d/%d · %d quotation", page+1, pages, total)
	if total != 1 {
		b.WriteString("s")
	}
	return b.String()
}
