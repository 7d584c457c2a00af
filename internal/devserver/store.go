// Package devserver serves the quotation REST endpoints from a local SQLite
// database so the client can be exercised without the production backend.
package devserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"quotedesk/internal/api"
	"quotedesk/internal/debug"
	appErrors "quotedesk/internal/errors"
)

var storeLog = debug.Scope("devstore")

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id   TEXT PRIMARY KEY,
	code TEXT NOT NULL,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS suppliers (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	tax_code TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS quotations (
	id            TEXT PRIMARY KEY,
	code          TEXT NOT NULL,
	kind          TEXT NOT NULL,
	title         TEXT NOT NULL,
	status        TEXT NOT NULL,
	project_id    TEXT NOT NULL REFERENCES projects(id),
	supplier_id   TEXT NOT NULL REFERENCES suppliers(id),
	total_amount  TEXT NOT NULL,
	currency      TEXT NOT NULL,
	owner_id      TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	due_at        TEXT,
	notes         TEXT NOT NULL DEFAULT '',
	contact_name  TEXT NOT NULL DEFAULT '',
	contact_email TEXT NOT NULL DEFAULT '',
	updated_at    TEXT
);
CREATE INDEX IF NOT EXISTS idx_quotations_owner ON quotations(owner_id, created_at);
CREATE TABLE IF NOT EXISTS line_items (
	quotation_id TEXT NOT NULL REFERENCES quotations(id),
	position     INTEGER NOT NULL,
	name         TEXT NOT NULL,
	unit         TEXT NOT NULL,
	quantity     TEXT NOT NULL,
	unit_price   TEXT NOT NULL,
	PRIMARY KEY (quotation_id, position)
);
`

// ErrNotFound is returned when a quotation does not exist for the caller.
var ErrNotFound = appErrors.New(appErrors.CodeNotFound, "quotation not found", nil)

// QuotationFilter narrows ListQuotations. Empty slices do not filter.
type QuotationFilter struct {
	OwnerID     string
	Keyword     string
	States      []string
	ProjectIDs  []string
	SupplierIDs []string
	Page        int
	Size        int
}

// Store reads and seeds the demo database.
type Store struct {
	db   *sql.DB
	path string
}

// buildDSN creates a read-write WAL DSN for path.
func buildDSN(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "foreign_keys(1)")
	u.RawQuery = q.Encode()
	return u.String()
}

// OpenStore opens (creating if needed) the database at path and applies the
// schema.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "quotedesk-dev.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	storeLog.Logf("opened %s", path)
	return &Store{db: db, path: path}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// inClause renders "col IN (?,?)" and appends the values to args.
func inClause(col string, values []string, args []any) (string, []any) {
	marks := make([]string, len(values))
	for i, v := range values {
		marks[i] = "?"
		args = append(args, v)
	}
	return col + " IN (" + strings.Join(marks, ",") + ")", args
}

func likePattern(keyword string) string {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	kw = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(kw)
	return "%" + kw + "%"
}

const quotationColumns = `q.id, q.code, q.kind, q.title, q.status, q.project_id, p.name, q.supplier_id, s.name,
	q.total_amount, q.currency, q.owner_id, q.created_at, q.due_at`

const quotationFrom = `FROM quotations q
	JOIN projects p ON p.id = q.project_id
	JOIN suppliers s ON s.id = q.supplier_id`

// ListQuotations returns one page of the caller's quotations, newest first,
// and the number of matching rows.
func (s *Store) ListQuotations(ctx context.Context, f QuotationFilter) ([]api.QuotationDTO, int, error) {
	where := []string{"q.owner_id = ?"}
	args := []any{f.OwnerID}
	if strings.TrimSpace(f.Keyword) != "" {
		pattern := likePattern(f.Keyword)
		where = append(where, `(lower(q.code) LIKE ? ESCAPE '\' OR lower(q.title) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	for _, in := range []struct {
		col    string
		values []string
	}{
		{"q.status", f.States},
		{"q.project_id", f.ProjectIDs},
		{"q.supplier_id", f.SupplierIDs},
	} {
		if len(in.values) == 0 {
			continue
		}
		var clause string
		clause, args = inClause(in.col, in.values, args)
		where = append(where, clause)
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) "+quotationFrom+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotations: %w", err)
	}

	query := "SELECT " + quotationColumns + " " + quotationFrom + cond +
		" ORDER BY q.created_at DESC, q.id LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, append(args, f.Size, f.Page*f.Size)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query quotations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	out := []api.QuotationDTO{}
	for rows.Next() {
		dto, err := scanQuotation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, dto)
	}
	return out, total, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuotation(row scanner) (api.QuotationDTO, error) {
	var (
		dto     api.QuotationDTO
		amount  string
		created string
		due     sql.NullString
	)
	if err := row.Scan(&dto.ID, &dto.Code, &dto.Kind, &dto.Title, &dto.Status, &dto.ProjectID, &dto.ProjectName,
		&dto.SupplierID, &dto.SupplierName, &amount, &dto.Currency, &dto.OwnerID, &created, &due); err != nil {
		return api.QuotationDTO{}, fmt.Errorf("scan quotation: %w", err)
	}
	var err error
	if dto.TotalAmount, err = decimal.NewFromString(amount); err != nil {
		return api.QuotationDTO{}, fmt.Errorf("quotation %s amount: %w", dto.ID, err)
	}
	if dto.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return api.QuotationDTO{}, fmt.Errorf("quotation %s created_at: %w", dto.ID, err)
	}
	if dto.DueAt, err = parseNullTime(due); err != nil {
		return api.QuotationDTO{}, fmt.Errorf("quotation %s due_at: %w", dto.ID, err)
	}
	return dto, nil
}

func parseNullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetQuotation returns the full record when it belongs to ownerID.
func (s *Store) GetQuotation(ctx context.Context, ownerID, id string) (api.QuotationDetailDTO, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+quotationColumns+`, q.notes, q.contact_name, q.contact_email, q.updated_at `+
		quotationFrom+" WHERE q.id = ? AND q.owner_id = ?", id, ownerID)

	var (
		detail   api.QuotationDetailDTO
		amount   string
		created  string
		due      sql.NullString
		updated  sql.NullString
		summary  = &detail.QuotationDTO
		scanErr  error
		parseErr error
	)
	scanErr = row.Scan(&summary.ID, &summary.Code, &summary.Kind, &summary.Title, &summary.Status, &summary.ProjectID,
		&summary.ProjectName, &summary.SupplierID, &summary.SupplierName, &amount, &summary.Currency, &summary.OwnerID,
		&created, &due, &detail.Notes, &detail.ContactName, &detail.ContactEmail, &updated)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return api.QuotationDetailDTO{}, ErrNotFound
	}
	if scanErr != nil {
		return api.QuotationDetailDTO{}, fmt.Errorf("scan quotation %s: %w", id, scanErr)
	}
	if summary.TotalAmount, parseErr = decimal.NewFromString(amount); parseErr != nil {
		return api.QuotationDetailDTO{}, fmt.Errorf("quotation %s amount: %w", id, parseErr)
	}
	if summary.CreatedAt, parseErr = time.Parse(time.RFC3339, created); parseErr != nil {
		return api.QuotationDetailDTO{}, fmt.Errorf("quotation %s created_at: %w", id, parseErr)
	}
	if summary.DueAt, parseErr = parseNullTime(due); parseErr != nil {
		return api.QuotationDetailDTO{}, fmt.Errorf("quotation %s due_at: %w", id, parseErr)
	}
	if detail.UpdatedAt, parseErr = parseNullTime(updated); parseErr != nil {
		return api.QuotationDetailDTO{}, fmt.Errorf("quotation %s updated_at: %w", id, parseErr)
	}

	items, err := s.lineItems(ctx, id)
	if err != nil {
		return api.QuotationDetailDTO{}, err
	}
	detail.Items = items
	return detail, nil
}

func (s *Store) lineItems(ctx context.Context, quotationID string) ([]api.LineItemDTO, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, unit, quantity, unit_price
		FROM line_items
		WHERE quotation_id = ?
		ORDER BY position
	`, quotationID)
	if err != nil {
		return nil, fmt.Errorf("query line items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := []api.LineItemDTO{}
	for rows.Next() {
		var (
			item       api.LineItemDTO
			qty, price string
		)
		if err := rows.Scan(&item.Name, &item.Unit, &qty, &price); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		if item.Quantity, err = decimal.NewFromString(qty); err != nil {
			return nil, fmt.Errorf("line item quantity: %w", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("line item price: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SearchProjects matches keyword against project code and name.
func (s *Store) SearchProjects(ctx context.Context, keyword string, page, size int) ([]api.ProjectDTO, int, error) {
	cond, args := referenceCondition(keyword, "code", "name")
	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects"+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, "SELECT id, code, name FROM projects"+cond+" ORDER BY code LIMIT ? OFFSET ?",
		append(args, size, page*size)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query projects: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	out := []api.ProjectDTO{}
	for rows.Next() {
		var p api.ProjectDTO
		if err := rows.Scan(&p.ID, &p.Code, &p.Name); err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// SearchSuppliers matches keyword against supplier name and tax code.
func (s *Store) SearchSuppliers(ctx context.Context, keyword string, page, size int) ([]api.SupplierDTO, int, error) {
	cond, args := referenceCondition(keyword, "name", "tax_code")
	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM suppliers"+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, tax_code FROM suppliers"+cond+" ORDER BY name LIMIT ? OFFSET ?",
		append(args, size, page*size)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query suppliers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	out := []api.SupplierDTO{}
	for rows.Next() {
		var sup api.SupplierDTO
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.TaxCode); err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, sup)
	}
	return out, total, rows.Err()
}

func referenceCondition(keyword string, cols ...string) (string, []any) {
	if strings.TrimSpace(keyword) == "" {
		return "", nil
	}
	pattern := likePattern(keyword)
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		parts[i] = "lower(" + col + `) LIKE ? ESCAPE '\'`
		args[i] = pattern
	}
	return " WHERE " + strings.Join(parts, " OR "), args
}
