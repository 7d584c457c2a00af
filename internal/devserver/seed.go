package devserver

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type seedProject struct{ id, code, name string }

type seedSupplier struct{ id, name, taxCode string }

type seedItem struct {
	name, unit string
	qty, price int64
}

var seedProjects = []seedProject{
	{"p-1", "PRJ-HN01", "Hanoi Metro Line 3"},
	{"p-2", "PRJ-DN02", "Da Nang Riverside Towers"},
	{"p-3", "PRJ-SG03", "Saigon Logistics Hub"},
	{"p-4", "PRJ-HP04", "Hai Phong Port Expansion"},
}

var seedSuppliers = []seedSupplier{
	{"s-1", "Hoa Phat Steel", "0100233583"},
	{"s-2", "Vinaconex Materials", "0100105616"},
	{"s-3", "An Phat Plastics", "0800373586"},
	{"s-4", "Thien Long Electrics", "0301464830"},
}

var seedCatalog = []seedItem{
	{"Steel pipe DN100", "m", 120, 385000},
	{"Rebar D16", "kg", 2500, 17500},
	{"HDPE sheet 2mm", "m2", 300, 92000},
	{"Cable CVV 4x16", "m", 800, 156000},
	{"Portland cement PCB40", "bag", 900, 86000},
}

var seedStatuses = []string{"SUBMITTED", "APPROVED", "REJECTED"}

// SeedOwners are the identities the demo rows belong to.
var SeedOwners = []string{"u-1", "u-2"}

// Seed fills an empty database with demo rows dated back from now. It does
// nothing when projects already exist and reports whether it inserted.
func (s *Store) Seed(ctx context.Context, now time.Time) (bool, error) {
	var existing int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&existing); err != nil {
		return false, fmt.Errorf("count projects: %w", err)
	}
	if existing > 0 {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range seedProjects {
		if _, err := tx.ExecContext(ctx, "INSERT INTO projects (id, code, name) VALUES (?, ?, ?)", p.id, p.code, p.name); err != nil {
			return false, fmt.Errorf("insert project %s: %w", p.id, err)
		}
	}
	for _, sup := range seedSuppliers {
		if _, err := tx.ExecContext(ctx, "INSERT INTO suppliers (id, name, tax_code) VALUES (?, ?, ?)", sup.id, sup.name, sup.taxCode); err != nil {
			return false, fmt.Errorf("insert supplier %s: %w", sup.id, err)
		}
	}

	for i := range 36 {
		if err := insertSeedQuotation(ctx, tx, i, now); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	storeLog.Logf("seeded %d projects, %d suppliers, 36 quotations", len(seedProjects), len(seedSuppliers))
	return true, nil
}

func insertSeedQuotation(ctx context.Context, tx *sql.Tx, i int, now time.Time) error {
	project := seedProjects[i%len(seedProjects)]
	supplier := seedSuppliers[(i/2)%len(seedSuppliers)]
	owner := SeedOwners[i%len(SeedOwners)]
	kind, prefix := "RFQ", "RFQ"
	if i%3 == 2 {
		kind, prefix = "QUOTATION", "QT"
	}
	id := fmt.Sprintf("q-%03d", i+1)
	code := fmt.Sprintf("%s-2026-%04d", prefix, i+1)
	created := now.Add(-time.Duration(i*26) * time.Hour).UTC().Truncate(time.Second)
	due := created.Add(14 * 24 * time.Hour)

	items := []seedItem{seedCatalog[i%len(seedCatalog)], seedCatalog[(i+2)%len(seedCatalog)]}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromInt(it.qty).Mul(decimal.NewFromInt(it.price)))
	}

	title := fmt.Sprintf("%s for %s", items[0].name, project.name)
	notes := fmt.Sprintf("Delivery to **%s** site.\n\n- Payment: 30%% advance\n- Warranty: 12 months", project.name)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO quotations (id, code, kind, title, status, project_id, supplier_id, total_amount, currency,
			owner_id, created_at, due_at, notes, contact_name, contact_email, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'VND', ?, ?, ?, ?, ?, ?, ?)
	`, id, code, kind, title, seedStatuses[i%len(seedStatuses)], project.id, supplier.id, total.String(),
		owner, created.Format(time.RFC3339), due.Format(time.RFC3339), notes,
		"Nguyen Van An", "sales@"+supplier.id+".example.vn", created.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert quotation %s: %w", id, err)
	}

	for pos, it := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO line_items (quotation_id, position, name, unit, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, pos, it.name, it.unit, decimal.NewFromInt(it.qty).String(), decimal.NewFromInt(it.price).String()); err != nil {
			return fmt.Errorf("insert line item %s/%d: %w", id, pos, err)
		}
	}
	return nil
}
