package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/grn/internal/ports/secondary"
)

// PurchaseOrderSource implements secondary.PurchaseOrderSource over the
// seeded purchase order tables.
type PurchaseOrderSource struct {
	db *sql.DB
}

// NewPurchaseOrderSource creates a new SQLite purchase order source.
func NewPurchaseOrderSource(db *sql.DB) *PurchaseOrderSource {
	return &PurchaseOrderSource{db: db}
}

// ListOpen retrieves every open purchase order with its lines.
func (s *PurchaseOrderSource) ListOpen(ctx context.Context) ([]*secondary.PurchaseOrderRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, code, supplier_id, supplier_name FROM purchase_orders WHERE status = 'open' ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*secondary.PurchaseOrderRecord
	for rows.Next() {
		rec := &secondary.PurchaseOrderRecord{}
		if err := rows.Scan(&rec.ID, &rec.Code, &rec.SupplierID, &rec.SupplierName); err != nil {
			return nil, fmt.Errorf("failed to scan purchase order: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rec := range out {
		lines, err := s.linesFor(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Lines = lines
	}
	return out, nil
}

// GetByID retrieves one purchase order with its lines.
func (s *PurchaseOrderSource) GetByID(ctx context.Context, id string) (*secondary.PurchaseOrderRecord, error) {
	rec := &secondary.PurchaseOrderRecord{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, code, supplier_id, supplier_name FROM purchase_orders WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Code, &rec.SupplierID, &rec.SupplierName)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("purchase order %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}

	lines, err := s.linesFor(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Lines = lines
	return rec, nil
}

func (s *PurchaseOrderSource) linesFor(ctx context.Context, poID string) ([]secondary.POLineRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sku, name, category, qty_ordered FROM po_lines WHERE po_id = ? ORDER BY id`, poID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list po lines: %w", err)
	}
	defer rows.Close()

	var out []secondary.POLineRecord
	for rows.Next() {
		var ln secondary.POLineRecord
		if err := rows.Scan(&ln.SKU, &ln.Name, &ln.Category, &ln.QtyOrdered); err != nil {
			return nil, fmt.Errorf("failed to scan po line: %w", err)
		}
		out = append(out, ln)
	}
	return out, rows.Err()
}

// SupplierDirectory implements secondary.SupplierDirectory over the seeded
// suppliers table.
type SupplierDirectory struct {
	db *sql.DB
}

// NewSupplierDirectory creates a new SQLite supplier directory.
func NewSupplierDirectory(db *sql.DB) *SupplierDirectory {
	return &SupplierDirectory{db: db}
}

// List retrieves the supplier directory.
func (s *SupplierDirectory) List(ctx context.Context) ([]*secondary.SupplierRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM suppliers ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var out []*secondary.SupplierRecord
	for rows.Next() {
		rec := &secondary.SupplierRecord{}
		if err := rows.Scan(&rec.ID, &rec.Name); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
