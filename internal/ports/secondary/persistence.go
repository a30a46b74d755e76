// Package secondary defines the secondary ports (driven adapters) for the
// application. The engine treats persistence as an opaque store: callers
// read a receipt, apply one logical operation, and write the full updated
// aggregate back before any other operation observes it.
package secondary

import (
	"context"

	"github.com/example/grn/internal/core/contract"
	"github.com/example/grn/internal/models"
)

// ReceiptStore defines the secondary port for receipt persistence. The
// store holds whole aggregates; the engine never performs partial writes.
type ReceiptStore interface {
	// Get retrieves a receipt aggregate by id.
	Get(ctx context.Context, id string) (*models.Receipt, error)

	// List retrieves receipts matching the given filters.
	List(ctx context.Context, filters ReceiptFilters) ([]*models.Receipt, error)

	// Upsert writes the full receipt aggregate, replacing any prior value.
	Upsert(ctx context.Context, r *models.Receipt) error

	// NextCode allocates the next human-readable receipt code (GRN-NNNN).
	NextCode(ctx context.Context) (string, error)

	// SetActive records the active receipt pointer.
	SetActive(ctx context.Context, id string) error

	// GetActive returns the active receipt id, or empty if none is set.
	GetActive(ctx context.Context) (string, error)
}

// ReceiptFilters contains filter options for querying receipts.
type ReceiptFilters struct {
	State models.ReceiptState
	Limit int
}

// OutboundStore defines the secondary port for emitted downstream
// contracts. Re-closing a receipt replaces its prior payload rather than
// appending a duplicate.
type OutboundStore interface {
	// Replace stores the payload, overwriting any prior payload for the
	// same receipt id.
	Replace(ctx context.Context, p contract.Payload) error

	// GetByReceipt retrieves the payload emitted for a receipt.
	GetByReceipt(ctx context.Context, receiptID string) (*contract.Payload, error)

	// List retrieves every emitted payload.
	List(ctx context.Context) ([]contract.Payload, error)
}

// PurchaseOrderRecord is an open purchase order as provided by the mocked
// upstream order source. The engine never validates this data.
type PurchaseOrderRecord struct {
	ID           string
	Code         string
	SupplierID   string
	SupplierName string
	Lines        []POLineRecord
}

// POLineRecord is one item on a purchase order.
type POLineRecord struct {
	SKU        string
	Name       string
	Category   string
	QtyOrdered int
}

// PurchaseOrderSource defines the secondary port for upstream purchase
// order lookups, used only to populate intake choices.
type PurchaseOrderSource interface {
	// ListOpen retrieves every open purchase order.
	ListOpen(ctx context.Context) ([]*PurchaseOrderRecord, error)

	// GetByID retrieves one purchase order.
	GetByID(ctx context.Context, id string) (*PurchaseOrderRecord, error)
}

// SupplierRecord is one entry in the supplier directory.
type SupplierRecord struct {
	ID   string
	Name string
}

// SupplierDirectory defines the secondary port for supplier lookups.
type SupplierDirectory interface {
	// List retrieves the supplier directory.
	List(ctx context.Context) ([]*SupplierRecord, error)
}
