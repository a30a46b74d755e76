package primary

import "context"

// IntakeService defines the primary port for the mocked upstream lookups
// used to populate intake choices.
type IntakeService interface {
	// ListOpenPurchaseOrders retrieves every open purchase order.
	ListOpenPurchaseOrders(ctx context.Context) ([]*PurchaseOrder, error)

	// ListSuppliers retrieves the supplier directory.
	ListSuppliers(ctx context.Context) ([]*Supplier, error)
}

// PurchaseOrder is an open purchase order at the port boundary.
type PurchaseOrder struct {
	ID           string
	Code         string
	SupplierID   string
	SupplierName string
	Lines        []POLine
}

// POLine is one item on a purchase order.
type POLine struct {
	SKU        string
	Name       string
	Category   string
	QtyOrdered int
}

// Supplier is one supplier directory entry.
type Supplier struct {
	ID   string
	Name string
}
