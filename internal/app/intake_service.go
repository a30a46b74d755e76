package app

import (
	"context"
	"fmt"

	"github.com/example/grn/internal/ports/primary"
	"github.com/example/grn/internal/ports/secondary"
)

// IntakeServiceImpl implements the IntakeService interface over the mocked
// upstream sources.
type IntakeServiceImpl struct {
	orders    secondary.PurchaseOrderSource
	suppliers secondary.SupplierDirectory
}

// NewIntakeService creates a new IntakeService with injected sources.
func NewIntakeService(orders secondary.PurchaseOrderSource, suppliers secondary.SupplierDirectory) *IntakeServiceImpl {
	return &IntakeServiceImpl{orders: orders, suppliers: suppliers}
}

// ListOpenPurchaseOrders retrieves every open purchase order.
func (s *IntakeServiceImpl) ListOpenPurchaseOrders(ctx context.Context) ([]*primary.PurchaseOrder, error) {
	records, err := s.orders.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}

	out := make([]*primary.PurchaseOrder, 0, len(records))
	for _, rec := range records {
		po := &primary.PurchaseOrder{
			ID:           rec.ID,
			Code:         rec.Code,
			SupplierID:   rec.SupplierID,
			SupplierName: rec.SupplierName,
		}
		for _, ln := range rec.Lines {
			po.Lines = append(po.Lines, primary.POLine{
				SKU:        ln.SKU,
				Name:       ln.Name,
				Category:   ln.Category,
				QtyOrdered: ln.QtyOrdered,
			})
		}
		out = append(out, po)
	}
	return out, nil
}

// ListSuppliers retrieves the supplier directory.
func (s *IntakeServiceImpl) ListSuppliers(ctx context.Context) ([]*primary.Supplier, error) {
	records, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	out := make([]*primary.Supplier, 0, len(records))
	for _, rec := range records {
		out = append(out, &primary.Supplier{ID: rec.ID, Name: rec.Name})
	}
	return out, nil
}
