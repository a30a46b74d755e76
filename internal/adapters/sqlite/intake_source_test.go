package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/grn/internal/adapters/sqlite"
)

func TestPurchaseOrderSourceListOpen(t *testing.T) {
	database := setupTestDB(t)
	src := sqlite.NewPurchaseOrderSource(database)
	ctx := context.Background()

	seedPurchaseOrder(t, database, "PO-001", "PO-2024-0117", "SUP-001", "Voltaic Cells Pvt Ltd")
	seedPurchaseOrder(t, database, "PO-002", "PO-2024-0121", "SUP-002", "Brightspark BMS Co")
	if _, err := database.Exec("UPDATE purchase_orders SET status = 'received' WHERE id = 'PO-002'"); err != nil {
		t.Fatalf("failed to mark received: %v", err)
	}

	got, err := src.ListOpen(ctx)
	if err != nil {
		t.Fatalf("ListOpen() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want only the open order", len(got))
	}
	if got[0].Code != "PO-2024-0117" {
		t.Errorf("code = %s, want PO-2024-0117", got[0].Code)
	}
	if len(got[0].Lines) != 1 || got[0].Lines[0].Category != "CELL" {
		t.Errorf("lines = %+v, want one CELL line", got[0].Lines)
	}
}

func TestPurchaseOrderSourceGetByID(t *testing.T) {
	database := setupTestDB(t)
	src := sqlite.NewPurchaseOrderSource(database)
	ctx := context.Background()

	seedPurchaseOrder(t, database, "PO-001", "PO-2024-0117", "SUP-001", "Voltaic Cells Pvt Ltd")

	got, err := src.GetByID(ctx, "PO-001")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.SupplierName != "Voltaic Cells Pvt Ltd" || got.Lines[0].QtyOrdered != 200 {
		t.Errorf("got %+v, want seeded order with 200 ordered", got)
	}

	if _, err := src.GetByID(ctx, "PO-404"); err == nil {
		t.Error("GetByID() on missing order succeeded, want error")
	}
}

func TestSupplierDirectoryList(t *testing.T) {
	database := setupTestDB(t)
	dir := sqlite.NewSupplierDirectory(database)

	seedSupplier(t, database, "SUP-002", "Brightspark BMS Co")
	seedSupplier(t, database, "SUP-001", "Voltaic Cells Pvt Ltd")

	got, err := dir.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "Brightspark BMS Co" {
		t.Errorf("got[0].Name = %s, want alphabetical order", got[0].Name)
	}
}
