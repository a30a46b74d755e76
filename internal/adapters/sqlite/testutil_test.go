// Package sqlite_test contains integration tests for the SQLite stores.
//
// All test setup loads the schema through db.GetSchemaSQL() so test
// schemas cannot drift from the authoritative one. Do not hardcode CREATE
// TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/grn/internal/db"
	"github.com/example/grn/internal/models"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// testReceipt builds a small aggregate with one trackable line and one
// serialized unit.
func testReceipt(id, code string, state models.ReceiptState) *models.Receipt {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	return &models.Receipt{
		ID:           id,
		Code:         code,
		SupplierID:   "SUP-001",
		SupplierName: "Voltaic Cells Pvt Ltd",
		CreatedBy:    "ramesh",
		CreatedAt:    now,
		UpdatedAt:    now,
		State:        state,
		Lines: []models.Line{
			{
				ID: id + "-line-1", ReceiptID: id, SKU: "CEL-21700-50E",
				Name: "21700 cylindrical cell", Category: models.CategoryCell,
				Trackability: models.Trackable, LotRef: "LOT-7",
				QtyExpected: 10, QtyReceived: 1,
				Units: []models.Unit{
					{
						ID: id + "-unit-1", LineID: id + "-line-1",
						EnterpriseSerial: "BP-CEL-0001000",
						State:            models.UnitStateCreated,
					},
				},
			},
		},
		Audit: []models.AuditEvent{
			{ID: id + "-ev-1", At: now, ActorRole: "INBOUND_OPERATOR", ActorName: "ramesh",
				Type: models.EventReceiptCreated, RefType: models.RefReceipt, RefID: id,
				Message: "receipt created"},
		},
	}
}

// seedPurchaseOrder inserts a purchase order with one line.
func seedPurchaseOrder(t *testing.T, database *sql.DB, id, code, supplierID, supplierName string) {
	t.Helper()
	if _, err := database.Exec(
		"INSERT INTO purchase_orders (id, code, supplier_id, supplier_name, status) VALUES (?, ?, ?, ?, 'open')",
		id, code, supplierID, supplierName,
	); err != nil {
		t.Fatalf("failed to seed purchase order: %v", err)
	}
	if _, err := database.Exec(
		"INSERT INTO po_lines (id, po_id, sku, name, category, qty_ordered) VALUES (?, ?, ?, ?, ?, ?)",
		id+"-l1", id, "CEL-21700-50E", "21700 cylindrical cell", "CELL", 200,
	); err != nil {
		t.Fatalf("failed to seed po line: %v", err)
	}
}

// seedSupplier inserts a supplier directory entry.
func seedSupplier(t *testing.T, database *sql.DB, id, name string) {
	t.Helper()
	if _, err := database.Exec("INSERT INTO suppliers (id, name) VALUES (?, ?)", id, name); err != nil {
		t.Fatalf("failed to seed supplier: %v", err)
	}
}
