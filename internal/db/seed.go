package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with demo suppliers and open
// purchase orders so the intake flow has something to pull from. Safe to
// rerun; existing fixtures are left in place.
func SeedFixtures(database *sql.DB) error {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM purchase_orders").Scan(&count); err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if count > 0 {
		return nil
	}

	suppliers := []struct{ id, name string }{
		{"SUP-001", "Voltaic Cells Pvt Ltd"},
		{"SUP-002", "Brightspark BMS Co"},
		{"SUP-003", "Meridian Logistics Supply"},
	}
	for _, s := range suppliers {
		if _, err := database.Exec(
			"INSERT INTO suppliers (id, name) VALUES (?, ?)",
			s.id, s.name,
		); err != nil {
			return fmt.Errorf("seed suppliers: %w", err)
		}
	}

	orders := []struct{ id, code, supplierID, supplierName string }{
		{"PO-001", "PO-2024-0117", "SUP-001", "Voltaic Cells Pvt Ltd"},
		{"PO-002", "PO-2024-0121", "SUP-002", "Brightspark BMS Co"},
		{"PO-003", "PO-2024-0125", "SUP-003", "Meridian Logistics Supply"},
	}
	for _, po := range orders {
		if _, err := database.Exec(
			"INSERT INTO purchase_orders (id, code, supplier_id, supplier_name, status) VALUES (?, ?, ?, ?, 'open')",
			po.id, po.code, po.supplierID, po.supplierName,
		); err != nil {
			return fmt.Errorf("seed purchase orders: %w", err)
		}
	}

	lines := []struct {
		id, poID, sku, name, category string
		qty                           int
	}{
		{"POL-001", "PO-001", "CEL-21700-50E", "21700 cylindrical cell 5000mAh", "CELL", 200},
		{"POL-002", "PO-001", "CEL-18650-35E", "18650 cylindrical cell 3500mAh", "CELL", 400},
		{"POL-003", "PO-002", "BMS-16S-100A", "16S 100A battery management unit", "BMS", 50},
		{"POL-004", "PO-002", "IOT-GPS-4G", "4G GPS telemetry module", "IOT", 50},
		{"POL-005", "PO-003", "MISC-BUSBAR-CU", "Copper busbar 3mm", "MISC", 120},
		{"POL-006", "PO-003", "MISC-THERMAL-PAD", "Thermal interface pad", "MISC", 300},
	}
	for _, ln := range lines {
		if _, err := database.Exec(
			"INSERT INTO po_lines (id, po_id, sku, name, category, qty_ordered) VALUES (?, ?, ?, ?, ?, ?)",
			ln.id, ln.poID, ln.sku, ln.name, ln.category, ln.qty,
		); err != nil {
			return fmt.Errorf("seed po lines: %w", err)
		}
	}

	return nil
}
