package db

import "fmt"

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database schema. All adapter
// tests load it via GetSchemaSQL() so that test schemas cannot drift from
// the production one.
//
// Receipts are stored document-style: the full aggregate (lines, units,
// audit trail) is serialized as JSON in the data column, with a handful of
// indexed columns lifted out for listing. Every write replaces the whole
// document.
const SchemaSQL = `
-- Receipts (full aggregate as JSON document)
CREATE TABLE IF NOT EXISTS receipts (
	id TEXT PRIMARY KEY,
	code TEXT NOT NULL UNIQUE,
	state TEXT NOT NULL CHECK(state IN ('DRAFT', 'RECEIVING', 'SERIALIZATION_IN_PROGRESS', 'QC_PENDING', 'ACCEPTED', 'PARTIAL_ACCEPTED', 'REJECTED', 'PUTAWAY_IN_PROGRESS', 'PUTAWAY_COMPLETE', 'CLOSED')),
	data TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Meta (single-row pointers like the active receipt)
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

-- Outbound contracts (one payload per closed receipt, replaced on re-close)
CREATE TABLE IF NOT EXISTS outbound_contracts (
	receipt_id TEXT PRIMARY KEY,
	receipt_code TEXT NOT NULL,
	closed_at DATETIME NOT NULL,
	data TEXT NOT NULL,
	FOREIGN KEY (receipt_id) REFERENCES receipts(id)
);

-- Purchase orders (mocked upstream source)
CREATE TABLE IF NOT EXISTS purchase_orders (
	id TEXT PRIMARY KEY,
	code TEXT NOT NULL UNIQUE,
	supplier_id TEXT NOT NULL,
	supplier_name TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('open', 'received', 'cancelled')) DEFAULT 'open',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS po_lines (
	id TEXT PRIMARY KEY,
	po_id TEXT NOT NULL,
	sku TEXT NOT NULL,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	qty_ordered INTEGER NOT NULL,
	FOREIGN KEY (po_id) REFERENCES purchase_orders(id) ON DELETE CASCADE
);

-- Suppliers (mocked upstream directory)
CREATE TABLE IF NOT EXISTS suppliers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes
CREATE INDEX IF NOT EXISTS idx_receipts_state ON receipts(state);
CREATE INDEX IF NOT EXISTS idx_po_lines_po_id ON po_lines(po_id);
`

// InitSchema creates the schema for fresh installs and brings existing
// databases up to date.
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Fresh install - apply the full schema and stamp the latest version
		if _, err := db.Exec(SchemaSQL); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		if err := stampLatestVersion(); err != nil {
			return err
		}
		return nil
	}

	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema for use in tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
