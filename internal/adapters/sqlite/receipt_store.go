// Package sqlite contains SQLite implementations of the secondary ports.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/grn/internal/models"
	"github.com/example/grn/internal/ports/secondary"
)

const activeReceiptKey = "active_receipt"

// ReceiptStore implements secondary.ReceiptStore with SQLite. Receipts are
// stored as whole JSON documents; code and state are lifted into columns
// for listing and uniqueness.
type ReceiptStore struct {
	db *sql.DB
}

// NewReceiptStore creates a new SQLite receipt store.
func NewReceiptStore(db *sql.DB) *ReceiptStore {
	return &ReceiptStore{db: db}
}

// Get retrieves a receipt aggregate by id.
func (s *ReceiptStore) Get(ctx context.Context, id string) (*models.Receipt, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM receipts WHERE id = ?`, id,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("receipt %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	var r models.Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode receipt %s: %w", id, err)
	}
	return &r, nil
}

// List retrieves receipts matching the given filters, newest first.
func (s *ReceiptStore) List(ctx context.Context, filters secondary.ReceiptFilters) ([]*models.Receipt, error) {
	query := `SELECT data FROM receipts`
	args := []interface{}{}

	if filters.State != "" {
		query += ` WHERE state = ?`
		args = append(args, string(filters.State))
	}
	query += ` ORDER BY created_at DESC`
	if filters.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filters.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var out []*models.Receipt
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		var r models.Receipt
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to decode receipt: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// Upsert writes the full receipt aggregate, replacing any prior value.
func (s *ReceiptStore) Upsert(ctx context.Context, r *models.Receipt) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode receipt %s: %w", r.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO receipts (id, code, state, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET code = excluded.code, state = excluded.state, data = excluded.data, updated_at = excluded.updated_at`,
		r.ID, r.Code, string(r.State), data, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert receipt: %w", err)
	}
	return nil
}

// NextCode allocates the next human-readable receipt code.
func (s *ReceiptStore) NextCode(ctx context.Context) (string, error) {
	var max int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(CAST(SUBSTR(code, 5) AS INTEGER)), 0) FROM receipts`,
	).Scan(&max)
	if err != nil {
		return "", fmt.Errorf("failed to allocate receipt code: %w", err)
	}
	return fmt.Sprintf("GRN-%04d", max+1), nil
}

// SetActive records the active receipt pointer.
func (s *ReceiptStore) SetActive(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		activeReceiptKey, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set active receipt: %w", err)
	}
	return nil
}

// GetActive returns the active receipt id, or empty if none is set.
func (s *ReceiptStore) GetActive(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, activeReceiptKey,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get active receipt: %w", err)
	}
	return id, nil
}
