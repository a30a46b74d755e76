package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/grn/internal/core/contract"
)

// OutboundStore implements secondary.OutboundStore with SQLite. One row
// per receipt; re-closing replaces the payload in place.
type OutboundStore struct {
	db *sql.DB
}

// NewOutboundStore creates a new SQLite outbound contract store.
func NewOutboundStore(db *sql.DB) *OutboundStore {
	return &OutboundStore{db: db}
}

// Replace stores the payload, overwriting any prior payload for the same
// receipt id.
func (s *OutboundStore) Replace(ctx context.Context, p contract.Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode contract for %s: %w", p.ReceiptCode, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO outbound_contracts (receipt_id, receipt_code, closed_at, data)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(receipt_id) DO UPDATE SET receipt_code = excluded.receipt_code, closed_at = excluded.closed_at, data = excluded.data`,
		p.ReceiptID, p.ReceiptCode, p.ClosedAt, data,
	)
	if err != nil {
		return fmt.Errorf("failed to store contract: %w", err)
	}
	return nil
}

// GetByReceipt retrieves the payload emitted for a receipt.
func (s *OutboundStore) GetByReceipt(ctx context.Context, receiptID string) (*contract.Payload, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM outbound_contracts WHERE receipt_id = ?`, receiptID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no contract emitted for receipt %s", receiptID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}

	var p contract.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode contract: %w", err)
	}
	return &p, nil
}

// List retrieves every emitted payload, newest close first.
func (s *OutboundStore) List(ctx context.Context) ([]contract.Payload, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM outbound_contracts ORDER BY closed_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var out []contract.Payload
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		var p contract.Payload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode contract: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
