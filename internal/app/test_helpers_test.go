package app

import (
	"context"
	"fmt"

	"github.com/example/grn/internal/core/contract"
	"github.com/example/grn/internal/models"
	"github.com/example/grn/internal/ports/secondary"
)

// Ensure the mocks implement the secondary ports.
var (
	_ secondary.ReceiptStore        = (*mockReceiptStore)(nil)
	_ secondary.OutboundStore       = (*mockOutboundStore)(nil)
	_ secondary.PurchaseOrderSource = (*mockOrderSource)(nil)
	_ secondary.SupplierDirectory   = (*mockSupplierDirectory)(nil)
)

// mockReceiptStore implements secondary.ReceiptStore in memory. Get and
// Upsert exchange clones, matching a real store's read/write semantics.
type mockReceiptStore struct {
	receipts map[string]models.Receipt
	active   string
	nextCode int
	upserts  int

	upsertErr error
}

func newMockReceiptStore() *mockReceiptStore {
	return &mockReceiptStore{receipts: make(map[string]models.Receipt), nextCode: 1}
}

func (m *mockReceiptStore) Get(ctx context.Context, id string) (*models.Receipt, error) {
	r, ok := m.receipts[id]
	if !ok {
		return nil, fmt.Errorf("receipt %s not found", id)
	}
	out := r.Clone()
	return &out, nil
}

func (m *mockReceiptStore) List(ctx context.Context, filters secondary.ReceiptFilters) ([]*models.Receipt, error) {
	var out []*models.Receipt
	for _, r := range m.receipts {
		if filters.State != "" && r.State != filters.State {
			continue
		}
		c := r.Clone()
		out = append(out, &c)
	}
	return out, nil
}

func (m *mockReceiptStore) Upsert(ctx context.Context, r *models.Receipt) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	m.receipts[r.ID] = r.Clone()
	return nil
}

func (m *mockReceiptStore) NextCode(ctx context.Context) (string, error) {
	code := fmt.Sprintf("GRN-%04d", m.nextCode)
	m.nextCode++
	return code, nil
}

func (m *mockReceiptStore) SetActive(ctx context.Context, id string) error {
	m.active = id
	return nil
}

func (m *mockReceiptStore) GetActive(ctx context.Context) (string, error) {
	return m.active, nil
}

// seed stores a receipt directly, bypassing the service layer.
func (m *mockReceiptStore) seed(r models.Receipt) {
	m.receipts[r.ID] = r.Clone()
}

// mockOutboundStore implements secondary.OutboundStore in memory.
type mockOutboundStore struct {
	payloads map[string]contract.Payload
	replaces int
}

func newMockOutboundStore() *mockOutboundStore {
	return &mockOutboundStore{payloads: make(map[string]contract.Payload)}
}

func (m *mockOutboundStore) Replace(ctx context.Context, p contract.Payload) error {
	m.replaces++
	m.payloads[p.ReceiptID] = p
	return nil
}

func (m *mockOutboundStore) GetByReceipt(ctx context.Context, receiptID string) (*contract.Payload, error) {
	p, ok := m.payloads[receiptID]
	if !ok {
		return nil, fmt.Errorf("no contract emitted for receipt %s", receiptID)
	}
	return &p, nil
}

func (m *mockOutboundStore) List(ctx context.Context) ([]contract.Payload, error) {
	var out []contract.Payload
	for _, p := range m.payloads {
		out = append(out, p)
	}
	return out, nil
}

// mockOrderSource implements secondary.PurchaseOrderSource.
type mockOrderSource struct {
	orders []*secondary.PurchaseOrderRecord
}

func (m *mockOrderSource) ListOpen(ctx context.Context) ([]*secondary.PurchaseOrderRecord, error) {
	return m.orders, nil
}

func (m *mockOrderSource) GetByID(ctx context.Context, id string) (*secondary.PurchaseOrderRecord, error) {
	for _, po := range m.orders {
		if po.ID == id {
			return po, nil
		}
	}
	return nil, fmt.Errorf("purchase order %s not found", id)
}

// mockSupplierDirectory implements secondary.SupplierDirectory.
type mockSupplierDirectory struct {
	suppliers []*secondary.SupplierRecord
}

func (m *mockSupplierDirectory) List(ctx context.Context) ([]*secondary.SupplierRecord, error) {
	return m.suppliers, nil
}
