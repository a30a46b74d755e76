// Package primary defines the primary ports (driving interfaces) for the
// application. Callers drive the
// engine exclusively through these services.
package primary

import (
	"context"

	"github.com/example/grn/internal/core/contract"
	"github.com/example/grn/internal/core/precondition"
	"github.com/example/grn/internal/core/validation"
	"github.com/example/grn/internal/models"
)

// ReceiptService defines the primary port for receipt operations.
type ReceiptService interface {
	// CreateReceipt creates a new receipt in DRAFT, manually or from an
	// open purchase order.
	CreateReceipt(ctx context.Context, req CreateReceiptRequest) (*models.Receipt, error)

	// GetReceipt retrieves a receipt by id.
	GetReceipt(ctx context.Context, id string) (*models.Receipt, error)

	// ListReceipts lists receipts with optional filters.
	ListReceipts(ctx context.Context, filters ReceiptFilters) ([]*models.Receipt, error)

	// SetActive records the receipt subsequent commands operate on.
	SetActive(ctx context.Context, id string) error

	// ActiveReceipt returns the active receipt, or nil if none is set.
	ActiveReceipt(ctx context.Context) (*models.Receipt, error)

	// UpdateIntake captures commercial evidence on a receipt.
	UpdateIntake(ctx context.Context, req UpdateIntakeRequest) (*models.Receipt, error)

	// AddAttachment records attachment metadata on a receipt.
	AddAttachment(ctx context.Context, req AddAttachmentRequest) (*models.Receipt, error)

	// AddLine appends a line to a receipt.
	AddLine(ctx context.Context, req AddLineRequest) (*models.Receipt, error)

	// UpdateLine edits quantities, lot data, or (admin only) the
	// trackability flag of a line.
	UpdateLine(ctx context.Context, req UpdateLineRequest) (*models.Receipt, error)

	// Validate runs structural validation and records a validation-run
	// audit event. The result is returned as a value, never an error.
	Validate(ctx context.Context, receiptID string, actor models.Actor) (validation.Result, error)

	// Transition moves the receipt along its lifecycle graph.
	Transition(ctx context.Context, req TransitionRequest) (*models.Receipt, error)

	// DecideOutcome resolves the QC_PENDING fan-out from aggregate unit
	// results and applies the resulting transition.
	DecideOutcome(ctx context.Context, receiptID string, actor models.Actor) (*models.Receipt, error)

	// Preconditions evaluates the five closure readiness gates.
	Preconditions(ctx context.Context, receiptID string) ([]precondition.Check, error)

	// Close runs closure validation plus preconditions, transitions the
	// receipt to CLOSED, and emits the downstream contract. Gate failures
	// are reported in the result, not as an error.
	Close(ctx context.Context, req CloseRequest) (*CloseResult, error)

	// ListContracts returns every emitted downstream payload.
	ListContracts(ctx context.Context) ([]contract.Payload, error)
}

// CreateReceiptRequest contains parameters for creating a receipt. Set
// POID to copy supplier and lines from an open purchase order; otherwise
// supply the supplier directly.
type CreateReceiptRequest struct {
	Actor        models.Actor
	POID         string
	SupplierID   string
	SupplierName string
}

// ReceiptFilters contains filter options for listing receipts.
type ReceiptFilters struct {
	State models.ReceiptState
	Limit int
}

// UpdateIntakeRequest captures commercial evidence fields. Empty fields
// are left unchanged.
type UpdateIntakeRequest struct {
	Actor           models.Actor
	ReceiptID       string
	InvoiceNumber   string
	InvoiceDate     string
	PackingListRef  string
	TransportDocRef string
}

// AddAttachmentRequest records one attachment's metadata.
type AddAttachmentRequest struct {
	Actor     models.Actor
	ReceiptID string
	Name      string
	Type      models.AttachmentType
}

// AddLineRequest contains parameters for adding a line. An empty
// Trackability takes the category default.
type AddLineRequest struct {
	Actor        models.Actor
	ReceiptID    string
	SKU          string
	Name         string
	Category     models.ItemCategory
	Trackability models.ItemTrackability
	LotRef       string
	MfgDate      string
	ExpiryDate   string
	QtyExpected  int
	QtyReceived  int
}

// UpdateLineRequest edits a line. Nil fields are left unchanged; the
// trackability toggle is restricted to admins.
type UpdateLineRequest struct {
	Actor        models.Actor
	ReceiptID    string
	LineID       string
	QtyReceived  *int
	LotRef       *string
	Trackability *models.ItemTrackability
}

// TransitionRequest moves a receipt to a target state.
type TransitionRequest struct {
	Actor     models.Actor
	ReceiptID string
	To        models.ReceiptState
}

// CloseRequest contains parameters for closing a receipt. PlantID
// identifies the receiving plant in the downstream payload.
type CloseRequest struct {
	Actor     models.Actor
	ReceiptID string
	PlantID   string
}

// CloseResult reports the outcome of a close attempt. When Closed is
// false, Validation and Preconditions carry the failing gates and no state
// was changed.
type CloseResult struct {
	Closed        bool
	Receipt       *models.Receipt
	Payload       *contract.Payload
	Validation    validation.Result
	Preconditions []precondition.Check
}
