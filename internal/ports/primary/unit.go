package primary

import (
	"context"

	"github.com/example/grn/internal/core/serial"
	"github.com/example/grn/internal/models"
)

// UnitService defines the primary port for unit-level operations. Every
// operation loads the receipt, applies one logical change, and writes the
// full aggregate back.
type UnitService interface {
	// GenerateUnits serializes part of a line: count new units with
	// enterprise serials drawn from the requested block. All-or-nothing on
	// serial collision.
	GenerateUnits(ctx context.Context, req GenerateUnitsRequest) (*models.Receipt, error)

	// PrintLabels prints (or reprints) labels for the given units, or for
	// every unit on a line when LineID is set.
	PrintLabels(ctx context.Context, req PrintLabelsRequest) (*models.Receipt, error)

	// VoidLabel voids a printed label. A voided label admits no further
	// label actions.
	VoidLabel(ctx context.Context, req VoidLabelRequest) (*models.Receipt, error)

	// ScanUnit records a label scan, optionally capturing the vendor
	// barcode as the supplier serial reference.
	ScanUnit(ctx context.Context, req ScanUnitRequest) (*models.Receipt, error)

	// VerifyUnit marks a scanned unit as verified.
	VerifyUnit(ctx context.Context, req VerifyUnitRequest) (*models.Receipt, error)

	// Decide records a QC disposition on a verified or held unit.
	Decide(ctx context.Context, req DecideRequest) (*models.Receipt, error)

	// AssignPutaway records a storage location on a dispositioned unit.
	AssignPutaway(ctx context.Context, req PutawayRequest) (*models.Receipt, error)
}

// GenerateUnitsRequest contains parameters for serial generation.
type GenerateUnitsRequest struct {
	Actor         models.Actor
	ReceiptID     string
	LineID        string
	Count         int
	StartSequence int
	Mode          serial.Mode
}

// PrintLabelsRequest selects units for label printing. Set LineID to print
// every unit on a line, or list UnitIDs explicitly.
type PrintLabelsRequest struct {
	Actor     models.Actor
	ReceiptID string
	LineID    string
	UnitIDs   []string
}

// VoidLabelRequest voids one unit's label.
type VoidLabelRequest struct {
	Actor     models.Actor
	ReceiptID string
	UnitID    string
}

// ScanUnitRequest records a scan of one unit's label.
type ScanUnitRequest struct {
	Actor             models.Actor
	ReceiptID         string
	UnitID            string
	SupplierSerialRef string
}

// VerifyUnitRequest marks one unit verified.
type VerifyUnitRequest struct {
	Actor     models.Actor
	ReceiptID string
	UnitID    string
}

// DecideRequest records a QC disposition. Reason is required for HOLD and
// REJECT decisions.
type DecideRequest struct {
	Actor     models.Actor
	ReceiptID string
	UnitID    string
	Decision  models.DecisionCode
	Reason    string
}

// PutawayRequest assigns a storage location to one unit.
type PutawayRequest struct {
	Actor     models.Actor
	ReceiptID string
	UnitID    string
	Warehouse string
	Zone      string
	Bin       string
}
