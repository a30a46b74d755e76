package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/grn/internal/core/rbac"
	"github.com/example/grn/internal/core/serial"
	"github.com/example/grn/internal/core/unit"
	"github.com/example/grn/internal/models"
	"github.com/example/grn/internal/ports/primary"
	"github.com/example/grn/internal/ports/secondary"
)

// UnitServiceImpl implements the UnitService interface.
type UnitServiceImpl struct {
	receipts secondary.ReceiptStore
}

// NewUnitService creates a new UnitService with an injected store.
func NewUnitService(receipts secondary.ReceiptStore) *UnitServiceImpl {
	return &UnitServiceImpl{receipts: receipts}
}

// findUnit locates a unit within the receipt. The returned pointers index
// into the receipt's own slices.
func findUnit(r *models.Receipt, unitID string) (*models.Line, *models.Unit, error) {
	for i := range r.Lines {
		for j := range r.Lines[i].Units {
			if r.Lines[i].Units[j].ID == unitID {
				return &r.Lines[i], &r.Lines[i].Units[j], nil
			}
		}
	}
	return nil, nil, fmt.Errorf("unit %s not found on receipt %s", unitID, r.Code)
}

// GenerateUnits serializes part of a trackable line. Generation is
// all-or-nothing: on serial collision nothing is appended and the caller
// must retry with a different seed.
func (s *UnitServiceImpl) GenerateUnits(ctx context.Context, req primary.GenerateUnitsRequest) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionAssignSerials, r.State); err != nil {
		return nil, err
	}

	ln := r.Line(req.LineID)
	if ln == nil {
		return nil, fmt.Errorf("line %s not found on receipt %s", req.LineID, r.Code)
	}
	if !ln.IsTrackable() {
		return nil, fmt.Errorf("line %s is not trackable", ln.Name)
	}

	existing := map[string]bool{}
	for _, u := range r.Units() {
		existing[u.EnterpriseSerial] = true
	}

	units, err := serial.GenerateUnits(ln.ID, ln.Category, req.Count, req.StartSequence, req.Mode, existing)
	if err != nil {
		return nil, err
	}
	ln.Units = append(ln.Units, units...)

	now := time.Now().UTC()
	r.UpdatedAt = now
	prependAudit(r, models.NewAuditEvent(req.Actor, models.EventUnitsGenerated, models.RefLine, ln.ID,
		fmt.Sprintf("%d unit(s) serialized on %s (%s .. %s)", len(units), ln.Name,
			units[0].EnterpriseSerial, units[len(units)-1].EnterpriseSerial), now))

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return r, nil
}

// PrintLabels prints (or reprints) labels for the selected units. Units
// still in CREATED move to LABELED as part of the print.
func (s *UnitServiceImpl) PrintLabels(ctx context.Context, req primary.PrintLabelsRequest) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionPrintLabels, r.State); err != nil {
		return nil, err
	}

	targets := req.UnitIDs
	if req.LineID != "" {
		ln := r.Line(req.LineID)
		if ln == nil {
			return nil, fmt.Errorf("line %s not found on receipt %s", req.LineID, r.Code)
		}
		for _, u := range ln.Units {
			targets = append(targets, u.ID)
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no units selected for label printing")
	}

	now := time.Now().UTC()
	for _, id := range targets {
		_, u, err := findUnit(r, id)
		if err != nil {
			return nil, err
		}

		printed, err := unit.PrintLabel(*u, now)
		if err != nil {
			return nil, err
		}
		if printed.State == models.UnitStateCreated {
			next, ev, err := unit.Transition(printed, models.UnitStateLabeled, req.Actor, "", now)
			if err != nil {
				return nil, err
			}
			printed = next
			prependAudit(r, ev)
		}
		*u = printed
	}

	r.UpdatedAt = now
	prependAudit(r, models.NewAuditEvent(req.Actor, models.EventLabelPrinted, models.RefReceipt, r.ID,
		fmt.Sprintf("%d label(s) printed", len(targets)), now))

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return r, nil
}

// VoidLabel voids a printed label. The unit state is unchanged, but no
// further label actions are possible on that unit.
func (s *UnitServiceImpl) VoidLabel(ctx context.Context, req primary.VoidLabelRequest) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionPrintLabels, r.State); err != nil {
		return nil, err
	}

	_, u, err := findUnit(r, req.UnitID)
	if err != nil {
		return nil, err
	}

	voided, err := unit.VoidLabel(*u)
	if err != nil {
		return nil, err
	}
	*u = voided

	now := time.Now().UTC()
	r.UpdatedAt = now
	prependAudit(r, models.NewAuditEvent(req.Actor, models.EventLabelVoided, models.RefUnit, u.ID,
		fmt.Sprintf("label voided for %s", u.EnterpriseSerial), now))

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return r, nil
}

// ScanUnit records a label scan, optionally capturing the vendor barcode
// as the supplier serial reference.
func (s *UnitServiceImpl) ScanUnit(ctx context.Context, req primary.ScanUnitRequest) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionAssignSerials, r.State); err != nil {
		return nil, err
	}

	_, u, err := findUnit(r, req.UnitID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	next, ev, err := unit.Transition(*u, models.UnitStateScanned, req.Actor, "", now)
	if err != nil {
		return nil, err
	}
	if req.SupplierSerialRef != "" {
		next.SupplierSerialRef = req.SupplierSerialRef
	}
	*u = next

	r.UpdatedAt = now
	prependAudit(r, ev)

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return r, nil
}

// VerifyUnit marks a scanned unit verified, stamping the verification
// time.
func (s *UnitServiceImpl) VerifyUnit(ctx context.Context, req primary.VerifyUnitRequest) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionAssignSerials, r.State); err != nil {
		return nil, err
	}

	_, u, err := findUnit(r, req.UnitID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	next, ev, err := unit.Transition(*u, models.UnitStateVerified, req.Actor, "", now)
	if err != nil {
		return nil, err
	}
	*u = next

	r.UpdatedAt = now
	prependAudit(r, ev)

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return r, nil
}

// decisionTarget maps a QC decision code to its unit state.
func decisionTarget(code models.DecisionCode) (models.UnitState, error) {
	switch code {
	case models.DecisionAccept:
		return models.UnitStateAccepted, nil
	case models.DecisionHold:
		return models.UnitStateQCHold, nil
	case models.DecisionReject:
		return models.UnitStateRejected, nil
	default:
		return "", fmt.Errorf("unknown QC decision %q", code)
	}
}

// Decide records a QC disposition on a verified or held unit.
func (s *UnitServiceImpl) Decide(ctx context.Context, req primary.DecideRequest) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionQCDecide, r.State); err != nil {
		return nil, err
	}

	_, u, err := findUnit(r, req.UnitID)
	if err != nil {
		return nil, err
	}

	target, err := decisionTarget(req.Decision)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	next, ev, err := unit.Transition(*u, target, req.Actor, req.Reason, now)
	if err != nil {
		return nil, err
	}
	*u = next

	r.UpdatedAt = now
	prependAudit(r, ev)

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return r, nil
}

// AssignPutaway records a storage location on a dispositioned unit.
func (s *UnitServiceImpl) AssignPutaway(ctx context.Context, req primary.PutawayRequest) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionPutaway, r.State); err != nil {
		return nil, err
	}

	_, u, err := findUnit(r, req.UnitID)
	if err != nil {
		return nil, err
	}
	if !u.IsDispositioned() {
		return nil, fmt.Errorf("unit %s has no QC disposition yet", u.EnterpriseSerial)
	}
	if req.Bin == "" {
		return nil, fmt.Errorf("a bin is required for putaway")
	}

	u.Putaway = &models.Location{Warehouse: req.Warehouse, Zone: req.Zone, Bin: req.Bin}

	now := time.Now().UTC()
	r.UpdatedAt = now
	prependAudit(r, models.NewAuditEvent(req.Actor, models.EventPutawayAssigned, models.RefUnit, u.ID,
		fmt.Sprintf("%s stored at %s/%s/%s", u.EnterpriseSerial, req.Warehouse, req.Zone, req.Bin), now))

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return r, nil
}
