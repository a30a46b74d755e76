package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/grn/internal/core/contract"
	"github.com/example/grn/internal/core/precondition"
	"github.com/example/grn/internal/core/rbac"
	"github.com/example/grn/internal/core/receipt"
	"github.com/example/grn/internal/core/validation"
	"github.com/example/grn/internal/models"
	"github.com/example/grn/internal/ports/primary"
	"github.com/example/grn/internal/ports/secondary"
)

// ReceiptServiceImpl implements the ReceiptService interface.
type ReceiptServiceImpl struct {
	receipts secondary.ReceiptStore
	outbound secondary.OutboundStore
	orders   secondary.PurchaseOrderSource
}

// NewReceiptService creates a new ReceiptService with injected stores.
func NewReceiptService(
	receipts secondary.ReceiptStore,
	outbound secondary.OutboundStore,
	orders secondary.PurchaseOrderSource,
) *ReceiptServiceImpl {
	return &ReceiptServiceImpl{
		receipts: receipts,
		outbound: outbound,
		orders:   orders,
	}
}

func authorize(actor models.Actor, action rbac.Action, state models.ReceiptState) error {
	if !rbac.Authorize(rbac.Role(actor.Role), action, state) {
		return &PermissionError{Role: actor.Role, Action: string(action)}
	}
	return nil
}

func prependAudit(r *models.Receipt, ev models.AuditEvent) {
	r.Audit = append([]models.AuditEvent{ev}, r.Audit...)
}

// CreateReceipt creates a new DRAFT receipt, manually or from an open
// purchase order, and marks it active.
func (s *ReceiptServiceImpl) CreateReceipt(ctx context.Context, req primary.CreateReceiptRequest) (*models.Receipt, error) {
	if err := authorize(req.Actor, rbac.ActionCreateReceipt, ""); err != nil {
		return nil, err
	}

	code, err := s.receipts.NextCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate receipt code: %w", err)
	}

	now := time.Now().UTC()
	r := &models.Receipt{
		ID:           uuid.NewString(),
		Code:         code,
		SupplierID:   req.SupplierID,
		SupplierName: req.SupplierName,
		CreatedBy:    req.Actor.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
		State:        models.ReceiptStateDraft,
	}

	if req.POID != "" {
		po, err := s.orders.GetByID(ctx, req.POID)
		if err != nil {
			return nil, fmt.Errorf("failed to load purchase order: %w", err)
		}
		r.POID = po.ID
		r.POCode = po.Code
		r.SupplierID = po.SupplierID
		r.SupplierName = po.SupplierName
		for _, pl := range po.Lines {
			cat := models.ItemCategory(pl.Category)
			r.Lines = append(r.Lines, models.Line{
				ID:           uuid.NewString(),
				ReceiptID:    r.ID,
				SKU:          pl.SKU,
				Name:         pl.Name,
				Category:     cat,
				Trackability: models.DefaultTrackability(cat),
				QtyExpected:  pl.QtyOrdered,
			})
		}
	}

	prependAudit(r, models.NewAuditEvent(req.Actor, models.EventReceiptCreated, models.RefReceipt, r.ID,
		fmt.Sprintf("receipt %s created", r.Code), now))

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	if err := s.receipts.SetActive(ctx, r.ID); err != nil {
		return nil, fmt.Errorf("failed to set active receipt: %w", err)
	}

	return r, nil
}

// GetReceipt retrieves a receipt by id.
func (s *ReceiptServiceImpl) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	return s.receipts.Get(ctx, id)
}

// ListReceipts lists receipts with optional filters.
func (s *ReceiptServiceImpl) ListReceipts(ctx context.Context, filters primary.ReceiptFilters) ([]*models.Receipt, error) {
	return s.receipts.List(ctx, secondary.ReceiptFilters{State: filters.State, Limit: filters.Limit})
}

// SetActive records the receipt subsequent commands operate on.
func (s *ReceiptServiceImpl) SetActive(ctx context.Context, id string) error {
	if _, err := s.receipts.Get(ctx, id); err != nil {
		return err
	}
	return s.receipts.SetActive(ctx, id)
}

// ActiveReceipt returns the active receipt, or nil if none is set.
func (s *ReceiptServiceImpl) ActiveReceipt(ctx context.Context) (*models.Receipt, error) {
	id, err := s.receipts.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	return s.receipts.Get(ctx, id)
}

// UpdateIntake captures commercial evidence fields. Empty request fields
// leave the stored value unchanged.
func (s *ReceiptServiceImpl) UpdateIntake(ctx context.Context, req primary.UpdateIntakeRequest) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionEditReceipt, r.State); err != nil {
		return nil, err
	}

	if req.InvoiceNumber != "" {
		r.InvoiceNumber = req.InvoiceNumber
	}
	if req.InvoiceDate != "" {
		r.InvoiceDate = req.InvoiceDate
	}
	if req.PackingListRef != "" {
		r.PackingListRef = req.PackingListRef
	}
	if req.TransportDocRef != "" {
		r.TransportDocRef = req.TransportDocRef
	}

	now := time.Now().UTC()
	r.UpdatedAt = now
	prependAudit(r, models.NewAuditEvent(req.Actor, models.EventReceiptUpdated, models.RefReceipt, r.ID,
		"commercial evidence updated", now))

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return r, nil
}

// AddAttachment records attachment metadata on the receipt. File contents
// are not handled here.
func (s *ReceiptServiceImpl) AddAttachment(ctx context.Context, req primary.AddAttachmentRequest) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionEditReceipt, r.State); err != nil {
		return nil, err
	}

	att := models.Attachment{ID: uuid.NewString(), Name: req.Name, Type: req.Type}
	r.Attachments = append(r.Attachments, att)

	now := time.Now().UTC()
	r.UpdatedAt = now
	prependAudit(r, models.NewAuditEvent(req.Actor, models.EventAttachmentAdded, models.RefReceipt, r.ID,
		fmt.Sprintf("attachment %s (%s) recorded", req.Name, req.Type), now))

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return r, nil
}

// AddLine appends a line to the receipt. An empty trackability flag takes
// the category default.
func (s *ReceiptServiceImpl) AddLine(ctx context.Context, req primary.AddLineRequest) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionEditReceipt, r.State); err != nil {
		return nil, err
	}

	trackability := req.Trackability
	if trackability == "" {
		trackability = models.DefaultTrackability(req.Category)
	}

	ln := models.Line{
		ID:           uuid.NewString(),
		ReceiptID:    r.ID,
		SKU:          req.SKU,
		Name:         req.Name,
		Category:     req.Category,
		Trackability: trackability,
		LotRef:       req.LotRef,
		MfgDate:      req.MfgDate,
		ExpiryDate:   req.ExpiryDate,
		QtyExpected:  req.QtyExpected,
		QtyReceived:  req.QtyReceived,
	}
	r.Lines = append(r.Lines, ln)

	now := time.Now().UTC()
	r.UpdatedAt = now
	prependAudit(r, models.NewAuditEvent(req.Actor, models.EventLineAdded, models.RefLine, ln.ID,
		fmt.Sprintf("line %s added", ln.Name), now))

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return r, nil
}

// UpdateLine edits a line. Toggling trackability is restricted to admins;
// the per-line flag is authoritative over the category default.
func (s *ReceiptServiceImpl) UpdateLine(ctx context.Context, req primary.UpdateLineRequest) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionEditReceipt, r.State); err != nil {
		return nil, err
	}

	ln := r.Line(req.LineID)
	if ln == nil {
		return nil, fmt.Errorf("line %s not found on receipt %s", req.LineID, r.Code)
	}

	if req.Trackability != nil {
		if rbac.Role(req.Actor.Role) != rbac.RoleAdmin {
			return nil, &PermissionError{Role: req.Actor.Role, Action: "TOGGLE_TRACKABILITY"}
		}
		if len(ln.Units) > 0 && *req.Trackability == models.NonTrackable {
			return nil, fmt.Errorf("line %s already has serialized units", ln.Name)
		}
		ln.Trackability = *req.Trackability
	}
	if req.QtyReceived != nil {
		ln.QtyReceived = *req.QtyReceived
	}
	if req.LotRef != nil {
		ln.LotRef = *req.LotRef
	}

	now := time.Now().UTC()
	r.UpdatedAt = now
	prependAudit(r, models.NewAuditEvent(req.Actor, models.EventLineUpdated, models.RefLine, ln.ID,
		fmt.Sprintf("line %s updated", ln.Name), now))

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return r, nil
}

// Validate runs structural validation. The result is returned as a value;
// a validation-run audit event is recorded on the receipt.
func (s *ReceiptServiceImpl) Validate(ctx context.Context, receiptID string, actor models.Actor) (validation.Result, error) {
	r, err := s.receipts.Get(ctx, receiptID)
	if err != nil {
		return validation.Result{}, err
	}

	res := validation.ValidateReceipt(*r, rbac.Role(actor.Role))

	now := time.Now().UTC()
	outcome := "passed"
	if !res.OK() {
		outcome = fmt.Sprintf("failed with %d error(s)", len(res.Errors))
	}
	prependAudit(r, models.NewAuditEvent(actor, models.EventValidationRun, models.RefReceipt, r.ID,
		"validation "+outcome, now))

	if err := s.receipts.Upsert(ctx, r); err != nil {
		return validation.Result{}, fmt.Errorf("failed to record validation run: %w", err)
	}
	return res, nil
}

// Transition moves a receipt along its lifecycle graph. The terminal CLOSE
// transition must go through Close so the closure gates apply.
func (s *ReceiptServiceImpl) Transition(ctx context.Context, req primary.TransitionRequest) (*models.Receipt, error) {
	if req.To == models.ReceiptStateClosed {
		return nil, fmt.Errorf("use close to reach CLOSED; the closure gates must run")
	}

	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}

	action := rbac.ActionEditReceipt
	if r.State == models.ReceiptStateQCPending {
		action = rbac.ActionQCDecide
	}
	if err := authorize(req.Actor, action, r.State); err != nil {
		return nil, err
	}

	next, err := receipt.Transition(*r, req.To, req.Actor, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.receipts.Upsert(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return &next, nil
}

// DecideOutcome resolves the QC_PENDING fan-out by aggregating unit
// dispositions and applies the resulting transition.
func (s *ReceiptServiceImpl) DecideOutcome(ctx context.Context, receiptID string, actor models.Actor) (*models.Receipt, error) {
	r, err := s.receipts.Get(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, rbac.ActionQCDecide, r.State); err != nil {
		return nil, err
	}

	var total, accepted, rejected int
	for _, ln := range r.Lines {
		if !ln.IsTrackable() {
			continue
		}
		for _, u := range ln.Units {
			total++
			switch u.State {
			case models.UnitStateAccepted:
				accepted++
			case models.UnitStateRejected:
				rejected++
			}
		}
	}

	outcome := receipt.ComputeQCOutcome(total, accepted, rejected)
	next, err := receipt.Transition(*r, outcome, actor, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.receipts.Upsert(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	return &next, nil
}

// Preconditions evaluates the five closure readiness gates.
func (s *ReceiptServiceImpl) Preconditions(ctx context.Context, receiptID string) ([]precondition.Check, error) {
	r, err := s.receipts.Get(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	return precondition.Evaluate(*r), nil
}

// Close runs the closure gates and, when they pass, transitions the
// receipt to CLOSED and emits the downstream contract. Gate failures are
// reported in the result with no state change.
func (s *ReceiptServiceImpl) Close(ctx context.Context, req primary.CloseRequest) (*primary.CloseResult, error) {
	r, err := s.receipts.Get(ctx, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := authorize(req.Actor, rbac.ActionCloseReceipt, r.State); err != nil {
		return nil, err
	}

	closure := validation.ValidateClosure(*r)
	checks := precondition.Evaluate(*r)

	gatesPass := closure.OK()
	if r.State == models.ReceiptStatePutawayComplete && !precondition.AllMet(checks) {
		gatesPass = false
	}
	if !gatesPass {
		return &primary.CloseResult{
			Closed:        false,
			Receipt:       r,
			Validation:    closure,
			Preconditions: checks,
		}, nil
	}

	now := time.Now().UTC()
	next, err := receipt.Transition(*r, models.ReceiptStateClosed, req.Actor, now)
	if err != nil {
		return nil, err
	}

	payload := contract.Build(next, req.PlantID, now)
	if err := s.outbound.Replace(ctx, payload); err != nil {
		return nil, fmt.Errorf("failed to emit downstream contract: %w", err)
	}

	prependAudit(&next, models.NewAuditEvent(req.Actor, models.EventContractEmitted, models.RefReceipt, next.ID,
		fmt.Sprintf("downstream contract emitted with %d unit(s)", payload.TotalUnits), now))

	if err := s.receipts.Upsert(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}

	return &primary.CloseResult{
		Closed:        true,
		Receipt:       &next,
		Payload:       &payload,
		Validation:    closure,
		Preconditions: checks,
	}, nil
}

// ListContracts returns every emitted downstream payload.
func (s *ReceiptServiceImpl) ListContracts(ctx context.Context) ([]contract.Payload, error) {
	return s.outbound.List(ctx)
}
