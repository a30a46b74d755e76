package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/grn/internal/core/serial"
	"github.com/example/grn/internal/models"
	"github.com/example/grn/internal/ports/primary"
)

// seedReceivingReceipt stores a receipt in SERIALIZATION_IN_PROGRESS with
// one trackable CELL line and one non-trackable line.
func seedReceivingReceipt(store *mockReceiptStore) models.Receipt {
	r := models.Receipt{
		ID:           "rcpt-1",
		Code:         "GRN-0001",
		SupplierID:   "sup-1",
		SupplierName: "Acme Cells",
		State:        models.ReceiptStateSerialization,
		Lines: []models.Line{
			{
				ID: "line-1", ReceiptID: "rcpt-1", SKU: "CEL-18650", Name: "18650 cell",
				Category: models.CategoryCell, Trackability: models.Trackable,
				LotRef: "LOT-42", QtyExpected: 5, QtyReceived: 5,
			},
			{
				ID: "line-2", ReceiptID: "rcpt-1", SKU: "TAPE-01", Name: "Kapton tape",
				Category: models.CategoryMisc, Trackability: models.NonTrackable,
				QtyExpected: 4, QtyReceived: 4,
			},
		},
	}
	store.seed(r)
	return r
}

func TestGenerateUnits(t *testing.T) {
	store := newMockReceiptStore()
	svc := NewUnitService(store)
	ctx := context.Background()
	seedReceivingReceipt(store)

	r, err := svc.GenerateUnits(ctx, primary.GenerateUnitsRequest{
		Actor: operator, ReceiptID: "rcpt-1", LineID: "line-1",
		Count: 5, StartSequence: 1000, Mode: serial.ModeRange,
	})
	if err != nil {
		t.Fatalf("GenerateUnits() error = %v", err)
	}

	units := r.Lines[0].Units
	if len(units) != 5 {
		t.Fatalf("len(units) = %d, want 5", len(units))
	}
	if units[0].EnterpriseSerial != "BP-CEL-0001000" || units[4].EnterpriseSerial != "BP-CEL-0001004" {
		t.Errorf("serial range = %s .. %s, want BP-CEL-0001000 .. BP-CEL-0001004",
			units[0].EnterpriseSerial, units[4].EnterpriseSerial)
	}
	if r.Audit[0].Type != models.EventUnitsGenerated {
		t.Errorf("newest audit = %s, want UNITS_GENERATED", r.Audit[0].Type)
	}
}

func TestGenerateUnitsDuplicateLeavesReceiptUntouched(t *testing.T) {
	store := newMockReceiptStore()
	svc := NewUnitService(store)
	ctx := context.Background()
	seedReceivingReceipt(store)

	if _, err := svc.GenerateUnits(ctx, primary.GenerateUnitsRequest{
		Actor: operator, ReceiptID: "rcpt-1", LineID: "line-1",
		Count: 5, StartSequence: 1000, Mode: serial.ModeRange,
	}); err != nil {
		t.Fatalf("first generation: %v", err)
	}

	_, err := svc.GenerateUnits(ctx, primary.GenerateUnitsRequest{
		Actor: operator, ReceiptID: "rcpt-1", LineID: "line-1",
		Count: 3, StartSequence: 1002, Mode: serial.ModeRange,
	})
	var dup *serial.DuplicateSerialError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %v, want *DuplicateSerialError", err)
	}

	stored, _ := store.Get(ctx, "rcpt-1")
	if len(stored.Lines[0].Units) != 5 {
		t.Errorf("len(units) = %d after failed generation, want 5", len(stored.Lines[0].Units))
	}

	// A POOL draw with the same seed lands in the reserved block.
	r, err := svc.GenerateUnits(ctx, primary.GenerateUnitsRequest{
		Actor: operator, ReceiptID: "rcpt-1", LineID: "line-1",
		Count: 3, StartSequence: 1000, Mode: serial.ModePool,
	})
	if err != nil {
		t.Fatalf("pool generation: %v", err)
	}
	if got := r.Lines[0].Units[5].EnterpriseSerial; got != "BP-CEL-0006000" {
		t.Errorf("first pool serial = %s, want BP-CEL-0006000", got)
	}
}

func TestGenerateUnitsRejectsNonTrackableLine(t *testing.T) {
	store := newMockReceiptStore()
	svc := NewUnitService(store)
	seedReceivingReceipt(store)

	_, err := svc.GenerateUnits(context.Background(), primary.GenerateUnitsRequest{
		Actor: operator, ReceiptID: "rcpt-1", LineID: "line-2",
		Count: 4, StartSequence: 1, Mode: serial.ModeRange,
	})
	if err == nil {
		t.Error("generating on a non-trackable line succeeded, want error")
	}
}

func TestGenerateUnitsDeniedForQualityRole(t *testing.T) {
	store := newMockReceiptStore()
	svc := NewUnitService(store)
	seedReceivingReceipt(store)

	_, err := svc.GenerateUnits(context.Background(), primary.GenerateUnitsRequest{
		Actor: quality, ReceiptID: "rcpt-1", LineID: "line-1",
		Count: 5, StartSequence: 1000, Mode: serial.ModeRange,
	})
	var perm *PermissionError
	if !errors.As(err, &perm) {
		t.Fatalf("error = %v, want *PermissionError", err)
	}
}

// generate seeds the receipt and serializes the cell line, returning unit
// ids in serial order.
func generate(t *testing.T, svc *UnitServiceImpl, store *mockReceiptStore) []string {
	t.Helper()
	seedReceivingReceipt(store)
	r, err := svc.GenerateUnits(context.Background(), primary.GenerateUnitsRequest{
		Actor: operator, ReceiptID: "rcpt-1", LineID: "line-1",
		Count: 2, StartSequence: 1000, Mode: serial.ModeRange,
	})
	if err != nil {
		t.Fatalf("GenerateUnits() error = %v", err)
	}
	var ids []string
	for _, u := range r.Lines[0].Units {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestPrintLabelsMovesCreatedUnitsToLabeled(t *testing.T) {
	store := newMockReceiptStore()
	svc := NewUnitService(store)
	ctx := context.Background()
	ids := generate(t, svc, store)

	r, err := svc.PrintLabels(ctx, primary.PrintLabelsRequest{
		Actor: operator, ReceiptID: "rcpt-1", LineID: "line-1",
	})
	if err != nil {
		t.Fatalf("PrintLabels() error = %v", err)
	}

	for i, u := range r.Lines[0].Units {
		if u.State != models.UnitStateLabeled {
			t.Errorf("units[%d].State = %s, want LABELED", i, u.State)
		}
		if u.Label.Status != models.LabelPrinted || u.Label.PrintedCount != 1 {
			t.Errorf("units[%d].Label = %+v, want printed once", i, u.Label)
		}
	}

	// Reprint a single unit: count goes up, state stays.
	r, err = svc.PrintLabels(ctx, primary.PrintLabelsRequest{
		Actor: operator, ReceiptID: "rcpt-1", UnitIDs: ids[:1],
	})
	if err != nil {
		t.Fatalf("reprint error = %v", err)
	}
	if r.Lines[0].Units[0].Label.PrintedCount != 2 {
		t.Errorf("PrintedCount = %d, want 2", r.Lines[0].Units[0].Label.PrintedCount)
	}
	if r.Lines[0].Units[0].State != models.UnitStateLabeled {
		t.Errorf("State = %s, want LABELED after reprint", r.Lines[0].Units[0].State)
	}
}

func TestVoidLabelBlocksFurtherPrints(t *testing.T) {
	store := newMockReceiptStore()
	svc := NewUnitService(store)
	ctx := context.Background()
	ids := generate(t, svc, store)

	if _, err := svc.PrintLabels(ctx, primary.PrintLabelsRequest{
		Actor: operator, ReceiptID: "rcpt-1", LineID: "line-1",
	}); err != nil {
		t.Fatalf("PrintLabels() error = %v", err)
	}

	r, err := svc.VoidLabel(ctx, primary.VoidLabelRequest{Actor: operator, ReceiptID: "rcpt-1", UnitID: ids[0]})
	if err != nil {
		t.Fatalf("VoidLabel() error = %v", err)
	}
	if r.Lines[0].Units[0].Label.Status != models.LabelVoided {
		t.Errorf("Status = %s, want VOIDED", r.Lines[0].Units[0].Label.Status)
	}
	if r.Lines[0].Units[0].State != models.UnitStateLabeled {
		t.Errorf("State = %s, want LABELED unchanged by void", r.Lines[0].Units[0].State)
	}

	if _, err := svc.PrintLabels(ctx, primary.PrintLabelsRequest{
		Actor: operator, ReceiptID: "rcpt-1", UnitIDs: ids[:1],
	}); err == nil {
		t.Error("printing a voided label succeeded, want error")
	}
}

// advance walks one unit through print, scan and verify.
func advance(t *testing.T, svc *UnitServiceImpl, unitID string) {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.PrintLabels(ctx, primary.PrintLabelsRequest{Actor: operator, ReceiptID: "rcpt-1", UnitIDs: []string{unitID}}); err != nil {
		t.Fatalf("print: %v", err)
	}
	if _, err := svc.ScanUnit(ctx, primary.ScanUnitRequest{Actor: operator, ReceiptID: "rcpt-1", UnitID: unitID, SupplierSerialRef: "V-" + unitID}); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, err := svc.VerifyUnit(ctx, primary.VerifyUnitRequest{Actor: operator, ReceiptID: "rcpt-1", UnitID: unitID}); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestScanVerifyDecideFlow(t *testing.T) {
	store := newMockReceiptStore()
	svc := NewUnitService(store)
	ctx := context.Background()
	ids := generate(t, svc, store)

	advance(t, svc, ids[0])

	stored, _ := store.Get(ctx, "rcpt-1")
	u := stored.Lines[0].Units[0]
	if u.State != models.UnitStateVerified {
		t.Fatalf("State = %s, want VERIFIED", u.State)
	}
	if u.VerifiedAt == nil {
		t.Error("VerifiedAt not stamped")
	}
	if u.SupplierSerialRef == "" {
		t.Error("SupplierSerialRef not captured on scan")
	}

	// Quality holds the unit, then rejects it after retest.
	if _, err := svc.Decide(ctx, primary.DecideRequest{
		Actor: quality, ReceiptID: "rcpt-1", UnitID: ids[0],
		Decision: models.DecisionHold, Reason: "voltage drift",
	}); err != nil {
		t.Fatalf("hold: %v", err)
	}

	r, err := svc.Decide(ctx, primary.DecideRequest{
		Actor: quality, ReceiptID: "rcpt-1", UnitID: ids[0],
		Decision: models.DecisionReject, Reason: "failed retest",
	})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}

	u = r.Lines[0].Units[0]
	if u.State != models.UnitStateRejected {
		t.Errorf("State = %s, want REJECTED", u.State)
	}
	if u.Disposition == nil || u.Disposition.Reason != "failed retest" {
		t.Errorf("Disposition = %+v, want REJECT with reason", u.Disposition)
	}
}

func TestDecideRequiresQCRole(t *testing.T) {
	store := newMockReceiptStore()
	svc := NewUnitService(store)
	ids := generate(t, svc, store)
	advance(t, svc, ids[0])

	_, err := svc.Decide(context.Background(), primary.DecideRequest{
		Actor: operator, ReceiptID: "rcpt-1", UnitID: ids[0],
		Decision: models.DecisionAccept,
	})
	var perm *PermissionError
	if !errors.As(err, &perm) {
		t.Fatalf("error = %v, want *PermissionError", err)
	}
}

func TestDecideHoldWithoutReasonFails(t *testing.T) {
	store := newMockReceiptStore()
	svc := NewUnitService(store)
	ids := generate(t, svc, store)
	advance(t, svc, ids[0])

	_, err := svc.Decide(context.Background(), primary.DecideRequest{
		Actor: quality, ReceiptID: "rcpt-1", UnitID: ids[0],
		Decision: models.DecisionHold,
	})
	if err == nil {
		t.Error("hold without reason succeeded, want error")
	}
}

func TestAssignPutaway(t *testing.T) {
	store := newMockReceiptStore()
	svc := NewUnitService(store)
	ctx := context.Background()
	ids := generate(t, svc, store)

	// Putaway before disposition is a protocol error.
	if _, err := svc.AssignPutaway(ctx, primary.PutawayRequest{
		Actor: operator, ReceiptID: "rcpt-1", UnitID: ids[0],
		Warehouse: "WH1", Zone: "A", Bin: "A-01",
	}); err == nil {
		t.Error("putaway before disposition succeeded, want error")
	}

	advance(t, svc, ids[0])
	if _, err := svc.Decide(ctx, primary.DecideRequest{
		Actor: quality, ReceiptID: "rcpt-1", UnitID: ids[0], Decision: models.DecisionAccept,
	}); err != nil {
		t.Fatalf("accept: %v", err)
	}

	r, err := svc.AssignPutaway(ctx, primary.PutawayRequest{
		Actor: operator, ReceiptID: "rcpt-1", UnitID: ids[0],
		Warehouse: "WH1", Zone: "A", Bin: "A-01",
	})
	if err != nil {
		t.Fatalf("AssignPutaway() error = %v", err)
	}

	loc := r.Lines[0].Units[0].Putaway
	if loc == nil || loc.Bin != "A-01" || loc.Warehouse != "WH1" {
		t.Errorf("Putaway = %+v, want WH1/A/A-01", loc)
	}
	if r.Audit[0].Type != models.EventPutawayAssigned {
		t.Errorf("newest audit = %s, want PUTAWAY_ASSIGNED", r.Audit[0].Type)
	}
}

func TestAssignPutawayRequiresBin(t *testing.T) {
	store := newMockReceiptStore()
	svc := NewUnitService(store)
	ctx := context.Background()
	ids := generate(t, svc, store)
	advance(t, svc, ids[0])
	if _, err := svc.Decide(ctx, primary.DecideRequest{
		Actor: quality, ReceiptID: "rcpt-1", UnitID: ids[0], Decision: models.DecisionAccept,
	}); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := svc.AssignPutaway(ctx, primary.PutawayRequest{
		Actor: operator, ReceiptID: "rcpt-1", UnitID: ids[0], Warehouse: "WH1",
	}); err == nil {
		t.Error("putaway without bin succeeded, want error")
	}
}
