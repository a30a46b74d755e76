package contract

import (
	"testing"
	"time"

	"github.com/example/grn/internal/models"
)

func TestBuildPartitionsByDisposition(t *testing.T) {
	closedAt := time.Date(2025, 3, 20, 16, 0, 0, 0, time.UTC)
	bin := func(b string) *models.Location {
		return &models.Location{Warehouse: "WH1", Zone: "A", Bin: b}
	}

	r := models.Receipt{
		ID:   "rcpt-1",
		Code: "GRN-0001",
		Lines: []models.Line{
			{
				ID:       "line-1",
				SKU:      "CEL-18650",
				Category: models.CategoryCell,
				Units: []models.Unit{
					{ID: "u-1", EnterpriseSerial: "BP-CEL-0001000", State: models.UnitStateAccepted, Putaway: bin("A-01")},
					{ID: "u-2", EnterpriseSerial: "BP-CEL-0001001", State: models.UnitStateAccepted, Putaway: bin("A-01")},
					{ID: "u-3", EnterpriseSerial: "BP-CEL-0001002", State: models.UnitStateAccepted, Putaway: bin("A-02")},
					{ID: "u-4", EnterpriseSerial: "BP-CEL-0001003", State: models.UnitStateQCHold, Putaway: bin("Q-01")},
				},
			},
			{
				ID:       "line-2",
				SKU:      "BMS-4S",
				Category: models.CategoryBMS,
				Units: []models.Unit{
					{ID: "u-5", EnterpriseSerial: "BP-BMS-0001000", State: models.UnitStateRejected, Putaway: bin("R-01")},
				},
			},
		},
	}

	p := Build(r, "PLANT-01", closedAt)

	if p.TotalUnits != 5 {
		t.Errorf("TotalUnits = %d, want 5", p.TotalUnits)
	}
	if len(p.Accepted) != 3 || len(p.OnHold) != 1 || len(p.Rejected) != 1 {
		t.Errorf("partition sizes = %d/%d/%d, want 3/1/1",
			len(p.Accepted), len(p.OnHold), len(p.Rejected))
	}
	if p.ReceiptID != "rcpt-1" || p.ReceiptCode != "GRN-0001" {
		t.Errorf("receipt identity = %s/%s", p.ReceiptID, p.ReceiptCode)
	}
	if p.PlantID != "PLANT-01" {
		t.Errorf("PlantID = %s, want PLANT-01", p.PlantID)
	}
	if !p.ClosedAt.Equal(closedAt) {
		t.Errorf("ClosedAt = %v, want %v", p.ClosedAt, closedAt)
	}

	// Category and SKU resolve from the owning line.
	if p.Rejected[0].SKU != "BMS-4S" || p.Rejected[0].Category != "BMS" {
		t.Errorf("rejected entry = %+v, want BMS line data", p.Rejected[0])
	}
	if p.OnHold[0].Bin != "Q-01" {
		t.Errorf("on-hold bin = %s, want Q-01", p.OnHold[0].Bin)
	}
}

func TestBuildSkipsUndecidedUnits(t *testing.T) {
	r := models.Receipt{
		ID: "rcpt-1",
		Lines: []models.Line{
			{
				ID: "line-1",
				Units: []models.Unit{
					{ID: "u-1", State: models.UnitStateVerified},
					{ID: "u-2", State: models.UnitStateAccepted},
				},
			},
		},
	}

	p := Build(r, "PLANT-01", time.Now())
	if p.TotalUnits != 1 {
		t.Errorf("TotalUnits = %d, want 1 (undecided units excluded)", p.TotalUnits)
	}
	if len(p.Accepted) != 1 {
		t.Errorf("len(Accepted) = %d, want 1", len(p.Accepted))
	}
}

func TestBuildEmptyReceiptHasEmptyGroups(t *testing.T) {
	p := Build(models.Receipt{ID: "rcpt-1"}, "PLANT-01", time.Now())
	if p.Accepted == nil || p.OnHold == nil || p.Rejected == nil {
		t.Error("partition slices must be non-nil for JSON emission")
	}
	if p.TotalUnits != 0 {
		t.Errorf("TotalUnits = %d, want 0", p.TotalUnits)
	}
}
