// Package contract projects a closed receipt into the flat payload handed
// to the downstream production-planning system. This is the sole outward
// contract; storage of the payload is the caller's concern.
package contract

import (
	"time"

	"github.com/example/grn/internal/models"
)

// UnitEntry is one unit in the outbound payload.
type UnitEntry struct {
	UnitID           string `json:"unitId"`
	EnterpriseSerial string `json:"enterpriseSerial"`
	SKU              string `json:"sku"`
	Category         string `json:"category"`
	Warehouse        string `json:"warehouse,omitempty"`
	Zone             string `json:"zone,omitempty"`
	Bin              string `json:"bin,omitempty"`
}

// Payload is the downstream contract for one closed receipt, grouped by
// final unit disposition.
type Payload struct {
	ReceiptID   string      `json:"receiptId"`
	ReceiptCode string      `json:"receiptCode"`
	PlantID     string      `json:"plantId"`
	ClosedAt    time.Time   `json:"closedAt"`
	TotalUnits  int         `json:"totalUnits"`
	Accepted    []UnitEntry `json:"accepted"`
	OnHold      []UnitEntry `json:"onHold"`
	Rejected    []UnitEntry `json:"rejected"`
}

// Build projects a receipt into the outbound payload. Category and SKU are
// resolved from each unit's owning line.
func Build(r models.Receipt, plantID string, closedAt time.Time) Payload {
	p := Payload{
		ReceiptID:   r.ID,
		ReceiptCode: r.Code,
		PlantID:     plantID,
		ClosedAt:    closedAt,
		Accepted:    []UnitEntry{},
		OnHold:      []UnitEntry{},
		Rejected:    []UnitEntry{},
	}

	for _, ln := range r.Lines {
		for _, u := range ln.Units {
			entry := UnitEntry{
				UnitID:           u.ID,
				EnterpriseSerial: u.EnterpriseSerial,
				SKU:              ln.SKU,
				Category:         string(ln.Category),
			}
			if u.Putaway != nil {
				entry.Warehouse = u.Putaway.Warehouse
				entry.Zone = u.Putaway.Zone
				entry.Bin = u.Putaway.Bin
			}

			switch u.State {
			case models.UnitStateAccepted:
				p.Accepted = append(p.Accepted, entry)
			case models.UnitStateQCHold:
				p.OnHold = append(p.OnHold, entry)
			case models.UnitStateRejected:
				p.Rejected = append(p.Rejected, entry)
			default:
				continue
			}
			p.TotalUnits++
		}
	}

	return p
}
