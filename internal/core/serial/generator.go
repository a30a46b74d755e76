// Package serial contains the pure business logic for enterprise serial
// allocation. Serials take the form BP-<TYPE>-<7-digit sequence>.
package serial

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/example/grn/internal/models"
)

// Mode selects the sequence block a generation run draws from.
type Mode string

// Allocation modes. POOL draws from a pre-reserved block disjoint from
// RANGE so the two never collide for the same seed.
const (
	ModeRange Mode = "RANGE"
	ModePool  Mode = "POOL"
)

// poolOffset shifts POOL allocations into their reserved block.
const poolOffset = 5000

// DuplicateSerialError is returned when a generated serial collides with
// an existing one. Generation is all-or-nothing: no units are produced.
type DuplicateSerialError struct {
	Serial string
}

func (e *DuplicateSerialError) Error() string {
	return fmt.Sprintf("enterprise serial %s already exists on this receipt", e.Serial)
}

// TypeCode derives the serial type segment from an item category.
func TypeCode(cat models.ItemCategory) string {
	switch cat {
	case models.CategoryCell:
		return "CEL"
	case models.CategoryBMS:
		return "BMS"
	case models.CategoryIOT:
		return "IOT"
	case models.CategoryModule:
		return "MOD"
	case models.CategoryPack:
		return "PCK"
	default:
		return "MAT"
	}
}

// Format renders one enterprise serial for a category and sequence number.
func Format(cat models.ItemCategory, seq int) string {
	return fmt.Sprintf("BP-%s-%07d", TypeCode(cat), seq)
}

// GenerateUnits produces count new units for a line, in state CREATED with
// labels NOT_PRINTED. existingSerials holds every enterprise serial already
// present on the receipt; any collision aborts the whole run and the caller
// must retry with a different seed. Existing units are never removed or
// renumbered.
func GenerateUnits(lineID string, cat models.ItemCategory, count, startSequence int, mode Mode, existingSerials map[string]bool) ([]models.Unit, error) {
	if count <= 0 {
		return nil, fmt.Errorf("unit count must be positive, got %d", count)
	}

	start := startSequence
	if mode == ModePool {
		start += poolOffset
	}

	units := make([]models.Unit, 0, count)
	for i := 0; i < count; i++ {
		s := Format(cat, start+i)
		if existingSerials[s] {
			return nil, &DuplicateSerialError{Serial: s}
		}
		units = append(units, models.Unit{
			ID:               uuid.NewString(),
			LineID:           lineID,
			EnterpriseSerial: s,
			State:            models.UnitStateCreated,
			Label:            models.LabelInfo{Status: models.LabelNotPrinted},
		})
	}

	return units, nil
}
