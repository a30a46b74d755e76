package models

// Line is one ordered item within a receipt. Trackable lines own one Unit
// per received quantity once serialization completes.
type Line struct {
	ID           string
	ReceiptID    string
	SKU          string
	Name         string
	Category     ItemCategory
	Trackability ItemTrackability
	LotRef       string
	MfgDate      string
	ExpiryDate   string
	QtyExpected  int
	QtyReceived  int
	Units        []Unit
}

// ItemCategory classifies the material on a line.
type ItemCategory string

// Item category constants.
const (
	CategoryCell   ItemCategory = "CELL"
	CategoryBMS    ItemCategory = "BMS"
	CategoryIOT    ItemCategory = "IOT"
	CategoryModule ItemCategory = "MODULE"
	CategoryPack   ItemCategory = "PACK"
	CategoryMisc   ItemCategory = "MISC"
)

// ItemTrackability marks whether a line's items are serialized one by one.
// The per-line flag is authoritative; the category table only supplies the
// default at line creation.
type ItemTrackability string

// Trackability constants.
const (
	Trackable    ItemTrackability = "TRACKABLE"
	NonTrackable ItemTrackability = "NON_TRACKABLE"
)

// DefaultTrackability returns the advisory default trackability for a
// category. CELL, BMS, IOT, MODULE and PACK items are serialized by default.
func DefaultTrackability(cat ItemCategory) ItemTrackability {
	switch cat {
	case CategoryCell, CategoryBMS, CategoryIOT, CategoryModule, CategoryPack:
		return Trackable
	default:
		return NonTrackable
	}
}

// IsTrackable reports whether the line's items are individually serialized.
func (l Line) IsTrackable() bool {
	return l.Trackability == Trackable
}

// Clone returns a deep copy of the line including its units.
func (l Line) Clone() Line {
	out := l
	out.Units = make([]Unit, len(l.Units))
	for i, u := range l.Units {
		out.Units[i] = u.Clone()
	}
	return out
}
