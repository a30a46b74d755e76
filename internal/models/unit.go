package models

import "time"

// Unit is one serialized, individually tracked item. EnterpriseSerial is
// immutable once assigned and unique across the whole receipt.
type Unit struct {
	ID                string
	LineID            string
	EnterpriseSerial  string
	SupplierSerialRef string
	State             UnitState
	Label             LabelInfo
	VerifiedAt        *time.Time
	// Disposition is set if and only if State is ACCEPTED, QC_HOLD or
	// REJECTED.
	Disposition *Disposition
	Putaway     *Location
}

// UnitState represents the lifecycle state of a unit.
type UnitState string

// Unit lifecycle states. ACCEPTED and REJECTED are terminal.
const (
	UnitStateCreated  UnitState = "CREATED"
	UnitStateLabeled  UnitState = "LABELED"
	UnitStateScanned  UnitState = "SCANNED"
	UnitStateVerified UnitState = "VERIFIED"
	UnitStateQCHold   UnitState = "QC_HOLD"
	UnitStateAccepted UnitState = "ACCEPTED"
	UnitStateRejected UnitState = "REJECTED"
)

// LabelStatus tracks the label print lifecycle, independent of unit state.
type LabelStatus string

// Label status constants.
const (
	LabelNotPrinted LabelStatus = "NOT_PRINTED"
	LabelPrinted    LabelStatus = "PRINTED"
	LabelVoided     LabelStatus = "VOIDED"
)

// LabelInfo carries the label print state for a unit.
type LabelInfo struct {
	Status        LabelStatus
	PrintedCount  int
	LastPrintedAt *time.Time
}

// DecisionCode is the QC decision recorded against a unit.
type DecisionCode string

// QC decision constants.
const (
	DecisionAccept DecisionCode = "ACCEPT"
	DecisionHold   DecisionCode = "HOLD"
	DecisionReject DecisionCode = "REJECT"
)

// Disposition is the QC outcome recorded for a unit. HOLD and REJECT
// decisions always carry a reason.
type Disposition struct {
	Code      DecisionCode
	Reason    string
	DecidedAt time.Time
}

// Location is a putaway storage assignment.
type Location struct {
	Warehouse string
	Zone      string
	Bin       string
}

// Clone returns a deep copy of the unit.
func (u Unit) Clone() Unit {
	out := u
	if u.VerifiedAt != nil {
		t := *u.VerifiedAt
		out.VerifiedAt = &t
	}
	if u.Label.LastPrintedAt != nil {
		t := *u.Label.LastPrintedAt
		out.Label.LastPrintedAt = &t
	}
	if u.Disposition != nil {
		d := *u.Disposition
		out.Disposition = &d
	}
	if u.Putaway != nil {
		p := *u.Putaway
		out.Putaway = &p
	}
	return out
}

// HasDisposition reports whether a QC decision has been recorded.
func (u Unit) HasDisposition() bool {
	return u.Disposition != nil
}

// IsDispositioned reports whether the unit reached a terminal disposition
// state (ACCEPTED, QC_HOLD or REJECTED).
func (u Unit) IsDispositioned() bool {
	switch u.State {
	case UnitStateAccepted, UnitStateQCHold, UnitStateRejected:
		return true
	default:
		return false
	}
}
