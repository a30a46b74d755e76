// Package precondition contains the closure-readiness evaluator: five
// independent gates that must all be MET before a receipt may be closed.
// This runs in addition to closure validation, not instead of it.
package precondition

import (
	"fmt"

	"github.com/example/grn/internal/models"
)

// Status is the readiness outcome of one gate.
type Status string

// Gate statuses.
const (
	StatusMet     Status = "MET"
	StatusPending Status = "PENDING"
	StatusBlocked Status = "BLOCKED"
)

// Gate keys.
const (
	GateAuthorization = "AUTHORIZATION"
	GateCommercial    = "COMMERCIAL_EVIDENCE"
	GateSerialization = "SERIALIZATION"
	GateQCCompletion  = "QC_COMPLETION"
	GateStorageAssign = "STORAGE_ASSIGNMENT"
)

// Check is the evaluated result of one gate.
type Check struct {
	Gate   string
	Status Status
	Detail string
}

// Evaluate computes all five readiness gates for a receipt.
func Evaluate(r models.Receipt) []Check {
	return []Check{
		authorization(r),
		commercialEvidence(r),
		serialization(r),
		qcCompletion(r),
		storageAssignment(r),
	}
}

// AllMet reports whether every gate is MET.
func AllMet(checks []Check) bool {
	for _, c := range checks {
		if c.Status != StatusMet {
			return false
		}
	}
	return true
}

// authorization is MET once a receipt exists: manual receipts are trusted
// if created, PO-linked receipts are trusted if linked.
func authorization(r models.Receipt) Check {
	detail := "manual receipt trusted"
	if r.POID != "" {
		detail = fmt.Sprintf("linked to purchase order %s", r.POCode)
	}
	return Check{Gate: GateAuthorization, Status: StatusMet, Detail: detail}
}

func commercialEvidence(r models.Receipt) Check {
	if r.InvoiceNumber == "" {
		return Check{Gate: GateCommercial, Status: StatusPending, Detail: "invoice number not captured"}
	}
	return Check{Gate: GateCommercial, Status: StatusMet, Detail: fmt.Sprintf("invoice %s on file", r.InvoiceNumber)}
}

func serialization(r models.Receipt) Check {
	var target, generated, verified int
	for _, ln := range r.Lines {
		if !ln.IsTrackable() {
			continue
		}
		target += ln.QtyReceived
		generated += len(ln.Units)
		for _, u := range ln.Units {
			if verifiedOrLater(u.State) {
				verified++
			}
		}
	}

	if target == 0 {
		return Check{Gate: GateSerialization, Status: StatusMet, Detail: "no trackable quantity"}
	}
	if generated < target {
		return Check{Gate: GateSerialization, Status: StatusBlocked,
			Detail: fmt.Sprintf("%d of %d units serialized", generated, target)}
	}
	if verified < generated {
		return Check{Gate: GateSerialization, Status: StatusPending,
			Detail: fmt.Sprintf("%d of %d units verified", verified, generated)}
	}
	return Check{Gate: GateSerialization, Status: StatusMet,
		Detail: fmt.Sprintf("%d units serialized and verified", generated)}
}

// verifiedOrLater reports whether a unit has passed verification.
func verifiedOrLater(s models.UnitState) bool {
	switch s {
	case models.UnitStateVerified, models.UnitStateQCHold, models.UnitStateAccepted, models.UnitStateRejected:
		return true
	default:
		return false
	}
}

// qcCompletion is MET when no trackable unit remains in VERIFIED, i.e.
// every verified unit has received a disposition.
func qcCompletion(r models.Receipt) Check {
	var pending int
	for _, ln := range r.Lines {
		if !ln.IsTrackable() {
			continue
		}
		for _, u := range ln.Units {
			if u.State == models.UnitStateVerified {
				pending++
			}
		}
	}

	if pending > 0 {
		return Check{Gate: GateQCCompletion, Status: StatusPending,
			Detail: fmt.Sprintf("%d unit(s) await a QC decision", pending)}
	}
	return Check{Gate: GateQCCompletion, Status: StatusMet, Detail: "all verified units dispositioned"}
}

// storageAssignment is MET when every dispositioned unit has a bin.
func storageAssignment(r models.Receipt) Check {
	var unassigned int
	for _, u := range r.Units() {
		if !u.IsDispositioned() {
			continue
		}
		if u.Putaway == nil || u.Putaway.Bin == "" {
			unassigned++
		}
	}

	if unassigned > 0 {
		return Check{Gate: GateStorageAssign, Status: StatusPending,
			Detail: fmt.Sprintf("%d dispositioned unit(s) have no bin", unassigned)}
	}
	return Check{Gate: GateStorageAssign, Status: StatusMet, Detail: "all dispositioned units binned"}
}
