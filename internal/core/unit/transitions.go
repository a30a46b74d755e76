// Package unit contains the pure business logic for the unit lifecycle:
// state transitions, QC disposition encoding, and the label print cycle.
package unit

import (
	"fmt"
	"time"

	"github.com/example/grn/internal/models"
)

// allowedTransitions is the unit lifecycle graph. ACCEPTED and REJECTED
// are terminal.
var allowedTransitions = map[models.UnitState][]models.UnitState{
	models.UnitStateCreated: {models.UnitStateLabeled},
	models.UnitStateLabeled: {models.UnitStateScanned},
	models.UnitStateScanned: {models.UnitStateVerified},
	models.UnitStateVerified: {
		models.UnitStateAccepted,
		models.UnitStateQCHold,
		models.UnitStateRejected,
	},
	models.UnitStateQCHold: {
		models.UnitStateAccepted,
		models.UnitStateRejected,
	},
	models.UnitStateAccepted: {},
	models.UnitStateRejected: {},
}

// InvalidTransitionError is returned when a unit transition edge is not in
// the lifecycle graph.
type InvalidTransitionError struct {
	UnitID string
	From   models.UnitState
	To     models.UnitState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid unit transition %s -> %s for unit %s", e.From, e.To, e.UnitID)
}

// CanTransition reports whether the edge from -> to is permitted.
func CanTransition(from, to models.UnitState) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// decisionFor maps a target disposition state to its QC decision code.
func decisionFor(to models.UnitState) (models.DecisionCode, bool) {
	switch to {
	case models.UnitStateAccepted:
		return models.DecisionAccept, true
	case models.UnitStateQCHold:
		return models.DecisionHold, true
	case models.UnitStateRejected:
		return models.DecisionReject, true
	default:
		return "", false
	}
}

// Transition moves a unit to a new state and returns the updated copy plus
// the audit event describing the change. The input unit is never mutated.
// Moving to VERIFIED stamps VerifiedAt; moving to a disposition state
// records the QC decision. HOLD and REJECT require a non-empty reason.
func Transition(u models.Unit, to models.UnitState, actor models.Actor, reason string, now time.Time) (models.Unit, models.AuditEvent, error) {
	if !CanTransition(u.State, to) {
		return models.Unit{}, models.AuditEvent{}, &InvalidTransitionError{UnitID: u.ID, From: u.State, To: to}
	}

	if (to == models.UnitStateQCHold || to == models.UnitStateRejected) && reason == "" {
		return models.Unit{}, models.AuditEvent{},
			fmt.Errorf("a reason is required to move unit %s to %s", u.ID, to)
	}

	out := u.Clone()
	out.State = to

	var evType models.EventType
	var msg string

	switch to {
	case models.UnitStateLabeled:
		evType = models.EventLabelPrinted
		msg = fmt.Sprintf("unit %s labeled", out.EnterpriseSerial)
	case models.UnitStateScanned:
		evType = models.EventUnitScanned
		msg = fmt.Sprintf("unit %s scanned", out.EnterpriseSerial)
	case models.UnitStateVerified:
		t := now
		out.VerifiedAt = &t
		evType = models.EventUnitVerified
		msg = fmt.Sprintf("unit %s verified", out.EnterpriseSerial)
	case models.UnitStateAccepted, models.UnitStateQCHold, models.UnitStateRejected:
		code, _ := decisionFor(to)
		out.Disposition = &models.Disposition{Code: code, Reason: reason, DecidedAt: now}
		evType = models.EventQCDecision
		msg = fmt.Sprintf("unit %s dispositioned %s", out.EnterpriseSerial, code)
		if reason != "" {
			msg += ": " + reason
		}
	}

	ev := models.NewAuditEvent(actor, evType, models.RefUnit, out.ID, msg, now)
	return out, ev, nil
}

// PrintLabel records a label print (or reprint) on the unit. A voided
// label admits no further print actions.
func PrintLabel(u models.Unit, now time.Time) (models.Unit, error) {
	if u.Label.Status == models.LabelVoided {
		return models.Unit{}, fmt.Errorf("label for unit %s is voided and cannot be printed", u.ID)
	}

	out := u.Clone()
	out.Label.Status = models.LabelPrinted
	out.Label.PrintedCount++
	t := now
	out.Label.LastPrintedAt = &t
	return out, nil
}

// VoidLabel voids a printed label. Only a printed label can be voided, and
// voiding is final for that unit's label.
func VoidLabel(u models.Unit) (models.Unit, error) {
	switch u.Label.Status {
	case models.LabelPrinted:
		out := u.Clone()
		out.Label.Status = models.LabelVoided
		return out, nil
	case models.LabelVoided:
		return models.Unit{}, fmt.Errorf("label for unit %s is already voided", u.ID)
	default:
		return models.Unit{}, fmt.Errorf("label for unit %s was never printed", u.ID)
	}
}
