// Package receipt contains the pure business logic for the receipt
// lifecycle. No I/O happens here; functions take and return plain values.
package receipt

import (
	"fmt"
	"time"

	"github.com/example/grn/internal/models"
)

// allowedTransitions is the receipt lifecycle graph. CLOSED is terminal.
var allowedTransitions = map[models.ReceiptState][]models.ReceiptState{
	models.ReceiptStateDraft:         {models.ReceiptStateReceiving},
	models.ReceiptStateReceiving:     {models.ReceiptStateSerialization},
	models.ReceiptStateSerialization: {models.ReceiptStateQCPending},
	models.ReceiptStateQCPending: {
		models.ReceiptStateAccepted,
		models.ReceiptStatePartialAccepted,
		models.ReceiptStateRejected,
	},
	models.ReceiptStateAccepted:          {models.ReceiptStatePutawayInProgress},
	models.ReceiptStatePartialAccepted:   {models.ReceiptStatePutawayInProgress},
	models.ReceiptStateRejected:          {models.ReceiptStateClosed},
	models.ReceiptStatePutawayInProgress: {models.ReceiptStatePutawayComplete},
	models.ReceiptStatePutawayComplete:   {models.ReceiptStateClosed},
	models.ReceiptStateClosed:            {},
}

// InvalidTransitionError is returned when a transition edge is not in the
// lifecycle graph. Callers must not apply any state change on this error.
type InvalidTransitionError struct {
	From models.ReceiptState
	To   models.ReceiptState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid receipt transition %s -> %s", e.From, e.To)
}

// CanTransition reports whether the edge from -> to is permitted.
func CanTransition(from, to models.ReceiptState) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// AllowedTargets returns the states reachable from the given state.
func AllowedTargets(from models.ReceiptState) []models.ReceiptState {
	targets := allowedTransitions[from]
	out := make([]models.ReceiptState, len(targets))
	copy(out, targets)
	return out
}

// Transition moves a receipt to a new state. The input receipt is never
// mutated: on success a deep copy is returned with state set and exactly
// one audit event prepended.
func Transition(r models.Receipt, to models.ReceiptState, actor models.Actor, now time.Time) (models.Receipt, error) {
	if !CanTransition(r.State, to) {
		return models.Receipt{}, &InvalidTransitionError{From: r.State, To: to}
	}

	out := r.Clone()
	from := out.State
	out.State = to
	out.UpdatedAt = now

	ev := models.NewAuditEvent(actor, models.EventStateChanged, models.RefReceipt, out.ID,
		fmt.Sprintf("receipt %s moved from %s to %s", out.Code, from, to), now)
	out.Audit = append([]models.AuditEvent{ev}, out.Audit...)

	return out, nil
}

// ComputeQCOutcome resolves the QC_PENDING fan-out from aggregate unit
// results: all rejected means REJECTED, all accepted means ACCEPTED,
// anything mixed means PARTIAL_ACCEPTED. A receipt with no trackable units
// is ACCEPTED.
func ComputeQCOutcome(total, accepted, rejected int) models.ReceiptState {
	if total == 0 {
		return models.ReceiptStateAccepted
	}
	if rejected == total {
		return models.ReceiptStateRejected
	}
	if accepted == total {
		return models.ReceiptStateAccepted
	}
	return models.ReceiptStatePartialAccepted
}
