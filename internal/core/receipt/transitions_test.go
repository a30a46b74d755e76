package receipt

import (
	"errors"
	"testing"
	"time"

	"github.com/example/grn/internal/models"
)

var allStates = []models.ReceiptState{
	models.ReceiptStateDraft,
	models.ReceiptStateReceiving,
	models.ReceiptStateSerialization,
	models.ReceiptStateQCPending,
	models.ReceiptStateAccepted,
	models.ReceiptStatePartialAccepted,
	models.ReceiptStateRejected,
	models.ReceiptStatePutawayInProgress,
	models.ReceiptStatePutawayComplete,
	models.ReceiptStateClosed,
}

func TestCanTransitionMatchesGraph(t *testing.T) {
	wantEdges := map[models.ReceiptState]map[models.ReceiptState]bool{
		models.ReceiptStateDraft:         {models.ReceiptStateReceiving: true},
		models.ReceiptStateReceiving:     {models.ReceiptStateSerialization: true},
		models.ReceiptStateSerialization: {models.ReceiptStateQCPending: true},
		models.ReceiptStateQCPending: {
			models.ReceiptStateAccepted:        true,
			models.ReceiptStatePartialAccepted: true,
			models.ReceiptStateRejected:        true,
		},
		models.ReceiptStateAccepted:          {models.ReceiptStatePutawayInProgress: true},
		models.ReceiptStatePartialAccepted:   {models.ReceiptStatePutawayInProgress: true},
		models.ReceiptStateRejected:          {models.ReceiptStateClosed: true},
		models.ReceiptStatePutawayInProgress: {models.ReceiptStatePutawayComplete: true},
		models.ReceiptStatePutawayComplete:   {models.ReceiptStateClosed: true},
		models.ReceiptStateClosed:            {},
	}

	for _, from := range allStates {
		for _, to := range allStates {
			got := CanTransition(from, to)
			want := wantEdges[from][to]
			if got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTransitionSuccess(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	r := models.Receipt{
		ID:    "rcpt-1",
		Code:  "GRN-0001",
		State: models.ReceiptStateDraft,
		Audit: []models.AuditEvent{{ID: "ev-0", Type: models.EventReceiptCreated}},
	}
	actor := models.Actor{Role: "INBOUND_OPERATOR", Name: "ramesh"}

	out, err := Transition(r, models.ReceiptStateReceiving, actor, now)
	if err != nil {
		t.Fatalf("Transition() error = %v", err)
	}

	if out.State != models.ReceiptStateReceiving {
		t.Errorf("State = %s, want RECEIVING", out.State)
	}
	if len(out.Audit) != 2 {
		t.Fatalf("len(Audit) = %d, want 2", len(out.Audit))
	}
	if out.Audit[0].Type != models.EventStateChanged {
		t.Errorf("newest audit Type = %s, want STATE_CHANGED", out.Audit[0].Type)
	}
	if out.Audit[0].ActorRole != "INBOUND_OPERATOR" {
		t.Errorf("ActorRole = %s, want INBOUND_OPERATOR", out.Audit[0].ActorRole)
	}
	if !out.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", out.UpdatedAt, now)
	}
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	r := models.Receipt{
		ID:    "rcpt-1",
		State: models.ReceiptStateDraft,
		Lines: []models.Line{{ID: "line-1", Units: []models.Unit{{ID: "u-1"}}}},
		Audit: []models.AuditEvent{{ID: "ev-0"}},
	}

	out, err := Transition(r, models.ReceiptStateReceiving, models.Actor{Role: "ADMIN"}, now)
	if err != nil {
		t.Fatalf("Transition() error = %v", err)
	}

	if r.State != models.ReceiptStateDraft {
		t.Errorf("input receipt state mutated to %s", r.State)
	}
	if len(r.Audit) != 1 {
		t.Errorf("input receipt audit mutated, len = %d", len(r.Audit))
	}

	// The returned value must not alias the input's slices.
	out.Lines[0].Units[0].ID = "changed"
	if r.Lines[0].Units[0].ID != "u-1" {
		t.Error("returned receipt aliases input unit slice")
	}
}

func TestTransitionInvalidEdge(t *testing.T) {
	tests := []struct {
		name string
		from models.ReceiptState
		to   models.ReceiptState
	}{
		{"draft cannot skip to QC", models.ReceiptStateDraft, models.ReceiptStateQCPending},
		{"closed is terminal", models.ReceiptStateClosed, models.ReceiptStateDraft},
		{"no backwards edge", models.ReceiptStateQCPending, models.ReceiptStateReceiving},
		{"rejected goes only to closed", models.ReceiptStateRejected, models.ReceiptStatePutawayInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := models.Receipt{ID: "rcpt-1", State: tt.from}
			_, err := Transition(r, tt.to, models.Actor{Role: "ADMIN"}, time.Now())
			if err == nil {
				t.Fatalf("Transition(%s, %s) succeeded, want error", tt.from, tt.to)
			}
			var ite *InvalidTransitionError
			if !errors.As(err, &ite) {
				t.Fatalf("error type = %T, want *InvalidTransitionError", err)
			}
			if ite.From != tt.from || ite.To != tt.to {
				t.Errorf("error edge = %s -> %s, want %s -> %s", ite.From, ite.To, tt.from, tt.to)
			}
		})
	}
}

func TestComputeQCOutcome(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		accepted int
		rejected int
		want     models.ReceiptState
	}{
		{"no trackable units", 0, 0, 0, models.ReceiptStateAccepted},
		{"all accepted", 5, 5, 0, models.ReceiptStateAccepted},
		{"all rejected", 5, 0, 5, models.ReceiptStateRejected},
		{"mixed outcome", 5, 3, 1, models.ReceiptStatePartialAccepted},
		{"holds only", 5, 0, 0, models.ReceiptStatePartialAccepted},
		{"accepted with holds", 4, 2, 0, models.ReceiptStatePartialAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeQCOutcome(tt.total, tt.accepted, tt.rejected)
			if got != tt.want {
				t.Errorf("ComputeQCOutcome(%d, %d, %d) = %s, want %s",
					tt.total, tt.accepted, tt.rejected, got, tt.want)
			}
		})
	}
}

func TestAllowedTargetsIsACopy(t *testing.T) {
	targets := AllowedTargets(models.ReceiptStateQCPending)
	if len(targets) != 3 {
		t.Fatalf("len(targets) = %d, want 3", len(targets))
	}
	targets[0] = models.ReceiptStateClosed
	if CanTransition(models.ReceiptStateQCPending, models.ReceiptStateClosed) {
		t.Error("mutating AllowedTargets result changed the transition table")
	}
}
