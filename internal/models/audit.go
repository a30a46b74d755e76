package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent is an immutable record of one mutating operation. Events are
// never edited or deleted once appended.
type AuditEvent struct {
	ID        string
	At        time.Time
	ActorRole string
	ActorName string
	Type      EventType
	RefType   RefType
	RefID     string
	Message   string
}

// EventType is the closed set of audit event tags.
type EventType string

// Audit event type constants.
const (
	EventReceiptCreated  EventType = "RECEIPT_CREATED"
	EventReceiptUpdated  EventType = "RECEIPT_UPDATED"
	EventStateChanged    EventType = "STATE_CHANGED"
	EventLineAdded       EventType = "LINE_ADDED"
	EventLineUpdated     EventType = "LINE_UPDATED"
	EventAttachmentAdded EventType = "ATTACHMENT_ADDED"
	EventUnitsGenerated  EventType = "UNITS_GENERATED"
	EventLabelPrinted    EventType = "LABEL_PRINTED"
	EventLabelVoided     EventType = "LABEL_VOIDED"
	EventUnitScanned     EventType = "UNIT_SCANNED"
	EventUnitVerified    EventType = "UNIT_VERIFIED"
	EventQCDecision      EventType = "QC_DECISION"
	EventPutawayAssigned EventType = "PUTAWAY_ASSIGNED"
	EventValidationRun   EventType = "VALIDATION_RUN"
	EventContractEmitted EventType = "CONTRACT_EMITTED"
)

// RefType identifies which entity an audit event refers to.
type RefType string

// Audit reference type constants.
const (
	RefReceipt RefType = "RECEIPT"
	RefLine    RefType = "LINE"
	RefUnit    RefType = "UNIT"
)

// Actor identifies who performed an operation. Role is an opaque,
// already-verified token supplied by the caller.
type Actor struct {
	Role string
	Name string
}

// NewAuditEvent builds an audit event for the given actor and reference.
func NewAuditEvent(actor Actor, typ EventType, refType RefType, refID, message string, at time.Time) AuditEvent {
	return AuditEvent{
		ID:        uuid.NewString(),
		At:        at,
		ActorRole: actor.Role,
		ActorName: actor.Name,
		Type:      typ,
		RefType:   refType,
		RefID:     refID,
		Message:   message,
	}
}
