// Package models contains domain types for GRN entities.
// Persistence lives behind the repository interfaces in ports/secondary.
package models

import "time"

// Receipt is the root aggregate for one inbound shipment. It exclusively
// owns its Lines; audit events reference lines and units by id only.
type Receipt struct {
	ID              string
	Code            string
	SupplierID      string
	SupplierName    string
	POID            string
	POCode          string
	InvoiceNumber   string
	InvoiceDate     string
	PackingListRef  string
	TransportDocRef string
	Attachments     []Attachment
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	State           ReceiptState
	Lines           []Line
	// Audit is append-only, newest first.
	Audit []AuditEvent
}

// Attachment records metadata for a document attached to a receipt.
// File contents are handled outside the engine.
type Attachment struct {
	ID   string
	Name string
	Type AttachmentType
}

// ReceiptState represents the lifecycle state of a receipt.
type ReceiptState string

// Receipt lifecycle states. These are wire-level values and must not change.
const (
	ReceiptStateDraft             ReceiptState = "DRAFT"
	ReceiptStateReceiving         ReceiptState = "RECEIVING"
	ReceiptStateSerialization     ReceiptState = "SERIALIZATION_IN_PROGRESS"
	ReceiptStateQCPending         ReceiptState = "QC_PENDING"
	ReceiptStateAccepted          ReceiptState = "ACCEPTED"
	ReceiptStatePartialAccepted   ReceiptState = "PARTIAL_ACCEPTED"
	ReceiptStateRejected          ReceiptState = "REJECTED"
	ReceiptStatePutawayInProgress ReceiptState = "PUTAWAY_IN_PROGRESS"
	ReceiptStatePutawayComplete   ReceiptState = "PUTAWAY_COMPLETE"
	ReceiptStateClosed            ReceiptState = "CLOSED"
)

// AttachmentType classifies an attached document.
type AttachmentType string

// Attachment type constants.
const (
	AttachmentInvoice      AttachmentType = "INVOICE"
	AttachmentPackingList  AttachmentType = "PACKING_LIST"
	AttachmentTransportDoc AttachmentType = "TRANSPORT_DOC"
	AttachmentPhoto        AttachmentType = "PHOTO"
	AttachmentOther        AttachmentType = "OTHER"
)

// Clone returns a deep copy of the receipt. State machine operations work
// on clones so the caller's value is never mutated in place.
func (r Receipt) Clone() Receipt {
	out := r

	out.Attachments = make([]Attachment, len(r.Attachments))
	copy(out.Attachments, r.Attachments)

	out.Audit = make([]AuditEvent, len(r.Audit))
	copy(out.Audit, r.Audit)

	out.Lines = make([]Line, len(r.Lines))
	for i, ln := range r.Lines {
		out.Lines[i] = ln.Clone()
	}

	return out
}

// Line returns a pointer to the line with the given id, or nil.
func (r *Receipt) Line(lineID string) *Line {
	for i := range r.Lines {
		if r.Lines[i].ID == lineID {
			return &r.Lines[i]
		}
	}
	return nil
}

// Units returns every unit across all lines of the receipt.
func (r *Receipt) Units() []Unit {
	var units []Unit
	for _, ln := range r.Lines {
		units = append(units, ln.Units...)
	}
	return units
}
