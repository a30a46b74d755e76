// Package validation contains the structural and closure validation rules
// for receipts. Validation is read-only: it never mutates the receipt, and
// failures are returned as values, never raised as errors.
package validation

import (
	"fmt"

	"github.com/example/grn/internal/core/rbac"
	"github.com/example/grn/internal/models"
)

// Level identifies which entity a validation error is reported against.
type Level string

// Validation levels.
const (
	LevelReceipt Level = "RECEIPT"
	LevelLine    Level = "LINE"
)

// Structural validation codes. These are wire-level values.
const (
	CodeMissingSupplier     = "MISSING_SUPPLIER"
	CodeEmptyPOReceipt      = "EMPTY_PO_RECEIPT"
	CodeMissingName         = "MISSING_NAME"
	CodeNegativeQty         = "NEGATIVE_QTY"
	CodeOverReceipt         = "OVER_RECEIPT"
	CodeMissingLot          = "MISSING_LOT"
	CodeMissingTrackability = "MISSING_TRACKABILITY"
	CodeDuplicateEntSerial  = "DUPLICATE_ENT_SERIAL"
	CodeDuplicateSupSerial  = "DUPLICATE_SUP_SERIAL"
)

// Closure validation codes.
const (
	CodeLabelPending = "LABEL_PENDING"
	CodeQCPending    = "QC_PENDING"
	CodeNoPutaway    = "NO_PUTAWAY"
)

// Error is one leveled validation failure with a stable code.
type Error struct {
	Level    Level
	Code     string
	LineID   string
	LineName string
	Count    int
	Message  string
}

// Result is the outcome of a validation run.
type Result struct {
	Errors []Error
}

// OK reports whether the receipt passed validation.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

func receiptErr(code, message string) Error {
	return Error{Level: LevelReceipt, Code: code, Message: message}
}

func lineErr(ln models.Line, code, message string) Error {
	return Error{Level: LevelLine, Code: code, LineID: ln.ID, LineName: ln.Name, Message: message}
}

// ValidateReceipt runs the structural checks. The role matters only for
// over-receipt: admins may receive beyond the expected quantity.
func ValidateReceipt(r models.Receipt, role rbac.Role) Result {
	var errs []Error

	if r.SupplierID == "" && r.SupplierName == "" {
		errs = append(errs, receiptErr(CodeMissingSupplier, "receipt has no supplier"))
	}

	if r.POID != "" && len(r.Lines) == 0 {
		errs = append(errs, receiptErr(CodeEmptyPOReceipt,
			fmt.Sprintf("receipt is linked to PO %s but has no lines", r.POCode)))
	}

	for _, ln := range r.Lines {
		if ln.Name == "" {
			errs = append(errs, lineErr(ln, CodeMissingName, "line has no item name"))
		}
		if ln.QtyReceived < 0 {
			errs = append(errs, lineErr(ln, CodeNegativeQty,
				fmt.Sprintf("received quantity %d is negative", ln.QtyReceived)))
		}
		if role != rbac.RoleAdmin && ln.QtyExpected > 0 && ln.QtyReceived > ln.QtyExpected {
			errs = append(errs, lineErr(ln, CodeOverReceipt,
				fmt.Sprintf("received %d exceeds expected %d", ln.QtyReceived, ln.QtyExpected)))
		}
		if ln.Category == models.CategoryCell && ln.LotRef == "" {
			errs = append(errs, lineErr(ln, CodeMissingLot, "CELL line requires a lot reference"))
		}
		if ln.Trackability == "" {
			errs = append(errs, lineErr(ln, CodeMissingTrackability, "line has no trackability flag"))
		}
	}

	errs = append(errs, duplicateSerialErrors(r)...)

	return Result{Errors: errs}
}

// duplicateSerialErrors checks serial uniqueness across the whole receipt:
// enterprise serials globally, supplier serial refs within the receipt.
func duplicateSerialErrors(r models.Receipt) []Error {
	var errs []Error
	entSeen := map[string]bool{}
	supSeen := map[string]bool{}

	for _, ln := range r.Lines {
		for _, u := range ln.Units {
			if u.EnterpriseSerial != "" {
				if entSeen[u.EnterpriseSerial] {
					errs = append(errs, lineErr(ln, CodeDuplicateEntSerial,
						fmt.Sprintf("duplicate enterprise serial %s", u.EnterpriseSerial)))
				}
				entSeen[u.EnterpriseSerial] = true
			}
			if u.SupplierSerialRef != "" {
				if supSeen[u.SupplierSerialRef] {
					errs = append(errs, lineErr(ln, CodeDuplicateSupSerial,
						fmt.Sprintf("duplicate supplier serial %s", u.SupplierSerialRef)))
				}
				supSeen[u.SupplierSerialRef] = true
			}
		}
	}

	return errs
}

// ValidateClosure runs the stricter per-line checks gating the terminal
// CLOSE transition: every unit on a trackable line must be printed,
// dispositioned, and assigned a storage location.
func ValidateClosure(r models.Receipt) Result {
	var errs []Error

	for _, ln := range r.Lines {
		if !ln.IsTrackable() {
			continue
		}

		var notPrinted, noDecision, noPutaway int
		for _, u := range ln.Units {
			if u.Label.Status == models.LabelNotPrinted {
				notPrinted++
			}
			if !u.HasDisposition() {
				noDecision++
			}
			if u.Putaway == nil || (u.Putaway.Warehouse == "" && u.Putaway.Bin == "") {
				noPutaway++
			}
		}

		if notPrinted > 0 {
			e := lineErr(ln, CodeLabelPending,
				fmt.Sprintf("%d unit(s) on %s still need labels", notPrinted, ln.Name))
			e.Count = notPrinted
			errs = append(errs, e)
		}
		if noDecision > 0 {
			e := lineErr(ln, CodeQCPending,
				fmt.Sprintf("%d unit(s) on %s await a QC decision", noDecision, ln.Name))
			e.Count = noDecision
			errs = append(errs, e)
		}
		if noPutaway > 0 {
			e := lineErr(ln, CodeNoPutaway,
				fmt.Sprintf("%d unit(s) on %s have no storage assignment", noPutaway, ln.Name))
			e.Count = noPutaway
			errs = append(errs, e)
		}
	}

	return Result{Errors: errs}
}
