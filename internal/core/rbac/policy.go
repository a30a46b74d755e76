// Package rbac contains the role/action authorization policy. Authorize is
// a pure function returning a plain boolean; callers surface denials to the
// user themselves.
package rbac

import "github.com/example/grn/internal/models"

// Role is the caller's already-verified role token.
type Role string

// Known roles. Any other role is denied every action.
const (
	RoleAdmin           Role = "ADMIN"
	RoleInboundOperator Role = "INBOUND_OPERATOR"
	RoleQuality         Role = "QUALITY"
)

// Action is one guarded operation on a receipt.
type Action string

// Guarded actions.
const (
	ActionCreateReceipt Action = "CREATE_RECEIPT"
	ActionEditReceipt   Action = "EDIT_RECEIPT"
	ActionAssignSerials Action = "ASSIGN_SERIALS"
	ActionPrintLabels   Action = "PRINT_LABELS"
	ActionQCDecide      Action = "QC_DECIDE"
	ActionPutaway       Action = "PUTAWAY"
	ActionCloseReceipt  Action = "CLOSE_RECEIPT"
)

// allowedActions is the static role -> action table consulted after the
// admin and closed-receipt rules.
var allowedActions = map[Role]map[Action]bool{
	RoleInboundOperator: {
		ActionCreateReceipt: true,
		ActionEditReceipt:   true,
		ActionAssignSerials: true,
		ActionPrintLabels:   true,
		ActionPutaway:       true,
		ActionCloseReceipt:  true,
	},
	RoleQuality: {
		ActionQCDecide: true,
	},
}

// Authorize decides whether a role may perform an action against a receipt
// in the given state. Rule order: admins are always authorized; a closed
// receipt denies every non-admin action; otherwise the static table
// governs. Pass an empty state when no receipt is in scope.
func Authorize(role Role, action Action, state models.ReceiptState) bool {
	if role == RoleAdmin {
		return true
	}
	if state == models.ReceiptStateClosed {
		return false
	}
	return allowedActions[role][action]
}
