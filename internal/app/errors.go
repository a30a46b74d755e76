// Package app implements the primary ports: services that load a receipt
// aggregate, run the core rules, and write the result back through the
// secondary ports.
package app

import "fmt"

// PermissionError reports an authorization denial. It carries the role and
// action so the calling layer can decide how to present "not permitted".
type PermissionError struct {
	Role   string
	Action string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("role %s is not permitted to %s", e.Role, e.Action)
}
