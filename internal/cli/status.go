package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/grn/internal/core/precondition"
	"github.com/example/grn/internal/core/validation"
	"github.com/example/grn/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [receipt-id]",
		Short: "Show the active receipt's validation and closure readiness",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := currentActor()
			if err != nil {
				return err
			}
			id, err := resolveReceiptID(cmd.Context(), args)
			if err != nil {
				return err
			}

			r, err := wire.ReceiptService().GetReceipt(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get receipt: %w", err)
			}

			total, labeled, decided, binned := 0, 0, 0, 0
			for _, u := range r.Units() {
				total++
				if u.Label.PrintedCount > 0 {
					labeled++
				}
				if u.IsDispositioned() {
					decided++
					if u.Putaway != nil {
						binned++
					}
				}
			}

			fmt.Printf("\n%s  %s  [%s as %s]\n", r.Code, r.SupplierName, actor.Name, actor.Role)
			fmt.Printf("State: %s\n", r.State)
			fmt.Printf("Units: %d total, %d labeled, %d decided, %d binned\n",
				total, labeled, decided, binned)

			result, err := wire.ReceiptService().Validate(cmd.Context(), id, actor)
			if err != nil {
				return fmt.Errorf("failed to validate receipt: %w", err)
			}
			fmt.Println()
			printValidation(result)

			checks, err := wire.ReceiptService().Preconditions(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to evaluate preconditions: %w", err)
			}
			fmt.Println()
			printPreconditions(checks)
			fmt.Println()

			return nil
		},
	}
}

// printValidation renders a validation result, one error per line.
func printValidation(result validation.Result) {
	if result.OK() {
		fmt.Printf("Validation: %s\n", color.New(color.FgGreen).Sprint("OK"))
		return
	}

	fmt.Printf("Validation: %s\n", color.New(color.FgRed).Sprintf("%d error(s)", len(result.Errors)))
	for _, e := range result.Errors {
		scope := "receipt"
		if e.Level == validation.LevelLine {
			scope = e.LineName
		}
		fmt.Printf("  %s  %-22s %s\n", color.New(color.FgRed).Sprint("✗"), e.Code, scope)
		if e.Message != "" {
			fmt.Printf("     %s\n", e.Message)
		}
	}
}

// printPreconditions renders the closure readiness panel.
func printPreconditions(checks []precondition.Check) {
	fmt.Println("Closure readiness:")
	for _, c := range checks {
		var icon string
		switch c.Status {
		case precondition.StatusMet:
			icon = color.New(color.FgGreen).Sprint("✓ MET    ")
		case precondition.StatusPending:
			icon = color.New(color.FgYellow).Sprint("! PENDING")
		case precondition.StatusBlocked:
			icon = color.New(color.FgRed).Sprint("✗ BLOCKED")
		}
		fmt.Printf("  %s %-20s %s\n", icon, c.Gate, c.Detail)
	}
}
