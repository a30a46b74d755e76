package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/grn/internal/core/serial"
	"github.com/example/grn/internal/models"
	"github.com/example/grn/internal/ports/primary"
	"github.com/example/grn/internal/wire"
)

var unitCmd = &cobra.Command{
	Use:   "unit",
	Short: "Serialize, label, and disposition units",
}

var unitGenerateCmd = &cobra.Command{
	Use:   "generate [receipt-id]",
	Short: "Generate serialized units for a line",
	Long: `Generate serialized units with enterprise serials for a trackable line.

RANGE mode draws serials starting at the given sequence; POOL mode draws
from the reserved pool block instead. Generation is all-or-nothing: on a
serial collision no units are created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := currentActor()
		if err != nil {
			return err
		}
		id, err := resolveReceiptID(cmd.Context(), args)
		if err != nil {
			return err
		}

		lineID, _ := cmd.Flags().GetString("line")
		count, _ := cmd.Flags().GetInt("count")
		start, _ := cmd.Flags().GetInt("start")
		pool, _ := cmd.Flags().GetBool("pool")
		if lineID == "" {
			return fmt.Errorf("--line is required")
		}

		mode := serial.ModeRange
		if pool {
			mode = serial.ModePool
		}

		r, err := wire.UnitService().GenerateUnits(cmd.Context(), primary.GenerateUnitsRequest{
			Actor:         actor,
			ReceiptID:     id,
			LineID:        lineID,
			Count:         count,
			StartSequence: start,
			Mode:          mode,
		})
		if err != nil {
			return fmt.Errorf("failed to generate units: %w", err)
		}

		ln := r.Line(lineID)
		units := ln.Units[len(ln.Units)-count:]
		fmt.Printf("✓ Generated %d unit(s) on %s: %s .. %s\n",
			count, ln.Name, units[0].EnterpriseSerial, units[len(units)-1].EnterpriseSerial)
		return nil
	},
}

var unitPrintCmd = &cobra.Command{
	Use:   "print [receipt-id]",
	Short: "Print (or reprint) labels",
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

		lineID, _ := cmd.Flags().GetString("line")
		unitIDs, _ := cmd.Flags().GetStringSlice("unit")

		_, err = wire.UnitService().PrintLabels(cmd.Context(), primary.PrintLabelsRequest{
			Actor:     actor,
			ReceiptID: id,
			LineID:    lineID,
			UnitIDs:   unitIDs,
		})
		if err != nil {
			return fmt.Errorf("failed to print labels: %w", err)
		}

		fmt.Println("✓ Labels printed")
		return nil
	},
}

var unitVoidCmd = &cobra.Command{
	Use:   "void [unit-id]",
	Short: "Void a printed label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := currentActor()
		if err != nil {
			return err
		}
		id, err := resolveReceiptID(cmd.Context(), nil)
		if err != nil {
			return err
		}

		_, err = wire.UnitService().VoidLabel(cmd.Context(), primary.VoidLabelRequest{
			Actor:     actor,
			ReceiptID: id,
			UnitID:    args[0],
		})
		if err != nil {
			return fmt.Errorf("failed to void label: %w", err)
		}

		fmt.Printf("✓ Label voided for unit %s\n", args[0])
		return nil
	},
}

var unitScanCmd = &cobra.Command{
	Use:   "scan [unit-id]",
	Short: "Record a label scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := currentActor()
		if err != nil {
			return err
		}
		id, err := resolveReceiptID(cmd.Context(), nil)
		if err != nil {
			return err
		}

		supplierSerial, _ := cmd.Flags().GetString("supplier-serial")

		_, err = wire.UnitService().ScanUnit(cmd.Context(), primary.ScanUnitRequest{
			Actor:             actor,
			ReceiptID:         id,
			UnitID:            args[0],
			SupplierSerialRef: supplierSerial,
		})
		if err != nil {
			return fmt.Errorf("failed to scan unit: %w", err)
		}

		fmt.Printf("✓ Unit %s scanned\n", args[0])
		return nil
	},
}

var unitVerifyCmd = &cobra.Command{
	Use:   "verify [unit-id]",
	Short: "Mark a scanned unit as verified",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := currentActor()
		if err != nil {
			return err
		}
		id, err := resolveReceiptID(cmd.Context(), nil)
		if err != nil {
			return err
		}

		_, err = wire.UnitService().VerifyUnit(cmd.Context(), primary.VerifyUnitRequest{
			Actor:     actor,
			ReceiptID: id,
			UnitID:    args[0],
		})
		if err != nil {
			return fmt.Errorf("failed to verify unit: %w", err)
		}

		fmt.Printf("✓ Unit %s verified\n", args[0])
		return nil
	},
}

var unitDecideCmd = &cobra.Command{
	Use:   "decide [unit-id] [decision]",
	Short: "Record a QC decision (ACCEPT, HOLD, REJECT)",
	Long: `Record a QC disposition on a verified or held unit.

HOLD and REJECT require --reason. Held units can be re-decided to ACCEPT
or REJECT after investigation.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := currentActor()
		if err != nil {
			return err
		}
		id, err := resolveReceiptID(cmd.Context(), nil)
		if err != nil {
			return err
		}

		reason, _ := cmd.Flags().GetString("reason")

		_, err = wire.UnitService().Decide(cmd.Context(), primary.DecideRequest{
			Actor:     actor,
			ReceiptID: id,
			UnitID:    args[0],
			Decision:  models.DecisionCode(args[1]),
			Reason:    reason,
		})
		if err != nil {
			return fmt.Errorf("failed to record decision: %w", err)
		}

		fmt.Printf("✓ Unit %s: %s\n", args[0], args[1])
		return nil
	},
}

var unitPutawayCmd = &cobra.Command{
	Use:   "putaway [unit-id]",
	Short: "Assign a storage location to a dispositioned unit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := currentActor()
		if err != nil {
			return err
		}
		id, err := resolveReceiptID(cmd.Context(), nil)
		if err != nil {
			return err
		}

		warehouse, _ := cmd.Flags().GetString("warehouse")
		zone, _ := cmd.Flags().GetString("zone")
		bin, _ := cmd.Flags().GetString("bin")

		_, err = wire.UnitService().AssignPutaway(cmd.Context(), primary.PutawayRequest{
			Actor:     actor,
			ReceiptID: id,
			UnitID:    args[0],
			Warehouse: warehouse,
			Zone:      zone,
			Bin:       bin,
		})
		if err != nil {
			return fmt.Errorf("failed to assign putaway: %w", err)
		}

		fmt.Printf("✓ Unit %s stored at %s/%s/%s\n", args[0], warehouse, zone, bin)
		return nil
	},
}

// UnitCmd returns the unit command
func UnitCmd() *cobra.Command {
	// Add flags
	unitGenerateCmd.Flags().String("line", "", "Line id to serialize")
	unitGenerateCmd.Flags().IntP("count", "c", 0, "Number of units to generate")
	unitGenerateCmd.Flags().Int("start", 1, "Starting sequence number")
	unitGenerateCmd.Flags().Bool("pool", false, "Draw serials from the reserved pool block")
	unitPrintCmd.Flags().String("line", "", "Print every unit on this line")
	unitPrintCmd.Flags().StringSlice("unit", nil, "Unit id(s) to print")
	unitScanCmd.Flags().String("supplier-serial", "", "Vendor barcode captured during scan")
	unitDecideCmd.Flags().StringP("reason", "r", "", "Reason for HOLD or REJECT")
	unitPutawayCmd.Flags().String("warehouse", "", "Warehouse code")
	unitPutawayCmd.Flags().String("zone", "", "Zone code")
	unitPutawayCmd.Flags().String("bin", "", "Bin code")

	// Add subcommands
	unitCmd.AddCommand(unitGenerateCmd)
	unitCmd.AddCommand(unitPrintCmd)
	unitCmd.AddCommand(unitVoidCmd)
	unitCmd.AddCommand(unitScanCmd)
	unitCmd.AddCommand(unitVerifyCmd)
	unitCmd.AddCommand(unitDecideCmd)
	unitCmd.AddCommand(unitPutawayCmd)

	return unitCmd
}
