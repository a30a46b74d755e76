package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/grn/internal/models"
	"github.com/example/grn/internal/ports/primary"
	"github.com/example/grn/internal/wire"
)

var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Manage goods receipt notes",
	Long:  "Create, inspect, and move receipts through the inbound lifecycle",
}

var receiptCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new receipt in DRAFT",
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := currentActor()
		if err != nil {
			return err
		}

		poID, _ := cmd.Flags().GetString("po")
		supplierID, _ := cmd.Flags().GetString("supplier-id")
		supplierName, _ := cmd.Flags().GetString("supplier")
		if poID == "" && supplierName == "" {
			return fmt.Errorf("pass --po to pull from a purchase order, or --supplier for a manual receipt")
		}

		r, err := wire.ReceiptService().CreateReceipt(cmd.Context(), primary.CreateReceiptRequest{
			Actor:        actor,
			POID:         poID,
			SupplierID:   supplierID,
			SupplierName: supplierName,
		})
		if err != nil {
			return fmt.Errorf("failed to create receipt: %w", err)
		}

		fmt.Printf("✓ Created receipt %s (%s) from %s\n", r.Code, r.ID, r.SupplierName)
		if len(r.Lines) > 0 {
			fmt.Printf("  %d line(s) copied from %s\n", len(r.Lines), r.POCode)
		}
		return nil
	},
}

var receiptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List receipts",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _ := cmd.Flags().GetString("state")
		limit, _ := cmd.Flags().GetInt("limit")

		receipts, err := wire.ReceiptService().ListReceipts(cmd.Context(), primary.ReceiptFilters{
			State: models.ReceiptState(state),
			Limit: limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list receipts: %w", err)
		}

		if len(receipts) == 0 {
			fmt.Println("No receipts found")
			return nil
		}

		fmt.Printf("\n%-10s %-26s %-24s %s\n", "CODE", "STATE", "SUPPLIER", "LINES")
		fmt.Println("────────────────────────────────────────────────────────────────────")
		for _, r := range receipts {
			fmt.Printf("%-10s %-26s %-24s %d\n", r.Code, r.State, r.SupplierName, len(r.Lines))
		}
		fmt.Println()

		return nil
	},
}

var receiptShowCmd = &cobra.Command{
	Use:   "show [receipt-id]",
	Short: "Show receipt details",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveReceiptID(cmd.Context(), args)
		if err != nil {
			return err
		}

		r, err := wire.ReceiptService().GetReceipt(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get receipt: %w", err)
		}

		fmt.Printf("\nReceipt: %s (%s)\n", r.Code, r.ID)
		fmt.Printf("State:    %s\n", r.State)
		fmt.Printf("Supplier: %s\n", r.SupplierName)
		if r.POCode != "" {
			fmt.Printf("PO:       %s\n", r.POCode)
		}
		if r.InvoiceNumber != "" {
			fmt.Printf("Invoice:  %s (%s)\n", r.InvoiceNumber, r.InvoiceDate)
		}
		if r.PackingListRef != "" {
			fmt.Printf("Packing list:  %s\n", r.PackingListRef)
		}
		if r.TransportDocRef != "" {
			fmt.Printf("Transport doc: %s\n", r.TransportDocRef)
		}
		fmt.Printf("Created:  %s by %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.CreatedBy)

		if len(r.Attachments) > 0 {
			fmt.Println("\nAttachments:")
			for _, a := range r.Attachments {
				fmt.Printf("  - [%s] %s\n", a.Type, a.Name)
			}
		}

		if len(r.Lines) > 0 {
			fmt.Println("\nLines:")
			for _, ln := range r.Lines {
				fmt.Printf("  %s  %-20s %-10s recv %d/%d  %d unit(s)\n",
					ln.ID, ln.SKU, ln.Category, ln.QtyReceived, ln.QtyExpected, len(ln.Units))
			}
		}

		if len(r.Audit) > 0 {
			fmt.Println("\nRecent activity:")
			for i, ev := range r.Audit {
				if i >= 5 {
					break
				}
				fmt.Printf("  %s  %-18s %s\n", ev.At.Format("01-02 15:04"), ev.Type, ev.Message)
			}
		}
		fmt.Println()

		return nil
	},
}

var receiptAuditCmd = &cobra.Command{
	Use:   "audit [receipt-id]",
	Short: "Show the full audit trail, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveReceiptID(cmd.Context(), args)
		if err != nil {
			return err
		}

		r, err := wire.ReceiptService().GetReceipt(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get receipt: %w", err)
		}

		if len(r.Audit) == 0 {
			fmt.Println("No audit events")
			return nil
		}

		fmt.Printf("\nAudit trail for %s:\n", r.Code)
		for _, ev := range r.Audit {
			fmt.Printf("  %s  %-18s %-16s %s\n",
				ev.At.Format("2006-01-02 15:04"), ev.Type, ev.ActorName, ev.Message)
		}
		fmt.Println()

		return nil
	},
}

var receiptUseCmd = &cobra.Command{
	Use:   "use [receipt-id]",
	Short: "Set the active receipt for subsequent commands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.ReceiptService().SetActive(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to set active receipt: %w", err)
		}
		fmt.Printf("✓ Active receipt set to %s\n", args[0])
		return nil
	},
}

var receiptUpdateCmd = &cobra.Command{
	Use:   "update [receipt-id]",
	Short: "Capture commercial evidence on a receipt",
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

		invoice, _ := cmd.Flags().GetString("invoice")
		invoiceDate, _ := cmd.Flags().GetString("invoice-date")
		packingList, _ := cmd.Flags().GetString("packing-list")
		transportDoc, _ := cmd.Flags().GetString("transport-doc")

		r, err := wire.ReceiptService().UpdateIntake(cmd.Context(), primary.UpdateIntakeRequest{
			Actor:           actor,
			ReceiptID:       id,
			InvoiceNumber:   invoice,
			InvoiceDate:     invoiceDate,
			PackingListRef:  packingList,
			TransportDocRef: transportDoc,
		})
		if err != nil {
			return fmt.Errorf("failed to update receipt: %w", err)
		}

		fmt.Printf("✓ Updated %s\n", r.Code)
		return nil
	},
}

var receiptAttachCmd = &cobra.Command{
	Use:   "attach [receipt-id]",
	Short: "Record an attachment on a receipt",
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

		name, _ := cmd.Flags().GetString("name")
		typ, _ := cmd.Flags().GetString("type")
		if name == "" {
			return fmt.Errorf("--name is required")
		}

		r, err := wire.ReceiptService().AddAttachment(cmd.Context(), primary.AddAttachmentRequest{
			Actor:     actor,
			ReceiptID: id,
			Name:      name,
			Type:      models.AttachmentType(typ),
		})
		if err != nil {
			return fmt.Errorf("failed to add attachment: %w", err)
		}

		fmt.Printf("✓ Attached %s to %s\n", name, r.Code)
		return nil
	},
}

var receiptValidateCmd = &cobra.Command{
	Use:   "validate [receipt-id]",
	Short: "Run structural validation on a receipt",
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

		result, err := wire.ReceiptService().Validate(cmd.Context(), id, actor)
		if err != nil {
			return fmt.Errorf("failed to validate receipt: %w", err)
		}

		printValidation(result)
		return nil
	},
}

var receiptTransitionCmd = &cobra.Command{
	Use:   "transition [target-state] [receipt-id]",
	Short: "Move a receipt to the target lifecycle state",
	Long: `Move a receipt along its lifecycle graph, for example:

  grn receipt transition RECEIVING
  grn receipt transition SERIALIZATION_IN_PROGRESS GRN-0001

Structural validation runs first; the transition is refused while the
receipt has validation errors. Closing goes through 'grn receipt close'.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := currentActor()
		if err != nil {
			return err
		}
		id, err := resolveReceiptID(cmd.Context(), args[1:])
		if err != nil {
			return err
		}

		result, err := wire.ReceiptService().Validate(cmd.Context(), id, actor)
		if err != nil {
			return fmt.Errorf("failed to validate receipt: %w", err)
		}
		if !result.OK() {
			printValidation(result)
			return fmt.Errorf("receipt has validation errors, fix them before transitioning")
		}

		r, err := wire.ReceiptService().Transition(cmd.Context(), primary.TransitionRequest{
			Actor:     actor,
			ReceiptID: id,
			To:        models.ReceiptState(args[0]),
		})
		if err != nil {
			return fmt.Errorf("failed to transition receipt: %w", err)
		}

		fmt.Printf("✓ %s is now %s\n", r.Code, r.State)
		return nil
	},
}

var receiptOutcomeCmd = &cobra.Command{
	Use:   "outcome [receipt-id]",
	Short: "Resolve the QC outcome from aggregate unit results",
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

		r, err := wire.ReceiptService().DecideOutcome(cmd.Context(), id, actor)
		if err != nil {
			return fmt.Errorf("failed to resolve outcome: %w", err)
		}

		fmt.Printf("✓ %s is now %s\n", r.Code, r.State)
		return nil
	},
}

var receiptCloseCmd = &cobra.Command{
	Use:   "close [receipt-id]",
	Short: "Close a receipt and emit the downstream contract",
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
		plantID, err := currentPlantID()
		if err != nil {
			return err
		}

		res, err := wire.ReceiptService().Close(cmd.Context(), primary.CloseRequest{
			Actor:     actor,
			ReceiptID: id,
			PlantID:   plantID,
		})
		if err != nil {
			return fmt.Errorf("failed to close receipt: %w", err)
		}

		if !res.Closed {
			fmt.Println("Receipt cannot be closed yet:")
			printValidation(res.Validation)
			printPreconditions(res.Preconditions)
			return fmt.Errorf("closure gates not satisfied")
		}

		fmt.Printf("✓ %s closed, contract emitted for plant %s\n", res.Receipt.Code, res.Payload.PlantID)
		fmt.Printf("  %d unit(s): %d accepted, %d on hold, %d rejected\n",
			res.Payload.TotalUnits, len(res.Payload.Accepted), len(res.Payload.OnHold), len(res.Payload.Rejected))
		return nil
	},
}

var receiptContractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "List emitted downstream contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		payloads, err := wire.ReceiptService().ListContracts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list contracts: %w", err)
		}

		if len(payloads) == 0 {
			fmt.Println("No contracts emitted")
			return nil
		}

		fmt.Printf("\n%-10s %-10s %-18s %-6s %-9s %-7s %s\n",
			"CODE", "PLANT", "CLOSED", "UNITS", "ACCEPTED", "HOLD", "REJECTED")
		fmt.Println("────────────────────────────────────────────────────────────────────────")
		for _, p := range payloads {
			fmt.Printf("%-10s %-10s %-18s %-6d %-9d %-7d %d\n",
				p.ReceiptCode, p.PlantID, p.ClosedAt.Format("2006-01-02 15:04"),
				p.TotalUnits, len(p.Accepted), len(p.OnHold), len(p.Rejected))
		}
		fmt.Println()

		return nil
	},
}

// ReceiptCmd returns the receipt command
func ReceiptCmd() *cobra.Command {
	// Add flags
	receiptCreateCmd.Flags().String("po", "", "Purchase order to pull supplier and lines from")
	receiptCreateCmd.Flags().String("supplier", "", "Supplier name for a manual receipt")
	receiptCreateCmd.Flags().String("supplier-id", "", "Supplier id for a manual receipt")
	receiptListCmd.Flags().StringP("state", "s", "", "Filter by lifecycle state")
	receiptListCmd.Flags().IntP("limit", "n", 0, "Limit the number of receipts")
	receiptUpdateCmd.Flags().String("invoice", "", "Invoice number")
	receiptUpdateCmd.Flags().String("invoice-date", "", "Invoice date (YYYY-MM-DD)")
	receiptUpdateCmd.Flags().String("packing-list", "", "Packing list reference")
	receiptUpdateCmd.Flags().String("transport-doc", "", "Transport document reference")
	receiptAttachCmd.Flags().String("name", "", "Attachment file name")
	receiptAttachCmd.Flags().String("type", "OTHER", "Attachment type (INVOICE, PACKING_LIST, TRANSPORT_DOC, PHOTO, OTHER)")

	// Add subcommands
	receiptCmd.AddCommand(receiptCreateCmd)
	receiptCmd.AddCommand(receiptListCmd)
	receiptCmd.AddCommand(receiptShowCmd)
	receiptCmd.AddCommand(receiptAuditCmd)
	receiptCmd.AddCommand(receiptUseCmd)
	receiptCmd.AddCommand(receiptUpdateCmd)
	receiptCmd.AddCommand(receiptAttachCmd)
	receiptCmd.AddCommand(LineCmd())
	receiptCmd.AddCommand(receiptValidateCmd)
	receiptCmd.AddCommand(receiptTransitionCmd)
	receiptCmd.AddCommand(receiptOutcomeCmd)
	receiptCmd.AddCommand(receiptCloseCmd)
	receiptCmd.AddCommand(receiptContractsCmd)

	return receiptCmd
}
