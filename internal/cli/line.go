package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/grn/internal/models"
	"github.com/example/grn/internal/ports/primary"
	"github.com/example/grn/internal/wire"
)

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Manage receipt lines",
}

var lineAddCmd = &cobra.Command{
	Use:   "add [receipt-id]",
	Short: "Add a line to a receipt",
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

		sku, _ := cmd.Flags().GetString("sku")
		name, _ := cmd.Flags().GetString("name")
		category, _ := cmd.Flags().GetString("category")
		lot, _ := cmd.Flags().GetString("lot")
		mfgDate, _ := cmd.Flags().GetString("mfg-date")
		expiryDate, _ := cmd.Flags().GetString("expiry-date")
		qtyExpected, _ := cmd.Flags().GetInt("qty-expected")
		qtyReceived, _ := cmd.Flags().GetInt("qty-received")

		var trackability models.ItemTrackability
		if cmd.Flags().Changed("trackable") {
			trackable, _ := cmd.Flags().GetBool("trackable")
			trackability = models.NonTrackable
			if trackable {
				trackability = models.Trackable
			}
		}

		r, err := wire.ReceiptService().AddLine(cmd.Context(), primary.AddLineRequest{
			Actor:        actor,
			ReceiptID:    id,
			SKU:          sku,
			Name:         name,
			Category:     models.ItemCategory(category),
			Trackability: trackability,
			LotRef:       lot,
			MfgDate:      mfgDate,
			ExpiryDate:   expiryDate,
			QtyExpected:  qtyExpected,
			QtyReceived:  qtyReceived,
		})
		if err != nil {
			return fmt.Errorf("failed to add line: %w", err)
		}

		ln := r.Lines[len(r.Lines)-1]
		fmt.Printf("✓ Added line %s (%s, %s) to %s\n", ln.ID, ln.SKU, ln.Trackability, r.Code)
		return nil
	},
}

var lineUpdateCmd = &cobra.Command{
	Use:   "update [receipt-id]",
	Short: "Edit quantities, lot data, or trackability of a line",
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
		if lineID == "" {
			return fmt.Errorf("--line is required")
		}

		req := primary.UpdateLineRequest{Actor: actor, ReceiptID: id, LineID: lineID}
		if cmd.Flags().Changed("qty-received") {
			qty, _ := cmd.Flags().GetInt("qty-received")
			req.QtyReceived = &qty
		}
		if cmd.Flags().Changed("lot") {
			lot, _ := cmd.Flags().GetString("lot")
			req.LotRef = &lot
		}
		if cmd.Flags().Changed("trackable") {
			trackable, _ := cmd.Flags().GetBool("trackable")
			t := models.NonTrackable
			if trackable {
				t = models.Trackable
			}
			req.Trackability = &t
		}

		r, err := wire.ReceiptService().UpdateLine(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to update line: %w", err)
		}

		fmt.Printf("✓ Updated line %s on %s\n", lineID, r.Code)
		return nil
	},
}

// LineCmd returns the line command
func LineCmd() *cobra.Command {
	// Add flags
	lineAddCmd.Flags().String("sku", "", "Item SKU")
	lineAddCmd.Flags().String("name", "", "Item name")
	lineAddCmd.Flags().String("category", "MISC", "Item category (CELL, BMS, IOT, MODULE, PACK, MISC)")
	lineAddCmd.Flags().String("lot", "", "Lot reference")
	lineAddCmd.Flags().String("mfg-date", "", "Manufacturing date (YYYY-MM-DD)")
	lineAddCmd.Flags().String("expiry-date", "", "Expiry date (YYYY-MM-DD)")
	lineAddCmd.Flags().Int("qty-expected", 0, "Quantity expected")
	lineAddCmd.Flags().Int("qty-received", 0, "Quantity received")
	lineAddCmd.Flags().Bool("trackable", false, "Override the category's trackability default")
	lineUpdateCmd.Flags().String("line", "", "Line id to edit")
	lineUpdateCmd.Flags().Int("qty-received", 0, "New quantity received")
	lineUpdateCmd.Flags().String("lot", "", "New lot reference")
	lineUpdateCmd.Flags().Bool("trackable", false, "New trackability flag (admin only)")

	// Add subcommands
	lineCmd.AddCommand(lineAddCmd)
	lineCmd.AddCommand(lineUpdateCmd)

	return lineCmd
}
