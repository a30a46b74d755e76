package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/grn/internal/wire"
)

// POCmd returns the po command
func POCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "po",
		Short: "Browse open purchase orders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List open purchase orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := wire.IntakeService().ListOpenPurchaseOrders(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list purchase orders: %w", err)
			}

			if len(orders) == 0 {
				fmt.Println("No open purchase orders")
				return nil
			}

			for _, po := range orders {
				fmt.Printf("\n%s  %s  (%s)\n", po.ID, po.Code, po.SupplierName)
				for _, ln := range po.Lines {
					fmt.Printf("  %-20s %-10s x%d  %s\n", ln.SKU, ln.Category, ln.QtyOrdered, ln.Name)
				}
			}
			fmt.Println()

			return nil
		},
	})

	return cmd
}

// SupplierCmd returns the supplier command
func SupplierCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supplier",
		Short: "Browse the supplier directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List suppliers",
		RunE: func(cmd *cobra.Command, args []string) error {
			suppliers, err := wire.IntakeService().ListSuppliers(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list suppliers: %w", err)
			}

			if len(suppliers) == 0 {
				fmt.Println("No suppliers found")
				return nil
			}

			fmt.Printf("\n%-10s %s\n", "ID", "NAME")
			fmt.Println("────────────────────────────────────")
			for _, s := range suppliers {
				fmt.Printf("%-10s %s\n", s.ID, s.Name)
			}
			fmt.Println()

			return nil
		},
	})

	return cmd
}
