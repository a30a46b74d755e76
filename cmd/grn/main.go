package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/grn/internal/cli"
	"github.com/example/grn/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "grn",
		Short:   "GRN - Goods receipt notes for inbound receiving",
		Version: version.String(),
		Long: `GRN is a CLI tool for receiving inbound shipments at a battery plant.
It tracks receipts from intake through serialization, QC, and putaway,
and emits a contract to production planning when a receipt closes.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ReceiptCmd())
	rootCmd.AddCommand(cli.UnitCmd())
	rootCmd.AddCommand(cli.POCmd())
	rootCmd.AddCommand(cli.SupplierCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
