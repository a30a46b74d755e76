package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/grn/internal/config"
	"github.com/example/grn/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the GRN database and workstation config",
		Long: `Initialize the GRN database at ~/.grn/grn.db with the required schema,
seed demo purchase orders and suppliers, and write ~/.grn/config.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing GRN database at %s\n", dbPath)

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Println("✓ Demo purchase orders and suppliers seeded")

			if err := initConfig(cmd); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Println("✓ Workstation config written to ~/.grn/config.json")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  grn po list")
			fmt.Println("  grn receipt create --po PO-001")
			fmt.Println("  grn status")

			return nil
		},
	}

	cmd.Flags().String("role", "INBOUND_OPERATOR", "Role for this workstation (ADMIN, INBOUND_OPERATOR, QUALITY)")
	cmd.Flags().String("operator", "", "Operator name recorded in the audit trail")
	cmd.Flags().String("plant", "PLANT-01", "Plant id stamped on outbound contracts")

	return cmd
}

// initConfig writes the workstation config, keeping an existing one unless
// flags were passed.
func initConfig(cmd *cobra.Command) error {
	home, err := config.HomeDir()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(home)
	if err != nil {
		cfg = config.DefaultConfig()
		if host, herr := os.Hostname(); herr == nil && cfg.Operator == "operator" {
			cfg.Operator = host
		}
	}

	if cmd.Flags().Changed("role") {
		cfg.Role, _ = cmd.Flags().GetString("role")
	}
	if cmd.Flags().Changed("operator") {
		cfg.Operator, _ = cmd.Flags().GetString("operator")
	}
	if cmd.Flags().Changed("plant") {
		cfg.PlantID, _ = cmd.Flags().GetString("plant")
	}

	return config.SaveConfig(home, cfg)
}
