package cli

import (
	"context"
	"fmt"

	"github.com/example/grn/internal/config"
	"github.com/example/grn/internal/models"
	"github.com/example/grn/internal/wire"
)

// currentActor resolves the acting role and operator name from the
// workstation config. Run `grn init` first.
func currentActor() (models.Actor, error) {
	home, err := config.HomeDir()
	if err != nil {
		return models.Actor{}, err
	}
	cfg, err := config.LoadConfig(home)
	if err != nil {
		return models.Actor{}, fmt.Errorf("no workstation config found, run 'grn init' first: %w", err)
	}
	return models.Actor{Role: cfg.Role, Name: cfg.Operator}, nil
}

// currentPlantID resolves the receiving plant for outbound contracts.
func currentPlantID() (string, error) {
	home, err := config.HomeDir()
	if err != nil {
		return "", err
	}
	cfg, err := config.LoadConfig(home)
	if err != nil {
		return "", fmt.Errorf("no workstation config found, run 'grn init' first: %w", err)
	}
	return cfg.PlantID, nil
}

// resolveReceiptID returns args[0] when given, otherwise the active
// receipt pointer.
func resolveReceiptID(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	r, err := wire.ReceiptService().ActiveReceipt(ctx)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", fmt.Errorf("no active receipt, pass an id or run 'grn receipt use <id>'")
	}
	return r.ID, nil
}
