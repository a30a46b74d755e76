package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat GRN workstation configuration. Role and
// operator identify who is acting at this terminal; PlantID stamps every
// outbound contract emitted from it.
type Config struct {
	Version  string `json:"version"`
	Role     string `json:"role"`     // "ADMIN", "INBOUND_OPERATOR" or "QUALITY"
	Operator string `json:"operator"` // display name recorded in the audit trail
	PlantID  string `json:"plant_id"`
}

// DefaultConfig returns the configuration written by `grn init`.
func DefaultConfig() *Config {
	return &Config{
		Version:  "1.0",
		Role:     "INBOUND_OPERATOR",
		Operator: "operator",
		PlantID:  "PLANT-01",
	}
}

// LoadConfig reads .grn/config.json from the specified directory.
// Returns an error if no config is found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".grn", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to the directory
func SaveConfig(dir string, cfg *Config) error {
	grnDir := filepath.Join(dir, ".grn")
	if err := os.MkdirAll(grnDir, 0755); err != nil {
		return fmt.Errorf("failed to create .grn dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(grnDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// HomeDir returns the directory holding .grn/ state for this user.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}
