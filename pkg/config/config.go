package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ethwallet/pkg/networks"
)

const ConfigFileName = ".ethwallet.json"

// Config holds the optional user settings. The wallet core never reads it;
// main.go loads it and feeds the pieces in.
type Config struct {
	// RPCOverrides swaps the built-in RPC endpoint per network ID.
	RPCOverrides map[networks.ID]string `json:"rpc_overrides,omitempty"`
	// RefreshSeconds is the balance watcher poll interval.
	RefreshSeconds int `json:"refresh_seconds"`
	// HistoryPoints caps the in-memory balance history per network.
	HistoryPoints int `json:"history_points"`
	// DefaultNetwork preselects a network in the TUI.
	DefaultNetwork networks.ID `json:"default_network,omitempty"`
	// WatchAddress is the account the headless server watches. The TUI
	// ignores it; there the watched address follows the loaded wallet.
	WatchAddress string `json:"watch_address,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		RefreshSeconds: 30,
		HistoryPoints:  60,
		DefaultNetwork: networks.Sepolia,
	}
}

func GetConfigPath(customPath string) (string, error) {
	if customPath != "" {
		return customPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName), nil
}

func LoadConfigFromFile(path string) (Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer func() { _ = f.Close() }()
	return LoadConfig(f)
}

func LoadConfig(r io.Reader) (Config, error) {
	var raw struct {
		RPCOverrides   map[networks.ID]string `json:"rpc_overrides"`
		RefreshSeconds *int                   `json:"refresh_seconds"`
		HistoryPoints  *int                   `json:"history_points"`
		DefaultNetwork *networks.ID           `json:"default_network"`
		WatchAddress   *string                `json:"watch_address"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	cfg.RPCOverrides = raw.RPCOverrides
	if raw.RefreshSeconds != nil {
		cfg.RefreshSeconds = *raw.RefreshSeconds
	}
	if raw.HistoryPoints != nil {
		cfg.HistoryPoints = *raw.HistoryPoints
	}
	if raw.DefaultNetwork != nil {
		cfg.DefaultNetwork = *raw.DefaultNetwork
	}
	if raw.WatchAddress != nil {
		cfg.WatchAddress = *raw.WatchAddress
	}

	if cfg.RefreshSeconds <= 0 {
		return Config{}, fmt.Errorf("validation failed: refresh_seconds must be positive")
	}
	if cfg.HistoryPoints <= 0 {
		return Config{}, fmt.Errorf("validation failed: history_points must be positive")
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if cfg.RefreshSeconds <= 0 {
		return fmt.Errorf("validation failed: refresh_seconds must be positive")
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
