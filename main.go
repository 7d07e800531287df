package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"ethwallet/pkg/config"
	"ethwallet/pkg/networks"
	"ethwallet/pkg/rpc"
	"ethwallet/pkg/server"
	"ethwallet/pkg/tui"
	"ethwallet/pkg/watcher"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Version should be set during build
var Version = "dev"

type networkCheck struct {
	Network networks.ID `json:"network"`
	RPCURL  string      `json:"rpcUrl"`
	Status  string      `json:"status"`
	ChainID int64       `json:"chainId,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func main() {
	testFlag := flag.Bool("t", false, "Test RPC connectivity and exit")
	testLongFlag := flag.Bool("test", false, "Test RPC connectivity and exit")
	jsonFlag := flag.Bool("json", false, "Output test results as JSON")
	configFlag := flag.String("config", "", "Path to configuration file")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	serverFlag := flag.Bool("server", false, "Run in headless server mode")
	portFlag := flag.Int("port", 8080, "Port for API server")
	addressFlag := flag.String("address", "", "Address to watch in server mode (overrides config)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("ethwallet version %s\n", Version)
		os.Exit(0)
	}

	path, err := config.GetConfigPath(*configFlag)
	if err != nil {
		fmt.Printf("Error determining config path: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfigFromFile(path)
	if err != nil {
		fmt.Printf("Error loading config from %s: %v\n", path, err)
		os.Exit(1)
	}

	registry := networks.DefaultWithOverrides(cfg.RPCOverrides)

	if *testFlag || *testLongFlag {
		os.Exit(runConnectivityTest(registry, *jsonFlag))
	}

	cache := rpc.NewClientCache(registry)
	defer cache.Close()

	watchAddress := resolveWatchAddress(*addressFlag, cfg.WatchAddress)
	w := watcher.NewWatcher(cache, watchAddress, time.Duration(cfg.RefreshSeconds)*time.Second, cfg.HistoryPoints)
	w.Start(context.Background())

	srv := server.NewServer(w)
	go func() {
		if err := srv.Start(*portFlag); err != nil {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	if *serverFlag {
		if watchAddress == "" {
			fmt.Println("Error: server mode needs an address to watch.")
			fmt.Println("Pass -address or set watch_address in the config file.")
			os.Exit(1)
		}
		fmt.Printf("Running in server mode on port %d, watching %s...\n", *portFlag, watchAddress)
		select {} // Keep alive
	}

	tui.Start(cache, w, cfg, Version)
}

// resolveWatchAddress picks the watched account for server mode. The flag
// wins over the config file.
func resolveWatchAddress(flagValue, configValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	return strings.TrimSpace(configValue)
}

// runConnectivityTest dials every configured network and checks the chain ID
// the node reports against the one the catalog expects.
func runConnectivityTest(registry *networks.Registry, asJSON bool) int {
	var checks []networkCheck
	failed := false

	for _, n := range registry.List() {
		check := networkCheck{Network: n.ID, RPCURL: n.RPCURL}
		if !asJSON {
			fmt.Printf("Testing %s: %s ... ", n.Label, n.RPCURL)
		}

		client, err := ethclient.Dial(n.RPCURL)
		if err != nil {
			check.Status = "error"
			check.Error = err.Error()
			failed = true
			if !asJSON {
				fmt.Printf("Failed: %v\n", err)
			}
			checks = append(checks, check)
			continue
		}

		id, err := client.ChainID(context.Background())
		switch {
		case err != nil:
			check.Status = "error"
			check.Error = fmt.Sprintf("Failed to get ChainID: %v", err)
			failed = true
			if !asJSON {
				fmt.Printf("Failed to get ChainID: %v\n", err)
			}
		case id.Cmp(big.NewInt(n.ChainID)) != 0:
			check.Status = "error"
			check.ChainID = id.Int64()
			check.Error = fmt.Sprintf("ChainID mismatch: expected %d, got %s", n.ChainID, id)
			failed = true
			if !asJSON {
				fmt.Printf("MISMATCH! Expected %d, got %s\n", n.ChainID, id)
			}
		default:
			check.Status = "ok"
			check.ChainID = id.Int64()
			if !asJSON {
				fmt.Printf("OK (ChainID: %s)\n", id)
			}
		}
		client.Close()
		checks = append(checks, check)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(checks)
	}

	if failed {
		return 1
	}
	return 0
}
