package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ethwallet/pkg/networks"
)

func chainIDServer(t *testing.T, chainIDHex string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Method != "eth_chainId" {
			http.Error(w, "unexpected method: "+req.Method, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  chainIDHex,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveWatchAddress(t *testing.T) {
	tests := []struct {
		flagValue   string
		configValue string
		expected    string
	}{
		{"0xFlag", "0xConfig", "0xFlag"},
		{"", "0xConfig", "0xConfig"},
		{"  0xFlag  ", "", "0xFlag"},
		{"", "  0xConfig ", "0xConfig"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := resolveWatchAddress(tt.flagValue, tt.configValue); got != tt.expected {
			t.Errorf("resolveWatchAddress(%q, %q) = %q; want %q", tt.flagValue, tt.configValue, got, tt.expected)
		}
	}
}

func TestRunConnectivityTestOK(t *testing.T) {
	srv := chainIDServer(t, "0x539") // 1337

	registry := networks.NewRegistry(networks.Network{
		ID:      "mockchain",
		Label:   "Mockchain",
		ChainID: 1337,
		RPCURL:  srv.URL,
		Symbol:  "MOCK",
	})

	if code := runConnectivityTest(registry, true); code != 0 {
		t.Errorf("runConnectivityTest = %d; want 0", code)
	}
}

func TestRunConnectivityTestChainIDMismatch(t *testing.T) {
	srv := chainIDServer(t, "0x1")

	registry := networks.NewRegistry(networks.Network{
		ID:      "mockchain",
		Label:   "Mockchain",
		ChainID: 1337,
		RPCURL:  srv.URL,
		Symbol:  "MOCK",
	})

	if code := runConnectivityTest(registry, true); code != 1 {
		t.Errorf("runConnectivityTest = %d; want 1", code)
	}
}

func TestRunConnectivityTestUnreachable(t *testing.T) {
	registry := networks.NewRegistry(networks.Network{
		ID:      "mockchain",
		Label:   "Mockchain",
		ChainID: 1337,
		RPCURL:  "http://127.0.0.1:1/",
		Symbol:  "MOCK",
	})

	if code := runConnectivityTest(registry, true); code != 1 {
		t.Errorf("runConnectivityTest = %d; want 1", code)
	}
}
