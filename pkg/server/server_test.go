package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ethwallet/pkg/models"
	"ethwallet/pkg/networks"
	"ethwallet/pkg/rpc"
	"ethwallet/pkg/watcher"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func testWatcher(t *testing.T) *watcher.Watcher {
	t.Helper()
	registry := networks.NewRegistry(networks.Network{
		ID: "mockchain", Label: "Mock Chain", ChainID: 1337,
		RPCURL: "http://127.0.0.1:0", Symbol: "ETH",
	})
	cache := rpc.NewClientCache(registry)
	t.Cleanup(cache.Close)
	return watcher.NewWatcher(cache, "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B", time.Minute, 5)
}

func TestHandleStatus(t *testing.T) {
	s := NewServer(testWatcher(t))

	req, _ := http.NewRequest("GET", "/api/status", nil)
	rr := httptest.NewRecorder()

	s.mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Contains(t, resp, "balances")
	// Only the masked form is exposed.
	assert.Equal(t, "0xAb58...eC9B", resp["address"])
}

func TestHandleWS(t *testing.T) {
	w := testWatcher(t)
	s := NewServer(w)
	server := httptest.NewServer(s.mux)
	defer server.Close()

	go s.listenToWatcher()

	u := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	ws, _, err := websocket.DefaultDialer.Dial(u, nil)
	assert.NoError(t, err)
	defer func() { _ = ws.Close() }()

	// Read initial state
	var msg map[string]interface{}
	err = ws.ReadJSON(&msg)
	assert.NoError(t, err)
	assert.Equal(t, "initial", msg["type"])

	// A published event reaches the socket.
	w.Publish(watcher.Event{
		Type: watcher.EventTransferProgress,
		Data: models.ProgressEvent{Stage: models.StageSigning},
	})

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev map[string]interface{}
	err = ws.ReadJSON(&ev)
	assert.NoError(t, err)
	assert.Equal(t, string(watcher.EventTransferProgress), ev["type"])
}
