package watcher

import (
	"context"
	"strconv"
	"sync"
	"time"

	"ethwallet/pkg/models"
	"ethwallet/pkg/networks"
	"ethwallet/pkg/rpc"
)

// BalanceSource defines the interface for fetching balances.
type BalanceSource interface {
	FetchBalance(ctx context.Context, id networks.ID, address string) (models.BalanceSnapshot, error)
}

// cacheSource implements BalanceSource over a shared client cache.
type cacheSource struct {
	cache *rpc.ClientCache
}

func (s *cacheSource) FetchBalance(ctx context.Context, id networks.ID, address string) (models.BalanceSnapshot, error) {
	return rpc.FetchBalance(ctx, s.cache, id, address)
}

// Watcher periodically refreshes the loaded wallet's balance on every
// network in the registry and fans events out to subscribers. It also acts
// as the event bus for transfer progress in headless mode.
type Watcher struct {
	registry   *networks.Registry
	interval   time.Duration
	historyCap int

	mu          sync.RWMutex
	address     string
	snapshots   map[networks.ID]models.BalanceSnapshot
	history     map[networks.ID][]float64
	errs        map[networks.ID]error
	subscribers []Subscriber

	refreshChan chan struct{}
	stopChan    chan struct{}
	source      BalanceSource
}

// NewWatcher creates a watcher over the cache's registry. The address may be
// empty until a wallet is loaded; polling is a no-op until then.
func NewWatcher(cache *rpc.ClientCache, address string, interval time.Duration, historyCap int) *Watcher {
	return &Watcher{
		registry:    cache.Registry(),
		interval:    interval,
		historyCap:  historyCap,
		address:     address,
		snapshots:   make(map[networks.ID]models.BalanceSnapshot),
		history:     make(map[networks.ID][]float64),
		errs:        make(map[networks.ID]error),
		refreshChan: make(chan struct{}, 1),
		stopChan:    make(chan struct{}),
		source:      &cacheSource{cache: cache},
	}
}

// SetSource allows overriding the balance source (useful for testing).
func (w *Watcher) SetSource(s BalanceSource) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.source = s
}

// SetAddress switches the watched wallet and clears prior state.
func (w *Watcher) SetAddress(address string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.address = address
	w.snapshots = make(map[networks.ID]models.BalanceSnapshot)
	w.history = make(map[networks.ID][]float64)
	w.errs = make(map[networks.ID]error)
}

// Subscribe adds a new subscriber and returns a channel to receive events.
func (w *Watcher) Subscribe() Subscriber {
	w.mu.Lock()
	defer w.mu.Unlock()
	ch := make(Subscriber, 100)
	w.subscribers = append(w.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscriber.
func (w *Watcher) Unsubscribe(ch Subscriber) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, sub := range w.subscribers {
		if sub == ch {
			w.subscribers = append(w.subscribers[:i], w.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Publish puts an event on the bus. Transfer code paths use this to share
// progress with websocket clients and the TUI.
func (w *Watcher) Publish(event Event) {
	w.notify(event)
}

func (w *Watcher) notify(event Event) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, sub := range w.subscribers {
		select {
		case sub <- event:
		default:
			// Slow subscriber; drop rather than block the refresher.
		}
	}
}

// Start begins the refresh loop.
func (w *Watcher) Start(ctx context.Context) {
	go w.pollingLoop(ctx)
}

// Stop stops the refresh loop.
func (w *Watcher) Stop() {
	close(w.stopChan)
}

// RefreshNow triggers an immediate refresh, e.g. right after a confirmed
// transfer. Non-blocking; coalesces with any pending trigger.
func (w *Watcher) RefreshNow() {
	select {
	case w.refreshChan <- struct{}{}:
	default:
	}
}

func (w *Watcher) pollingLoop(ctx context.Context) {
	w.refreshAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refreshAll(ctx)
		case <-w.refreshChan:
			w.refreshAll(ctx)
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) refreshAll(ctx context.Context) {
	w.mu.RLock()
	address := w.address
	source := w.source
	w.mu.RUnlock()

	if address == "" {
		return
	}

	var wg sync.WaitGroup
	for _, network := range w.registry.List() {
		wg.Add(1)
		go func(id networks.ID) {
			defer wg.Done()
			snap, err := source.FetchBalance(ctx, id, address)
			if err != nil {
				w.mu.Lock()
				w.errs[id] = err
				w.mu.Unlock()
				w.notify(Event{Type: EventBalanceError, Data: map[string]interface{}{
					"networkId": id,
					"error":     err.Error(),
				}})
				return
			}
			w.recordSnapshot(snap)
			w.notify(Event{Type: EventBalanceUpdated, Data: snap})
		}(network.ID)
	}
	wg.Wait()
}

func (w *Watcher) recordSnapshot(snap models.BalanceSnapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshots[snap.NetworkID] = snap
	delete(w.errs, snap.NetworkID)

	// Lossy float is fine here: the series only feeds the sparkline.
	val, err := strconv.ParseFloat(snap.Formatted, 64)
	if err != nil {
		return
	}
	series := append(w.history[snap.NetworkID], val)
	if len(series) > w.historyCap {
		series = series[len(series)-w.historyCap:]
	}
	w.history[snap.NetworkID] = series
}

// Snapshots returns a copy of the latest snapshot per network.
func (w *Watcher) Snapshots() map[networks.ID]models.BalanceSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	cp := make(map[networks.ID]models.BalanceSnapshot, len(w.snapshots))
	for k, v := range w.snapshots {
		cp[k] = v
	}
	return cp
}

// History returns a copy of the balance series for a network.
func (w *Watcher) History(id networks.ID) []float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	series := w.history[id]
	cp := make([]float64, len(series))
	copy(cp, series)
	return cp
}

// LastError returns the most recent fetch error for a network, if any.
func (w *Watcher) LastError(id networks.ID) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.errs[id]
}

// Address returns the currently watched address.
func (w *Watcher) Address() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.address
}
