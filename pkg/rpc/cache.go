package rpc

import (
	"errors"
	"fmt"
	"sync"

	"ethwallet/pkg/networks"

	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	// ErrNetworkUnreachable wraps connection and RPC-level transport
	// failures. The underlying error is preserved for inspection.
	ErrNetworkUnreachable = errors.New("network unreachable")

	// ErrInvalidAddress is returned for malformed account addresses.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidRecipient is returned for malformed transfer recipients.
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrInvalidAmount is returned when an amount string does not parse.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNonPositiveAmount is returned when a parsed amount is zero or
	// negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrOnChainFailure means the transaction was mined but reverted. Gas
	// was spent even though no value moved; callers must surface this
	// distinctly from transport failures.
	ErrOnChainFailure = errors.New("transaction reverted on-chain")
)

// ClientCache hands out one long-lived ethclient per network, constructed on
// first use. It is the only shared mutable state in the core; the mutex
// ensures concurrent first-time Acquire calls for the same network produce a
// single client.
type ClientCache struct {
	registry *networks.Registry

	mu      sync.Mutex
	clients map[networks.ID]*ethclient.Client
}

// NewClientCache creates an empty cache over the given registry.
func NewClientCache(registry *networks.Registry) *ClientCache {
	return &ClientCache{
		registry: registry,
		clients:  make(map[networks.ID]*ethclient.Client),
	}
}

// Registry exposes the catalog the cache was built over.
func (c *ClientCache) Registry() *networks.Registry {
	return c.registry
}

// Acquire returns the cached client for a network, dialing it on first use.
func (c *ClientCache) Acquire(id networks.ID) (*ethclient.Client, networks.Network, error) {
	network, err := c.registry.Resolve(id)
	if err != nil {
		return nil, networks.Network{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[id]; ok {
		return client, network, nil
	}
	client, err := ethclient.Dial(network.RPCURL)
	if err != nil {
		return nil, networks.Network{}, fmt.Errorf("%w: dial %s: %v", ErrNetworkUnreachable, network.RPCURL, err)
	}
	c.clients[id] = client
	return client, network, nil
}

// Close releases every cached connection. The cache is reusable afterwards;
// the next Acquire redials.
func (c *ClientCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, client := range c.clients {
		client.Close()
		delete(c.clients, id)
	}
}
