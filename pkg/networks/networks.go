package networks

import (
	"errors"
	"fmt"
)

// ErrUnsupportedNetwork is returned when a network ID is not in the catalog.
var ErrUnsupportedNetwork = errors.New("unsupported network")

// ID identifies a supported network.
type ID string

const (
	Sepolia ID = "sepolia"
	Mainnet ID = "mainnet"
)

// Network describes a supported chain. Descriptors are immutable once the
// registry is built.
type Network struct {
	ID            ID
	Label         string
	ChainID       int64
	RPCURL        string
	Symbol        string
	ExplorerTxURL string // base URL for transaction pages, empty if none
}

// ExplorerURLFor builds the explorer link for a transaction hash, or returns
// "" when the network has no explorer configured.
func (n Network) ExplorerURLFor(txHash string) string {
	if n.ExplorerTxURL == "" || txHash == "" {
		return ""
	}
	return n.ExplorerTxURL + "/" + txHash
}

// Registry is a static catalog of supported networks.
type Registry struct {
	ordered []Network
	byID    map[ID]Network
}

// NewRegistry builds a registry from the given descriptors, preserving order.
func NewRegistry(nets ...Network) *Registry {
	r := &Registry{
		ordered: make([]Network, 0, len(nets)),
		byID:    make(map[ID]Network, len(nets)),
	}
	for _, n := range nets {
		if _, ok := r.byID[n.ID]; ok {
			continue
		}
		r.ordered = append(r.ordered, n)
		r.byID[n.ID] = n
	}
	return r
}

// Default returns the built-in catalog. Sepolia is listed first so that the
// test network is the most discoverable choice.
func Default() *Registry {
	return NewRegistry(
		Network{
			ID:            Sepolia,
			Label:         "Sepolia Testnet",
			ChainID:       11155111,
			RPCURL:        "https://ethereum-sepolia-rpc.publicnode.com",
			Symbol:        "ETH",
			ExplorerTxURL: "https://sepolia.etherscan.io/tx",
		},
		Network{
			ID:            Mainnet,
			Label:         "Ethereum Mainnet",
			ChainID:       1,
			RPCURL:        "https://ethereum-rpc.publicnode.com",
			Symbol:        "ETH",
			ExplorerTxURL: "https://etherscan.io/tx",
		},
	)
}

// DefaultWithOverrides returns the built-in catalog with RPC endpoints
// replaced for the given network IDs. Unknown IDs are ignored; the catalog
// itself never grows or shrinks at runtime.
func DefaultWithOverrides(rpcOverrides map[ID]string) *Registry {
	base := Default()
	if len(rpcOverrides) == 0 {
		return base
	}
	nets := make([]Network, len(base.ordered))
	copy(nets, base.ordered)
	for i := range nets {
		if url, ok := rpcOverrides[nets[i].ID]; ok && url != "" {
			nets[i].RPCURL = url
		}
	}
	return NewRegistry(nets...)
}

// List returns the catalog in stable order.
func (r *Registry) List() []Network {
	out := make([]Network, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Resolve looks up a network by ID.
func (r *Registry) Resolve(id ID) (Network, error) {
	n, ok := r.byID[id]
	if !ok {
		return Network{}, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, id)
	}
	return n, nil
}
