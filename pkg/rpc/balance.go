package rpc

import (
	"context"
	"fmt"
	"time"

	"ethwallet/pkg/models"
	"ethwallet/pkg/networks"
	"ethwallet/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
)

// FetchBalance queries the current native balance of an address on a network.
// Every call hits the chain; snapshots are authoritative only as of their own
// ObservedAt timestamp.
func FetchBalance(ctx context.Context, cache *ClientCache, id networks.ID, address string) (models.BalanceSnapshot, error) {
	if !common.IsHexAddress(address) {
		return models.BalanceSnapshot{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	account := common.HexToAddress(address)

	client, network, err := cache.Acquire(id)
	if err != nil {
		return models.BalanceSnapshot{}, err
	}

	wei, err := client.BalanceAt(ctx, account, nil)
	if err != nil {
		return models.BalanceSnapshot{}, fmt.Errorf("%w: %v", ErrNetworkUnreachable, err)
	}

	return models.BalanceSnapshot{
		NetworkID:  network.ID,
		Address:    account.Hex(),
		RawAmount:  wei.String(),
		Formatted:  utils.FormatWei(wei),
		Symbol:     network.Symbol,
		ObservedAt: time.Now(),
	}, nil
}
