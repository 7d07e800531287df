package rpc

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"ethwallet/pkg/keys"
	"ethwallet/pkg/models"
	"ethwallet/pkg/utils"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// nativeTransferGas is the fixed gas cost of a plain value transfer.
const nativeTransferGas = 21000

// ReceiptPollInterval is how often the confirmation wait polls for a receipt.
// Overridable in tests.
var ReceiptPollInterval = 2 * time.Second

// ProgressFunc observes transfer stage changes. Callbacks are invoked
// synchronously, in exactly the order signing -> broadcasted -> confirming;
// broadcasted and confirming carry the same transaction hash.
type ProgressFunc func(models.ProgressEvent)

// SendNativeTransfer validates, signs, broadcasts and confirms a native
// transfer. All input validation happens before any network traffic, so a
// rejected request emits no progress events. There is no retry and no
// internal timeout: cancelling ctx abandons the confirmation wait but does
// not revoke a transaction that was already broadcast.
func SendNativeTransfer(ctx context.Context, cache *ClientCache, req models.TransferRequest, onProgress ProgressFunc) (*models.TransferResult, error) {
	if onProgress == nil {
		onProgress = func(models.ProgressEvent) {}
	}

	recipient := strings.TrimSpace(req.Recipient)
	if recipient == "" || !common.IsHexAddress(recipient) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRecipient, recipient)
	}
	to := common.HexToAddress(recipient)

	wei, err := utils.ParseEther(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if wei.Sign() <= 0 {
		return nil, fmt.Errorf("%w: got %q", ErrNonPositiveAmount, req.Amount)
	}

	identity, err := keys.FromPrivateKey(req.PrivateKeyHex)
	if err != nil {
		return nil, err
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(identity.PrivateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", keys.ErrInvalidPrivateKey, err)
	}
	from := common.HexToAddress(identity.Address)

	client, network, err := cache.Acquire(req.NetworkID)
	if err != nil {
		return nil, err
	}

	onProgress(models.ProgressEvent{Stage: models.StageSigning})

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", ErrNetworkUnreachable, err)
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: gas price: %v", ErrNetworkUnreachable, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    wei,
		Gas:      nativeTransferGas,
		GasPrice: gasPrice,
	})
	signer := types.LatestSignerForChainID(big.NewInt(network.ChainID))
	signed, err := types.SignTx(tx, signer, key)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	txHash := signed.Hash().Hex()

	if err := client.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("%w: broadcast: %v", ErrNetworkUnreachable, err)
	}
	onProgress(models.ProgressEvent{Stage: models.StageBroadcasted, TxHash: txHash})
	onProgress(models.ProgressEvent{Stage: models.StageConfirming, TxHash: txHash})

	receipt, err := waitForReceipt(ctx, client, signed.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: tx %s in block %s", ErrOnChainFailure, txHash, receipt.BlockNumber)
	}

	return &models.TransferResult{
		NetworkID:   network.ID,
		ChainID:     network.ChainID,
		TxHash:      txHash,
		From:        from.Hex(),
		To:          to.Hex(),
		Amount:      req.Amount,
		RawAmount:   wei.String(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		ExplorerURL: network.ExplorerURLFor(txHash),
		ConfirmedAt: time.Now(),
	}, nil
}

// waitForReceipt polls until the transaction is included. A single receipt
// counts as confirmation; no block-depth threshold is applied.
func waitForReceipt(ctx context.Context, client receiptReader, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(ReceiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("%w: receipt: %v", ErrNetworkUnreachable, err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: confirmation wait: %v", ErrNetworkUnreachable, ctx.Err())
		}
	}
}

// receiptReader is the slice of ethclient used by the confirmation wait.
type receiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}
