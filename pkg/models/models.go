package models

import (
	"time"

	"ethwallet/pkg/networks"
)

// Identity holds the key material for a loaded wallet. It lives only for the
// session; nothing in the core persists it.
type Identity struct {
	Address       string // EIP-55 checksummed, always derived from PrivateKeyHex
	PrivateKeyHex string // 0x-prefixed
	Mnemonic      string // set only when the identity came from a mnemonic path
}

// BalanceSnapshot is the result of a single balance query. RawAmount (wei) is
// the source of truth; Formatted is display-only.
type BalanceSnapshot struct {
	NetworkID  networks.ID `json:"networkId"`
	Address    string      `json:"address"`
	RawAmount  string      `json:"rawAmount"`
	Formatted  string      `json:"formatted"`
	Symbol     string      `json:"symbol"`
	ObservedAt time.Time   `json:"observedAt"`
}

// TransferRequest carries the parameters for one native transfer. It is
// validated per invocation and not retained afterwards.
type TransferRequest struct {
	PrivateKeyHex string
	Recipient     string
	Amount        string // decimal ether string, e.g. "0.05"
	NetworkID     networks.ID
}

// Stage is a step in the transfer lifecycle.
type Stage string

const (
	StageSigning     Stage = "signing"
	StageBroadcasted Stage = "broadcasted"
	StageConfirming  Stage = "confirming"
)

// ProgressEvent notifies the caller of a transfer stage change. TxHash is
// empty for the signing stage and identical for broadcasted and confirming.
type ProgressEvent struct {
	Stage  Stage  `json:"stage"`
	TxHash string `json:"txHash,omitempty"`
}

// TransferResult is the terminal record of a confirmed transfer.
type TransferResult struct {
	NetworkID   networks.ID `json:"networkId"`
	ChainID     int64       `json:"chainId"`
	TxHash      string      `json:"txHash"`
	From        string      `json:"from"`
	To          string      `json:"to"`
	Amount      string      `json:"amount"`    // decimal ether string as requested
	RawAmount   string      `json:"rawAmount"` // wei
	BlockNumber uint64      `json:"blockNumber"`
	ExplorerURL string      `json:"explorerUrl,omitempty"`
	ConfirmedAt time.Time   `json:"confirmedAt"`
}
