package keys

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"ethwallet/pkg/models"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

var (
	// ErrInvalidPrivateKey is returned when input is not a well-formed
	// secp256k1 private key in hex form.
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrEmptyMnemonic is returned when a mnemonic input is empty after
	// whitespace normalization.
	ErrEmptyMnemonic = errors.New("empty mnemonic")

	// ErrInvalidMnemonic is returned when a phrase fails BIP-39 word-list or
	// checksum validation.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrEntropyUnavailable is returned when the platform entropy source
	// fails during wallet creation.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")
)

// mnemonicEntropyBits yields a 12-word phrase.
const mnemonicEntropyBits = 128

// Create generates a fresh identity backed by a new 12-word mnemonic. This is
// the only operation that draws randomness; both recovery paths are
// deterministic.
func Create() (models.Identity, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return FromMnemonic(mnemonic)
}

// FromPrivateKey reconstructs an identity from a raw hex private key. Input
// is trimmed and accepted with or without the 0x prefix; the stored form is
// always prefixed.
func FromPrivateKey(input string) (models.Identity, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return models.Identity{}, fmt.Errorf("%w: empty input", ErrInvalidPrivateKey)
	}
	bare := strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")
	key, err := crypto.HexToECDSA(bare)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return identityFromKey(key, ""), nil
}

// FromMnemonic recovers the identity behind a BIP-39 phrase using the
// standard Ethereum path m/44'/60'/0'/0/0. Identical phrases always yield
// identical identities.
func FromMnemonic(input string) (models.Identity, error) {
	mnemonic := normalizeMnemonic(input)
	if mnemonic == "" {
		return models.Identity{}, ErrEmptyMnemonic
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return models.Identity{}, ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, "")
	key, err := deriveEthereumKey(seed)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return identityFromKey(key, mnemonic), nil
}

// IsValidPrivateKey reports whether input would be accepted by
// FromPrivateKey. It never exposes partial key material.
func IsValidPrivateKey(input string) bool {
	_, err := FromPrivateKey(input)
	return err == nil
}

// IsValidMnemonic reports whether input would be accepted by FromMnemonic.
func IsValidMnemonic(input string) bool {
	_, err := FromMnemonic(input)
	return err == nil
}

// normalizeMnemonic trims and collapses internal whitespace to single spaces.
func normalizeMnemonic(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// deriveEthereumKey walks m/44'/60'/0'/0/0 from a BIP-39 seed.
func deriveEthereumKey(seed []byte) (*ecdsa.PrivateKey, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	path := []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + 60,
		hdkeychain.HardenedKeyStart + 0,
		0,
		0,
	}
	node := master
	for _, step := range path {
		node, err = node.Derive(step)
		if err != nil {
			return nil, err
		}
	}
	priv, err := node.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return priv.ToECDSA(), nil
}

func identityFromKey(key *ecdsa.PrivateKey, mnemonic string) models.Identity {
	return models.Identity{
		Address:       crypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKeyHex: hexutil.Encode(crypto.FromECDSA(key)),
		Mnemonic:      mnemonic,
	}
}
