package networks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultListOrder(t *testing.T) {
	nets := Default().List()
	assert.Len(t, nets, 2)
	// Test network first for discoverability.
	assert.Equal(t, Sepolia, nets[0].ID)
	assert.Equal(t, Mainnet, nets[1].ID)
}

func TestDefaultDescriptors(t *testing.T) {
	r := Default()

	sepolia, err := r.Resolve(Sepolia)
	assert.NoError(t, err)
	assert.Equal(t, int64(11155111), sepolia.ChainID)
	assert.Equal(t, "ETH", sepolia.Symbol)
	assert.NotEmpty(t, sepolia.RPCURL)

	mainnet, err := r.Resolve(Mainnet)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), mainnet.ChainID)
}

func TestResolveUnknown(t *testing.T) {
	_, err := Default().Resolve("dogecoin")
	assert.ErrorIs(t, err, ErrUnsupportedNetwork)
}

func TestDefaultWithOverrides(t *testing.T) {
	r := DefaultWithOverrides(map[ID]string{
		Sepolia: "http://localhost:8545",
		"bogus": "http://ignored",
	})

	sepolia, err := r.Resolve(Sepolia)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8545", sepolia.RPCURL)

	// Everything else untouched, catalog size unchanged.
	mainnet, err := r.Resolve(Mainnet)
	assert.NoError(t, err)
	assert.Equal(t, Default().byID[Mainnet].RPCURL, mainnet.RPCURL)
	assert.Len(t, r.List(), 2)
}

func TestExplorerURLFor(t *testing.T) {
	n := Network{ExplorerTxURL: "https://sepolia.etherscan.io/tx"}
	assert.Equal(t, "https://sepolia.etherscan.io/tx/0xabc", n.ExplorerURLFor("0xabc"))
	assert.Equal(t, "", n.ExplorerURLFor(""))
	assert.Equal(t, "", Network{}.ExplorerURLFor("0xabc"))
}
