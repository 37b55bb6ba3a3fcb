package wallet

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landledger/registry-indexer/internal/domain"
)

// Well-known hardhat development key, safe to embed in tests.
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestNewFromHexKey(t *testing.T) {
	t.Run("derives address from key", func(t *testing.T) {
		w, err := NewFromHexKey(testKey)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), w.Address())
	})

	t.Run("accepts 0x prefix", func(t *testing.T) {
		w, err := NewFromHexKey("0x" + testKey)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), w.Address())
	})

	t.Run("empty key reports no wallet", func(t *testing.T) {
		_, err := NewFromHexKey("")
		assert.ErrorIs(t, err, domain.ErrNoWallet)
	})

	t.Run("malformed key rejected", func(t *testing.T) {
		_, err := NewFromHexKey("not-a-key")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNoWallet)
	})
}

func TestSignTx(t *testing.T) {
	w, err := NewFromHexKey(testKey)
	require.NoError(t, err)

	chainID := big.NewInt(11155111)
	to := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	tx := types.NewTransaction(0, to, big.NewInt(0), 100000, big.NewInt(1_000_000_000), []byte{0x01})

	signed, err := w.SignTx(tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), sender)
}
