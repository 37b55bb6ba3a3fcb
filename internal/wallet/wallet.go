// Package wallet provides transaction signing for the registrar client.
package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/landledger/registry-indexer/internal/domain"
)

// Wallet defines an interface for signing operations to enable mocking
//
//go:generate mockgen -source=wallet.go -destination=../mocks/wallet.go -package=mocks -mock_names=Wallet=MockWallet
type Wallet interface {
	// Address returns the account address of the wallet
	Address() common.Address

	// SignTx signs a transaction for the given chain
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

type keyWallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewFromHexKey creates a wallet from a hex-encoded private key. The key
// comes from configuration (environment), never from source. An empty
// key yields domain.ErrNoWallet so callers can surface "no wallet
// configured" distinctly from a malformed key.
func NewFromHexKey(hexKey string) (Wallet, error) {
	if hexKey == "" {
		return nil, domain.ErrNoWallet
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid wallet private key: %w", err)
	}

	return &keyWallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the account address of the wallet
func (w *keyWallet) Address() common.Address {
	return w.address
}

// SignTx signs a transaction for the given chain
func (w *keyWallet) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), w.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}
