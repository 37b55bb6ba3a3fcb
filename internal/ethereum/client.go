// Package ethereum wraps the node RPC surface the registrar client
// needs: submitting signed contract calls and fetching mined
// transactions with their containing blocks.
package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/cenkalti/backoff/v4"
	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/landledger/registry-indexer/internal/adapter"
	"github.com/landledger/registry-indexer/internal/domain"
	"github.com/landledger/registry-indexer/internal/logger"
	"github.com/landledger/registry-indexer/internal/wallet"
)

// receiptPollInterval is how often WaitMined asks the node for a receipt
const receiptPollInterval = 3 * time.Second

// Client defines the node operations used by the orchestrator
//
//go:generate mockgen -source=client.go -destination=../mocks/ethereum.go -package=mocks -mock_names=Client=MockEthereumClient
type Client interface {
	// ChainID returns the configured chain identifier
	ChainID() domain.Chain

	// SubmitCall signs and broadcasts a contract call carrying the given
	// calldata and returns the transaction hash
	SubmitCall(ctx context.Context, w wallet.Wallet, to common.Address, calldata []byte) (common.Hash, error)

	// WaitMined blocks until the transaction is mined or ctx expires,
	// polling for the receipt at a fixed interval
	WaitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error)

	// TransactionByHash returns the transaction for the given hash
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, error)

	// BlockByNumber returns a block by number
	BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error)

	// Close closes the connection
	Close()
}

type ethereumClient struct {
	chainID domain.Chain
	client  adapter.EthClient
}

// NewClient creates a client for the given chain over a dialed node connection
func NewClient(chainID domain.Chain, client adapter.EthClient) Client {
	return &ethereumClient{chainID: chainID, client: client}
}

// ChainID returns the configured chain identifier
func (c *ethereumClient) ChainID() domain.Chain {
	return c.chainID
}

// SubmitCall signs and broadcasts a contract call
func (c *ethereumClient) SubmitCall(ctx context.Context, w wallet.Wallet, to common.Address, calldata []byte) (common.Hash, error) {
	from := w.Address()

	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := c.client.EstimateGas(ctx, goethereum.CallMsg{
		From: from,
		To:   &to,
		Data: calldata,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTransaction(nonce, to, big.NewInt(0), gasLimit, gasPrice, calldata)

	signed, err := w.SignTx(tx, c.chainID.ID())
	if err != nil {
		return common.Hash{}, err
	}

	if err := c.client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.InfoCtx(ctx, "Submitted transaction",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas_limit", gasLimit),
	)

	return signed.Hash(), nil
}

// WaitMined polls for the transaction receipt until it appears or the
// context deadline passes. The context carries the caller's explicit
// confirmation timeout; abandoning the wait never leaves a background
// poller running.
func (c *ethereumClient) WaitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt

	operation := func() error {
		r, err := c.client.TransactionReceipt(ctx, txHash)
		if err != nil {
			if errors.Is(err, goethereum.NotFound) {
				// Not mined yet, keep polling
				return fmt.Errorf("transaction %s not mined yet", txHash.Hex())
			}
			return backoff.Permanent(fmt.Errorf("failed to get receipt: %w", err))
		}
		receipt = r
		return nil
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(receiptPollInterval), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotMined, txHash.Hex())
		}
		return nil, err
	}

	logger.InfoCtx(ctx, "Transaction mined",
		zap.String("tx_hash", txHash.Hex()),
		zap.Uint64("block_number", receipt.BlockNumber.Uint64()),
		zap.Uint64("status", receipt.Status),
	)

	return receipt, nil
}

// TransactionByHash returns the transaction for the given hash
func (c *ethereumClient) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, error) {
	tx, _, err := c.client.TransactionByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

// BlockByNumber returns a block by number
func (c *ethereumClient) BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error) {
	block, err := c.client.BlockByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get block: %w", err)
	}
	return block, nil
}

// Close closes the connection
func (c *ethereumClient) Close() {
	c.client.Close()
}
