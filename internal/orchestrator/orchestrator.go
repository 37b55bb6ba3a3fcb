// Package orchestrator drives a registry contract call end to end:
// signing, submission, confirmation, and reconciliation of the mined
// transaction into the off-chain index.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/landledger/registry-indexer/internal/adapter"
	"github.com/landledger/registry-indexer/internal/apiclient"
	"github.com/landledger/registry-indexer/internal/contract"
	"github.com/landledger/registry-indexer/internal/domain"
	"github.com/landledger/registry-indexer/internal/ethereum"
	"github.com/landledger/registry-indexer/internal/logger"
	"github.com/landledger/registry-indexer/internal/wallet"
)

// State is one step of a registry call's lifecycle
type State string

const (
	StateIdle                 State = "idle"
	StateAwaitingSignature    State = "awaiting_wallet_signature"
	StateSubmitted            State = "submitted"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateConfirmed            State = "confirmed"
	StateReconciling          State = "reconciling"
	StateDone                 State = "done"
	StateFailed               State = "failed"
)

// TransitionHook observes every state transition. It is called
// synchronously from the calling goroutine.
type TransitionHook func(from, to State)

// Ingester appends decoded registrations to the off-chain index
//
//go:generate mockgen -source=orchestrator.go -destination=../mocks/ingester.go -package=mocks -mock_names=Ingester=MockIngester
type Ingester interface {
	CreateRecord(ctx context.Context, record apiclient.CreateRecordRequest) error
}

// Result reports the outcome of a completed registry call. Recorded is
// false when the mined transaction was confirmed on chain but no row
// was appended to the index; Note says why.
type Result struct {
	TxHash      common.Hash
	BlockNumber *big.Int
	Recorded    bool
	Note        string
}

// Config holds the orchestrator settings
type Config struct {
	// ContractAddress is the deployed registry contract
	ContractAddress common.Address

	// ConfirmationTimeout bounds the wait for the transaction receipt
	ConfirmationTimeout time.Duration

	// OnTransition, when set, observes every state transition
	OnTransition TransitionHook
}

// Orchestrator executes registry calls as an explicit state machine.
// Every blocking step runs under the caller's context; there is no
// background goroutine to leak when the caller gives up.
type Orchestrator struct {
	cfg     Config
	eth     ethereum.Client
	wallet  wallet.Wallet
	ingest  Ingester
	decoder *contract.Decoder
	clock   adapter.Clock

	state State
}

// New creates an orchestrator over a node client, a signing wallet, and
// the index ingest client
func New(cfg Config, eth ethereum.Client, w wallet.Wallet, ingest Ingester) *Orchestrator {
	if cfg.ConfirmationTimeout == 0 {
		cfg.ConfirmationTimeout = 2 * time.Minute
	}
	return &Orchestrator{
		cfg:     cfg,
		eth:     eth,
		wallet:  w,
		ingest:  ingest,
		decoder: contract.NewDecoder(),
		clock:   &adapter.RealClock{},
		state:   StateIdle,
	}
}

// State returns the current lifecycle state
func (o *Orchestrator) State() State {
	return o.state
}

// RegisterProperty registers a property on chain and reconciles the
// mined transaction into the off-chain index
func (o *Orchestrator) RegisterProperty(ctx context.Context, propertyID *big.Int, location string, area *big.Int, owner common.Address) (*Result, error) {
	calldata, err := contract.PackRegisterProperty(propertyID, location, area, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to encode registerProperty call: %w", err)
	}
	return o.run(ctx, calldata)
}

// TransferProperty transfers a property on chain. Transfers are
// confirmed but never appended to the index, which records
// registrations only.
func (o *Orchestrator) TransferProperty(ctx context.Context, propertyID *big.Int, newOwner common.Address) (*Result, error) {
	calldata, err := contract.PackTransferProperty(propertyID, newOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transferProperty call: %w", err)
	}
	return o.run(ctx, calldata)
}

// run walks the call through the lifecycle. Chain-side failures move
// the machine to failed and surface as errors. Reconciliation failures
// do not: once the transaction is confirmed the call has succeeded on
// chain, so a missing index row is reported through Result.Recorded
// rather than unwinding the whole operation.
func (o *Orchestrator) run(ctx context.Context, calldata []byte) (*Result, error) {
	o.transition(StateAwaitingSignature)

	txHash, err := o.eth.SubmitCall(ctx, o.wallet, o.cfg.ContractAddress, calldata)
	if err != nil {
		return nil, o.fail(fmt.Errorf("failed to submit transaction: %w", err))
	}
	o.transition(StateSubmitted)

	o.transition(StateAwaitingConfirmation)
	confirmCtx, cancel := context.WithTimeout(ctx, o.cfg.ConfirmationTimeout)
	defer cancel()

	receipt, err := o.eth.WaitMined(confirmCtx, txHash)
	if err != nil {
		return nil, o.fail(err)
	}
	if receipt.Status == 0 {
		return nil, o.fail(fmt.Errorf("transaction %s reverted", txHash.Hex()))
	}
	o.transition(StateConfirmed)

	o.transition(StateReconciling)
	result := &Result{
		TxHash:      txHash,
		BlockNumber: receipt.BlockNumber,
	}
	result.Recorded, result.Note = o.reconcile(ctx, txHash, receipt.BlockNumber)
	o.transition(StateDone)

	return result, nil
}

// reconcile re-reads the mined transaction from the node, decodes its
// calldata, and forwards registrations to the index. Decoding from the
// mined bytes rather than the submitted arguments means the index
// reflects what the chain actually executed.
func (o *Orchestrator) reconcile(ctx context.Context, txHash common.Hash, blockNumber *big.Int) (bool, string) {
	tx, err := o.eth.TransactionByHash(ctx, txHash)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to fetch mined transaction for indexing",
			zap.String("tx_hash", txHash.Hex()),
			zap.Error(err),
		)
		return false, "transaction confirmed but could not be re-read for indexing"
	}

	switch call := o.decoder.Decode(tx.Data()).(type) {
	case domain.RegisterCall:
		return o.recordRegistration(ctx, txHash, blockNumber, call)
	case domain.TransferCall:
		return false, "ownership transfers are not indexed"
	default:
		logger.WarnCtx(ctx, "Mined transaction does not decode to a registry call",
			zap.String("tx_hash", txHash.Hex()),
		)
		return false, "transaction does not decode to a known registry call"
	}
}

func (o *Orchestrator) recordRegistration(ctx context.Context, txHash common.Hash, blockNumber *big.Int, call domain.RegisterCall) (bool, string) {
	timestamp := o.blockTime(ctx, blockNumber)

	err := o.ingest.CreateRecord(ctx, apiclient.CreateRecordRequest{
		TransactionHash: txHash.Hex(),
		BlockNumber:     blockNumber.String(),
		PropertyID:      call.PropertyID.Int64(),
		Location:        call.Location,
		Area:            call.Area.Int64(),
		Owner:           call.Owner.Hex(),
		Timestamp:       timestamp.Format(time.RFC3339),
	})
	switch {
	case err == nil:
		return true, ""
	case errors.Is(err, domain.ErrRecordAlreadyExists):
		// A previous attempt already landed this row
		return true, "record was already indexed"
	default:
		logger.ErrorCtx(ctx, errors.New("Failed to append confirmed registration to index"),
			zap.String("tx_hash", txHash.Hex()),
			zap.Error(err),
		)
		return false, fmt.Sprintf("transaction confirmed but indexing failed: %s", err)
	}
}

// blockTime returns the containing block's timestamp, falling back to
// wall time when the block cannot be fetched
func (o *Orchestrator) blockTime(ctx context.Context, blockNumber *big.Int) time.Time {
	block, err := o.eth.BlockByNumber(ctx, blockNumber)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to fetch block for timestamp",
			zap.String("block_number", blockNumber.String()),
			zap.Error(err),
		)
		return o.clock.Now().UTC()
	}
	return time.Unix(int64(block.Time()), 0).UTC()
}

func (o *Orchestrator) fail(err error) error {
	o.transition(StateFailed)
	return err
}

func (o *Orchestrator) transition(to State) {
	from := o.state
	o.state = to
	if o.cfg.OnTransition != nil {
		o.cfg.OnTransition(from, to)
	}
}
