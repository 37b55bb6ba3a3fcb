package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landledger/registry-indexer/internal/domain"
	"github.com/landledger/registry-indexer/internal/ethereum"
	"github.com/landledger/registry-indexer/internal/logger"
	"github.com/landledger/registry-indexer/internal/mocks"
	"github.com/landledger/registry-indexer/internal/wallet"
)

// Hardhat dev account 0, a well-known throwaway key
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var contractAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestSubmitCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockEthClient(ctrl)

	w, err := wallet.NewFromHexKey(testKey)
	require.NoError(t, err)

	calldata := []byte{0xde, 0xad, 0xbe, 0xef}

	node.EXPECT().PendingNonceAt(gomock.Any(), w.Address()).Return(uint64(7), nil)
	node.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(2_000_000_000), nil)
	node.EXPECT().
		EstimateGas(gomock.Any(), goethereum.CallMsg{From: w.Address(), To: &contractAddress, Data: calldata}).
		Return(uint64(90000), nil)

	var sent *types.Transaction
	node.EXPECT().
		SendTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		})

	client := ethereum.NewClient(domain.ChainEthereumSepolia, node)

	hash, err := client.SubmitCall(context.Background(), w, contractAddress, calldata)
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, sent.Hash(), hash)
	assert.Equal(t, uint64(7), sent.Nonce())
	assert.Equal(t, contractAddress, *sent.To())
	assert.Equal(t, calldata, sent.Data())
	assert.Equal(t, uint64(90000), sent.Gas())

	// The transaction must carry the wallet's EIP-155 signature for the
	// configured chain
	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(11155111)), sent)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), sender)
}

func TestSubmitCallNonceFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockEthClient(ctrl)

	w, err := wallet.NewFromHexKey(testKey)
	require.NoError(t, err)

	node.EXPECT().PendingNonceAt(gomock.Any(), w.Address()).Return(uint64(0), errors.New("node unreachable"))

	client := ethereum.NewClient(domain.ChainEthereumSepolia, node)

	_, err = client.SubmitCall(context.Background(), w, contractAddress, []byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get nonce")
}

func TestWaitMined(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockEthClient(ctrl)

	txHash := common.HexToHash("0xabc0000000000000000000000000000000000000000000000000000000000001")
	expected := &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(42)}

	node.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(expected, nil)

	client := ethereum.NewClient(domain.ChainEthereumSepolia, node)

	receipt, err := client.WaitMined(context.Background(), txHash)
	require.NoError(t, err)
	assert.Equal(t, expected, receipt)
}

func TestWaitMinedReceiptError(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockEthClient(ctrl)

	txHash := common.HexToHash("0xabc0000000000000000000000000000000000000000000000000000000000001")

	// A non-NotFound error must stop the polling immediately
	node.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(nil, errors.New("rpc failure"))

	client := ethereum.NewClient(domain.ChainEthereumSepolia, node)

	_, err := client.WaitMined(context.Background(), txHash)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTransactionNotMined)
	assert.Contains(t, err.Error(), "rpc failure")
}

func TestWaitMinedContextExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockEthClient(ctrl)

	txHash := common.HexToHash("0xabc0000000000000000000000000000000000000000000000000000000000001")

	node.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(nil, goethereum.NotFound).AnyTimes()

	client := ethereum.NewClient(domain.ChainEthereumSepolia, node)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.WaitMined(ctx, txHash)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionNotMined)
}

func TestChainID(t *testing.T) {
	ctrl := gomock.NewController(t)
	node := mocks.NewMockEthClient(ctrl)

	client := ethereum.NewClient(domain.ChainEthereumMainnet, node)
	assert.Equal(t, domain.ChainEthereumMainnet, client.ChainID())
}
