package contract

import (
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landledger/registry-indexer/internal/domain"
)

func TestDecode_RegisterRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		propertyID *big.Int
		location   string
		area       *big.Int
		owner      common.Address
	}{
		{
			name:       "typical registration",
			propertyID: big.NewInt(42),
			location:   "12 Harbor Street, Springfield",
			area:       big.NewInt(2500),
			owner:      common.HexToAddress("0x1111111111111111111111111111111111111111"),
		},
		{
			name:       "empty location and zero property id",
			propertyID: big.NewInt(0),
			location:   "",
			area:       big.NewInt(1),
			owner:      common.HexToAddress("0x2222222222222222222222222222222222222222"),
		},
		{
			name:       "maximum int64 area",
			propertyID: big.NewInt(1),
			location:   "Plot X",
			area:       big.NewInt(math.MaxInt64),
			owner:      common.HexToAddress("0x3333333333333333333333333333333333333333"),
		},
		{
			name:       "location longer than one word",
			propertyID: big.NewInt(7),
			location:   "a location string that spans more than thirty-two bytes of calldata",
			area:       big.NewInt(800),
			owner:      common.HexToAddress("0x4444444444444444444444444444444444444444"),
		},
	}

	decoder := NewDecoder()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := PackRegisterProperty(tt.propertyID, tt.location, tt.area, tt.owner)
			require.NoError(t, err)

			call := decoder.Decode(data)
			register, ok := call.(domain.RegisterCall)
			require.True(t, ok, "expected RegisterCall, got %T", call)

			assert.Zero(t, tt.propertyID.Cmp(register.PropertyID))
			assert.Equal(t, tt.location, register.Location)
			assert.Zero(t, tt.area.Cmp(register.Area))
			assert.Equal(t, tt.owner, register.Owner)
		})
	}
}

func TestDecode_TransferRoundTrip(t *testing.T) {
	decoder := NewDecoder()

	propertyID := big.NewInt(99)
	newOwner := common.HexToAddress("0x5555555555555555555555555555555555555555")

	data, err := PackTransferProperty(propertyID, newOwner)
	require.NoError(t, err)

	call := decoder.Decode(data)
	transfer, ok := call.(domain.TransferCall)
	require.True(t, ok, "expected TransferCall, got %T", call)

	assert.Zero(t, propertyID.Cmp(transfer.PropertyID))
	assert.Equal(t, newOwner, transfer.NewOwner)
}

func TestDecode_UnknownSelector(t *testing.T) {
	decoder := NewDecoder()

	// An ERC20 transfer(address,uint256) call: valid ABI encoding, but
	// not a registry function.
	selector := crypto.Keccak256([]byte("transfer(address,uint256)"))[:4]
	data := append([]byte{}, selector...)
	data = append(data, make([]byte, 64)...)

	call := decoder.Decode(data)
	unknown, ok := call.(domain.UnknownCall)
	require.True(t, ok, "expected UnknownCall, got %T", call)
	assert.Equal(t, selector, unknown.Selector)
}

func TestDecode_MalformedInput(t *testing.T) {
	decoder := NewDecoder()

	data, err := PackRegisterProperty(big.NewInt(1), "Plot A", big.NewInt(500),
		common.HexToAddress("0x1111111111111111111111111111111111111111"))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil calldata", data: nil},
		{name: "empty calldata", data: []byte{}},
		{name: "selector only prefix", data: data[:3]},
		{name: "truncated argument words", data: data[:len(data)-17]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := decoder.Decode(tt.data)
			_, ok := call.(domain.UnknownCall)
			assert.True(t, ok, "expected UnknownCall, got %T", call)
		})
	}
}

func TestDecode_NeverPanics(t *testing.T) {
	decoder := NewDecoder()

	// Matching selector followed by garbage must decode to UnknownCall.
	data, err := PackTransferProperty(big.NewInt(1),
		common.HexToAddress("0x1111111111111111111111111111111111111111"))
	require.NoError(t, err)

	garbage := append([]byte{}, data[:4]...)
	garbage = append(garbage, 0xde, 0xad, 0xbe, 0xef)

	call := decoder.Decode(garbage)
	_, ok := call.(domain.UnknownCall)
	assert.True(t, ok, "expected UnknownCall, got %T", call)
}
