package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet || chain == ChainEthereumSepolia
}

// ID returns the numeric chain ID for the chain, or nil if unknown.
func (c Chain) ID() *big.Int {
	switch c {
	case ChainEthereumMainnet:
		return big.NewInt(1)
	case ChainEthereumSepolia:
		return big.NewInt(11155111)
	}
	return nil
}

// DecodedCall is the result of decoding the calldata of a mined land
// registry transaction. It is a closed set of variants so downstream
// code can switch exhaustively instead of probing optional fields:
// RegisterCall, TransferCall, or UnknownCall.
type DecodedCall interface {
	isDecodedCall()
}

// RegisterCall is a decoded registerProperty invocation.
type RegisterCall struct {
	PropertyID *big.Int
	Location   string
	Area       *big.Int
	Owner      common.Address
}

// TransferCall is a decoded transferProperty invocation.
type TransferCall struct {
	PropertyID *big.Int
	NewOwner   common.Address
}

// UnknownCall is returned for calldata that does not match any known
// registry function, or that matches a selector but fails to unpack.
// It is a normal, expected outcome for transactions from other contract
// methods, not an error.
type UnknownCall struct {
	// Selector holds the leading 4 bytes of the calldata when present.
	Selector []byte
}

func (RegisterCall) isDecodedCall() {}
func (TransferCall) isDecodedCall() {}
func (UnknownCall) isDecodedCall()  {}
