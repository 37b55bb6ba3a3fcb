package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/landledger/registry-indexer/internal/domain"
)

// selectorLength is the length of the leading function selector: the
// first 4 bytes of the keccak256 hash of the canonical signature string
const selectorLength = 4

// Decoder recovers the logical registry call from the raw calldata of a
// mined transaction.
type Decoder struct{}

// NewDecoder creates a decoder over the registry's signature table
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode matches the leading selector against the known registry
// functions and unpacks the remaining bytes positionally into typed
// arguments. Calldata that matches no known function, or that matches a
// selector but is malformed, decodes to UnknownCall. Undecodable input
// is a normal outcome (other contract methods, plain transfers), never
// an error.
func (d *Decoder) Decode(data []byte) domain.DecodedCall {
	if len(data) < selectorLength {
		return domain.UnknownCall{}
	}

	selector := data[:selectorLength]
	method, err := registryABI.MethodById(selector)
	if err != nil {
		return domain.UnknownCall{Selector: selector}
	}

	args, err := method.Inputs.Unpack(data[selectorLength:])
	if err != nil {
		return domain.UnknownCall{Selector: selector}
	}

	switch method.Name {
	case MethodRegisterProperty:
		return decodeRegister(args, selector)
	case MethodTransferProperty:
		return decodeTransfer(args, selector)
	}

	return domain.UnknownCall{Selector: selector}
}

func decodeRegister(args []interface{}, selector []byte) domain.DecodedCall {
	if len(args) != 4 {
		return domain.UnknownCall{Selector: selector}
	}

	propertyID, ok1 := args[0].(*big.Int)
	location, ok2 := args[1].(string)
	area, ok3 := args[2].(*big.Int)
	owner, ok4 := args[3].(common.Address)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return domain.UnknownCall{Selector: selector}
	}

	return domain.RegisterCall{
		PropertyID: propertyID,
		Location:   location,
		Area:       area,
		Owner:      owner,
	}
}

func decodeTransfer(args []interface{}, selector []byte) domain.DecodedCall {
	if len(args) != 2 {
		return domain.UnknownCall{Selector: selector}
	}

	propertyID, ok1 := args[0].(*big.Int)
	newOwner, ok2 := args[1].(common.Address)
	if !ok1 || !ok2 {
		return domain.UnknownCall{Selector: selector}
	}

	return domain.TransferCall{
		PropertyID: propertyID,
		NewOwner:   newOwner,
	}
}
