// Package contract holds the land registry contract's function
// signature table and the calldata codec built on it. The ABI below is
// the complete write surface of the contract; it ships with the binary
// because no schema is published separately from the contract.
package contract

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// MethodRegisterProperty is registerProperty(uint256,string,uint256,address)
	MethodRegisterProperty = "registerProperty"
	// MethodTransferProperty is transferProperty(uint256,address)
	MethodTransferProperty = "transferProperty"
)

const registryABIJSON = `[
	{"name":"registerProperty","type":"function","stateMutability":"nonpayable","inputs":[{"name":"propertyId","type":"uint256"},{"name":"location","type":"string"},{"name":"area","type":"uint256"},{"name":"owner","type":"address"}],"outputs":[]},
	{"name":"transferProperty","type":"function","stateMutability":"nonpayable","inputs":[{"name":"propertyId","type":"uint256"},{"name":"newOwner","type":"address"}],"outputs":[]}
]`

var registryABI = mustParseABI(registryABIJSON)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("contract: invalid registry ABI: " + err.Error())
	}
	return parsed
}

// ABI returns the parsed registry contract interface
func ABI() abi.ABI {
	return registryABI
}

// PackRegisterProperty encodes a registerProperty call into calldata
func PackRegisterProperty(propertyID *big.Int, location string, area *big.Int, owner common.Address) ([]byte, error) {
	return registryABI.Pack(MethodRegisterProperty, propertyID, location, area, owner)
}

// PackTransferProperty encodes a transferProperty call into calldata
func PackTransferProperty(propertyID *big.Int, newOwner common.Address) ([]byte, error) {
	return registryABI.Pack(MethodTransferProperty, propertyID, newOwner)
}
