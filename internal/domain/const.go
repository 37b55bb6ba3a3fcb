package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// TX_HASH_LENGTH is the length of a 0x-prefixed transaction hash
	TX_HASH_LENGTH = 66

	// ADDRESS_LENGTH is the length of a 0x-prefixed account address
	ADDRESS_LENGTH = 42
)
