package domain

import "errors"

var (
	// ErrRecordAlreadyExists is returned when inserting a property record
	// whose transaction hash is already indexed
	ErrRecordAlreadyExists = errors.New("property record already exists")

	// ErrRecordNotFound is returned when a property record is not found
	ErrRecordNotFound = errors.New("property record not found")

	// ErrNoWallet is returned when no signing key is configured
	ErrNoWallet = errors.New("no wallet configured")

	// ErrTransactionNotMined is returned when a transaction is not mined
	// within the configured confirmation window
	ErrTransactionNotMined = errors.New("transaction not mined within confirmation window")
)
