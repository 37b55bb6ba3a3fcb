package store

import (
	"context"

	"github.com/landledger/registry-indexer/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// InsertPropertyRecord appends one property record. It returns
	// domain.ErrRecordAlreadyExists when a record with the same
	// transaction hash is already indexed; the existing row is left
	// untouched.
	InsertPropertyRecord(ctx context.Context, record *schema.PropertyRecord) error
	// GetPropertyRecordByTxHash retrieves a record by its transaction hash,
	// or nil when no such record exists
	GetPropertyRecordByTxHash(ctx context.Context, txHash string) (*schema.PropertyRecord, error)
	// ListPropertyRecords returns all records, newest first
	ListPropertyRecords(ctx context.Context) ([]schema.PropertyRecord, error)
	// Ping verifies the database connection
	Ping(ctx context.Context) error
}
