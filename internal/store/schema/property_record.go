package schema

import (
	"time"
)

// PropertyRecord represents the property_records table - one row per
// observed land registry transaction, keyed by the transaction hash.
// Rows are immutable once created; there is no update or delete path.
type PropertyRecord struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// TransactionHash is the 0x-prefixed hash of the mined transaction.
	// The unique index is the sole concurrency-correctness mechanism for
	// racing ingest calls: the second insert for the same hash fails at
	// the storage layer.
	TransactionHash string `gorm:"column:transaction_hash;not null;uniqueIndex;type:varchar(66)" json:"transaction_hash"`
	// BlockNumber is the decimal block number as a string
	BlockNumber string `gorm:"column:block_number;not null;type:varchar(20)" json:"block_number"`
	// PropertyID is the on-chain property identifier
	PropertyID int64 `gorm:"column:property_id;not null;type:bigint" json:"property_id"`
	// Location is the human-readable property location
	Location string `gorm:"column:location;not null;type:varchar(255)" json:"location"`
	// Area is the property area in square feet
	Area int64 `gorm:"column:area;not null;type:bigint" json:"area"`
	// Owner is the 0x-prefixed account address of the property owner
	Owner string `gorm:"column:owner;not null;type:varchar(42)" json:"owner"`
	// Timestamp is the blockchain timestamp of the containing block
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz" json:"timestamp"`
	// CreatedAt is assigned by the server on insert and never changes
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();index;type:timestamptz" json:"created_at"`
}

// TableName specifies the table name for the PropertyRecord model
func (PropertyRecord) TableName() string {
	return "property_records"
}
