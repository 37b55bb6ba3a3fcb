package rest

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/landledger/registry-indexer/internal/store/schema"
)

var txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// maxLocationLength is the column width of property_records.location
const maxLocationLength = 255

// CreatePropertyRecordRequest is the ingest payload: a PropertyRecord
// minus the server-assigned created_at. Numeric fields are pointers so
// that absent and zero are distinguishable; zero is a legal value for
// both property_id and area.
type CreatePropertyRecordRequest struct {
	TransactionHash string `json:"transaction_hash"`
	BlockNumber     string `json:"block_number"`
	PropertyID      *int64 `json:"property_id"`
	Location        string `json:"location"`
	Area            *int64 `json:"area"`
	Owner           string `json:"owner"`
	Timestamp       string `json:"timestamp"`
}

// Validate checks the request and returns the normalized block
// timestamp. Decoded upstream payloads are already typed, but this is
// an open HTTP surface, so every field is checked here rather than
// trusting the caller.
func (r *CreatePropertyRecordRequest) Validate() (time.Time, error) {
	if r.TransactionHash == "" {
		return time.Time{}, fmt.Errorf("transaction_hash is required")
	}
	if !txHashPattern.MatchString(r.TransactionHash) {
		return time.Time{}, fmt.Errorf("transaction_hash must be a 0x-prefixed 32-byte hex string")
	}
	if r.BlockNumber == "" {
		return time.Time{}, fmt.Errorf("block_number is required")
	}
	if r.PropertyID == nil {
		return time.Time{}, fmt.Errorf("property_id is required")
	}
	if *r.PropertyID < 0 {
		return time.Time{}, fmt.Errorf("property_id must not be negative")
	}
	if r.Location == "" {
		return time.Time{}, fmt.Errorf("location is required")
	}
	if len(r.Location) > maxLocationLength {
		return time.Time{}, fmt.Errorf("location must not exceed %d characters", maxLocationLength)
	}
	if r.Area == nil {
		return time.Time{}, fmt.Errorf("area is required")
	}
	if *r.Area < 0 {
		return time.Time{}, fmt.Errorf("area must not be negative")
	}
	if r.Owner == "" {
		return time.Time{}, fmt.Errorf("owner is required")
	}
	if !common.IsHexAddress(r.Owner) {
		return time.Time{}, fmt.Errorf("owner must be a well-formed account address")
	}
	if r.Timestamp == "" {
		return time.Time{}, fmt.Errorf("timestamp is required")
	}

	// Offset descriptors (Z or +hh:mm) cannot be stored as-is for
	// point-in-time data; normalize to the equivalent UTC instant.
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp must be RFC 3339: %v", err)
	}

	return ts.UTC(), nil
}

// ToRecord converts a validated request into a store row
func (r *CreatePropertyRecordRequest) ToRecord(timestamp time.Time) *schema.PropertyRecord {
	return &schema.PropertyRecord{
		TransactionHash: r.TransactionHash,
		BlockNumber:     r.BlockNumber,
		PropertyID:      *r.PropertyID,
		Location:        r.Location,
		Area:            *r.Area,
		Owner:           r.Owner,
		Timestamp:       timestamp,
	}
}

// CreatePropertyRecordResponse confirms a successful ingest
type CreatePropertyRecordResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports API and store health
type HealthResponse struct {
	Status string `json:"status"`
}
