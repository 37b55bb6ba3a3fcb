package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/landledger/registry-indexer/internal/domain"
	"github.com/landledger/registry-indexer/internal/store"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// CreatePropertyRecord appends one property record to the off-chain index
	// POST /api/v1/properties
	CreatePropertyRecord(c *gin.Context)

	// ListPropertyRecords returns all records, newest first. The response
	// is unpaginated and therefore unbounded; bounding it is a known
	// scalability gap, not an implicit truncation.
	// GET /api/v1/properties
	ListPropertyRecords(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store store.Store
}

// NewHandler creates a new REST API handler over the given store
func NewHandler(s store.Store) Handler {
	return &handler{store: s}
}

// CreatePropertyRecord appends one property record. Calling it again
// with an identical payload is safe: the duplicate is reported as 409
// already_recorded, so a client retrying after a timeout can tell
// "landed already" from genuine failure.
func (h *handler) CreatePropertyRecord(c *gin.Context) {
	var req CreatePropertyRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	timestamp, err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	record := req.ToRecord(timestamp)
	if err := h.store.InsertPropertyRecord(c.Request.Context(), record); err != nil {
		if errors.Is(err, domain.ErrRecordAlreadyExists) {
			respondAlreadyRecorded(c, req.TransactionHash)
			return
		}
		respondInternalError(c, err, "Failed to create property record",
			zap.String("transaction_hash", req.TransactionHash))
		return
	}

	c.JSON(http.StatusCreated, CreatePropertyRecordResponse{
		Message: "Property record created successfully",
	})
}

// ListPropertyRecords returns the full ordered sequence of records
func (h *handler) ListPropertyRecords(c *gin.Context) {
	records, err := h.store.ListPropertyRecords(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list property records")
		return
	}

	c.JSON(http.StatusOK, records)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		respondInternalError(c, err, "Store unavailable")
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
