package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landledger/registry-indexer/internal/domain"
)

func testRecord() CreateRecordRequest {
	return CreateRecordRequest{
		TransactionHash: "0xabc0000000000000000000000000000000000000000000000000000000000001",
		BlockNumber:     "12345",
		PropertyID:      42,
		Location:        "12 Harbor Lane",
		Area:            850,
		Owner:           "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Timestamp:       "2024-01-01T00:00:00Z",
	}
}

func TestCreateRecord(t *testing.T) {
	var received CreateRecordRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/properties", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "Property record created successfully"})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	err := client.CreateRecord(context.Background(), testRecord())
	require.NoError(t, err)
	assert.Equal(t, testRecord(), received)
}

func TestCreateRecordConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"code":    "already_recorded",
				"message": "a record for this transaction already exists",
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	err := client.CreateRecord(context.Background(), testRecord())
	assert.ErrorIs(t, err, domain.ErrRecordAlreadyExists)
}

func TestCreateRecordRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"code": "internal_error", "message": "internal server error"},
			})
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "Property record created successfully"})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	err := client.CreateRecord(context.Background(), testRecord())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCreateRecordValidationNotRetried(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"code":    "validation_failed",
				"message": "invalid property record",
				"details": "owner must be a hex address",
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	err := client.CreateRecord(context.Background(), testRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid property record")
	assert.Contains(t, err.Error(), "owner must be a hex address")
	assert.Equal(t, int32(1), calls.Load())
}

func TestCreateRecordContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.CreateRecord(ctx, testRecord())
	require.Error(t, err)
}

func TestListRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/properties", r.URL.Path)

		json.NewEncoder(w).Encode([]PropertyRecord{
			{
				TransactionHash: "0xabc0000000000000000000000000000000000000000000000000000000000002",
				BlockNumber:     "12346",
				PropertyID:      43,
				Location:        "9 Mill Road",
				Area:            1200,
				Owner:           "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
				Timestamp:       time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			},
			{
				TransactionHash: "0xabc0000000000000000000000000000000000000000000000000000000000001",
				BlockNumber:     "12345",
				PropertyID:      42,
				Location:        "12 Harbor Lane",
				Area:            850,
				Owner:           "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
				Timestamp:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	records, err := client.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(43), records[0].PropertyID)
	assert.Equal(t, int64(42), records[1].PropertyID)
}

func TestListRecordsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	records, err := client.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	assert.NoError(t, client.Health(context.Background()))
}

func TestHealthDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "internal_error", "message": "database unreachable"},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)

	err := client.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unreachable")
}

func TestHealthServerGone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL, time.Second)

	err := client.Health(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrRecordAlreadyExists))
}
