// Package apiclient is the HTTP client for the registry indexer API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/landledger/registry-indexer/internal/domain"
)

// CreateRecordRequest is the ingest payload for one decoded transaction
type CreateRecordRequest struct {
	TransactionHash string `json:"transaction_hash"`
	BlockNumber     string `json:"block_number"`
	PropertyID      int64  `json:"property_id"`
	Location        string `json:"location"`
	Area            int64  `json:"area"`
	Owner           string `json:"owner"`
	Timestamp       string `json:"timestamp"`
}

// PropertyRecord is one row of the off-chain index as served by the API
type PropertyRecord struct {
	TransactionHash string    `json:"transaction_hash"`
	BlockNumber     string    `json:"block_number"`
	PropertyID      int64     `json:"property_id"`
	Location        string    `json:"location"`
	Area            int64     `json:"area"`
	Owner           string    `json:"owner"`
	Timestamp       time.Time `json:"timestamp"`
	CreatedAt       time.Time `json:"created_at"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details,omitempty"`
	} `json:"error"`
}

// Client is the HTTP client for the indexer API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new indexer API client
func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateRecord appends one property record to the off-chain index.
// Transport errors are retried with backoff: the ingest endpoint is
// idempotent on the transaction hash, so resubmitting after a timeout
// is safe. A 409 from the server maps to domain.ErrRecordAlreadyExists,
// which callers treat as success of a retried submission.
func (c *Client) CreateRecord(ctx context.Context, record CreateRecordRequest) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/properties", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Network errors are retryable
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusCreated:
			return nil
		case resp.StatusCode == http.StatusConflict:
			return backoff.Permanent(fmt.Errorf("transaction %s: %w", record.TransactionHash, domain.ErrRecordAlreadyExists))
		case resp.StatusCode >= 500:
			// The first attempt may have landed; the retry will get a 409.
			return parseErrorResponse(resp)
		default:
			return backoff.Permanent(parseErrorResponse(resp))
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return err
	}
	return nil
}

// ListRecords returns the full index, newest first
func (c *Client) ListRecords(ctx context.Context) ([]PropertyRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/properties", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp)
	}

	var records []PropertyRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return records, nil
}

// Health checks the API liveness endpoint
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseErrorResponse(resp)
	}
	return nil
}

// parseErrorResponse extracts the API error envelope from a response
func parseErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	if envelope.Error.Details != "" {
		return fmt.Errorf("server returned %d: %s (%s)", resp.StatusCode, envelope.Error.Message, envelope.Error.Details)
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, envelope.Error.Message)
}
