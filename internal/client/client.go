// Package client talks to the KS solver backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SimulationPath = "/simulation"
	SubmitPath     = "/simulate"

	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 256 << 20
)

var (
	ErrUnexpectedStatus = errors.New("client: unexpected status")
	ErrEmptyRunID       = errors.New("client: backend returned no run id")
)

// Result is one simulation snapshot as delivered by the backend. Payload is
// passed through untouched; its schema belongs to the renderer.
type Result struct {
	Payload   json.RawMessage
	RequestID string
	FetchedAt time.Time
}

// Run identifies a backend run started by Submit.
type Run struct {
	ID        string `json:"run_id"`
	Status    string `json:"status,omitempty"`
	RequestID string `json:"-"`
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a Client for endpoint. A zero timeout leaves requests unbounded.
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Endpoint() string { return c.endpoint }

// Fetch requests the latest simulation result. A reachable backend with
// nothing to show yields (nil, nil); any failure to complete the exchange
// is returned as an error.
func (c *Client) Fetch(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+SimulationPath, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	id := stampRequest(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch simulation: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent, http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read simulation body: %w", err)
	}
	if isAbsent(body) {
		return nil, nil
	}

	return &Result{
		Payload:   json.RawMessage(body),
		RequestID: id,
		FetchedAt: time.Now(),
	}, nil
}

// Submit asks the backend to start a new run with params.
func (c *Client) Submit(ctx context.Context, params any) (*Run, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+SubmitPath, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	id := stampRequest(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit run: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	var run Run
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&run); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	if run.ID == "" {
		return nil, ErrEmptyRunID
	}
	run.RequestID = id
	return &run, nil
}

func stampRequest(req *http.Request) string {
	id := uuid.NewString()
	req.Header.Set(requestIDHeader, id)
	return id
}

func isAbsent(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}"))
}
