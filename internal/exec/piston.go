// Package exec talks to the external code-execution service (piston API).
package exec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkravets/codeshare-server/internal/core"
)

// maxResponseBytes caps how much of an execution response is read.
const maxResponseBytes = 1 << 20

// Client submits buffers to a piston-compatible execute endpoint.
// It implements core.Runner.
type Client struct {
	url   string
	httpc *http.Client
	log   *zerolog.Logger
}

// New builds a client for the given execute URL. timeout bounds the whole
// round trip; expiry surfaces as an ordinary error.
func New(url string, timeout time.Duration, logger *zerolog.Logger) *Client {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Client{
		url:   url,
		httpc: &http.Client{Timeout: timeout},
		log:   logger,
	}
}

type executeRequest struct {
	Language string        `json:"language"`
	Version  string        `json:"version"`
	Files    []executeFile `json:"files"`
}

type executeFile struct {
	Content string `json:"content"`
}

// Run posts the buffer to the execution service and returns the raw
// response payload, to be forwarded to the room unmodified.
func (c *Client) Run(ctx context.Context, req core.RunRequest) (json.RawMessage, error) {
	body, err := json.Marshal(executeRequest{
		Language: req.Language,
		Version:  req.Version,
		Files:    []executeFile{{Content: req.Code}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal execute request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build execute request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call execution service: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read execution response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug().Int("status", resp.StatusCode).Str("language", req.Language).Msg("execution service error response")
		return nil, fmt.Errorf("execution service returned status %d", resp.StatusCode)
	}

	if !json.Valid(payload) {
		return nil, fmt.Errorf("execution service returned invalid json")
	}

	return json.RawMessage(payload), nil
}
