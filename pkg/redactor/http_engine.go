package redactor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pii-redaction-be/pkg/review"
)

// HTTPEngine talks to the standalone redaction worker over its REST
// apply endpoint.
type HTTPEngine struct {
	endpointURL string
	client      *http.Client
}

func NewHTTPEngine(endpointURL string, timeout time.Duration) *HTTPEngine {
	return &HTTPEngine{
		endpointURL: endpointURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (e *HTTPEngine) Apply(ctx context.Context, applyReq *review.ApplyRequest) (*Result, error) {
	jsonData, err := json.Marshal(applyReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal apply request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpointURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apply request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("redaction engine error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result Result
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("failed to decode engine response: %w", err)
	}

	return &result, nil
}
