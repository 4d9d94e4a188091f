package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// submitPath is the platform's export-job submission endpoint.
	submitPath = "/v1/exports"

	defaultTimeout = 60 * time.Second
)

// APIError is a non-2xx response from the platform. It is opaque to the
// orchestrator: retry policy belongs to the platform's own job system or
// to an operator re-running the orchestrator.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform returned %d: %s", e.Status, e.Message)
}

// Client talks to the platform's export-job API over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a platform client with system proxy support.
func NewClient(baseURL, apiKey string) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: transport,
		},
	}
}

// submitResponse is the platform's reply to an accepted job.
type submitResponse struct {
	JobID string `json:"jobId"`
}

// errorResponse is the platform's reply body on failure.
type errorResponse struct {
	Message string `json:"message"`
}

// SubmitExport enqueues one export job and returns the platform's job id.
// The job runs asynchronously on the platform; this call only covers the
// submission itself.
func (c *Client) SubmitExport(ctx context.Context, req ExportRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal export request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to submit export job: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read platform response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return "", &APIError{Status: resp.StatusCode, Message: msg}
	}

	var out submitResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("failed to parse platform response: %w", err)
	}
	if out.JobID == "" {
		return "", fmt.Errorf("platform accepted job but returned no job id")
	}
	return out.JobID, nil
}
