// Package scoring implements the HTTP client for the remote risk-scoring
// service. It covers the two remote calls the client core makes (submit a
// prediction, fetch history) plus the service health probe.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/domain/model"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/domain/record"
)

// defaultTimeout bounds each round trip. The session layer deliberately
// enforces no timeout of its own; this is the transport-level bound.
const defaultTimeout = 30 * time.Second

// Client talks to the scoring service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// predictRequest is the flattened wire payload: the 13 record fields plus
// the anonymous identity in a single object.
type predictRequest struct {
	record.FeatureRecord
	UserID string `json:"user_id"`
}

// historyResponse mirrors the history endpoint's envelope.
type historyResponse struct {
	Predictions []model.HistoryEntry `json:"predictions"`
	Count       int                  `json:"count"`
}

// errorBody is the service's structured error shape.
type errorBody struct {
	Error string `json:"error"`
}

// Predict submits one feature record for scoring. The record is passed by
// value, so the submission operates on a snapshot of the form state.
func (c *Client) Predict(ctx context.Context, rec record.FeatureRecord, userID string) (model.Prediction, error) {
	payload, err := json.Marshal(predictRequest{FeatureRecord: rec, UserID: userID})
	if err != nil {
		return model.Prediction{}, fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return model.Prediction{}, fmt.Errorf("create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Prediction{}, fmt.Errorf("predict request: %w", err)
	}
	body, err := readBody(resp)
	if err != nil {
		return model.Prediction{}, fmt.Errorf("read predict response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return model.Prediction{}, serviceError(resp.StatusCode, body)
	}

	var result model.Prediction
	if err := json.Unmarshal(body, &result); err != nil {
		return model.Prediction{}, fmt.Errorf("decode predict response: %w", err)
	}
	return result, nil
}

// History fetches the past predictions recorded for userID. Order is
// server-defined and preserved.
func (c *Client) History(ctx context.Context, userID string) ([]model.HistoryEntry, error) {
	endpoint := c.baseURL + "/history?user_id=" + url.QueryEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create history request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("history request: %w", err)
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read history response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, serviceError(resp.StatusCode, body)
	}

	var envelope historyResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode history response: %w", err)
	}
	return envelope.Predictions, nil
}

// Ping probes the service health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// readBody reads and closes the response body.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// serviceError extracts the structured error message when present.
func serviceError(status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return &ServiceError{StatusCode: status, Message: eb.Error}
	}
	return &ServiceError{StatusCode: status}
}
