package churn

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

// DefaultTimeout bounds a single prediction call.
const DefaultTimeout = 30 * time.Second

// Prediction is the inference service's answer for one record.
type Prediction struct {
	ChurnPrediction int     `json:"churn_prediction"`
	Probability     float64 `json:"probability"`
	Engine          string  `json:"engine"`
}

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	Data FeatureRecord `json:"data"`
}

// APIError is returned when the service answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("prediction service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("prediction service returned %d: %s", e.StatusCode, e.Detail)
}

// Client calls the inference service. It performs exactly one HTTP call
// per Predict and never retries.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the service at baseURL. A non-positive
// timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the service base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict posts the record as {"data": record} and decodes the result.
func (c *Client) Predict(ctx context.Context, record FeatureRecord) (*Prediction, error) {
	body, err := json.Marshal(PredictRequest{Data: record})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var detail struct {
			Detail json.RawMessage `json:"detail"`
		}
		if err := json.Unmarshal(respBody, &detail); err == nil && len(detail.Detail) > 0 {
			var s string
			if json.Unmarshal(detail.Detail, &s) == nil {
				apiErr.Detail = s
			} else {
				apiErr.Detail = string(detail.Detail)
			}
		} else {
			apiErr.Detail = strings.TrimSpace(string(respBody))
		}
		return nil, apiErr
	}

	var prediction Prediction
	if err := json.Unmarshal(respBody, &prediction); err != nil {
		return nil, fmt.Errorf("failed to decode prediction: %w", err)
	}
	return &prediction, nil
}

// ConnectionError formats any client failure the way it is shown to users.
func ConnectionError(err error) string {
	return "API Connection Error: " + err.Error()
}
