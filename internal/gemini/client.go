package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
)

// Client submits built prompts to the remote analysis service. One Generate
// call is one attempt: the client never retries on its own, so retry policy
// (if any) stays with the caller.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

func NewClient(apiKey, model string, httpTimeout time.Duration) *Client {
	if httpTimeout <= 0 {
		httpTimeout = 60 * time.Second
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		httpClient: &http.Client{Timeout: httpTimeout},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      model,
	}
}

// NewClientWithBaseURL allows injecting a custom base URL (used in tests).
func NewClientWithBaseURL(apiKey, model string, httpTimeout time.Duration, baseURL string) *Client {
	c := NewClient(apiKey, model, httpTimeout)
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

// Generate posts one request and returns the raw candidate structure without
// interpreting it. A non-success status or a network failure yields a
// *ServiceError; an empty or unusable candidate list is not checked here and
// surfaces as a decode failure downstream.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if c.apiKey == "" {
		return nil, errors.New("api key is missing")
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serviceErrorFromBody(resp)
	}
	var out GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: "malformed service reply", Err: err}
	}
	return &out, nil
}

// serviceErrorFromBody extracts the remote error object when present,
// falling back to a status-only error.
func serviceErrorFromBody(resp *http.Response) *ServiceError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	svcErr := &ServiceError{StatusCode: resp.StatusCode}
	var raw map[string]any
	_ = json.Unmarshal(body, &raw)
	if v, ok := raw["error"].(map[string]any); ok {
		if msg, ok := v["message"].(string); ok {
			svcErr.Message = msg
		}
		if st, ok := v["status"].(string); ok {
			svcErr.Status = st
		}
	}
	return svcErr
}
