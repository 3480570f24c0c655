package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type restClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func newRestClient(baseURL, apiKey string, timeoutSeconds int) *restClient {
	return &restClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
	}
}

// request posts a JSON body and decodes the JSON response. Network failures
// and 5xx responses are transient, 4xx responses are permanent rejections.
func (rc *restClient) request(ctx context.Context, method, endpoint string, body interface{}, response interface{}) error {
	payload := new(bytes.Buffer)
	if body != nil {
		if err := json.NewEncoder(payload).Encode(body); err != nil {
			return permanentError("failed to encode request body: %v", err)
		}
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", rc.baseURL, endpoint), payload)
	if err != nil {
		return permanentError("failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if rc.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+rc.apiKey)
	}
	resp, err := rc.client.Do(httpReq)
	if err != nil {
		return transientError("gateway request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return transientError("gateway returned status %d for %s", resp.StatusCode, httpReq.URL)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return permanentError("gateway rejected the request with status %d for %s", resp.StatusCode, httpReq.URL)
	}
	if response == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return transientError("failed to decode gateway response: %v", err)
	}
	return nil
}
