package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 64 * 1024

// newClaudeImpl creates a new Claude implementation
func newClaudeImpl(cfg Config) *claudeImpl {
	return &claudeImpl{
		endpoint: fmt.Sprintf("%s/projects/%s/locations/%s/publishers/anthropic/models/%s:streamRawPredict",
			strings.TrimRight(cfg.BaseURL, "/"), cfg.ProjectID, cfg.Region, cfg.Model),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		httpClient: cfg.HTTPClient,
	}
}

// StreamMessage sends the request and returns once response headers arrive.
// The body is consumed lazily through the returned Stream.
func (c *claudeImpl) StreamMessage(ctx context.Context, req *Request) (*Stream, error) {
	body, err := json.Marshal(c.transformRequest(req))
	if err != nil {
		return nil, fmt.Errorf("claude: failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("claude: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("claude: API call failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer cancel()
		defer resp.Body.Close()
		return nil, parseAPIError(resp)
	}

	return newStream(ctx, cancel, resp.Body), nil
}

// Model returns the model being used
func (c *claudeImpl) Model() string {
	return c.model
}

func (c *claudeImpl) transformRequest(req *Request) *apiRequest {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	messages := req.Messages
	if messages == nil {
		messages = []Message{}
	}

	return &apiRequest{
		AnthropicVersion: AnthropicVersion,
		Messages:         messages,
		System:           req.System,
		MaxTokens:        maxTokens,
		Temperature:      req.Temperature,
		Stream:           true,
	}
}

// parseAPIError turns a non-200 response into an *APIError. Vertex answers either with
// its own Google error envelope or with the Anthropic error body passed through.
func parseAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode, Type: http.StatusText(resp.StatusCode)}

	var g googleError
	if json.Unmarshal(raw, &g) == nil && g.Error.Status != "" {
		apiErr.Type = g.Error.Status
		apiErr.Message = g.Error.Message
		return apiErr
	}

	var gs []googleError
	if json.Unmarshal(raw, &gs) == nil && len(gs) > 0 && gs[0].Error.Message != "" {
		apiErr.Type = gs[0].Error.Status
		apiErr.Message = gs[0].Error.Message
		return apiErr
	}

	var ev apiEvent
	if json.Unmarshal(raw, &ev) == nil && ev.Error != nil {
		apiErr.Type = ev.Error.Type
		apiErr.Message = ev.Error.Message
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}
