package claude

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds Claude client configuration
type Config struct {
	ProjectID string
	Region    string
	Model     string
	// BaseURL overrides the regional Vertex endpoint, e.g. for tests
	BaseURL string
	Timeout time.Duration
	// HTTPClient must attach Google credentials; see pkg/vertexauth
	HTTPClient *http.Client
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return ErrProjectRequired
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1", c.Region)
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	return nil
}

// claudeImpl is the internal implementation of IClaude
type claudeImpl struct {
	endpoint   string
	model      string
	timeout    time.Duration
	httpClient *http.Client
}

// Request represents a streaming generation request
type Request struct {
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Message is one conversation turn in the Anthropic messages format
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is a text or image block of a message
type ContentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *ImageSource `json:"source,omitempty"`
}

// ImageSource carries inline image bytes
type ImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// TextBlock builds a text content block
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// ImageBlock builds a base64 image content block
func ImageBlock(mediaType, data string) ContentBlock {
	return ContentBlock{
		Type:   "image",
		Source: &ImageSource{Type: "base64", MediaType: mediaType, Data: data},
	}
}

// Usage tracks token consumption reported by the stream
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Wire types for the Vertex rawPredict API
type apiRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	Messages         []Message `json:"messages"`
	System           string    `json:"system,omitempty"`
	MaxTokens        int       `json:"max_tokens"`
	Temperature      float64   `json:"temperature"`
	Stream           bool      `json:"stream"`
}

type apiEvent struct {
	Type    string      `json:"type"`
	Message *apiMessage `json:"message,omitempty"`
	Delta   *apiDelta   `json:"delta,omitempty"`
	Usage   *Usage      `json:"usage,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiMessage struct {
	ID    string `json:"id"`
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

type apiDelta struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	StopReason string `json:"stop_reason"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// googleError is the error envelope returned by the Vertex front end itself
type googleError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
