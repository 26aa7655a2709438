package claude

import "time"

const (
	// DefaultModel is the Claude model published on Vertex AI
	DefaultModel = "claude-3-5-sonnet@20240620"

	// DefaultRegion is the Vertex AI region serving the Anthropic publisher
	DefaultRegion = "us-east5"

	// AnthropicVersion is the API version Vertex expects in the request body
	AnthropicVersion = "vertex-2023-10-16"

	// DefaultMaxTokens is the default completion budget
	DefaultMaxTokens = 8192

	// DefaultTemperature is the default sampling temperature
	DefaultTemperature = 0.7

	// DefaultTimeout bounds a whole streaming call, including reading the body
	DefaultTimeout = 5 * time.Minute

	// StopReasonMaxTokens is reported when generation was cut by the token budget
	StopReasonMaxTokens = "max_tokens"
)

const (
	eventMessageStart      = "message_start"
	eventContentBlockStart = "content_block_start"
	eventContentBlockDelta = "content_block_delta"
	eventContentBlockStop  = "content_block_stop"
	eventMessageDelta      = "message_delta"
	eventMessageStop       = "message_stop"
	eventPing              = "ping"
	eventError             = "error"

	deltaText = "text_delta"
)
