package claude

import "context"

// IClaude defines the interface for Claude on Vertex AI.
// Implementations are safe for concurrent use.
type IClaude interface {
	// StreamMessage starts a streaming generation. The caller must Close the returned Stream.
	StreamMessage(ctx context.Context, req *Request) (*Stream, error)

	// Model returns the model being used
	Model() string
}

// New creates a new Claude client with the given configuration
func New(cfg Config) (IClaude, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newClaudeImpl(cfg), nil
}
