package claude

import (
	"errors"
	"fmt"
)

var (
	ErrProjectRequired = errors.New("claude: project id is required")
	ErrStreamTruncated = errors.New("claude: stream ended before message_stop")
)

// APIError is a failure reported by the model API, either as a non-200 response or
// as an error event inside the stream (StatusCode is zero then).
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("claude: %s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("claude: API error %d (%s): %s", e.StatusCode, e.Type, e.Message)
}
