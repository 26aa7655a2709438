package conversation

import (
	"errors"
	"fmt"

	"claude-vertex-chat/internal/session"
)

// Domain-specific errors for the conversation package.
var (
	ErrEmptyPrompt             = errors.New("message text is empty")
	ErrNothingToSend           = errors.New("no submitted message is waiting to be sent")
	ErrContinuationUnavailable = errors.New("there is no truncated response to continue")
	ErrTooManyFiles            = errors.New("too many files attached")
	ErrTurnInProgress          = session.ErrTurnInProgress
)

// ModelErrorKind separates failures reported by the model API from everything else.
type ModelErrorKind string

const (
	ModelErrorAPI        ModelErrorKind = "api"
	ModelErrorUnexpected ModelErrorKind = "unexpected"
)

// ModelError is a failed model call. Its message is safe to show to the user.
type ModelError struct {
	Kind ModelErrorKind
	Err  error
}

func (e *ModelError) Error() string {
	if e.Kind == ModelErrorAPI {
		return fmt.Sprintf("An error occurred while communicating with Claude: %v. Please try again later or contact support.", e.Err)
	}
	return fmt.Sprintf("An unexpected error occurred: %v. Please try again later.", e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}
