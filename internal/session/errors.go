package session

import "errors"

var (
	ErrNotFound       = errors.New("session not found")
	ErrTurnInProgress = errors.New("another request is already being processed for this session")
)
