package http

import (
	"errors"
	"net/http"

	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/pkg/response"
)

var errInternal = response.NewHTTPError(http.StatusInternalServerError, response.DefaultErrorMessage)

// mapError translates use-case errors into HTTP errors.
func (h *handler) mapError(err error) error {
	var modelErr *conversation.ModelError
	switch {
	case errors.Is(err, conversation.ErrEmptyPrompt):
		return response.NewHTTPError(http.StatusBadRequest, "Please enter a message before sending.")
	case errors.Is(err, conversation.ErrTooManyFiles):
		return response.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, conversation.ErrTurnInProgress):
		return response.NewHTTPError(http.StatusConflict, "A response is already being generated for this conversation.")
	case errors.Is(err, conversation.ErrNothingToSend):
		return response.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, conversation.ErrContinuationUnavailable):
		return response.NewHTTPError(http.StatusConflict, err.Error())
	case errors.As(err, &modelErr):
		return response.NewHTTPError(http.StatusBadGateway, modelErr.Error())
	default:
		return errInternal
	}
}

// errorKind labels an error event on an already started stream.
func errorKind(err error) string {
	var modelErr *conversation.ModelError
	if errors.As(err, &modelErr) {
		return string(modelErr.Kind)
	}
	return "internal"
}
