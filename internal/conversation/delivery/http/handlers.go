package http

import (
	"context"
	"errors"

	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/internal/middleware"
	"claude-vertex-chat/pkg/response"

	"github.com/gin-gonic/gin"
)

// History godoc
// @Summary     Get the conversation
// @Description Returns the messages, token-limit flag, system prompt, upload token and phase of the caller's session.
// @Tags        Chat
// @Produce     json
// @Param       X-Session-ID header string false "Session id; the chat_session cookie is used when absent"
// @Success     200 {object} historyResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat [GET]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.History(ctx, middleware.SessionID(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.History: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newHistoryResp(output))
}

// Clear godoc
// @Summary     Clear the conversation
// @Description Drops all messages, pending attachments and the system prompt, and rotates the upload token.
// @Tags        Chat
// @Produce     json
// @Param       X-Session-ID header string false "Session id"
// @Success     200 {object} historyResp
// @Failure     409 {object} response.Resp "A response is being generated"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat [DELETE]
func (h *handler) Clear(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Clear(ctx, middleware.SessionID(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.Clear: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newHistoryResp(output))
}

// SetSystemPrompt godoc
// @Summary     Set the system prompt
// @Description Replaces the system prompt used for later turns. An empty prompt removes it.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       X-Session-ID header string false "Session id"
// @Param       body body setSystemPromptReq true "System prompt"
// @Success     200 {object} historyResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/system-prompt [PUT]
func (h *handler) SetSystemPrompt(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSetSystemPromptReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.SetSystemPrompt(ctx, middleware.SessionID(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SetSystemPrompt: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newHistoryResp(output))
}

// Preview godoc
// @Summary     Preview attachments
// @Description Normalizes the uploaded files and returns a short preview of each, without changing the conversation.
// @Tags        Chat
// @Accept      multipart/form-data
// @Produce     json
// @Param       files formData file true "Files to preview"
// @Success     200 {object} previewResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     413 {object} response.Resp "Request body is too large"
// @Router      /api/v1/chat/attachments/preview [POST]
func (h *handler) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processPreviewReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Preview(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Preview: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newPreviewResp(output))
}

// Submit godoc
// @Summary     Submit a message
// @Description Processes the attachments and stores the message as pending without calling the model. Send it with POST /api/v1/chat/send.
// @Tags        Chat
// @Accept      multipart/form-data
// @Produce     json
// @Param       X-Session-ID header string false "Session id"
// @Param       text  formData string true  "Message text"
// @Param       files formData file   false "Attachments"
// @Success     200 {object} submitResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     409 {object} response.Resp "A response is being generated"
// @Router      /api/v1/chat/submit [POST]
func (h *handler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processMessageReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Submit(ctx, middleware.SessionID(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Submit: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSubmitResp(output))
}

// Send godoc
// @Summary     Send a message
// @Description Submits the message and streams the answer as Server-Sent Events: attachment_error per rejected file, partial with the cumulative text, then done or error.
// @Tags        Chat
// @Accept      multipart/form-data
// @Produce     text/event-stream
// @Param       X-Session-ID header string false "Session id"
// @Param       text  formData string true  "Message text"
// @Param       files formData file   false "Attachments"
// @Success     200 {object} doneEvent "final event of the stream"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     409 {object} response.Resp "A response is being generated"
// @Failure     502 {object} response.Resp "Model error"
// @Router      /api/v1/chat/messages [POST]
func (h *handler) Send(c *gin.Context) {
	req, err := h.processMessageReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	sid := middleware.SessionID(c)
	h.streamTurn(c, "uc.Send", func(ctx context.Context, obs conversation.TurnObserver) (conversation.TurnOutput, error) {
		return h.uc.Send(ctx, sid, req.toInput(), obs)
	})
}

// SendPending godoc
// @Summary     Send the submitted message
// @Description Streams the answer to the message stored by POST /api/v1/chat/submit.
// @Tags        Chat
// @Produce     text/event-stream
// @Param       X-Session-ID header string false "Session id"
// @Success     200 {object} doneEvent "final event of the stream"
// @Failure     409 {object} response.Resp "Nothing to send, or a response is being generated"
// @Failure     502 {object} response.Resp "Model error"
// @Router      /api/v1/chat/send [POST]
func (h *handler) SendPending(c *gin.Context) {
	sid := middleware.SessionID(c)
	h.streamTurn(c, "uc.SendTurn", func(ctx context.Context, obs conversation.TurnObserver) (conversation.TurnOutput, error) {
		return h.uc.SendTurn(ctx, sid, obs)
	})
}

// Continue godoc
// @Summary     Continue a truncated response
// @Description Asks the model to resume the last response after it hit the token limit. The stream carries only the new text.
// @Tags        Chat
// @Produce     text/event-stream
// @Param       X-Session-ID header string false "Session id"
// @Success     200 {object} doneEvent "final event of the stream"
// @Failure     409 {object} response.Resp "No truncated response, or a response is being generated"
// @Failure     502 {object} response.Resp "Model error"
// @Router      /api/v1/chat/continue [POST]
func (h *handler) Continue(c *gin.Context) {
	sid := middleware.SessionID(c)
	h.streamTurn(c, "uc.ContinueTurn", func(ctx context.Context, obs conversation.TurnObserver) (conversation.TurnOutput, error) {
		return h.uc.ContinueTurn(ctx, sid, obs)
	})
}

type turnFunc func(ctx context.Context, obs conversation.TurnObserver) (conversation.TurnOutput, error)

// streamTurn runs a model turn and relays its progress as events. Errors
// raised before the first event are answered with a JSON error instead.
func (h *handler) streamTurn(c *gin.Context, op string, run turnFunc) {
	ctx := c.Request.Context()
	es := newEventStream(c)

	obs := conversation.TurnObserver{
		OnSubmitted: func(out conversation.SubmitOutput) {
			for _, f := range newFailureResps(out.Failures) {
				es.send(eventAttachmentError, f)
			}
		},
		OnPartial: func(text string) {
			es.send(eventPartial, partialEvent{Text: text})
		},
	}

	output, err := run(ctx, obs)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			h.l.Warnf(ctx, "%s: client went away", op)
			return
		}
		h.l.Errorf(ctx, "%s: %v", op, err)

		mapped := h.mapError(err)
		if !es.Started() {
			response.Error(c, mapped, nil)
			return
		}
		es.send(eventError, errorEvent{Kind: errorKind(err), Message: mapped.Error()})
		return
	}

	es.send(eventDone, newDoneEvent(output))
}
