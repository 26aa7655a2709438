package http

import (
	"fmt"
	"unicode/utf8"

	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/internal/model"
	"claude-vertex-chat/internal/session"
	"claude-vertex-chat/pkg/response"
)

const maxSystemPromptLength = 32 * 1024

// --- Request DTOs ---

type setSystemPromptReq struct {
	SystemPrompt string `json:"system_prompt"`
}

func (r setSystemPromptReq) validate() error {
	if n := utf8.RuneCountInString(r.SystemPrompt); n > maxSystemPromptLength {
		return fmt.Errorf("system prompt is too long: %d characters, at most %d allowed", n, maxSystemPromptLength)
	}
	return nil
}

func (r setSystemPromptReq) toInput() conversation.SetSystemPromptInput {
	return conversation.SetSystemPromptInput{SystemPrompt: r.SystemPrompt}
}

// ---

// messageReq is the multipart form of a chat message.
type messageReq struct {
	Text  string
	Files []uploadedFile
}

func (r messageReq) toInput() conversation.SubmitInput {
	return conversation.SubmitInput{
		Text:  r.Text,
		Files: toRawFiles(r.Files),
	}
}

// ---

type previewReq struct {
	Files []uploadedFile
}

func (r previewReq) toInput() conversation.PreviewInput {
	return conversation.PreviewInput{Files: toRawFiles(r.Files)}
}

// --- Response DTOs ---

type messageResp struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	MessageID string `json:"message_id,omitempty"`
}

type historyResp struct {
	CreatedAt        response.DateTime `json:"created_at"`
	Messages         []messageResp     `json:"messages"`
	MaxTokensReached bool              `json:"max_tokens_reached"`
	SystemPrompt     string            `json:"system_prompt"`
	UploadBatchToken int               `json:"upload_batch_token"`
	Phase            session.Phase     `json:"phase"`
}

func (h *handler) newHistoryResp(o conversation.HistoryOutput) historyResp {
	resp := historyResp{
		CreatedAt:        response.DateTime(o.CreatedAt),
		Messages:         make([]messageResp, 0, len(o.Messages)),
		MaxTokensReached: o.MaxTokensReached,
		SystemPrompt:     o.SystemPrompt,
		UploadBatchToken: o.UploadBatchToken,
		Phase:            o.Phase,
	}
	for _, m := range o.Messages {
		resp.Messages = append(resp.Messages, newMessageResp(m))
	}
	return resp
}

func newMessageResp(m model.Message) messageResp {
	return messageResp{
		Role:      string(m.Role),
		Content:   m.Content,
		MessageID: m.MessageID,
	}
}

type attachmentResp struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Preview string `json:"preview"`
}

type failureResp struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

type previewResp struct {
	Accepted []attachmentResp `json:"accepted"`
	Failures []failureResp    `json:"failures"`
}

func (h *handler) newPreviewResp(o conversation.PreviewOutput) previewResp {
	return previewResp{
		Accepted: newAttachmentResps(o.Accepted),
		Failures: newFailureResps(o.Failures),
	}
}

type submitResp struct {
	MessageID string           `json:"message_id"`
	Accepted  []attachmentResp `json:"accepted"`
	Failures  []failureResp    `json:"failures"`
}

func (h *handler) newSubmitResp(o conversation.SubmitOutput) submitResp {
	return submitResp{
		MessageID: o.MessageID,
		Accepted:  newAttachmentResps(o.Accepted),
		Failures:  newFailureResps(o.Failures),
	}
}

func newAttachmentResps(in []conversation.AttachmentPreview) []attachmentResp {
	out := make([]attachmentResp, 0, len(in))
	for _, a := range in {
		out = append(out, attachmentResp{Name: a.Name, Kind: string(a.Kind), Preview: a.Preview})
	}
	return out
}

func newFailureResps(in []conversation.AttachmentFailure) []failureResp {
	out := make([]failureResp, 0, len(in))
	for _, f := range in {
		out = append(out, failureResp{Name: f.Name, Code: f.Code, Reason: f.Reason})
	}
	return out
}

// --- Stream events ---

const (
	eventAttachmentError = "attachment_error"
	eventPartial         = "partial"
	eventDone            = "done"
	eventError           = "error"
)

type partialEvent struct {
	Text string `json:"text"`
}

type doneEvent struct {
	MessageID             string `json:"message_id,omitempty"`
	Text                  string `json:"text"`
	ContinuationAvailable bool   `json:"continuation_available"`
	Notice                string `json:"notice,omitempty"`
}

func newDoneEvent(o conversation.TurnOutput) doneEvent {
	return doneEvent{
		MessageID:             o.MessageID,
		Text:                  o.Text,
		ContinuationAvailable: o.ContinuationAvailable,
		Notice:                o.Notice,
	}
}

type errorEvent struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
