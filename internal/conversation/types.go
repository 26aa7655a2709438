package conversation

import (
	"time"

	"claude-vertex-chat/internal/attachment"
	"claude-vertex-chat/internal/model"
	"claude-vertex-chat/internal/session"
)

// AssemblyMode selects how pending attachments are folded into the user turn.
type AssemblyMode string

const (
	// AssemblyFlattened sends everything as one text block.
	AssemblyFlattened AssemblyMode = "flattened"
	// AssemblyStructured sends attachments as separate content parts, images included.
	AssemblyStructured AssemblyMode = "structured"
)

// Valid reports whether m is a known mode.
func (m AssemblyMode) Valid() bool {
	return m == AssemblyFlattened || m == AssemblyStructured
}

// SubmitInput is a user message with its uploads.
type SubmitInput struct {
	Text  string
	Files []attachment.RawFile
}

// AttachmentPreview describes an attachment that was accepted.
type AttachmentPreview struct {
	Name    string
	Kind    attachment.Kind
	Preview string
}

// AttachmentFailure describes an attachment that was rejected.
type AttachmentFailure struct {
	Name   string
	Code   string
	Reason string
}

// SubmitOutput reports what happened to the uploads of a submitted message.
type SubmitOutput struct {
	MessageID string
	Accepted  []AttachmentPreview
	Failures  []AttachmentFailure
}

// TurnObserver receives progress of a running turn. Nil callbacks are skipped.
type TurnObserver struct {
	// OnSubmitted is called once attachments are processed, before the model is called.
	OnSubmitted func(out SubmitOutput)
	// OnPartial receives the cumulative response text after each chunk.
	OnPartial func(text string)
}

// MaxTokensNotice is shown when a response was cut off by the token budget.
const MaxTokensNotice = "Claude's response has reached the maximum token limit. You can click 'Continue Response' to get more."

// TurnOutput is the result of a completed model turn.
type TurnOutput struct {
	MessageID             string
	Text                  string
	ContinuationAvailable bool
	// Notice is set to MaxTokensNotice when ContinuationAvailable is true.
	Notice string
}

// HistoryOutput is what the chat view renders.
type HistoryOutput struct {
	CreatedAt        time.Time
	Messages         []model.Message
	MaxTokensReached bool
	SystemPrompt     string
	UploadBatchToken int
	Phase            session.Phase
}

// SetSystemPromptInput carries the new system prompt.
type SetSystemPromptInput struct {
	SystemPrompt string
}

// PreviewInput carries files to preview.
type PreviewInput struct {
	Files []attachment.RawFile
}

// PreviewOutput lists previews of accepted files and reasons for rejected ones.
type PreviewOutput struct {
	Accepted []AttachmentPreview
	Failures []AttachmentFailure
}
