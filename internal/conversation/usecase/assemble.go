package usecase

import (
	"fmt"
	"strings"

	"claude-vertex-chat/internal/attachment"
	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/internal/model"
)

// ContinuePrompt is the synthetic user turn that asks the model to resume.
const ContinuePrompt = "Please continue your previous response."

// BuildRequest assembles the message list for one model call. history is not modified.
//
// Trailing user turns are dropped so the new user turn never follows another one.
// With continueLast the synthetic ContinuePrompt is appended after a trailing assistant
// turn, and nothing is appended otherwise. The flattened content of the new user turn
// is always set; in structured mode Parts carries the attachments as separate blocks.
func BuildRequest(
	history []model.Message,
	prompt string,
	pending []attachment.Record,
	continueLast bool,
	mode conversation.AssemblyMode,
) []model.Message {
	messages := make([]model.Message, len(history), len(history)+1)
	copy(messages, history)

	for len(messages) > 0 && messages[len(messages)-1].Role == model.RoleUser {
		messages = messages[:len(messages)-1]
	}

	if continueLast {
		if len(messages) > 0 && messages[len(messages)-1].Role == model.RoleAssistant {
			messages = append(messages, model.Message{Role: model.RoleUser, Content: ContinuePrompt})
		}
		return messages
	}

	msg := model.Message{
		Role:    model.RoleUser,
		Content: flatten(prompt, pending),
	}
	if mode == conversation.AssemblyStructured && len(pending) > 0 {
		msg.Parts = structured(prompt, pending)
	}

	return append(messages, msg)
}

// flatten places the prompt first and then one labeled block per attachment.
func flatten(prompt string, pending []attachment.Record) string {
	var sb strings.Builder
	sb.WriteString(prompt)
	for _, rec := range pending {
		fmt.Fprintf(&sb, "\n\nAttachment: %s (%s)\n", rec.Name, rec.Kind)
		sb.WriteString(attachment.TextOf(rec))
	}
	return strings.TrimSpace(sb.String())
}

func structured(prompt string, pending []attachment.Record) []model.ContentPart {
	parts := make([]model.ContentPart, 0, 2*len(pending)+1)
	for _, rec := range pending {
		parts = append(parts, attachment.ToModelContent(rec)...)
	}
	if p := strings.TrimSpace(prompt); p != "" {
		parts = append(parts, model.TextPart(p))
	}
	return parts
}
