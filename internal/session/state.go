package session

import (
	"math/rand/v2"
	"slices"

	"claude-vertex-chat/internal/attachment"
	"claude-vertex-chat/internal/model"
)

// Phase is the conversation controller's position in a turn.
type Phase string

const (
	PhaseIdle                         Phase = "idle"
	PhaseAwaitingAttachmentProcessing Phase = "awaiting_attachment_processing"
	PhaseSending                      Phase = "sending"
	PhaseStreaming                    Phase = "streaming"
	PhaseCommitted                    Phase = "committed"
	PhaseTokenLimitReached            Phase = "token_limit_reached"
)

const maxUploadToken = 1_000_000

// State is everything the chat view needs to survive between requests.
type State struct {
	Messages           []model.Message
	PendingAttachments map[string][]attachment.Record
	MaxTokensReached   bool
	SystemPrompt       string
	// UploadBatchToken changes whenever the upload widget must forget its files.
	// Zero means unset.
	UploadBatchToken int
	Phase            Phase
	PendingMessageID string
	PendingPrompt    string
}

// Initialize fills in any missing field. Fields already set are left alone.
func (s *State) Initialize() {
	if s.Messages == nil {
		s.Messages = []model.Message{}
	}
	if s.PendingAttachments == nil {
		s.PendingAttachments = map[string][]attachment.Record{}
	}
	if s.UploadBatchToken == 0 {
		s.UploadBatchToken = newUploadToken(0)
	}
	if s.Phase == "" {
		s.Phase = PhaseIdle
	}
}

// Reset discards the conversation and issues a new upload token.
func (s *State) Reset() {
	prev := s.UploadBatchToken
	*s = State{}
	s.Initialize()
	s.UploadBatchToken = newUploadToken(prev)
}

// AppendMessage adds a turn to the history. Role alternation is not enforced here.
func (s *State) AppendMessage(role model.Role, content, messageID string) {
	s.Messages = append(s.Messages, model.Message{
		Role:      role,
		Content:   content,
		MessageID: messageID,
	})
}

// AppendToLastAssistant extends the last message in place when it is an assistant turn.
// It reports whether anything was appended.
func (s *State) AppendToLastAssistant(text string) bool {
	if len(s.Messages) == 0 {
		return false
	}
	last := &s.Messages[len(s.Messages)-1]
	if last.Role != model.RoleAssistant {
		return false
	}
	last.Content += text
	return true
}

// ClearFileData drops every pending attachment and rotates the upload token.
func (s *State) ClearFileData() {
	s.PendingAttachments = map[string][]attachment.Record{}
	s.UploadBatchToken = newUploadToken(s.UploadBatchToken)
}

// SetSystemPrompt replaces the system prompt used for subsequent turns.
func (s *State) SetSystemPrompt(prompt string) {
	s.SystemPrompt = prompt
}

// Snapshot returns a deep copy that shares no memory with s.
func (s *State) Snapshot() State {
	out := *s
	out.Messages = make([]model.Message, len(s.Messages))
	for i, m := range s.Messages {
		m.Parts = slices.Clone(m.Parts)
		out.Messages[i] = m
	}
	out.PendingAttachments = make(map[string][]attachment.Record, len(s.PendingAttachments))
	for id, recs := range s.PendingAttachments {
		out.PendingAttachments[id] = slices.Clone(recs)
	}
	return out
}

// newUploadToken returns a token in [1, maxUploadToken] different from prev.
func newUploadToken(prev int) int {
	for {
		t := rand.IntN(maxUploadToken) + 1
		if t != prev {
			return t
		}
	}
}
