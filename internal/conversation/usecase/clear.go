package usecase

import (
	"context"

	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/internal/session"
)

// Clear resets the conversation and issues a new upload token.
func (uc *implUseCase) Clear(ctx context.Context, sessionID string) (conversation.HistoryOutput, error) {
	ctx = withSession(ctx, sessionID)
	sess := uc.acquire(ctx, sessionID)

	release, err := sess.BeginTurn()
	if err != nil {
		return conversation.HistoryOutput{}, err
	}
	defer release()

	sess.Update(func(st *session.State) { st.Reset() })
	uc.l.Infof(ctx, "conversation.Clear: conversation reset")

	return historyOutput(sess), nil
}

// SetSystemPrompt replaces the system prompt used by later turns.
func (uc *implUseCase) SetSystemPrompt(ctx context.Context, sessionID string, input conversation.SetSystemPromptInput) (conversation.HistoryOutput, error) {
	ctx = withSession(ctx, sessionID)
	sess := uc.acquire(ctx, sessionID)

	release, err := sess.BeginTurn()
	if err != nil {
		return conversation.HistoryOutput{}, err
	}
	defer release()

	sess.Update(func(st *session.State) { st.SetSystemPrompt(input.SystemPrompt) })
	uc.l.Debugf(ctx, "conversation.SetSystemPrompt: %d chars", len(input.SystemPrompt))

	return historyOutput(sess), nil
}

// History returns a snapshot of the conversation. It does not wait for a running turn.
func (uc *implUseCase) History(ctx context.Context, sessionID string) (conversation.HistoryOutput, error) {
	ctx = withSession(ctx, sessionID)
	return historyOutput(uc.acquire(ctx, sessionID)), nil
}

// Preview normalizes files without storing anything.
func (uc *implUseCase) Preview(ctx context.Context, input conversation.PreviewInput) (conversation.PreviewOutput, error) {
	if uc.cfg.MaxFiles > 0 && len(input.Files) > uc.cfg.MaxFiles {
		return conversation.PreviewOutput{}, conversation.ErrTooManyFiles
	}
	_, accepted, failures := uc.normalize(ctx, input.Files)
	return conversation.PreviewOutput{Accepted: accepted, Failures: failures}, nil
}
