package usecase

import (
	"context"
	"fmt"
	"strings"

	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/internal/session"
)

// Submit normalizes the attachments and stores the message as pending.
func (uc *implUseCase) Submit(ctx context.Context, sessionID string, input conversation.SubmitInput) (conversation.SubmitOutput, error) {
	ctx = withSession(ctx, sessionID)
	sess := uc.acquire(ctx, sessionID)

	release, err := sess.BeginTurn()
	if err != nil {
		return conversation.SubmitOutput{}, err
	}
	defer release()

	return uc.submit(ctx, sess, input)
}

func (uc *implUseCase) submit(ctx context.Context, sess *session.Session, input conversation.SubmitInput) (conversation.SubmitOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return conversation.SubmitOutput{}, conversation.ErrEmptyPrompt
	}
	if uc.cfg.MaxFiles > 0 && len(input.Files) > uc.cfg.MaxFiles {
		return conversation.SubmitOutput{}, fmt.Errorf("%w: %d files, at most %d allowed",
			conversation.ErrTooManyFiles, len(input.Files), uc.cfg.MaxFiles)
	}

	if len(input.Files) > 0 {
		sess.Update(func(st *session.State) {
			st.Phase = session.PhaseAwaitingAttachmentProcessing
		})
	}

	records, accepted, failures := uc.normalize(ctx, input.Files)
	id := uc.newID()

	sess.Update(func(st *session.State) {
		// A message that was submitted but never sent is replaced.
		if st.PendingMessageID != "" {
			delete(st.PendingAttachments, st.PendingMessageID)
		}
		if len(records) > 0 {
			st.PendingAttachments[id] = records
		}
		st.PendingMessageID = id
		st.PendingPrompt = text
		st.Phase = session.PhaseSending
	})

	uc.l.Infof(ctx, "conversation.Submit: message_id=%s accepted=%d rejected=%d",
		id, len(accepted), len(failures))

	return conversation.SubmitOutput{
		MessageID: id,
		Accepted:  accepted,
		Failures:  failures,
	}, nil
}
