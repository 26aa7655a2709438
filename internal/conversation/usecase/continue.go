package usecase

import (
	"context"
	"errors"

	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/internal/model"
	"claude-vertex-chat/internal/session"
	"claude-vertex-chat/pkg/metrics"
)

// ContinueTurn resumes a truncated response. The returned Text holds only the newly
// generated part; it is appended to the last assistant message without a separator.
func (uc *implUseCase) ContinueTurn(ctx context.Context, sessionID string, obs conversation.TurnObserver) (conversation.TurnOutput, error) {
	ctx = withSession(ctx, sessionID)
	sess := uc.acquire(ctx, sessionID)

	release, err := sess.BeginTurn()
	if err != nil {
		return conversation.TurnOutput{}, err
	}
	defer release()

	var (
		ready    bool
		messages []model.Message
		system   string
	)
	sess.Update(func(st *session.State) {
		if st.Phase != session.PhaseTokenLimitReached || !st.MaxTokensReached {
			return
		}
		messages = BuildRequest(st.Messages, "", nil, true, uc.cfg.AssemblyMode)
		if len(messages) == 0 || messages[len(messages)-1].Content != ContinuePrompt {
			return
		}
		ready = true
		system = st.SystemPrompt
		st.Phase = session.PhaseStreaming
	})
	if !ready {
		return conversation.TurnOutput{}, conversation.ErrContinuationUnavailable
	}

	uc.l.Infof(ctx, "conversation.ContinueTurn: history=%d", len(messages)-1)

	text, cont, err := uc.drain(ctx, messages, system, obs)
	if err != nil {
		// The truncated response stays continuable.
		sess.Update(func(st *session.State) { st.Phase = session.PhaseTokenLimitReached })
		if errors.Is(err, context.Canceled) {
			uc.metrics.ObserveTurn(turnContinue, metrics.OutcomeCanceled)
			uc.l.Warnf(ctx, "conversation.ContinueTurn: canceled")
			return conversation.TurnOutput{}, err
		}
		uc.metrics.ObserveTurn(turnContinue, metrics.OutcomeModelError)
		uc.l.Errorf(ctx, "conversation.ContinueTurn: model call failed: %v", err)
		return conversation.TurnOutput{}, err
	}

	sess.Update(func(st *session.State) {
		st.AppendToLastAssistant(text)
		st.MaxTokensReached = cont
		st.Phase = phaseAfter(cont)
	})

	uc.metrics.ObserveTurn(turnContinue, outcome(cont))
	return turnOutput("", text, cont), nil
}
