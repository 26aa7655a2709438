package usecase

import (
	"context"
	"errors"

	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/internal/model"
	"claude-vertex-chat/internal/session"
	"claude-vertex-chat/pkg/metrics"
)

const (
	turnSend     = "send"
	turnContinue = "continue"
)

// SendTurn streams the answer to the pending message.
func (uc *implUseCase) SendTurn(ctx context.Context, sessionID string, obs conversation.TurnObserver) (conversation.TurnOutput, error) {
	ctx = withSession(ctx, sessionID)
	sess := uc.acquire(ctx, sessionID)

	release, err := sess.BeginTurn()
	if err != nil {
		return conversation.TurnOutput{}, err
	}
	defer release()

	return uc.sendTurn(ctx, sess, obs)
}

// Send submits and sends in one go while holding the session.
func (uc *implUseCase) Send(ctx context.Context, sessionID string, input conversation.SubmitInput, obs conversation.TurnObserver) (conversation.TurnOutput, error) {
	ctx = withSession(ctx, sessionID)
	sess := uc.acquire(ctx, sessionID)

	release, err := sess.BeginTurn()
	if err != nil {
		return conversation.TurnOutput{}, err
	}
	defer release()

	sub, err := uc.submit(ctx, sess, input)
	if err != nil {
		return conversation.TurnOutput{}, err
	}
	if obs.OnSubmitted != nil {
		obs.OnSubmitted(sub)
	}

	return uc.sendTurn(ctx, sess, obs)
}

func (uc *implUseCase) sendTurn(ctx context.Context, sess *session.Session, obs conversation.TurnObserver) (conversation.TurnOutput, error) {
	var (
		ready          bool
		messages       []model.Message
		msgID          string
		system         string
		hasAttachments bool
	)
	sess.Update(func(st *session.State) {
		if st.Phase != session.PhaseSending || st.PendingMessageID == "" {
			return
		}
		ready = true
		msgID = st.PendingMessageID
		system = st.SystemPrompt
		pending := st.PendingAttachments[msgID]
		hasAttachments = len(pending) > 0
		messages = BuildRequest(st.Messages, st.PendingPrompt, pending, false, uc.cfg.AssemblyMode)
		st.Phase = session.PhaseStreaming
	})
	if !ready {
		return conversation.TurnOutput{}, conversation.ErrNothingToSend
	}
	userTurn := messages[len(messages)-1]

	uc.l.Infof(ctx, "conversation.SendTurn: message_id=%s history=%d", msgID, len(messages)-1)

	text, cont, err := uc.drain(ctx, messages, system, obs)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			sess.Update(func(st *session.State) { st.Phase = session.PhaseSending })
			uc.metrics.ObserveTurn(turnSend, metrics.OutcomeCanceled)
			uc.l.Warnf(ctx, "conversation.SendTurn: canceled, message_id=%s kept pending", msgID)
			return conversation.TurnOutput{}, err
		}

		sess.Update(func(st *session.State) {
			delete(st.PendingAttachments, msgID)
			st.PendingMessageID = ""
			st.PendingPrompt = ""
			st.Phase = session.PhaseIdle
		})
		uc.metrics.ObserveTurn(turnSend, metrics.OutcomeModelError)
		uc.l.Errorf(ctx, "conversation.SendTurn: model call failed: %v", err)
		return conversation.TurnOutput{}, err
	}

	sess.Update(func(st *session.State) {
		st.AppendMessage(model.RoleUser, userTurn.Content, msgID)
		st.AppendMessage(model.RoleAssistant, text, "")
		delete(st.PendingAttachments, msgID)
		if hasAttachments {
			st.ClearFileData()
		}
		st.PendingMessageID = ""
		st.PendingPrompt = ""
		st.MaxTokensReached = cont
		st.Phase = phaseAfter(cont)
	})

	uc.metrics.ObserveTurn(turnSend, outcome(cont))
	return turnOutput(msgID, text, cont), nil
}

// drain runs one stream to completion, publishing every partial.
func (uc *implUseCase) drain(ctx context.Context, messages []model.Message, system string, obs conversation.TurnObserver) (string, bool, error) {
	rs := uc.Stream(ctx, messages, system)
	defer rs.Close()

	for rs.Next() {
		if obs.OnPartial != nil {
			obs.OnPartial(rs.Current())
		}
	}

	text, ok := rs.Final()
	if !ok {
		return "", false, rs.Err()
	}
	return text, rs.ContinuationAvailable(), nil
}

func phaseAfter(cont bool) session.Phase {
	if cont {
		return session.PhaseTokenLimitReached
	}
	return session.PhaseCommitted
}

func outcome(cont bool) string {
	if cont {
		return metrics.OutcomeTokenLimit
	}
	return metrics.OutcomeCommitted
}

func turnOutput(msgID, text string, cont bool) conversation.TurnOutput {
	out := conversation.TurnOutput{
		MessageID:             msgID,
		Text:                  text,
		ContinuationAvailable: cont,
	}
	if cont {
		out.Notice = conversation.MaxTokensNotice
	}
	return out
}
