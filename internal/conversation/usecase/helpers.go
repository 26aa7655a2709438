package usecase

import (
	"context"
	"errors"

	"github.com/dustin/go-humanize"

	"claude-vertex-chat/internal/attachment"
	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/internal/session"
	pkgLog "claude-vertex-chat/pkg/log"
)

// acquire returns the session for id, creating it on first use.
func (uc *implUseCase) acquire(ctx context.Context, id string) *session.Session {
	sess, created := uc.sessions.GetOrCreate(id)
	if created {
		uc.l.Infof(ctx, "conversation: new session")
		uc.metrics.SetActiveSessions(uc.sessions.Len())
	}
	return sess
}

// normalize processes files and splits the results into previews and failures.
func (uc *implUseCase) normalize(ctx context.Context, files []attachment.RawFile) ([]attachment.Record, []conversation.AttachmentPreview, []conversation.AttachmentFailure) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var (
		records  []attachment.Record
		accepted []conversation.AttachmentPreview
		failures []conversation.AttachmentFailure
	)
	for _, res := range uc.normalizer.NormalizeAll(files) {
		if res.OK() {
			records = append(records, *res.Record)
			accepted = append(accepted, conversation.AttachmentPreview{
				Name:    res.Record.Name,
				Kind:    res.Record.Kind,
				Preview: attachment.Preview(*res.Record),
			})
			uc.metrics.ObserveAttachment(string(res.Record.Kind))
			uc.l.Debugf(ctx, "conversation: attachment %q accepted as %s (%s)",
				res.Name, res.Record.Kind, humanize.Bytes(uint64(len(res.Record.Content))))
			continue
		}

		failure := conversation.AttachmentFailure{Name: res.Name, Code: "unknown", Reason: res.Err.Error()}
		var aerr *attachment.Error
		if errors.As(res.Err, &aerr) {
			failure.Code = aerr.Code()
		}
		failures = append(failures, failure)
		uc.metrics.ObserveAttachmentFailure(failure.Code)
		uc.l.Warnf(ctx, "conversation: attachment %q rejected: %v", res.Name, res.Err)
	}
	return records, accepted, failures
}

func historyOutput(sess *session.Session) conversation.HistoryOutput {
	st := sess.Snapshot()
	return conversation.HistoryOutput{
		CreatedAt:        sess.CreatedAt,
		Messages:         st.Messages,
		MaxTokensReached: st.MaxTokensReached,
		SystemPrompt:     st.SystemPrompt,
		UploadBatchToken: st.UploadBatchToken,
		Phase:            st.Phase,
	}
}

func withSession(ctx context.Context, id string) context.Context {
	return pkgLog.WithSessionID(ctx, id)
}
