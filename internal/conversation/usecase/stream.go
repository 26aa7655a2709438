package usecase

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/internal/model"
	"claude-vertex-chat/pkg/claude"
	pkgLog "claude-vertex-chat/pkg/log"
	"claude-vertex-chat/pkg/metrics"
)

// ResponseStream pulls cumulative response text from one model call.
//
//	rs := uc.Stream(ctx, messages, system)
//	defer rs.Close()
//	for rs.Next() {
//		show(rs.Current())
//	}
//	text, ok := rs.Final()
type ResponseStream struct {
	ctx       context.Context
	l         pkgLog.Logger
	metrics   *metrics.Metrics
	s         *claude.Stream
	maxTokens int
	started   time.Time
	progress  rate.Sometimes

	text         strings.Builder
	finished     bool
	continuation bool
	err          error
}

// Stream starts one streaming call. Failures are reported through Err, never returned
// or panicked, so the caller always gets a usable ResponseStream.
func (uc *implUseCase) Stream(ctx context.Context, messages []model.Message, system string) *ResponseStream {
	rs := &ResponseStream{
		ctx:       ctx,
		l:         uc.l,
		metrics:   uc.metrics,
		maxTokens: uc.cfg.MaxTokens,
		started:   time.Now(),
		progress:  rate.Sometimes{Interval: time.Second},
	}

	s, err := uc.llm.StreamMessage(ctx, &claude.Request{
		System:      system,
		Messages:    toClaudeMessages(messages),
		MaxTokens:   uc.cfg.MaxTokens,
		Temperature: uc.cfg.Temperature,
	})
	if err != nil {
		rs.err = classify(ctx, err)
		return rs
	}
	rs.s = s
	return rs
}

// Next blocks until more text arrives. It returns false when the response is complete
// or failed.
func (rs *ResponseStream) Next() bool {
	if rs.s == nil || rs.finished || rs.err != nil {
		return false
	}

	if rs.s.Next() {
		rs.text.WriteString(rs.s.Delta())
		rs.progress.Do(func() {
			rs.l.Debugf(rs.ctx, "conversation.ResponseStream: received %d chars in %s",
				rs.text.Len(), time.Since(rs.started).Round(time.Millisecond))
		})
		return true
	}

	if err := rs.s.Err(); err != nil {
		rs.err = classify(rs.ctx, err)
		return false
	}

	rs.finished = true
	text := rs.text.String()
	rs.continuation = len(strings.Fields(text)) >= rs.maxTokens ||
		rs.s.StopReason() == claude.StopReasonMaxTokens

	tokens := claude.EstimateTokens(text)
	rs.metrics.ObserveStream(time.Since(rs.started), tokens)
	rs.l.Infof(rs.ctx, "conversation.ResponseStream: done in %s, message_id=%s, output_tokens=%d (~%d estimated), stop_reason=%s",
		time.Since(rs.started).Round(time.Millisecond), rs.s.MessageID(), rs.s.Usage().OutputTokens, tokens, rs.s.StopReason())
	return false
}

// Current returns the text received so far.
func (rs *ResponseStream) Current() string {
	return rs.text.String()
}

// Final returns the complete text once the stream finished successfully.
func (rs *ResponseStream) Final() (string, bool) {
	if !rs.finished {
		return "", false
	}
	return rs.text.String(), true
}

// ContinuationAvailable reports whether the response was cut off by the token budget.
func (rs *ResponseStream) ContinuationAvailable() bool {
	return rs.finished && rs.continuation
}

// Err returns a *conversation.ModelError, or the context error if the caller gave up.
func (rs *ResponseStream) Err() error {
	return rs.err
}

// Close abandons the call if it is still running.
func (rs *ResponseStream) Close() {
	if rs.s != nil {
		_ = rs.s.Close()
	}
}

// classify maps a client error to a ModelError, leaving cancellation untouched.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled {
		return context.Canceled
	}

	var (
		apiErr *claude.APIError
		netErr net.Error
	)
	switch {
	case errors.As(err, &apiErr),
		errors.As(err, &netErr),
		errors.Is(err, claude.ErrStreamTruncated),
		errors.Is(err, context.DeadlineExceeded):
		return &conversation.ModelError{Kind: conversation.ModelErrorAPI, Err: err}
	default:
		return &conversation.ModelError{Kind: conversation.ModelErrorUnexpected, Err: err}
	}
}

func toClaudeMessages(messages []model.Message) []claude.Message {
	out := make([]claude.Message, 0, len(messages))
	for _, m := range messages {
		msg := claude.Message{Role: string(m.Role)}
		if len(m.Parts) > 0 {
			for _, p := range m.Parts {
				switch p.Type {
				case model.PartImage:
					msg.Content = append(msg.Content, claude.ImageBlock(p.MediaType, p.Data))
				default:
					msg.Content = append(msg.Content, claude.TextBlock(p.Text))
				}
			}
		} else {
			msg.Content = []claude.ContentBlock{claude.TextBlock(m.Content)}
		}
		out = append(out, msg)
	}
	return out
}
