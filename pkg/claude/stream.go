package claude

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Stream is a pull-based reader over one streaming response.
//
//	for s.Next() {
//		fmt.Print(s.Delta())
//	}
//	if err := s.Err(); err != nil { ... }
type Stream struct {
	ctx    context.Context
	cancel context.CancelFunc
	body   io.ReadCloser
	sse    *sseReader

	delta      string
	messageID  string
	stopReason string
	usage      Usage
	done       bool
	err        error
}

func newStream(ctx context.Context, cancel context.CancelFunc, body io.ReadCloser) *Stream {
	return &Stream{
		ctx:    ctx,
		cancel: cancel,
		body:   body,
		sse:    newSSEReader(body),
	}
}

// Next blocks until the next text delta arrives. It returns false once the message
// is complete or the stream failed; check Err to tell the two apart.
func (s *Stream) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	for {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return false
		}

		ev, err := s.sse.next()
		if err != nil {
			switch {
			case s.ctx.Err() != nil:
				s.err = s.ctx.Err()
			case errors.Is(err, io.EOF):
				s.err = ErrStreamTruncated
			default:
				s.err = fmt.Errorf("claude: failed to read stream: %w", err)
			}
			return false
		}
		if len(ev.data) == 0 {
			continue
		}

		var e apiEvent
		if err := json.Unmarshal(ev.data, &e); err != nil {
			s.err = fmt.Errorf("claude: malformed %q event: %w", ev.name, err)
			return false
		}
		if e.Type == "" {
			e.Type = ev.name
		}

		switch e.Type {
		case eventMessageStart:
			if e.Message != nil {
				s.messageID = e.Message.ID
				s.usage.InputTokens = e.Message.Usage.InputTokens
			}
		case eventContentBlockDelta:
			if e.Delta != nil && e.Delta.Type == deltaText && e.Delta.Text != "" {
				s.delta = e.Delta.Text
				return true
			}
		case eventMessageDelta:
			if e.Delta != nil && e.Delta.StopReason != "" {
				s.stopReason = e.Delta.StopReason
			}
			if e.Usage != nil {
				s.usage.OutputTokens = e.Usage.OutputTokens
			}
		case eventMessageStop:
			s.done = true
			s.delta = ""
			return false
		case eventError:
			s.err = &APIError{Type: "stream_error", Message: string(ev.data)}
			if e.Error != nil {
				s.err = &APIError{Type: e.Error.Type, Message: e.Error.Message}
			}
			return false
		case eventPing, eventContentBlockStart, eventContentBlockStop:
		default:
			// unknown event types are skipped
		}
	}
}

// Delta returns the text received by the last successful Next.
func (s *Stream) Delta() string {
	return s.delta
}

// StopReason returns the provider's stop reason, e.g. "end_turn" or "max_tokens".
func (s *Stream) StopReason() string {
	return s.stopReason
}

// MessageID returns the provider's id for the generated message.
func (s *Stream) MessageID() string {
	return s.messageID
}

// Usage returns the token counts reported so far.
func (s *Stream) Usage() Usage {
	return s.usage
}

// Err returns the error that stopped the stream, if any.
func (s *Stream) Err() error {
	return s.err
}

// Close aborts the request if it is still running and releases the connection.
func (s *Stream) Close() error {
	s.cancel()
	return s.body.Close()
}

type sseEvent struct {
	name string
	data []byte
}

// sseReader splits a text/event-stream body into events. Only the event and data
// fields are used; comments and other fields are skipped.
type sseReader struct {
	scanner *bufio.Scanner
}

func newSSEReader(r io.Reader) *sseReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &sseReader{scanner: sc}
}

func (r *sseReader) next() (sseEvent, error) {
	var (
		ev      sseEvent
		data    bytes.Buffer
		hasData bool
	)

	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" {
			if hasData || ev.name != "" {
				ev.data = data.Bytes()
				return ev, nil
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			ev.name = value
		case "data":
			if hasData {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			hasData = true
		}
	}
	if err := r.scanner.Err(); err != nil {
		return sseEvent{}, err
	}
	if hasData {
		ev.data = data.Bytes()
		return ev, nil
	}
	return sseEvent{}, io.EOF
}
