package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"claude-vertex-chat/pkg/claude"
)

func writeEvent(w http.ResponseWriter, name, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func textDelta(text string) string {
	b, _ := json.Marshal(map[string]any{
		"type":  "content_block_delta",
		"index": 0,
		"delta": map[string]string{"type": "text_delta", "text": text},
	})
	return string(b)
}

func newClient(t *testing.T, url string) claude.IClaude {
	t.Helper()
	c, err := claude.New(claude.Config{
		ProjectID:  "test-project",
		BaseURL:    url,
		HTTPClient: http.DefaultClient,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func collect(s *claude.Stream) string {
	var sb strings.Builder
	for s.Next() {
		sb.WriteString(s.Delta())
	}
	return sb.String()
}

func TestNew_RequiresProject(t *testing.T) {
	_, err := claude.New(claude.Config{})
	if !errors.Is(err, claude.ErrProjectRequired) {
		t.Fatalf("expected ErrProjectRequired, got %v", err)
	}
}

func TestStreamMessage_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent(w, "message_start", `{"type":"message_start","message":{"id":"msg_1","model":"claude","usage":{"input_tokens":12,"output_tokens":1}}}`)
		writeEvent(w, "content_block_start", `{"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}`)
		writeEvent(w, "ping", `{"type":"ping"}`)
		writeEvent(w, "content_block_delta", textDelta("Hello"))
		writeEvent(w, "content_block_delta", textDelta(", world"))
		writeEvent(w, "content_block_stop", `{"type":"content_block_stop","index":0}`)
		writeEvent(w, "message_delta", `{"type":"message_delta","delta":{"stop_reason":"end_turn"},"usage":{"output_tokens":5}}`)
		writeEvent(w, "message_stop", `{"type":"message_stop"}`)
	}))
	defer ts.Close()

	c := newClient(t, ts.URL)
	s, err := c.StreamMessage(context.Background(), &claude.Request{
		System:      "be nice",
		Messages:    []claude.Message{{Role: "user", Content: []claude.ContentBlock{claude.TextBlock("hi")}}},
		MaxTokens:   100,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if got := collect(s); got != "Hello, world" {
		t.Errorf("unexpected text: %q", got)
	}
	if s.Err() != nil {
		t.Errorf("unexpected stream error: %v", s.Err())
	}
	if s.StopReason() != "end_turn" {
		t.Errorf("unexpected stop reason: %q", s.StopReason())
	}
	if s.MessageID() != "msg_1" {
		t.Errorf("unexpected message id: %q", s.MessageID())
	}
	if u := s.Usage(); u.InputTokens != 12 || u.OutputTokens != 5 {
		t.Errorf("unexpected usage: %+v", u)
	}

	wantPath := "/projects/test-project/locations/us-east5/publishers/anthropic/models/claude-3-5-sonnet@20240620:streamRawPredict"
	if gotPath != wantPath {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotBody["anthropic_version"] != "vertex-2023-10-16" {
		t.Errorf("unexpected anthropic_version: %v", gotBody["anthropic_version"])
	}
	if gotBody["stream"] != true {
		t.Errorf("expected stream=true")
	}
	if gotBody["system"] != "be nice" {
		t.Errorf("unexpected system: %v", gotBody["system"])
	}
	if gotBody["max_tokens"] != float64(100) {
		t.Errorf("unexpected max_tokens: %v", gotBody["max_tokens"])
	}
	if _, ok := gotBody["model"]; ok {
		t.Errorf("model must travel in the URL, not the body")
	}
}

func TestStreamMessage_ImageBlock(t *testing.T) {
	var gotBody struct {
		Messages []struct {
			Content []map[string]any `json:"content"`
		} `json:"messages"`
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeEvent(w, "message_stop", `{"type":"message_stop"}`)
	}))
	defer ts.Close()

	s, err := newClient(t, ts.URL).StreamMessage(context.Background(), &claude.Request{
		Messages: []claude.Message{{Role: "user", Content: []claude.ContentBlock{
			claude.ImageBlock("image/png", "QUJD"),
			claude.TextBlock("what is this?"),
		}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	collect(s)
	s.Close()

	if len(gotBody.Messages) != 1 || len(gotBody.Messages[0].Content) != 2 {
		t.Fatalf("unexpected body: %+v", gotBody)
	}
	img := gotBody.Messages[0].Content[0]
	src, _ := img["source"].(map[string]any)
	if img["type"] != "image" || src["type"] != "base64" || src["media_type"] != "image/png" || src["data"] != "QUJD" {
		t.Errorf("unexpected image block: %v", img)
	}
}

func TestStreamMessage_MaxTokensStopReason(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEvent(w, "content_block_delta", textDelta("cut"))
		writeEvent(w, "message_delta", `{"type":"message_delta","delta":{"stop_reason":"max_tokens"}}`)
		writeEvent(w, "message_stop", `{"type":"message_stop"}`)
	}))
	defer ts.Close()

	s, err := newClient(t, ts.URL).StreamMessage(context.Background(), &claude.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	collect(s)
	if s.StopReason() != claude.StopReasonMaxTokens {
		t.Errorf("unexpected stop reason: %q", s.StopReason())
	}
}

func TestStreamMessage_HTTPErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType string
		wantMsg  string
	}{
		{
			name:     "google envelope",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`,
			wantType: "RESOURCE_EXHAUSTED",
			wantMsg:  "Quota exceeded",
		},
		{
			name:     "google envelope list",
			status:   http.StatusForbidden,
			body:     `[{"error":{"code":403,"message":"Permission denied","status":"PERMISSION_DENIED"}}]`,
			wantType: "PERMISSION_DENIED",
			wantMsg:  "Permission denied",
		},
		{
			name:     "anthropic body",
			status:   http.StatusBadRequest,
			body:     `{"type":"error","error":{"type":"invalid_request_error","message":"messages: roles must alternate"}}`,
			wantType: "invalid_request_error",
			wantMsg:  "messages: roles must alternate",
		},
		{
			name:     "plain text",
			status:   http.StatusBadGateway,
			body:     "upstream unavailable\n",
			wantType: "Bad Gateway",
			wantMsg:  "upstream unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := newClient(t, ts.URL).StreamMessage(context.Background(), &claude.Request{})
			var apiErr *claude.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.status || apiErr.Type != tt.wantType || apiErr.Message != tt.wantMsg {
				t.Errorf("unexpected error: %+v", apiErr)
			}
		})
	}
}

func TestStreamMessage_ErrorEvent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEvent(w, "content_block_delta", textDelta("partial"))
		writeEvent(w, "error", `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`)
	}))
	defer ts.Close()

	s, err := newClient(t, ts.URL).StreamMessage(context.Background(), &claude.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if got := collect(s); got != "partial" {
		t.Errorf("unexpected text: %q", got)
	}
	var apiErr *claude.APIError
	if !errors.As(s.Err(), &apiErr) || apiErr.Type != "overloaded_error" {
		t.Fatalf("expected overloaded APIError, got %v", s.Err())
	}
}

func TestStreamMessage_Truncated(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEvent(w, "content_block_delta", textDelta("half"))
	}))
	defer ts.Close()

	s, err := newClient(t, ts.URL).StreamMessage(context.Background(), &claude.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	collect(s)
	if !errors.Is(s.Err(), claude.ErrStreamTruncated) {
		t.Fatalf("expected ErrStreamTruncated, got %v", s.Err())
	}
}

func TestStreamMessage_Cancel(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEvent(w, "content_block_delta", textDelta("first"))
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	s, err := newClient(t, ts.URL).StreamMessage(ctx, &claude.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if !s.Next() || s.Delta() != "first" {
		t.Fatalf("expected first delta")
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	if s.Next() {
		t.Fatalf("expected Next to stop after cancel")
	}
	if !errors.Is(s.Err(), context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", s.Err())
	}
}

func TestEstimateTokens(t *testing.T) {
	if n := claude.EstimateTokens(""); n != 0 {
		t.Errorf("expected 0 tokens for empty text, got %d", n)
	}
	if n := claude.EstimateTokens("hello world, this is a test"); n <= 0 {
		t.Errorf("expected a positive estimate, got %d", n)
	}
}
