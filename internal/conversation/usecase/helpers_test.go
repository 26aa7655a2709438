package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"claude-vertex-chat/internal/attachment"
	"claude-vertex-chat/internal/session"
	"claude-vertex-chat/pkg/claude"
	"claude-vertex-chat/pkg/metrics"
)

// Mock logger for testing. Info lines are recorded.
type mockLogger struct {
	mu    sync.Mutex
	infos []string
}

func (m *mockLogger) infoLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.infos)
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, fmt.Sprintf(template, arg...))
}

// wireRequest is the subset of the model request body the tests inspect.
type wireRequest struct {
	System   string `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type   string `json:"type"`
			Text   string `json:"text"`
			Source *struct {
				MediaType string `json:"media_type"`
				Data      string `json:"data"`
			} `json:"source"`
		} `json:"content"`
	} `json:"messages"`
}

// fakeModel is a Vertex endpoint whose answers are scripted per test.
type fakeModel struct {
	mu       sync.Mutex
	requests []wireRequest
	respond  func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeModel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req wireRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	respond := f.respond
	f.mu.Unlock()

	respond(w, r)
}

func (f *fakeModel) lastRequest(t *testing.T) wireRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatalf("model was not called")
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeModel) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeModel) set(respond func(w http.ResponseWriter, r *http.Request)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.respond = respond
}

func sse(w http.ResponseWriter, name, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

// reply streams chunks as text deltas and finishes with stopReason.
func reply(stopReason string, chunks ...string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		sse(w, "message_start", `{"type":"message_start","message":{"id":"msg_test","usage":{"input_tokens":1}}}`)
		for _, c := range chunks {
			b, _ := json.Marshal(map[string]any{
				"type":  "content_block_delta",
				"delta": map[string]string{"type": "text_delta", "text": c},
			})
			sse(w, "content_block_delta", string(b))
		}
		sse(w, "message_delta", fmt.Sprintf(`{"type":"message_delta","delta":{"stop_reason":%q},"usage":{"output_tokens":%d}}`, stopReason, len(chunks)))
		sse(w, "message_stop", `{"type":"message_stop"}`)
	}
}

func fail(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

type testEnv struct {
	uc    *implUseCase
	model *fakeModel
	store *session.Store
	log   *mockLogger
}

func newTestEnv(t *testing.T, cfg Config) *testEnv {
	t.Helper()

	fm := &fakeModel{respond: reply("end_turn", "ok")}
	ts := httptest.NewServer(fm)
	t.Cleanup(ts.Close)

	llm, err := claude.New(claude.Config{ProjectID: "test-project", BaseURL: ts.URL, HTTPClient: ts.Client()})
	if err != nil {
		t.Fatalf("claude.New: %v", err)
	}

	l := &mockLogger{}
	store := session.NewStore(l, session.Config{})
	uc := New(l, llm, attachment.New(attachment.Config{}), store, metrics.New(prometheus.NewRegistry()), cfg)

	n := 0
	uc.newID = func() string {
		n++
		return fmt.Sprintf("msg-%d", n)
	}

	return &testEnv{uc: uc, model: fm, store: store, log: l}
}

func (e *testEnv) state(t *testing.T, sid string) session.State {
	t.Helper()
	sess, err := e.store.Get(sid)
	if err != nil {
		t.Fatalf("session %s: %v", sid, err)
	}
	return sess.Snapshot()
}
