package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/internal/middleware"
	"claude-vertex-chat/pkg/log"
	"claude-vertex-chat/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// stubUseCase answers History and rejects everything else.
type stubUseCase struct {
	conversation.UseCase
	lastSession string
}

func (s *stubUseCase) History(ctx context.Context, sessionID string) (conversation.HistoryOutput, error) {
	s.lastSession = sessionID
	return conversation.HistoryOutput{SystemPrompt: "stub"}, nil
}

func newTestServer(t *testing.T, cfg Config) *HTTPServer {
	t.Helper()
	cfg.Logger = log.NewNop()
	cfg.Port = 8080
	cfg.Mode = gin.TestMode
	if cfg.ChatUseCase == nil {
		cfg.ChatUseCase = &stubUseCase{}
	}
	srv, err := New(cfg.Logger, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func get(srv *HTTPServer, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t, Config{Gatherer: prometheus.NewRegistry()})

	for _, path := range []string{"/health", "/ready", "/live"} {
		t.Run(path, func(t *testing.T) {
			w := get(srv, path, nil)
			if w.Code != http.StatusOK {
				t.Errorf("status = %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), ServiceName) {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}

func TestReadyFailure(t *testing.T) {
	srv := newTestServer(t, Config{
		Gatherer: prometheus.NewRegistry(),
		Ready:    func() error { return errors.New("token refresh failed") },
	})

	if w := get(srv, "/ready", nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", w.Code)
	}
	if w := get(srv, "/live", nil); w.Code != http.StatusOK {
		t.Errorf("live status = %d", w.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.ObserveTurn("send", metrics.OutcomeCommitted)

	srv := newTestServer(t, Config{Gatherer: reg})
	w := get(srv, "/metrics", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "turns_total") {
		t.Errorf("metrics body missing turns_total:\n%s", w.Body.String())
	}
}

func TestChatRoutesMounted(t *testing.T) {
	uc := &stubUseCase{}
	srv := newTestServer(t, Config{Gatherer: prometheus.NewRegistry(), ChatUseCase: uc})

	w := get(srv, "/api/v1/chat", http.Header{middleware.HeaderSessionID: {"mounted-session"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if uc.lastSession != "mounted-session" {
		t.Errorf("session = %q", uc.lastSession)
	}
	if w.Header().Get(middleware.HeaderRequestID) == "" {
		t.Errorf("request id header missing")
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(log.NewNop(), Config{Logger: log.NewNop(), Port: 8080, Mode: gin.TestMode})
	if err == nil {
		t.Errorf("expected error without a chat use case")
	}

	_, err = New(log.NewNop(), Config{Logger: log.NewNop(), Mode: gin.TestMode, ChatUseCase: &stubUseCase{}})
	if err == nil {
		t.Errorf("expected error without a port")
	}
}
