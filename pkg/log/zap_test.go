package log

import (
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"bogus": zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
		"DEBUG": zapcore.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFieldsFromContext(t *testing.T) {
	ctx := context.Background()
	if f := fieldsFromContext(ctx); len(f) != 0 {
		t.Fatalf("expected no fields, got %v", f)
	}

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithSessionID(ctx, "sess-1")
	f := fieldsFromContext(ctx)
	if len(f) != 4 {
		t.Fatalf("expected 4 entries, got %v", f)
	}
	if f[1] != "req-1" || f[3] != "sess-1" {
		t.Errorf("unexpected fields: %v", f)
	}
}

func TestInit(t *testing.T) {
	l := Init(ZapConfig{Level: "error", Mode: "production", Encoding: "json"})
	if l == nil {
		t.Fatal("expected logger")
	}
	// Below the configured level, must not panic or write.
	l.Infof(context.Background(), "hidden %d", 1)
	NewNop().Info(context.Background(), "discarded")
}
