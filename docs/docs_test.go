package docs

import (
	"encoding/json"
	"strings"
	"testing"
)

type swaggerDoc struct {
	Paths map[string]map[string]struct {
		Description string `json:"description"`
	} `json:"paths"`
}

func readDoc(t *testing.T) swaggerDoc {
	t.Helper()
	var doc swaggerDoc
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("swagger document is not valid JSON: %v", err)
	}
	return doc
}

func TestChatRoutesDocumented(t *testing.T) {
	doc := readDoc(t)

	want := map[string][]string{
		"/api/v1/chat":                     {"get", "delete"},
		"/api/v1/chat/system-prompt":       {"put"},
		"/api/v1/chat/attachments/preview": {"post"},
		"/api/v1/chat/messages":            {"post"},
		"/api/v1/chat/submit":              {"post"},
		"/api/v1/chat/send":                {"post"},
		"/api/v1/chat/continue":            {"post"},
	}
	for path, methods := range want {
		for _, m := range methods {
			if _, ok := doc.Paths[path][m]; !ok {
				t.Errorf("%s %s missing from swagger document", strings.ToUpper(m), path)
			}
		}
	}
}

func TestClearDescription(t *testing.T) {
	desc := readDoc(t).Paths["/api/v1/chat"]["delete"].Description

	if !strings.Contains(desc, "the system prompt") {
		t.Errorf("clear description should say the system prompt is dropped: %q", desc)
	}
	if strings.Contains(desc, "is kept") {
		t.Errorf("clear description claims something survives a clear: %q", desc)
	}
}
