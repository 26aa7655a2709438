package middleware

import (
	"time"

	"claude-vertex-chat/pkg/log"
)

const (
	// HeaderSessionID lets API clients carry a chat session without cookies.
	HeaderSessionID = "X-Session-ID"
	// HeaderRequestID is echoed back on every response.
	HeaderRequestID = "X-Request-Id"

	// DefaultCookieName names the chat session cookie.
	DefaultCookieName = "chat_session"

	sessionIDKey = "session_id"
)

// CookieConfig controls the chat session cookie.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

type Middleware struct {
	l      log.Logger
	cookie CookieConfig
	newID  func() string
}

func New(l log.Logger, cookie CookieConfig) Middleware {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	return Middleware{
		l:      l,
		cookie: cookie,
		newID:  newUUID,
	}
}
