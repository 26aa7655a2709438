package middleware

import (
	"net/http"
	"regexp"

	"claude-vertex-chat/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var validSessionID = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

func newUUID() string {
	return uuid.NewString()
}

// RequestID reuses the caller's X-Request-Id or mints one, and stores it in the
// request context so log lines carry it.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = m.newID()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Session resolves the chat session id from the X-Session-ID header or the
// session cookie. A missing or malformed id starts a new session and the
// cookie is (re)issued so the browser keeps it.
func (m Middleware) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderSessionID)
		if id == "" {
			id, _ = c.Cookie(m.cookie.Name)
		}
		if !validSessionID.MatchString(id) {
			id = m.newID()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(m.cookie.Name, id, int(m.cookie.MaxAge.Seconds()), "/", "", m.cookie.Secure, true)
		c.Header(HeaderSessionID, id)

		c.Set(sessionIDKey, id)
		c.Request = c.Request.WithContext(log.WithSessionID(c.Request.Context(), id))
		c.Next()
	}
}

// SessionID returns the session id resolved by Session, or "" when the
// middleware did not run.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
