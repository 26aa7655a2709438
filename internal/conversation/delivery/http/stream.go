package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// eventStream writes Server-Sent Events. Headers are only sent with the first
// event so errors raised before any output can still use a JSON response.
type eventStream struct {
	c       *gin.Context
	started bool
}

func newEventStream(c *gin.Context) *eventStream {
	return &eventStream{c: c}
}

func (s *eventStream) start() {
	if s.started {
		return
	}
	s.started = true

	hdr := s.c.Writer.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")
	s.c.Status(http.StatusOK)
}

func (s *eventStream) send(event string, data any) {
	s.start()
	s.c.SSEvent(event, data)
	s.c.Writer.Flush()
}

// Started reports whether anything was written.
func (s *eventStream) Started() bool {
	return s.started
}
