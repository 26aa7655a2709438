package http

import (
	"claude-vertex-chat/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
// Every route runs behind the Session middleware.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	chat := rg.Group("", mw.Session())
	{
		chat.GET("", h.History)
		chat.DELETE("", h.Clear)
		chat.PUT("/system-prompt", h.SetSystemPrompt)
		chat.POST("/attachments/preview", h.Preview)
		chat.POST("/messages", h.Send)
		chat.POST("/submit", h.Submit)
		chat.POST("/send", h.SendPending)
		chat.POST("/continue", h.Continue)
	}
}
