package httpserver

import (
	"context"

	chatHTTP "claude-vertex-chat/internal/conversation/delivery/http"
	"claude-vertex-chat/internal/middleware"

	"github.com/gin-gonic/gin"
)

// setupChatDomain registers the chat routes under /api/v1/chat.
func (srv HTTPServer) setupChatDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := chatHTTP.New(srv.l, srv.chatUC, srv.chatConfig)
	chatHTTP.RegisterRoutes(api.Group("/chat"), h, mw)

	srv.l.Infof(ctx, "Chat domain registered")
	return nil
}
