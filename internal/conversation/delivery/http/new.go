package http

import (
	"claude-vertex-chat/internal/attachment"
	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/pkg/log"
)

// Config bounds what a single request may upload.
type Config struct {
	MaxFileSize int64
	MaxFiles    int
}

type handler struct {
	l   log.Logger
	uc  conversation.UseCase
	cfg Config
}

// New creates a new HTTP handler for the chat domain.
func New(l log.Logger, uc conversation.UseCase, cfg Config) *handler {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = attachment.DefaultMaxFileSize
	}
	return &handler{
		l:   l,
		uc:  uc,
		cfg: cfg,
	}
}
