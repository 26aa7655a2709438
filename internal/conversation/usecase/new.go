package usecase

import (
	"github.com/google/uuid"

	"claude-vertex-chat/internal/attachment"
	"claude-vertex-chat/internal/conversation"
	"claude-vertex-chat/internal/session"
	"claude-vertex-chat/pkg/claude"
	pkgLog "claude-vertex-chat/pkg/log"
	"claude-vertex-chat/pkg/metrics"
)

// Config holds the model parameters and limits of the conversation use case.
type Config struct {
	MaxTokens    int
	Temperature  float64
	AssemblyMode conversation.AssemblyMode
	// MaxFiles caps attachments per message; zero means no cap.
	MaxFiles int
}

type implUseCase struct {
	l          pkgLog.Logger
	llm        claude.IClaude
	normalizer *attachment.Normalizer
	sessions   *session.Store
	metrics    *metrics.Metrics
	cfg        Config
	newID      func() string
}

// New creates a new conversation UseCase instance.
func New(
	l pkgLog.Logger,
	llm claude.IClaude,
	normalizer *attachment.Normalizer,
	sessions *session.Store,
	m *metrics.Metrics,
	cfg Config,
) *implUseCase {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = claude.DefaultMaxTokens
	}
	if !cfg.AssemblyMode.Valid() {
		cfg.AssemblyMode = conversation.AssemblyFlattened
	}
	return &implUseCase{
		l:          l,
		llm:        llm,
		normalizer: normalizer,
		sessions:   sessions,
		metrics:    m,
		cfg:        cfg,
		newID:      uuid.NewString,
	}
}
