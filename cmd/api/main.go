package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"claude-vertex-chat/config"
	_ "claude-vertex-chat/docs" // Swagger docs
	"claude-vertex-chat/internal/attachment"
	"claude-vertex-chat/internal/conversation"
	chatHTTP "claude-vertex-chat/internal/conversation/delivery/http"
	"claude-vertex-chat/internal/conversation/usecase"
	"claude-vertex-chat/internal/httpserver"
	"claude-vertex-chat/internal/middleware"
	"claude-vertex-chat/internal/model"
	"claude-vertex-chat/internal/session"
	"claude-vertex-chat/pkg/claude"
	"claude-vertex-chat/pkg/log"
	"claude-vertex-chat/pkg/metrics"
	"claude-vertex-chat/pkg/vertexauth"

	"github.com/prometheus/client_golang/prometheus"
)

// @title       Chat with Claude API
// @description Chat back-end for Claude on Vertex AI with file attachments and streamed responses.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof(ctx, "Starting %s...", cfg.App.Title)
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Credentials
	creds, err := vertexauth.New(ctx, vertexauth.Config{CredentialsPath: cfg.Vertex.CredentialsPath})
	if err != nil {
		logger.Error(ctx, "Failed to initialize Google Cloud credentials: ", err)
		return
	}

	projectID := cfg.Vertex.ProjectID
	if projectID == "" {
		projectID = creds.ProjectID()
	}
	if projectID == "" {
		logger.Error(ctx, "No Google Cloud project configured: set vertex.project_id or GOOGLE_CLOUD_PROJECT")
		return
	}

	httpClient, err := creds.HTTPClient(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to build authenticated HTTP client: ", err)
		return
	}

	// 4. Model client
	llm, err := claude.New(claude.Config{
		ProjectID:  projectID,
		Region:     cfg.Vertex.Location,
		Model:      cfg.Claude.Model,
		BaseURL:    cfg.Claude.BaseURL,
		Timeout:    cfg.Claude.Timeout,
		HTTPClient: httpClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize Claude client: ", err)
		return
	}
	logger.Infof(ctx, "Model: %s (project=%s, region=%s)", llm.Model(), projectID, cfg.Vertex.Location)

	// 5. Chat domain
	normalizer := attachment.New(attachment.Config{MaxFileSize: cfg.App.MaxFileSize})
	sessions := session.NewStore(logger, session.Config{
		Expiry:      cfg.Session.Expiry,
		MaxSessions: cfg.Session.MaxSessions,
	})
	m := metrics.New(prometheus.DefaultRegisterer)

	chatUC := usecase.New(logger, llm, normalizer, sessions, m, usecase.Config{
		MaxTokens:    cfg.Claude.MaxTokens,
		Temperature:  cfg.Claude.Temperature,
		AssemblyMode: conversation.AssemblyMode(cfg.Claude.AssemblyMode),
		MaxFiles:     cfg.App.MaxFiles,
	})

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatUseCase: chatUC,
		Chat: chatHTTP.Config{
			MaxFileSize: cfg.App.MaxFileSize,
			MaxFiles:    cfg.App.MaxFiles,
		},
		Cookie: middleware.CookieConfig{
			Name:   cfg.Session.CookieName,
			MaxAge: cfg.Session.Expiry,
			Secure: cfg.Environment.Name == string(model.EnvironmentProduction),
		},
		Gatherer: prometheus.DefaultGatherer,
		Ready: func() error {
			if _, err := creds.TokenSource().Token(); err != nil {
				return errors.Join(vertexauth.ErrCredentialInit, err)
			}
			return nil
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
