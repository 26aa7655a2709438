package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Model access
	Vertex VertexConfig
	Claude ClaudeConfig

	// Chat behaviour
	App     AppConfig
	Session SessionConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// VertexConfig locates the Google Cloud project hosting the model.
// An empty ProjectID falls back to the project of the resolved credentials.
type VertexConfig struct {
	ProjectID       string
	Location        string
	CredentialsPath string
}

type ClaudeConfig struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	Timeout      time.Duration
	AssemblyMode string
	BaseURL      string
}

type AppConfig struct {
	Title       string
	MaxFileSize int64
	MaxFiles    int
}

type SessionConfig struct {
	Expiry      time.Duration
	MaxSessions int
	CookieName  string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/.
// A .env file in the working directory is loaded into the process environment first.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Vertex AI
	cfg.Vertex.ProjectID = viper.GetString("vertex.project_id")
	cfg.Vertex.Location = viper.GetString("vertex.location")
	cfg.Vertex.CredentialsPath = viper.GetString("vertex.credentials_path")
	if project := viper.GetString("google_cloud_project"); project != "" && cfg.Vertex.ProjectID == "" {
		cfg.Vertex.ProjectID = project
	}
	if creds := viper.GetString("google_application_credentials"); creds != "" && cfg.Vertex.CredentialsPath == "" {
		cfg.Vertex.CredentialsPath = creds
	}

	// Claude
	cfg.Claude.Model = viper.GetString("claude.model")
	cfg.Claude.MaxTokens = viper.GetInt("claude.max_tokens")
	cfg.Claude.Temperature = viper.GetFloat64("claude.temperature")
	cfg.Claude.Timeout = viper.GetDuration("claude.timeout")
	cfg.Claude.AssemblyMode = viper.GetString("claude.assembly_mode")
	cfg.Claude.BaseURL = viper.GetString("claude.base_url")

	// Application
	cfg.App.Title = viper.GetString("app.title")
	cfg.App.MaxFileSize = viper.GetInt64("app.max_file_size")
	cfg.App.MaxFiles = viper.GetInt("app.max_files")

	// Sessions
	cfg.Session.Expiry = viper.GetDuration("session.expiry")
	cfg.Session.MaxSessions = viper.GetInt("session.max_sessions")
	cfg.Session.CookieName = viper.GetString("session.cookie_name")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Vertex.Location == "" {
		return fmt.Errorf("vertex.location is required")
	}
	if cfg.Claude.Model == "" {
		return fmt.Errorf("claude.model is required")
	}
	if cfg.Claude.MaxTokens <= 0 {
		return fmt.Errorf("claude.max_tokens must be positive, got %d", cfg.Claude.MaxTokens)
	}
	if cfg.Claude.Temperature < 0 || cfg.Claude.Temperature > 1 {
		return fmt.Errorf("claude.temperature must be within [0, 1], got %v", cfg.Claude.Temperature)
	}
	switch cfg.Claude.AssemblyMode {
	case "flattened", "structured":
	default:
		return fmt.Errorf("claude.assembly_mode must be flattened or structured, got %q", cfg.Claude.AssemblyMode)
	}
	if cfg.App.MaxFileSize <= 0 {
		return fmt.Errorf("app.max_file_size must be positive")
	}
	if cfg.Session.Expiry <= 0 {
		return fmt.Errorf("session.expiry must be positive")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("vertex.location", "us-east5")

	viper.SetDefault("claude.model", "claude-3-5-sonnet@20240620")
	viper.SetDefault("claude.max_tokens", 8192)
	viper.SetDefault("claude.temperature", 0.7)
	viper.SetDefault("claude.timeout", "5m")
	viper.SetDefault("claude.assembly_mode", "flattened")

	viper.SetDefault("app.title", "Chat with Claude")
	viper.SetDefault("app.max_file_size", 5*1024*1024)
	viper.SetDefault("app.max_files", 10)

	viper.SetDefault("session.expiry", "1h")
	viper.SetDefault("session.max_sessions", 10000)
	viper.SetDefault("session.cookie_name", "chat_session")
}
