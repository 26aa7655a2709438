// Package vertexauth resolves Google Cloud credentials for Vertex AI and builds the
// authenticated HTTP client used by pkg/claude.
package vertexauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"
)

// CloudPlatformScope grants access to Vertex AI.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

var ErrCredentialInit = errors.New("vertexauth: failed to initialize Google Cloud credentials")

// Config selects where credentials come from. With no path or JSON, Application
// Default Credentials are used.
type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
}

// Provider holds a refreshing token source for one set of credentials.
type Provider struct {
	projectID string
	ts        oauth2.TokenSource
}

// New resolves credentials and fetches a first token so that bad credentials fail at
// startup rather than on the first chat turn.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	creds, err := loadCredentials(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentialInit, err)
	}
	return NewFromTokenSource(creds.ProjectID, creds.TokenSource)
}

// NewFromTokenSource wraps an existing token source. The token source is cached and
// refreshed when the current token expires.
func NewFromTokenSource(projectID string, ts oauth2.TokenSource) (*Provider, error) {
	if ts == nil {
		return nil, fmt.Errorf("%w: no token source", ErrCredentialInit)
	}
	ts = oauth2.ReuseTokenSource(nil, ts)
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentialInit, err)
	}
	return &Provider{projectID: projectID, ts: ts}, nil
}

// ProjectID returns the project embedded in the credentials, if any.
func (p *Provider) ProjectID() string {
	return p.projectID
}

// TokenSource returns the refreshing token source.
func (p *Provider) TokenSource() oauth2.TokenSource {
	return p.ts
}

// HTTPClient returns a client that authorizes every request with the current token.
func (p *Provider) HTTPClient(ctx context.Context) (*http.Client, error) {
	c, _, err := htransport.NewClient(ctx, option.WithTokenSource(p.ts))
	if err != nil {
		return nil, fmt.Errorf("vertexauth: failed to create HTTP client: %w", err)
	}
	return c, nil
}

func loadCredentials(ctx context.Context, cfg Config) (*google.Credentials, error) {
	data := cfg.CredentialsJSON
	if len(data) == 0 && cfg.CredentialsPath != "" {
		b, err := os.ReadFile(cfg.CredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		data = b
	}

	if len(data) > 0 {
		creds, err := google.CredentialsFromJSON(ctx, data, CloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials: %w", err)
		}
		return creds, nil
	}

	creds, err := google.FindDefaultCredentials(ctx, CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}
	return creds, nil
}
