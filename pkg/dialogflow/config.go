package dialogflow

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/teslashibe/go-nao-story/internal/httpc"
)

// Config holds the Dialogflow CX client configuration.
// Use functional options (WithXxx) to set optional values.
type Config struct {
	// KeyfileJSON is the Google service-account key used for the bearer
	// token exchange.
	KeyfileJSON []byte

	// AgentID is the Dialogflow CX agent UUID.
	AgentID string

	// Location is the agent region, e.g. "europe-west4".
	Location string

	// LanguageCode for detectIntent queries.
	LanguageCode string

	// Timeout bounds each remote call. There is no automatic retry at this
	// layer; retry policy belongs to the caller.
	Timeout time.Duration

	// BaseURL overrides the regional endpoint (tests).
	BaseURL string

	// HTTPClient overrides the transport (tests).
	HTTPClient *http.Client

	// TokenSource overrides the keyfile-derived token source (tests).
	TokenSource oauth2.TokenSource

	// Logger is the structured logger for the client.
	Logger *slog.Logger
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithLanguage sets the query language code.
func WithLanguage(code string) Option {
	return func(c *Config) {
		c.LanguageCode = code
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithBaseURL overrides the regional API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = hc
	}
}

// WithTokenSource overrides the keyfile-derived token source.
// Intended for tests against a local fake endpoint.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Config) {
		c.TokenSource = ts
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// defaultConfig returns sensible defaults for the client.
func defaultConfig() Config {
	return Config{
		LanguageCode: "en",
		Timeout:      10 * time.Second,
		HTTPClient:   httpc.Client,
		Logger:       slog.Default(),
	}
}

// validate checks that required configuration is present.
func (c *Config) validate() error {
	if len(c.KeyfileJSON) == 0 {
		return ErrNoKeyfile
	}
	if c.AgentID == "" {
		return ErrNoAgent
	}
	return nil
}
