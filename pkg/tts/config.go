package tts

import (
	"log/slog"
	"time"
)

// Defaults matching the Kokoro server deployment.
const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultVoice   = "af_bella"
	DefaultSpeed   = 1.0
	DefaultTimeout = 30 * time.Second
)

// Config holds TTS provider configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	BaseURL string
	Voice   string
	Speed   float64
	Timeout time.Duration
	Logger  *slog.Logger
}

// Option is a functional option for configuring TTS providers.
type Option func(*Config)

// DefaultConfig returns a Config with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Voice:   DefaultVoice,
		Speed:   DefaultSpeed,
		Timeout: DefaultTimeout,
		Logger:  slog.Default(),
	}
}

// Apply applies the options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithBaseURL overrides the default server base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithVoice sets the voice name.
func WithVoice(voice string) Option {
	return func(c *Config) {
		c.Voice = voice
	}
}

// WithSpeed sets the speech rate multiplier.
func WithSpeed(speed float64) Option {
	return func(c *Config) {
		c.Speed = speed
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
