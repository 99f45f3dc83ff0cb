package tts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrServerUnavailable is returned when the TTS server cannot be reached.
	ErrServerUnavailable = errors.New("tts: server unavailable")

	// ErrEmptyText is returned when there is nothing to synthesize.
	ErrEmptyText = errors.New("tts: empty text")

	// ErrBadAudio is returned when the server answers with something that
	// is not a playable WAV file.
	ErrBadAudio = errors.New("tts: malformed audio")
)

// APIError represents an error response from the TTS server.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error detail from the server body.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("tts: server error %d: %s", e.StatusCode, e.Message)
}

// IsOverloaded returns true if the server shed the request (HTTP 429/503).
func (e *APIError) IsOverloaded() bool {
	return e.StatusCode == 429 || e.StatusCode == 503
}
