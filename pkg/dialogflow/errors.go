package dialogflow

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the dialogflow package.
var (
	// ErrAuthentication indicates the credential exchange failed.
	ErrAuthentication = errors.New("dialogflow: authentication failed")

	// ErrSessionExpired indicates the remote session exceeded its idle timeout.
	ErrSessionExpired = errors.New("dialogflow: session expired")

	// ErrInvalidFlow indicates the remote service does not know the flow.
	ErrInvalidFlow = errors.New("dialogflow: unknown flow")

	// ErrMalformedResponse indicates required structural fields are absent.
	ErrMalformedResponse = errors.New("dialogflow: malformed response")

	// ErrNoKeyfile indicates the service-account key was not provided.
	ErrNoKeyfile = errors.New("dialogflow: service-account keyfile required")

	// ErrNoAgent indicates the agent ID was not provided.
	ErrNoAgent = errors.New("dialogflow: agent ID required")

	// ErrCycleDrift indicates the remote current_cycle parameter disagrees
	// with the local chapter index. This is a protocol error, never silently
	// resolved.
	ErrCycleDrift = errors.New("dialogflow: remote cycle parameter drifted from local chapter")
)

// TransportError wraps a network or HTTP failure reaching the engine.
type TransportError struct {
	// Op is the operation that failed (e.g. "detectIntent").
	Op string

	// StatusCode is the HTTP status, 0 for network-level failures.
	StatusCode int

	// Cause is the underlying error, nil for bare HTTP status failures.
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dialogflow: %s transport error: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("dialogflow: %s failed with HTTP %d", e.Op, e.StatusCode)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsTransient returns true when the failure is worth a re-prompt rather
// than ending the session.
func (e *TransportError) IsTransient() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}

// IsTransient reports whether err is a transient transport failure.
func IsTransient(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.IsTransient()
	}
	return false
}

// IsSessionFatal reports whether err should end the session rather than
// re-prompt: expired sessions and unknown flows cannot be recovered by
// retrying the same exchange.
func IsSessionFatal(err error) bool {
	return errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrInvalidFlow)
}

// statusToError maps a non-2xx detectIntent status to a package error.
func statusToError(op string, status int, body string) error {
	switch status {
	case 401, 403:
		return fmt.Errorf("%w: HTTP %d: %s", ErrAuthentication, status, body)
	case 404:
		// The v3 API reports unknown flow/page targets as NOT_FOUND.
		return fmt.Errorf("%w: %s", ErrInvalidFlow, body)
	case 400:
		if containsExpiredSession(body) {
			return fmt.Errorf("%w: %s", ErrSessionExpired, body)
		}
		return &TransportError{Op: op, StatusCode: status}
	default:
		return &TransportError{Op: op, StatusCode: status}
	}
}

// containsExpiredSession detects the engine's expired-session wording inside
// an INVALID_ARGUMENT body.
func containsExpiredSession(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "session") &&
		(strings.Contains(lower, "expired") || strings.Contains(lower, "not found"))
}
