package story

import (
	"errors"
	"fmt"
)

// Sentinel errors for the story package.
var (
	// ErrStoryComplete is returned for any input after the machine reached
	// its terminal phase. Surfaced to the caller for logging; the user-facing
	// behavior is to let the engine's own closing dialogue play out.
	ErrStoryComplete = errors.New("story: story already complete")

	// ErrWrongPhase indicates an operation arrived in a phase that does not
	// accept it.
	ErrWrongPhase = errors.New("story: operation not valid in current phase")

	// ErrEmptyWord indicates a blank word offer.
	ErrEmptyWord = errors.New("story: empty word")
)

// PhaseError wraps ErrWrongPhase with the offending transition.
func phaseError(op string, phase Phase) error {
	return fmt.Errorf("%w: %s during %s", ErrWrongPhase, op, phase)
}
