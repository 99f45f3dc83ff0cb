// Package performance executes resolved expression plans as synchronized
// speech, gesture, and LED output.
//
// A plan runs on three channels at once: gesture and LEDs start together
// at offset zero, speech starts after a short lead-in so the body is
// already moving when the voice comes in. Audio completion ends the plan;
// gesture and LED work still in flight is cut off at that point. When
// audio fails the visual channels keep going for a nominal fallback
// window so the robot never freezes mid-story.
package performance

import (
	"context"

	"github.com/teslashibe/go-nao-story/pkg/expression"
)

// GesturePlayer plays one animation, blocking until the robot finishes.
type GesturePlayer interface {
	Play(ctx context.Context, animation string) error
}

// LEDSequencer renders one LED profile, blocking until the sequence ends
// or ctx is canceled.
type LEDSequencer interface {
	Run(ctx context.Context, profile expression.LEDProfile) error
}

// SpeechPlayer synthesizes and plays narration, blocking until audible
// playback completes.
type SpeechPlayer interface {
	Speak(ctx context.Context, text string) error
}

// Outcome classifies how a plan execution ended.
type Outcome int

const (
	// OutcomeCompleted means audio played to the end.
	OutcomeCompleted Outcome = iota

	// OutcomeDegraded means audio failed and the visual channels ran the
	// fallback window instead.
	OutcomeDegraded

	// OutcomeAborted means the caller canceled the plan mid-flight.
	OutcomeAborted
)

// String returns the outcome name for logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
