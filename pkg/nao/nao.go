// Package nao talks to the NAO robot through its bridge daemon.
//
// The bridge exposes the robot's animation, LED, speech, and posture
// primitives over a small HTTP API. This package defines the Controller
// surface the rest of the system uses, the HTTP implementation, and the
// eye-LED animator that renders expression profiles as pulse sequences.
package nao

import (
	"context"
	"errors"
)

// Sentinel errors for the nao package.
var (
	// ErrBridgeUnavailable indicates the bridge daemon cannot be reached.
	ErrBridgeUnavailable = errors.New("nao: bridge unavailable")

	// ErrAnimationFault indicates the robot reported a fault during playback.
	ErrAnimationFault = errors.New("nao: animation fault")
)

// LED group names on the robot.
const (
	GroupFace     = "FaceLeds"
	GroupLeftEar  = "LeftEarLeds"
	GroupRightEar = "RightEarLeds"
)

// Controller is the robot actuation surface. HTTPBridge is the production
// implementation; Mock serves tests and dry runs.
type Controller interface {
	// PlayAnimation runs a stock animation by path, blocking until the
	// robot reports completion or fault.
	PlayAnimation(ctx context.Context, path string) error

	// FadeRGB fades an LED group to a color over the given duration
	// (seconds, 0 for instant).
	FadeRGB(ctx context.Context, group string, r, g, b, seconds float64) error

	// SetIntensity sets an LED group brightness in [0,1].
	SetIntensity(ctx context.Context, group string, value float64) error

	// PlayAudio streams a WAV buffer to the robot speaker, blocking until
	// playback ends.
	PlayAudio(ctx context.Context, sampleRate int, wav []byte) error

	// Say speaks text with the robot's built-in voice (conversational
	// filler turns, not performance narration).
	Say(ctx context.Context, text string) error

	// WakeUp stiffens the joints and stands the robot up.
	WakeUp(ctx context.Context) error

	// Rest returns the robot to a safe crouch.
	Rest(ctx context.Context) error
}
