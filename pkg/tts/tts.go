// Package tts synthesizes narration audio through the local Kokoro TTS
// server. The server takes a text/voice/speed payload and answers with a
// complete WAV file, which the performance layer streams to the robot.
package tts

import (
	"context"
	"time"
)

// Provider defines the TTS interface. Kokoro is the production
// implementation; Mock serves tests.
type Provider interface {
	// Synthesize converts text to audio, returning the complete WAV buffer.
	Synthesize(ctx context.Context, text string) (*AudioResult, error)

	// Health checks server connectivity.
	Health(ctx context.Context) error
}

// AudioResult represents a complete audio synthesis result.
type AudioResult struct {
	// Audio contains the WAV file bytes, header included.
	Audio []byte

	// SampleRate in Hz, parsed from the WAV header.
	SampleRate int

	// Duration is the playback duration computed from the WAV header.
	Duration time.Duration

	// CharCount is the number of characters synthesized.
	CharCount int

	// LatencyMs is the synthesis round-trip time in milliseconds.
	LatencyMs int64
}
