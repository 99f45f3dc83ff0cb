package performance

import (
	"context"
	"fmt"

	"github.com/teslashibe/go-nao-story/pkg/expression"
	"github.com/teslashibe/go-nao-story/pkg/nao"
	"github.com/teslashibe/go-nao-story/pkg/tts"
)

// GestureChannel plays plan animations on the robot, resolving motion
// tags from directives to stock animation paths first.
type GestureChannel struct {
	Ctrl nao.Controller
}

func (g *GestureChannel) Play(ctx context.Context, animation string) error {
	return g.Ctrl.PlayAnimation(ctx, expression.AnimationPath(animation))
}

// LEDChannel renders plan LED profiles through the eye animator.
type LEDChannel struct {
	Eyes *nao.EyeAnimator
}

func (l *LEDChannel) Run(ctx context.Context, profile expression.LEDProfile) error {
	return l.Eyes.Run(ctx, profile)
}

// SpeechChannel synthesizes narration and streams it to the robot
// speaker. Speak returns once the robot reports playback complete.
type SpeechChannel struct {
	TTS  tts.Provider
	Ctrl nao.Controller
}

func (s *SpeechChannel) Speak(ctx context.Context, text string) error {
	result, err := s.TTS.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("synthesize narration: %w", err)
	}
	if err := s.Ctrl.PlayAudio(ctx, result.SampleRate, result.Audio); err != nil {
		return fmt.Errorf("play narration: %w", err)
	}
	return nil
}

var (
	_ GesturePlayer = (*GestureChannel)(nil)
	_ LEDSequencer  = (*LEDChannel)(nil)
	_ SpeechPlayer  = (*SpeechChannel)(nil)
)
