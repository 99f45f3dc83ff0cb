package performance

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teslashibe/go-nao-story/pkg/expression"
)

// Defaults for plan timing.
const (
	// DefaultSpeechLeadIn is how long gesture and LEDs run before the
	// voice starts.
	DefaultSpeechLeadIn = 300 * time.Millisecond

	// DefaultFallbackDuration bounds a plan when audio fails: the visual
	// channels run this long from plan start, then the plan ends degraded.
	DefaultFallbackDuration = 4 * time.Second
)

// Synchronizer executes plans one at a time. It is safe for concurrent
// use; overlapping Perform calls serialize on an internal gate.
type Synchronizer struct {
	gesture GesturePlayer
	leds    LEDSequencer
	speech  SpeechPlayer

	leadIn   time.Duration
	fallback time.Duration
	logger   *slog.Logger

	mu sync.Mutex
}

// SyncOption configures a Synchronizer.
type SyncOption func(*Synchronizer)

// WithSpeechLeadIn sets the delay between visual start and speech start.
func WithSpeechLeadIn(d time.Duration) SyncOption {
	return func(s *Synchronizer) {
		s.leadIn = d
	}
}

// WithFallbackDuration sets the plan length used when audio fails.
func WithFallbackDuration(d time.Duration) SyncOption {
	return func(s *Synchronizer) {
		s.fallback = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) SyncOption {
	return func(s *Synchronizer) {
		s.logger = logger
	}
}

// NewSynchronizer creates a synchronizer over the three output channels.
func NewSynchronizer(gesture GesturePlayer, leds LEDSequencer, speech SpeechPlayer, opts ...SyncOption) *Synchronizer {
	s := &Synchronizer{
		gesture:  gesture,
		leds:     leds,
		speech:   speech,
		leadIn:   DefaultSpeechLeadIn,
		fallback: DefaultFallbackDuration,
		logger:   slog.Default().With("component", "performance"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Perform executes one plan. It returns OutcomeCompleted when audio played
// through, OutcomeDegraded when audio failed and the fallback window ran
// instead, and OutcomeAborted with ctx.Err() when the caller canceled.
// Gesture and LED faults never fail a plan; they are logged and the
// remaining channels carry it.
func (s *Synchronizer) Perform(ctx context.Context, plan expression.Plan) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	planCtx, stop := context.WithCancel(ctx)
	defer stop()

	var wg errgroup.Group

	wg.Go(func() error {
		if err := s.gesture.Play(planCtx, plan.Animation); err != nil && planCtx.Err() == nil {
			s.logger.Warn("gesture channel fault", "animation", plan.Animation, "error", err)
		}
		return nil
	})
	wg.Go(func() error {
		if err := s.leds.Run(planCtx, plan.LED); err != nil && planCtx.Err() == nil {
			s.logger.Warn("led channel fault", "profile", plan.LED.Name, "error", err)
		}
		return nil
	})

	outcome := OutcomeCompleted
	speechErr := s.speakAfterLeadIn(planCtx, plan.Text)
	switch {
	case ctx.Err() != nil:
		outcome = OutcomeAborted
	case speechErr != nil:
		s.logger.Warn("audio channel fault, running visual fallback",
			"error", speechErr,
			"fallback", s.fallback,
		)
		outcome = OutcomeDegraded
		if err := s.waitUntil(ctx, start.Add(s.fallback)); err != nil {
			outcome = OutcomeAborted
		}
	}

	// Audio completion (or the fallback deadline) ends the plan; reel in
	// whatever the visual channels still have running.
	stop()
	wg.Wait()

	s.logger.Info("plan finished",
		"outcome", outcome,
		"category", plan.Category,
		"animation", plan.Animation,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if outcome == OutcomeAborted {
		return outcome, ctx.Err()
	}
	return outcome, nil
}

// speakAfterLeadIn waits out the speech lead-in, then plays narration.
func (s *Synchronizer) speakAfterLeadIn(ctx context.Context, text string) error {
	if err := s.waitUntil(ctx, time.Now().Add(s.leadIn)); err != nil {
		return err
	}
	return s.speech.Speak(ctx, text)
}

// waitUntil sleeps until the deadline or ctx cancellation.
func (s *Synchronizer) waitUntil(ctx context.Context, deadline time.Time) error {
	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
