package nao

import (
	"context"
	"fmt"
	"time"

	"github.com/teslashibe/go-nao-story/pkg/expression"
)

// EyeAnimator renders LED profiles on the robot's face and ear LEDs.
//
// A profile plays as: intensity on, fade to peak, pulse base→peak for the
// configured cycles, settle back on peak. The loop checks the context
// between fades so a performance abort stops the eyes within one half
// cycle instead of running the sequence out.
type EyeAnimator struct {
	ctrl Controller
}

// NewEyeAnimator creates an animator over the given controller.
func NewEyeAnimator(ctrl Controller) *EyeAnimator {
	return &EyeAnimator{ctrl: ctrl}
}

// Run plays a profile to completion or until ctx is canceled. The steady
// (peak) color is left on the eyes; call Reset to return to idle white.
func (a *EyeAnimator) Run(ctx context.Context, p expression.LEDProfile) error {
	if err := a.ctrl.SetIntensity(ctx, GroupFace, 1.0); err != nil {
		return fmt.Errorf("led profile %q: %w", p.Name, err)
	}
	if err := a.setEars(ctx, p.EarIntensity); err != nil {
		return fmt.Errorf("led profile %q: %w", p.Name, err)
	}
	if err := a.fade(ctx, p.Peak, 200*time.Millisecond); err != nil {
		return fmt.Errorf("led profile %q: %w", p.Name, err)
	}

	half := p.Period / 2
	if half < 50*time.Millisecond {
		half = 50 * time.Millisecond
	}
	for i := 0; i < p.Cycles; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.fade(ctx, p.Base, half); err != nil {
			return fmt.Errorf("led profile %q: %w", p.Name, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.fade(ctx, p.Peak, half); err != nil {
			return fmt.Errorf("led profile %q: %w", p.Name, err)
		}
	}

	return a.fade(ctx, p.Peak, 0)
}

// Reset returns the eyes to idle white and switches the ears off.
func (a *EyeAnimator) Reset(ctx context.Context) error {
	if err := a.fade(ctx, expression.RGB{1.0, 1.0, 1.0}, 0); err != nil {
		return err
	}
	return a.setEars(ctx, 0)
}

// fade moves the face LEDs to a color and waits out the fade duration so
// pulse timing is honored even though the bridge call returns immediately.
func (a *EyeAnimator) fade(ctx context.Context, rgb expression.RGB, d time.Duration) error {
	if err := a.ctrl.FadeRGB(ctx, GroupFace, rgb[0], rgb[1], rgb[2], d.Seconds()); err != nil {
		return err
	}
	if d <= 0 {
		return nil
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

func (a *EyeAnimator) setEars(ctx context.Context, intensity float64) error {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}
	for _, group := range []string{GroupLeftEar, GroupRightEar} {
		if err := a.ctrl.SetIntensity(ctx, group, intensity); err != nil {
			return err
		}
	}
	return nil
}
