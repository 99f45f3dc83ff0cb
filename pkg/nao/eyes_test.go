package nao

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/teslashibe/go-nao-story/pkg/expression"
)

func TestEyeAnimatorRunsFullProfile(t *testing.T) {
	mock := &Mock{}
	a := NewEyeAnimator(mock)

	profile := expression.LEDProfile{
		Name:         "anger",
		Base:         expression.RGB{0.5, 0, 0},
		Peak:         expression.RGB{1.0, 0, 0},
		Cycles:       2,
		Period:       200 * time.Millisecond,
		EarIntensity: 1.0,
	}

	if err := a.Run(context.Background(), profile); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Face intensity plus both ear groups.
	intensity := mock.CallsFor("SetIntensity")
	if len(intensity) != 3 {
		t.Fatalf("got %d SetIntensity calls, want 3", len(intensity))
	}
	for _, c := range intensity[1:] {
		if c.Value != 1.0 {
			t.Errorf("ear intensity = %v, want 1.0", c.Value)
		}
	}

	// Initial fade to peak, 2 cycles of base+peak, final settle on peak.
	fades := mock.CallsFor("FadeRGB")
	if len(fades) != 6 {
		t.Fatalf("got %d FadeRGB calls, want 6", len(fades))
	}
	if fades[0].RGB != [3]float64{1.0, 0, 0} {
		t.Errorf("first fade = %v, want peak", fades[0].RGB)
	}
	if fades[1].RGB != [3]float64{0.5, 0, 0} {
		t.Errorf("first pulse fade = %v, want base", fades[1].RGB)
	}
	if last := fades[len(fades)-1]; last.RGB != [3]float64{1.0, 0, 0} {
		t.Errorf("settle fade = %v, want peak", last.RGB)
	}
}

func TestEyeAnimatorStopsMidPulse(t *testing.T) {
	mock := &Mock{}
	a := NewEyeAnimator(mock)

	ctx, cancel := context.WithCancel(context.Background())
	fadeCount := 0
	mock.FadeRGBFunc = func(context.Context, string, float64, float64, float64, float64) error {
		fadeCount++
		if fadeCount == 2 {
			cancel()
		}
		return nil
	}

	profile := expression.LEDProfile{
		Name:   "fear",
		Base:   expression.RGB{0.2, 0, 0.3},
		Peak:   expression.RGB{0.5, 0.1, 0.6},
		Cycles: 10,
		Period: 100 * time.Millisecond,
	}

	err := a.Run(ctx, profile)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if fadeCount >= 6 {
		t.Errorf("animator kept fading after cancel: %d fades", fadeCount)
	}
}

func TestEyeAnimatorSteadyProfileSkipsPulse(t *testing.T) {
	mock := &Mock{}
	a := NewEyeAnimator(mock)

	profile := expression.LEDProfile{
		Name: "neutral",
		Base: expression.RGB{0.8, 0.8, 0.8},
		Peak: expression.RGB{0.8, 0.8, 0.8},
	}

	if err := a.Run(context.Background(), profile); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Fade to peak and the settle fade only.
	if fades := mock.CallsFor("FadeRGB"); len(fades) != 2 {
		t.Fatalf("got %d FadeRGB calls, want 2", len(fades))
	}
}

func TestEyeAnimatorReset(t *testing.T) {
	mock := &Mock{}
	a := NewEyeAnimator(mock)

	if err := a.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	fades := mock.CallsFor("FadeRGB")
	if len(fades) != 1 || fades[0].RGB != [3]float64{1.0, 1.0, 1.0} {
		t.Fatalf("Reset fades = %+v, want single white fade", fades)
	}
	ears := mock.CallsFor("SetIntensity")
	if len(ears) != 2 {
		t.Fatalf("got %d SetIntensity calls, want 2", len(ears))
	}
	for _, c := range ears {
		if c.Value != 0 {
			t.Errorf("ear intensity after reset = %v, want 0", c.Value)
		}
	}
}

func TestEyeAnimatorSurfacesControllerError(t *testing.T) {
	mock := &Mock{}
	mock.SetIntensityFunc = func(context.Context, string, float64) error {
		return ErrBridgeUnavailable
	}
	a := NewEyeAnimator(mock)

	err := a.Run(context.Background(), expression.ProfileForCategory(expression.CategoryNeutral))
	if !errors.Is(err, ErrBridgeUnavailable) {
		t.Fatalf("Run error = %v, want ErrBridgeUnavailable", err)
	}
}
