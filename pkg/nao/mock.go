package nao

import (
	"context"
	"sync"
)

// MockCall records one controller invocation for assertions.
type MockCall struct {
	Op    string
	Group string
	Path  string
	Text  string
	RGB   [3]float64
	Value float64
}

// Mock implements Controller for tests. Each method records its call and
// delegates to the matching function field when set.
type Mock struct {
	mu    sync.Mutex
	calls []MockCall

	PlayAnimationFunc func(ctx context.Context, path string) error
	FadeRGBFunc       func(ctx context.Context, group string, r, g, b, seconds float64) error
	SetIntensityFunc  func(ctx context.Context, group string, value float64) error
	PlayAudioFunc     func(ctx context.Context, sampleRate int, wav []byte) error
	SayFunc           func(ctx context.Context, text string) error
	WakeUpFunc        func(ctx context.Context) error
	RestFunc          func(ctx context.Context) error
}

var _ Controller = (*Mock)(nil)

func (m *Mock) record(c MockCall) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.mu.Unlock()
}

// Calls returns a copy of the recorded calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsFor returns the recorded calls matching op.
func (m *Mock) CallsFor(op string) []MockCall {
	var out []MockCall
	for _, c := range m.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (m *Mock) PlayAnimation(ctx context.Context, path string) error {
	m.record(MockCall{Op: "PlayAnimation", Path: path})
	if m.PlayAnimationFunc != nil {
		return m.PlayAnimationFunc(ctx, path)
	}
	return nil
}

func (m *Mock) FadeRGB(ctx context.Context, group string, r, g, b, seconds float64) error {
	m.record(MockCall{Op: "FadeRGB", Group: group, RGB: [3]float64{r, g, b}, Value: seconds})
	if m.FadeRGBFunc != nil {
		return m.FadeRGBFunc(ctx, group, r, g, b, seconds)
	}
	return nil
}

func (m *Mock) SetIntensity(ctx context.Context, group string, value float64) error {
	m.record(MockCall{Op: "SetIntensity", Group: group, Value: value})
	if m.SetIntensityFunc != nil {
		return m.SetIntensityFunc(ctx, group, value)
	}
	return nil
}

func (m *Mock) PlayAudio(ctx context.Context, sampleRate int, wav []byte) error {
	m.record(MockCall{Op: "PlayAudio", Value: float64(len(wav))})
	if m.PlayAudioFunc != nil {
		return m.PlayAudioFunc(ctx, sampleRate, wav)
	}
	return nil
}

func (m *Mock) Say(ctx context.Context, text string) error {
	m.record(MockCall{Op: "Say", Text: text})
	if m.SayFunc != nil {
		return m.SayFunc(ctx, text)
	}
	return nil
}

func (m *Mock) WakeUp(ctx context.Context) error {
	m.record(MockCall{Op: "WakeUp"})
	if m.WakeUpFunc != nil {
		return m.WakeUpFunc(ctx)
	}
	return nil
}

func (m *Mock) Rest(ctx context.Context) error {
	m.record(MockCall{Op: "Rest"})
	if m.RestFunc != nil {
		return m.RestFunc(ctx)
	}
	return nil
}
