package tts

import (
	"context"
	"sync"
	"time"
)

// Mock implements Provider for tests. When SynthesizeFunc is unset it
// returns a canned result with a duration proportional to the text length.
type Mock struct {
	mu    sync.Mutex
	texts []string

	SynthesizeFunc func(ctx context.Context, text string) (*AudioResult, error)
	HealthFunc     func(ctx context.Context) error
}

var _ Provider = (*Mock)(nil)

func (m *Mock) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()

	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text)
	}
	return &AudioResult{
		Audio:      []byte("RIFF-mock"),
		SampleRate: 24000,
		Duration:   time.Duration(len(text)) * 50 * time.Millisecond,
		CharCount:  len(text),
	}, nil
}

func (m *Mock) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Texts returns the texts synthesized so far.
func (m *Mock) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.texts))
	copy(out, m.texts)
	return out
}
