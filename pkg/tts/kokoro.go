package tts

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Kokoro implements Provider against the local Kokoro TTS server.
type Kokoro struct {
	config *Config
	client *http.Client
	logger *slog.Logger
}

// NewKokoro creates a new Kokoro TTS provider.
func NewKokoro(opts ...Option) *Kokoro {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	return &Kokoro{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: cfg.Logger.With("component", "tts.kokoro"),
	}
}

// Synthesize converts text to audio, returning the complete WAV buffer.
func (k *Kokoro) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	start := time.Now()

	payload := map[string]interface{}{
		"text":  text,
		"voice": k.config.Voice,
		"speed": k.config.Speed,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("tts: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", k.config.BaseURL+"/tts", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tts: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	latency := time.Since(start).Milliseconds()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(detail)),
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tts: read response: %w", err)
	}

	sampleRate, duration, err := wavInfo(audio)
	if err != nil {
		return nil, err
	}

	k.logger.Debug("synthesized audio",
		"chars", len(text),
		"bytes", len(audio),
		"duration_ms", duration.Milliseconds(),
		"latency_ms", latency,
		"voice", k.config.Voice,
	)

	return &AudioResult{
		Audio:      audio,
		SampleRate: sampleRate,
		Duration:   duration,
		CharCount:  len(text),
		LatencyMs:  latency,
	}, nil
}

// Health checks server connectivity with a minimal synthesis request.
func (k *Kokoro) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", k.config.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("tts: create request: %w", err)
	}
	resp, err := k.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "health check failed"}
	}
	return nil
}

const wavHeaderSize = 44

// wavInfo reads the sample rate and playback duration from a canonical
// RIFF/WAVE header.
func wavInfo(wav []byte) (int, time.Duration, error) {
	if len(wav) < wavHeaderSize ||
		!bytes.Equal(wav[0:4], []byte("RIFF")) ||
		!bytes.Equal(wav[8:12], []byte("WAVE")) {
		return 0, 0, fmt.Errorf("%w: missing RIFF header", ErrBadAudio)
	}

	sampleRate := int(binary.LittleEndian.Uint32(wav[24:28]))
	byteRate := int(binary.LittleEndian.Uint32(wav[28:32]))
	if sampleRate <= 0 || byteRate <= 0 {
		return 0, 0, fmt.Errorf("%w: zero sample rate", ErrBadAudio)
	}

	dataLen := len(wav) - wavHeaderSize
	duration := time.Duration(float64(dataLen) / float64(byteRate) * float64(time.Second))
	return sampleRate, duration, nil
}
