package nao

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/teslashibe/go-nao-story/internal/httpc"
)

// HTTPBridge implements Controller against the NAO bridge daemon's HTTP API.
// Blocking calls (animation, audio) use a generous timeout because the
// daemon holds the request open until the robot finishes.
type HTTPBridge struct {
	BaseURL string
	client  *http.Client
}

// NewHTTPBridge creates a controller for the bridge daemon on the given host.
func NewHTTPBridge(robotIP string) *HTTPBridge {
	return &HTTPBridge{
		BaseURL: fmt.Sprintf("http://%s:8400", robotIP),
		client:  httpc.NewClient(60 * time.Second),
	}
}

// NewHTTPBridgeURL creates a controller for an explicit bridge base URL.
func NewHTTPBridgeURL(baseURL string) *HTTPBridge {
	return &HTTPBridge{
		BaseURL: baseURL,
		client:  httpc.NewClient(60 * time.Second),
	}
}

func (b *HTTPBridge) PlayAnimation(ctx context.Context, path string) error {
	return b.post(ctx, "/api/animation/run", map[string]any{
		"path": path,
	})
}

func (b *HTTPBridge) FadeRGB(ctx context.Context, group string, r, g, bl, seconds float64) error {
	return b.post(ctx, "/api/leds/fade_rgb", map[string]any{
		"group":    group,
		"r":        r,
		"g":        g,
		"b":        bl,
		"duration": seconds,
	})
}

func (b *HTTPBridge) SetIntensity(ctx context.Context, group string, value float64) error {
	return b.post(ctx, "/api/leds/intensity", map[string]any{
		"group": group,
		"value": value,
	})
}

func (b *HTTPBridge) PlayAudio(ctx context.Context, sampleRate int, wav []byte) error {
	return b.post(ctx, "/api/audio/play", map[string]any{
		"sample_rate": sampleRate,
		"wav_base64":  base64.StdEncoding.EncodeToString(wav),
	})
}

func (b *HTTPBridge) Say(ctx context.Context, text string) error {
	return b.post(ctx, "/api/speech/say", map[string]any{
		"text": text,
	})
}

func (b *HTTPBridge) WakeUp(ctx context.Context) error {
	return b.post(ctx, "/api/posture/wake_up", map[string]any{})
}

func (b *HTTPBridge) Rest(ctx context.Context) error {
	return b.post(ctx, "/api/posture/rest", map[string]any{})
}

// post sends a JSON command to the bridge and maps the reply to package errors.
func (b *HTTPBridge) post(ctx context.Context, path string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal bridge payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create bridge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBridgeUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s returned %d: %s", ErrAnimationFault, path, resp.StatusCode, bytes.TrimSpace(body))
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}
