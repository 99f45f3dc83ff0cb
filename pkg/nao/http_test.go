package nao

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPBridgeSendsCommands(t *testing.T) {
	type received struct {
		path    string
		payload map[string]any
	}
	var got []received

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		got = append(got, received{path: r.URL.Path, payload: payload})
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := NewHTTPBridgeURL(srv.URL)
	ctx := context.Background()

	if err := b.PlayAnimation(ctx, "animations/Stand/Gestures/Hey_1"); err != nil {
		t.Fatalf("PlayAnimation: %v", err)
	}
	if err := b.FadeRGB(ctx, GroupFace, 1, 0, 0, 0.3); err != nil {
		t.Fatalf("FadeRGB: %v", err)
	}
	if err := b.Say(ctx, "hello"); err != nil {
		t.Fatalf("Say: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("got %d requests, want 3", len(got))
	}
	if got[0].path != "/api/animation/run" {
		t.Errorf("animation path = %q", got[0].path)
	}
	if got[0].payload["path"] != "animations/Stand/Gestures/Hey_1" {
		t.Errorf("animation payload = %v", got[0].payload)
	}
	if got[1].path != "/api/leds/fade_rgb" || got[1].payload["group"] != GroupFace {
		t.Errorf("fade request = %+v", got[1])
	}
	if got[2].payload["text"] != "hello" {
		t.Errorf("say payload = %v", got[2].payload)
	}
}

func TestHTTPBridgeMapsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "motion engine busy", http.StatusConflict)
	}))
	defer srv.Close()

	b := NewHTTPBridgeURL(srv.URL)
	if err := b.PlayAnimation(context.Background(), "wave"); !errors.Is(err, ErrAnimationFault) {
		t.Fatalf("error = %v, want ErrAnimationFault", err)
	}

	srv.Close()
	if err := b.Say(context.Background(), "x"); !errors.Is(err, ErrBridgeUnavailable) {
		t.Fatalf("error after close = %v, want ErrBridgeUnavailable", err)
	}
}
