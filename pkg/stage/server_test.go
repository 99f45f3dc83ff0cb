package stage

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-nao-story/pkg/director"
)

func startTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := NewServer("0", nil)
	go func() {
		if err := s.StartListener(ln); err != nil {
			t.Logf("server stopped: %v", err)
		}
	}()
	t.Cleanup(func() { s.Shutdown() })

	return s, ln.Addr().String()
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("hub never reached %d clients", n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestEventFeedOverWebsocket(t *testing.T) {
	s, addr := startTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%s/ws/events", addr), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForClients(t, s.eventHub, 1)

	s.Publish(director.Event{
		Kind:    director.EventWordAccept,
		Chapter: 1,
		Text:    "apple",
		At:      time.Now(),
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var got director.Event
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != director.EventWordAccept || got.Text != "apple" {
		t.Errorf("received event = %+v", got)
	}
}

func TestShowSnapshotFoldsEvents(t *testing.T) {
	s, addr := startTestServer(t)

	events := []director.Event{
		{Kind: director.EventPhase, Chapter: 1, Text: "collecting"},
		{Kind: director.EventWordAccept, Chapter: 1, Text: "apple"},
		{Kind: director.EventWordAccept, Chapter: 1, Text: "mirror"},
		{Kind: director.EventPerformance, Chapter: 1, Text: "Once upon a time.", Detail: "completed"},
		{Kind: director.EventPhase, Chapter: 2, Text: "collecting"},
	}
	for _, e := range events {
		s.Publish(e)
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/api/show", addr))
	if err != nil {
		t.Fatalf("get show: %v", err)
	}
	defer resp.Body.Close()

	var state ShowState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if state.Chapter != 2 {
		t.Errorf("chapter = %d, want 2", state.Chapter)
	}
	if state.Phase != "collecting" {
		t.Errorf("phase = %q", state.Phase)
	}
	// Word list resets when the chapter advances.
	if len(state.Words) != 0 {
		t.Errorf("words = %v, want empty after chapter change", state.Words)
	}
	if state.LastOutcome != "completed" {
		t.Errorf("last outcome = %q", state.LastOutcome)
	}
}

func TestEventBufferEndpoint(t *testing.T) {
	s, addr := startTestServer(t)

	s.Publish(director.Event{Kind: director.EventScript, Text: "Hello, my name is Nao."})
	s.Publish(director.Event{Kind: director.EventUtterance, Chapter: 1, Text: "apple"})

	resp, err := http.Get(fmt.Sprintf("http://%s/api/events", addr))
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var got []director.Event
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal %s: %v", body, err)
	}
	if len(got) != 2 || got[0].Kind != director.EventScript || got[1].Text != "apple" {
		t.Errorf("events = %+v", got)
	}
}
