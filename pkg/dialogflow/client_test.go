package dialogflow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

var testKeyfile = []byte(`{"project_id": "test-project"}`)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(testKeyfile, "agent-1", "europe-west4",
		WithBaseURL(srv.URL),
		WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, srv
}

func okResponse(t *testing.T, w http.ResponseWriter) {
	t.Helper()
	resp := ScriptedTurn{
		Messages: []string{"Welcome!"},
		Flow:     "demo_cycle_1",
		Page:     "Word Collection",
	}.Build()
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func TestStartFlowTargetsStartPage(t *testing.T) {
	var gotPath, gotPage, gotAuth string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var body detectIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.QueryParams != nil {
			gotPage = body.QueryParams.CurrentPage
		}
		okResponse(t, w)
	})

	resp, err := client.StartFlow(context.Background(), "flow-42", StartOptions{})
	if err != nil {
		t.Fatalf("StartFlow: %v", err)
	}
	if resp.QueryResult == nil {
		t.Fatal("expected query result")
	}

	if !strings.Contains(gotPath, "/projects/test-project/locations/europe-west4/agents/agent-1/sessions/") {
		t.Errorf("unexpected session path: %s", gotPath)
	}
	if !strings.HasSuffix(gotPage, "/flows/flow-42/pages/START_PAGE") {
		t.Errorf("expected START_PAGE target, got %s", gotPage)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}
}

func TestSessionIdentifierLifecycle(t *testing.T) {
	var sessions []string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Path ends with .../sessions/{id}:detectIntent
		path := strings.TrimSuffix(r.URL.Path, ":detectIntent")
		sessions = append(sessions, path[strings.LastIndex(path, "/")+1:])
		okResponse(t, w)
	})
	ctx := context.Background()

	t.Run("fresh flow generates a new identifier", func(t *testing.T) {
		if _, err := client.StartFlow(ctx, "f1", StartOptions{}); err != nil {
			t.Fatalf("StartFlow: %v", err)
		}
		if _, err := client.StartFlow(ctx, "f1", StartOptions{}); err != nil {
			t.Fatalf("StartFlow: %v", err)
		}
		if sessions[0] == sessions[1] {
			t.Errorf("expected distinct session IDs, got %q twice", sessions[0])
		}
	})

	t.Run("identifier persists across follow-ups", func(t *testing.T) {
		id := client.Session().ID
		if _, err := client.DetectIntent(ctx, "apple", id, QueryOptions{}); err != nil {
			t.Fatalf("DetectIntent: %v", err)
		}
		if _, err := client.DetectIntent(ctx, "mirror", id, QueryOptions{}); err != nil {
			t.Fatalf("DetectIntent: %v", err)
		}
		last := sessions[len(sessions)-1]
		if last != id {
			t.Errorf("session drifted: want %q, got %q", id, last)
		}
	})

	t.Run("explicit session ID is honored", func(t *testing.T) {
		if _, err := client.StartFlow(ctx, "f1", StartOptions{SessionID: "pinned"}); err != nil {
			t.Fatalf("StartFlow: %v", err)
		}
		if got := sessions[len(sessions)-1]; got != "pinned" {
			t.Errorf("expected pinned session, got %q", got)
		}
	})
}

func TestExplicitPageDoesNotInheritParameters(t *testing.T) {
	var body detectIntentRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		okResponse(t, w)
	})

	_, err := client.DetectIntent(context.Background(), "hello", "s1", QueryOptions{
		CurrentPage: "projects/p/locations/l/agents/a/flows/f/pages/Collect",
	})
	if err != nil {
		t.Fatalf("DetectIntent: %v", err)
	}
	if body.QueryParams == nil {
		t.Fatal("expected queryParams with forced page")
	}
	if len(body.QueryParams.Parameters) != 0 {
		t.Errorf("parameters must not be implicitly sent, got %v", body.QueryParams.Parameters)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error": "bad credentials"}`, ErrAuthentication},
		{"forbidden", http.StatusForbidden, `{}`, ErrAuthentication},
		{"unknown flow", http.StatusNotFound, `{"error": "flow not found"}`, ErrInvalidFlow},
		{"expired session", http.StatusBadRequest, `{"error": "Session expired"}`, ErrSessionExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := client.DetectIntent(context.Background(), "hi", "s1", QueryOptions{})
			if !errors.Is(err, tc.want) {
				t.Errorf("status %d: want %v, got %v", tc.status, tc.want, err)
			}
		})
	}

	t.Run("server error is transient transport failure", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := client.DetectIntent(context.Background(), "hi", "s1", QueryOptions{})
		var te *TransportError
		if !errors.As(err, &te) {
			t.Fatalf("expected TransportError, got %v", err)
		}
		if !te.IsTransient() {
			t.Error("502 should be transient")
		}
		if !IsTransient(err) {
			t.Error("IsTransient helper should agree")
		}
	})

	t.Run("session-fatal classification", func(t *testing.T) {
		if !IsSessionFatal(ErrSessionExpired) || !IsSessionFatal(ErrInvalidFlow) {
			t.Error("expired/invalid-flow must be session fatal")
		}
		if IsSessionFatal(&TransportError{Op: "x", StatusCode: 503}) {
			t.Error("transport errors are not session fatal")
		}
	})
}

func TestSessionViewCheckCycle(t *testing.T) {
	view := &SessionView{Parameters: map[string]any{"current_cycle": float64(2)}}

	if err := view.CheckCycle(2); err != nil {
		t.Errorf("matching cycle: %v", err)
	}
	if err := view.CheckCycle(3); !errors.Is(err, ErrCycleDrift) {
		t.Errorf("expected cycle drift, got %v", err)
	}

	// Absent parameter is not drift.
	empty := &SessionView{Parameters: map[string]any{}}
	if err := empty.CheckCycle(1); err != nil {
		t.Errorf("absent parameter: %v", err)
	}
}
