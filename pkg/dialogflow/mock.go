package dialogflow

import (
	"context"
	"sync"
)

// Engine is the dialogue-engine surface consumed by the orchestrator.
// *Client is the production implementation; Mock serves tests.
type Engine interface {
	StartFlow(ctx context.Context, flowID string, opts StartOptions) (*Response, error)
	DetectIntent(ctx context.Context, text, sessionID string, opts QueryOptions) (*Response, error)
	Session() *SessionView
}

// Mock implements Engine for testing. Behavior is customized via function
// fields; unset fields fall back to a scripted turn queue.
type Mock struct {
	// StartFlowFunc is called for StartFlow. If nil, pops the turn queue.
	StartFlowFunc func(ctx context.Context, flowID string, opts StartOptions) (*Response, error)

	// DetectIntentFunc is called for DetectIntent. If nil, pops the turn queue.
	DetectIntentFunc func(ctx context.Context, text, sessionID string, opts QueryOptions) (*Response, error)

	// SessionFunc is called for Session. If nil, returns the view built from
	// scripted turns.
	SessionFunc func() *SessionView

	mu      sync.Mutex
	queue   []*Response
	session *Session
	inputs  []string
}

// NewMock creates a mock engine with an empty turn queue.
func NewMock() *Mock {
	return &Mock{session: newSession("mock-session")}
}

// Enqueue appends scripted responses returned in order by StartFlow and
// DetectIntent when the function fields are unset.
func (m *Mock) Enqueue(responses ...*Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// Inputs returns the utterances the mock has received, in order.
func (m *Mock) Inputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.inputs))
	copy(out, m.inputs)
	return out
}

// StartFlow implements Engine.
func (m *Mock) StartFlow(ctx context.Context, flowID string, opts StartOptions) (*Response, error) {
	if m.StartFlowFunc != nil {
		return m.StartFlowFunc(ctx, flowID, opts)
	}
	return m.pop("")
}

// DetectIntent implements Engine.
func (m *Mock) DetectIntent(ctx context.Context, text, sessionID string, opts QueryOptions) (*Response, error) {
	if m.DetectIntentFunc != nil {
		return m.DetectIntentFunc(ctx, text, sessionID, opts)
	}
	return m.pop(text)
}

// Session implements Engine.
func (m *Mock) Session() *SessionView {
	if m.SessionFunc != nil {
		return m.SessionFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.View()
}

func (m *Mock) pop(input string) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if input != "" {
		m.inputs = append(m.inputs, input)
	}
	if len(m.queue) == 0 {
		return nil, &TransportError{Op: "mock", StatusCode: 0}
	}
	resp := m.queue[0]
	m.queue = m.queue[1:]
	m.session.absorb(resp)
	return resp, nil
}

// ScriptedTurn describes one mock exchange for building Response values in
// tests without hand-writing the wire envelope.
type ScriptedTurn struct {
	Transcript     string
	Intent         string
	Confidence     float64
	Messages       []string
	Directive      *PerformanceDirective
	Parameters     map[string]any
	Page           string
	Flow           string
	EndInteraction bool
}

// Build converts the scripted turn into a raw Response.
func (t ScriptedTurn) Build() *Response {
	qr := &queryResult{
		Transcript:       t.Transcript,
		Parameters:       t.Parameters,
		ResponseMessages: []responseMessage{},
	}
	if t.Intent != "" {
		conf := t.Confidence
		qr.Intent = &intent{DisplayName: t.Intent}
		qr.IntentDetectionConfidence = &conf
	}
	if t.Page != "" {
		qr.CurrentPage = &resourceRef{DisplayName: t.Page}
	}
	if t.Flow != "" {
		qr.CurrentFlow = &resourceRef{DisplayName: t.Flow}
	}
	for _, msg := range t.Messages {
		qr.ResponseMessages = append(qr.ResponseMessages, responseMessage{
			Text: &textMessage{Text: []string{msg}},
		})
	}
	if t.Directive != nil {
		cmd := map[string]any{}
		if t.Directive.Text != "" {
			cmd["text"] = t.Directive.Text
		}
		if t.Directive.Color != "" {
			cmd["led"] = t.Directive.Color
		}
		if t.Directive.Motion != "" {
			cmd["motion"] = t.Directive.Motion
		}
		qr.ResponseMessages = append(qr.ResponseMessages, responseMessage{
			Payload: map[string]any{"robot_command": cmd},
		})
	}
	if t.EndInteraction {
		qr.ResponseMessages = append(qr.ResponseMessages, responseMessage{
			EndInteraction: []byte("{}"),
		})
	}
	return &Response{QueryResult: qr}
}

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
var _ Engine = (*Client)(nil)
