package dialogflow

import "fmt"

// Session tracks the local image of one remote conversation: the opaque
// session identifier, the engine's current flow/page, and the accumulated
// parameter map. It is owned by the Client and mutated only from the
// orchestrator goroutine; other packages see read-only views.
type Session struct {
	// ID is the opaque session token, stable for the session's lifetime.
	ID string

	// CurrentFlow and CurrentPage are display names of the remote state.
	CurrentFlow string
	CurrentPage string

	// Parameters is the accumulated parameter map (keys unique).
	Parameters map[string]any
}

func newSession(id string) *Session {
	return &Session{
		ID:         id,
		Parameters: make(map[string]any),
	}
}

// absorb folds one raw response into the session state.
func (s *Session) absorb(resp *Response) {
	qr := resp.QueryResult
	if qr == nil {
		return
	}
	if qr.CurrentFlow != nil {
		s.CurrentFlow = qr.CurrentFlow.DisplayName
	}
	if qr.CurrentPage != nil {
		s.CurrentPage = qr.CurrentPage.DisplayName
	}
	for k, v := range qr.Parameters {
		s.Parameters[k] = v
	}
}

// View returns an immutable snapshot of the session.
func (s *Session) View() *SessionView {
	params := make(map[string]any, len(s.Parameters))
	for k, v := range s.Parameters {
		params[k] = v
	}
	return &SessionView{
		ID:          s.ID,
		CurrentFlow: s.CurrentFlow,
		CurrentPage: s.CurrentPage,
		Parameters:  params,
	}
}

// SessionView is a read-only copy of a Session for consumption outside the
// protocol client.
type SessionView struct {
	ID          string
	CurrentFlow string
	CurrentPage string
	Parameters  map[string]any
}

// CheckCycle verifies that the remote current_cycle parameter matches the
// local chapter index. A mismatch means local and remote narrative state
// have drifted and must surface as a protocol error.
func (v *SessionView) CheckCycle(chapter int) error {
	raw, ok := v.Parameters["current_cycle"]
	if !ok {
		return nil
	}
	var remote int
	switch n := raw.(type) {
	case float64:
		remote = int(n)
	case int:
		remote = n
	case string:
		if _, err := fmt.Sscanf(n, "%d", &remote); err != nil {
			return fmt.Errorf("%w: unparseable current_cycle %q", ErrCycleDrift, n)
		}
	default:
		return fmt.Errorf("%w: unexpected current_cycle type %T", ErrCycleDrift, raw)
	}
	if remote != chapter {
		return fmt.Errorf("%w: remote=%d local=%d", ErrCycleDrift, remote, chapter)
	}
	return nil
}
