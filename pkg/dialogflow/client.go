// Package dialogflow is a direct HTTPS client for the Dialogflow CX v3
// detectIntent API.
//
// The remote agent's flow/page graph is opaque state; this client only
// implements the documented request/response contract and never attempts
// to re-derive the engine's conversational logic. Authentication is bearer
// token based, derived from a Google service-account key.
package dialogflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Client issues authenticated detectIntent requests and tracks the active
// Session. It is driven from a single orchestrator goroutine; the Session is
// mutated only here.
type Client struct {
	cfg       Config
	projectID string
	baseURL   string
	tokens    oauth2.TokenSource

	session *Session
}

// New creates a Dialogflow CX client from a service-account keyfile.
func New(keyfileJSON []byte, agentID, location string, opts ...Option) (*Client, error) {
	base := defaultConfig()
	base.KeyfileJSON = keyfileJSON
	base.AgentID = agentID
	base.Location = location
	for _, opt := range opts {
		opt(&base)
	}

	if err := base.validate(); err != nil {
		return nil, err
	}

	var key struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(base.KeyfileJSON, &key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoKeyfile, err)
	}

	tokens := base.TokenSource
	if tokens == nil {
		jwtCfg, err := google.JWTConfigFromJSON(base.KeyfileJSON, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		tokens = oauth2.ReuseTokenSource(nil, jwtCfg.TokenSource(context.Background()))
	}

	c := &Client{
		cfg:       base,
		projectID: key.ProjectID,
		baseURL:   base.BaseURL,
		tokens:    tokens,
	}
	if c.baseURL == "" {
		c.baseURL = fmt.Sprintf("https://%s-dialogflow.googleapis.com/v3", base.Location)
	}

	base.Logger.Info("dialogflow client ready",
		"project", c.projectID,
		"agent", base.AgentID,
		"location", base.Location,
	)

	return c, nil
}

// StartOptions configures StartFlow.
type StartOptions struct {
	// SessionID reuses an existing session. Empty generates a fresh UUID,
	// unique for the lifetime of the process.
	SessionID string

	// InitialText triggers the flow's start page. Defaults to "hi".
	InitialText string

	// Parameters pre-fills the session parameter map.
	Parameters map[string]any
}

// QueryOptions configures DetectIntent.
type QueryOptions struct {
	// CurrentPage, when set, overrides the remote session's implicit page
	// history. Parameters not explicitly re-sent are NOT inherited: the
	// caller owns continuity when forcing navigation.
	CurrentPage string

	// Parameters sent alongside the utterance.
	Parameters map[string]any
}

// StartFlow begins a flow at its START_PAGE and records the new Session.
func (c *Client) StartFlow(ctx context.Context, flowID string, opts StartOptions) (*Response, error) {
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	text := opts.InitialText
	if text == "" {
		text = "hi"
	}

	startPage := fmt.Sprintf("projects/%s/locations/%s/agents/%s/flows/%s/pages/START_PAGE",
		c.projectID, c.cfg.Location, c.cfg.AgentID, flowID)

	resp, err := c.detectIntent(ctx, text, sessionID, QueryOptions{
		CurrentPage: startPage,
		Parameters:  opts.Parameters,
	})
	if err != nil {
		return nil, err
	}

	c.session = newSession(sessionID)
	c.session.absorb(resp)
	c.cfg.Logger.Info("flow started", "flow", flowID, "session", sessionID)
	return resp, nil
}

// DetectIntent sends a follow-up utterance within the active session.
func (c *Client) DetectIntent(ctx context.Context, text, sessionID string, opts QueryOptions) (*Response, error) {
	resp, err := c.detectIntent(ctx, text, sessionID, opts)
	if err != nil {
		return nil, err
	}
	if c.session != nil && c.session.ID == sessionID {
		c.session.absorb(resp)
	}
	return resp, nil
}

// Session returns a read-only view of the active session, or nil before the
// first StartFlow.
func (c *Client) Session() *SessionView {
	if c.session == nil {
		return nil
	}
	return c.session.View()
}

// detectIntent performs the raw POST .../sessions/{id}:detectIntent exchange.
func (c *Client) detectIntent(ctx context.Context, text, sessionID string, opts QueryOptions) (*Response, error) {
	const op = "detectIntent"

	body := detectIntentRequest{
		QueryInput: queryInput{
			Text:         textInput{Text: text},
			LanguageCode: c.cfg.LanguageCode,
		},
	}
	if opts.CurrentPage != "" || len(opts.Parameters) > 0 {
		body.QueryParams = &queryParams{
			CurrentPage: opts.CurrentPage,
			Parameters:  opts.Parameters,
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("dialogflow: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/projects/%s/locations/%s/agents/%s/sessions/%s:detectIntent",
		c.baseURL, c.projectID, c.cfg.Location, c.cfg.AgentID, sessionID)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Op: op, Cause: err}
	}

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &TransportError{Op: op, Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		c.cfg.Logger.Warn("detectIntent failed",
			"status", resp.StatusCode,
			"session", sessionID,
		)
		return nil, statusToError(op, resp.StatusCode, string(raw))
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	c.cfg.Logger.Debug("detectIntent ok",
		"session", sessionID,
		"response_id", out.ResponseID,
	)
	return &out, nil
}
