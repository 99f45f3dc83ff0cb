package dialogflow

import "encoding/json"

// queryInput is the text input envelope sent to detectIntent.
type queryInput struct {
	Text         textInput `json:"text"`
	LanguageCode string    `json:"languageCode"`
}

type textInput struct {
	Text string `json:"text"`
}

// queryParams carries optional per-request session parameters.
type queryParams struct {
	CurrentPage string         `json:"currentPage,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// detectIntentRequest is the request body for the detectIntent call.
type detectIntentRequest struct {
	QueryInput  queryInput   `json:"queryInput"`
	QueryParams *queryParams `json:"queryParams,omitempty"`
}

// Response is the raw detectIntent response envelope.
// It is kept close to the wire format; use Parse to project it into a
// DialogueResult.
type Response struct {
	ResponseID  string       `json:"responseId"`
	QueryResult *queryResult `json:"queryResult"`
}

type queryResult struct {
	Transcript                string            `json:"transcript"`
	LanguageCode              string            `json:"languageCode"`
	Parameters                map[string]any    `json:"parameters"`
	Intent                    *intent           `json:"intent"`
	IntentDetectionConfidence *float64          `json:"intentDetectionConfidence"`
	ResponseMessages          []responseMessage `json:"responseMessages"`
	CurrentPage               *resourceRef      `json:"currentPage"`
	CurrentFlow               *resourceRef      `json:"currentFlow"`
}

type intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type resourceRef struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// responseMessage is one entry of queryResult.responseMessages. Exactly one
// of the variant fields is set per message.
type responseMessage struct {
	Text           *textMessage    `json:"text"`
	Payload        map[string]any  `json:"payload"`
	EndInteraction json.RawMessage `json:"endInteraction"`
}

type textMessage struct {
	Text []string `json:"text"`
}

// DialogueResult is the parsed projection of a detectIntent response.
// Immutable once constructed; consumed per exchange and discarded.
type DialogueResult struct {
	// Transcript is the recognized user utterance, if any.
	Transcript string

	// Parameters is the accumulated session parameter map.
	Parameters map[string]any

	// Intent is the detected intent display name ("" when absent).
	Intent string

	// IntentConfidence is the detection confidence in [0,1].
	// Nil when the engine reported none.
	IntentConfidence *float64

	// FulfillmentMessages are the ordered text responses.
	FulfillmentMessages []string

	// Payloads are the ordered structured payload objects.
	Payloads []map[string]any

	// CurrentPage and CurrentFlow are display names of the remote state.
	CurrentPage     string
	CurrentPagePath string
	CurrentFlow     string
	CurrentFlowPath string

	// EndInteraction is true when the engine signalled end of conversation.
	EndInteraction bool

	// ResponseID identifies the exchange for logging.
	ResponseID string
}

// PerformanceDirective is the robot_command payload embedded in a dialogue
// response: narrative text plus LED color and motion tag.
type PerformanceDirective struct {
	Text   string
	Color  string
	Motion string
}

// Directive extracts the first robot_command performance directive from the
// result's payloads. Returns nil when none is present.
func (r *DialogueResult) Directive() *PerformanceDirective {
	for _, payload := range r.Payloads {
		cmd, ok := payload["robot_command"].(map[string]any)
		if !ok {
			continue
		}
		d := &PerformanceDirective{}
		if s, ok := cmd["text"].(string); ok {
			d.Text = s
		}
		if s, ok := cmd["led"].(string); ok {
			d.Color = s
		}
		if s, ok := cmd["motion"].(string); ok {
			d.Motion = s
		}
		if d.Text == "" && d.Color == "" && d.Motion == "" {
			continue
		}
		return d
	}
	return nil
}
