package dialogflow

import "fmt"

// Parse projects a raw detectIntent response into a DialogueResult.
//
// Parsing is deterministic and idempotent: the same response always yields
// a structurally equal result. Absent optional fields (intent, payloads,
// confidence) become defined defaults; only a missing queryResult or
// responseMessages array is malformed.
func Parse(resp *Response) (*DialogueResult, error) {
	if resp == nil || resp.QueryResult == nil {
		return nil, fmt.Errorf("%w: missing queryResult", ErrMalformedResponse)
	}
	qr := resp.QueryResult
	if qr.ResponseMessages == nil {
		return nil, fmt.Errorf("%w: missing responseMessages", ErrMalformedResponse)
	}

	out := &DialogueResult{
		Transcript:          qr.Transcript,
		Parameters:          map[string]any{},
		FulfillmentMessages: []string{},
		Payloads:            []map[string]any{},
		ResponseID:          resp.ResponseID,
	}

	for k, v := range qr.Parameters {
		out.Parameters[k] = v
	}

	if qr.Intent != nil {
		out.Intent = qr.Intent.DisplayName
	}
	out.IntentConfidence = qr.IntentDetectionConfidence

	if qr.CurrentPage != nil {
		out.CurrentPage = qr.CurrentPage.DisplayName
		out.CurrentPagePath = qr.CurrentPage.Name
	}
	if qr.CurrentFlow != nil {
		out.CurrentFlow = qr.CurrentFlow.DisplayName
		out.CurrentFlowPath = qr.CurrentFlow.Name
	}

	for _, msg := range qr.ResponseMessages {
		switch {
		case msg.Text != nil:
			out.FulfillmentMessages = append(out.FulfillmentMessages, msg.Text.Text...)
		case msg.Payload != nil:
			out.Payloads = append(out.Payloads, msg.Payload)
		case msg.EndInteraction != nil:
			out.EndInteraction = true
		}
	}

	return out, nil
}
