package dialogflow

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

const sampleResponse = `{
	"responseId": "resp-1",
	"queryResult": {
		"transcript": "a shiny apple",
		"languageCode": "en",
		"parameters": {"word_1": "apple", "current_cycle": 1},
		"intent": {"name": "projects/p/intents/i", "displayName": "provide_word"},
		"intentDetectionConfidence": 0.93,
		"responseMessages": [
			{"text": {"text": ["Great, apple it is!"]}},
			{"payload": {"robot_command": {"text": "Once upon a time", "led": "red", "motion": "wave"}}},
			{"endInteraction": {}}
		],
		"currentPage": {"name": "projects/p/pages/x", "displayName": "Word Collection"},
		"currentFlow": {"name": "projects/p/flows/y", "displayName": "demo_cycle_1"}
	}
}`

func decodeSample(t *testing.T) *Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal([]byte(sampleResponse), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &resp
}

func TestParseFullResponse(t *testing.T) {
	result, err := Parse(decodeSample(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if result.Transcript != "a shiny apple" {
		t.Errorf("transcript: %q", result.Transcript)
	}
	if result.Intent != "provide_word" {
		t.Errorf("intent: %q", result.Intent)
	}
	if result.IntentConfidence == nil || *result.IntentConfidence != 0.93 {
		t.Errorf("confidence: %v", result.IntentConfidence)
	}
	if len(result.FulfillmentMessages) != 1 || result.FulfillmentMessages[0] != "Great, apple it is!" {
		t.Errorf("messages: %v", result.FulfillmentMessages)
	}
	if !result.EndInteraction {
		t.Error("expected end interaction flag")
	}
	if result.CurrentPage != "Word Collection" || result.CurrentFlow != "demo_cycle_1" {
		t.Errorf("state: page=%q flow=%q", result.CurrentPage, result.CurrentFlow)
	}

	directive := result.Directive()
	if directive == nil {
		t.Fatal("expected performance directive")
	}
	if directive.Motion != "wave" || directive.Color != "red" {
		t.Errorf("directive: %+v", directive)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	resp := decodeSample(t)

	first, err := Parse(resp)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := Parse(resp)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parse not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestParseDefaultsForAbsentFields(t *testing.T) {
	resp := &Response{QueryResult: &queryResult{
		ResponseMessages: []responseMessage{},
	}}

	result, err := Parse(resp)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.Intent != "" {
		t.Errorf("expected empty intent, got %q", result.Intent)
	}
	if result.IntentConfidence != nil {
		t.Errorf("expected nil confidence, got %v", result.IntentConfidence)
	}
	if result.FulfillmentMessages == nil || len(result.FulfillmentMessages) != 0 {
		t.Errorf("expected empty message list, got %v", result.FulfillmentMessages)
	}
	if result.Payloads == nil || len(result.Payloads) != 0 {
		t.Errorf("expected empty payload list, got %v", result.Payloads)
	}
	if result.Directive() != nil {
		t.Error("expected no directive")
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []struct {
		name string
		resp *Response
	}{
		{"nil response", nil},
		{"missing queryResult", &Response{}},
		{"missing responseMessages", &Response{QueryResult: &queryResult{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.resp); !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("want ErrMalformedResponse, got %v", err)
			}
		})
	}
}
