// Package config provides configuration helpers for go-nao-story commands.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Defaults for the performance stack.
const (
	DefaultNaoPort     = "8400"
	DefaultStagePort   = "8080"
	DefaultTTSURL      = "http://localhost:8000"
	DefaultLanguage    = "en"
	DefaultKeyfilePath = "google-key.json"
)

// NaoIP returns the NAO bridge IP from NAO_IP env var.
// Falls back to the provided default if not set.
func NaoIP(defaultIP string) string {
	if ip := os.Getenv("NAO_IP"); ip != "" {
		return ip
	}
	return defaultIP
}

// NaoAPIURL returns the NAO bridge HTTP API URL.
func NaoAPIURL(naoIP string) string {
	return fmt.Sprintf("http://%s:%s", naoIP, DefaultNaoPort)
}

// AgentID returns the Dialogflow CX agent ID from DIALOGFLOW_AGENT_ID.
// Exits with usage help if not set.
func AgentID() string {
	id := os.Getenv("DIALOGFLOW_AGENT_ID")
	if id == "" {
		fmt.Fprintln(os.Stderr, "Error: DIALOGFLOW_AGENT_ID environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: DIALOGFLOW_AGENT_ID=<uuid> DIALOGFLOW_LOCATION=europe-west4 go run ./cmd/...")
		os.Exit(1)
	}
	return id
}

// Location returns the Dialogflow CX agent location from DIALOGFLOW_LOCATION.
func Location(defaultLocation string) string {
	if loc := os.Getenv("DIALOGFLOW_LOCATION"); loc != "" {
		return loc
	}
	return defaultLocation
}

// Flows returns the ordered Dialogflow CX flow IDs from DIALOGFLOW_FLOWS
// (comma-separated, one flow per story chapter). Exits with usage help if
// not set.
func Flows() []string {
	raw := os.Getenv("DIALOGFLOW_FLOWS")
	if raw == "" {
		fmt.Fprintln(os.Stderr, "Error: DIALOGFLOW_FLOWS environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: DIALOGFLOW_FLOWS=<uuid>,<uuid>,... (one flow per chapter)")
		os.Exit(1)
	}
	var flows []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			flows = append(flows, f)
		}
	}
	return flows
}

// KeyfilePath returns the Google service-account keyfile path from
// GOOGLE_KEYFILE, or the conventional default.
func KeyfilePath() string {
	if p := os.Getenv("GOOGLE_KEYFILE"); p != "" {
		return p
	}
	return DefaultKeyfilePath
}

// TTSURL returns the speech-synthesis server URL from TTS_URL or the default.
func TTSURL() string {
	if u := os.Getenv("TTS_URL"); u != "" {
		return u
	}
	return DefaultTTSURL
}

// StagePort returns the stage-monitor listen port from STAGE_PORT or the default.
func StagePort() string {
	if p := os.Getenv("STAGE_PORT"); p != "" {
		return p
	}
	return DefaultStagePort
}

// Language returns the conversation language code from STORY_LANGUAGE or "en".
func Language() string {
	if l := os.Getenv("STORY_LANGUAGE"); l != "" {
		return l
	}
	return DefaultLanguage
}
