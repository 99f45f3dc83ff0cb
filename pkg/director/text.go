package director

import (
	"regexp"
	"strings"
)

var (
	labelPrefix   = regexp.MustCompile(`^[A-Za-z\s]+:\s*`)
	nameThis      = regexp.MustCompile(`Name this`)
	nameAn        = regexp.MustCompile(`(?i)Name an`)
	sentenceSplit = regexp.MustCompile(`(?:[.!?:])\s+`)
)

// CleanSpeechText makes engine prompts sound natural when spoken. Slot
// labels like "Adjective: Name an adjective" come straight from the flow
// designer's page names and read badly out loud.
func CleanSpeechText(text string) string {
	if text == "" {
		return text
	}
	text = labelPrefix.ReplaceAllString(text, "")
	text = nameThis.ReplaceAllString(text, "Name a")
	text = nameAn.ReplaceAllString(text, "Tell me")
	return strings.TrimSpace(text)
}

// SplitBeats breaks narrative text into performable sentence chunks so
// each gets its own gesture and the robot breathes between lines.
func SplitBeats(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var beats []string
	last := 0
	for _, loc := range sentenceSplit.FindAllStringIndex(text, -1) {
		// Keep the punctuation, drop the separating space.
		chunk := strings.TrimSpace(text[last : loc[0]+1])
		if chunk != "" {
			beats = append(beats, chunk)
		}
		last = loc[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		beats = append(beats, tail)
	}
	return beats
}
