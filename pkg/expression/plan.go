// Package expression maps narrative text and performance directives to a
// concrete animation selection and LED emotion profile.
//
// Resolution always terminates with exactly one animation and one LED
// profile. An explicit directive wins verbatim; otherwise keyword scoring
// over a fixed categorical table decides, with neutral as the fallback.
package expression

import "time"

// Category is an expression category used for animation and LED selection.
type Category string

const (
	CategoryNeutral     Category = "neutral"
	CategoryQuestion    Category = "question"
	CategoryNegation    Category = "negation"
	CategoryAffirmation Category = "affirmation"
	CategoryEnjoyment   Category = "enjoyment"
	CategoryAnger       Category = "anger"
	CategoryDisgust     Category = "disgust"
	CategorySadness     Category = "sadness"
	CategoryFear        Category = "fear"
	CategorySurprise    Category = "surprise"
)

// tiePriority is the fixed tie-break order. Neutral is the fallback only;
// it never wins a tie against a category with a non-empty match.
var tiePriority = []Category{
	CategoryQuestion,
	CategoryNegation,
	CategoryAffirmation,
	CategoryEnjoyment,
	CategoryAnger,
	CategoryDisgust,
	CategorySadness,
	CategoryFear,
	CategorySurprise,
	CategoryNeutral,
}

// Plan is the resolved, ready-to-execute triple for one performance beat.
// It is ephemeral: derived deterministically and consumed once by the
// performance synchronizer.
type Plan struct {
	// Text is the narrative text to speak.
	Text string

	// Animation is the selected gesture identifier: either a motion tag
	// from a directive (used verbatim) or an animation path from the table.
	Animation string

	// LED is the selected LED emotion profile.
	LED LEDProfile

	// Category is the expression category the plan resolved to.
	Category Category

	// AudioEstimate approximates synthesized playback length, used for
	// fallback pacing when audio fails.
	AudioEstimate time.Duration
}

// estimateAudio approximates speech duration from text length. The real
// duration comes from the synthesized WAV; this is only a pacing hint.
func estimateAudio(text string) time.Duration {
	const perChar = 55 * time.Millisecond
	d := time.Duration(len(text)) * perChar
	if d < time.Second {
		d = time.Second
	}
	return d
}
