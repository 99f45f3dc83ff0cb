package expression

import "time"

// RGB is a color with channels in [0,1], matching the robot LED API.
type RGB [3]float64

// LEDProfile describes one LED emotion expression: fade the face LEDs to
// the peak color, pulse between base and peak, then settle on the peak.
type LEDProfile struct {
	// Name identifies the profile (the emotion or directive color).
	Name string

	// Base and Peak are the pulse endpoints.
	Base RGB
	Peak RGB

	// Cycles is the number of base→peak pulses; 0 means a steady color.
	Cycles int

	// Period is the duration of one pulse cycle.
	Period time.Duration

	// EarIntensity drives the ear LED brightness in [0,1].
	EarIntensity float64
}

// ledTable holds the per-category LED profiles.
var ledTable = map[Category]LEDProfile{
	CategoryNeutral: {
		Name: "neutral",
		Base: RGB{0.8, 0.8, 0.8},
		Peak: RGB{0.8, 0.8, 0.8},
	},
	CategoryQuestion: {
		Name: "question",
		Base: RGB{0.7, 0.7, 1.0},
		Peak: RGB{0.9, 0.9, 1.0},
	},
	CategoryNegation: {
		Name:   "negation",
		Base:   RGB{0.6, 0.4, 0.1},
		Peak:   RGB{0.9, 0.6, 0.1},
		Cycles: 1,
		Period: 600 * time.Millisecond,
	},
	CategoryAffirmation: {
		Name:         "affirmation",
		Base:         RGB{0.2, 0.8, 0.2},
		Peak:         RGB{0.3, 1.0, 0.3},
		EarIntensity: 0.5,
	},
	CategoryEnjoyment: {
		Name:         "enjoyment",
		Base:         RGB{0.2, 0.7, 0.7},
		Peak:         RGB{0.4, 1.0, 1.0},
		Cycles:       2,
		Period:       500 * time.Millisecond,
		EarIntensity: 1.0,
	},
	CategoryAnger: {
		Name:         "anger",
		Base:         RGB{0.5, 0.0, 0.0},
		Peak:         RGB{1.0, 0.0, 0.0},
		Cycles:       5,
		Period:       300 * time.Millisecond,
		EarIntensity: 1.0,
	},
	CategoryDisgust: {
		Name:         "disgust",
		Base:         RGB{0.6, 0.2, 0.2},
		Peak:         RGB{0.6, 0.2, 0.2},
		EarIntensity: 0.2,
	},
	CategorySadness: {
		Name:         "sadness",
		Base:         RGB{0.1, 0.1, 0.5},
		Peak:         RGB{0.2, 0.2, 0.8},
		Cycles:       2,
		Period:       time.Second,
		EarIntensity: 0.3,
	},
	CategoryFear: {
		Name:         "fear",
		Base:         RGB{0.2, 0.0, 0.3},
		Peak:         RGB{0.5, 0.1, 0.6},
		Cycles:       3,
		Period:       250 * time.Millisecond,
		EarIntensity: 0.8,
	},
	CategorySurprise: {
		Name:         "surprise",
		Base:         RGB{0.0, 0.8, 0.8},
		Peak:         RGB{0.5, 1.0, 1.0},
		Cycles:       3,
		Period:       200 * time.Millisecond,
		EarIntensity: 1.0,
	},
}

// colorProfiles maps directive color names to LED profiles. A directive
// color is authoritative: it overrides any keyword-inferred profile.
var colorProfiles = map[string]LEDProfile{
	"red": {
		Name:         "red",
		Base:         RGB{0.5, 0.0, 0.0},
		Peak:         RGB{1.0, 0.0, 0.0},
		Cycles:       5,
		Period:       300 * time.Millisecond,
		EarIntensity: 1.0,
	},
	"green": {
		Name:         "green",
		Base:         RGB{0.1, 0.5, 0.1},
		Peak:         RGB{0.2, 1.0, 0.2},
		Cycles:       2,
		Period:       500 * time.Millisecond,
		EarIntensity: 0.5,
	},
	"blue": {
		Name:         "blue",
		Base:         RGB{0.1, 0.1, 0.5},
		Peak:         RGB{0.2, 0.2, 1.0},
		Cycles:       2,
		Period:       500 * time.Millisecond,
		EarIntensity: 0.5,
	},
	"turquoise": {
		Name:         "turquoise",
		Base:         RGB{0.2, 0.7, 0.7},
		Peak:         RGB{0.4, 1.0, 1.0},
		Cycles:       2,
		Period:       500 * time.Millisecond,
		EarIntensity: 1.0,
	},
	"white": {
		Name: "white",
		Base: RGB{0.8, 0.8, 0.8},
		Peak: RGB{1.0, 1.0, 1.0},
	},
	"purple": {
		Name:         "purple",
		Base:         RGB{0.3, 0.0, 0.4},
		Peak:         RGB{0.6, 0.1, 0.8},
		Cycles:       3,
		Period:       400 * time.Millisecond,
		EarIntensity: 0.8,
	},
}

// ProfileForColor resolves a directive color name to an LED profile.
// Unknown colors get a steady neutral-white profile carrying the requested
// name, so a directive never fails to produce a selection.
func ProfileForColor(color string) LEDProfile {
	if p, ok := colorProfiles[color]; ok {
		return p
	}
	p := ledTable[CategoryNeutral]
	if color != "" {
		p.Name = color
	}
	return p
}

// ProfileForCategory returns the LED profile for an expression category.
func ProfileForCategory(c Category) LEDProfile {
	if p, ok := ledTable[c]; ok {
		return p
	}
	return ledTable[CategoryNeutral]
}
