package expression

import (
	"log/slog"
	"math/rand"
	"strings"

	"github.com/teslashibe/go-nao-story/pkg/dialogflow"
)

// keywordTable drives category inference for conversational turns without a
// directive. Scoring counts keyword overlap; the highest count wins.
var keywordTable = map[Category][]string{
	CategoryQuestion: {
		"what", "where", "who", "why", "how", "when", "which", "?",
	},
	CategoryNegation: {
		"no", "not", "never", "don't", "can't", "won't", "nothing", "stop",
	},
	CategoryAffirmation: {
		"yes", "yeah", "sure", "right", "exactly", "correct", "indeed", "agreed",
	},
	CategoryEnjoyment: {
		"happy", "joy", "wonderful", "amazing", "hooray", "love", "best", "fun",
	},
	CategoryAnger: {
		"angry", "mad", "furious", "unacceptable", "frustrated", "hate",
	},
	CategoryDisgust: {
		"gross", "disgusting", "yuck", "horrible", "awful",
	},
	CategorySadness: {
		"sad", "cry", "lonely", "miss", "sorry", "tears", "mourn",
	},
	CategoryFear: {
		"scared", "afraid", "fear", "terrified", "dark", "danger",
	},
	CategorySurprise: {
		"wow", "suddenly", "surprise", "unexpected", "unbelievable", "gasp",
	},
}

// Resolver selects an animation and LED profile for a performance beat.
type Resolver struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithSeed fixes the intra-category selection randomness. Tests use this
// for deterministic animation picks.
func WithSeed(seed int64) ResolverOption {
	return func(r *Resolver) {
		r.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		rng:    rand.New(rand.NewSource(rand.Int63())),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve computes the expression plan for one beat.
//
// A directive is authoritative: its motion tag and color are used verbatim,
// regardless of text content. Without a directive, the category is inferred
// from the text and the animation picked from the category table. The result
// always carries exactly one animation and one LED profile.
func (r *Resolver) Resolve(directive *dialogflow.PerformanceDirective, text string) Plan {
	if directive != nil && (directive.Motion != "" || directive.Color != "") {
		return r.resolveDirective(directive, text)
	}

	category := Classify(text)
	plan := Plan{
		Text:          text,
		Animation:     r.pick(category),
		LED:           ProfileForCategory(category),
		Category:      category,
		AudioEstimate: estimateAudio(text),
	}
	r.logger.Debug("expression inferred",
		"category", string(category),
		"animation", plan.Animation,
	)
	return plan
}

func (r *Resolver) resolveDirective(d *dialogflow.PerformanceDirective, text string) Plan {
	if text == "" {
		text = d.Text
	}

	plan := Plan{
		Text:          text,
		Category:      CategoryNeutral,
		AudioEstimate: estimateAudio(text),
	}

	if d.Motion != "" {
		plan.Animation = d.Motion
	} else {
		plan.Animation = r.pick(CategoryNeutral)
	}
	if d.Color != "" {
		plan.LED = ProfileForColor(d.Color)
	} else {
		plan.LED = ProfileForCategory(CategoryNeutral)
	}

	r.logger.Debug("expression from directive",
		"motion", d.Motion,
		"color", d.Color,
	)
	return plan
}

// Classify infers the expression category from text by keyword overlap.
// Zero matches resolve to neutral; ties resolve by the fixed priority order.
func Classify(text string) Category {
	words := tokenize(text)
	if len(words) == 0 {
		return CategoryNeutral
	}

	scores := make(map[Category]int, len(keywordTable))
	for category, keywords := range keywordTable {
		for _, kw := range keywords {
			if kw == "?" {
				if strings.Contains(text, "?") {
					scores[category]++
				}
				continue
			}
			if words[kw] {
				scores[category]++
			}
		}
	}

	best := CategoryNeutral
	bestScore := 0
	for _, category := range tiePriority {
		if category == CategoryNeutral {
			continue
		}
		if scores[category] > bestScore {
			best = category
			bestScore = scores[category]
		}
	}
	return best
}

// pick selects one animation path from a category, falling back to neutral
// for unknown categories so resolution always yields a selection.
func (r *Resolver) pick(category Category) string {
	paths, ok := animationTable[category]
	if !ok || len(paths) == 0 {
		paths = animationTable[CategoryNeutral]
	}
	return paths[r.rng.Intn(len(paths))]
}

// tokenize lowercases and splits text into a word set, stripping basic
// punctuation so keyword matching is robust against sentence boundaries.
func tokenize(text string) map[string]bool {
	out := make(map[string]bool)
	for _, field := range strings.Fields(strings.ToLower(text)) {
		word := strings.Trim(field, ".,!?;:\"'()")
		if word != "" {
			out[word] = true
		}
	}
	return out
}
