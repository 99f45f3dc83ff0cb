package story

import (
	"log/slog"
	"strings"
)

// WordPolicy decides how a word that repeats an earlier one is handled.
// The source material leaves this open; rejection-and-reprompt is the
// default, duplicates can be allowed per deployment.
type WordPolicy int

const (
	// RejectDuplicates refuses words already used in any chapter.
	RejectDuplicates WordPolicy = iota

	// AllowDuplicates accepts repeats.
	AllowDuplicates
)

// DefaultThemes are the chapter themes of the reference four-chapter story.
var DefaultThemes = []string{
	"the queen and the mirror",
	"the flight into the forest",
	"the poisoned gift",
	"the awakening",
}

// Machine advances the narrative cycle. It is driven from the single
// orchestrator goroutine and is not safe for concurrent use.
type Machine struct {
	chapters int
	policy   WordPolicy
	themes   []string
	logger   *slog.Logger

	phase Phase
	cycle Cycle
	used  map[string]bool // lowercase words accepted in any chapter
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithChapters sets the chapter count (default DefaultChapters).
func WithChapters(n int) MachineOption {
	return func(m *Machine) {
		if n > 0 {
			m.chapters = n
		}
	}
}

// WithWordPolicy sets the duplicate-word policy.
func WithWordPolicy(p WordPolicy) MachineOption {
	return func(m *Machine) {
		m.policy = p
	}
}

// WithThemes sets per-chapter themes.
func WithThemes(themes []string) MachineOption {
	return func(m *Machine) {
		if len(themes) > 0 {
			m.themes = themes
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		m.logger = logger
	}
}

// NewMachine creates a machine in PhaseSetup for chapter 1.
func NewMachine(opts ...MachineOption) *Machine {
	m := &Machine{
		chapters: DefaultChapters,
		policy:   RejectDuplicates,
		themes:   DefaultThemes,
		logger:   slog.Default(),
		phase:    PhaseSetup,
		used:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cycle = Cycle{Chapter: 1, Theme: m.theme(1)}
	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Cycle returns a copy of the active chapter state.
func (m *Machine) Cycle() Cycle {
	return m.cycle.snapshot()
}

// Chapters returns the configured chapter count.
func (m *Machine) Chapters() int {
	return m.chapters
}

// BeginChapter enters word collection for the current chapter: the word
// list resets and the chapter theme is (re)computed.
func (m *Machine) BeginChapter() error {
	switch m.phase {
	case PhaseDone:
		return ErrStoryComplete
	case PhaseSetup:
	default:
		return phaseError("begin chapter", m.phase)
	}

	m.cycle = Cycle{Chapter: m.cycle.Chapter, Theme: m.theme(m.cycle.Chapter)}
	m.phase = PhaseCollecting
	m.logger.Info("chapter started",
		"chapter", m.cycle.Chapter,
		"theme", m.cycle.Theme,
	)
	return nil
}

// OfferWord submits one candidate word during collection. It returns true
// when the word is accepted; false when it is rejected under the duplicate
// policy (the caller re-prompts). The fifth accepted word transitions the
// machine to PhaseGenerating; offering a word after that is an error.
func (m *Machine) OfferWord(word string) (bool, error) {
	switch m.phase {
	case PhaseDone:
		return false, ErrStoryComplete
	case PhaseCollecting:
	default:
		return false, phaseError("offer word", m.phase)
	}

	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return false, ErrEmptyWord
	}

	if m.policy == RejectDuplicates && m.used[normalized] {
		m.logger.Info("word rejected as duplicate",
			"chapter", m.cycle.Chapter,
			"word", normalized,
		)
		return false, nil
	}

	m.used[normalized] = true
	m.cycle.Words = append(m.cycle.Words, normalized)
	m.logger.Info("word accepted",
		"chapter", m.cycle.Chapter,
		"word", normalized,
		"collected", len(m.cycle.Words),
	)

	if len(m.cycle.Words) == WordsPerChapter {
		m.cycle.Complete = true
		m.phase = PhaseGenerating
		m.logger.Info("chapter words complete, awaiting narrative",
			"chapter", m.cycle.Chapter,
		)
	}
	return true, nil
}

// DirectiveReady records that the engine returned the chapter's performance
// directive; the machine moves to PhasePerforming. The directive itself is
// authoritative and never re-derived locally.
func (m *Machine) DirectiveReady() error {
	switch m.phase {
	case PhaseDone:
		return ErrStoryComplete
	case PhaseGenerating:
	default:
		return phaseError("directive ready", m.phase)
	}
	m.phase = PhasePerforming
	return nil
}

// PerformanceDone records playback completion. Recoverable (degraded)
// playback still advances the cycle. The chapter index increments until the
// final chapter, then the machine terminates.
func (m *Machine) PerformanceDone() error {
	switch m.phase {
	case PhaseDone:
		return ErrStoryComplete
	case PhasePerforming:
	default:
		return phaseError("performance done", m.phase)
	}

	if m.cycle.Chapter >= m.chapters {
		m.phase = PhaseDone
		m.logger.Info("story complete", "chapters", m.chapters)
		return nil
	}

	next := m.cycle.Chapter + 1
	m.cycle = Cycle{Chapter: next, Theme: m.theme(next)}
	m.phase = PhaseSetup
	m.logger.Info("advancing to next chapter", "chapter", next)
	return nil
}

// ForceComplete jumps straight to the terminal phase. A user-initiated exit
// always wins over normal chapter progression.
func (m *Machine) ForceComplete() {
	if m.phase == PhaseDone {
		return
	}
	m.logger.Info("story force-completed",
		"chapter", m.cycle.Chapter,
		"phase", m.phase.String(),
	)
	m.phase = PhaseDone
}

// Done reports whether the machine reached its terminal phase.
func (m *Machine) Done() bool {
	return m.phase == PhaseDone
}

func (m *Machine) theme(chapter int) string {
	if chapter-1 < len(m.themes) {
		return m.themes[chapter-1]
	}
	return ""
}
