// Package story implements the bounded narrative cycle state machine.
//
// A story is told in chapters. Each chapter runs the same four-stage loop:
// setup, word collection, narrative generation, performance. The machine
// advances strictly in lock-step with the remote dialogue session; it never
// derives narrative content on its own.
package story

// Structural constants of the narrative cycle.
const (
	// WordsPerChapter is the exact number of words collected per chapter.
	WordsPerChapter = 5

	// DefaultChapters is the number of chapters in the reference story.
	DefaultChapters = 4
)

// Phase is the state of the cycle machine.
type Phase int

const (
	// PhaseSetup prepares a chapter: words reset, theme chosen.
	PhaseSetup Phase = iota

	// PhaseCollecting gathers user words, one per accepted utterance.
	PhaseCollecting

	// PhaseGenerating waits for the remote engine's performance directive.
	PhaseGenerating

	// PhasePerforming waits for the synchronizer to finish playback.
	PhasePerforming

	// PhaseDone is terminal; further input is a StoryComplete error.
	PhaseDone
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseCollecting:
		return "collecting"
	case PhaseGenerating:
		return "generating"
	case PhasePerforming:
		return "performing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Cycle is one chapter's collection state. Cycles are values: advancing to
// the next chapter replaces the cycle rather than mutating it.
type Cycle struct {
	// Chapter is the 1-based chapter index.
	Chapter int

	// Theme is the chapter's narrative theme.
	Theme string

	// Words are the accepted words, in collection order.
	Words []string

	// Complete is true once exactly WordsPerChapter words are collected.
	Complete bool
}

// Remaining returns how many words the chapter still needs.
func (c Cycle) Remaining() int {
	return WordsPerChapter - len(c.Words)
}

// snapshot returns a defensive copy for callers outside the machine.
func (c Cycle) snapshot() Cycle {
	out := c
	out.Words = make([]string, len(c.Words))
	copy(out.Words, c.Words)
	return out
}
