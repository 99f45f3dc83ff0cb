package story

import (
	"errors"
	"fmt"
	"testing"
)

func collectChapter(t *testing.T, m *Machine, words ...string) {
	t.Helper()
	for _, w := range words {
		accepted, err := m.OfferWord(w)
		if err != nil {
			t.Fatalf("OfferWord(%q): %v", w, err)
		}
		if !accepted {
			t.Fatalf("OfferWord(%q): unexpectedly rejected", w)
		}
	}
}

func TestFiveDistinctWordsGate(t *testing.T) {
	for chapter := 1; chapter <= DefaultChapters; chapter++ {
		t.Run(fmt.Sprintf("chapter %d", chapter), func(t *testing.T) {
			m := NewMachine()

			// Drive the machine to the chapter under test.
			for i := 1; i < chapter; i++ {
				if err := m.BeginChapter(); err != nil {
					t.Fatalf("BeginChapter: %v", err)
				}
				collectChapter(t, m,
					fmt.Sprintf("w%d-1", i), fmt.Sprintf("w%d-2", i), fmt.Sprintf("w%d-3", i),
					fmt.Sprintf("w%d-4", i), fmt.Sprintf("w%d-5", i))
				if err := m.DirectiveReady(); err != nil {
					t.Fatalf("DirectiveReady: %v", err)
				}
				if err := m.PerformanceDone(); err != nil {
					t.Fatalf("PerformanceDone: %v", err)
				}
			}

			if err := m.BeginChapter(); err != nil {
				t.Fatalf("BeginChapter: %v", err)
			}
			collectChapter(t, m,
				fmt.Sprintf("c%d-a", chapter), fmt.Sprintf("c%d-b", chapter), fmt.Sprintf("c%d-c", chapter),
				fmt.Sprintf("c%d-d", chapter))

			if m.Phase() != PhaseCollecting {
				t.Fatalf("after 4 words, phase = %s", m.Phase())
			}

			collectChapter(t, m, fmt.Sprintf("c%d-e", chapter))
			if m.Phase() != PhaseGenerating {
				t.Fatalf("after 5th word, phase = %s", m.Phase())
			}

			// A 6th word before generation completes is rejected.
			if _, err := m.OfferWord("straggler"); !errors.Is(err, ErrWrongPhase) {
				t.Errorf("6th word: want ErrWrongPhase, got %v", err)
			}
		})
	}
}

func TestDuplicateWordPolicy(t *testing.T) {
	t.Run("duplicates rejected by default", func(t *testing.T) {
		m := NewMachine()
		if err := m.BeginChapter(); err != nil {
			t.Fatalf("BeginChapter: %v", err)
		}
		collectChapter(t, m, "apple", "mirror", "forest")

		for _, dup := range []string{"mirror", "forest", "Apple"} {
			accepted, err := m.OfferWord(dup)
			if err != nil {
				t.Fatalf("OfferWord(%q): %v", dup, err)
			}
			if accepted {
				t.Errorf("duplicate %q was accepted", dup)
			}
		}

		collectChapter(t, m, "crown", "sleep")
		if m.Phase() != PhaseGenerating {
			t.Errorf("phase = %s after 5 accepted words", m.Phase())
		}
		if got := m.Cycle().Words; len(got) != WordsPerChapter {
			t.Errorf("words = %v", got)
		}
	})

	t.Run("duplicates rejected across chapters", func(t *testing.T) {
		m := NewMachine()
		if err := m.BeginChapter(); err != nil {
			t.Fatal(err)
		}
		collectChapter(t, m, "apple", "mirror", "forest", "crown", "sleep")
		if err := m.DirectiveReady(); err != nil {
			t.Fatal(err)
		}
		if err := m.PerformanceDone(); err != nil {
			t.Fatal(err)
		}
		if err := m.BeginChapter(); err != nil {
			t.Fatal(err)
		}

		accepted, err := m.OfferWord("mirror")
		if err != nil {
			t.Fatal(err)
		}
		if accepted {
			t.Error("chapter-2 repeat of a chapter-1 word was accepted")
		}
	})

	t.Run("AllowDuplicates accepts repeats", func(t *testing.T) {
		m := NewMachine(WithWordPolicy(AllowDuplicates))
		if err := m.BeginChapter(); err != nil {
			t.Fatal(err)
		}
		collectChapter(t, m, "echo", "echo", "echo", "echo", "echo")
		if m.Phase() != PhaseGenerating {
			t.Errorf("phase = %s", m.Phase())
		}
	})
}

func TestChapterAdvanceAndTermination(t *testing.T) {
	m := NewMachine()

	for chapter := 1; chapter <= DefaultChapters; chapter++ {
		if got := m.Cycle().Chapter; got != chapter {
			t.Fatalf("chapter index = %d, want %d", got, chapter)
		}
		if err := m.BeginChapter(); err != nil {
			t.Fatalf("BeginChapter: %v", err)
		}
		collectChapter(t, m,
			fmt.Sprintf("%d-a", chapter), fmt.Sprintf("%d-b", chapter), fmt.Sprintf("%d-c", chapter),
			fmt.Sprintf("%d-d", chapter), fmt.Sprintf("%d-e", chapter))
		if err := m.DirectiveReady(); err != nil {
			t.Fatalf("DirectiveReady: %v", err)
		}
		if err := m.PerformanceDone(); err != nil {
			t.Fatalf("PerformanceDone: %v", err)
		}

		if chapter < DefaultChapters {
			if m.Phase() != PhaseSetup {
				t.Fatalf("after chapter %d, phase = %s", chapter, m.Phase())
			}
		}
	}

	if !m.Done() {
		t.Fatalf("after final chapter, phase = %s", m.Phase())
	}

	// Terminal phase rejects everything with StoryComplete.
	if _, err := m.OfferWord("more"); !errors.Is(err, ErrStoryComplete) {
		t.Errorf("OfferWord after done: %v", err)
	}
	if err := m.BeginChapter(); !errors.Is(err, ErrStoryComplete) {
		t.Errorf("BeginChapter after done: %v", err)
	}
}

func TestForceCompleteOverridesProgression(t *testing.T) {
	cases := []struct {
		name  string
		drive func(m *Machine)
	}{
		{"during collection", func(m *Machine) {
			_ = m.BeginChapter()
			_, _ = m.OfferWord("apple")
		}},
		{"during generation", func(m *Machine) {
			_ = m.BeginChapter()
			for _, w := range []string{"a", "b", "c", "d", "e"} {
				_, _ = m.OfferWord(w)
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine()
			tc.drive(m)
			m.ForceComplete()
			if !m.Done() {
				t.Errorf("phase = %s after force complete", m.Phase())
			}
			// Idempotent.
			m.ForceComplete()
			if !m.Done() {
				t.Error("force complete not idempotent")
			}
		})
	}
}

func TestChapterThemes(t *testing.T) {
	m := NewMachine(WithThemes([]string{"one", "two"}), WithChapters(2))
	if err := m.BeginChapter(); err != nil {
		t.Fatal(err)
	}
	if got := m.Cycle().Theme; got != "one" {
		t.Errorf("chapter 1 theme = %q", got)
	}
}
