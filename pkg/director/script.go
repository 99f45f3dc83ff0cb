package director

import (
	"context"
	"time"

	"github.com/teslashibe/go-nao-story/pkg/performance"
)

// Beat is one scripted line: narration plus a fixed gesture, optionally
// preceded by a pause for comedic timing.
type Beat struct {
	Text     string
	Gesture  string
	PreDelay time.Duration
}

// OpeningScript introduces the show and explains the word game before the
// first chapter starts.
var OpeningScript = []Beat{
	{
		Text:    "Hello, my name is Nao.",
		Gesture: "animations/Stand/Gestures/Hey_5",
	},
	{
		Text:    "Today I will be telling a well-known fairy-tale story: Snow White.",
		Gesture: "animations/Stand/Gestures/Me_7",
	},
	{
		Text:    "We all know this childhood story, but today we will tell it with a twist.",
		Gesture: "animations/Stand/Gestures/YouKnowWhat_5",
	},
	{
		Text:    "You will be helping me.",
		Gesture: "animations/Stand/Gestures/You_3",
	},
	{
		Text:    "You will do so by giving me words to fill in the story.",
		Gesture: "animations/Stand/Gestures/Joy_1",
	},
	{
		Text:    "I will ask certain questions for specific words,",
		Gesture: "animations/Stand/Gestures/Me_2",
	},
	{
		Text:    "and my assistants will come to you to collect the answers.",
		Gesture: "animations/Stand/Gestures/Thinking_2",
	},
	{
		Text:    "Please keep the words family-friendly, as I am not allowed to use offensive words.",
		Gesture: "animations/Stand/Gestures/Please_3",
	},
	{
		Text:    "Now that everything is clear, let's begin.",
		Gesture: "animations/Stand/Gestures/Enthusiastic_3",
	},
}

// ClosingScript thanks the audience after the last chapter.
var ClosingScript = []Beat{
	{
		Text:    "Well, that was it. Thank you for listening, and thank you to my assistants for helping.",
		Gesture: "animations/Stand/Gestures/You_3",
	},
	{
		Text:    "I wish you all a very nice day.",
		Gesture: "animations/Stand/Gestures/You_4",
	},
	{
		Text:     "Oh! I almost forgot. Merry Christmas in advance!",
		Gesture:  "animations/Stand/Gestures/Me_2",
		PreDelay: time.Second,
	},
	{
		Text:     "And have a fantastic New Year as well!",
		Gesture:  "animations/Stand/Emotions/Positive/Laugh_2",
		PreDelay: 2 * time.Second,
	},
	{
		Text:     "Okay, that is really it. Bye!",
		Gesture:  "animations/Stand/Gestures/Hey_6",
		PreDelay: 2 * time.Second,
	},
}

// performScript plays an ordered beat list through the synchronizer.
// An abort stops the script; channel faults do not.
func (d *Director) performScript(ctx context.Context, name string, beats []Beat) error {
	d.logger.Info("performing script", "script", name, "beats", len(beats))

	for i, beat := range beats {
		if beat.PreDelay > 0 {
			t := time.NewTimer(beat.PreDelay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}

		plan := d.resolver.Resolve(nil, beat.Text)
		if beat.Gesture != "" {
			plan.Animation = beat.Gesture
		}

		d.publish(Event{Kind: EventScript, Text: beat.Text, Detail: name})
		outcome, err := d.performer.Perform(ctx, plan)
		if outcome == performance.OutcomeAborted {
			return err
		}
		d.logger.Debug("script beat done", "script", name, "beat", i+1, "outcome", outcome)
	}
	return nil
}
