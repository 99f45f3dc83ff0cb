// Package director runs the show. A single goroutine drives the dialogue
// engine and the cycle state machine in lock-step: one flow per chapter,
// five collected words per flow, then the engine's narrative directive is
// performed through the synchronizer before the next chapter starts.
//
// The director owns all session mutation. The three output channels only
// ever see resolved expression plans.
package director

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teslashibe/go-nao-story/pkg/dialogflow"
	"github.com/teslashibe/go-nao-story/pkg/expression"
	"github.com/teslashibe/go-nao-story/pkg/performance"
	"github.com/teslashibe/go-nao-story/pkg/story"
)

// Transcriber produces one user utterance per call, blocking until speech
// is captured or ctx is canceled.
type Transcriber interface {
	Listen(ctx context.Context) (string, error)
}

// Performer executes one expression plan to completion.
type Performer interface {
	Perform(ctx context.Context, plan expression.Plan) (performance.Outcome, error)
}

// Speaker voices short conversational turns (prompts, reprompts) with the
// robot's built-in voice, outside the performance pipeline.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// exitWords end the show immediately when heard.
var exitWords = map[string]bool{"quit": true, "exit": true, "stop": true}

// Config wires the director's collaborators.
type Config struct {
	// Engine is the dialogue engine client.
	Engine dialogflow.Engine

	// Flows lists the flow IDs to run in order, one per chapter.
	Flows []string

	// Machine is the narrative cycle state machine. Defaults to a fresh
	// machine sized to len(Flows).
	Machine *story.Machine

	// Resolver maps directives and text to expression plans.
	Resolver *expression.Resolver

	// Performer executes plans. Required.
	Performer Performer

	// Transcriber captures user speech. Required.
	Transcriber Transcriber

	// Speaker voices conversational filler. Required.
	Speaker Speaker

	// Sink receives show events. Defaults to NopSink.
	Sink EventSink

	// MaxReprompts bounds consecutive transient transport failures before
	// the show gives up. Defaults to 3.
	MaxReprompts int

	// InterFlowPause is the breather between chapters. Defaults to 2s.
	InterFlowPause time.Duration

	// SkipScripts disables the scripted opening and closing beats.
	SkipScripts bool

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Validate checks required collaborators.
func (c *Config) Validate() error {
	if c.Engine == nil {
		return errors.New("director: engine required")
	}
	if len(c.Flows) == 0 {
		return errors.New("director: at least one flow required")
	}
	if c.Performer == nil {
		return errors.New("director: performer required")
	}
	if c.Transcriber == nil {
		return errors.New("director: transcriber required")
	}
	if c.Speaker == nil {
		return errors.New("director: speaker required")
	}
	return nil
}

// Director orchestrates one storytelling session.
type Director struct {
	engine      dialogflow.Engine
	flows       []string
	machine     *story.Machine
	resolver    *expression.Resolver
	performer   Performer
	transcriber Transcriber
	speaker     Speaker
	sink        EventSink
	logger      *slog.Logger

	maxReprompts   int
	interFlowPause time.Duration
	skipScripts    bool

	sessionID string
}

// New creates a director from the config.
func New(cfg Config) (*Director, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Machine == nil {
		cfg.Machine = story.NewMachine(story.WithChapters(len(cfg.Flows)))
	}
	if cfg.Resolver == nil {
		cfg.Resolver = expression.NewResolver()
	}
	if cfg.Sink == nil {
		cfg.Sink = NopSink{}
	}
	if cfg.MaxReprompts <= 0 {
		cfg.MaxReprompts = 3
	}
	if cfg.InterFlowPause <= 0 {
		cfg.InterFlowPause = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Director{
		engine:         cfg.Engine,
		flows:          cfg.Flows,
		machine:        cfg.Machine,
		resolver:       cfg.Resolver,
		performer:      cfg.Performer,
		transcriber:    cfg.Transcriber,
		speaker:        cfg.Speaker,
		sink:           cfg.Sink,
		logger:         cfg.Logger.With("component", "director"),
		maxReprompts:   cfg.MaxReprompts,
		interFlowPause: cfg.InterFlowPause,
		skipScripts:    cfg.SkipScripts,
	}, nil
}

// Run performs the whole show: opening script, one flow per chapter, then
// the closing script. It returns nil on a completed or user-ended show and
// an error on protocol failure or cancellation.
func (d *Director) Run(ctx context.Context) error {
	if !d.skipScripts {
		if err := d.performScript(ctx, "opening", OpeningScript); err != nil {
			return err
		}
	}

	for i, flowID := range d.flows {
		chapter := i + 1
		if d.machine.Done() {
			break
		}

		if err := d.runChapter(ctx, chapter, flowID); err != nil {
			return err
		}
		if d.machine.Done() {
			break
		}

		if i < len(d.flows)-1 {
			if err := sleepCtx(ctx, d.interFlowPause); err != nil {
				return err
			}
		}
	}

	if !d.skipScripts {
		if err := d.performScript(ctx, "closing", ClosingScript); err != nil {
			return err
		}
	}
	d.publish(Event{Kind: EventPhase, Text: story.PhaseDone.String()})
	return nil
}

// runChapter drives one flow from start page through performed narrative.
func (d *Director) runChapter(ctx context.Context, chapter int, flowID string) error {
	if err := d.machine.BeginChapter(); err != nil {
		return err
	}
	d.publishPhase(chapter)
	d.logger.Info("chapter started", "chapter", chapter, "flow", flowID)

	resp, err := d.engine.StartFlow(ctx, flowID, dialogflow.StartOptions{SessionID: d.sessionID})
	if err != nil {
		return fmt.Errorf("start chapter %d: %w", chapter, err)
	}
	d.sessionID = d.engine.Session().ID

	result, err := dialogflow.Parse(resp)
	if err != nil {
		return err
	}

	// Local chapter index and the engine's current_cycle must stay in
	// lock-step; drift is a protocol error, never silently resolved.
	if view := d.engine.Session(); view != nil {
		if err := view.CheckCycle(chapter); err != nil {
			return err
		}
	}

	// The flow-start turn carries the engine's own prompt, not a user
	// word; never collect from it.
	if err := d.handleTurn(ctx, chapter, result, false); err != nil || d.machine.Done() {
		return err
	}

	reprompts := 0
	for !d.machine.Done() && d.machine.Phase() != story.PhaseSetup {
		utterance, err := d.transcriber.Listen(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.logger.Warn("transcription failed", "error", err)
			continue
		}
		utterance = strings.TrimSpace(utterance)
		if utterance == "" {
			continue
		}
		d.publish(Event{Kind: EventUtterance, Chapter: chapter, Text: utterance})

		if exitWords[strings.ToLower(utterance)] {
			d.logger.Info("exit word heard, ending show")
			d.machine.ForceComplete()
			d.speaker.Say(ctx, "Goodbye!")
			d.publishPhase(chapter)
			return nil
		}

		resp, err := d.engine.DetectIntent(ctx, utterance, d.sessionID, dialogflow.QueryOptions{})
		if err != nil {
			if dialogflow.IsTransient(err) {
				reprompts++
				if reprompts > d.maxReprompts {
					return fmt.Errorf("chapter %d: giving up after %d transient failures: %w", chapter, reprompts-1, err)
				}
				d.logger.Warn("transient transport failure, reprompting", "attempt", reprompts, "error", err)
				d.speaker.Say(ctx, "Sorry, I missed that. Could you say it again?")
				continue
			}
			if dialogflow.IsSessionFatal(err) {
				d.publish(Event{Kind: EventError, Chapter: chapter, Detail: err.Error()})
				d.speaker.Say(ctx, "I seem to have lost the thread of our story. Thank you for playing with me!")
				return fmt.Errorf("chapter %d: session ended: %w", chapter, err)
			}
			return fmt.Errorf("chapter %d: %w", chapter, err)
		}
		reprompts = 0

		result, err := dialogflow.Parse(resp)
		if err != nil {
			return err
		}
		if err := d.handleTurn(ctx, chapter, result, true); err != nil {
			return err
		}
	}
	return nil
}

// handleTurn reacts to one parsed engine response according to the current
// machine phase. collectWords is false for turns that cannot carry a user
// word, such as the flow-start greeting.
func (d *Director) handleTurn(ctx context.Context, chapter int, result *dialogflow.DialogueResult, collectWords bool) error {
	directive := result.Directive()

	// A user-initiated exit always wins over chapter progression.
	if result.EndInteraction && directive == nil &&
		(d.machine.Phase() == story.PhaseCollecting || d.machine.Phase() == story.PhaseGenerating) {
		d.logger.Info("end of interaction during chapter, completing story", "chapter", chapter)
		d.machine.ForceComplete()
		d.publishPhase(chapter)
		d.sayMessages(ctx, result.FulfillmentMessages)
		return nil
	}

	if collectWords && d.machine.Phase() == story.PhaseCollecting {
		if word := candidateWord(result); word != "" {
			accepted, err := d.machine.OfferWord(word)
			if err != nil {
				return err
			}
			if accepted {
				d.publish(Event{Kind: EventWordAccept, Chapter: chapter, Text: word})
				d.logger.Info("word accepted", "chapter", chapter, "word", word,
					"remaining", d.machine.Cycle().Remaining())
			} else {
				d.publish(Event{Kind: EventWordReject, Chapter: chapter, Text: word})
				d.speaker.Say(ctx, "We already used that word. Give me a different one!")
				return nil
			}
		}
	}

	if d.machine.Phase() == story.PhaseGenerating && directive != nil {
		if err := d.machine.DirectiveReady(); err != nil {
			return err
		}
		d.publishPhase(chapter)
		if err := d.performNarrative(ctx, chapter, directive); err != nil {
			return err
		}
		if err := d.machine.PerformanceDone(); err != nil {
			return err
		}
		d.publishPhase(chapter)
		return nil
	}

	d.sayMessages(ctx, result.FulfillmentMessages)
	return nil
}

// performNarrative splits directive text into beats and performs them in
// order. The directive's motion and color apply to the first beat; later
// beats fall back to keyword resolution so the gestures follow the text.
func (d *Director) performNarrative(ctx context.Context, chapter int, directive *dialogflow.PerformanceDirective) error {
	beats := SplitBeats(directive.Text)
	if len(beats) == 0 {
		beats = []string{directive.Text}
	}
	d.logger.Info("performing narrative", "chapter", chapter, "beats", len(beats))

	for i, beat := range beats {
		var plan expression.Plan
		if i == 0 {
			plan = d.resolver.Resolve(directive, beat)
			plan.Text = beat
		} else {
			plan = d.resolver.Resolve(nil, beat)
		}

		outcome, err := d.performer.Perform(ctx, plan)
		if outcome == performance.OutcomeAborted {
			return err
		}
		d.publish(Event{
			Kind:    EventPerformance,
			Chapter: chapter,
			Text:    beat,
			Detail:  outcome.String(),
		})
	}
	return nil
}

// sayMessages voices cleaned fulfillment prompts.
func (d *Director) sayMessages(ctx context.Context, messages []string) {
	for _, msg := range messages {
		msg = CleanSpeechText(msg)
		if msg == "" {
			continue
		}
		if err := d.speaker.Say(ctx, msg); err != nil {
			d.logger.Warn("prompt speech failed", "error", err)
		}
	}
}

// candidateWord extracts the word the engine collected this turn, falling
// back to the raw transcript for engines that do not echo parameters.
func candidateWord(result *dialogflow.DialogueResult) string {
	if w, ok := result.Parameters["last_word"].(string); ok && w != "" {
		return w
	}
	if result.Transcript != "" && len(strings.Fields(result.Transcript)) == 1 {
		return result.Transcript
	}
	return ""
}

func (d *Director) publish(e Event) {
	e.At = time.Now()
	d.sink.Publish(e)
}

func (d *Director) publishPhase(chapter int) {
	d.publish(Event{
		Kind:    EventPhase,
		Chapter: chapter,
		Text:    d.machine.Phase().String(),
	})
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
