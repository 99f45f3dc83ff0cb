package director

import "time"

// EventKind classifies director events for the stage monitor.
type EventKind string

const (
	EventPhase       EventKind = "phase"
	EventUtterance   EventKind = "utterance"
	EventWordAccept  EventKind = "word_accepted"
	EventWordReject  EventKind = "word_rejected"
	EventPerformance EventKind = "performance"
	EventScript      EventKind = "script"
	EventError       EventKind = "error"
)

// Event is one observable step of the show.
type Event struct {
	Kind    EventKind `json:"kind"`
	Chapter int       `json:"chapter,omitempty"`
	Text    string    `json:"text,omitempty"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// EventSink receives director events. Implementations must not block;
// the stage hub buffers and drops on slow consumers.
type EventSink interface {
	Publish(Event)
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Publish(Event) {}
