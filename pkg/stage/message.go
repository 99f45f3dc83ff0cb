// Package stage serves a live monitor for the performance: a small web
// dashboard that mirrors the show's phase, collected words, and playback
// outcomes over websockets. It is read-only; nothing here touches the
// dialogue session.
package stage

// MessageType indicates the websocket message format.
type MessageType int

const (
	// JSONMessage is a JSON-encoded event.
	JSONMessage MessageType = iota
	// BinaryMessage is raw binary data.
	BinaryMessage
)

// Message is one payload queued for broadcast.
type Message struct {
	Type MessageType
	Data []byte
}
