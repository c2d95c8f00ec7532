/*
Package chat implements the per-course live chat view: a paginated history
fetch merged with a live WebSocket append stream, plus best-effort sending.

This file defines the wire structures and the event stream a consumer of a
chat session observes.
*/
package chat

// Sender identifies the author of a chat message. History frames carry the
// full profile; live frames omit the email.
type Sender struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Message is one chat message, inbound from either the history endpoint or the
// live stream. Timestamps stay opaque strings because the platform formats
// them differently on the two paths.
type Message struct {
	ID int64 `json:"id"`

	// Room is the platform-side chat room ID.
	Room int64 `json:"room,omitempty"`

	// Text is the message body. The wire field is named "message".
	Text string `json:"message"`

	Sender    Sender `json:"sender"`
	Timestamp string `json:"timestamp"`
}

// outboundFrame is the JSON frame serialized onto the stream when sending.
type outboundFrame struct {
	Message  string `json:"message"`
	CourseID int64  `json:"course_id"`
}

// State is the lifecycle position of a chat session.
type State int

const (
	// StateIdle: constructed, nothing started.
	StateIdle State = iota

	// StateLoading: history fetch and stream dial are in flight.
	StateLoading

	// StateLive: the stream reported open; live frames append as they arrive.
	StateLive

	// StateClosed: torn down, deliberately or by a stream failure. Terminal.
	StateClosed
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLive:
		return "live"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// EventType tags the entries on a session's event stream.
type EventType int

const (
	// EventOpened: the stream connection reported open.
	EventOpened EventType = iota

	// EventHistoryLoaded: the history fetch resolved and buffered live frames
	// were flushed; History carries the merged result.
	EventHistoryLoaded

	// EventMessage: one live message appended after the history flush.
	EventMessage

	// EventClosed: the session reached StateClosed. Always the last event.
	EventClosed
)

// Event is one observation delivered on the session's event channel.
type Event struct {
	Type EventType

	// Message is set for EventMessage.
	Message Message

	// History is set for EventHistoryLoaded: the full message list at flush time.
	History []Message
}
