/*
Package chat implements the per-course live chat view: a paginated history
fetch merged with a live WebSocket append stream, plus best-effort sending.

This file defines the Session struct and its lifecycle. A Session belongs to
exactly one course; switching courses means closing the session and creating a
fresh one, so histories never mix. The stream is authenticated by embedding the
bearer token as a path segment, because the stream handshake cannot carry
custom headers in the browser environment the platform was built for.

Delivery contract: sending is fire-and-forget, at-most-once, no acknowledgement
and no retry. There is no reconnection; a dropped stream closes the session.
Live frames that arrive before the history fetch resolves are buffered and
flushed onto the history's tail (deduplicated by message ID), so the rendered
order is deterministic regardless of which of the two races finishes first.
*/
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"learnhub/internal/api"
	"learnhub/internal/pkg/errs"
	"learnhub/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// timeout duration for the WebSocket opening handshake.
	handshakeTimeout = 10 * time.Second

	// buffered capacity of the event channel; the consumer owns draining it.
	eventChannelBuffer = 256

	// streamPathPrefix is the fixed route of the chat stream; the bearer token
	// is appended as a path segment.
	streamPathPrefix = "/ws/chat/"
)

// TokenSource exposes the persisted bearer token to the chat session.
type TokenSource interface {
	Token() string
}

// Session is one mounted chat view for one course.
type Session struct {
	courseID int64

	api    *api.Client
	tokens TokenSource
	dialer *websocket.Dialer

	// mu protects state, conn, messages, pending, and historyLoaded.
	mu            sync.Mutex
	state         State
	conn          *websocket.Conn
	messages      []Message
	pending       []Message
	historyLoaded bool

	// writeMu serializes writes to the connection.
	writeMu sync.Mutex

	// events delivers observations to the consumer; never closed, EventClosed is terminal.
	events chan Event

	// closedOnce guards the single EventClosed emission.
	closedOnce sync.Once

	// structured logger with session context.
	logger zerolog.Logger
}

// NewSession constructs an idle chat session for the given course.
func NewSession(client *api.Client, tokens TokenSource, courseID int64) *Session {
	sessionLogger := logx.Logger().With().
		Str("component", "chat").
		Int64("course_id", courseID).
		Logger()

	return &Session{
		courseID: courseID,
		api:      client,
		tokens:   tokens,
		dialer:   &websocket.Dialer{HandshakeTimeout: handshakeTimeout},
		state:    StateIdle,
		events:   make(chan Event, eventChannelBuffer),
		logger:   sessionLogger,
	}
}

// CourseID returns the course this session is scoped to.
func (s *Session) CourseID() int64 {
	return s.courseID
}

// Events returns the session's observation stream. The channel is never
// closed; EventClosed is the terminal entry.
func (s *Session) Events() <-chan Event {
	return s.events
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a snapshot of the merged message list in render order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Message, len(s.messages))
	copy(snapshot, s.messages)
	return snapshot
}

// Open starts the session: the history fetch and the stream dial run
// concurrently, and the session leaves StateIdle immediately. Open may be
// called once; later calls fail with ErrChatAlreadyOpen.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return errs.NewError(errs.ErrChatAlreadyOpen)
	}
	s.state = StateLoading
	s.mu.Unlock()

	s.logger.Info().Msg("Chat session opening.")

	go s.loadHistory(ctx)
	go s.connect(ctx)

	return nil
}

// Send serializes a message onto the open stream, fire-and-forget.
// Empty (or whitespace-only) text, a session that is not live, and write
// failures are all silent no-ops: nothing is enqueued, nothing raised.
func (s *Session) Send(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	s.mu.Lock()
	conn := s.conn
	live := s.state == StateLive
	s.mu.Unlock()

	if !live || conn == nil {
		s.logger.Debug().Msg("Send attempted with no open stream. Dropping message.")
		return
	}

	frame := outboundFrame{
		Message:  text,
		CourseID: s.courseID,
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to set write deadline")
		return
	}
	if err := conn.WriteJSON(frame); err != nil {
		// At-most-once delivery: the failure is logged and the message is gone.
		s.logger.Warn().Err(err).Msg("Failed to write message to stream")
	}
}

// Close tears the session down: the stream is closed and the state becomes
// StateClosed. Close is idempotent and is the only cancellation signal a
// consumer needs on unmount or course switch.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateClosed
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		s.writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")); err != nil {
			s.logger.Debug().Err(err).Msg("Failed to write close frame")
		}
		s.writeMu.Unlock()

		if err := conn.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Stream close error")
		}
	}

	s.emitClosed()
	s.logger.Info().Msg("Chat session closed.")
}

// loadHistory fetches the persisted message history and flushes any live
// frames buffered while the fetch was in flight. A failed fetch is logged and
// treated as an empty history; the chat stays usable as a live-only view.
func (s *Session) loadHistory(ctx context.Context) {
	var page api.Page[Message]

	path := fmt.Sprintf("/api/chat/rooms/%d/messages/", s.courseID)
	if err := s.api.Get(ctx, path, nil, &page); err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch chat history")
	}

	s.mu.Lock()

	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}

	seen := make(map[int64]struct{}, len(page.Results))
	merged := make([]Message, 0, len(page.Results)+len(s.pending))

	for _, msg := range page.Results {
		seen[msg.ID] = struct{}{}
		merged = append(merged, msg)
	}

	// Flush live frames buffered during the fetch, skipping any the history
	// page already contains.
	for _, msg := range s.pending {
		if _, dup := seen[msg.ID]; dup {
			continue
		}
		seen[msg.ID] = struct{}{}
		merged = append(merged, msg)
	}

	s.messages = merged
	s.pending = nil
	s.historyLoaded = true

	snapshot := make([]Message, len(merged))
	copy(snapshot, merged)

	s.mu.Unlock()

	s.logger.Debug().Int("message_count", len(snapshot)).Msg("Chat history loaded.")
	s.emit(Event{Type: EventHistoryLoaded, History: snapshot})
}

// connect dials the stream and, on success, runs the read loop until the
// connection drops or the session is closed. There is no reconnection.
func (s *Session) connect(ctx context.Context) {
	streamURL := s.api.WebSocketURL(streamPathPrefix + s.tokens.Token() + "/")

	conn, resp, err := s.dialer.DialContext(ctx, streamURL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to open chat stream")
		s.Close()
		return
	}

	s.mu.Lock()
	if s.state == StateClosed {
		// Torn down while the handshake was in flight.
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.conn = conn
	s.state = StateLive
	s.mu.Unlock()

	s.logger.Info().Msg("Chat stream open.")
	s.emit(Event{Type: EventOpened})

	s.readLoop(conn)
}

// readLoop delivers inbound frames until the connection drops. Each frame is
// appended in arrival order; frames arriving before the history flush are
// buffered instead.
func (s *Session) readLoop(conn *websocket.Conn) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if s.State() != StateClosed &&
				websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn().Err(err).Msg("Chat stream dropped")
			}
			s.Close()
			return
		}

		var msg Message
		if err := json.Unmarshal(frame, &msg); err != nil {
			s.logger.Warn().Err(err).Bytes("frame", frame).Msg("Stream delivered invalid JSON")
			continue
		}

		s.mu.Lock()
		if s.state == StateClosed {
			s.mu.Unlock()
			return
		}
		if !s.historyLoaded {
			s.pending = append(s.pending, msg)
			s.mu.Unlock()
			continue
		}
		s.messages = append(s.messages, msg)
		s.mu.Unlock()

		s.emit(Event{Type: EventMessage, Message: msg})
	}
}

// emit delivers an event without blocking. The channel is generously buffered;
// when the consumer falls that far behind, the event is dropped with a warning.
func (s *Session) emit(event Event) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn().Int("queue_len", len(s.events)).Msg("Event channel full, dropping event")
	}
}

// emitClosed delivers the terminal EventClosed exactly once.
func (s *Session) emitClosed() {
	s.closedOnce.Do(func() {
		s.emit(Event{Type: EventClosed})
	})
}
