package dispatch

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

// EventKind frames a stream envelope. Every stream begins with
// stream-start and ends with exactly one of stream-end or interrupt;
// callers distinguish "finished", "interrupted", and "still running" by
// which terminal marker, if any, they have observed.
type EventKind string

const (
	EventStreamStart EventKind = "stream-start"
	EventData        EventKind = "event"
	EventStreamEnd   EventKind = "stream-end"
	EventInterrupt   EventKind = "interrupt"
)

// Event is one envelope in a command's event stream. Seq increases
// monotonically from 1 and StreamID is shared by every envelope of the
// same stream.
type Event struct {
	Kind     EventKind `json:"kind"`
	Seq      int       `json:"seq"`
	StreamID string    `json:"stream_id"`
	Payload  any       `json:"payload,omitempty"`
	Err      string    `json:"error,omitempty"`
}

// Terminal reports whether no further events follow this one.
func (e Event) Terminal() bool {
	return e.Kind == EventStreamEnd || e.Kind == EventInterrupt
}

// EventSource is the raw event producer behind a streaming handler.
// Next returns io.EOF when the source is exhausted. Production and
// consumption share the caller's goroutine; Next may block waiting for
// the next event.
type EventSource interface {
	Next(ctx context.Context) (any, error)
	Close() error
}

// Stream wraps an EventSource in the uniform start/event/end framing.
// It is pull-based: each call to Next yields the next envelope.
type Stream struct {
	id   string
	src  EventSource
	seq  int
	done bool
}

func newStream(src EventSource) *Stream {
	return &Stream{id: uuid.NewString(), src: src}
}

// ID returns the correlation identifier shared by all of the stream's
// envelopes.
func (s *Stream) ID() string {
	return s.id
}

// Next returns the next envelope. After a terminal envelope has been
// returned, ok is false.
func (s *Stream) Next(ctx context.Context) (ev Event, ok bool) {
	if s.done {
		return Event{}, false
	}

	if s.seq == 0 {
		return s.emit(EventStreamStart, nil, nil), true
	}

	if err := ctx.Err(); err != nil {
		return s.terminate(EventInterrupt, err), true
	}

	payload, err := s.src.Next(ctx)
	switch {
	case err == nil:
		return s.emit(EventData, payload, nil), true
	case errors.Is(err, io.EOF):
		return s.terminate(EventStreamEnd, nil), true
	default:
		// Cancellation and source faults both surface as a terminal
		// interrupt, never as a raw fault mid-stream.
		return s.terminate(EventInterrupt, err), true
	}
}

func (s *Stream) emit(kind EventKind, payload any, err error) Event {
	s.seq++
	ev := Event{Kind: kind, Seq: s.seq, StreamID: s.id, Payload: payload}
	if err != nil && !errors.Is(err, context.Canceled) {
		ev.Err = err.Error()
	} else if err != nil {
		ev.Err = "interrupted"
	}
	return ev
}

func (s *Stream) terminate(kind EventKind, err error) Event {
	ev := s.emit(kind, nil, err)
	s.done = true
	_ = s.src.Close()
	return ev
}

// Drain consumes the remaining envelopes and returns them in order.
func (s *Stream) Drain(ctx context.Context) []Event {
	var events []Event
	for {
		ev, ok := s.Next(ctx)
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}
