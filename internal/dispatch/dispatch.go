// Package dispatch resolves a validated command's context prerequisites
// against the persisted selection state and routes it to its registered
// handler, wrapping every outcome in a uniform envelope.
package dispatch

import (
	"context"
	"fmt"

	"github.com/loomctl/loom/internal/ctxstate"
	"github.com/loomctl/loom/internal/validate"
)

// Context error code.
const ErrMissingRequiredContext = "MISSING_REQUIRED_CONTEXT"

// ContextError reports a command whose ambient-context prerequisites are
// not satisfied. Suggestion names the select command that would satisfy
// the missing key.
type ContextError struct {
	Code       string
	Key        string
	Message    string
	Suggestion string
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%s. %s", e.Message, e.Suggestion)
}

// Result statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Result is the uniform envelope every unary command produces.
type Result struct {
	Status  string   `json:"status"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// OK reports whether the result succeeded.
func (r *Result) OK() bool {
	return r.Status == StatusOK
}

// OK builds a successful result.
func OK(data any, message string) *Result {
	return &Result{Status: StatusOK, Data: data, Message: message}
}

// Failed builds an error result.
func Failed(message string, errs ...string) *Result {
	return &Result{Status: StatusError, Message: message, Errors: errs}
}

// Request is everything a handler receives: the validated command and the
// selection state loaded for this dispatch. State is never nil.
type Request struct {
	Command *validate.Command
	State   *ctxstate.State
}

// Flag returns the named flag's text, or "" when absent.
func (r Request) Flag(name string) string {
	if v, ok := r.Command.Flags[name]; ok {
		return v.Text()
	}
	return ""
}

// BoolFlag returns the named boolean flag, or false when absent.
func (r Request) BoolFlag(name string) bool {
	if v, ok := r.Command.Flags[name]; ok {
		return v.Bool
	}
	return false
}

// Handler executes one unary command.
type Handler func(ctx context.Context, req Request) (*Result, error)

// StreamHandler opens the event source behind one streaming command.
type StreamHandler func(ctx context.Context, req Request) (EventSource, error)

// Outcome is the product of one dispatch: exactly one of Result or
// Stream is set, matching the contract's shape.
type Outcome struct {
	Result *Result
	Stream *Stream
}

// Dispatcher routes validated commands to handlers.
type Dispatcher struct {
	store    *ctxstate.Store
	handlers map[string]Handler
	streams  map[string]StreamHandler
}

// New creates a dispatcher reading ambient context from store.
func New(store *ctxstate.Store) *Dispatcher {
	return &Dispatcher{
		store:    store,
		handlers: make(map[string]Handler),
		streams:  make(map[string]StreamHandler),
	}
}

// Register binds a unary handler to a command ID.
func (d *Dispatcher) Register(id string, h Handler) {
	d.handlers[id] = h
}

// RegisterStream binds a streaming handler to a command ID.
func (d *Dispatcher) RegisterStream(id string, h StreamHandler) {
	d.streams[id] = h
}

// Dispatch checks cmd's context prerequisites and routes it. Context
// failures return a *ContextError; handler errors are returned as-is for
// the CLI driver to render.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd *validate.Command) (*Outcome, error) {
	state := &ctxstate.State{}
	if !cmd.ContextFree {
		loaded, err := d.store.Load()
		if err != nil {
			return nil, err
		}
		state = loaded

		for _, key := range cmd.ContextKeys {
			if state.Get(key) != "" {
				continue
			}
			return nil, &ContextError{
				Code:       ErrMissingRequiredContext,
				Key:        key,
				Message:    fmt.Sprintf("no %s selected", describeKey(key)),
				Suggestion: fmt.Sprintf("Run 'loom %s' first", selectCommandFor(key)),
			}
		}
	}

	req := Request{Command: cmd, State: state}

	if cmd.Streaming {
		h, ok := d.streams[cmd.ID]
		if !ok {
			return nil, fmt.Errorf("no streaming handler registered for %s", cmd.ID)
		}
		src, err := h(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Outcome{Stream: newStream(src)}, nil
	}

	h, ok := d.handlers[cmd.ID]
	if !ok {
		return nil, fmt.Errorf("no handler registered for %s", cmd.ID)
	}
	result, err := h(ctx, req)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = OK(nil, "")
	}
	return &Outcome{Result: result}, nil
}

func describeKey(key string) string {
	switch key {
	case ctxstate.KeyProject:
		return "project"
	case ctxstate.KeyRoadmap:
		return "roadmap"
	case ctxstate.KeyChat:
		return "chat"
	}
	return key
}

func selectCommandFor(key string) string {
	switch key {
	case ctxstate.KeyProject:
		return "project select --id <project-id>"
	case ctxstate.KeyRoadmap:
		return "roadmap select --id <roadmap-id>"
	case ctxstate.KeyChat:
		return "chat select --id <chat-id>"
	}
	return "context show"
}
