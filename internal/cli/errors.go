// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/loomctl/loom/internal/command"
	"github.com/loomctl/loom/internal/dispatch"
	"github.com/loomctl/loom/internal/validate"
)

// Exit codes. Pipeline rejections (bad input, unknown commands, missing
// context) exit 2 so scripts can tell them from execution failures.
const (
	exitOK       = 0
	exitFailed   = 1
	exitRejected = 2
)

// ErrInternal is the fallback code for errors without a pipeline code.
const ErrInternal = "INTERNAL_ERROR"

// exitError carries an exit code through cobra without re-printing; the
// pipeline renders its own output before returning it.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit %d", e.code)
}

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return exitFailed
}

// errorInfoFor converts a pipeline error into the structured envelope
// form, preserving its code, position, details, and suggestion.
func errorInfoFor(err error) *ErrorInfo {
	var lexErr *command.LexError
	if errors.As(err, &lexErr) {
		return &ErrorInfo{
			Code:    lexErr.Code,
			Message: lexErr.Message,
			Details: map[string]any{"position": lexErr.Pos},
		}
	}

	var parseErr *command.ParseError
	if errors.As(err, &parseErr) {
		return &ErrorInfo{
			Code:    parseErr.Code,
			Message: parseErr.Message,
			Details: map[string]any{"position": parseErr.Pos},
		}
	}

	var valErr *validate.Error
	if errors.As(err, &valErr) {
		return &ErrorInfo{
			Code:       valErr.Code,
			Message:    valErr.Message,
			Details:    valErr.Details,
			Suggestion: valErr.Suggestion,
		}
	}

	var ctxErr *dispatch.ContextError
	if errors.As(err, &ctxErr) {
		return &ErrorInfo{
			Code:       ctxErr.Code,
			Message:    ctxErr.Message,
			Details:    map[string]any{"missing_key": ctxErr.Key},
			Suggestion: ctxErr.Suggestion,
		}
	}

	return &ErrorInfo{Code: ErrInternal, Message: err.Error()}
}

// isPipelineError reports whether err was produced by the pipeline
// itself rather than by executing the command.
func isPipelineError(err error) bool {
	var lexErr *command.LexError
	var parseErr *command.ParseError
	var valErr *validate.Error
	var ctxErr *dispatch.ContextError
	return errors.As(err, &lexErr) || errors.As(err, &parseErr) ||
		errors.As(err, &valErr) || errors.As(err, &ctxErr)
}
