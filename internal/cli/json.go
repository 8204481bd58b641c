// Package cli implements the command-line interface.
package cli

import (
	"encoding/json"
	"io"
	"os"
)

// Global JSON output flag
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Meta contains metadata about the response.
type Meta struct {
	Command    string `json:"command,omitempty"`
	DurationMs int64  `json:"duration_ms,omitempty"`
}

// streamFrame is one line of JSON stream output.
type streamFrame struct {
	Type     string      `json:"type"`
	Seq      int         `json:"seq"`
	StreamID string      `json:"stream_id"`
	Payload  interface{} `json:"payload,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// outputJSON writes the response envelope to w.
func outputJSON(w io.Writer, resp Response) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess writes a successful JSON response to stdout.
func outputSuccess(data interface{}, meta *Meta) {
	outputJSON(os.Stdout, Response{
		OK:   true,
		Data: data,
		Meta: meta,
	})
}

// outputError writes an error JSON response. Error envelopes go to
// standard error, same as text-mode errors, so piped stdout stays
// clean.
func outputError(info *ErrorInfo) {
	outputJSON(os.Stderr, Response{
		OK:    false,
		Error: info,
	})
}

// outputStreamFrame outputs one stream event as a single JSON line.
func outputStreamFrame(frame streamFrame) {
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(frame)
}

// isJSONOutput returns true if JSON output is enabled.
func isJSONOutput() bool {
	return jsonOutput
}
