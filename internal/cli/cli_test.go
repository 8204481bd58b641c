package cli

import (
	"encoding/json"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/loomctl/loom/internal/command"
	"github.com/loomctl/loom/internal/dispatch"
	"github.com/loomctl/loom/internal/validate"
)

func TestHelpRequest(t *testing.T) {
	tests := []struct {
		in       string
		wantPath []string
		wantOK   bool
	}{
		{"help", nil, true},
		{"help project", []string{"project"}, true},
		{"project --help", []string{"project"}, true},
		{"roadmap view -h", []string{"roadmap", "view"}, true},
		{"project list", nil, false},
		{"agent chat send --message help", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			path, ok := helpRequest(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !reflect.DeepEqual(path, tt.wantPath) {
				t.Errorf("path = %v, want %v", path, tt.wantPath)
			}
		})
	}
}

func TestResolveBareNamespace(t *testing.T) {
	validated, err := resolve("project")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if validated != nil {
		t.Errorf("bare namespace should resolve to a help request, got %+v", validated)
	}
}

func TestResolveFullCommand(t *testing.T) {
	validated, err := resolve(`project view --id p-42`)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if validated == nil || validated.ID != "project_view" {
		t.Errorf("validated = %+v", validated)
	}
}

func TestResolveRejectsBadInput(t *testing.T) {
	_, err := resolve(`project view --id "p-42`)
	var lexErr *command.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("err = %v", err)
	}
	if lexErr.Code != command.ErrUnterminatedString {
		t.Errorf("Code = %s", lexErr.Code)
	}
}

func TestErrorInfoFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			"lex error",
			&command.LexError{Code: command.ErrIllegalCharacter, Pos: 3, Message: "illegal character"},
			command.ErrIllegalCharacter,
		},
		{
			"parse error",
			&command.ParseError{Code: command.ErrUnexpectedToken, Pos: 9, Message: "unexpected token"},
			command.ErrUnexpectedToken,
		},
		{
			"validation error",
			&validate.Error{Code: validate.ErrUnknownFlag, Message: "unknown flag"},
			validate.ErrUnknownFlag,
		},
		{
			"context error",
			&dispatch.ContextError{Code: dispatch.ErrMissingRequiredContext, Key: "activeProject", Message: "no project selected"},
			dispatch.ErrMissingRequiredContext,
		},
		{
			"plain error",
			errors.New("boom"),
			ErrInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := errorInfoFor(tt.err)
			if info.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", info.Code, tt.wantCode)
			}
		})
	}
}

func TestIsPipelineError(t *testing.T) {
	if !isPipelineError(&validate.Error{Code: validate.ErrUnknownCommand}) {
		t.Error("validation errors are pipeline errors")
	}
	if isPipelineError(errors.New("connection refused")) {
		t.Error("plain errors are not pipeline errors")
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != exitOK {
		t.Errorf("ExitCode(nil) = %d", got)
	}
	if got := ExitCode(&exitError{code: exitRejected}); got != exitRejected {
		t.Errorf("ExitCode(rejected) = %d", got)
	}
	if got := ExitCode(errors.New("boom")); got != exitFailed {
		t.Errorf("ExitCode(plain) = %d", got)
	}
}

func TestOverviewHelpListsNamespaces(t *testing.T) {
	md := overviewHelp()
	for _, ns := range []string{"project", "roadmap", "chat", "agent", "settings", "context", "alias"} {
		if !strings.Contains(md, "`"+ns+"`") {
			t.Errorf("overview missing namespace %s:\n%s", ns, md)
		}
	}
}

func TestCommandHelpShowsFlags(t *testing.T) {
	md := commandHelp("project", []string{"create"})
	if !strings.Contains(md, "loom project create") {
		t.Errorf("missing title:\n%s", md)
	}
	if !strings.Contains(md, "--name") || !strings.Contains(md, "required") {
		t.Errorf("missing required flag:\n%s", md)
	}
	if !strings.Contains(md, "--tags") {
		t.Errorf("missing tags flag:\n%s", md)
	}
}

func TestCommandHelpPrefersLongestMatch(t *testing.T) {
	md := commandHelp("roadmap", []string{"view", "tasks"})
	if !strings.Contains(md, "loom roadmap view tasks") {
		t.Errorf("expected task breakdown help:\n%s", md)
	}
	if !strings.Contains(md, "--status") {
		t.Errorf("missing status flag:\n%s", md)
	}
}

func TestOutputErrorWritesToStderr(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	old := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = old }()

	outputError(&ErrorInfo{Code: "UNKNOWN_COMMAND", Message: "unknown command in namespace 'project'"})
	w.Close()

	var resp Response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if resp.OK {
		t.Error("OK = true for error envelope")
	}
	if resp.Error == nil || resp.Error.Code != "UNKNOWN_COMMAND" {
		t.Errorf("Error = %+v", resp.Error)
	}
}
