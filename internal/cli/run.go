package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/loomctl/loom/internal/alias"
	"github.com/loomctl/loom/internal/api"
	"github.com/loomctl/loom/internal/command"
	"github.com/loomctl/loom/internal/config"
	"github.com/loomctl/loom/internal/ctxstate"
	"github.com/loomctl/loom/internal/dispatch"
	"github.com/loomctl/loom/internal/handlers"
	"github.com/loomctl/loom/internal/history"
	"github.com/loomctl/loom/internal/registry"
	"github.com/loomctl/loom/internal/shellquote"
	"github.com/loomctl/loom/internal/ui"
	"github.com/loomctl/loom/internal/validate"
)

// runPipeline drives one invocation end to end: alias expansion,
// tokenize, parse, validate, context check, dispatch, render.
func runPipeline(cmd *cobra.Command, args []string) error {
	raw := shellquote.Join(args)

	aliasPath := config.ResolveAliasPath(resolvedConfigPath)
	if set, err := alias.Load(aliasPath); err == nil {
		raw = set.Expand(raw)
	} else if verbose {
		fmt.Fprintf(os.Stderr, "warning: aliases unavailable: %v\n", err)
	}

	if strings.TrimSpace(raw) == "" {
		return showHelp(nil)
	}
	if words, ok := helpRequest(raw); ok {
		return showHelp(words)
	}

	start := time.Now()
	validated, err := resolve(raw)
	if err != nil {
		recordHistory(raw, "", "rejected", time.Since(start))
		return renderError(err)
	}

	// Bare namespace input reads as a help request, not a command.
	if validated == nil {
		return showHelp([]string{strings.Fields(raw)[0]})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var spin *ui.Spinner
	if validated.Streaming && !isJSONOutput() {
		spin = ui.NewSpinner("waiting for agent")
		spin.Start()
	}
	outcome, err := execute(ctx, validated)
	if spin != nil {
		spin.Stop()
	}
	status := "ok"
	if err != nil {
		if isPipelineError(err) {
			status = "rejected"
		} else {
			status = "error"
		}
	} else if outcome.Result != nil && !outcome.Result.OK() {
		status = "error"
	}
	recordHistory(raw, validated.ID, status, time.Since(start))

	if err != nil {
		return renderError(err)
	}
	if outcome.Stream != nil {
		return renderStream(ctx, outcome.Stream)
	}
	return renderResult(validated, outcome.Result, time.Since(start))
}

// resolve runs the front half of the pipeline. A nil command with nil
// error means the input was a bare namespace.
func resolve(raw string) (*validate.Command, error) {
	tree, err := command.ParseInput(raw)
	if err != nil {
		return nil, err
	}
	if len(tree.Path) == 1 && len(tree.Positionals) == 0 && len(tree.Named) == 0 &&
		registry.HasNamespace(tree.Path[0]) {
		return nil, nil
	}
	return validate.Validate(tree)
}

// execute builds the dispatcher with live collaborators and routes the
// validated command.
func execute(ctx context.Context, validated *validate.Command) (*dispatch.Outcome, error) {
	store := ctxstate.NewStore(resolvedStatePath)
	deps := handlers.Deps{
		Client:     api.New(cfg.EffectiveServerURL(serverFlag), cfg.EffectiveToken()),
		Store:      store,
		Config:     cfg,
		ConfigPath: resolvedConfigPath,
		AliasPath:  config.ResolveAliasPath(resolvedConfigPath),
		History:    openHistory(),
	}

	d := dispatch.New(store)
	handlers.Register(d, deps)
	return d.Dispatch(ctx, validated)
}

var historyRecorder *history.Recorder

// openHistory lazily opens the invocation history. A history failure is
// reported in verbose mode and otherwise ignored.
func openHistory() *history.Recorder {
	if historyRecorder != nil {
		return historyRecorder
	}
	rec, err := history.Open(config.ResolveHistoryPath(resolvedConfigPath))
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		}
		return nil
	}
	historyRecorder = rec
	return rec
}

func recordHistory(raw, commandID, status string, duration time.Duration) {
	rec := openHistory()
	if rec == nil {
		return
	}
	if err := rec.Record(raw, commandID, status, duration); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "warning: history write failed: %v\n", err)
	}
}

// renderError prints a pipeline or execution error and maps it to the
// right exit code.
func renderError(err error) error {
	info := errorInfoFor(err)

	if isJSONOutput() {
		outputError(info)
	} else {
		fmt.Fprintln(os.Stderr, ui.Error(info.Message))
		if info.Suggestion != "" {
			fmt.Fprintln(os.Stderr, ui.Hint(info.Suggestion))
		}
	}

	if isPipelineError(err) {
		return &exitError{code: exitRejected}
	}
	return &exitError{code: exitFailed}
}

// renderResult prints a unary command's result envelope.
func renderResult(validated *validate.Command, result *dispatch.Result, elapsed time.Duration) error {
	if isJSONOutput() {
		if result.OK() {
			outputSuccess(result.Data, &Meta{Command: validated.ID, DurationMs: elapsed.Milliseconds()})
		} else {
			outputError(&ErrorInfo{Code: ErrInternal, Message: result.Message, Details: result.Errors})
		}
	} else {
		if result.Message != "" {
			if result.OK() {
				fmt.Println(ui.Success(result.Message))
			} else {
				fmt.Fprintln(os.Stderr, ui.Error(result.Message))
			}
		}
		if result.Data != nil && result.OK() {
			printData(result.Data)
		}
	}

	if !result.OK() {
		return &exitError{code: exitFailed}
	}
	return nil
}

// renderStream consumes a stream to completion, printing each event as
// it arrives. An interrupt marker ends the stream with a failure exit.
func renderStream(ctx context.Context, stream *dispatch.Stream) error {
	interrupted := false
	for {
		event, ok := stream.Next(ctx)
		if !ok {
			break
		}

		if isJSONOutput() {
			outputStreamFrame(streamFrame{
				Type:     string(event.Kind),
				Seq:      event.Seq,
				StreamID: event.StreamID,
				Payload:  event.Payload,
				Error:    event.Err,
			})
		} else {
			printStreamEvent(event)
		}

		if event.Kind == dispatch.EventInterrupt {
			interrupted = true
		}
	}

	if interrupted {
		return &exitError{code: exitFailed}
	}
	return nil
}
