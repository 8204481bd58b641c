// Package validate matches parsed command trees against the contract
// registry, producing either a fully resolved command or a structured
// validation error.
package validate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/loomctl/loom/internal/command"
	"github.com/loomctl/loom/internal/registry"
)

// Validation error codes. These are stable and safe to match on.
const (
	ErrInvalidAST             = "INVALID_AST"
	ErrUnknownNamespace       = "UNKNOWN_NAMESPACE"
	ErrUnknownCommand         = "UNKNOWN_COMMAND"
	ErrUnknownFlag            = "UNKNOWN_FLAG"
	ErrMissingRequiredFlag    = "MISSING_REQUIRED_FLAG"
	ErrMissingArgument        = "MISSING_ARGUMENT"
	ErrInvalidFlagType        = "INVALID_FLAG_TYPE"
	ErrMutuallyExclusiveFlags = "MUTUALLY_EXCLUSIVE_FLAGS"
)

// Error is a validation failure with a machine-readable code and optional
// structured details (conflicting flags, allowed flags, and so on).
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Details    map[string]any
}

func (e *Error) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Suggestion)
	}
	return e.Message
}

// Command is the validated, dispatch-ready form of an invocation. All
// defaults are applied; it is immutable and consumed exactly once.
type Command struct {
	ID          string
	Namespace   string
	Segments    []string
	Args        []string
	Flags       map[string]command.Value
	Raw         string
	ContextKeys []string
	ContextFree bool
	Streaming   bool
}

// Validate resolves tree against the registry. Each check returns
// immediately on failure; identical input always yields an identical
// command or an identical error.
func Validate(tree *command.Tree) (*Command, error) {
	if tree == nil || len(tree.Path) == 0 {
		return nil, &Error{
			Code:    ErrInvalidAST,
			Message: "empty command",
		}
	}

	ns := tree.Path[0]
	tail := tree.Path[1:]

	if !registry.HasNamespace(ns) {
		return nil, &Error{
			Code:       ErrUnknownNamespace,
			Message:    fmt.Sprintf("unknown namespace %q", ns),
			Suggestion: "Available namespaces: " + strings.Join(registry.Namespaces(), ", "),
		}
	}

	candidates := registry.FindCandidates(ns, tail)
	if len(candidates) == 0 {
		return nil, &Error{
			Code:       ErrUnknownCommand,
			Message:    fmt.Sprintf("unknown command %q", strings.Join(tree.Path, " ")),
			Suggestion: fmt.Sprintf("Run 'loom %s' to list commands in this namespace", ns),
		}
	}

	// Specificity tie-break: the contract with the longest segment list
	// wins, so "roadmap view tasks" beats "roadmap view".
	contract := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.Segments) > len(contract.Segments) {
			contract = c
		}
	}

	// Path words beyond the chosen contract's segments are leading
	// positional arguments.
	args := append(append([]string{}, tail[len(contract.Segments):]...), tree.Positionals...)
	if err := checkArgs(contract, args); err != nil {
		return nil, err
	}

	if err := checkUnknownFlags(contract, tree); err != nil {
		return nil, err
	}
	if err := checkRequiredFlags(contract, tree); err != nil {
		return nil, err
	}

	flags := make(map[string]command.Value, len(contract.Flags))
	for name, val := range tree.Named {
		coerced, err := coerceFlag(name, contract.Flags[name].Type, val)
		if err != nil {
			return nil, err
		}
		flags[name] = coerced
	}

	if err := checkExclusiveGroups(contract, tree); err != nil {
		return nil, err
	}

	applyDefaults(contract, flags)

	return &Command{
		ID:          contract.ID,
		Namespace:   contract.Namespace,
		Segments:    contract.Segments,
		Args:        args,
		Flags:       flags,
		Raw:         tree.Raw,
		ContextKeys: contract.ContextKeys,
		ContextFree: len(contract.ContextKeys) == 0,
		Streaming:   contract.Streaming,
	}, nil
}

func checkArgs(contract registry.Contract, args []string) error {
	if len(args) > len(contract.Args) {
		stray := args[len(contract.Args)]
		return &Error{
			Code:       ErrUnknownCommand,
			Message:    fmt.Sprintf("unexpected argument %q after %q", stray, strings.Join(contract.Path(), " ")),
			Suggestion: fmt.Sprintf("Run 'loom %s' to list commands in this namespace", contract.Namespace),
		}
	}
	for i, spec := range contract.Args {
		if spec.Required && i >= len(args) {
			return &Error{
				Code:    ErrMissingArgument,
				Message: fmt.Sprintf("missing required argument <%s>", spec.Name),
			}
		}
	}
	return nil
}

func checkUnknownFlags(contract registry.Contract, tree *command.Tree) error {
	// Deterministic error choice: report the first unknown flag in name
	// order, not map iteration order.
	names := make([]string, 0, len(tree.Named))
	for name := range tree.Named {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, ok := contract.Flags[name]; !ok {
			return &Error{
				Code:       ErrUnknownFlag,
				Message:    fmt.Sprintf("unknown flag --%s for %q", name, strings.Join(contract.Path(), " ")),
				Suggestion: "Valid flags: --" + strings.Join(contract.FlagNames(), ", --"),
				Details:    map[string]any{"flag": name, "allowed_flags": contract.FlagNames()},
			}
		}
	}
	return nil
}

func checkRequiredFlags(contract registry.Contract, tree *command.Tree) error {
	for _, name := range contract.FlagNames() {
		spec := contract.Flags[name]
		if !spec.Required {
			continue
		}
		if _, ok := tree.Named[name]; ok {
			continue
		}
		// A required flag with alternatives is satisfied by any one of
		// them being present.
		satisfied := false
		for _, alt := range spec.Alternatives {
			if _, ok := tree.Named[alt]; ok {
				satisfied = true
				break
			}
		}
		if satisfied {
			continue
		}

		set := append([]string{name}, spec.Alternatives...)
		msg := fmt.Sprintf("missing required flag --%s", name)
		if len(spec.Alternatives) > 0 {
			msg = fmt.Sprintf("missing required flag: one of --%s", strings.Join(set, ", --"))
		}
		return &Error{
			Code:    ErrMissingRequiredFlag,
			Message: msg,
			Details: map[string]any{"flag": name, "alternatives": set},
		}
	}
	return nil
}

func checkExclusiveGroups(contract registry.Contract, tree *command.Tree) error {
	for _, group := range contract.ExclusiveGroups {
		var present []string
		for _, name := range group {
			if _, ok := tree.Named[name]; ok {
				present = append(present, name)
			}
		}
		if len(present) > 1 {
			return &Error{
				Code:    ErrMutuallyExclusiveFlags,
				Message: "flags --" + strings.Join(present, " and --") + " cannot be used together",
				Details: map[string]any{"flags": present},
			}
		}
	}
	return nil
}

// coerceFlag checks val against the declared flag type, converting
// compatible representations (numeric strings, boolean words) as it goes.
func coerceFlag(name string, ft registry.FlagType, val command.Value) (command.Value, error) {
	mismatch := func() error {
		return &Error{
			Code:    ErrInvalidFlagType,
			Message: fmt.Sprintf("flag --%s expects a %s value, got %s %q", name, ft, val.Kind, val.Text()),
			Details: map[string]any{
				"flag":     name,
				"expected": string(ft),
				"actual":   val.Kind.String(),
				"value":    val.Text(),
			},
		}
	}

	switch ft {
	case registry.FlagTypeString:
		// Any scalar renders to text.
		if val.Kind == command.StringListVal {
			return command.Value{}, mismatch()
		}
		return command.String(val.Text()), nil

	case registry.FlagTypeNumber:
		switch val.Kind {
		case command.NumberVal:
			return val, nil
		case command.StringVal:
			n, err := strconv.ParseFloat(strings.TrimSpace(val.Str), 64)
			if err != nil {
				return command.Value{}, mismatch()
			}
			return command.Number(n), nil
		}
		return command.Value{}, mismatch()

	case registry.FlagTypeBool:
		switch val.Kind {
		case command.BoolVal:
			return val, nil
		case command.NumberVal:
			if val.Num == 0 || val.Num == 1 {
				return command.Bool(val.Num == 1), nil
			}
		case command.StringVal:
			if b, ok := parseBoolWord(val.Str); ok {
				return command.Bool(b), nil
			}
		}
		return command.Value{}, mismatch()

	case registry.FlagTypeStringList:
		switch val.Kind {
		case command.StringListVal:
			return val, nil
		case command.StringVal:
			return command.StringList(splitList(val.Str)...), nil
		}
		return command.Value{}, mismatch()
	}

	return command.Value{}, mismatch()
}

// parseBoolWord accepts the documented boolean word set, case-insensitive.
func parseBoolWord(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	}
	return false, false
}

func splitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

func applyDefaults(contract registry.Contract, flags map[string]command.Value) {
	for name, spec := range contract.Flags {
		if spec.Default == "" {
			continue
		}
		if _, ok := flags[name]; ok {
			continue
		}
		flags[name] = defaultValue(spec)
	}
}

// defaultValue parses a contract's literal default into the declared type.
// Catalog defaults are trusted; a malformed one falls back to its text.
func defaultValue(spec registry.FlagSpec) command.Value {
	switch spec.Type {
	case registry.FlagTypeNumber:
		if n, err := strconv.ParseFloat(spec.Default, 64); err == nil {
			return command.Number(n)
		}
	case registry.FlagTypeBool:
		if b, ok := parseBoolWord(spec.Default); ok {
			return command.Bool(b)
		}
	case registry.FlagTypeStringList:
		return command.StringList(splitList(spec.Default)...)
	}
	return command.String(spec.Default)
}
