package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/loomctl/loom/internal/registry"
	"github.com/loomctl/loom/internal/ui"
)

// helpRequest detects a leading "help" word or a --help/-h before any
// other flag, and returns the path words it applies to. Flag values
// never count: "--message help" is an argument, not a help request.
func helpRequest(raw string) ([]string, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, false
	}
	if fields[0] == "help" {
		if len(fields) == 1 {
			return nil, true
		}
		return fields[1:], true
	}

	var path []string
	for _, f := range fields {
		if f == "--help" || f == "-h" {
			return path, true
		}
		if strings.HasPrefix(f, "-") {
			return nil, false
		}
		path = append(path, f)
	}
	return nil, false
}

// showHelp renders help for the given path words: the overview for no
// words, a namespace listing for one, and command detail for more.
func showHelp(words []string) error {
	var md string
	switch {
	case len(words) == 0:
		md = overviewHelp()
	case !registry.HasNamespace(words[0]):
		md = overviewHelp()
	case len(words) == 1:
		md = namespaceHelp(words[0])
	default:
		md = commandHelp(words[0], words[1:])
	}

	if isJSONOutput() {
		outputSuccess(map[string]string{"help": md}, nil)
		return nil
	}

	display := ui.NewDisplayContext()
	if display.IsTTY {
		rendered, err := ui.RenderMarkdown(md, display.TermWidth)
		if err == nil {
			fmt.Print(rendered)
			return nil
		}
	}
	fmt.Print(md)
	return nil
}

func overviewHelp() string {
	var sb strings.Builder
	sb.WriteString("# loom\n\n")
	sb.WriteString("Drive a multi-project orchestration server from the terminal.\n\n")
	sb.WriteString("Usage: `loom <namespace> <command> [--flag value ...]`\n\n")
	sb.WriteString("## Namespaces\n\n")
	for _, ns := range registry.Namespaces() {
		contracts := registry.InNamespace(ns)
		verbs := make([]string, 0, len(contracts))
		for _, c := range contracts {
			verbs = append(verbs, strings.Join(c.Segments, " "))
		}
		sb.WriteString(fmt.Sprintf("- `%s`: %s\n", ns, strings.Join(verbs, ", ")))
	}
	sb.WriteString("\nRun `loom help <namespace>` for the commands in a namespace.\n")
	return sb.String()
}

func namespaceHelp(ns string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# loom %s\n\n", ns))
	for _, c := range registry.InNamespace(ns) {
		sb.WriteString(fmt.Sprintf("- `%s`: %s", strings.Join(c.Path(), " "), c.Summary))
		if len(c.ContextKeys) > 0 {
			sb.WriteString(fmt.Sprintf(" *(needs %s)*", strings.Join(contextNames(c), ", ")))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\nRun `loom help %s <command>` for flags and examples.\n", ns))
	return sb.String()
}

func commandHelp(ns string, segments []string) string {
	candidates := registry.FindCandidates(ns, segments)
	if len(candidates) == 0 {
		return namespaceHelp(ns)
	}
	contract := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.Segments) > len(contract.Segments) {
			contract = c
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# loom %s\n\n", strings.Join(contract.Path(), " ")))
	sb.WriteString(contract.Summary + "\n\n")
	if contract.Help != "" {
		sb.WriteString(contract.Help + "\n\n")
	}
	if len(contract.ContextKeys) > 0 {
		sb.WriteString(fmt.Sprintf("Requires an active %s.\n\n", strings.Join(contextNames(contract), " and ")))
	}

	if len(contract.Flags) > 0 {
		sb.WriteString("## Flags\n\n")
		for _, name := range contract.FlagNames() {
			spec := contract.Flags[name]
			line := fmt.Sprintf("- `--%s` (%s)", name, spec.Type)
			if spec.Required {
				line += " required"
				if len(spec.Alternatives) > 0 {
					alts := make([]string, len(spec.Alternatives))
					for i, a := range spec.Alternatives {
						alts[i] = "--" + a
					}
					sort.Strings(alts)
					line += fmt.Sprintf(" (or %s)", strings.Join(alts, ", "))
				}
			}
			if spec.Default != "" {
				line += fmt.Sprintf(", default %s", spec.Default)
			}
			if spec.Description != "" {
				line += ": " + spec.Description
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	if len(contract.Examples) > 0 {
		sb.WriteString("## Examples\n\n")
		for _, ex := range contract.Examples {
			sb.WriteString(fmt.Sprintf("    %s\n", ex))
		}
	}
	return sb.String()
}

func contextNames(c registry.Contract) []string {
	names := make([]string, 0, len(c.ContextKeys))
	for _, key := range c.ContextKeys {
		switch key {
		case registry.ContextProject:
			names = append(names, "project")
		case registry.ContextRoadmap:
			names = append(names, "roadmap")
		case registry.ContextChat:
			names = append(names, "chat")
		}
	}
	return names
}
