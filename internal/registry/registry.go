// Package registry is the static catalog of Loom command contracts.
//
// It is the single source of truth for command shapes: path segments,
// argument and flag specs, context prerequisites, and help text. The
// catalog is pure data, populated at init and read-only afterwards.
package registry

import "sort"

// FlagType represents the declared type of a flag value.
type FlagType string

const (
	FlagTypeString     FlagType = "string"
	FlagTypeNumber     FlagType = "number"
	FlagTypeBool       FlagType = "bool"
	FlagTypeStringList FlagType = "string[]"
)

// Ambient context keys a contract may require.
const (
	ContextProject = "activeProject"
	ContextRoadmap = "activeRoadmap"
	ContextChat    = "activeChat"
)

// ArgSpec defines a positional argument.
type ArgSpec struct {
	Name        string
	Description string
	Required    bool
}

// FlagSpec defines a named flag.
type FlagSpec struct {
	Type         FlagType
	Required     bool
	Default      string   // literal default, injected when the flag is absent
	Alternatives []string // flags that satisfy this one's requiredness
	Description  string
}

// Contract is the registered shape one command must satisfy.
type Contract struct {
	// ID uniquely identifies the command for dispatch, e.g. "chat_select".
	ID string

	// Namespace is the first command path segment.
	Namespace string

	// Segments are the path components after the namespace, matched as a
	// left-anchored prefix of the parsed path tail. May be empty for
	// namespace-level commands.
	Segments []string

	Args  []ArgSpec
	Flags map[string]FlagSpec

	// ContextKeys lists ambient context keys that must be populated
	// before the command can run. Empty means context-free.
	ContextKeys []string

	// ExclusiveGroups lists sets of flags that cannot appear together.
	ExclusiveGroups [][]string

	// Streaming marks commands whose handler produces an event stream
	// rather than a single result.
	Streaming bool

	Summary  string
	Help     string
	Examples []string
}

// Path returns the full command path including the namespace.
func (c Contract) Path() []string {
	return append([]string{c.Namespace}, c.Segments...)
}

// FlagNames returns the contract's flag names in sorted order.
func (c Contract) FlagNames() []string {
	names := make([]string, 0, len(c.Flags))
	for name := range c.Flags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// byNamespace indexes the catalog for O(1) namespace dispatch. Built once
// at init from the ordered catalog.
var byNamespace = map[string][]Contract{}

func init() {
	for _, c := range catalog {
		byNamespace[c.Namespace] = append(byNamespace[c.Namespace], c)
	}
}

// Namespaces returns all registered namespaces in sorted order.
func Namespaces() []string {
	names := make([]string, 0, len(byNamespace))
	for ns := range byNamespace {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// HasNamespace reports whether any contract is registered under ns.
func HasNamespace(ns string) bool {
	_, ok := byNamespace[ns]
	return ok
}

// InNamespace returns all contracts registered under ns, in catalog order.
func InNamespace(ns string) []Contract {
	return byNamespace[ns]
}

// FindCandidates returns the contracts in ns whose segment list is a
// left-anchored prefix of pathTail. Multiple candidates are possible when
// a shorter command path is a prefix of a longer one; the validator breaks
// the tie in favor of the longest segment list.
func FindCandidates(ns string, pathTail []string) []Contract {
	var matches []Contract
	for _, c := range byNamespace[ns] {
		if isPrefix(c.Segments, pathTail) {
			matches = append(matches, c)
		}
	}
	return matches
}

// Lookup returns the contract with the given ID.
func Lookup(id string) (Contract, bool) {
	for _, contracts := range byNamespace {
		for _, c := range contracts {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Contract{}, false
}

func isPrefix(segments, pathTail []string) bool {
	if len(segments) > len(pathTail) {
		return false
	}
	for i, seg := range segments {
		if pathTail[i] != seg {
			return false
		}
	}
	return true
}
