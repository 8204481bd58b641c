// Package alias expands user-defined command aliases before the input
// reaches the tokenizer.
package alias

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/loomctl/loom/internal/atomicfile"
)

// file is the on-disk shape of aliases.yaml.
type file struct {
	Aliases map[string]string `yaml:"aliases"`
}

// Set holds the loaded aliases, keyed by normalized name.
type Set struct {
	aliases map[string]string
}

// Normalize canonicalizes an alias name. "Ship It!" and "ship-it" name
// the same alias.
func Normalize(name string) string {
	return slug.Make(name)
}

// Load reads aliases from path. A missing file yields an empty set.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Set{aliases: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read aliases %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse aliases %s: %w", path, err)
	}

	s := &Set{aliases: make(map[string]string, len(f.Aliases))}
	for name, expansion := range f.Aliases {
		key := Normalize(name)
		if key == "" {
			continue
		}
		s.aliases[key] = strings.TrimSpace(expansion)
	}
	return s, nil
}

// Save writes the set to path atomically, sorted by name.
func (s *Set) Save(path string) error {
	f := file{Aliases: make(map[string]string, len(s.aliases))}
	for name, expansion := range s.aliases {
		f.Aliases[name] = expansion
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("failed to marshal aliases: %w", err)
	}
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write aliases %s: %w", path, err)
	}
	return nil
}

// Define adds or replaces an alias. Expansions that would resolve back
// to themselves are rejected.
func (s *Set) Define(name, expansion string) error {
	key := Normalize(name)
	if key == "" {
		return fmt.Errorf("alias name is required")
	}
	expansion = strings.TrimSpace(expansion)
	if expansion == "" {
		return fmt.Errorf("alias expansion is required")
	}
	if first := firstWord(expansion); Normalize(first) == key {
		return fmt.Errorf("alias %q would expand to itself", key)
	}
	s.aliases[key] = expansion
	return nil
}

// Remove deletes an alias. It reports whether the alias existed.
func (s *Set) Remove(name string) bool {
	key := Normalize(name)
	if _, ok := s.aliases[key]; !ok {
		return false
	}
	delete(s.aliases, key)
	return true
}

// Names returns the alias names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.aliases))
	for name := range s.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the expansion for a name.
func (s *Set) Get(name string) (string, bool) {
	expansion, ok := s.aliases[Normalize(name)]
	return expansion, ok
}

// maxDepth bounds chained alias expansion.
const maxDepth = 8

// Expand rewrites raw input whose first word is an alias name,
// replacing it with the alias expansion. Expansion repeats for chained
// aliases up to a fixed depth and then passes the input through
// unchanged, so a cycle cannot hang the pipeline.
func (s *Set) Expand(raw string) string {
	for i := 0; i < maxDepth; i++ {
		first := firstWord(raw)
		if first == "" || strings.HasPrefix(first, "-") {
			return raw
		}
		expansion, ok := s.aliases[Normalize(first)]
		if !ok {
			return raw
		}
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), first))
		if rest == "" {
			raw = expansion
		} else {
			raw = expansion + " " + rest
		}
	}
	return raw
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
