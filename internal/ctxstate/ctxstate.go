// Package ctxstate persists the ambient selection state: the active
// project, roadmap, and chat consulted by context-dependent commands.
// It is the only state that survives between CLI invocations.
package ctxstate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/loomctl/loom/internal/atomicfile"
)

// Context key names, matching the registry's contract prerequisites.
const (
	KeyProject = "activeProject"
	KeyRoadmap = "activeRoadmap"
	KeyChat    = "activeChat"
)

// Level identifies a tier of the selection hierarchy.
type Level int

const (
	LevelProject Level = iota
	LevelRoadmap
	LevelChat
)

// State is the persisted selection. A chat selection is only valid
// together with a roadmap and project; a roadmap only together with a
// project. The store enforces this by clearing dependents whenever an
// ancestor changes.
type State struct {
	ActiveProjectID    string    `toml:"active_project_id,omitempty"`
	ActiveProjectName  string    `toml:"active_project_name,omitempty"`
	ActiveRoadmapID    string    `toml:"active_roadmap_id,omitempty"`
	ActiveRoadmapTitle string    `toml:"active_roadmap_title,omitempty"`
	ActiveChatID       string    `toml:"active_chat_id,omitempty"`
	ActiveChatTitle    string    `toml:"active_chat_title,omitempty"`
	LastUpdate         time.Time `toml:"last_update"`
}

// Get returns the state field for a context key, or "" if the key is
// unknown or the field is empty.
func (s *State) Get(key string) string {
	switch key {
	case KeyProject:
		return s.ActiveProjectID
	case KeyRoadmap:
		return s.ActiveRoadmapID
	case KeyChat:
		return s.ActiveChatID
	}
	return ""
}

// Store reads and writes the selection state at a fixed path. Writes are
// atomic (temp file + rename); concurrent CLI processes are last-write-wins
// at the granularity of a full save, which is the documented policy.
type Store struct {
	path string
}

// NewStore creates a store persisting to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store persists to.
func (st *Store) Path() string {
	return st.path
}

// Load reads the durable state. A missing file is first use, not an
// error: it yields an all-empty state with a fresh timestamp.
func (st *Store) Load() (*State, error) {
	if strings.TrimSpace(st.path) == "" {
		return nil, fmt.Errorf("state path is required")
	}

	if _, err := os.Stat(st.path); os.IsNotExist(err) {
		return &State{LastUpdate: time.Now().UTC()}, nil
	}

	var state State
	if _, err := toml.DecodeFile(st.path, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", st.path, err)
	}
	return &state, nil
}

// Save persists state atomically, refreshing LastUpdate and repairing any
// violation of the selection hierarchy before writing.
func (st *Store) Save(state *State) error {
	if state == nil {
		state = &State{}
	}

	normalized := *state
	// A roadmap without a project, or a chat without a roadmap, is
	// illegal; drop the orphaned selection.
	if normalized.ActiveProjectID == "" {
		normalized.ActiveRoadmapID = ""
		normalized.ActiveRoadmapTitle = ""
	}
	if normalized.ActiveRoadmapID == "" {
		normalized.ActiveChatID = ""
		normalized.ActiveChatTitle = ""
	}
	normalized.LastUpdate = time.Now().UTC()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(normalized); err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := atomicfile.WriteFile(st.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write state %s: %w", st.path, err)
	}
	return nil
}

// SelectProject makes a project the active selection, clearing any
// roadmap and chat selected under the previous project.
func (st *Store) SelectProject(id, name string) (*State, error) {
	state, err := st.Load()
	if err != nil {
		return nil, err
	}
	state.ActiveProjectID = id
	state.ActiveProjectName = name
	state.ActiveRoadmapID = ""
	state.ActiveRoadmapTitle = ""
	state.ActiveChatID = ""
	state.ActiveChatTitle = ""
	if err := st.Save(state); err != nil {
		return nil, err
	}
	return state, nil
}

// SelectRoadmap makes a roadmap the active selection, clearing any chat
// selected under the previous roadmap. The project selection is kept.
func (st *Store) SelectRoadmap(id, title string) (*State, error) {
	state, err := st.Load()
	if err != nil {
		return nil, err
	}
	state.ActiveRoadmapID = id
	state.ActiveRoadmapTitle = title
	state.ActiveChatID = ""
	state.ActiveChatTitle = ""
	if err := st.Save(state); err != nil {
		return nil, err
	}
	return state, nil
}

// SelectChat makes a chat the active selection. Ancestor selections are
// left untouched.
func (st *Store) SelectChat(id, title string) (*State, error) {
	state, err := st.Load()
	if err != nil {
		return nil, err
	}
	state.ActiveChatID = id
	state.ActiveChatTitle = title
	if err := st.Save(state); err != nil {
		return nil, err
	}
	return state, nil
}

// ClearDependents clears the selection at the given level and everything
// below it.
func (st *Store) ClearDependents(level Level) (*State, error) {
	state, err := st.Load()
	if err != nil {
		return nil, err
	}
	switch level {
	case LevelProject:
		*state = State{}
	case LevelRoadmap:
		state.ActiveRoadmapID = ""
		state.ActiveRoadmapTitle = ""
		state.ActiveChatID = ""
		state.ActiveChatTitle = ""
	case LevelChat:
		state.ActiveChatID = ""
		state.ActiveChatTitle = ""
	}
	if err := st.Save(state); err != nil {
		return nil, err
	}
	return state, nil
}

// ParseLevel converts a user-facing level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "project":
		return LevelProject, nil
	case "roadmap":
		return LevelRoadmap, nil
	case "chat":
		return LevelChat, nil
	}
	return 0, fmt.Errorf("unknown selection level %q (expected project, roadmap, or chat)", s)
}
