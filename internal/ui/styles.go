package ui

import (
	"regexp"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple, configurable): Highlights, identifiers, selections
// - Muted (gray): Secondary info, hints
// - No colored success/error/warning - use unicode symbols only

// DefaultAccent is the accent color used when none is configured.
const DefaultAccent = "#A78BFA"

var (
	// Accent style for IDs, selections, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultAccent)).Bold(true)
)

var (
	accentMu    sync.RWMutex
	accentColor = DefaultAccent

	accentPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|[0-9]{1,3})$`)
)

// SetAccent overrides the accent color from configuration. Invalid
// values are ignored and the default stays in effect.
func SetAccent(color string) {
	if !accentPattern.MatchString(color) {
		return
	}
	accentMu.Lock()
	accentColor = color
	accentMu.Unlock()

	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the current accent color.
func AccentColor() string {
	accentMu.RLock()
	defer accentMu.RUnlock()
	return accentColor
}
