// Package handlers binds every catalog command to its implementation
// against the orchestration server and the local selection state.
package handlers

import (
	"github.com/loomctl/loom/internal/api"
	"github.com/loomctl/loom/internal/config"
	"github.com/loomctl/loom/internal/ctxstate"
	"github.com/loomctl/loom/internal/dispatch"
	"github.com/loomctl/loom/internal/history"
)

// Deps holds the collaborators handlers act on. History may be nil;
// recording is best-effort and commands run without it.
type Deps struct {
	Client     *api.Client
	Store      *ctxstate.Store
	Config     *config.Config
	ConfigPath string
	AliasPath  string
	History    *history.Recorder
}

// Register wires all command handlers into the dispatcher.
func Register(d *dispatch.Dispatcher, deps Deps) {
	registerProject(d, deps)
	registerRoadmap(d, deps)
	registerChat(d, deps)
	registerAgent(d, deps)
	registerSettings(d, deps)
	registerContext(d, deps)
	registerAlias(d, deps)
}
