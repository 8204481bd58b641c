package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/loomctl/loom/internal/ctxstate"
	"github.com/loomctl/loom/internal/dispatch"
)

// historyEntry is the JSON shape of one invocation in context show
// --history output.
type historyEntry struct {
	Raw      string    `json:"raw"`
	Command  string    `json:"command,omitempty"`
	Status   string    `json:"status"`
	Duration string    `json:"duration"`
	At       time.Time `json:"at"`
}

func registerContext(d *dispatch.Dispatcher, deps Deps) {
	d.Register("context_show", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		state, err := deps.Store.Load()
		if err != nil {
			return nil, err
		}

		data := map[string]any{
			"active_project": selection(state.ActiveProjectID, state.ActiveProjectName),
			"active_roadmap": selection(state.ActiveRoadmapID, state.ActiveRoadmapTitle),
			"active_chat":    selection(state.ActiveChatID, state.ActiveChatTitle),
			"last_update":    state.LastUpdate,
		}

		if req.BoolFlag("history") && deps.History != nil {
			entries, err := deps.History.Recent(20)
			if err == nil {
				recent := make([]historyEntry, 0, len(entries))
				for _, e := range entries {
					recent = append(recent, historyEntry{
						Raw:      e.Raw,
						Command:  e.CommandID,
						Status:   e.Status,
						Duration: e.Duration.String(),
						At:       e.At,
					})
				}
				data["history"] = recent
			}
		}

		return dispatch.OK(data, ""), nil
	})

	d.Register("context_clear", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		level, err := ctxstate.ParseLevel(req.Flag("level"))
		if err != nil {
			return dispatch.Failed(err.Error()), nil
		}
		state, err := deps.Store.ClearDependents(level)
		if err != nil {
			return nil, err
		}
		return dispatch.OK(state, fmt.Sprintf("Cleared %s selection", req.Flag("level"))), nil
	})
}

// selection renders one selection tier for display, nil when empty.
func selection(id, name string) any {
	if id == "" {
		return nil
	}
	return map[string]string{"id": id, "name": name}
}
