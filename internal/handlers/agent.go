package handlers

import (
	"context"
	"net/url"

	"github.com/loomctl/loom/internal/dispatch"
)

func registerAgent(d *dispatch.Dispatcher, deps Deps) {
	d.RegisterStream("agent_chat_send", func(ctx context.Context, req dispatch.Request) (dispatch.EventSource, error) {
		path := "/v1/chats/" + url.PathEscape(req.State.ActiveChatID) + "/messages/stream"
		return deps.Client.OpenStream(ctx, path, map[string]any{
			"message": req.Flag("message"),
			"role":    req.Flag("role"),
		})
	})

	d.RegisterStream("agent_run", func(ctx context.Context, req dispatch.Request) (dispatch.EventSource, error) {
		path := "/v1/projects/" + url.PathEscape(req.State.ActiveProjectID) +
			"/roadmaps/" + url.PathEscape(req.State.ActiveRoadmapID) + "/agent/run"
		request := map[string]any{
			"task": req.Flag("task"),
		}
		if timeout, ok := req.Command.Flags["timeout"]; ok {
			request["timeout_seconds"] = int(timeout.Num)
		}
		return deps.Client.OpenStream(ctx, path, request)
	})
}
