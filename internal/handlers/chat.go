package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/loomctl/loom/internal/dispatch"
)

type chatRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func registerChat(d *dispatch.Dispatcher, deps Deps) {
	d.Register("chat_list", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		raw, err := deps.Client.Get(ctx, chatsPath(req), url.Values{"limit": {req.Flag("limit")}})
		if err != nil {
			return nil, err
		}
		return dispatch.OK(raw, ""), nil
	})

	d.Register("chat_create", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		raw, err := deps.Client.Post(ctx, chatsPath(req), map[string]any{
			"title": req.Flag("title"),
		})
		if err != nil {
			return nil, err
		}
		return dispatch.OK(raw, fmt.Sprintf("Created chat %q", req.Flag("title"))), nil
	})

	d.Register("chat_select", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		ref, err := resolveChat(ctx, deps, req)
		if err != nil {
			return nil, err
		}
		state, err := deps.Store.SelectChat(ref.ID, ref.Title)
		if err != nil {
			return nil, err
		}
		return dispatch.OK(state, fmt.Sprintf("Selected chat %s", ref.Title)), nil
	})
}

// chatsPath scopes chat endpoints under the active roadmap.
func chatsPath(req dispatch.Request) string {
	return "/v1/roadmaps/" + url.PathEscape(req.State.ActiveRoadmapID) + "/chats"
}

func resolveChat(ctx context.Context, deps Deps, req dispatch.Request) (*chatRef, error) {
	if id := req.Flag("id"); id != "" {
		raw, err := deps.Client.Get(ctx, chatsPath(req)+"/"+url.PathEscape(id), nil)
		if err != nil {
			return nil, err
		}
		var ref chatRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			return nil, fmt.Errorf("malformed chat record: %w", err)
		}
		return &ref, nil
	}

	title := req.Flag("title")
	raw, err := deps.Client.Get(ctx, chatsPath(req), url.Values{"title": {title}})
	if err != nil {
		return nil, err
	}
	var listing struct {
		Chats []chatRef `json:"chats"`
	}
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("malformed chat listing: %w", err)
	}
	for _, c := range listing.Chats {
		if c.Title == title {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("no chat titled %q", title)
}
