package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/loomctl/loom/internal/dispatch"
)

type roadmapRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func registerRoadmap(d *dispatch.Dispatcher, deps Deps) {
	d.Register("roadmap_list", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		raw, err := deps.Client.Get(ctx, roadmapsPath(req), url.Values{"limit": {req.Flag("limit")}})
		if err != nil {
			return nil, err
		}
		return dispatch.OK(raw, ""), nil
	})

	d.Register("roadmap_view", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		ref, err := resolveRoadmap(ctx, deps, req)
		if err != nil {
			return nil, err
		}
		raw, err := deps.Client.Get(ctx, roadmapsPath(req)+"/"+url.PathEscape(ref.ID), nil)
		if err != nil {
			return nil, err
		}
		return dispatch.OK(raw, ""), nil
	})

	d.Register("roadmap_view_tasks", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		ref, err := resolveRoadmap(ctx, deps, req)
		if err != nil {
			return nil, err
		}
		var query url.Values
		if status := req.Flag("status"); status != "" {
			query = url.Values{"status": {status}}
		}
		raw, err := deps.Client.Get(ctx, roadmapsPath(req)+"/"+url.PathEscape(ref.ID)+"/tasks", query)
		if err != nil {
			return nil, err
		}
		return dispatch.OK(raw, ""), nil
	})

	d.Register("roadmap_create", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		body := map[string]any{
			"title": req.Flag("title"),
		}
		if desc := req.Flag("description"); desc != "" {
			body["description"] = desc
		}
		raw, err := deps.Client.Post(ctx, roadmapsPath(req), body)
		if err != nil {
			return nil, err
		}
		return dispatch.OK(raw, fmt.Sprintf("Created roadmap %q", req.Flag("title"))), nil
	})

	d.Register("roadmap_select", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		ref, err := resolveRoadmap(ctx, deps, req)
		if err != nil {
			return nil, err
		}
		state, err := deps.Store.SelectRoadmap(ref.ID, ref.Title)
		if err != nil {
			return nil, err
		}
		return dispatch.OK(state, fmt.Sprintf("Selected roadmap %s", ref.Title)), nil
	})
}

// roadmapsPath scopes roadmap endpoints under the active project.
func roadmapsPath(req dispatch.Request) string {
	return "/v1/projects/" + url.PathEscape(req.State.ActiveProjectID) + "/roadmaps"
}

func resolveRoadmap(ctx context.Context, deps Deps, req dispatch.Request) (*roadmapRef, error) {
	if id := req.Flag("id"); id != "" {
		raw, err := deps.Client.Get(ctx, roadmapsPath(req)+"/"+url.PathEscape(id), nil)
		if err != nil {
			return nil, err
		}
		var ref roadmapRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			return nil, fmt.Errorf("malformed roadmap record: %w", err)
		}
		return &ref, nil
	}

	title := req.Flag("title")
	raw, err := deps.Client.Get(ctx, roadmapsPath(req), url.Values{"title": {title}})
	if err != nil {
		return nil, err
	}
	var listing struct {
		Roadmaps []roadmapRef `json:"roadmaps"`
	}
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("malformed roadmap listing: %w", err)
	}
	for _, r := range listing.Roadmaps {
		if r.Title == title {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("no roadmap titled %q", title)
}
