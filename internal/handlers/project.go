package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/loomctl/loom/internal/dispatch"
)

// projectRef is the subset of a server project record the CLI needs for
// resolution and selection.
type projectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func registerProject(d *dispatch.Dispatcher, deps Deps) {
	d.Register("project_list", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		query := url.Values{
			"limit":    {req.Flag("limit")},
			"archived": {fmt.Sprintf("%t", req.BoolFlag("archived"))},
		}
		raw, err := deps.Client.Get(ctx, "/v1/projects", query)
		if err != nil {
			return nil, err
		}
		return dispatch.OK(raw, ""), nil
	})

	d.Register("project_view", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		ref, err := resolveProject(ctx, deps, req)
		if err != nil {
			return nil, err
		}
		raw, err := deps.Client.Get(ctx, "/v1/projects/"+url.PathEscape(ref.ID), nil)
		if err != nil {
			return nil, err
		}
		return dispatch.OK(raw, ""), nil
	})

	d.Register("project_create", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		body := map[string]any{
			"name": req.Flag("name"),
		}
		if desc := req.Flag("description"); desc != "" {
			body["description"] = desc
		}
		if tags, ok := req.Command.Flags["tags"]; ok {
			body["tags"] = tags.List
		}
		raw, err := deps.Client.Post(ctx, "/v1/projects", body)
		if err != nil {
			return nil, err
		}
		return dispatch.OK(raw, fmt.Sprintf("Created project %q", req.Flag("name"))), nil
	})

	d.Register("project_select", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		ref, err := resolveProject(ctx, deps, req)
		if err != nil {
			return nil, err
		}
		state, err := deps.Store.SelectProject(ref.ID, ref.Name)
		if err != nil {
			return nil, err
		}
		return dispatch.OK(state, fmt.Sprintf("Selected project %s", ref.Name)), nil
	})
}

// resolveProject turns the --id or --name flag into a concrete project
// reference, looking the name up on the server when needed.
func resolveProject(ctx context.Context, deps Deps, req dispatch.Request) (*projectRef, error) {
	if id := req.Flag("id"); id != "" {
		raw, err := deps.Client.Get(ctx, "/v1/projects/"+url.PathEscape(id), nil)
		if err != nil {
			return nil, err
		}
		var ref projectRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			return nil, fmt.Errorf("malformed project record: %w", err)
		}
		return &ref, nil
	}

	name := req.Flag("name")
	raw, err := deps.Client.Get(ctx, "/v1/projects", url.Values{"name": {name}})
	if err != nil {
		return nil, err
	}
	var listing struct {
		Projects []projectRef `json:"projects"`
	}
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("malformed project listing: %w", err)
	}
	for _, p := range listing.Projects {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("no project named %q", name)
}
