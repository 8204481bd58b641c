package handlers

import (
	"context"
	"fmt"

	"github.com/loomctl/loom/internal/alias"
	"github.com/loomctl/loom/internal/dispatch"
)

func registerAlias(d *dispatch.Dispatcher, deps Deps) {
	d.Register("alias_list", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		set, err := alias.Load(deps.AliasPath)
		if err != nil {
			return nil, err
		}
		listing := map[string]string{}
		for _, name := range set.Names() {
			expansion, _ := set.Get(name)
			listing[name] = expansion
		}
		return dispatch.OK(listing, ""), nil
	})

	d.Register("alias_set", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		set, err := alias.Load(deps.AliasPath)
		if err != nil {
			return nil, err
		}
		name, command := req.Flag("name"), req.Flag("command")
		if err := set.Define(name, command); err != nil {
			return dispatch.Failed(err.Error()), nil
		}
		if err := set.Save(deps.AliasPath); err != nil {
			return nil, err
		}
		return dispatch.OK(nil, fmt.Sprintf("Alias %s -> %s", alias.Normalize(name), command)), nil
	})

	d.Register("alias_remove", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		set, err := alias.Load(deps.AliasPath)
		if err != nil {
			return nil, err
		}
		name := req.Flag("name")
		if !set.Remove(name) {
			return dispatch.Failed(fmt.Sprintf("no alias named %q", alias.Normalize(name))), nil
		}
		if err := set.Save(deps.AliasPath); err != nil {
			return nil, err
		}
		return dispatch.OK(nil, fmt.Sprintf("Removed alias %s", alias.Normalize(name))), nil
	})
}
