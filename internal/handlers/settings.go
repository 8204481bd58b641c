package handlers

import (
	"context"
	"fmt"

	"github.com/loomctl/loom/internal/config"
	"github.com/loomctl/loom/internal/dispatch"
)

func registerSettings(d *dispatch.Dispatcher, deps Deps) {
	d.Register("settings_show", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		settings := deps.Config.Settings
		if settings == nil {
			settings = map[string]string{}
		}
		return dispatch.OK(settings, ""), nil
	})

	d.Register("settings_set", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		key, value := req.Flag("key"), req.Flag("value")
		if deps.Config.Settings == nil {
			deps.Config.Settings = map[string]string{}
		}
		deps.Config.Settings[key] = value
		if err := config.SaveTo(deps.ConfigPath, deps.Config); err != nil {
			return nil, err
		}
		return dispatch.OK(map[string]string{key: value}, fmt.Sprintf("Set %s=%s", key, value)), nil
	})

	d.Register("settings_reset", func(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
		if req.BoolFlag("all") {
			deps.Config.Settings = map[string]string{}
			if err := config.SaveTo(deps.ConfigPath, deps.Config); err != nil {
				return nil, err
			}
			return dispatch.OK(nil, "Reset all settings"), nil
		}

		key := req.Flag("key")
		if _, ok := deps.Config.Settings[key]; !ok {
			return dispatch.Failed(fmt.Sprintf("no setting named %q", key)), nil
		}
		delete(deps.Config.Settings, key)
		if err := config.SaveTo(deps.ConfigPath, deps.Config); err != nil {
			return nil, err
		}
		return dispatch.OK(nil, fmt.Sprintf("Reset %s", key)), nil
	})
}
