// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/modify/modify/internal/config"
)

type (
	// PrintConfig shows the effective configuration.
	PrintConfig struct {
		deps Deps
	}

	// EditConfig sets one configuration key and saves the file.
	EditConfig struct {
		deps Deps
	}
)

// Description implements command.Command.
func (c *PrintConfig) Description() string { return "Print the current config" }

// Run implements command.Command.
func (c *PrintConfig) Run(ctx context.Context) {
	cfg, ok := c.deps.loadConfig(ctx)
	if !ok {
		return
	}

	if path, err := c.deps.Config.Path(c.deps.LoadOptions); err == nil {
		c.deps.Console.Printf("Config file: %s\n", path)
	}
	for _, e := range config.Entries(cfg) {
		c.deps.Console.Printf("%s: %q\n", e.Key, e.Value)
	}
}

// Description implements command.Command.
func (c *EditConfig) Description() string { return "Edit the config" }

// Run implements command.Command.
func (c *EditConfig) Run(ctx context.Context) {
	cfg, ok := c.deps.loadConfig(ctx)
	if !ok {
		return
	}

	c.deps.Console.Printf("Keys: %s\n", strings.Join(config.Keys(), ", "))
	key, ok := c.deps.prompt(ctx, "Enter config key: ")
	if !ok {
		return
	}
	value, ok := c.deps.prompt(ctx, "Enter new value: ")
	if !ok {
		return
	}

	if err := config.Set(cfg, key, value); err != nil {
		if errors.Is(err, config.ErrUnknownKey) || errors.Is(err, config.ErrInvalidValue) {
			c.deps.Console.Println(err.Error())
			return
		}
		c.deps.report(cfg, err, "set "+key)
		return
	}

	path, err := c.deps.Config.Save(ctx, c.deps.LoadOptions, cfg)
	if err != nil {
		c.deps.report(cfg, err, "save configuration")
		return
	}
	c.deps.Console.Printf("Set %s = %s (%s)\n", strings.ToLower(strings.TrimSpace(key)), value, path)
}
