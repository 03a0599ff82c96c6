// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/modify/modify/internal/mods"
)

// Uninstall removes every installed jar of a mod.
type Uninstall struct {
	deps Deps
}

// Description implements command.Command.
func (c *Uninstall) Description() string { return "Uninstall a mod" }

// Run implements command.Command.
func (c *Uninstall) Run(ctx context.Context) {
	slug, ok := c.deps.prompt(ctx, "Enter mod to uninstall: ")
	if !ok {
		return
	}
	slug = strings.ToLower(slug)
	if slug == "" {
		c.deps.Console.Println("No mod given")
		return
	}

	cfg, ok := c.deps.loadConfig(ctx)
	if !ok {
		return
	}
	dir, ok := c.deps.modDir(cfg)
	if !ok {
		return
	}

	removed, err := mods.NewStore(dir).Uninstall(slug)
	for _, path := range removed {
		c.deps.Console.Printf("Removed %s\n", filepath.Base(path))
	}
	switch {
	case errors.Is(err, mods.ErrNotInstalled):
		c.deps.Console.Printf("%s is not installed\n", slug)
	case err != nil:
		c.deps.report(cfg, err, "uninstall "+slug)
	default:
		c.deps.Console.Printf("Successfully uninstalled %s\n", slug)
	}
}
