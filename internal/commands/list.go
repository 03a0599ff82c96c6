// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"

	"github.com/modify/modify/internal/mods"
)

// List prints the installed mods.
type List struct {
	deps Deps
}

// Description implements command.Command.
func (c *List) Description() string { return "List installed mods" }

// Run implements command.Command.
func (c *List) Run(ctx context.Context) {
	cfg, ok := c.deps.loadConfig(ctx)
	if !ok {
		return
	}
	dir, ok := c.deps.modDir(cfg)
	if !ok {
		return
	}

	installed, err := mods.NewStore(dir).List()
	if err != nil {
		c.deps.report(cfg, err, "list mods")
		return
	}
	if len(installed) == 0 {
		c.deps.Console.Printf("No mods installed in %s\n", dir)
		return
	}

	for _, m := range installed {
		line := "• " + m.Name
		if m.Version != "" {
			line += " " + m.Version
		}
		if m.Loader != "" {
			line += " (" + m.Loader + ")"
		}
		c.deps.Console.Printf("%s [%s]\n", line, m.File)
	}
	c.deps.Console.Printf("%d mod(s) in %s\n", len(installed), dir)
}
