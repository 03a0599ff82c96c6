// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"
	"strings"

	"github.com/modify/modify/internal/command"
)

type (
	// Help prints the command menu.
	Help struct {
		deps     Deps
		registry *command.Registry
	}

	// Quit says goodbye; the dispatch loop stops after it runs.
	Quit struct {
		deps Deps
	}
)

// Description implements command.Command.
func (c *Help) Description() string { return "Show this help menu" }

// Run implements command.Command.
func (c *Help) Run(context.Context) {
	var sb strings.Builder
	_ = command.RenderMenu(&sb, c.deps.Title, c.registry) // strings.Builder never fails
	c.deps.Console.Printf("%s", sb.String())
}

// Description implements command.Command.
func (c *Quit) Description() string { return "Quit" }

// Run implements command.Command.
func (c *Quit) Run(context.Context) {
	c.deps.Console.Println("Goodbye!")
}
