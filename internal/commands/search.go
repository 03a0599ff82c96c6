// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"
	"slices"
	"strings"

	"github.com/modify/modify/internal/command"
	"github.com/modify/modify/internal/modrinth"
)

// Search queries Modrinth and prints one block per hit.
type Search struct {
	deps Deps
}

// Description implements command.Command.
func (c *Search) Description() string { return "Search for a mod on Modrinth" }

// Run implements command.Command.
func (c *Search) Run(ctx context.Context) {
	query, ok := c.deps.prompt(ctx, "Enter mod to search for: ")
	if !ok {
		return
	}
	if query == "" {
		c.deps.Console.Println("Nothing to search for")
		return
	}

	cfg, ok := c.deps.loadConfig(ctx)
	if !ok {
		return
	}

	hits, err := c.deps.NewClient(cfg).Search(ctx, query, modrinth.DefaultSearchLimit)
	if err != nil {
		c.deps.report(cfg, err, "search mods")
		return
	}
	if len(hits) == 0 {
		c.deps.Console.Printf("No mods found for %q\n", query)
		return
	}

	for _, hit := range hits {
		printHit(c.deps.Console, hit)
	}
}

func printHit(out Console, hit modrinth.SearchHit) {
	versions := slices.Clone(hit.Versions)
	modrinth.SortGameVersionsDesc(versions)

	out.Println(command.Banner(hit.Title))
	out.Printf("• %s\n", hit.Description)
	out.Printf("• Slug: %s\n", hit.Slug)
	out.Printf("• Type: %s\n", hit.ProjectType)
	out.Printf("• Client side: %s\n", hit.ClientSide)
	out.Printf("• Server side: %s\n", hit.ServerSide)
	out.Printf("• Versions: %s\n", strings.Join(versions, ", "))
}
