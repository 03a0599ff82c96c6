// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/modify/modify/internal/mods"
)

// Install downloads a mod for one Minecraft version into the mod directory.
type Install struct {
	deps Deps
}

// Description implements command.Command.
func (c *Install) Description() string { return "Install a mod" }

// Run implements command.Command.
func (c *Install) Run(ctx context.Context) {
	slug, ok := c.deps.prompt(ctx, "Enter mod to install: ")
	if !ok {
		return
	}
	gameVersion, ok := c.deps.prompt(ctx, "Enter mc version: ")
	if !ok {
		return
	}
	slug = strings.ToLower(slug)
	gameVersion = strings.ToLower(gameVersion)

	cfg, ok := c.deps.loadConfig(ctx)
	if !ok {
		return
	}
	if gameVersion == "" {
		gameVersion = strings.ToLower(cfg.MinecraftVersion)
	}
	if slug == "" || gameVersion == "" {
		c.deps.Console.Println("Both a mod and a Minecraft version are required (set minecraft_version to skip the second prompt)")
		return
	}

	dir, ok := c.deps.modDir(cfg)
	if !ok {
		return
	}

	store := mods.NewStore(dir)
	installed, err := store.Install(ctx, c.deps.NewClient(cfg), mods.InstallRequest{
		Slug:        slug,
		GameVersion: gameVersion,
		Loader:      string(cfg.Loader),
	})
	if err != nil {
		c.deps.Console.Printf("Failed to install %s for Minecraft version %s\n", slug, gameVersion)
		c.deps.report(cfg, err, "install "+slug)
		return
	}

	slog.Info("mod installed", "slug", installed.Slug, "version", installed.VersionNumber, "path", installed.Path)
	c.deps.Console.Printf("Successfully installed %s for Minecraft version %s\n", installed.Slug, gameVersion)
}
