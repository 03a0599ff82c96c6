// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/modify/modify/internal/issue"
)

// CreateBackup archives the mod directory into mod-backups beside it.
type CreateBackup struct {
	deps Deps
}

// Description implements command.Command.
func (c *CreateBackup) Description() string { return "Create a backup of the mod directory" }

// Run implements command.Command.
func (c *CreateBackup) Run(ctx context.Context) {
	cfg, ok := c.deps.loadConfig(ctx)
	if !ok {
		return
	}
	dir, ok := c.deps.modDir(cfg)
	if !ok {
		return
	}

	c.deps.Console.Println("Creating backup...")
	path, err := c.deps.NewArchiver(cfg).CreateBackup(ctx, dir)
	if err != nil {
		c.deps.Console.Printf("Failed to create backup: %v\n", err)
		if c.deps.verbose(cfg) {
			c.deps.reportIssue(cfg, err, "create backup", issue.BackupFailedId)
		}
		return
	}

	slog.Info("backup created", "path", path)
	c.deps.Console.Println("Backup created successfully")
	c.deps.Console.Printf("Saved to %s\n", path)
}
