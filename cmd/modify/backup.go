// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/modify/modify/internal/backup"
	"github.com/modify/modify/internal/config"
	"github.com/modify/modify/internal/issue"

	"github.com/spf13/cobra"
)

// newBackupCommand creates the `modify backup` command tree. Running it
// without a subcommand creates a backup.
func newBackupCommand(app *App, opts *rootOptions) *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up the mod directory",
		Long: `Back up the mod directory.

Backups are zip files named HH-MM-DD-MM-YYYY.zip, stored in a mod-backups
folder next to the mod directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createBackup(cmd.Context(), app, opts)
		},
	}

	backupCmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a backup now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createBackup(cmd.Context(), app, opts)
		},
	})

	backupCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List existing backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBackups(cmd.Context(), app, opts)
		},
	})

	return backupCmd
}

// loadModDir loads the configuration and returns it with the mod directory.
func loadModDir(ctx context.Context, app *App, opts *rootOptions) (*config.Config, string, error) {
	cfg, err := app.Config.Load(ctx, opts.loadOptions())
	if err != nil {
		return nil, "", err
	}
	dir, err := cfg.RequireModDir()
	if err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("find mod directory").
			WithSuggestion("Run 'modify config set mod_dir <path>'").
			Wrap(err).
			BuildError()
	}
	return cfg, dir, nil
}

func createBackup(ctx context.Context, app *App, opts *rootOptions) error {
	cfg, dir, err := loadModDir(ctx, app, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(app.stdout, "Creating backup...")
	path, err := app.NewArchiver(cfg).CreateBackup(ctx, dir)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create backup").
			WithResource(dir).
			WithSuggestion("Check that the folder next to the mod directory is writable").
			Wrap(err).
			BuildError()
	}

	fmt.Fprintf(app.stdout, "%s Backup created at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func listBackups(ctx context.Context, app *App, opts *rootOptions) error {
	_, dir, err := loadModDir(ctx, app, opts)
	if err != nil {
		return err
	}

	backups, err := backup.List(dir)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("No backups yet"))
		return nil
	}

	for _, b := range backups {
		fmt.Fprintf(app.stdout, "%s  %8d bytes  %s\n",
			KeyStyle.Render(b.Name), b.Size, b.ModTime.Format("2006-01-02 15:04"))
	}
	return nil
}
