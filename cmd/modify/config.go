// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modify/modify/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `modify config` command tree.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage modify configuration",
		Long: `Manage modify configuration.

Configuration is stored in:
  - Linux: ~/.config/modify/config.cue
  - macOS: ~/Library/Application Support/modify/config.cue
  - Windows: %APPDATA%\modify\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.Config.Path(opts.loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, opts, args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), opts.loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, opts *rootOptions) error {
	cfg, err := app.Config.Load(ctx, opts.loadOptions())
	if err != nil {
		return err
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	if path, pathErr := app.Config.Path(opts.loadOptions()); pathErr == nil {
		fmt.Fprintf(app.stdout, "%s: %s\n", KeyStyle.Render("Config file"), path)
	}
	fmt.Fprintln(app.stdout)

	for _, e := range config.Entries(cfg) {
		value := SuccessStyle.Render(e.Value)
		if e.Value == "" {
			value = SubtitleStyle.Render("(not set)")
		}
		fmt.Fprintf(app.stdout, "%s: %s\n", KeyStyle.Render(e.Key), value)
	}
	return nil
}

func initConfig(app *App, opts *rootOptions) error {
	path, err := app.Config.Path(opts.loadOptions())
	if err != nil {
		return err
	}

	modDir, err := config.DefaultModDir()
	if err != nil {
		slog.Warn("failed to determine default mod directory", "error", err)
		modDir = ""
	}

	created, err := config.CreateDefaultConfig(path, modDir)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(app.stdout, "Configuration already exists at %s\n", path)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	if modDir != "" {
		fmt.Fprintf(app.stdout, "%s mod_dir = %s\n", SubtitleStyle.Render("  "), modDir)
	}
	return nil
}

func setConfigValue(ctx context.Context, app *App, opts *rootOptions, key, value string) error {
	cfg, err := app.Config.Load(ctx, opts.loadOptions())
	if err != nil {
		return err
	}

	if err := config.Set(cfg, key, value); err != nil {
		return err
	}

	path, err := app.Config.Save(ctx, opts.loadOptions(), cfg)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s (%s)\n", SuccessStyle.Render("✓"), key, value, path)
	return nil
}
