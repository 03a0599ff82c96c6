// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI entry points for modify.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/modify/modify/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// exitInterrupted is the conventional status for a SIGINT-terminated process.
const exitInterrupted = 130

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	errInterrupted = errors.New("interrupted")
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose bool
	cfgFile string
}

func (o *rootOptions) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: o.cfgFile}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// title is the program name and version shown in the menu banner.
func title() string {
	return "Modify " + Version
}

// NewRootCommand builds the command tree around app. Without a subcommand the
// interactive menu is started.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "modify",
		Short: "An interactive mod manager for Modrinth",
		Long: TitleStyle.Render("modify") + SubtitleStyle.Render(" - An interactive mod manager for Modrinth") + `

Run modify without arguments to open the interactive menu. From there you
can search Modrinth, install and uninstall mods, edit the configuration and
back up your mods folder.

` + SubtitleStyle.Render("Menu:") + `
  sS        Search for a mod
  S / R     Install / uninstall a mod
  l         List installed mods
  b         Back up the mod directory
  h / q     Help / quit

` + SubtitleStyle.Render("Examples:") + `
  modify                          Start the interactive menu
  modify config set mod_dir DIR   Point modify at your mods folder
  modify backup                   Create a backup and exit`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.setupLogging(cmd.Context(), opts)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			app.closeLogging()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), app, opts)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is <config dir>/modify/config.cue)")

	rootCmd.AddCommand(newBackupCommand(app, opts))
	rootCmd.AddCommand(newConfigCommand(app, opts))

	return rootCmd
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
