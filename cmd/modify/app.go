// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/modify/modify/internal/commands"
	"github.com/modify/modify/internal/config"
	"github.com/modify/modify/internal/issue"
	"github.com/modify/modify/internal/logging"
)

type (
	// App wires the collaborators used by every CLI entry point.
	App struct {
		Config      config.Provider
		NewClient   func(cfg *config.Config) commands.ModrinthClient
		NewArchiver func(cfg *config.Config) commands.BackupCreator

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		logs   *logging.Logging
	}

	// Dependencies are the optional overrides for NewApp. Zero values select
	// the production implementation.
	Dependencies struct {
		Config      config.Provider
		NewClient   func(cfg *config.Config) commands.ModrinthClient
		NewArchiver func(cfg *config.Config) commands.BackupCreator
		Stdin       io.Reader
		Stdout      io.Writer
		Stderr      io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewClient == nil {
		deps.NewClient = commands.DefaultClient
	}
	if deps.NewArchiver == nil {
		deps.NewArchiver = commands.DefaultArchiver
	}

	return &App{
		Config:      deps.Config,
		NewClient:   deps.NewClient,
		NewArchiver: deps.NewArchiver,
		stdin:       deps.Stdin,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}, nil
}

// setupLogging installs the process logger from the configuration. A broken
// config file is reported once here; commands report it again when they need
// the values.
func (a *App) setupLogging(ctx context.Context, opts *rootOptions) {
	if ctx == nil {
		ctx = context.Background()
	}

	verbose := opts.verbose
	logOpts := logging.Options{Console: a.stderr}

	cfg, err := a.Config.Load(ctx, opts.loadOptions())
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+issue.Describe(err, "load configuration", verbose))
	} else {
		verbose = verbose || cfg.UI.Verbose
		logOpts.File = cfg.Log.File
		logOpts.Level = string(cfg.Log.Level)
	}
	logOpts.Verbose = verbose

	a.logs = logging.New(logOpts)
	a.logs.Install()
}

func (a *App) closeLogging() {
	if a.logs == nil {
		return
	}
	if err := a.logs.Close(); err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+"failed to close log file: "+err.Error())
	}
	a.logs = nil
}
