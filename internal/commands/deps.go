// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/modify/modify/internal/backup"
	"github.com/modify/modify/internal/command"
	"github.com/modify/modify/internal/config"
	"github.com/modify/modify/internal/issue"
	"github.com/modify/modify/internal/modrinth"
	"github.com/modify/modify/internal/mods"
)

// Registry tokens.
const (
	TokenSearch       = "sS"
	TokenInstall      = "S"
	TokenUninstall    = "R"
	TokenPrintConfig  = "pconfig"
	TokenEditConfig   = "config"
	TokenList         = "l"
	TokenCreateBackup = "b"
	TokenHelp         = "h"
	TokenQuit         = "q"
)

type (
	// Console is the terminal the commands talk to.
	Console interface {
		Prompt(label string) (string, error)
		Println(a ...any)
		Printf(format string, a ...any)
	}

	// ModrinthClient is what Search and Install need from the API.
	ModrinthClient interface {
		mods.Source
		Search(ctx context.Context, query string, limit int) ([]modrinth.SearchHit, error)
	}

	// BackupCreator archives a mods directory and returns the archive path.
	BackupCreator interface {
		CreateBackup(ctx context.Context, sourceDir string) (string, error)
	}

	// Deps are the collaborators shared by every command. Config is loaded
	// fresh on each Run so edits take effect immediately.
	Deps struct {
		Console     Console
		Config      config.Provider
		LoadOptions config.LoadOptions
		// NewClient builds an API client from the current configuration.
		NewClient func(cfg *config.Config) ModrinthClient
		// NewArchiver builds an archiver from the current configuration.
		NewArchiver func(cfg *config.Config) BackupCreator
		// Title is shown in the help banner, e.g. "Modify 1.0.0".
		Title string
		// Verbose forces verbose error output regardless of ui.verbose.
		Verbose bool
	}
)

// Build registers every command in menu order and returns the registry.
func Build(deps Deps) *command.Registry {
	reg := command.NewRegistry()
	reg.Register(TokenSearch, &Search{deps: deps})
	reg.Register(TokenInstall, &Install{deps: deps})
	reg.Register(TokenUninstall, &Uninstall{deps: deps})
	reg.Register(TokenPrintConfig, &PrintConfig{deps: deps})
	reg.Register(TokenEditConfig, &EditConfig{deps: deps})
	reg.Register(TokenList, &List{deps: deps})
	reg.Register(TokenCreateBackup, &CreateBackup{deps: deps})
	reg.Register(TokenHelp, &Help{deps: deps, registry: reg})
	reg.Register(TokenQuit, &Quit{deps: deps})
	return reg
}

// DefaultClient builds the production Modrinth client from cfg.
func DefaultClient(cfg *config.Config) ModrinthClient {
	return modrinth.NewClient(
		modrinth.WithBaseURL(cfg.API.BaseURL),
		modrinth.WithUserAgent(cfg.API.UserAgent),
		modrinth.WithTimeout(cfg.TimeoutDuration()),
	)
}

// DefaultArchiver builds the production archiver from cfg.
func DefaultArchiver(cfg *config.Config) BackupCreator {
	return backup.New(backup.WithPermissionSource(backup.PermissionSource(cfg.Backup.Permissions)))
}

// loadConfig loads the configuration, reporting failures on the console.
func (d Deps) loadConfig(ctx context.Context) (*config.Config, bool) {
	cfg, err := d.Config.Load(ctx, d.LoadOptions)
	if err != nil {
		d.reportIssue(nil, err, "load configuration", issue.ConfigLoadFailedId)
		return nil, false
	}
	return cfg, true
}

// modDir returns the configured mod directory, reporting when it is unset.
func (d Deps) modDir(cfg *config.Config) (string, bool) {
	dir, err := cfg.RequireModDir()
	if err != nil {
		d.report(cfg, issue.NewErrorContext().
			WithOperation("find mod directory").
			WithSuggestion("Run 'config' and set mod_dir").
			WithSuggestion("Or run 'modify config set mod_dir <path>'").
			Wrap(err).
			BuildError(), "")
		return "", false
	}
	return dir, true
}

func (d Deps) verbose(cfg *config.Config) bool {
	return d.Verbose || (cfg != nil && cfg.UI.Verbose)
}

// report prints err for the user. In verbose mode the matching issue page,
// if any, follows the error.
func (d Deps) report(cfg *config.Config, err error, operation string) {
	id, _ := issueFor(err)
	d.reportIssue(cfg, err, operation, id)
}

// reportIssue is report with an explicit issue page; a zero id prints none.
func (d Deps) reportIssue(cfg *config.Config, err error, operation string, id issue.Id) {
	verbose := d.verbose(cfg)
	d.Console.Println(issue.Describe(err, operation, verbose))

	if !verbose || issue.Get(id) == nil {
		return
	}
	style := "auto"
	if cfg != nil {
		style = string(cfg.UI.ColorScheme)
	}
	if page, rerr := issue.Get(id).Render(style); rerr == nil {
		d.Console.Println(page)
	}
}

// issueFor maps well-known failures to their troubleshooting page.
func issueFor(err error) (issue.Id, bool) {
	var rle *modrinth.RateLimitError
	switch {
	case errors.Is(err, config.ErrModDirNotSet):
		return issue.ModDirNotSetId, true
	case errors.As(err, &rle):
		return issue.RateLimitedId, true
	case errors.Is(err, modrinth.ErrNotFound):
		return issue.ModNotFoundId, true
	case errors.Is(err, mods.ErrNoMatchingVersion):
		return issue.NoMatchingVersionId, true
	case errors.Is(err, modrinth.ErrChecksumMismatch):
		return issue.ChecksumMismatchId, true
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedId, true
	case errors.Is(err, backup.ErrIO):
		return issue.BackupFailedId, true
	case errors.Is(err, config.ErrInvalidConfig):
		return issue.ConfigLoadFailedId, true
	case isNetworkError(err):
		return issue.NetworkFailedId, true
	default:
		return 0, false
	}
}

func isNetworkError(err error) bool {
	var se *modrinth.StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

// prompt asks for one answer. ok is false when input has ended or ctx is
// done.
func (d Deps) prompt(ctx context.Context, label string) (string, bool) {
	answer, err := command.Prompt(ctx, d.Console, label)
	if err != nil {
		return "", false
	}
	return answer, true
}
