// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modify/modify/internal/command"
	"github.com/modify/modify/internal/commands"
	"github.com/modify/modify/internal/config"
)

// dirProvider pins the config directory so tests never touch the user's
// real configuration.
type dirProvider struct {
	config.Provider
	dir string
}

func (p dirProvider) pin(opts config.LoadOptions) config.LoadOptions {
	if opts.ConfigFilePath == "" {
		opts.ConfigDirPath = p.dir
	}
	return opts
}

func (p dirProvider) Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error) {
	return p.Provider.Load(ctx, p.pin(opts))
}

func (p dirProvider) Save(ctx context.Context, opts config.LoadOptions, cfg *config.Config) (string, error) {
	return p.Provider.Save(ctx, p.pin(opts), cfg)
}

func (p dirProvider) Path(opts config.LoadOptions) (string, error) {
	return p.Provider.Path(p.pin(opts))
}

type testApp struct {
	app     *App
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	cfgPath string
}

// newTestApp builds an App around scripted stdin and a config directory
// in a temp dir. Commands using it must not run in parallel: setupLogging
// replaces the process-wide slog default.
func newTestApp(t *testing.T, stdin string, archiver commands.BackupCreator) *testApp {
	t.Helper()

	dir := t.TempDir()
	ta := &testApp{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		cfgPath: filepath.Join(dir, "config.cue"),
	}
	deps := Dependencies{
		Config: dirProvider{Provider: config.NewProvider(), dir: dir},
		Stdin:  strings.NewReader(stdin),
		Stdout: ta.stdout,
		Stderr: ta.stderr,
	}
	if archiver != nil {
		deps.NewArchiver = func(*config.Config) commands.BackupCreator { return archiver }
	}

	app, err := NewApp(deps)
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	ta.app = app
	return ta
}

func (ta *testApp) execute(t *testing.T, args ...string) error {
	t.Helper()

	root := NewRootCommand(ta.app)
	root.SetArgs(args)
	root.SetOut(ta.stdout)
	root.SetErr(ta.stderr)
	return root.ExecuteContext(context.Background())
}

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
		if title() != "Modify v1.2.3" {
			t.Errorf("title() = %q", title())
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestRoot_InteractiveQuit(t *testing.T) {
	ta := newTestApp(t, "q\n", nil)

	if err := ta.execute(t); err != nil {
		t.Fatalf("execute() error: %v", err)
	}

	out := ta.stdout.String()
	if !strings.HasPrefix(out, command.Banner(title())+"\n") {
		t.Errorf("menu should be shown on start:\n%s", out)
	}
	if !strings.Contains(out, "• q - Quit\n") {
		t.Errorf("menu incomplete:\n%s", out)
	}
	if !strings.HasSuffix(out, "> Goodbye!\n") {
		t.Errorf("output should end with farewell:\n%s", out)
	}
}

func TestRoot_InteractiveEOF(t *testing.T) {
	ta := newTestApp(t, "xyz\n", nil)

	if err := ta.execute(t); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if !strings.Contains(ta.stdout.String(), "Unknown command: xyz (type 'h' for help)") {
		t.Errorf("output = %q", ta.stdout.String())
	}
}

func TestRoot_Interrupted(t *testing.T) {
	ta := newTestApp(t, "q\n", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runErr := runInteractive(ctx, ta.app, &rootOptions{})
	var exitErr *ExitError
	if !errors.As(runErr, &exitErr) || exitErr.Code != exitInterrupted {
		t.Fatalf("runInteractive() = %v, want exit %d", runErr, exitInterrupted)
	}
	if !errors.Is(runErr, errInterrupted) {
		t.Errorf("error should wrap errInterrupted: %v", runErr)
	}
	if strings.Contains(ta.stdout.String(), "Goodbye!") {
		t.Error("quit must not run after cancellation")
	}
}

func TestRoot_MissingExplicitConfig(t *testing.T) {
	ta := newTestApp(t, "", nil)
	missing := filepath.Join(t.TempDir(), "absent.cue")

	err := ta.execute(t, "--config", missing, "config", "show")
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("expected a not-found error, got %v", err)
	}
}

func TestRoot_RejectsArgs(t *testing.T) {
	ta := newTestApp(t, "", nil)
	if err := ta.execute(t, "unexpected"); err == nil {
		t.Fatal("expected an error for a positional argument")
	}
}

func TestSetupLogging_WarnsOnBrokenConfig(t *testing.T) {
	ta := newTestApp(t, "", nil)
	if err := os.WriteFile(ta.cfgPath, []byte("loader: 12"), 0o644); err != nil {
		t.Fatal(err)
	}

	ta.app.setupLogging(context.Background(), &rootOptions{})
	t.Cleanup(ta.app.closeLogging)

	if !strings.Contains(ta.stderr.String(), "Warning: failed to load configuration") {
		t.Errorf("stderr = %q", ta.stderr.String())
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	tests := []struct {
		err  *ExitError
		want string
	}{
		{&ExitError{Code: 2}, "exit status 2"},
		{&ExitError{Code: 1, Err: cause}, "boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	if !errors.Is(&ExitError{Code: 1, Err: cause}, cause) {
		t.Error("ExitError should unwrap to its cause")
	}
}
