// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/modify/modify/internal/command"
	"github.com/modify/modify/internal/commands"
	"github.com/modify/modify/internal/console"
)

// runInteractive shows the menu once and then dispatches tokens until quit,
// end of input or interrupt.
func runInteractive(ctx context.Context, app *App, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	con := console.New(app.stdin, app.stdout)
	reg := commands.Build(commands.Deps{
		Console:     con,
		Config:      app.Config,
		LoadOptions: opts.loadOptions(),
		NewClient:   app.NewClient,
		NewArchiver: app.NewArchiver,
		Title:       title(),
		Verbose:     opts.verbose,
	})

	if help, ok := reg.Lookup(commands.TokenHelp); ok {
		help.Run(ctx)
	}

	loop := command.NewLoop(reg, con, con.Out(),
		command.WithQuitToken(commands.TokenQuit),
		command.WithHelpToken(commands.TokenHelp),
	)
	if err := loop.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			con.Println()
			return &ExitError{Code: exitInterrupted, Err: errInterrupted}
		}
		return err
	}
	return nil
}
