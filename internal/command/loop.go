// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	// StateAwaitingInput means the loop is waiting for the next token.
	StateAwaitingInput State = iota
	// StateTerminated means the loop has stopped and will not read again.
	StateTerminated
)

type (
	// State is the dispatch loop's lifecycle state.
	State int

	// LineReader supplies input lines, printing label first.
	LineReader interface {
		Prompt(label string) (string, error)
	}

	// Loop reads tokens and dispatches them to registered commands until the
	// quit command has run, input ends or the context is canceled.
	Loop struct {
		registry  *Registry
		in        LineReader
		out       io.Writer
		quitToken string
		helpToken string
		prompt    string
		state     State
	}

	// LoopOption configures a Loop.
	LoopOption func(*Loop)

	lineResult struct {
		line string
		err  error
	}
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting input"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// WithQuitToken sets the token that ends the loop after its command runs.
func WithQuitToken(token string) LoopOption {
	return func(l *Loop) { l.quitToken = token }
}

// WithHelpToken sets the token suggested for unknown input.
func WithHelpToken(token string) LoopOption {
	return func(l *Loop) { l.helpToken = token }
}

// WithPrompt sets the label printed before each read.
func WithPrompt(prompt string) LoopOption {
	return func(l *Loop) { l.prompt = prompt }
}

// NewLoop creates a Loop over reg. Defaults: quit token "q", help token "h",
// prompt "> ".
func NewLoop(reg *Registry, in LineReader, out io.Writer, opts ...LoopOption) *Loop {
	l := &Loop{
		registry:  reg,
		in:        in,
		out:       out,
		quitToken: "q",
		helpToken: "h",
		prompt:    "> ",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Run dispatches until termination. It returns nil after the quit command or
// end of input, the context error on cancellation, and read errors as-is.
func (l *Loop) Run(ctx context.Context) error {
	l.state = StateAwaitingInput
	defer func() { l.state = StateTerminated }()

	for {
		line, err := l.readLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				slog.Debug("input closed, leaving dispatch loop")
				return nil
			}
			return err
		}

		token := strings.TrimSpace(line)
		if token == "" {
			continue
		}

		cmd, ok := l.registry.Lookup(token)
		if !ok {
			fmt.Fprintf(l.out, "Unknown command: %s (type '%s' for help)\n", token, l.helpToken)
			continue
		}

		cmd.Run(ctx)

		if token == l.quitToken {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (l *Loop) readLine(ctx context.Context) (string, error) {
	return Prompt(ctx, l.in, l.prompt)
}

// Prompt asks in for one line and waits for it or for ctx to end, whichever
// is first. A read still blocked at cancellation is abandoned; the process is
// exiting.
func Prompt(ctx context.Context, in LineReader, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ch := make(chan lineResult, 1)
	go func() {
		line, err := in.Prompt(label)
		ch <- lineResult{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}
