// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"
	"fmt"
	"iter"
)

// Command is one user-invocable action.
//
// Run performs the action and reports problems on the console itself; nothing
// is returned to the dispatcher. Description is a constant label shown in
// the help menu.
type Command interface {
	Run(ctx context.Context)
	Description() string
}

// Registry maps tokens to commands and remembers registration order.
// It is built once at startup and only read afterwards.
type Registry struct {
	tokens []string
	byKey  map[string]Command
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Command)}
}

// Register adds cmd under token. Registering an empty token, a nil command or
// the same token twice is a programming error and panics.
func (r *Registry) Register(token string, cmd Command) {
	if token == "" {
		panic("command: empty token")
	}
	if cmd == nil {
		panic(fmt.Sprintf("command: nil command for token %q", token))
	}
	if _, dup := r.byKey[token]; dup {
		panic(fmt.Sprintf("command: token %q registered twice", token))
	}
	r.tokens = append(r.tokens, token)
	r.byKey[token] = cmd
}

// Lookup returns the command registered under exactly token.
func (r *Registry) Lookup(token string) (Command, bool) {
	cmd, ok := r.byKey[token]
	return cmd, ok
}

// All iterates tokens and commands in registration order.
func (r *Registry) All() iter.Seq2[string, Command] {
	return func(yield func(string, Command) bool) {
		for _, t := range r.tokens {
			if !yield(t, r.byKey[t]) {
				return
			}
		}
	}
}

// Tokens returns the registered tokens in registration order.
func (r *Registry) Tokens() []string {
	out := make([]string, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int { return len(r.tokens) }
