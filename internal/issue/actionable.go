// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type (
	// ActionableError is a failure shown to the user together with what to
	// try next. Operation is required; the other fields may be empty.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("install sodium").
	//		WithResource("/home/steve/.minecraft/mods").
	//		WithSuggestion("Run 'modify config set mod_dir <dir>'").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "create backup".
		Operation string
		// Resource names the path or entity involved.
		Resource    string
		Suggestions []string
		Cause       error
	}

	// ErrorContext collects the parts of an ActionableError before it is
	// built.
	ErrorContext struct {
		draft ActionableError
	}
)

// NewErrorContext starts an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error reads "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error { return e.Cause }

// Format renders Error followed by a blank line and one bullet per
// suggestion. Verbose output also numbers every error in the cause chain.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())
	e.writeSuggestions(&b)
	if verbose {
		e.writeChain(&b)
	}
	return b.String()
}

func (e *ActionableError) writeSuggestions(b *strings.Builder) {
	if len(e.Suggestions) == 0 {
		return
	}
	b.WriteByte('\n')
	for _, s := range e.Suggestions {
		fmt.Fprintf(b, "\n  • %s", s)
	}
}

func (e *ActionableError) writeChain(b *strings.Builder) {
	if e.Cause == nil {
		return
	}
	b.WriteString("\n\nError chain:")
	for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
		fmt.Fprintf(b, "\n  %d. %s", depth, err)
	}
}

// WithOperation sets the verb phrase, e.g. "uninstall sodium".
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.draft.Operation = op
	return c
}

func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.draft.Resource = res
	return c
}

// WithSuggestion appends one hint; call it again for more.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.draft.Suggestions = append(c.draft.Suggestions, sug)
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.draft.Cause = err
	return c
}

// Build returns a copy of the collected error, or nil while no operation is
// set. Later changes to c do not affect errors already built.
func (c *ErrorContext) Build() *ActionableError {
	if c.draft.Operation == "" {
		return nil
	}
	ae := c.draft
	ae.Suggestions = slices.Clone(c.draft.Suggestions)
	return &ae
}

// BuildError is Build for return statements: it yields an untyped nil
// rather than a nil *ActionableError.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}

// Describe renders any error for the console. An ActionableError anywhere in
// the chain is formatted as is; other errors are attributed to operation when
// one is given.
func Describe(err error, operation string, verbose bool) string {
	if err == nil {
		return ""
	}
	var ae *ActionableError
	if !errors.As(err, &ae) {
		if operation == "" {
			return err.Error()
		}
		ae = &ActionableError{Operation: operation, Cause: err}
	}
	return ae.Format(verbose)
}
