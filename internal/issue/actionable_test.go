// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "create backup"},
			expected: "failed to create backup",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "list mods",
				Resource:  "/games/mods",
			},
			expected: "failed to list mods: /games/mods",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "search mods",
				Cause:     errors.New("connection refused"),
			},
			expected: "failed to search mods: connection refused",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "install sodium",
				Resource:  "/games/mods",
				Cause:     errors.New("permission denied"),
			},
			expected: "failed to install sodium: /games/mods: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if (&ActionableError{Operation: "test"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	root := errors.New("disk full")
	chain := fmt.Errorf("write zip: %w", root)

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions rendered as bullets",
			err: &ActionableError{
				Operation:   "create backup",
				Suggestions: []string{"Check free disk space", "Retry"},
				Cause:       chain,
			},
			contains: []string{"failed to create backup", "\n  • Check free disk space", "\n  • Retry"},
			excludes: []string{"Error chain:"},
		},
		{
			name:     "verbose prints the chain",
			err:      &ActionableError{Operation: "create backup", Cause: chain},
			verbose:  true,
			contains: []string{"Error chain:", "1. write zip: disk full", "2. disk full"},
		},
		{
			name:     "verbose without cause has no chain",
			err:      &ActionableError{Operation: "quit"},
			verbose:  true,
			excludes: []string{"Error chain:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.verbose)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Format() missing %q in:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Format() unexpectedly contains %q in:\n%s", bad, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("404")
	ae := NewErrorContext().
		WithOperation("install sodium").
		WithResource("https://api.modrinth.com").
		WithSuggestion("Search first").
		WithSuggestion("Check the slug").
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "install sodium" || ae.Resource != "https://api.modrinth.com" {
		t.Errorf("unexpected context: %+v", ae)
	}
	if len(ae.Suggestions) != 2 {
		t.Errorf("expected 2 suggestions, got %v", ae.Suggestions)
	}
	if !errors.Is(ae, cause) {
		t.Error("built error should wrap the cause")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	if ae := NewErrorContext().WithResource("x").Build(); ae != nil {
		t.Errorf("Build() without operation = %v, want nil", ae)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestErrorContext_BuiltErrorsAreIndependent(t *testing.T) {
	ctx := NewErrorContext().WithOperation("list mods").WithSuggestion("Retry")
	first := ctx.Build()

	ctx.WithOperation("search mods").WithSuggestion("Check the query")
	second := ctx.Build()

	if first.Operation != "list mods" || len(first.Suggestions) != 1 {
		t.Errorf("first error changed after reuse: %+v", first)
	}
	if second.Operation != "search mods" || len(second.Suggestions) != 2 {
		t.Errorf("second error = %+v", second)
	}
	second.Suggestions[0] = "edited"
	if first.Suggestions[0] != "Retry" {
		t.Error("built errors share suggestion storage")
	}
}

func TestDescribe(t *testing.T) {
	plain := errors.New("boom")
	actionable := NewErrorContext().WithOperation("list mods").WithSuggestion("Retry").Wrap(plain).BuildError()

	tests := []struct {
		name      string
		err       error
		operation string
		want      string
	}{
		{"nil", nil, "x", ""},
		{"plain without operation", plain, "", "boom"},
		{"plain with operation", plain, "search mods", "failed to search mods: boom"},
		{"resource and cause", &ActionableError{Operation: "uninstall sodium", Resource: "/games/mods", Cause: plain}, "", "failed to uninstall sodium: /games/mods: boom"},
		{"actionable keeps its own context", fmt.Errorf("outer: %w", actionable), "ignored", "failed to list mods: boom\n\n  • Retry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err, tt.operation, false); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
