// SPDX-License-Identifier: MPL-2.0

package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPrompt(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	c := New(strings.NewReader("  sodium \r\n\nlast"), &out)

	steps := []struct {
		label string
		want  string
		err   error
	}{
		{"Enter mod: ", "sodium", nil},
		{"", "", nil},
		{"> ", "last", nil},
		{"> ", "", io.EOF},
		{"> ", "", io.EOF},
	}

	for i, s := range steps {
		got, err := c.Prompt(s.label)
		if !errors.Is(err, s.err) || (s.err == nil && err != nil) {
			t.Fatalf("step %d: error = %v, want %v", i, err, s.err)
		}
		if got != s.want {
			t.Errorf("step %d: got %q, want %q", i, got, s.want)
		}
	}

	if want := "Enter mod: > > > "; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestPrintHelpers(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)

	c.Println("• Slug:", "sodium")
	c.Printf("%s=%d\n", "n", 3)

	if want := "• Slug: sodium\nn=3\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if c.Out() != &out {
		t.Error("Out() should return the configured writer")
	}
}
