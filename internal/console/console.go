// SPDX-License-Identifier: MPL-2.0

// Package console is the line-oriented terminal collaborator shared by the
// dispatch loop and the commands.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Console reads answers one line at a time and writes plain text output.
// It is not safe for concurrent use; the dispatch loop is sequential.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

// New returns a Console reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Out returns the output writer.
func (c *Console) Out() io.Writer { return c.out }

// Prompt prints label without a newline and returns the next input line with
// surrounding whitespace removed. A final line without a trailing newline is
// still returned; io.EOF is reported only once input is exhausted.
func (c *Console) Prompt(label string) (string, error) {
	if label != "" {
		if _, err := io.WriteString(c.out, label); err != nil {
			return "", err
		}
	}
	return c.ReadLine()
}

// ReadLine returns the next input line, trimmed.
func (c *Console) ReadLine() (string, error) {
	if c.eof {
		return "", io.EOF
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		c.eof = true
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimSpace(line), nil
}

// Println writes the operands followed by a newline.
func (c *Console) Println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...) // console output; nothing useful to do on failure
}

// Printf writes formatted output.
func (c *Console) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}
