// SPDX-License-Identifier: MPL-2.0

// Package logging builds the process logger: a charmbracelet/log console
// logger on stderr and, when configured, a rotating JSON log file.
package logging
