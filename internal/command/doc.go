// SPDX-License-Identifier: MPL-2.0

// Package command is the interactive dispatch framework: the Command
// capability, an insertion-ordered Registry of commands keyed by token, the
// read-dispatch Loop and the help menu renderer.
package command
