// SPDX-License-Identifier: MPL-2.0

package mods

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is the sentinel wrapped by every filesystem failure.
	ErrIO = errors.New("mod directory I/O failure")

	// ErrNotInstalled is returned when no jar matches a slug.
	ErrNotInstalled = errors.New("mod is not installed")

	// ErrNoMatchingVersion is returned when no published version supports the
	// requested Minecraft version and loader.
	ErrNoMatchingVersion = errors.New("no version matches the requested Minecraft version")

	// ErrNoFile is returned when the selected version has no downloadable file.
	ErrNoFile = errors.New("version has no downloadable file")

	// ErrInvalidSlug is returned for slugs that cannot name a jar safely.
	ErrInvalidSlug = errors.New("invalid mod slug")

	// ErrInvalidGameVersion is returned for Minecraft versions that cannot
	// form a jar name inside the mod directory.
	ErrInvalidGameVersion = errors.New("invalid Minecraft version")
)

// IOError describes a failed filesystem step. It matches both ErrIO and the
// underlying cause with errors.Is.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes ErrIO and the original cause.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
