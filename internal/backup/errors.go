// SPDX-License-Identifier: MPL-2.0

package backup

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is the sentinel wrapped by every filesystem or archive failure.
	ErrIO = errors.New("backup I/O failure")

	// ErrNoParent is returned when the source directory has no parent to hold
	// the backup directory (e.g. the filesystem root).
	ErrNoParent = errors.New("source directory has no parent")

	// ErrNotDirectory is returned when the backup source is not a directory.
	ErrNotDirectory = errors.New("backup source is not a directory")

	// ErrSymlinkLoop is returned when a followed directory symlink points back
	// at one of its own ancestors.
	ErrSymlinkLoop = errors.New("directory symlink loop")
)

// IOError describes a failed filesystem or archive step. It matches both
// ErrIO and the underlying cause with errors.Is.
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
