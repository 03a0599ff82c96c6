// SPDX-License-Identifier: MPL-2.0

package modrinth

import (
	"crypto/sha1" //nolint:gosec // Modrinth still publishes SHA-1 for older files.
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// ErrChecksumMismatch indicates the computed hash does not match the published one.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ChecksumError provides details about a checksum verification failure.
// It wraps ErrChecksumMismatch so callers can use errors.Is for classification.
type ChecksumError struct {
	Filename  string
	Algorithm string
	Expected  string
	Got       string
}

// Error returns a human-readable description of the checksum mismatch,
// showing both expected and actual hash values for debugging.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s verification failed for %s\nExpected: %s\nGot:      %s", e.Algorithm, e.Filename, e.Expected, e.Got)
}

// Unwrap returns ErrChecksumMismatch so callers can use errors.Is.
func (e *ChecksumError) Unwrap() error { return ErrChecksumMismatch }

// VerifyFile checks the file at path against the strongest hash in want.
// SHA-512 is preferred; SHA-1 is used only when no SHA-512 is published.
// A file with no published hashes is accepted.
func VerifyFile(path string, want Hashes) error {
	algo, expected, newHash := pickHash(want)
	if newHash == nil {
		return nil
	}

	got, err := ComputeFileHash(path, newHash())
	if err != nil {
		return err
	}

	if !strings.EqualFold(got, expected) {
		return &ChecksumError{
			Filename:  path,
			Algorithm: algo,
			Expected:  strings.ToLower(expected),
			Got:       got,
		}
	}

	return nil
}

// ComputeFileHash streams the file at path through h and returns the
// lowercase hex digest.
func ComputeFileHash(path string, h hash.Hash) (_ string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		// Read-only file handle; close errors are exotic (NFS edge cases).
		_ = f.Close()
	}()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing file %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func pickHash(want Hashes) (algo, expected string, newHash func() hash.Hash) {
	switch {
	case want.SHA512 != "":
		return "sha512", want.SHA512, sha512.New
	case want.SHA1 != "":
		return "sha1", want.SHA1, sha1.New
	default:
		return "", "", nil
	}
}
