// SPDX-License-Identifier: MPL-2.0

package modrinth

import (
	"crypto/sha1" //nolint:gosec // test fixture
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVerifyFile(t *testing.T) {
	t.Parallel()

	content := []byte("fake jar contents")
	path := filepath.Join(t.TempDir(), "mod.jar")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	s512 := sha512.Sum512(content)
	s1 := sha1.Sum(content) //nolint:gosec // test fixture
	good512 := hex.EncodeToString(s512[:])
	good1 := hex.EncodeToString(s1[:])

	tests := []struct {
		name     string
		hashes   Hashes
		wantAlgo string // empty means success
	}{
		{"sha512 match", Hashes{SHA512: good512}, ""},
		{"sha512 match uppercase", Hashes{SHA512: strings.ToUpper(good512)}, ""},
		{"sha512 preferred over wrong sha1", Hashes{SHA512: good512, SHA1: "00"}, ""},
		{"sha1 fallback", Hashes{SHA1: good1}, ""},
		{"no hashes accepted", Hashes{}, ""},
		{"sha512 mismatch", Hashes{SHA512: strings.Repeat("0", 128)}, "sha512"},
		{"sha1 mismatch", Hashes{SHA1: strings.Repeat("0", 40)}, "sha1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := VerifyFile(path, tt.hashes)
			if tt.wantAlgo == "" {
				if err != nil {
					t.Fatalf("VerifyFile() error: %v", err)
				}
				return
			}

			if !errors.Is(err, ErrChecksumMismatch) {
				t.Fatalf("expected ErrChecksumMismatch, got %v", err)
			}
			var ce *ChecksumError
			if !errors.As(err, &ce) || ce.Algorithm != tt.wantAlgo {
				t.Fatalf("expected %s ChecksumError, got %v", tt.wantAlgo, err)
			}
		})
	}
}

func TestVerifyFile_Missing(t *testing.T) {
	t.Parallel()

	err := VerifyFile(filepath.Join(t.TempDir(), "nope.jar"), Hashes{SHA512: "ab"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
