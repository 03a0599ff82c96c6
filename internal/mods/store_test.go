// SPDX-License-Identifier: MPL-2.0

package mods

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/modify/modify/internal/modrinth"
	"github.com/modify/modify/internal/testutil"
)

type fakeSource struct {
	project   *modrinth.Project
	versions  []modrinth.Version
	files     map[string]string
	err       error
	downloads []string
}

func (f *fakeSource) Project(_ context.Context, idOrSlug string) (*modrinth.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.project == nil {
		return nil, modrinth.ErrNotFound
	}
	return f.project, nil
}

func (f *fakeSource) Versions(context.Context, string, modrinth.VersionFilter) ([]modrinth.Version, error) {
	return f.versions, nil
}

func (f *fakeSource) Download(_ context.Context, fileURL string) (io.ReadCloser, error) {
	f.downloads = append(f.downloads, fileURL)
	body, ok := f.files[fileURL]
	if !ok {
		return nil, modrinth.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func sha512Hex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}

func version(number string, published time.Time, games, loaders []string, url, body string) modrinth.Version {
	return modrinth.Version{
		VersionNumber: number,
		GameVersions:  games,
		Loaders:       loaders,
		DatePublished: published,
		Files: []modrinth.File{{
			URL:     url,
			Primary: true,
			Hashes:  modrinth.Hashes{SHA512: sha512Hex(body)},
		}},
	}
}

var (
	day1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 = day1.AddDate(0, 0, 1)
	day3 = day1.AddDate(0, 0, 2)
)

func TestSelectVersion(t *testing.T) {
	t.Parallel()

	versions := []modrinth.Version{
		version("0.4", day1, []string{"1.20.1"}, []string{"fabric"}, "u1", "a"),
		version("0.6-forge", day3, []string{"1.20.1"}, []string{"forge"}, "u3", "c"),
		version("0.5", day2, []string{"1.20.1", "1.20"}, []string{"fabric", "quilt"}, "u2", "b"),
		version("0.3", day1, []string{"1.19.4"}, []string{"fabric"}, "u0", "z"),
	}

	tests := []struct {
		name    string
		game    string
		loader  string
		want    string
		wantErr bool
	}{
		{"newest for game version", "1.20.1", "", "0.6-forge", false},
		{"loader filter", "1.20.1", "fabric", "0.5", false},
		{"older game version", "1.19.4", "", "0.3", false},
		{"no game match", "1.8.9", "", "", true},
		{"no loader match", "1.19.4", "quilt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := SelectVersion(versions, tt.game, tt.loader)
			if tt.wantErr {
				if !errors.Is(err, ErrNoMatchingVersion) {
					t.Fatalf("expected ErrNoMatchingVersion, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectVersion() error: %v", err)
			}
			if got.VersionNumber != tt.want {
				t.Errorf("SelectVersion() = %s, want %s", got.VersionNumber, tt.want)
			}
		})
	}
}

func TestInstall(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "mods")
	src := &fakeSource{
		project: &modrinth.Project{Slug: "sodium"},
		versions: []modrinth.Version{
			version("0.5.8", day2, []string{"1.20.1"}, []string{"fabric"}, "https://cdn/new.jar", "new-jar"),
			version("0.5.3", day1, []string{"1.20.1"}, []string{"fabric"}, "https://cdn/old.jar", "old-jar"),
		},
		files: map[string]string{"https://cdn/new.jar": "new-jar", "https://cdn/old.jar": "old-jar"},
	}

	store := NewStore(dir)
	got, err := store.Install(context.Background(), src, InstallRequest{Slug: "sodium", GameVersion: "1.20.1"})
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	wantPath := filepath.Join(dir, "sodium_1.20.1.jar")
	if got.Path != wantPath || got.VersionNumber != "0.5.8" {
		t.Errorf("Install() = %+v", got)
	}
	data, err := os.ReadFile(wantPath)
	if err != nil || string(data) != "new-jar" {
		t.Errorf("installed jar = %q, %v", data, err)
	}
	assertOnlyFiles(t, dir, "sodium_1.20.1.jar")
}

func TestInstall_ReplacesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{"sodium_1.20.1.jar": "stale"})

	src := &fakeSource{
		project:  &modrinth.Project{Slug: "sodium"},
		versions: []modrinth.Version{version("1", day1, []string{"1.20.1"}, nil, "u", "fresh")},
		files:    map[string]string{"u": "fresh"},
	}

	if _, err := NewStore(dir).Install(context.Background(), src, InstallRequest{Slug: "sodium", GameVersion: "1.20.1"}); err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "sodium_1.20.1.jar"))
	if string(data) != "fresh" {
		t.Errorf("jar = %q, want fresh", data)
	}
}

func TestInstall_ChecksumMismatchLeavesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := &fakeSource{
		project:  &modrinth.Project{Slug: "sodium"},
		versions: []modrinth.Version{version("1", day1, []string{"1.20.1"}, nil, "u", "expected-bytes")},
		files:    map[string]string{"u": "tampered-bytes"},
	}

	_, err := NewStore(dir).Install(context.Background(), src, InstallRequest{Slug: "sodium", GameVersion: "1.20.1"})
	if !errors.Is(err, modrinth.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
	assertOnlyFiles(t, dir)
}

func TestInstall_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("network down")

	tests := []struct {
		name string
		src  *fakeSource
		req  InstallRequest
		want error
	}{
		{
			name: "unknown project",
			src:  &fakeSource{},
			req:  InstallRequest{Slug: "nope", GameVersion: "1.20.1"},
			want: modrinth.ErrNotFound,
		},
		{
			name: "source failure",
			src:  &fakeSource{err: boom},
			req:  InstallRequest{Slug: "sodium", GameVersion: "1.20.1"},
			want: boom,
		},
		{
			name: "no matching version",
			src: &fakeSource{
				project:  &modrinth.Project{Slug: "sodium"},
				versions: []modrinth.Version{version("1", day1, []string{"1.19"}, nil, "u", "x")},
			},
			req:  InstallRequest{Slug: "sodium", GameVersion: "1.20.1"},
			want: ErrNoMatchingVersion,
		},
		{
			name: "version without files",
			src: &fakeSource{
				project:  &modrinth.Project{Slug: "sodium"},
				versions: []modrinth.Version{{VersionNumber: "1", GameVersions: []string{"1.20.1"}}},
			},
			req:  InstallRequest{Slug: "sodium", GameVersion: "1.20.1"},
			want: ErrNoFile,
		},
		{
			name: "path in slug",
			src:  &fakeSource{},
			req:  InstallRequest{Slug: "../evil", GameVersion: "1.20.1"},
			want: ErrInvalidSlug,
		},
		{
			name: "path in game version",
			src: &fakeSource{
				project:  &modrinth.Project{Slug: "sodium"},
				versions: []modrinth.Version{version("1", day1, []string{"x/../../outside"}, nil, "u", "x")},
				files:    map[string]string{"u": "x"},
			},
			req:  InstallRequest{Slug: "sodium", GameVersion: "x/../../outside"},
			want: ErrInvalidGameVersion,
		},
		{
			name: "underscore in game version",
			src: &fakeSource{
				project:  &modrinth.Project{Slug: "sodium"},
				versions: []modrinth.Version{version("1", day1, []string{"1_20"}, nil, "u", "x")},
				files:    map[string]string{"u": "x"},
			},
			req:  InstallRequest{Slug: "sodium", GameVersion: "1_20"},
			want: ErrInvalidGameVersion,
		},
		{
			name: "dot-dot game version",
			src:  &fakeSource{project: &modrinth.Project{Slug: "sodium"}},
			req:  InstallRequest{Slug: "sodium", GameVersion: ".."},
			want: ErrInvalidGameVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parent := t.TempDir()
			dir := filepath.Join(parent, "mods")
			if err := os.Mkdir(dir, 0o755); err != nil {
				t.Fatal(err)
			}
			_, err := NewStore(dir).Install(context.Background(), tt.src, tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Install() error = %v, want %v", err, tt.want)
			}
			assertOnlyFiles(t, dir)
			assertOnlyFiles(t, parent, "mods")
			if len(tt.src.downloads) != 0 {
				t.Errorf("rejected install still downloaded %v", tt.src.downloads)
			}
		})
	}
}

func TestUninstall(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"sodium_1.20.1.jar":       "a",
		"sodium_1.19.4.jar":       "b",
		"sodium_extra_1.20.1.jar": "c",
		"sodium-extra_1.20.1.jar": "d",
		"lithium_1.20.1.jar":      "e",
		"sodium_1.20.1.txt":       "f",
	})

	removed, err := NewStore(dir).Uninstall("sodium")
	if err != nil {
		t.Fatalf("Uninstall() error: %v", err)
	}

	want := []string{filepath.Join(dir, "sodium_1.19.4.jar"), filepath.Join(dir, "sodium_1.20.1.jar")}
	if !slices.Equal(removed, want) {
		t.Errorf("removed = %v, want %v", removed, want)
	}
	assertOnlyFiles(t, dir, "lithium_1.20.1.jar", "sodium-extra_1.20.1.jar", "sodium_1.20.1.txt", "sodium_extra_1.20.1.jar")
}

func TestUninstall_NotInstalled(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"empty dir":   t.TempDir(),
		"missing dir": filepath.Join(t.TempDir(), "absent"),
	}
	for name, dir := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewStore(dir).Uninstall("sodium"); !errors.Is(err, ErrNotInstalled) {
				t.Errorf("expected ErrNotInstalled, got %v", err)
			}
		})
	}
}

func assertOnlyFiles(t *testing.T, dir string, want ...string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Fatal(err)
	}
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Name())
	}
	if !slices.Equal(got, want) {
		t.Errorf("directory contents = %v, want %v", got, want)
	}
}
