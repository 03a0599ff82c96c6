// SPDX-License-Identifier: MPL-2.0

package mods

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/modify/modify/internal/modrinth"
)

const jarExt = ".jar"

type (
	// Source is the subset of the Modrinth client the store needs.
	Source interface {
		Project(ctx context.Context, idOrSlug string) (*modrinth.Project, error)
		Versions(ctx context.Context, idOrSlug string, filter modrinth.VersionFilter) ([]modrinth.Version, error)
		Download(ctx context.Context, fileURL string) (io.ReadCloser, error)
	}

	// Store manages the jars in one mods directory.
	Store struct {
		dir string
	}

	// InstallRequest names what to install.
	InstallRequest struct {
		Slug        string
		GameVersion string
		// Loader restricts the match; empty accepts any loader.
		Loader string
	}

	// Installed describes a jar written by Install.
	Installed struct {
		Slug          string
		GameVersion   string
		VersionNumber string
		Path          string
	}
)

// NewStore returns a Store for dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// JarName returns the file name Install uses for slug and gameVersion.
func JarName(slug, gameVersion string) string {
	return slug + "_" + gameVersion + jarExt
}

// Install resolves req against src, downloads the newest matching version and
// places it at <dir>/<slug>_<game version>.jar, replacing an older copy.
// Nothing is left in the directory when any step fails.
func (s *Store) Install(ctx context.Context, src Source, req InstallRequest) (*Installed, error) {
	if err := validateSlug(req.Slug); err != nil {
		return nil, err
	}
	if err := validateGameVersion(req.GameVersion); err != nil {
		return nil, err
	}

	project, err := src.Project(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	slug := strings.ToLower(project.Slug)
	if slug == "" {
		slug = req.Slug
	}

	versions, err := src.Versions(ctx, slug, modrinth.VersionFilter{GameVersion: req.GameVersion, Loader: req.Loader})
	if err != nil {
		return nil, err
	}

	version, err := SelectVersion(versions, req.GameVersion, req.Loader)
	if err != nil {
		return nil, err
	}

	file, ok := version.PrimaryFile()
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", slug, version.VersionNumber, ErrNoFile)
	}

	slog.Debug("installing mod", "slug", slug, "version", version.VersionNumber, "file", file.Filename)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, ioErr("create mod directory", s.dir, err)
	}

	target := filepath.Join(s.dir, JarName(slug, req.GameVersion))
	if err := s.download(ctx, src, file, target); err != nil {
		return nil, err
	}

	return &Installed{
		Slug:          slug,
		GameVersion:   req.GameVersion,
		VersionNumber: version.VersionNumber,
		Path:          target,
	}, nil
}

func (s *Store) download(ctx context.Context, src Source, file modrinth.File, target string) (err error) {
	body, err := src.Download(ctx, file.URL)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }() // read-only response body

	tmp, err := os.CreateTemp(s.dir, ".modify-*.part")
	if err != nil {
		return ioErr("create temp file", s.dir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath) // best-effort cleanup of the partial download
		}
	}()

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return ioErr("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return ioErr("close", tmpPath, err)
	}

	if err := modrinth.VerifyFile(tmpPath, file.Hashes); err != nil {
		return err
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return ioErr("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return ioErr("rename", target, err)
	}
	return nil
}

// SelectVersion returns the most recently published version that lists
// gameVersion and, when loader is set, loader.
func SelectVersion(versions []modrinth.Version, gameVersion, loader string) (*modrinth.Version, error) {
	var best *modrinth.Version
	for i := range versions {
		v := &versions[i]
		if !slices.Contains(v.GameVersions, gameVersion) {
			continue
		}
		if loader != "" && !slices.Contains(v.Loaders, loader) {
			continue
		}
		if best == nil || v.DatePublished.After(best.DatePublished) {
			best = v
		}
	}
	if best == nil {
		if loader != "" {
			return nil, fmt.Errorf("%w: %s (%s)", ErrNoMatchingVersion, gameVersion, loader)
		}
		return nil, fmt.Errorf("%w: %s", ErrNoMatchingVersion, gameVersion)
	}
	return best, nil
}

// Uninstall removes every <slug>_<game version>.jar and returns the removed
// paths. It returns ErrNotInstalled when nothing matched.
func (s *Store) Uninstall(slug string) ([]string, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	matches, err := s.installedJars(slug)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", slug, ErrNotInstalled)
	}

	removed := make([]string, 0, len(matches))
	for _, path := range matches {
		if err := os.Remove(path); err != nil {
			return removed, ioErr("remove", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// installedJars lists the jars Install would have written for slug. The game
// version part never contains '_', which keeps "foo" from matching "foo_bar".
func (s *Store) installedJars(slug string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, ioErr("read", s.dir, err)
	}

	prefix := slug + "_"
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, jarExt) {
			continue
		}
		gameVersion := strings.TrimSuffix(strings.TrimPrefix(name, prefix), jarExt)
		if gameVersion == "" || strings.Contains(gameVersion, "_") {
			continue
		}
		out = append(out, filepath.Join(s.dir, name))
	}
	return out, nil
}

// validateGameVersion keeps the version usable as the tail of a jar name:
// it must stay inside the directory and be recognisable by installedJars.
func validateGameVersion(v string) error {
	if v == "" || v == "." || v == ".." || strings.ContainsAny(v, `/\_`) {
		return fmt.Errorf("%w: %q", ErrInvalidGameVersion, v)
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	return nil
}
