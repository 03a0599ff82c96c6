// SPDX-License-Identifier: MPL-2.0

package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

const (
	// DirName is the directory, created beside the source, that holds backups.
	DirName = "mod-backups"

	// nameLayout renders hour, minute, day, month, year. The field order is
	// kept for compatibility with existing backup folders.
	nameLayout = "15-04-02-01-2006"

	fileExt = ".zip"

	// maxNameSuffix bounds the -N suffixes tried when a name is taken.
	maxNameSuffix = 1000

	// PermissionsPerEntry stamps every entry with its own permission bits.
	PermissionsPerEntry PermissionSource = "entry"
	// PermissionsFromRoot stamps every entry with the root directory's bits.
	PermissionsFromRoot PermissionSource = "root"
)

// ErrInvalidPermissionSource is returned for an unknown PermissionSource.
var ErrInvalidPermissionSource = errors.New("invalid permission source")

type (
	// PermissionSource selects which permission bits are written to entries.
	PermissionSource string

	// Clock supplies the time used to name backups.
	Clock interface {
		Now() time.Time
	}

	// Archiver creates zip backups of a directory tree.
	Archiver struct {
		clock Clock
		perms PermissionSource
	}

	// Option configures an Archiver.
	Option func(*Archiver)

	// Info describes an existing backup file.
	Info struct {
		Name    string
		Path    string
		Size    int64
		ModTime time.Time
	}

	systemClock struct{}
)

func (systemClock) Now() time.Time { return time.Now() }

// IsValid reports whether p is a known permission source.
func (p PermissionSource) IsValid() bool {
	return p == PermissionsPerEntry || p == PermissionsFromRoot
}

// WithClock overrides the clock used for backup names.
func WithClock(c Clock) Option {
	return func(a *Archiver) {
		a.clock = c
	}
}

// WithPermissionSource selects where entry permission bits come from.
// Unknown values are ignored.
func WithPermissionSource(p PermissionSource) Option {
	return func(a *Archiver) {
		if p.IsValid() {
			a.perms = p
		}
	}
}

// New creates an Archiver using local time and per-entry permissions.
func New(opts ...Option) *Archiver {
	a := &Archiver{
		clock: systemClock{},
		perms: PermissionsPerEntry,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FileName returns the backup file name for t, e.g. 09-05-07-03-2024.zip.
func FileName(t time.Time) string {
	return t.Format(nameLayout) + fileExt
}

// Dir returns the backup directory for sourceDir: <parent>/mod-backups.
// Relative paths are resolved against the working directory first.
func Dir(sourceDir string) (string, error) {
	if sourceDir == "" {
		return "", fmt.Errorf("%w: %q", ErrNoParent, sourceDir)
	}
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", ioErr("resolve", sourceDir, err)
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return "", fmt.Errorf("%w: %s", ErrNoParent, sourceDir)
	}
	return filepath.Join(parent, DirName), nil
}

// CreateBackup archives sourceDir into a new file in Dir(sourceDir) and
// returns the archive path. A backup taken in the same minute as an existing
// one gets a -1, -2, ... suffix instead of replacing it. On failure the
// partially written archive is left in place.
func (a *Archiver) CreateBackup(ctx context.Context, sourceDir string) (_ string, err error) {
	rootInfo, err := os.Stat(sourceDir)
	if err != nil {
		return "", ioErr("stat", sourceDir, err)
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, sourceDir)
	}

	destDir, err := Dir(sourceDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", ioErr("create directory", destDir, err)
	}

	out, outPath, err := createUnique(destDir, FileName(a.clock.Now().Local()))
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = ioErr("close", outPath, closeErr)
		}
	}()

	zw := zip.NewWriter(out)
	w := &treeWriter{
		zw:       zw,
		root:     sourceDir,
		rootMode: rootInfo.Mode().Perm(),
		perms:    a.perms,
	}

	rootReal, err := filepath.EvalSymlinks(sourceDir)
	if err != nil {
		_ = zw.Close()
		return "", ioErr("resolve", sourceDir, err)
	}

	if err := w.addDir(ctx, sourceDir, []string{rootReal}); err != nil {
		_ = zw.Close()
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", ioErr("finalize archive", outPath, err)
	}

	return outPath, nil
}

// List returns the backups stored for sourceDir, newest first. A missing
// backup directory yields an empty list.
func List(sourceDir string) ([]Info, error) {
	destDir, err := Dir(sourceDir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(destDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ioErr("read directory", destDir, err)
	}

	var backups []Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		info, infoErr := e.Info()
		if infoErr != nil {
			return nil, ioErr("stat", filepath.Join(destDir, e.Name()), infoErr)
		}
		backups = append(backups, Info{
			Name:    e.Name(),
			Path:    filepath.Join(destDir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].ModTime.After(backups[j].ModTime)
	})
	return backups, nil
}

// createUnique opens name in dir for exclusive creation, appending -N to the
// stem while the name is taken.
func createUnique(dir, name string) (*os.File, string, error) {
	stem := strings.TrimSuffix(name, fileExt)
	for i := 0; i < maxNameSuffix; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, fileExt)
		}
		path := filepath.Join(dir, candidate)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", ioErr("create", path, err)
		}
		return f, path, nil
	}
	return nil, "", ioErr("create", filepath.Join(dir, name), fs.ErrExist)
}

// treeWriter holds the state of a single archive pass.
type treeWriter struct {
	zw       *zip.Writer
	root     string
	rootMode fs.FileMode
	perms    PermissionSource
}

// addDir writes the entries of dir, recursing into subdirectories. ancestors
// holds the resolved paths of every directory on the current branch.
func (w *treeWriter) addDir(ctx context.Context, dir string, ancestors []string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ioErr("read directory", dir, err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("backup canceled: %w", err)
		}

		path := filepath.Join(dir, e.Name())
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return ioErr("relativize", path, err)
		}
		name := filepath.ToSlash(rel)

		// Stat follows symlinks, so linked directories are archived as directories.
		info, err := os.Stat(path)
		if err != nil {
			return ioErr("stat", path, err)
		}

		if !info.IsDir() {
			if err := w.addFile(path, name, info); err != nil {
				return err
			}
			continue
		}

		resolved := filepath.Join(ancestors[len(ancestors)-1], e.Name())
		if e.Type()&fs.ModeSymlink != 0 {
			if resolved, err = filepath.EvalSymlinks(path); err != nil {
				return ioErr("resolve", path, err)
			}
			if slices.Contains(ancestors, resolved) {
				return fmt.Errorf("%w: %s", ErrSymlinkLoop, path)
			}
		}

		hdr := &zip.FileHeader{
			Name:     name + "/",
			Method:   zip.Store,
			Modified: info.ModTime(),
		}
		hdr.SetMode(fs.ModeDir | w.modeFor(info))
		if _, err := w.zw.CreateHeader(hdr); err != nil {
			return ioErr("write directory entry", name, err)
		}

		if err := w.addDir(ctx, path, append(slices.Clip(ancestors), resolved)); err != nil {
			return err
		}
	}

	return nil
}

// addFile writes one stored file entry.
func (w *treeWriter) addFile(path, name string, info fs.FileInfo) error {
	f, err := os.Open(path)
	if err != nil {
		return ioErr("open", path, err)
	}
	defer func() { _ = f.Close() }() // read-only handle

	hdr := &zip.FileHeader{
		Name:     name,
		Method:   zip.Store,
		Modified: info.ModTime(),
	}
	hdr.SetMode(w.modeFor(info))

	dst, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return ioErr("write file entry", name, err)
	}
	if _, err := io.Copy(dst, f); err != nil {
		return ioErr("copy", path, err)
	}
	return nil
}

func (w *treeWriter) modeFor(info fs.FileInfo) fs.FileMode {
	if w.perms == PermissionsFromRoot {
		return w.rootMode
	}
	return info.Mode().Perm()
}
