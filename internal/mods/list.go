// SPDX-License-Identifier: MPL-2.0

package mods

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Mod is one jar found in the mods directory.
type Mod struct {
	File string // base name of the jar
	Path string
	Size int64
	// Metadata falls back to the file name when the jar carries none.
	Metadata
}

// List returns the jars in the mods directory sorted by file name, with
// metadata read from each jar. A missing directory yields no mods.
func (s *Store) List() ([]Mod, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, ioErr("read", s.dir, err)
	}

	var out []Mod
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), jarExt) {
			continue
		}

		path := filepath.Join(s.dir, e.Name())
		mod := Mod{File: e.Name(), Path: path}
		if info, err := e.Info(); err == nil {
			mod.Size = info.Size()
		}

		md, err := ReadMetadata(path)
		if err != nil {
			slog.Debug("no usable jar metadata", "path", path, "err", err)
		}
		if md.Name == "" {
			md.Name = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		mod.Metadata = md
		out = append(out, mod)
	}
	return out, nil
}
