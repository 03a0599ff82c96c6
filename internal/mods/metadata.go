// SPDX-License-Identifier: MPL-2.0

package mods

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/pelletier/go-toml/v2"
)

// maxManifestBytes bounds how much of a metadata file is read from a jar.
const maxManifestBytes = 1 << 20

// ErrNoMetadata is returned for jars without a recognised mod manifest.
var ErrNoMetadata = errors.New("no mod metadata in jar")

type (
	// Metadata is what a jar says about itself.
	Metadata struct {
		ID      string
		Name    string
		Version string
		Loader  string
	}

	fabricManifest struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Version string `json:"version"`
	}

	quiltManifest struct {
		QuiltLoader struct {
			ID       string `json:"id"`
			Version  string `json:"version"`
			Metadata struct {
				Name string `json:"name"`
			} `json:"metadata"`
		} `json:"quilt_loader"`
	}

	forgeManifest struct {
		Mods []struct {
			ModID       string `toml:"modId"`
			Version     string `toml:"version"`
			DisplayName string `toml:"displayName"`
		} `toml:"mods"`
	}
)

// manifests are tried in order; the first present in the jar wins.
var manifests = []struct {
	name   string
	loader string
	parse  func([]byte) (Metadata, error)
}{
	{"fabric.mod.json", "fabric", parseFabric},
	{"quilt.mod.json", "quilt", parseQuilt},
	{"META-INF/neoforge.mods.toml", "neoforge", parseForge},
	{"META-INF/mods.toml", "forge", parseForge},
}

// ReadMetadata opens the jar at path and decodes its mod manifest.
func ReadMetadata(path string) (Metadata, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("open jar %s: %w", path, err)
	}
	defer func() { _ = zr.Close() }() // read-only archive

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	for _, m := range manifests {
		f, ok := files[m.name]
		if !ok {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return Metadata{}, fmt.Errorf("read %s in %s: %w", m.name, path, err)
		}
		md, err := m.parse(data)
		if err != nil {
			return Metadata{}, fmt.Errorf("parse %s in %s: %w", m.name, path, err)
		}
		md.Loader = m.loader
		return md, nil
	}

	return Metadata{}, fmt.Errorf("%s: %w", path, ErrNoMetadata)
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(io.LimitReader(rc, maxManifestBytes))
}

func parseFabric(data []byte) (Metadata, error) {
	var m fabricManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, err
	}
	return Metadata{ID: m.ID, Name: m.Name, Version: m.Version}, nil
}

func parseQuilt(data []byte) (Metadata, error) {
	var m quiltManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, err
	}
	ql := m.QuiltLoader
	return Metadata{ID: ql.ID, Name: ql.Metadata.Name, Version: ql.Version}, nil
}

func parseForge(data []byte) (Metadata, error) {
	var m forgeManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Metadata{}, err
	}
	if len(m.Mods) == 0 {
		return Metadata{}, ErrNoMetadata
	}
	mod := m.Mods[0]
	version := mod.Version
	// Forge substitutes ${file.jarVersion} at load time; the literal is useless here.
	if strings.HasPrefix(version, "${") {
		version = ""
	}
	return Metadata{ID: mod.ModID, Name: mod.DisplayName, Version: version}, nil
}
