// SPDX-License-Identifier: MPL-2.0

package modrinth

import "time"

type (
	// SearchHit is one project in a search result.
	SearchHit struct {
		ProjectID   string   `json:"project_id"`
		Slug        string   `json:"slug"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		ProjectType string   `json:"project_type"`
		ClientSide  string   `json:"client_side"`
		ServerSide  string   `json:"server_side"`
		Author      string   `json:"author"`
		Downloads   int64    `json:"downloads"`
		Versions    []string `json:"versions"` // Minecraft versions the project supports
	}

	// Project is a Modrinth project (mod, modpack, resource pack, ...).
	Project struct {
		ID           string   `json:"id"`
		Slug         string   `json:"slug"`
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		ProjectType  string   `json:"project_type"`
		ClientSide   string   `json:"client_side"`
		ServerSide   string   `json:"server_side"`
		GameVersions []string `json:"game_versions"`
		Loaders      []string `json:"loaders"`
	}

	// Version is one published build of a project.
	Version struct {
		ID            string    `json:"id"`
		ProjectID     string    `json:"project_id"`
		Name          string    `json:"name"`
		VersionNumber string    `json:"version_number"`
		VersionType   string    `json:"version_type"` // release, beta or alpha
		GameVersions  []string  `json:"game_versions"`
		Loaders       []string  `json:"loaders"`
		DatePublished time.Time `json:"date_published"`
		Files         []File    `json:"files"`
	}

	// File is a downloadable artifact of a Version.
	File struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
		Primary  bool   `json:"primary"`
		Size     int64  `json:"size"`
		Hashes   Hashes `json:"hashes"`
	}

	// Hashes holds the hex digests Modrinth publishes for a file.
	Hashes struct {
		SHA1   string `json:"sha1"`
		SHA512 string `json:"sha512"`
	}

	searchResponse struct {
		Hits      []SearchHit `json:"hits"`
		Offset    int         `json:"offset"`
		Limit     int         `json:"limit"`
		TotalHits int         `json:"total_hits"`
	}
)

// PrimaryFile returns the file flagged primary, or the first file when none
// is. It returns false for versions without files.
func (v *Version) PrimaryFile() (File, bool) {
	for _, f := range v.Files {
		if f.Primary {
			return f, true
		}
	}
	if len(v.Files) > 0 {
		return v.Files[0], true
	}
	return File{}, false
}
