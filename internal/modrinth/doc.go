// SPDX-License-Identifier: MPL-2.0

// Package modrinth is a small client for the Modrinth v2 REST API.
//
// Only the endpoints modify needs are covered: project search, project
// lookup by slug or ID, version listing, and file downloads. Download
// integrity is checked against the hashes Modrinth publishes per file.
package modrinth
