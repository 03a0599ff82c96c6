// SPDX-License-Identifier: MPL-2.0

// Package backup writes timestamped zip snapshots of a mod directory.
//
// Backups land next to the mod directory, in <parent>/mod-backups, and are
// named after the local time as HH-MM-DD-MM-YYYY.zip. Entries are stored
// without compression, keep their path relative to the archived root, and
// carry Unix permission bits. Directories get explicit entries ahead of
// their contents.
package backup
