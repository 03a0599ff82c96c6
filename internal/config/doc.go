// SPDX-License-Identifier: MPL-2.0

// Package config handles modify configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/modify/config.cue (or $XDG_CONFIG_HOME on Linux,
// ~/Library/Application Support/modify/config.cue on macOS, %APPDATA%\modify\config.cue
// on Windows). Values are validated against an embedded CUE schema (config_schema.cue)
// before being merged over the defaults, so typos and out-of-range values surface with
// the offending path instead of being silently ignored.
package config
