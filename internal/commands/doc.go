// SPDX-License-Identifier: MPL-2.0

// Package commands holds modify's interactive commands and Build, which
// registers them under their fixed tokens.
package commands
