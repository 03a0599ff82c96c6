// SPDX-License-Identifier: MPL-2.0

// Package mods manages the jars in a local mods directory.
//
// Installed jars are named <slug>_<minecraft version>.jar so that a mod can
// be uninstalled by slug alone. Downloads land in a temporary file, are
// verified against the published hash, and only then renamed into place.
package mods
