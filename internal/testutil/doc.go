// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by the package tests: a fake clock
// for backup naming, environment overrides, and small file-tree builders.
package testutil
