// SPDX-License-Identifier: MPL-2.0

package modrinth

import (
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// SortGameVersionsDesc sorts Minecraft version strings newest first.
// Release numbers ("1.20.1", "1.19") compare as semantic versions; anything
// semver cannot parse (snapshots such as "23w13a") sorts after them in
// reverse lexical order. The sort is stable and works in place.
func SortGameVersionsDesc(versions []string) {
	slices.SortStableFunc(versions, func(a, b string) int {
		return compareGameVersions(b, a)
	})
}

// compareGameVersions orders a and b ascending, with unparseable versions
// considered older than any release.
func compareGameVersions(a, b string) int {
	va, vb := "v"+a, "v"+b
	okA, okB := semver.IsValid(va), semver.IsValid(vb)

	switch {
	case okA && okB:
		return semver.Compare(va, vb)
	case okA:
		return 1
	case okB:
		return -1
	default:
		return strings.Compare(a, b)
	}
}
