package entities

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// UnknownVersion marks a version that could not be resolved from tags or
// the version marker file.
const UnknownVersion = "unknown"

// NormalizeVersion adds the "v" prefix semver comparison requires.
func NormalizeVersion(v string) string {
	if v == "" {
		return v
	}
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// KnownVersion reports whether v carries a usable version value.
func KnownVersion(v string) bool {
	return v != "" && v != UnknownVersion
}

// CompareVersions orders two version strings: negative when a < b, zero
// when equal, positive when a > b. Valid semver pairs compare semantically,
// anything else falls back to string comparison.
func CompareVersions(a, b string) int {
	na, nb := NormalizeVersion(a), NormalizeVersion(b)
	if semver.IsValid(na) && semver.IsValid(nb) {
		return semver.Compare(na, nb)
	}
	return strings.Compare(a, b)
}

// IsDowngrade reports whether moving from current to target goes backwards.
// Unknown versions on either side never count as a downgrade.
func IsDowngrade(current, target string) bool {
	if !KnownVersion(current) || !KnownVersion(target) {
		return false
	}
	return CompareVersions(target, current) < 0
}

// SortVersionsDescending sorts version tags newest-first, semver-aware.
func SortVersionsDescending(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) > 0
	})
}
