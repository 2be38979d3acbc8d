package entities

import (
	"path"
	"sort"
	"strings"
)

// ConflictPolicy decides which merge conflicts may be auto-resolved by
// keeping the local version. Only paths inside the configured user-content
// set qualify: those files belong to the blog author, so on conflict the
// local side always wins. Everything else is theme code and must be left
// for the user to resolve.
type ConflictPolicy struct {
	userContent []string
}

// NewConflictPolicy builds a policy from the configured user-content paths.
// Entries are slash-normalized; empty entries are dropped.
func NewConflictPolicy(paths []string) ConflictPolicy {
	normalized := make([]string, 0, len(paths))
	for _, p := range paths {
		if n := normalizeContentPath(p); n != "" {
			normalized = append(normalized, n)
		}
	}
	return ConflictPolicy{userContent: normalized}
}

// Paths returns a copy of the normalized user-content paths.
func (p ConflictPolicy) Paths() []string {
	out := make([]string, len(p.userContent))
	copy(out, p.userContent)
	return out
}

// IsUserContent reports whether the given repository path is user content:
// an exact match of a configured entry, or anything below a configured
// directory entry.
func (p ConflictPolicy) IsUserContent(file string) bool {
	file = normalizeContentPath(file)
	if file == "" {
		return false
	}
	for _, entry := range p.userContent {
		if file == entry || strings.HasPrefix(file, entry+"/") {
			return true
		}
	}
	return false
}

// Resolve partitions conflicted paths into those the policy resolves
// automatically (user content, local version kept) and those left for
// manual resolution. Every input path lands in exactly one of the two
// returned slices; both come back sorted.
func (p ConflictPolicy) Resolve(conflicts []string) (auto, manual []string) {
	for _, file := range conflicts {
		if p.IsUserContent(file) {
			auto = append(auto, file)
		} else {
			manual = append(manual, file)
		}
	}
	sort.Strings(auto)
	sort.Strings(manual)
	return auto, manual
}

func normalizeContentPath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" || p == "." || p == "/" {
		return ""
	}
	p = path.Clean(strings.TrimPrefix(p, "./"))
	p = strings.Trim(p, "/")
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return ""
	}
	return p
}
