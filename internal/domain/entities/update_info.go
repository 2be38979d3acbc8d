package entities

import "time"

// Commit is one commit in a resolved update range.
type Commit struct {
	SHA     string
	Subject string
	Author  string
	Date    time.Time
}

// UpdateInfo is the resolved picture of where the local clone stands
// relative to the upstream template.
//
// Commits follows the direction of the update: new upstream commits for a
// normal update, the local commits that would be removed for a downgrade.
type UpdateInfo struct {
	HasUpstream    bool     // upstream remote configured and fetched
	CurrentVersion string   // local version, or "unknown"
	LatestVersion  string   // resolved target version, or "unknown"
	TargetRef      string   // git ref the update will apply (tag or remote branch)
	AheadCount     int      // local commits not in the target ref
	BehindCount    int      // target-ref commits not in the local branch
	Commits        []Commit // commits the update applies or removes, newest first
	LocalCommits   []Commit // local-only commits a rebase would replay, newest first
	IsDowngrade    bool     // target version is older than the current one
	ReleaseNotes   string   // release body for the target version, may be empty
}

// UpToDate reports whether there is nothing to apply: no divergence in
// either direction and no explicit downgrade requested.
func (i UpdateInfo) UpToDate() bool {
	return i.BehindCount == 0 && i.AheadCount == 0 && !i.IsDowngrade
}
