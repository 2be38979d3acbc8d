//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// UpdateInfoBuilder helps create test update pictures with a fluent interface.
type UpdateInfoBuilder struct {
	*testkit.BaseBuilder
	hasUpstream    bool
	currentVersion string
	latestVersion  string
	targetRef      string
	aheadCount     int
	behindCount    int
	commits        []entities.Commit
	localCommits   []entities.Commit
	isDowngrade    bool
	releaseNotes   string
}

// NewUpdateInfoBuilder creates a new info builder describing a pending
// update from v1.0.0 to v1.2.0.
func NewUpdateInfoBuilder() *UpdateInfoBuilder {
	return &UpdateInfoBuilder{
		BaseBuilder:    testkit.NewBaseBuilder(),
		hasUpstream:    true,
		currentVersion: "v1.0.0",
		latestVersion:  "v1.2.0",
		targetRef:      "v1.2.0",
		behindCount:    3,
	}
}

// WithoutUpstream marks the clone as having no usable upstream.
func (b *UpdateInfoBuilder) WithoutUpstream() *UpdateInfoBuilder {
	b.hasUpstream = false
	return b
}

// WithVersions sets the current and latest versions.
func (b *UpdateInfoBuilder) WithVersions(current, latest string) *UpdateInfoBuilder {
	b.currentVersion = current
	b.latestVersion = latest
	return b
}

// WithTargetRef sets the ref the update applies.
func (b *UpdateInfoBuilder) WithTargetRef(ref string) *UpdateInfoBuilder {
	b.targetRef = ref
	return b
}

// WithDivergence sets the behind/ahead commit counts.
func (b *UpdateInfoBuilder) WithDivergence(behind, ahead int) *UpdateInfoBuilder {
	b.behindCount = behind
	b.aheadCount = ahead
	return b
}

// WithCommits sets the incoming commit list.
func (b *UpdateInfoBuilder) WithCommits(commits ...entities.Commit) *UpdateInfoBuilder {
	b.commits = commits
	b.behindCount = len(commits)
	return b
}

// WithLocalCommits sets the local-only commits a rebase would replay.
func (b *UpdateInfoBuilder) WithLocalCommits(commits ...entities.Commit) *UpdateInfoBuilder {
	b.localCommits = commits
	b.aheadCount = len(commits)
	return b
}

// AsDowngrade marks the target version as older than the current one.
func (b *UpdateInfoBuilder) AsDowngrade() *UpdateInfoBuilder {
	b.isDowngrade = true
	return b
}

// WithReleaseNotes sets the release body shown in the preview.
func (b *UpdateInfoBuilder) WithReleaseNotes(notes string) *UpdateInfoBuilder {
	b.releaseNotes = notes
	return b
}

// Build creates the info (satisfies testkit.Builder interface).
func (b *UpdateInfoBuilder) Build() interface{} {
	return b.BuildUpdateInfo()
}

// BuildUpdateInfo creates the info with a concrete return type.
func (b *UpdateInfoBuilder) BuildUpdateInfo() entities.UpdateInfo {
	return entities.UpdateInfo{
		HasUpstream:    b.hasUpstream,
		CurrentVersion: b.currentVersion,
		LatestVersion:  b.latestVersion,
		TargetRef:      b.targetRef,
		AheadCount:     b.aheadCount,
		BehindCount:    b.behindCount,
		Commits:        b.commits,
		LocalCommits:   b.localCommits,
		IsDowngrade:    b.isDowngrade,
		ReleaseNotes:   b.releaseNotes,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *UpdateInfoBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.hasUpstream = true
	b.currentVersion = "v1.0.0"
	b.latestVersion = "v1.2.0"
	b.targetRef = "v1.2.0"
	b.aheadCount = 0
	b.behindCount = 3
	b.commits = nil
	b.localCommits = nil
	b.isDowngrade = false
	b.releaseNotes = ""
	return b
}

// Clone creates a deep copy of the UpdateInfoBuilder.
func (b *UpdateInfoBuilder) Clone() testkit.Builder {
	commits := make([]entities.Commit, len(b.commits))
	copy(commits, b.commits)
	localCommits := make([]entities.Commit, len(b.localCommits))
	copy(localCommits, b.localCommits)
	return &UpdateInfoBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		hasUpstream:    b.hasUpstream,
		currentVersion: b.currentVersion,
		latestVersion:  b.latestVersion,
		targetRef:      b.targetRef,
		aheadCount:     b.aheadCount,
		behindCount:    b.behindCount,
		commits:        commits,
		localCommits:   localCommits,
		isDowngrade:    b.isDowngrade,
		releaseNotes:   b.releaseNotes,
	}
}
