//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// GitStatusBuilder helps create test git statuses with a fluent interface.
type GitStatusBuilder struct {
	*testkit.BaseBuilder
	isRepo        bool
	isClean       bool
	currentBranch string
	modifiedFiles []string
	hasRemote     bool
}

// NewGitStatusBuilder creates a new status builder describing a clean clone
// on the base branch with the upstream remote configured.
func NewGitStatusBuilder() *GitStatusBuilder {
	return &GitStatusBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		isRepo:        true,
		isClean:       true,
		currentBranch: "main",
		hasRemote:     true,
	}
}

// WithoutRepo marks the directory as not being a git repository.
func (b *GitStatusBuilder) WithoutRepo() *GitStatusBuilder {
	b.isRepo = false
	return b
}

// WithModifiedFiles marks the working tree dirty with the given paths.
func (b *GitStatusBuilder) WithModifiedFiles(files ...string) *GitStatusBuilder {
	b.isClean = false
	b.modifiedFiles = files
	return b
}

// WithBranch sets the checked-out branch.
func (b *GitStatusBuilder) WithBranch(branch string) *GitStatusBuilder {
	b.currentBranch = branch
	return b
}

// WithoutRemote marks the upstream remote as missing.
func (b *GitStatusBuilder) WithoutRemote() *GitStatusBuilder {
	b.hasRemote = false
	return b
}

// Build creates the status (satisfies testkit.Builder interface).
func (b *GitStatusBuilder) Build() interface{} {
	return b.BuildGitStatus()
}

// BuildGitStatus creates the status with a concrete return type.
func (b *GitStatusBuilder) BuildGitStatus() entities.GitStatus {
	return entities.GitStatus{
		IsRepo:            b.isRepo,
		IsClean:           b.isClean,
		CurrentBranch:     b.currentBranch,
		ModifiedFiles:     b.modifiedFiles,
		HasUpstreamRemote: b.hasRemote,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *GitStatusBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.isRepo = true
	b.isClean = true
	b.currentBranch = "main"
	b.modifiedFiles = nil
	b.hasRemote = true
	return b
}

// Clone creates a deep copy of the GitStatusBuilder.
func (b *GitStatusBuilder) Clone() testkit.Builder {
	files := make([]string, len(b.modifiedFiles))
	copy(files, b.modifiedFiles)
	return &GitStatusBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		isRepo:        b.isRepo,
		isClean:       b.isClean,
		currentBranch: b.currentBranch,
		modifiedFiles: files,
		hasRemote:     b.hasRemote,
	}
}
