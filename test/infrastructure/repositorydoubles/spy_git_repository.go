//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	"github.com/astro-koharu/koharu/internal/domain/repositories"
)

// SpyGitRepository implements repositories.GitRepository as a configurable spy.
type SpyGitRepository struct {
	// --- Status ---
	StatusResult entities.GitStatus
	StatusErr    error
	StatusCalls  int

	// --- EnsureRemote ---
	EnsureRemoteErr error
	AddedRemotes    []string

	// --- Fetch ---
	FetchErr       error
	FetchedRemotes []string

	// --- VersionTag (keyed by ref) ---
	VersionTags   map[string]string
	VersionTagErr error

	// --- ResolveTag (keyed by requested version) ---
	ResolvedTags  map[string]string
	ResolveTagErr error

	// --- CommitRange (keyed by "from..to") ---
	CommitRanges   map[string][]entities.Commit
	CommitRangeErr error

	// --- HasCommonAncestor ---
	CommonAncestor    bool
	CommonAncestorErr error

	// --- CurrentCommitSHA ---
	HeadSHA    string
	HeadSHAErr error

	// --- Merge / Rebase ---
	MergeResult  entities.MergeResult
	MergeErr     error
	MergedRefs   []string
	RebaseResult entities.MergeResult
	RebaseErr    error
	RebasedRefs  []string

	// --- Aborts ---
	AbortMergeErr    error
	AbortMergeCalls  int
	AbortRebaseErr   error
	AbortRebaseCalls int

	// --- ResolveAsLocal ---
	ResolveAsLocalErr error
	ResolvedPaths     [][]string

	// --- FinalizeMerge / ContinueRebase ---
	FinalizeMergeErr    error
	FinalizeMergeCalls  int
	ContinueRebaseErr   error
	ContinueRebaseCalls int

	// --- ReplaceTree ---
	ReplaceTreeResult   []string
	ReplaceTreeErr      error
	ReplaceTreeRefs     []string
	ReplaceTreeExcludes [][]string

	// --- CommitAll ---
	CommitAllErr   error
	CommitMessages []string

	// --- ResetHard ---
	ResetHardErr error
	ResetSHAs    []string
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (g *SpyGitRepository) Status(_ context.Context, _ string) (entities.GitStatus, error) {
	g.StatusCalls++
	return g.StatusResult, g.StatusErr
}

func (g *SpyGitRepository) EnsureRemote(_ context.Context, name, _ string) error {
	g.AddedRemotes = append(g.AddedRemotes, name)
	return g.EnsureRemoteErr
}

func (g *SpyGitRepository) Fetch(_ context.Context, remote string) error {
	g.FetchedRemotes = append(g.FetchedRemotes, remote)
	return g.FetchErr
}

func (g *SpyGitRepository) VersionTag(_ context.Context, ref string) (string, error) {
	if g.VersionTagErr != nil {
		return "", g.VersionTagErr
	}
	return g.VersionTags[ref], nil
}

func (g *SpyGitRepository) ResolveTag(_ context.Context, version string) (string, error) {
	if g.ResolveTagErr != nil {
		return "", g.ResolveTagErr
	}
	if tag, ok := g.ResolvedTags[version]; ok {
		return tag, nil
	}
	return "", repositories.ErrTagNotFound
}

func (g *SpyGitRepository) CommitRange(
	_ context.Context, from, to string,
) ([]entities.Commit, error) {
	if g.CommitRangeErr != nil {
		return nil, g.CommitRangeErr
	}
	return g.CommitRanges[from+".."+to], nil
}

func (g *SpyGitRepository) HasCommonAncestor(_ context.Context, _, _ string) (bool, error) {
	return g.CommonAncestor, g.CommonAncestorErr
}

func (g *SpyGitRepository) CurrentCommitSHA(_ context.Context) (string, error) {
	return g.HeadSHA, g.HeadSHAErr
}

func (g *SpyGitRepository) Merge(_ context.Context, ref string) (entities.MergeResult, error) {
	g.MergedRefs = append(g.MergedRefs, ref)
	return g.MergeResult, g.MergeErr
}

func (g *SpyGitRepository) Rebase(_ context.Context, ref string) (entities.MergeResult, error) {
	g.RebasedRefs = append(g.RebasedRefs, ref)
	return g.RebaseResult, g.RebaseErr
}

func (g *SpyGitRepository) AbortMerge(_ context.Context) error {
	g.AbortMergeCalls++
	return g.AbortMergeErr
}

func (g *SpyGitRepository) AbortRebase(_ context.Context) error {
	g.AbortRebaseCalls++
	return g.AbortRebaseErr
}

func (g *SpyGitRepository) ResolveAsLocal(_ context.Context, paths []string) error {
	g.ResolvedPaths = append(g.ResolvedPaths, paths)
	return g.ResolveAsLocalErr
}

func (g *SpyGitRepository) FinalizeMerge(_ context.Context) error {
	g.FinalizeMergeCalls++
	return g.FinalizeMergeErr
}

func (g *SpyGitRepository) ContinueRebase(_ context.Context) error {
	g.ContinueRebaseCalls++
	return g.ContinueRebaseErr
}

func (g *SpyGitRepository) ReplaceTree(
	_ context.Context, ref string, exclude []string,
) ([]string, error) {
	g.ReplaceTreeRefs = append(g.ReplaceTreeRefs, ref)
	g.ReplaceTreeExcludes = append(g.ReplaceTreeExcludes, exclude)
	return g.ReplaceTreeResult, g.ReplaceTreeErr
}

func (g *SpyGitRepository) CommitAll(_ context.Context, message string) error {
	g.CommitMessages = append(g.CommitMessages, message)
	return g.CommitAllErr
}

func (g *SpyGitRepository) ResetHard(_ context.Context, sha string) error {
	g.ResetSHAs = append(g.ResetSHAs, sha)
	return g.ResetHardErr
}
