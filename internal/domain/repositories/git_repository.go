package repositories

import (
	"context"
	"errors"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// ErrTagNotFound is returned when a requested version tag does not exist
// locally or on the upstream remote.
var ErrTagNotFound = errors.New("version tag not found")

// GitRepository abstracts the local clone of the theme. Read operations
// never touch the working tree; mutation operations (fetch, merge, rebase,
// replace, reset) are the only ones allowed to change it.
type GitRepository interface {
	// Status takes the preflight snapshot: repo presence, cleanliness,
	// current branch, dirty paths, and whether the remote exists.
	Status(ctx context.Context, remote string) (entities.GitStatus, error)

	// EnsureRemote adds the remote with the given URL when it is missing.
	EnsureRemote(ctx context.Context, name, url string) error

	// Fetch updates the remote-tracking refs and tags of the given remote.
	Fetch(ctx context.Context, remote string) error

	// VersionTag returns the newest semver tag reachable from ref
	// ("HEAD" for the local branch), or "" when none is reachable.
	VersionTag(ctx context.Context, ref string) (string, error)

	// ResolveTag resolves a user-supplied version (with or without the
	// leading "v") to an existing tag name, or ErrTagNotFound.
	ResolveTag(ctx context.Context, version string) (string, error)

	// CommitRange lists the commits reachable from "to" but not from
	// "from", newest first.
	CommitRange(ctx context.Context, from, to string) ([]entities.Commit, error)

	// HasCommonAncestor reports whether the two refs share any history.
	HasCommonAncestor(ctx context.Context, a, b string) (bool, error)

	// CurrentCommitSHA returns the full SHA of HEAD.
	CurrentCommitSHA(ctx context.Context) (string, error)

	// Merge merges ref into the current branch. A conflicted merge is not
	// an error: it comes back with HasConflict and the conflicted paths.
	Merge(ctx context.Context, ref string) (entities.MergeResult, error)

	// Rebase replays local commits onto ref, same conflict semantics.
	Rebase(ctx context.Context, ref string) (entities.MergeResult, error)

	// AbortMerge / AbortRebase return the tree to its pre-attempt state.
	AbortMerge(ctx context.Context) error
	AbortRebase(ctx context.Context) error

	// ResolveAsLocal keeps the local version of the given conflicted paths
	// and stages them.
	ResolveAsLocal(ctx context.Context, paths []string) error

	// FinalizeMerge commits a fully-resolved merge; ContinueRebase resumes
	// a fully-resolved rebase.
	FinalizeMerge(ctx context.Context) error
	ContinueRebase(ctx context.Context) error

	// ReplaceTree checks out every top-level path of ref's tree except the
	// excluded ones, returning the replaced paths.
	ReplaceTree(ctx context.Context, ref string, exclude []string) ([]string, error)

	// CommitAll stages everything and commits with the given message.
	CommitAll(ctx context.Context, message string) error

	// ResetHard moves the current branch and working tree back to sha.
	ResetHard(ctx context.Context, sha string) error
}
