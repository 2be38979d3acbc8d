// Package git implements the domain GitRepository against a local clone.
// Reads (tags, commit walks, merge bases, tree listings) go through go-git;
// mutations (fetch, merge, rebase, reset) shell out to the git binary so
// the user's credential helpers, hooks, and merge drivers keep working.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// LocalGitRepository operates on the clone rooted at dir.
type LocalGitRepository struct {
	dir  string
	repo *gogit.Repository
}

// NewLocalGitRepository creates a repository handle for dir. The directory
// is not required to be a git repository yet: Status reports that instead
// of failing.
func NewLocalGitRepository(dir string) *LocalGitRepository {
	return &LocalGitRepository{dir: dir}
}

// NewFromRepository wraps an already-open go-git repository. Only the read
// operations work on such a handle; it exists for in-memory test repos.
func NewFromRepository(repo *gogit.Repository) *LocalGitRepository {
	return &LocalGitRepository{repo: repo}
}

func (it *LocalGitRepository) openRepo() (*gogit.Repository, error) {
	if it.repo != nil {
		return it.repo, nil
	}
	repo, err := gogit.PlainOpenWithOptions(it.dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	it.repo = repo
	return repo, nil
}

// Status takes the preflight snapshot used by the update workflow.
func (it *LocalGitRepository) Status(
	ctx context.Context,
	remote string,
) (entities.GitStatus, error) {
	repo, err := it.openRepo()
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return entities.GitStatus{}, nil
	}
	if err != nil {
		return entities.GitStatus{}, fmt.Errorf("failed to open repository: %w", err)
	}

	status := entities.GitStatus{IsRepo: true}

	if head, headErr := repo.Head(); headErr == nil {
		if head.Name().IsBranch() {
			status.CurrentBranch = head.Name().Short()
		} else {
			status.CurrentBranch = head.Hash().String()[:7]
		}
	}

	if _, remoteErr := repo.Remote(remote); remoteErr == nil {
		status.HasUpstreamRemote = true
	}

	out, err := it.runGit(ctx, nil, "status", "--porcelain")
	if err != nil {
		return entities.GitStatus{}, err
	}
	status.ModifiedFiles = parsePorcelainStatus(out)
	status.IsClean = len(status.ModifiedFiles) == 0

	return status, nil
}

// EnsureRemote adds the remote when it does not exist yet.
func (it *LocalGitRepository) EnsureRemote(ctx context.Context, name, url string) error {
	repo, err := it.openRepo()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	if _, remoteErr := repo.Remote(name); remoteErr == nil {
		return nil
	}

	_, err = it.runGit(ctx, nil, "remote", "add", name, url)
	return err
}

// Fetch updates the remote-tracking refs and all tags of the remote.
func (it *LocalGitRepository) Fetch(ctx context.Context, remote string) error {
	_, err := it.runGit(ctx, nil, "fetch", remote, "--tags", "--prune")
	return err
}

// Merge merges ref into the current branch. Conflicts are reported in the
// result, not as an error.
func (it *LocalGitRepository) Merge(
	ctx context.Context,
	ref string,
) (entities.MergeResult, error) {
	_, err := it.runGit(ctx, nil, "merge", "--no-edit", ref)
	if err == nil {
		return entities.MergeResult{Success: true}, nil
	}
	return it.classifyApplyFailure(ctx, err, false)
}

// Rebase replays local commits onto ref, same conflict semantics as Merge.
func (it *LocalGitRepository) Rebase(
	ctx context.Context,
	ref string,
) (entities.MergeResult, error) {
	_, err := it.runGit(ctx, nil, "rebase", ref)
	if err == nil {
		return entities.MergeResult{Success: true, IsRebase: true}, nil
	}
	return it.classifyApplyFailure(ctx, err, true)
}

// classifyApplyFailure distinguishes a conflicted merge/rebase from a hard
// failure by asking git for unmerged paths.
func (it *LocalGitRepository) classifyApplyFailure(
	ctx context.Context,
	applyErr error,
	rebase bool,
) (entities.MergeResult, error) {
	conflicts, err := it.conflictFiles(ctx)
	if err != nil {
		return entities.MergeResult{}, fmt.Errorf(
			"failed to list conflicts after %v: %w", applyErr, err,
		)
	}
	if len(conflicts) == 0 {
		return entities.MergeResult{IsRebase: rebase, ErrorMessage: applyErr.Error()}, nil
	}
	return entities.MergeResult{
		HasConflict:   true,
		ConflictFiles: conflicts,
		IsRebase:      rebase,
	}, nil
}

func (it *LocalGitRepository) conflictFiles(ctx context.Context) ([]string, error) {
	out, err := it.runGit(ctx, nil, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, err
	}
	return parseNameList(out), nil
}

// AbortMerge returns the tree to its pre-merge state.
func (it *LocalGitRepository) AbortMerge(ctx context.Context) error {
	_, err := it.runGit(ctx, nil, "merge", "--abort")
	return err
}

// AbortRebase returns the tree to its pre-rebase state.
func (it *LocalGitRepository) AbortRebase(ctx context.Context) error {
	_, err := it.runGit(ctx, nil, "rebase", "--abort")
	return err
}

// ResolveAsLocal keeps the local version of conflicted paths and stages
// them. During a rebase the sides are swapped: "ours" is the upstream base
// being rebased onto, so the local version lives on "theirs".
func (it *LocalGitRepository) ResolveAsLocal(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	side := "--ours"
	if it.rebaseInProgress(ctx) {
		side = "--theirs"
	}

	args := append([]string{"checkout", side, "--"}, paths...)
	if _, err := it.runGit(ctx, nil, args...); err != nil {
		return err
	}

	args = append([]string{"add", "--"}, paths...)
	_, err := it.runGit(ctx, nil, args...)
	return err
}

// FinalizeMerge commits a merge whose conflicts are all resolved.
func (it *LocalGitRepository) FinalizeMerge(ctx context.Context) error {
	_, err := it.runGit(ctx, nil, "commit", "--no-edit")
	return err
}

// ContinueRebase resumes a rebase whose conflicts are all resolved.
func (it *LocalGitRepository) ContinueRebase(ctx context.Context) error {
	_, err := it.runGit(ctx, []string{"GIT_EDITOR=true"}, "rebase", "--continue")
	return err
}

// CommitAll stages everything and commits. An empty commit attempt is not
// an error: a replacement that changed nothing is a valid outcome.
func (it *LocalGitRepository) CommitAll(ctx context.Context, message string) error {
	if _, err := it.runGit(ctx, nil, "add", "-A"); err != nil {
		return err
	}

	out, err := it.runGit(ctx, nil, "commit", "-m", message)
	if err != nil && strings.Contains(out+err.Error(), "nothing to commit") {
		return nil
	}
	return err
}

// ResetHard moves the current branch and working tree back to sha.
func (it *LocalGitRepository) ResetHard(ctx context.Context, sha string) error {
	_, err := it.runGit(ctx, nil, "reset", "--hard", sha)
	return err
}

// rebaseInProgress checks for the rebase state directories git maintains.
func (it *LocalGitRepository) rebaseInProgress(ctx context.Context) bool {
	out, err := it.runGit(ctx, nil, "rev-parse", "--git-dir")
	if err != nil {
		return false
	}
	gitDir := strings.TrimSpace(out)
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(it.dir, gitDir)
	}

	for _, marker := range []string{"rebase-merge", "rebase-apply"} {
		if _, statErr := os.Stat(filepath.Join(gitDir, marker)); statErr == nil {
			return true
		}
	}
	return false
}

// runGit executes one git command in the repository directory. Extra
// environment entries are appended to the current environment.
func (it *LocalGitRepository) runGit(
	ctx context.Context,
	extraEnv []string,
	args ...string,
) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = it.dir
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		if detail != "" {
			return stdout.String(), fmt.Errorf("git %s: %w: %s", args[0], err, detail)
		}
		return stdout.String(), fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}
