package git

import (
	"context"
	"fmt"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golang.org/x/mod/semver"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	"github.com/astro-koharu/koharu/internal/domain/repositories"
)

// VersionTag returns the newest semver tag whose commit is reachable from
// ref, or "" when the ref history carries no version tags.
func (it *LocalGitRepository) VersionTag(_ context.Context, ref string) (string, error) {
	repo, err := it.openRepo()
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	commit, err := resolveCommit(repo, ref)
	if err != nil {
		return "", err
	}
	reachable, err := ancestorSet(commit)
	if err != nil {
		return "", fmt.Errorf("failed to walk history of %q: %w", ref, err)
	}

	var candidates []string
	tags, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("failed to list tags: %w", err)
	}
	err = tags.ForEach(func(tagRef *plumbing.Reference) error {
		name := tagRef.Name().Short()
		if !isVersionTag(name) {
			return nil
		}
		target, peelErr := peelToCommit(repo, tagRef.Hash())
		if peelErr != nil {
			return nil // broken or non-commit tag, skip
		}
		if reachable[target.Hash] {
			candidates = append(candidates, name)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan tags: %w", err)
	}

	if len(candidates) == 0 {
		return "", nil
	}
	entities.SortVersionsDescending(candidates)
	return candidates[0], nil
}

// ResolveTag resolves a version spelled with or without the "v" prefix to
// the tag name that actually exists.
func (it *LocalGitRepository) ResolveTag(_ context.Context, version string) (string, error) {
	repo, err := it.openRepo()
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	for _, name := range candidateTagNames(version) {
		if _, refErr := repo.Reference(plumbing.NewTagReferenceName(name), true); refErr == nil {
			return name, nil
		}
	}
	return "", repositories.ErrTagNotFound
}

// CommitRange lists the commits reachable from "to" but not from "from",
// newest first.
func (it *LocalGitRepository) CommitRange(
	_ context.Context,
	from, to string,
) ([]entities.Commit, error) {
	repo, err := it.openRepo()
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	fromCommit, err := resolveCommit(repo, from)
	if err != nil {
		return nil, err
	}
	toCommit, err := resolveCommit(repo, to)
	if err != nil {
		return nil, err
	}

	exclude, err := ancestorSet(fromCommit)
	if err != nil {
		return nil, fmt.Errorf("failed to walk history of %q: %w", from, err)
	}

	var commits []entities.Commit
	iter := object.NewCommitPreorderIter(toCommit, exclude, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, entities.Commit{
			SHA:     c.Hash.String(),
			Subject: commitSubject(c.Message),
			Author:  c.Author.Name,
			Date:    c.Author.When,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history of %q: %w", to, err)
	}
	return commits, nil
}

// HasCommonAncestor reports whether the two refs share any history.
func (it *LocalGitRepository) HasCommonAncestor(
	_ context.Context,
	a, b string,
) (bool, error) {
	repo, err := it.openRepo()
	if err != nil {
		return false, fmt.Errorf("failed to open repository: %w", err)
	}

	aCommit, err := resolveCommit(repo, a)
	if err != nil {
		return false, err
	}
	bCommit, err := resolveCommit(repo, b)
	if err != nil {
		return false, err
	}

	bases, err := aCommit.MergeBase(bCommit)
	if err != nil {
		return false, fmt.Errorf("failed to compute merge base: %w", err)
	}
	return len(bases) > 0, nil
}

// CurrentCommitSHA returns the full SHA of HEAD.
func (it *LocalGitRepository) CurrentCommitSHA(_ context.Context) (string, error) {
	repo, err := it.openRepo()
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// ReplaceTree checks out ref's tree over the working directory, skipping
// the excluded paths. Directories that contain an excluded path are
// descended into so only their non-excluded children are replaced; the
// returned list is exactly what was checked out.
func (it *LocalGitRepository) ReplaceTree(
	ctx context.Context,
	ref string,
	exclude []string,
) ([]string, error) {
	repo, err := it.openRepo()
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	commit, err := resolveCommit(repo, ref)
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %q: %w", ref, err)
	}

	paths, err := replacePaths(tree, exclude)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("tree of %q contains only excluded paths", ref)
	}

	args := append([]string{"checkout", ref, "--"}, paths...)
	if _, runErr := it.runGit(ctx, nil, args...); runErr != nil {
		return nil, runErr
	}
	return paths, nil
}

// replacePaths walks the tree and returns the paths to check out: every
// entry outside the exclusion set, descending into directories that hold
// an excluded path somewhere below them.
func replacePaths(tree *object.Tree, exclude []string) ([]string, error) {
	var out []string

	var walk func(prefix string, t *object.Tree) error
	walk = func(prefix string, t *object.Tree) error {
		for _, entry := range t.Entries {
			p := entry.Name
			if prefix != "" {
				p = prefix + "/" + entry.Name
			}
			if isExcludedPath(p, exclude) {
				continue
			}
			if entry.Mode == filemode.Dir && coversExcludedPath(p, exclude) {
				sub, err := t.Tree(entry.Name)
				if err != nil {
					return fmt.Errorf("failed to read subtree %q: %w", p, err)
				}
				if err := walk(p, sub); err != nil {
					return err
				}
				continue
			}
			out = append(out, p)
		}
		return nil
	}

	if err := walk("", tree); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func isExcludedPath(p string, exclude []string) bool {
	for _, e := range exclude {
		if p == e || strings.HasPrefix(p, e+"/") {
			return true
		}
	}
	return false
}

func coversExcludedPath(p string, exclude []string) bool {
	for _, e := range exclude {
		if strings.HasPrefix(e, p+"/") {
			return true
		}
	}
	return false
}

// resolveCommit resolves any revision (HEAD, branch, remote branch, tag,
// SHA) to its commit, peeling annotated tags.
func resolveCommit(repo *gogit.Repository, ref string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", ref, err)
	}
	return peelToCommit(repo, *hash)
}

// peelToCommit turns an object hash into its commit: directly for commit
// objects, through the target for annotated tags.
func peelToCommit(repo *gogit.Repository, hash plumbing.Hash) (*object.Commit, error) {
	if commit, err := repo.CommitObject(hash); err == nil {
		return commit, nil
	}

	tag, err := repo.TagObject(hash)
	if err != nil {
		return nil, fmt.Errorf("object %s is neither commit nor tag", hash)
	}
	commit, err := tag.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to peel tag %s: %w", tag.Name, err)
	}
	return commit, nil
}

// ancestorSet collects every commit reachable from the given one.
func ancestorSet(commit *object.Commit) (map[plumbing.Hash]bool, error) {
	seen := make(map[plumbing.Hash]bool)
	iter := object.NewCommitPreorderIter(commit, nil, nil)
	err := iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen, nil
}

func isVersionTag(name string) bool {
	return semver.IsValid(entities.NormalizeVersion(name))
}

func candidateTagNames(version string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range []string{
		version,
		entities.NormalizeVersion(version),
		strings.TrimPrefix(version, "v"),
	} {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func commitSubject(message string) string {
	subject, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(subject)
}
