package gitlab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	"github.com/astro-koharu/koharu/internal/domain/repositories"
)

const providerName = "gitlab"

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabReleaseRepository implements repositories.ReleaseRepository for GitLab.
type GitLabReleaseRepository struct {
	client *gl.Client
}

// NewGitLabReleaseRepository creates a new GitLab release provider.
func NewGitLabReleaseRepository(token string) repositories.ReleaseRepository {
	client, err := gl.NewClient(token)
	if err != nil {
		// Return a provider that will fail on use rather than panicking at construction
		return &GitLabReleaseRepository{client: nil}
	}
	return &GitLabReleaseRepository{client: client}
}

func (p *GitLabReleaseRepository) Name() string { return providerName }

func (p *GitLabReleaseRepository) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "gitlab.com")
}

// FetchRelease returns the release published for the given tag, or the most
// recent release when the tag is empty.
func (p *GitLabReleaseRepository) FetchRelease(
	ctx context.Context,
	repoURL string,
	tag string,
) (*entities.ReleaseInfo, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}

	project, err := projectPath(repoURL)
	if err != nil {
		return nil, err
	}

	release, err := p.getRelease(ctx, project, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release for %s: %w", project, err)
	}

	var published time.Time
	if release.ReleasedAt != nil {
		published = *release.ReleasedAt
	}

	return &entities.ReleaseInfo{
		TagName:     release.TagName,
		Name:        release.Name,
		Body:        release.Description,
		URL:         releaseURL(repoURL, release.TagName),
		PublishedAt: published,
	}, nil
}

func (p *GitLabReleaseRepository) getRelease(
	ctx context.Context,
	project, tag string,
) (*gl.Release, error) {
	if tag != "" {
		release, _, err := p.client.Releases.GetRelease(project, tag, gl.WithContext(ctx))
		return release, err
	}

	releases, _, err := p.client.Releases.ListReleases(
		project,
		&gl.ListReleasesOptions{ListOptions: gl.ListOptions{PerPage: 1}},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, err
	}
	if len(releases) == 0 {
		return nil, errors.New("project has no releases")
	}
	return releases[0], nil
}

// projectPath extracts the full project path, keeping subgroups intact
// (e.g. "group/sub/theme" from https://gitlab.com/group/sub/theme.git).
func projectPath(rawURL string) (string, error) {
	trimmed := strings.TrimSuffix(rawURL, ".git")

	if idx := strings.Index(trimmed, "gitlab.com"); idx >= 0 {
		trimmed = trimmed[idx+len("gitlab.com"):]
	}
	trimmed = strings.Trim(trimmed, ":/")

	if trimmed == "" || !strings.Contains(trimmed, "/") {
		return "", fmt.Errorf("cannot parse project path from %q", rawURL)
	}
	return trimmed, nil
}

func releaseURL(repoURL, tag string) string {
	base := strings.TrimSuffix(repoURL, ".git")
	if at := strings.Index(base, "@"); at >= 0 && !strings.Contains(base, "://") {
		// git@gitlab.com:group/theme -> https://gitlab.com/group/theme
		base = "https://" + strings.Replace(base[at+1:], ":", "/", 1)
	}
	return base + "/-/releases/" + tag
}
