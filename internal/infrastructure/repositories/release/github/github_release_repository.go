package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	"github.com/astro-koharu/koharu/internal/domain/repositories"
)

const providerName = "github"

// GitHubReleaseRepository implements repositories.ReleaseRepository for GitHub.
type GitHubReleaseRepository struct {
	client *gh.Client
}

// NewGitHubReleaseRepository creates a new GitHub release provider. An empty
// token keeps the client anonymous, which is enough for public themes.
func NewGitHubReleaseRepository(token string) repositories.ReleaseRepository {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubReleaseRepository{client: client}
}

func (p *GitHubReleaseRepository) Name() string { return providerName }

func (p *GitHubReleaseRepository) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "github.com")
}

// FetchRelease returns the release published for the given tag, or the
// latest release when the tag is empty.
func (p *GitHubReleaseRepository) FetchRelease(
	ctx context.Context,
	repoURL string,
	tag string,
) (*entities.ReleaseInfo, error) {
	owner, name, err := splitRepoPath(repoURL)
	if err != nil {
		return nil, err
	}

	release, err := p.getRelease(ctx, owner, name, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release for %s/%s: %w", owner, name, err)
	}

	return &entities.ReleaseInfo{
		TagName:     release.GetTagName(),
		Name:        release.GetName(),
		Body:        release.GetBody(),
		URL:         release.GetHTMLURL(),
		PublishedAt: release.GetPublishedAt().Time,
	}, nil
}

func (p *GitHubReleaseRepository) getRelease(
	ctx context.Context,
	owner, name, tag string,
) (*gh.RepositoryRelease, error) {
	if tag == "" {
		release, _, err := p.client.Repositories.GetLatestRelease(ctx, owner, name)
		return release, err
	}

	release, _, err := p.client.Repositories.GetReleaseByTag(ctx, owner, name, tag)
	if err == nil {
		return release, nil
	}

	// Tags and releases do not always agree on the "v" prefix.
	alternate := strings.TrimPrefix(tag, "v")
	if alternate == tag {
		alternate = "v" + tag
	}
	release, _, altErr := p.client.Repositories.GetReleaseByTag(ctx, owner, name, alternate)
	if altErr != nil {
		return nil, err
	}
	return release, nil
}

// splitRepoPath extracts "owner" and "repo" from clone URLs in their https
// (https://github.com/owner/repo.git) and ssh (git@github.com:owner/repo.git)
// forms.
func splitRepoPath(rawURL string) (string, string, error) {
	trimmed := strings.TrimSuffix(rawURL, ".git")

	if idx := strings.Index(trimmed, "github.com"); idx >= 0 {
		trimmed = trimmed[idx+len("github.com"):]
	}
	trimmed = strings.Trim(trimmed, ":/")

	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse owner/repo from %q", rawURL)
	}
	return parts[0], parts[1], nil
}
