package repositories

import (
	"context"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// ReleaseRepository fetches published release metadata from a Git hosting
// service. Implementations are selected by matching the upstream URL.
type ReleaseRepository interface {
	// Name returns the hosting service identifier (e.g. "github").
	Name() string

	// MatchesURL reports whether this service hosts the given repository URL.
	MatchesURL(url string) bool

	// FetchRelease returns the release published for the given tag, or an
	// error when the service has no such release.
	FetchRelease(ctx context.Context, repoURL, tag string) (*entities.ReleaseInfo, error)
}
