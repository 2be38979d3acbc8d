//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	"github.com/astro-koharu/koharu/internal/domain/repositories"
)

// SpyReleaseRepository implements repositories.ReleaseRepository as a configurable spy.
type SpyReleaseRepository struct {
	ServiceName string
	Matches     bool

	// --- FetchRelease ---
	Release     *entities.ReleaseInfo
	FetchErr    error
	FetchedTags []string
}

var _ repositories.ReleaseRepository = (*SpyReleaseRepository)(nil)

func (r *SpyReleaseRepository) Name() string { return r.ServiceName }

func (r *SpyReleaseRepository) MatchesURL(_ string) bool { return r.Matches }

func (r *SpyReleaseRepository) FetchRelease(
	_ context.Context, _ string, tag string,
) (*entities.ReleaseInfo, error) {
	r.FetchedTags = append(r.FetchedTags, tag)
	return r.Release, r.FetchErr
}
