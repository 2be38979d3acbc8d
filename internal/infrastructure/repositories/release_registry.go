package repositories

import (
	"fmt"

	domainRepos "github.com/astro-koharu/koharu/internal/domain/repositories"
)

// ReleaseFactory is a constructor function that creates a ReleaseRepository
// given an auth token.
type ReleaseFactory func(token string) domainRepos.ReleaseRepository

// ReleaseRegistry manages all registered release-notes providers.
type ReleaseRegistry struct {
	factories map[string]ReleaseFactory
}

// NewReleaseRegistry creates an empty release registry.
func NewReleaseRegistry() *ReleaseRegistry {
	return &ReleaseRegistry{
		factories: make(map[string]ReleaseFactory),
	}
}

// Register adds a release factory under the given name (e.g. "github").
func (r *ReleaseRegistry) Register(name string, factory ReleaseFactory) {
	r.factories[name] = factory
}

// Match returns a configured provider whose host matches the upstream URL.
func (r *ReleaseRegistry) Match(rawURL, token string) (domainRepos.ReleaseRepository, error) {
	for _, factory := range r.factories {
		repo := factory(token)
		if repo.MatchesURL(rawURL) {
			return repo, nil
		}
	}
	return nil, fmt.Errorf("no release provider matches %q", rawURL)
}

// Names returns the list of registered provider names.
func (r *ReleaseRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
