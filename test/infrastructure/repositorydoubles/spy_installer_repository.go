//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/astro-koharu/koharu/internal/domain/repositories"
)

// SpyInstallerRepository implements repositories.InstallerRepository as a configurable spy.
type SpyInstallerRepository struct {
	Manager      string
	DetectedDirs []string

	// --- Install ---
	InstallErr        error
	InstalledDirs     []string
	InstalledManagers []string
}

var _ repositories.InstallerRepository = (*SpyInstallerRepository)(nil)

func (i *SpyInstallerRepository) DetectManager(dir string) string {
	i.DetectedDirs = append(i.DetectedDirs, dir)
	if i.Manager == "" {
		return "npm"
	}
	return i.Manager
}

func (i *SpyInstallerRepository) Install(_ context.Context, dir, manager string) error {
	i.InstalledDirs = append(i.InstalledDirs, dir)
	i.InstalledManagers = append(i.InstalledManagers, manager)
	return i.InstallErr
}
