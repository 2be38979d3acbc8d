package repositories

import (
	"context"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// BackupRepository archives and restores user-content paths.
type BackupRepository interface {
	// Create writes a new backup archive of the user-content paths and
	// returns its location and manifest. With full set, project files
	// (package.json, lockfiles, astro config) are included as well.
	Create(ctx context.Context, full bool) (entities.BackupResult, error)

	// Preview reads the manifest of an existing archive without unpacking.
	Preview(file string) (entities.BackupManifest, error)

	// Restore unpacks the archive into the repository. A non-empty "only"
	// list limits the restore to those manifest paths. It fails closed on
	// a manifest format mismatch and returns the restored paths.
	Restore(ctx context.Context, file string, only []string) ([]string, error)
}
