package repositories

import "context"

// InstallerRepository runs the JavaScript dependency install step after an
// update changes package.json or the lockfile.
type InstallerRepository interface {
	// DetectManager returns the package manager the repository uses,
	// decided by its lockfile.
	DetectManager(dir string) string

	// Install runs "<manager> install" in dir.
	Install(ctx context.Context, dir, manager string) error
}
