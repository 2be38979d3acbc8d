package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	infraRepos "github.com/astro-koharu/koharu/internal/infrastructure/repositories"
)

// Backup is the interface for the standalone backup command.
type Backup interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts BackupOptions,
	) (entities.BackupResult, error)
}

// BackupOptions holds runtime options for a standalone backup.
type BackupOptions struct {
	Full    bool // include project files (package.json, lockfile, astro config)
	Verbose bool
}

// BackupCommand archives the user-content paths on demand, outside of an
// update run.
type BackupCommand struct {
	backupFactory infraRepos.BackupFactory
}

// NewBackupCommand creates a new BackupCommand.
func NewBackupCommand(backupFactory infraRepos.BackupFactory) *BackupCommand {
	return &BackupCommand{backupFactory: backupFactory}
}

// Execute creates the backup archive and reports its contents.
func (it *BackupCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts BackupOptions,
) (entities.BackupResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	result, err := it.backupFactory(settings).Create(ctx, opts.Full)
	if err != nil {
		return entities.BackupResult{}, err
	}

	for _, item := range result.Manifest.Items {
		logger.Infof("  %s (%d files)", item.Path, item.FileCount)
	}
	logger.Infof("Backup created: %s (%s)", result.File, formatSize(result.SizeBytes))

	return result, nil
}
