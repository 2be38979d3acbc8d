package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	"github.com/astro-koharu/koharu/internal/domain/repositories"
	infraRepos "github.com/astro-koharu/koharu/internal/infrastructure/repositories"
)

// ErrRestoreCancelled is returned when the user declines the restore prompt.
var ErrRestoreCancelled = errors.New("restore cancelled")

// Restore is the interface for the restore command.
type Restore interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts RestoreOptions,
	) ([]string, error)
}

// RestoreOptions holds runtime options for a restore run.
type RestoreOptions struct {
	File    string   // backup archive to restore from
	Only    []string // limit the restore to these manifest paths
	Force   bool     // skip the confirmation prompt
	Verbose bool
}

// RestoreCommand previews a backup archive, confirms, and restores it over
// the working tree.
type RestoreCommand struct {
	backupFactory infraRepos.BackupFactory
	prompter      repositories.Prompter
}

// NewRestoreCommand creates a new RestoreCommand.
func NewRestoreCommand(
	backupFactory infraRepos.BackupFactory,
	prompter repositories.Prompter,
) *RestoreCommand {
	return &RestoreCommand{backupFactory: backupFactory, prompter: prompter}
}

// Execute restores the archive and returns the restored paths.
func (it *RestoreCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts RestoreOptions,
) ([]string, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	backup := it.backupFactory(settings)

	manifest, err := backup.Preview(opts.File)
	if err != nil {
		return nil, err
	}

	logger.Infof(
		"Backup from %s (theme %s):",
		manifest.CreatedAt.Format("2006-01-02 15:04"), displayVersion(manifest.ThemeVersion),
	)
	for _, item := range manifest.Items {
		logger.Infof("  %s (%d files)", item.Path, item.FileCount)
	}

	if !opts.Force {
		yes, confirmErr := it.prompter.Confirm(
			"Restoring overwrites the current files. Continue?", false,
		)
		if confirmErr != nil {
			return nil, fmt.Errorf("failed to read answer: %w", confirmErr)
		}
		if !yes {
			return nil, ErrRestoreCancelled
		}
	}

	files, err := backup.Restore(ctx, opts.File, opts.Only)
	if err != nil {
		return nil, err
	}

	logger.Infof("Restored %d paths from %s", len(files), opts.File)
	return files, nil
}

func displayVersion(v string) string {
	if v == "" {
		return entities.UnknownVersion
	}
	return v
}
