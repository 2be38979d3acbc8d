package controllers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/astro-koharu/koharu/internal/domain/commands"
	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// RestoreController handles the "restore" subcommand.
type RestoreController struct {
	command commands.Restore
}

// NewRestoreController creates a new RestoreController.
func NewRestoreController(command commands.Restore) *RestoreController {
	return &RestoreController{command: command}
}

// GetBind returns the Cobra command metadata for the restore controller.
func (it *RestoreController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "restore [backup-file]",
		Short: "Restore content from a backup archive",
		Long: `Restore files from a backup created by "koharu backup" or by an
update run. Without an argument the newest archive in the backup
directory is used. Restoring overwrites the working tree, so it asks
for confirmation unless --force is given.`,
	}
}

// Execute restores a backup over the working tree.
func (it *RestoreController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		os.Exit(exitFailure)
	}

	file := ""
	if len(args) > 0 {
		file = args[0]
	}
	if file == "" {
		file, err = latestBackup(settings.BackupDir)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(exitFailure)
		}
	}

	only, _ := cmd.Flags().GetStringSlice("only")
	force, _ := cmd.Flags().GetBool("force")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if _, err := it.command.Execute(ctx, settings, commands.RestoreOptions{
		File:    file,
		Only:    only,
		Force:   force,
		Verbose: verbose,
	}); err != nil {
		if errors.Is(err, commands.ErrRestoreCancelled) {
			logger.Info("Restore cancelled")
			return
		}
		logger.Errorf("Restore failed: %v", err)
		os.Exit(exitFailure)
	}
}

// AddFlags adds the restore-specific flags to the given Cobra command.
func (it *RestoreController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("only", nil,
		"Restore only these paths from the archive (repeatable)")
	cmd.Flags().BoolP("force", "f", false, "Restore without asking for confirmation")
}

// latestBackup picks the newest archive in dir. Backup names embed their
// creation timestamp, so the lexicographic maximum is the newest.
func latestBackup(dir string) (string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("no backups found in %s: %w", dir, err)
	}

	newest := ""
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() ||
			!strings.HasPrefix(name, "koharu-backup-") ||
			!strings.HasSuffix(name, ".tar.gz") {
			continue
		}
		if name > newest {
			newest = name
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no backups found in %s", dir)
	}
	return filepath.Join(dir, newest), nil
}
