package controllers

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/astro-koharu/koharu/internal/domain/commands"
	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// BackupController handles the "backup" subcommand.
type BackupController struct {
	command commands.Backup
}

// NewBackupController creates a new BackupController.
func NewBackupController(command commands.Backup) *BackupController {
	return &BackupController{command: command}
}

// GetBind returns the Cobra command metadata for the backup controller.
func (it *BackupController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "backup",
		Short: "Back up your content and configuration",
		Long: `Archive the configured user-content paths into a tar.gz under the
backup directory. The update command offers the same backup before it
touches anything; this command runs it on demand.`,
	}
}

// Execute creates a backup archive.
func (it *BackupController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		os.Exit(exitFailure)
	}

	full, _ := cmd.Flags().GetBool("full")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if _, err := it.command.Execute(ctx, settings, commands.BackupOptions{
		Full:    full,
		Verbose: verbose,
	}); err != nil {
		logger.Errorf("Backup failed: %v", err)
		os.Exit(exitFailure)
	}
}

// AddFlags adds the backup-specific flags to the given Cobra command.
func (it *BackupController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("full", false,
		"Also include package.json, the lockfile, and the Astro config")
}
