package controllers

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/astro-koharu/koharu/internal/domain/commands"
	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// exitFailure is the process exit code for runs that end in a failure
// state, so scripts can tell "nothing to do" from "needs attention".
const exitFailure = 1

// UpdateController handles the "update" subcommand.
type UpdateController struct {
	command commands.Update
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update) *UpdateController {
	return &UpdateController{command: command}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update",
		Short: "Update the theme from its upstream repository",
		Long: `Fetch the upstream theme repository, show what changed, and merge
the update into the current checkout.

By default the update is a git merge that keeps your content. Conflicts
inside your configured user-content paths are resolved in your favor
automatically; anything else is left for manual resolution.

Modes:
  koharu update            Merge the newest upstream version
  koharu update --check    Only report whether an update exists
  koharu update --rebase   Replay your commits on top of upstream
  koharu update --clean    Rebuild theme files from upstream, then restore
                           your content from the backup`,
	}
}

// Execute runs the update flow and exits non-zero when it ends in a
// failure state.
func (it *UpdateController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		os.Exit(exitFailure)
	}

	check, _ := cmd.Flags().GetBool("check")
	skipBackup, _ := cmd.Flags().GetBool("skip-backup")
	force, _ := cmd.Flags().GetBool("force")
	tag, _ := cmd.Flags().GetString("tag")
	rebase, _ := cmd.Flags().GetBool("rebase")
	clean, _ := cmd.Flags().GetBool("clean")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	state, err := it.command.Execute(ctx, settings, entities.UpdateOptions{
		CheckOnly:  check,
		SkipBackup: skipBackup,
		Force:      force,
		TargetTag:  tag,
		Rebase:     rebase,
		Clean:      clean,
		DryRun:     dryRun,
		Verbose:    verbose,
	})
	if err != nil {
		logger.Errorf("Update failed: %v", err)
		os.Exit(exitFailure)
	}

	if !endedWell(state.Status) {
		os.Exit(exitFailure)
	}
}

// AddFlags adds the update-specific flags to the given Cobra command.
func (it *UpdateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "Only check whether an update is available")
	cmd.Flags().Bool("skip-backup", false, "Skip the backup step (merge mode only)")
	cmd.Flags().BoolP("force", "f", false, "Skip confirmations and ignore uncommitted changes")
	cmd.Flags().String("tag", "", "Update to this version instead of the newest one")
	cmd.Flags().Bool("rebase", false, "Rebase local commits onto upstream instead of merging")
	cmd.Flags().Bool("clean", false, "Replace theme files from upstream, keeping user content")
	cmd.Flags().Bool("dry-run", false, "Show what would be done without making changes")
}

// endedWell reports whether a terminal state counts as success for the
// process exit code. Cancelling is the user's choice, not a failure.
func endedWell(status entities.UpdateStatus) bool {
	switch status {
	case entities.StatusDone, entities.StatusUpToDate, entities.StatusCancelled:
		return true
	default:
		return false
	}
}
