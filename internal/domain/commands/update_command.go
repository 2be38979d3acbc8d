package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	"github.com/astro-koharu/koharu/internal/domain/repositories"
	infraRepos "github.com/astro-koharu/koharu/internal/infrastructure/repositories"
)

// Update is the interface for the update command.
type Update interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts entities.UpdateOptions,
	) (entities.UpdateState, error)
}

// UpdateCommand drives the theme update workflow. The state machine in
// entities decides what happens next; this command only executes the
// effects it emits (git, backup, prompts, install) and feeds each outcome
// back in as the next action.
type UpdateCommand struct {
	git           repositories.GitRepository
	backupFactory infraRepos.BackupFactory
	releases      *infraRepos.ReleaseRegistry
	installer     repositories.InstallerRepository
	prompter      repositories.Prompter
}

// NewUpdateCommand creates a new UpdateCommand.
func NewUpdateCommand(
	git repositories.GitRepository,
	backupFactory infraRepos.BackupFactory,
	releases *infraRepos.ReleaseRegistry,
	installer repositories.InstallerRepository,
	prompter repositories.Prompter,
) *UpdateCommand {
	return &UpdateCommand{
		git:           git,
		backupFactory: backupFactory,
		releases:      releases,
		installer:     installer,
		prompter:      prompter,
	}
}

// Execute runs the update workflow to a terminal state and returns it.
// The returned error covers option validation only; everything that goes
// wrong during the run lands in the terminal state instead.
func (it *UpdateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts entities.UpdateOptions,
) (entities.UpdateState, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	if err := opts.Validate(); err != nil {
		return entities.UpdateState{}, err
	}

	state := entities.NewUpdateState(opts)
	queue := []entities.Effect{entities.CheckGit{}}

	for len(queue) > 0 {
		effect := queue[0]
		queue = queue[1:]

		action := it.perform(ctx, settings, state, effect)

		var next []entities.Effect
		state, next = entities.Reduce(state, action)
		queue = append(queue, next...)
	}

	it.report(state)
	return state, nil
}

// perform executes one effect and returns the resulting action.
func (it *UpdateCommand) perform(
	ctx context.Context,
	settings *entities.Settings,
	state entities.UpdateState,
	effect entities.Effect,
) entities.Action {
	switch eff := effect.(type) {
	case entities.CheckGit:
		return it.checkGit(ctx, settings)
	case entities.ConfirmBackup:
		return it.confirmBackup(state, eff)
	case entities.RunBackup:
		return it.runBackup(ctx, settings)
	case entities.FetchUpstream:
		return it.fetchUpstream(ctx, settings, state)
	case entities.AwaitDecision:
		return it.awaitDecision(state)
	case entities.RunMerge:
		return it.runMerge(ctx, settings, state, eff.Strategy)
	case entities.RestoreContent:
		return it.restoreContent(ctx, settings, state)
	case entities.InstallDependencies:
		return it.installDependencies(ctx, settings)
	default:
		return entities.Failed{Message: fmt.Sprintf("unhandled effect %T", effect)}
	}
}

// checkGit takes the preflight snapshot of the clone.
func (it *UpdateCommand) checkGit(
	ctx context.Context,
	settings *entities.Settings,
) entities.Action {
	status, err := it.git.Status(ctx, settings.Upstream.Remote)
	if err != nil {
		return entities.Failed{Message: fmt.Sprintf("failed to inspect repository: %v", err)}
	}

	warning := ""
	if status.IsRepo && status.CurrentBranch != settings.Upstream.Branch {
		warning = fmt.Sprintf(
			"current branch %q differs from the base branch %q",
			status.CurrentBranch, settings.Upstream.Branch,
		)
	}

	return entities.GitChecked{Status: status, BranchWarning: warning}
}

// confirmBackup decides the backup question. A mandatory backup (rebase or
// clean update) and --force never prompt.
func (it *UpdateCommand) confirmBackup(
	state entities.UpdateState,
	eff entities.ConfirmBackup,
) entities.Action {
	if eff.Mandatory {
		if state.Options.SkipBackup {
			logger.Warnf(
				"--skip-backup is ignored for %s updates: a backup is required",
				state.Options.Strategy(),
			)
		}
		return entities.BackupConfirmed{}
	}

	if state.Options.Force {
		return entities.BackupConfirmed{}
	}

	yes, err := it.prompter.Confirm("Create a backup before updating?", true)
	if err != nil {
		return entities.Failed{Message: fmt.Sprintf("failed to read answer: %v", err)}
	}
	if yes {
		return entities.BackupConfirmed{}
	}
	return entities.BackupSkipped{}
}

func (it *UpdateCommand) runBackup(
	ctx context.Context,
	settings *entities.Settings,
) entities.Action {
	result, err := it.backupFactory(settings).Create(ctx, false)
	if err != nil {
		return entities.Failed{Message: fmt.Sprintf("backup failed: %v", err)}
	}

	logger.Infof("Backup created: %s (%s)", result.File, formatSize(result.SizeBytes))
	return entities.BackupCompleted{File: result.File}
}

// awaitDecision renders the preview and collects the go/no-go decision.
// Check-only and dry-run acknowledge the preview without prompting, since
// both stop right after it.
func (it *UpdateCommand) awaitDecision(state entities.UpdateState) entities.Action {
	it.renderPreview(state)

	if state.Options.CheckOnly || state.Options.DryRun {
		return entities.UpdateConfirmed{}
	}
	if state.Options.Force {
		logger.Info("Auto-confirming update (--force)")
		return entities.UpdateConfirmed{}
	}

	yes, err := it.prompter.Confirm("Apply this update?", true)
	if err != nil {
		return entities.Failed{Message: fmt.Sprintf("failed to read answer: %v", err)}
	}
	if yes {
		return entities.UpdateConfirmed{}
	}
	return entities.UpdateCancelled{}
}

func (it *UpdateCommand) installDependencies(
	ctx context.Context,
	settings *entities.Settings,
) entities.Action {
	if settings.Install.Skip {
		logger.Debug("Dependency install skipped by config")
		return entities.InstallCompleted{}
	}

	manager := settings.Install.Manager
	if manager == "" {
		manager = it.installer.DetectManager(".")
	}
	logger.Infof("Installing dependencies with %s...", manager)

	if err := it.installer.Install(ctx, ".", manager); err != nil {
		return entities.Failed{Message: fmt.Sprintf("dependency install failed: %v", err)}
	}
	return entities.InstallCompleted{}
}

const previewCommitLimit = 15

// renderPreview prints everything the user needs to decide: versions,
// divergence, the commits the update applies (or removes, on a downgrade),
// what the chosen strategy will do, release notes, and warnings.
func (it *UpdateCommand) renderPreview(state entities.UpdateState) {
	info := state.Info

	logger.Infof("Theme version: %s -> %s", info.CurrentVersion, info.LatestVersion)
	logger.Infof(
		"Divergence: %d incoming, %d local commits (target %s)",
		info.BehindCount, info.AheadCount, info.TargetRef,
	)

	heading := "Incoming changes:"
	if info.IsDowngrade {
		heading = "Commits the downgrade removes:"
	}
	printCommits(heading, info.Commits)

	it.renderStrategy(state)

	if info.ReleaseNotes != "" {
		logger.Info("Release notes:")
		logger.Info(info.ReleaseNotes)
	}

	if state.BranchWarning != "" {
		logger.Warn(state.BranchWarning)
	}
	if state.NeedsMigration && !state.Options.Clean {
		logger.Warn(
			"this clone shares no history with the template (squash-imported fork); " +
				"a plain merge will conflict heavily, consider re-running with --clean",
		)
	}
	if info.IsDowngrade {
		logger.Warnf(
			"%s is older than the installed %s",
			info.LatestVersion, info.CurrentVersion,
		)
		if !state.Options.Clean {
			logger.Warn("downgrades need --clean: merging an older tag changes nothing")
		}
	}
	if !state.Git.IsClean && state.Options.Force {
		logger.Warn("working tree is dirty (--force); uncommitted changes may end up in the update commit")
	}
}

// renderStrategy spells out what applying the update will do, so a dry run
// of --rebase or --clean describes the consequences without executing them.
func (it *UpdateCommand) renderStrategy(state entities.UpdateState) {
	switch state.Options.Strategy() {
	case entities.StrategyRebase:
		printCommits(
			fmt.Sprintf("Rebase replays %d local commits on top of %s:",
				len(state.Info.LocalCommits), state.Info.TargetRef),
			state.Info.LocalCommits,
		)
		logger.Warn("rebasing rewrites their hashes; a backup is taken first")
	case entities.StrategyClean:
		logger.Infof(
			"Clean update: theme files are rebuilt from %s, then your content "+
				"comes back from the backup", state.Info.TargetRef,
		)
	case entities.StrategyMerge:
		// The default; nothing worth spelling out.
	}
}

func printCommits(heading string, commits []entities.Commit) {
	if len(commits) == 0 {
		return
	}
	logger.Info(heading)
	for i, commit := range commits {
		if i == previewCommitLimit {
			logger.Infof("  ... and %d more", len(commits)-previewCommitLimit)
			break
		}
		logger.Infof("  %s %s", shortSHA(commit.SHA), commit.Subject)
	}
}

// report prints the terminal outcome with recovery guidance where needed.
func (it *UpdateCommand) report(state entities.UpdateState) {
	switch state.Status {
	case entities.StatusDirtyWarning:
		logger.Warn("Working tree has uncommitted changes:")
		for i, file := range state.Git.ModifiedFiles {
			if i == 10 {
				logger.Warnf("  ... and %d more", len(state.Git.ModifiedFiles)-10)
				break
			}
			logger.Warnf("  %s", file)
		}
		logger.Warn("Commit or stash them first, or re-run with --force")

	case entities.StatusUpToDate:
		if state.Info != nil && !state.Info.HasUpstream {
			logger.Warn("No upstream template configured; set upstream.url in koharu.yaml")
			return
		}
		logger.Infof("Already up to date (version %s)", state.Info.CurrentVersion)

	case entities.StatusDone:
		switch {
		case state.Options.CheckOnly:
			kind := "Update"
			if state.Info.IsDowngrade {
				kind = "Downgrade"
			}
			logger.Infof(
				"%s available: %s -> %s (%d commits)",
				kind, state.Info.CurrentVersion, state.Info.LatestVersion, len(state.Info.Commits),
			)
		case state.Options.DryRun:
			logger.Info("Dry run complete; no changes were made")
		default:
			logger.Infof("Theme updated to %s", state.Info.LatestVersion)
			if state.BackupFile != "" {
				logger.Infof("Backup kept at %s", state.BackupFile)
			}
		}

	case entities.StatusConflict:
		it.reportConflict(state)

	case entities.StatusCancelled:
		logger.Info("Update cancelled; no changes were made")

	case entities.StatusError:
		logger.Errorf("Update failed: %s", state.ErrorMessage)
		if state.BackupFile != "" {
			logger.Infof("Your content is backed up at %s", state.BackupFile)
		}

	default:
		// non-terminal statuses never reach report
	}
}

func (it *UpdateCommand) reportConflict(state entities.UpdateState) {
	result := state.Merge

	if len(result.AutoResolved) > 0 {
		logger.Infof(
			"Auto-resolved %d user-content conflicts (kept your version)",
			len(result.AutoResolved),
		)
	}

	logger.Warnf("%d conflicts need manual resolution:", len(result.ConflictFiles))
	for _, file := range result.ConflictFiles {
		logger.Warnf("  %s", file)
	}

	logger.Warn("Resolve each file, stage it with 'git add', then finish with:")
	if result.IsRebase {
		logger.Warn("  git rebase --continue    (or abort with: git rebase --abort)")
	} else {
		logger.Warn("  git commit --no-edit     (or abort with: git merge --abort)")
	}
	if state.BackupFile != "" {
		logger.Infof("Your content is backed up at %s", state.BackupFile)
	}
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func formatSize(bytes int64) string {
	const unit = 1024
	switch {
	case bytes >= unit*unit:
		return fmt.Sprintf("%.1f MiB", float64(bytes)/(unit*unit))
	case bytes >= unit:
		return fmt.Sprintf("%.1f KiB", float64(bytes)/unit)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
