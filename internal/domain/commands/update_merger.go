package commands

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// runMerge applies the previewed update with the chosen strategy.
func (it *UpdateCommand) runMerge(
	ctx context.Context,
	settings *entities.Settings,
	state entities.UpdateState,
	strategy entities.UpdateStrategy,
) entities.Action {
	if strategy == entities.StrategyClean {
		return it.runCleanReplace(ctx, settings, state)
	}
	return it.applyMerge(ctx, settings, state, strategy == entities.StrategyRebase)
}

// applyMerge merges or rebases onto the target ref and runs the conflict
// policy over whatever conflicts come back. User-content conflicts are
// resolved to the local version; when that covers all of them the merge is
// finalized programmatically. Any remaining conflict is left in progress
// for the user, never aborted behind their back.
func (it *UpdateCommand) applyMerge(
	ctx context.Context,
	settings *entities.Settings,
	state entities.UpdateState,
	rebase bool,
) entities.Action {
	ref := state.Info.TargetRef

	var result entities.MergeResult
	var err error
	if rebase {
		logger.Infof("Rebasing onto %s...", ref)
		result, err = it.git.Rebase(ctx, ref)
	} else {
		logger.Infof("Merging %s...", ref)
		result, err = it.git.Merge(ctx, ref)
	}
	if err != nil {
		return entities.Failed{Message: fmt.Sprintf("%s failed: %v", strategyName(rebase), err)}
	}
	if !result.HasConflict {
		return entities.MergeCompleted{Result: result}
	}

	policy := settings.ConflictPolicy()
	auto, manual := policy.Resolve(result.ConflictFiles)

	if len(auto) > 0 {
		logger.Infof("Keeping your version of %d user-content files", len(auto))
		if resolveErr := it.git.ResolveAsLocal(ctx, auto); resolveErr != nil {
			it.abort(ctx, rebase)
			return entities.Failed{
				Message: fmt.Sprintf("failed to auto-resolve conflicts: %v", resolveErr),
			}
		}
	}

	if len(manual) > 0 {
		result.ConflictFiles = manual
		result.AutoResolved = auto
		return entities.MergeCompleted{Result: result}
	}

	// Every conflict was user content; finish the operation.
	var finalizeErr error
	if rebase {
		finalizeErr = it.git.ContinueRebase(ctx)
	} else {
		finalizeErr = it.git.FinalizeMerge(ctx)
	}
	if finalizeErr != nil {
		return entities.MergeCompleted{Result: entities.MergeResult{
			IsRebase:     rebase,
			AutoResolved: auto,
			ErrorMessage: fmt.Sprintf(
				"conflicts were resolved but finishing the %s failed: %v",
				strategyName(rebase), finalizeErr,
			),
		}}
	}

	return entities.MergeCompleted{Result: entities.MergeResult{
		Success:      true,
		IsRebase:     rebase,
		AutoResolved: auto,
	}}
}

// runCleanReplace records the rollback anchor and hard-replaces the theme
// tree with upstream's, leaving user-content paths untouched. Nothing is
// committed yet: the commit happens after the restore step so a failed
// restore can roll the whole thing back.
func (it *UpdateCommand) runCleanReplace(
	ctx context.Context,
	settings *entities.Settings,
	state entities.UpdateState,
) entities.Action {
	preSHA, err := it.git.CurrentCommitSHA(ctx)
	if err != nil {
		return entities.Failed{Message: fmt.Sprintf("failed to record rollback point: %v", err)}
	}

	policy := settings.ConflictPolicy()
	logger.Infof("Replacing theme files with %s...", state.Info.TargetRef)

	replaced, err := it.git.ReplaceTree(ctx, state.Info.TargetRef, policy.Paths())
	if err != nil {
		it.rollback(ctx, preSHA)
		return entities.Failed{
			Message: fmt.Sprintf("tree replacement failed (rolled back): %v", err),
		}
	}

	return entities.CleanReplaced{Result: entities.CleanResult{
		PreCleanSHA:   preSHA,
		ReplacedPaths: replaced,
	}}
}

// restoreContent puts the user's content back after a clean replacement and
// commits the combined result. Restore failure rolls the branch back to the
// pre-clean commit: a half-restored tree is never left behind.
func (it *UpdateCommand) restoreContent(
	ctx context.Context,
	settings *entities.Settings,
	state entities.UpdateState,
) entities.Action {
	policy := settings.ConflictPolicy()

	files, err := it.backupFactory(settings).Restore(ctx, state.BackupFile, policy.Paths())
	if err != nil {
		it.rollback(ctx, state.Clean.PreCleanSHA)
		return entities.Failed{
			Message: fmt.Sprintf("content restore failed (rolled back): %v", err),
		}
	}
	logger.Infof("Restored %d user-content paths", len(files))

	it.writeVersionMarker(settings, state.Info.LatestVersion)

	message := fmt.Sprintf("chore: clean update to %s", state.Info.LatestVersion)
	if commitErr := it.git.CommitAll(ctx, message); commitErr != nil {
		it.rollback(ctx, state.Clean.PreCleanSHA)
		return entities.Failed{
			Message: fmt.Sprintf("failed to commit the update (rolled back): %v", commitErr),
		}
	}

	return entities.ContentRestored{Files: files}
}

// writeVersionMarker records the installed version for forks whose history
// carries no tags (clean replacement keeps histories unrelated).
func (it *UpdateCommand) writeVersionMarker(settings *entities.Settings, version string) {
	if !entities.KnownVersion(version) {
		return
	}
	if err := os.WriteFile(settings.VersionFile, []byte(version+"\n"), 0o644); err != nil {
		logger.Warnf("Failed to write %s: %v", settings.VersionFile, err)
	}
}

func (it *UpdateCommand) abort(ctx context.Context, rebase bool) {
	var err error
	if rebase {
		err = it.git.AbortRebase(ctx)
	} else {
		err = it.git.AbortMerge(ctx)
	}
	if err != nil {
		logger.Warnf("Failed to abort the %s: %v", strategyName(rebase), err)
	}
}

func (it *UpdateCommand) rollback(ctx context.Context, sha string) {
	logger.Warnf("Rolling back to %s", shortSHA(sha))
	if err := it.git.ResetHard(ctx, sha); err != nil {
		logger.Errorf(
			"Rollback failed: %v; restore manually with: git reset --hard %s", err, sha,
		)
	}
}

func strategyName(rebase bool) string {
	if rebase {
		return "rebase"
	}
	return "merge"
}
