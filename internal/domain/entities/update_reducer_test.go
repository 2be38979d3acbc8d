//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	builders "github.com/astro-koharu/koharu/test/domain/entitybuilders"
)

func TestReduce(t *testing.T) {
	t.Parallel()

	t.Run("should walk the merge happy path to done", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{})
		clean := builders.NewGitStatusBuilder().BuildGitStatus()
		info := builders.NewUpdateInfoBuilder().BuildUpdateInfo()

		// when / then
		state, effects := entities.Reduce(state, entities.GitChecked{Status: clean})
		assert.Equal(t, entities.StatusBackupConfirm, state.Status)
		assert.Equal(t, []entities.Effect{entities.ConfirmBackup{Mandatory: false}}, effects)

		state, effects = entities.Reduce(state, entities.BackupConfirmed{})
		assert.Equal(t, entities.StatusBackingUp, state.Status)
		assert.Equal(t, []entities.Effect{entities.RunBackup{}}, effects)

		state, effects = entities.Reduce(state, entities.BackupCompleted{File: "b.tar.gz"})
		assert.Equal(t, entities.StatusFetching, state.Status)
		assert.Equal(t, []entities.Effect{entities.FetchUpstream{}}, effects)
		assert.Equal(t, "b.tar.gz", state.BackupFile)

		state, effects = entities.Reduce(state, entities.UpstreamFetched{Info: info})
		assert.Equal(t, entities.StatusPreview, state.Status)
		assert.Equal(t, []entities.Effect{entities.AwaitDecision{}}, effects)

		state, effects = entities.Reduce(state, entities.UpdateConfirmed{})
		assert.Equal(t, entities.StatusMerging, state.Status)
		assert.Equal(t, []entities.Effect{entities.RunMerge{Strategy: entities.StrategyMerge}}, effects)

		state, effects = entities.Reduce(state, entities.MergeCompleted{
			Result: entities.MergeResult{Success: true},
		})
		assert.Equal(t, entities.StatusInstalling, state.Status)
		assert.Equal(t, []entities.Effect{entities.InstallDependencies{}}, effects)

		state, effects = entities.Reduce(state, entities.InstallCompleted{})
		assert.Equal(t, entities.StatusDone, state.Status)
		assert.Empty(t, effects)
		assert.True(t, state.Status.Terminal())
	})

	t.Run("should stop with a dirty warning when the tree is dirty", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{})
		dirty := builders.NewGitStatusBuilder().
			WithModifiedFiles("src/pages/index.astro").
			BuildGitStatus()

		// when
		state, effects := entities.Reduce(state, entities.GitChecked{Status: dirty})

		// then
		assert.Equal(t, entities.StatusDirtyWarning, state.Status)
		assert.Empty(t, effects)
		assert.True(t, state.Status.Terminal())
	})

	t.Run("should proceed past a dirty tree with force", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{Force: true})
		dirty := builders.NewGitStatusBuilder().
			WithModifiedFiles("src/pages/index.astro").
			BuildGitStatus()

		// when
		state, effects := entities.Reduce(state, entities.GitChecked{Status: dirty})

		// then
		assert.Equal(t, entities.StatusBackupConfirm, state.Status)
		assert.Equal(t, []entities.Effect{entities.ConfirmBackup{Mandatory: false}}, effects)
	})

	t.Run("should fail when the directory is not a repository", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{})
		noRepo := builders.NewGitStatusBuilder().WithoutRepo().BuildGitStatus()

		// when
		state, effects := entities.Reduce(state, entities.GitChecked{Status: noRepo})

		// then
		assert.Equal(t, entities.StatusError, state.Status)
		assert.Empty(t, effects)
		assert.Equal(t, "not a git repository", state.ErrorMessage)
	})

	t.Run("should go straight to fetching in check-only mode", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{CheckOnly: true})
		clean := builders.NewGitStatusBuilder().BuildGitStatus()

		// when
		state, effects := entities.Reduce(state, entities.GitChecked{Status: clean})

		// then
		assert.Equal(t, entities.StatusFetching, state.Status)
		assert.Equal(t, []entities.Effect{entities.FetchUpstream{}}, effects)
	})

	t.Run("should not offer a backup on a dry run even for clean mode", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{DryRun: true, Clean: true})
		clean := builders.NewGitStatusBuilder().BuildGitStatus()

		// when
		state, effects := entities.Reduce(state, entities.GitChecked{Status: clean})

		// then
		assert.Equal(t, entities.StatusFetching, state.Status)
		assert.Equal(t, []entities.Effect{entities.FetchUpstream{}}, effects)
		assert.Empty(t, state.BackupFile)
	})

	t.Run("should skip the backup question with skip-backup in merge mode", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{SkipBackup: true})
		clean := builders.NewGitStatusBuilder().BuildGitStatus()

		// when
		state, effects := entities.Reduce(state, entities.GitChecked{Status: clean})

		// then
		assert.Equal(t, entities.StatusFetching, state.Status)
		assert.Equal(t, []entities.Effect{entities.FetchUpstream{}}, effects)
	})

	t.Run("should require a backup for rebase even with skip-backup", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{Rebase: true, SkipBackup: true})
		clean := builders.NewGitStatusBuilder().BuildGitStatus()

		// when
		state, effects := entities.Reduce(state, entities.GitChecked{Status: clean})

		// then
		require.Equal(t, entities.StatusBackupConfirm, state.Status)
		assert.Equal(t, []entities.Effect{entities.ConfirmBackup{Mandatory: true}}, effects)

		// and a skip answered there still runs the backup
		state, effects = entities.Reduce(state, entities.BackupSkipped{})
		assert.Equal(t, entities.StatusBackingUp, state.Status)
		assert.Equal(t, []entities.Effect{entities.RunBackup{}}, effects)
	})

	t.Run("should require a backup for clean mode even when skipped", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{Clean: true, SkipBackup: true})
		clean := builders.NewGitStatusBuilder().BuildGitStatus()

		// when
		state, _ = entities.Reduce(state, entities.GitChecked{Status: clean})
		state, effects := entities.Reduce(state, entities.BackupSkipped{})

		// then
		assert.Equal(t, entities.StatusBackingUp, state.Status)
		assert.Equal(t, []entities.Effect{entities.RunBackup{}}, effects)
	})

	t.Run("should honour a skip answered for a plain merge", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{})
		clean := builders.NewGitStatusBuilder().BuildGitStatus()
		state, _ = entities.Reduce(state, entities.GitChecked{Status: clean})

		// when
		state, effects := entities.Reduce(state, entities.BackupSkipped{})

		// then
		assert.Equal(t, entities.StatusFetching, state.Status)
		assert.Equal(t, []entities.Effect{entities.FetchUpstream{}}, effects)
		assert.Empty(t, state.BackupFile)
	})

	t.Run("should finish up to date when there is nothing to apply", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{SkipBackup: true})
		clean := builders.NewGitStatusBuilder().BuildGitStatus()
		state, _ = entities.Reduce(state, entities.GitChecked{Status: clean})
		current := builders.NewUpdateInfoBuilder().
			WithVersions("v1.2.0", "v1.2.0").
			WithDivergence(0, 0).
			BuildUpdateInfo()

		// when
		state, effects := entities.Reduce(state, entities.UpstreamFetched{Info: current})

		// then
		assert.Equal(t, entities.StatusUpToDate, state.Status)
		assert.Empty(t, effects)
	})

	t.Run("should finish up to date when no upstream is configured", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{SkipBackup: true})
		clean := builders.NewGitStatusBuilder().WithoutRemote().BuildGitStatus()
		state, _ = entities.Reduce(state, entities.GitChecked{Status: clean})
		info := builders.NewUpdateInfoBuilder().WithoutUpstream().BuildUpdateInfo()

		// when
		state, effects := entities.Reduce(state, entities.UpstreamFetched{Info: info})

		// then
		assert.Equal(t, entities.StatusUpToDate, state.Status)
		assert.Empty(t, effects)
	})

	t.Run("should treat a downgrade as something to apply", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{SkipBackup: true, TargetTag: "v0.9.0"})
		clean := builders.NewGitStatusBuilder().BuildGitStatus()
		state, _ = entities.Reduce(state, entities.GitChecked{Status: clean})
		downgrade := builders.NewUpdateInfoBuilder().
			WithVersions("v1.2.0", "v0.9.0").
			WithDivergence(0, 4).
			AsDowngrade().
			BuildUpdateInfo()

		// when
		state, effects := entities.Reduce(state, entities.UpstreamFetched{Info: downgrade})

		// then
		assert.Equal(t, entities.StatusPreview, state.Status)
		assert.Equal(t, []entities.Effect{entities.AwaitDecision{}}, effects)
	})

	t.Run("should cancel at the preview", func(t *testing.T) {
		t.Parallel()

		// given
		state := statePreview(t, entities.UpdateOptions{SkipBackup: true})

		// when
		state, effects := entities.Reduce(state, entities.UpdateCancelled{})

		// then
		assert.Equal(t, entities.StatusCancelled, state.Status)
		assert.Empty(t, effects)
	})

	t.Run("should stop after the preview in check-only mode", func(t *testing.T) {
		t.Parallel()

		// given
		state := statePreview(t, entities.UpdateOptions{CheckOnly: true, SkipBackup: true})

		// when
		state, effects := entities.Reduce(state, entities.UpdateConfirmed{})

		// then
		assert.Equal(t, entities.StatusDone, state.Status)
		assert.Empty(t, effects)
	})

	t.Run("should stop after the preview in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		state := statePreview(t, entities.UpdateOptions{DryRun: true, SkipBackup: true})

		// when
		state, effects := entities.Reduce(state, entities.UpdateConfirmed{})

		// then
		assert.Equal(t, entities.StatusDone, state.Status)
		assert.Empty(t, effects)
	})

	t.Run("should pick the rebase strategy from the options", func(t *testing.T) {
		t.Parallel()

		// given
		state := statePreview(t, entities.UpdateOptions{Rebase: true})

		// when
		state, effects := entities.Reduce(state, entities.UpdateConfirmed{})

		// then
		assert.Equal(t, entities.StatusMerging, state.Status)
		assert.Equal(t, []entities.Effect{entities.RunMerge{Strategy: entities.StrategyRebase}}, effects)
	})

	t.Run("should end in conflict when conflicts remain", func(t *testing.T) {
		t.Parallel()

		// given
		state := stateMerging(t, entities.UpdateOptions{SkipBackup: true})
		result := entities.MergeResult{
			HasConflict:   true,
			ConflictFiles: []string{"src/layouts/Base.astro"},
			AutoResolved:  []string{"src/content/posts/hello.md"},
		}

		// when
		state, effects := entities.Reduce(state, entities.MergeCompleted{Result: result})

		// then
		assert.Equal(t, entities.StatusConflict, state.Status)
		assert.Empty(t, effects)
		require.NotNil(t, state.Merge)
		assert.Equal(t, result.ConflictFiles, state.Merge.ConflictFiles)
	})

	t.Run("should fail when the merge errors without conflicts", func(t *testing.T) {
		t.Parallel()

		// given
		state := stateMerging(t, entities.UpdateOptions{SkipBackup: true})
		result := entities.MergeResult{ErrorMessage: "merge exited with 128"}

		// when
		state, effects := entities.Reduce(state, entities.MergeCompleted{Result: result})

		// then
		assert.Equal(t, entities.StatusError, state.Status)
		assert.Empty(t, effects)
		assert.Equal(t, "merge exited with 128", state.ErrorMessage)
	})

	t.Run("should restore content after a clean replacement", func(t *testing.T) {
		t.Parallel()

		// given
		state := stateMerging(t, entities.UpdateOptions{Clean: true})
		replaced := entities.CleanResult{
			PreCleanSHA:   "abc1234",
			ReplacedPaths: []string{"src/layouts", "package.json"},
		}

		// when / then
		state, effects := entities.Reduce(state, entities.CleanReplaced{Result: replaced})
		require.Equal(t, entities.StatusCleanRestoring, state.Status)
		assert.Equal(t, []entities.Effect{entities.RestoreContent{}}, effects)
		require.NotNil(t, state.Clean)
		assert.Equal(t, "abc1234", state.Clean.PreCleanSHA)

		state, effects = entities.Reduce(state, entities.ContentRestored{
			Files: []string{"src/content"},
		})
		assert.Equal(t, entities.StatusInstalling, state.Status)
		assert.Equal(t, []entities.Effect{entities.InstallDependencies{}}, effects)
		assert.Equal(t, []string{"src/content"}, state.RestoredFiles)
	})

	t.Run("should fail from any non-terminal state", func(t *testing.T) {
		t.Parallel()

		// given
		state := stateMerging(t, entities.UpdateOptions{SkipBackup: true})

		// when
		state, effects := entities.Reduce(state, entities.Failed{Message: "fetch timed out"})

		// then
		assert.Equal(t, entities.StatusError, state.Status)
		assert.Empty(t, effects)
		assert.Equal(t, "fetch timed out", state.ErrorMessage)
	})

	t.Run("should absorb actions in terminal states", func(t *testing.T) {
		t.Parallel()

		// given
		state := entities.NewUpdateState(entities.UpdateOptions{})
		state.Status = entities.StatusDone

		// when
		next, effects := entities.Reduce(state, entities.Failed{Message: "late failure"})

		// then
		assert.Equal(t, entities.StatusDone, next.Status)
		assert.Empty(t, effects)
		assert.Empty(t, next.ErrorMessage)
	})

	t.Run("should ignore actions that do not apply to the state", func(t *testing.T) {
		t.Parallel()

		// given
		state := statePreview(t, entities.UpdateOptions{SkipBackup: true})

		// when
		next, effects := entities.Reduce(state, entities.BackupCompleted{File: "stale.tar.gz"})

		// then
		assert.Equal(t, state, next)
		assert.Empty(t, effects)
	})
}

// statePreview drives a fresh state to the preview step.
func statePreview(t *testing.T, opts entities.UpdateOptions) entities.UpdateState {
	t.Helper()

	state := entities.NewUpdateState(opts)
	clean := builders.NewGitStatusBuilder().BuildGitStatus()
	info := builders.NewUpdateInfoBuilder().BuildUpdateInfo()

	state, _ = entities.Reduce(state, entities.GitChecked{Status: clean})
	if state.Status == entities.StatusBackupConfirm {
		state, _ = entities.Reduce(state, entities.BackupConfirmed{})
		state, _ = entities.Reduce(state, entities.BackupCompleted{File: "b.tar.gz"})
	}
	require.Equal(t, entities.StatusFetching, state.Status)

	state, _ = entities.Reduce(state, entities.UpstreamFetched{Info: info})
	require.Equal(t, entities.StatusPreview, state.Status)
	return state
}

// stateMerging drives a fresh state to the merging step.
func stateMerging(t *testing.T, opts entities.UpdateOptions) entities.UpdateState {
	t.Helper()

	state := statePreview(t, opts)
	state, _ = entities.Reduce(state, entities.UpdateConfirmed{})
	require.Equal(t, entities.StatusMerging, state.Status)
	return state
}
