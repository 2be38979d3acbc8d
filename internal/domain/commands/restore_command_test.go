//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-koharu/koharu/internal/domain/commands"
	"github.com/astro-koharu/koharu/internal/domain/entities"
	"github.com/astro-koharu/koharu/internal/domain/repositories"
	builders "github.com/astro-koharu/koharu/test/domain/entitybuilders"
	doubles "github.com/astro-koharu/koharu/test/infrastructure/repositorydoubles"
)

func newRestoreCommand(
	backup *doubles.SpyBackupRepository,
	prompter *doubles.SpyPrompter,
) *commands.RestoreCommand {
	factory := func(_ *entities.Settings) repositories.BackupRepository { return backup }
	return commands.NewRestoreCommand(factory, prompter)
}

func restorableManifest() entities.BackupManifest {
	return entities.BackupManifest{
		FormatVersion: entities.ManifestFormatVersion,
		CreatedAt:     time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		ThemeVersion:  "v1.1.0",
		Items: []entities.BackupItem{
			{Path: "src/content", FileCount: 8},
			{Path: "src/config.ts", FileCount: 1},
		},
	}
}

func TestRestoreCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should preview, confirm, and restore the archive", func(t *testing.T) {
		t.Parallel()

		// given
		backup := &doubles.SpyBackupRepository{
			PreviewManifest: restorableManifest(),
			RestoreResult:   []string{"src/content", "src/config.ts"},
		}
		prompter := &doubles.SpyPrompter{Answers: []bool{true}}
		settings := builders.NewSettingsBuilder().BuildSettings()

		// when
		files, err := newRestoreCommand(backup, prompter).Execute(
			context.Background(), settings,
			commands.RestoreOptions{File: "backups/b.tar.gz"},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"src/content", "src/config.ts"}, files)
		assert.Equal(t, []string{"backups/b.tar.gz"}, backup.PreviewedFiles)
		assert.Equal(t, []string{"backups/b.tar.gz"}, backup.RestoredFiles)
		assert.Len(t, prompter.Questions, 1)
	})

	t.Run("should cancel when the user declines", func(t *testing.T) {
		t.Parallel()

		// given
		backup := &doubles.SpyBackupRepository{PreviewManifest: restorableManifest()}
		prompter := &doubles.SpyPrompter{Answers: []bool{false}}
		settings := builders.NewSettingsBuilder().BuildSettings()

		// when
		_, err := newRestoreCommand(backup, prompter).Execute(
			context.Background(), settings,
			commands.RestoreOptions{File: "backups/b.tar.gz"},
		)

		// then
		require.ErrorIs(t, err, commands.ErrRestoreCancelled)
		assert.Empty(t, backup.RestoredFiles)
	})

	t.Run("should default to cancelling on a bare enter", func(t *testing.T) {
		t.Parallel()

		// given: no queued answers, the prompt default decides
		backup := &doubles.SpyBackupRepository{PreviewManifest: restorableManifest()}
		prompter := &doubles.SpyPrompter{}
		settings := builders.NewSettingsBuilder().BuildSettings()

		// when
		_, err := newRestoreCommand(backup, prompter).Execute(
			context.Background(), settings,
			commands.RestoreOptions{File: "backups/b.tar.gz"},
		)

		// then
		require.ErrorIs(t, err, commands.ErrRestoreCancelled)
		assert.Empty(t, backup.RestoredFiles)
	})

	t.Run("should skip the prompt under force", func(t *testing.T) {
		t.Parallel()

		// given
		backup := &doubles.SpyBackupRepository{
			PreviewManifest: restorableManifest(),
			RestoreResult:   []string{"src/content"},
		}
		prompter := &doubles.SpyPrompter{}
		settings := builders.NewSettingsBuilder().BuildSettings()

		// when
		files, err := newRestoreCommand(backup, prompter).Execute(
			context.Background(), settings,
			commands.RestoreOptions{File: "backups/b.tar.gz", Force: true},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"src/content"}, files)
		assert.Empty(t, prompter.Questions)
	})

	t.Run("should limit the restore to the requested paths", func(t *testing.T) {
		t.Parallel()

		// given
		backup := &doubles.SpyBackupRepository{
			PreviewManifest: restorableManifest(),
			RestoreResult:   []string{"src/content"},
		}
		prompter := &doubles.SpyPrompter{}
		settings := builders.NewSettingsBuilder().BuildSettings()

		// when
		_, err := newRestoreCommand(backup, prompter).Execute(
			context.Background(), settings,
			commands.RestoreOptions{
				File:  "backups/b.tar.gz",
				Only:  []string{"src/content"},
				Force: true,
			},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"src/content"}}, backup.RestoredOnly)
	})

	t.Run("should fail before prompting when the preview fails", func(t *testing.T) {
		t.Parallel()

		// given
		backup := &doubles.SpyBackupRepository{PreviewErr: errors.New("not a koharu backup")}
		prompter := &doubles.SpyPrompter{}
		settings := builders.NewSettingsBuilder().BuildSettings()

		// when
		_, err := newRestoreCommand(backup, prompter).Execute(
			context.Background(), settings,
			commands.RestoreOptions{File: "random.tar.gz"},
		)

		// then
		require.ErrorContains(t, err, "not a koharu backup")
		assert.Empty(t, prompter.Questions)
		assert.Empty(t, backup.RestoredFiles)
	})

	t.Run("should propagate restore failures", func(t *testing.T) {
		t.Parallel()

		// given
		backup := &doubles.SpyBackupRepository{
			PreviewManifest: restorableManifest(),
			RestoreErr:      errors.New("archive truncated"),
		}
		prompter := &doubles.SpyPrompter{}
		settings := builders.NewSettingsBuilder().BuildSettings()

		// when
		_, err := newRestoreCommand(backup, prompter).Execute(
			context.Background(), settings,
			commands.RestoreOptions{File: "backups/b.tar.gz", Force: true},
		)

		// then
		require.ErrorContains(t, err, "archive truncated")
	})
}
