//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

func TestUpdateOptionsValidate(t *testing.T) {
	t.Parallel()

	t.Run("should reject rebase combined with clean", func(t *testing.T) {
		t.Parallel()

		// given
		opts := entities.UpdateOptions{Rebase: true, Clean: true}

		// when
		err := opts.Validate()

		// then
		require.ErrorIs(t, err, entities.ErrIncompatibleModes)
	})

	t.Run("should accept each mode on its own", func(t *testing.T) {
		t.Parallel()

		for _, opts := range []entities.UpdateOptions{
			{},
			{Rebase: true},
			{Clean: true},
			{CheckOnly: true, DryRun: true, Force: true, SkipBackup: true},
		} {
			assert.NoError(t, opts.Validate())
		}
	})
}

func TestUpdateOptionsStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts entities.UpdateOptions
		want entities.UpdateStrategy
	}{
		{"merge by default", entities.UpdateOptions{}, entities.StrategyMerge},
		{"rebase when requested", entities.UpdateOptions{Rebase: true}, entities.StrategyRebase},
		{"clean when requested", entities.UpdateOptions{Clean: true}, entities.StrategyClean},
	}

	for _, test := range tests {
		t.Run("should pick "+test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, test.opts.Strategy())
		})
	}
}

func TestUpdateOptionsBackupMandatory(t *testing.T) {
	t.Parallel()

	t.Run("should require a backup for history-rewriting modes", func(t *testing.T) {
		t.Parallel()

		assert.False(t, entities.UpdateOptions{}.BackupMandatory())
		assert.False(t, entities.UpdateOptions{SkipBackup: true}.BackupMandatory())
		assert.True(t, entities.UpdateOptions{Rebase: true}.BackupMandatory())
		assert.True(t, entities.UpdateOptions{Clean: true}.BackupMandatory())
		assert.True(t, entities.UpdateOptions{Clean: true, SkipBackup: true}.BackupMandatory())
	})
}

func TestUpdateStrategyString(t *testing.T) {
	t.Parallel()

	t.Run("should name every strategy", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "merge", entities.StrategyMerge.String())
		assert.Equal(t, "rebase", entities.StrategyRebase.String())
		assert.Equal(t, "clean", entities.StrategyClean.String())
	})
}
