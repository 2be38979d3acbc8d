//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	"github.com/astro-koharu/koharu/internal/domain/repositories"
)

// SpyBackupRepository implements repositories.BackupRepository as a configurable spy.
type SpyBackupRepository struct {
	// --- Create ---
	CreateResult entities.BackupResult
	CreateErr    error
	CreateCalls  int
	CreateFulls  []bool

	// --- Preview ---
	PreviewManifest entities.BackupManifest
	PreviewErr      error
	PreviewedFiles  []string

	// --- Restore ---
	RestoreResult []string
	RestoreErr    error
	RestoredFiles []string
	RestoredOnly  [][]string
}

var _ repositories.BackupRepository = (*SpyBackupRepository)(nil)

func (b *SpyBackupRepository) Create(
	_ context.Context, full bool,
) (entities.BackupResult, error) {
	b.CreateCalls++
	b.CreateFulls = append(b.CreateFulls, full)
	return b.CreateResult, b.CreateErr
}

func (b *SpyBackupRepository) Preview(file string) (entities.BackupManifest, error) {
	b.PreviewedFiles = append(b.PreviewedFiles, file)
	return b.PreviewManifest, b.PreviewErr
}

func (b *SpyBackupRepository) Restore(
	_ context.Context, file string, only []string,
) ([]string, error) {
	b.RestoredFiles = append(b.RestoredFiles, file)
	b.RestoredOnly = append(b.RestoredOnly, only)
	return b.RestoreResult, b.RestoreErr
}
