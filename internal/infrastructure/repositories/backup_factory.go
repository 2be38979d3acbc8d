package repositories

import (
	"github.com/astro-koharu/koharu/internal/domain/entities"
	domainRepos "github.com/astro-koharu/koharu/internal/domain/repositories"
)

// BackupFactory is a constructor function that creates a BackupRepository
// for the given settings. Settings are loaded per run, so backup
// repositories cannot be container singletons.
type BackupFactory func(settings *entities.Settings) domainRepos.BackupRepository
