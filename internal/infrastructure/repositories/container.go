package repositories

import (
	"go.uber.org/dig"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	domainRepos "github.com/astro-koharu/koharu/internal/domain/repositories"
	"github.com/astro-koharu/koharu/internal/infrastructure/repositories/backup"
	"github.com/astro-koharu/koharu/internal/infrastructure/repositories/git"
	"github.com/astro-koharu/koharu/internal/infrastructure/repositories/installer"
	ghRelease "github.com/astro-koharu/koharu/internal/infrastructure/repositories/release/github"
	glRelease "github.com/astro-koharu/koharu/internal/infrastructure/repositories/release/gitlab"
	"github.com/astro-koharu/koharu/internal/infrastructure/repositories/terminal"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// The git repository operates on the current working directory.
	if err := container.Provide(func() *git.LocalGitRepository {
		return git.NewLocalGitRepository(".")
	}); err != nil {
		return err
	}
	if err := container.Provide(func(repo *git.LocalGitRepository) domainRepos.GitRepository {
		return repo
	}); err != nil {
		return err
	}

	// Register release registry with all release-notes providers
	if err := container.Provide(func() *ReleaseRegistry {
		reg := NewReleaseRegistry()
		reg.Register("github", ghRelease.NewGitHubReleaseRepository)
		reg.Register("gitlab", glRelease.NewGitLabReleaseRepository)
		return reg
	}); err != nil {
		return err
	}

	// Backups depend on per-run settings, so they go through a factory.
	if err := container.Provide(func() BackupFactory {
		return func(settings *entities.Settings) domainRepos.BackupRepository {
			return backup.NewArchiveBackupRepository(settings)
		}
	}); err != nil {
		return err
	}

	if err := container.Provide(installer.NewNodeInstallerRepository); err != nil {
		return err
	}
	if err := container.Provide(
		func(repo *installer.NodeInstallerRepository) domainRepos.InstallerRepository {
			return repo
		},
	); err != nil {
		return err
	}

	if err := container.Provide(terminal.NewTerminalPrompter); err != nil {
		return err
	}
	if err := container.Provide(func(p *terminal.TerminalPrompter) domainRepos.Prompter {
		return p
	}); err != nil {
		return err
	}

	return nil
}
