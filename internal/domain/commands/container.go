package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewUpdateCommand); err != nil {
		return err
	}
	if err := container.Provide(NewBackupCommand); err != nil {
		return err
	}
	if err := container.Provide(NewRestoreCommand); err != nil {
		return err
	}
	if err := container.Provide(NewNewPostCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *UpdateCommand) Update {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *BackupCommand) Backup {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *RestoreCommand) Restore {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *NewPostCommand) NewPost {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
