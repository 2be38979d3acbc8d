package controllers

import (
	"go.uber.org/dig"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewUpdateController); err != nil {
		return err
	}
	if err := container.Provide(NewBackupController); err != nil {
		return err
	}
	if err := container.Provide(NewRestoreController); err != nil {
		return err
	}
	if err := container.Provide(NewNewController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	updateController *UpdateController,
	backupController *BackupController,
	restoreController *RestoreController,
	newController *NewController,
) *[]entities.Controller {
	return &[]entities.Controller{
		updateController,
		backupController,
		restoreController,
		newController,
	}
}
