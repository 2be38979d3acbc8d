package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Settings are loaded per run from koharu.yaml by the controllers, so
	// the entities layer has nothing to provide up front.
	return nil
}
