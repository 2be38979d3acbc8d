package internal

import (
	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// AppInternal holds the fully wired application graph the CLI needs.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application context from the DIG container.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered CLI controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
