package entities

import "github.com/spf13/cobra"

// ControllerBind carries the Cobra metadata a controller binds to.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI entrypoint wired into the root command.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string)
}

// FlagBinder is implemented by controllers that register their own flags.
type FlagBinder interface {
	AddFlags(cmd *cobra.Command)
}
