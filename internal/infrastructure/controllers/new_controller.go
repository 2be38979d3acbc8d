package controllers

import (
	"context"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/astro-koharu/koharu/internal/domain/commands"
	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// NewController handles the "new" subcommand.
type NewController struct {
	command commands.NewPost
}

// NewNewController creates a new NewController.
func NewNewController(command commands.NewPost) *NewController {
	return &NewController{command: command}
}

// GetBind returns the Cobra command metadata for the new controller.
func (it *NewController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "new <title>",
		Short: "Scaffold a new blog post",
		Long: `Create a Markdown post in the content directory with front matter
filled in. The file name is derived from the title.`,
	}
}

// Execute scaffolds the post.
func (it *NewController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) == 0 {
		logger.Error("a post title is required: koharu new \"My first post\"")
		os.Exit(exitFailure)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		os.Exit(exitFailure)
	}

	draft, _ := cmd.Flags().GetBool("draft")
	dir, _ := cmd.Flags().GetString("dir")

	if _, err := it.command.Execute(ctx, settings, commands.NewPostOptions{
		Title: strings.Join(args, " "),
		Draft: draft,
		Dir:   dir,
	}); err != nil {
		logger.Errorf("Failed to create post: %v", err)
		os.Exit(exitFailure)
	}
}

// AddFlags adds the new-specific flags to the given Cobra command.
func (it *NewController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("draft", false, "Mark the post as a draft")
	cmd.Flags().String("dir", "", "Create the post in this directory instead")
}
