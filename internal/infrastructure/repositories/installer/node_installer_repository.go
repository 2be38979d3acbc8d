// Package installer reinstalls the theme's Node.js dependencies after an
// update, using whichever package manager the project's lockfile points at.
package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// lockfiles maps lockfile names to their package manager, in detection order.
var lockfiles = []struct {
	file    string
	manager string
}{
	{"bun.lockb", "bun"},
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"package-lock.json", "npm"},
}

// NodeInstallerRepository runs "<manager> install" in the project directory.
type NodeInstallerRepository struct{}

// NewNodeInstallerRepository creates a new installer.
func NewNodeInstallerRepository() *NodeInstallerRepository {
	return &NodeInstallerRepository{}
}

// DetectManager picks the package manager from the lockfile present in dir,
// defaulting to npm when none is found.
func (it *NodeInstallerRepository) DetectManager(dir string) string {
	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(dir, lf.file)); err == nil {
			return lf.manager
		}
	}
	return "npm"
}

// Install runs the given package manager's install command, streaming its
// output to the terminal.
func (it *NodeInstallerRepository) Install(ctx context.Context, dir, manager string) error {
	if _, err := exec.LookPath(manager); err != nil {
		return fmt.Errorf(
			"%s not found in PATH; run %q manually after the update", manager, manager+" install",
		)
	}

	cmd := exec.CommandContext(ctx, manager, "install")
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s install failed: %w", manager, err)
	}
	return nil
}
