//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	settings *entities.Settings
}

// NewSettingsBuilder creates a new settings builder starting from the stock
// astro-koharu defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		settings:    entities.DefaultSettings(),
	}
}

// WithUserContent replaces the protected user-content paths.
func (b *SettingsBuilder) WithUserContent(paths ...string) *SettingsBuilder {
	b.settings.UserContent = paths
	return b
}

// WithUpstream sets the upstream remote name and URL.
func (b *SettingsBuilder) WithUpstream(remote, url string) *SettingsBuilder {
	b.settings.Upstream.Remote = remote
	b.settings.Upstream.URL = url
	return b
}

// WithBranch sets the upstream base branch.
func (b *SettingsBuilder) WithBranch(branch string) *SettingsBuilder {
	b.settings.Upstream.Branch = branch
	return b
}

// WithBackupDir sets the backup directory.
func (b *SettingsBuilder) WithBackupDir(dir string) *SettingsBuilder {
	b.settings.BackupDir = dir
	return b
}

// WithVersionFile sets the version marker file path.
func (b *SettingsBuilder) WithVersionFile(path string) *SettingsBuilder {
	b.settings.VersionFile = path
	return b
}

// WithInstallSkip disables the dependency install step.
func (b *SettingsBuilder) WithInstallSkip() *SettingsBuilder {
	b.settings.Install.Skip = true
	return b
}

// WithInstallManager forces a package manager instead of lockfile detection.
func (b *SettingsBuilder) WithInstallManager(manager string) *SettingsBuilder {
	b.settings.Install.Manager = manager
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	copied := *b.settings
	copied.UserContent = append([]string(nil), b.settings.UserContent...)
	return &copied
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.settings = entities.DefaultSettings()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		settings:    b.BuildSettings(),
	}
}
