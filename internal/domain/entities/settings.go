package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings is the top-level koharu configuration, loaded from koharu.yaml.
// Every field has a working default: a fresh theme clone needs no config
// file at all.
type Settings struct {
	Upstream    UpstreamConfig `yaml:"upstream"`
	UserContent []string       `yaml:"user_content"`
	BackupDir   string         `yaml:"backup_dir"`
	VersionFile string         `yaml:"version_file"`
	ContentDir  string         `yaml:"content_dir"`
	Install     InstallConfig  `yaml:"install"`
}

// UpstreamConfig describes the template repository updates come from.
type UpstreamConfig struct {
	Remote string `yaml:"remote"` // git remote name for the template
	URL    string `yaml:"url"`    // template repository URL
	Branch string `yaml:"branch"` // template base branch
	Token  string `yaml:"token"`  // optional API token: inline, ${ENV_VAR}, or file path
}

// InstallConfig holds dependency-install settings.
type InstallConfig struct {
	Manager string `yaml:"manager"` // overrides lockfile detection: bun, pnpm, yarn, npm
	Skip    bool   `yaml:"skip"`    // never run the install step
}

// DefaultUserContent lists the paths that belong to the blog author rather
// than the theme. They are protected during updates: backed up, excluded
// from clean-mode replacement, and auto-resolved to the local version on
// merge conflict.
var DefaultUserContent = []string{
	"src/content",
	"src/config.ts",
	".env",
	"public/images",
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

var knownManagers = map[string]bool{"bun": true, "pnpm": true, "yarn": true, "npm": true}

// DefaultSettings returns the configuration used when no koharu.yaml exists.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

// NewSettings reads and parses a configuration file, expanding environment
// variables in the token and filling unset fields with defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var s Settings
	if unmarshalErr := yaml.Unmarshal(data, &s); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	s.Upstream.Token = resolveToken(s.Upstream.Token)
	s.applyDefaults()

	if validateErr := s.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &s, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".koharu.yaml",
		".koharu.yml",
		"koharu.yaml",
		"koharu.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func (s *Settings) applyDefaults() {
	if s.Upstream.Remote == "" {
		s.Upstream.Remote = "koharu"
	}
	if s.Upstream.URL == "" {
		s.Upstream.URL = "https://github.com/astro-koharu/astro-koharu.git"
	}
	if s.Upstream.Branch == "" {
		s.Upstream.Branch = "main"
	}
	if len(s.UserContent) == 0 {
		s.UserContent = append([]string(nil), DefaultUserContent...)
	}
	if s.BackupDir == "" {
		s.BackupDir = filepath.Join(".koharu", "backups")
	}
	if s.VersionFile == "" {
		s.VersionFile = ".koharu-version"
	}
	if s.ContentDir == "" {
		s.ContentDir = "src/content/posts"
	}
}

func (s *Settings) validate() error {
	if s.Install.Manager != "" && !knownManagers[s.Install.Manager] {
		return fmt.Errorf(
			"install.manager %q is not supported (use bun, pnpm, yarn, or npm)",
			s.Install.Manager,
		)
	}

	policy := NewConflictPolicy(s.UserContent)
	if len(policy.Paths()) == 0 {
		return errors.New("user_content must contain at least one repository-relative path")
	}

	return nil
}

// ConflictPolicy builds the conflict-resolution policy from the configured
// user-content paths.
func (s *Settings) ConflictPolicy() ConflictPolicy {
	return NewConflictPolicy(s.UserContent)
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
