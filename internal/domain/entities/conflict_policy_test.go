//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

func TestConflictPolicyIsUserContent(t *testing.T) {
	t.Parallel()

	policy := entities.NewConflictPolicy([]string{
		"src/content",
		"./public/images/",
		"astro.config.mjs",
	})

	tests := []struct {
		name string
		file string
		want bool
	}{
		{"file below a configured directory", "src/content/posts/hello.md", true},
		{"directory itself", "src/content", true},
		{"trailing-slash entry is treated as a directory", "public/images/cat.png", true},
		{"exact file entry", "astro.config.mjs", true},
		{"sibling with the entry as name prefix", "src/contents/other.md", false},
		{"theme code", "src/layouts/Base.astro", false},
		{"backslash separators are normalized", "src\\content\\posts\\win.md", true},
		{"empty path", "", false},
	}

	for _, test := range tests {
		t.Run("should match "+test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, policy.IsUserContent(test.file))
		})
	}
}

func TestConflictPolicyResolve(t *testing.T) {
	t.Parallel()

	t.Run("should partition conflicts and sort both sides", func(t *testing.T) {
		t.Parallel()

		// given
		policy := entities.NewConflictPolicy([]string{"src/content", "public"})
		conflicts := []string{
			"src/layouts/Base.astro",
			"src/content/posts/zebra.md",
			"package.json",
			"public/favicon.ico",
			"src/content/posts/alpha.md",
		}

		// when
		auto, manual := policy.Resolve(conflicts)

		// then
		assert.Equal(t, []string{
			"public/favicon.ico",
			"src/content/posts/alpha.md",
			"src/content/posts/zebra.md",
		}, auto)
		assert.Equal(t, []string{
			"package.json",
			"src/layouts/Base.astro",
		}, manual)
	})

	t.Run("should leave everything manual with no user content configured", func(t *testing.T) {
		t.Parallel()

		// given
		policy := entities.NewConflictPolicy(nil)

		// when
		auto, manual := policy.Resolve([]string{"src/content/posts/hello.md"})

		// then
		assert.Empty(t, auto)
		assert.Equal(t, []string{"src/content/posts/hello.md"}, manual)
	})
}

func TestNewConflictPolicy(t *testing.T) {
	t.Parallel()

	t.Run("should drop empty and escaping entries", func(t *testing.T) {
		t.Parallel()

		// given
		policy := entities.NewConflictPolicy([]string{
			"",
			"  ",
			".",
			"/",
			"../outside",
			"src/content/",
			"./public",
		})

		// when
		paths := policy.Paths()

		// then
		assert.Equal(t, []string{"src/content", "public"}, paths)
	})
}
