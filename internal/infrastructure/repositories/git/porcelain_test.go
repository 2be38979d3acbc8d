//go:build unit

package git_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astro-koharu/koharu/internal/infrastructure/repositories/git"
)

func TestParsePorcelainStatus(t *testing.T) {
	t.Parallel()

	t.Run("should extract paths from mixed status lines", func(t *testing.T) {
		t.Parallel()

		// given
		out := " M src/config.ts\n" +
			"A  src/content/posts/new.md\n" +
			"?? notes.txt\n" +
			"D  public/favicon.ico\n"

		// when
		files := git.ParsePorcelainStatus(out)

		// then
		assert.Equal(t, []string{
			"src/config.ts",
			"src/content/posts/new.md",
			"notes.txt",
			"public/favicon.ico",
		}, files)
	})

	t.Run("should keep the new name of a rename", func(t *testing.T) {
		t.Parallel()

		// given
		out := "R  src/old-name.md -> src/new-name.md\n"

		// when
		files := git.ParsePorcelainStatus(out)

		// then
		assert.Equal(t, []string{"src/new-name.md"}, files)
	})

	t.Run("should unquote paths with special characters", func(t *testing.T) {
		t.Parallel()

		// given
		out := "?? \"src/content/posts/weird name.md\"\n"

		// when
		files := git.ParsePorcelainStatus(out)

		// then
		assert.Equal(t, []string{"src/content/posts/weird name.md"}, files)
	})

	t.Run("should return nothing for a clean tree", func(t *testing.T) {
		t.Parallel()

		// when
		files := git.ParsePorcelainStatus("")

		// then
		assert.Empty(t, files)
	})

	t.Run("should ignore short garbage lines", func(t *testing.T) {
		t.Parallel()

		// when
		files := git.ParsePorcelainStatus("M\n\n ??\n")

		// then
		assert.Empty(t, files)
	})
}

func TestParseNameList(t *testing.T) {
	t.Parallel()

	t.Run("should split and trim one path per line", func(t *testing.T) {
		t.Parallel()

		// given
		out := "src/config.ts\n  src/layouts/Base.astro  \n\n\"quoted path.md\"\n"

		// when
		files := git.ParseNameList(out)

		// then
		assert.Equal(t, []string{
			"src/config.ts",
			"src/layouts/Base.astro",
			"quoted path.md",
		}, files)
	})

	t.Run("should return nothing for empty output", func(t *testing.T) {
		t.Parallel()

		// when
		files := git.ParseNameList("\n\n")

		// then
		assert.Empty(t, files)
	})
}
