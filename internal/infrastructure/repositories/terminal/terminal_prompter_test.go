//go:build unit

package terminal_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-koharu/koharu/internal/infrastructure/repositories/terminal"
)

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		defaultYes bool
		expected   bool
	}{
		{"should accept y", "y\n", false, true},
		{"should accept yes", "yes\n", false, true},
		{"should accept uppercase Y", "Y\n", false, true},
		{"should accept n", "n\n", true, false},
		{"should accept no", "no\n", true, false},
		{"should pick the yes default on a bare enter", "\n", true, true},
		{"should pick the no default on a bare enter", "\n", false, false},
		{"should pick the default for gibberish", "maybe\n", false, false},
		{"should pick the default on EOF", "", true, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			// given
			var out bytes.Buffer
			prompter := terminal.NewTerminalPrompterWith(strings.NewReader(test.input), &out)

			// when
			answer, err := prompter.Confirm("Apply this update?", test.defaultYes)

			// then
			require.NoError(t, err)
			assert.Equal(t, test.expected, answer)
		})
	}

	t.Run("should show the default in the hint", func(t *testing.T) {
		t.Parallel()

		// given
		var out bytes.Buffer
		prompter := terminal.NewTerminalPrompterWith(strings.NewReader("\n"), &out)

		// when
		_, err := prompter.Confirm("Create a backup before updating?", true)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Create a backup before updating? [Y/n] ", out.String())
	})

	t.Run("should hint no as the default for destructive questions", func(t *testing.T) {
		t.Parallel()

		// given
		var out bytes.Buffer
		prompter := terminal.NewTerminalPrompterWith(strings.NewReader("\n"), &out)

		// when
		_, err := prompter.Confirm("Restoring overwrites the current files. Continue?", false)

		// then
		require.NoError(t, err)
		assert.Contains(t, out.String(), "[y/N]")
	})
}
