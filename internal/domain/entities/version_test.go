//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

func TestNormalizeVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare version gains the prefix", "1.2.3", "v1.2.3"},
		{"prefixed version is unchanged", "v1.2.3", "v1.2.3"},
		{"empty string stays empty", "", ""},
	}

	for _, test := range tests {
		t.Run("should normalize "+test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, entities.NormalizeVersion(test.in))
		})
	}
}

func TestCompareVersions(t *testing.T) {
	t.Parallel()

	t.Run("should order semver numerically, not lexically", func(t *testing.T) {
		t.Parallel()

		// given
		a, b := "v1.10.0", "v1.9.0"

		// when / then
		assert.Positive(t, entities.CompareVersions(a, b))
		assert.Negative(t, entities.CompareVersions(b, a))
	})

	t.Run("should compare across prefix styles", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, entities.CompareVersions("1.2.0", "v1.2.0"))
	})

	t.Run("should rank a pre-release below its release", func(t *testing.T) {
		t.Parallel()
		assert.Negative(t, entities.CompareVersions("v2.0.0-rc.1", "v2.0.0"))
	})

	t.Run("should fall back to string order for non-semver input", func(t *testing.T) {
		t.Parallel()
		assert.Negative(t, entities.CompareVersions("apple", "banana"))
	})
}

func TestIsDowngrade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current string
		target  string
		want    bool
	}{
		{"older target is a downgrade", "v1.2.0", "v1.1.0", true},
		{"newer target is not", "v1.1.0", "v1.2.0", false},
		{"same version is not", "v1.2.0", "v1.2.0", false},
		{"unknown current is never a downgrade", entities.UnknownVersion, "v1.0.0", false},
		{"unknown target is never a downgrade", "v1.2.0", entities.UnknownVersion, false},
		{"empty current is never a downgrade", "", "v1.0.0", false},
		{"numeric order beats string order", "v1.10.0", "v1.9.0", true},
	}

	for _, test := range tests {
		t.Run("should decide "+test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, entities.IsDowngrade(test.current, test.target))
		})
	}
}

func TestSortVersionsDescending(t *testing.T) {
	t.Parallel()

	t.Run("should sort newest first across prefix styles", func(t *testing.T) {
		t.Parallel()

		// given
		versions := []string{"v1.2.0", "1.10.0", "v0.9.0", "v1.9.1"}

		// when
		entities.SortVersionsDescending(versions)

		// then
		assert.Equal(t, []string{"1.10.0", "v1.9.1", "v1.2.0", "v0.9.0"}, versions)
	})
}
