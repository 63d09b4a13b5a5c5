package palette

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurdabos/countries-visited/internal/testutil"
)

func TestLoadParsesPalettes(t *testing.T) {
	set := Load(filepath.Join("testdata", "palettes.json"), testutil.NopLogger())

	require.Contains(t, set.Palettes, "voyager")
	assert.Equal(t, []string{"#16697a", "#7ebce6", "#ffee00"}, set.Palettes["voyager"])

	// Explicit names win; hexes are normalized with a leading '#'
	assert.Equal(t, "Caribbean Current", set.ColorInfo["#16697a"])
	assert.Equal(t, "Maya Blue", set.ColorInfo["#7ebce6"])

	// No name, non-graduated palette: generic fallback
	assert.Equal(t, "Color #ffee00", set.ColorInfo["#ffee00"])
}

func TestLoadDerivesShadeNames(t *testing.T) {
	set := Load(filepath.Join("testdata", "palettes.json"), testutil.NopLogger())

	// Low positions are dark, high are light, the middle is medium. The
	// exact cutoffs are cosmetic, so only clearly-interior positions are
	// pinned here.
	assert.Equal(t, "Dark Teal", set.ColorInfo["#030f11"])
	assert.Equal(t, "Medium Teal", set.ColorInfo["#19778a"])
	assert.Equal(t, "Light Teal", set.ColorInfo["#eef9fc"])
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	set := Load(filepath.Join(t.TempDir(), "nope.json"), testutil.NopLogger())

	assert.Empty(t, set.Palettes)
	assert.Empty(t, set.ColorInfo)
	assert.Empty(t, set.AllColors())
}

func TestLoadMalformedFileReturnsEmpty(t *testing.T) {
	set := Load(filepath.Join("testdata", "invalid.json"), testutil.NopLogger())

	assert.Empty(t, set.Palettes)
	assert.Empty(t, set.ColorInfo)
}

func TestAllColorsSortedByLabel(t *testing.T) {
	set := Load(filepath.Join("testdata", "palettes.json"), testutil.NopLogger())

	choices := set.AllColors()
	require.NotEmpty(t, choices)
	for i := 1; i < len(choices); i++ {
		assert.LessOrEqual(t, choices[i-1].Label, choices[i].Label)
	}
}

func TestHexesFlattensAllPalettes(t *testing.T) {
	set := Load(filepath.Join("testdata", "palettes.json"), testutil.NopLogger())

	hexes := set.Hexes()
	assert.Len(t, hexes, 8)
	assert.Contains(t, hexes, "#16697a")
	assert.Contains(t, hexes, "#030f11")
}

func TestNameLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#7ebce6", "Maya Blue"},
		{"7ebce6", "Maya Blue"},
		{"#7EBCE6", "Maya Blue"},
		{"7EBCE6", "Maya Blue"},
		{"#16697a", "Caribbean Current"},
		{"#123456", "#123456"}, // unknown, returned unchanged
		{"123456", "123456"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Name(tt.in), "Name(%q)", tt.in)
	}
}
