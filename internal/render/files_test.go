package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sun-chart/internal/locale"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "spaces", input: "New York", want: "New_York"},
		{name: "comma", input: "Springfield, IL", want: "Springfield__IL"},
		{name: "slashes", input: `a/b\c`, want: "a_b_c"},
		{name: "angle brackets and pipe", input: "a<b>c|d", want: "a_b_c_d"},
		{name: "question and star", input: "what?*", want: "what__"},
		{name: "whitespace runs collapse", input: "  spaced   out ", want: "spaced_out"},
		{name: "arabic untouched", input: "طوكيو", want: "طوكيو"},
		{name: "japanese untouched", input: "東京都", want: "東京都"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.input))
		})
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "sunrise_sunset_Tokyo_2025", BaseName("Tokyo", 2025, locale.English))
	assert.Equal(t, "sunrise_sunset_طوكيو_2025_arabic", BaseName("طوكيو", 2025, locale.Arabic))
	assert.Equal(t, "sunrise_sunset_東京都_2025_japanese", BaseName("東京都", 2025, locale.Japanese))
	assert.Equal(t, "sunrise_sunset_New_York_2024", BaseName("New York", 2024, locale.English))
}

func TestRenderer_WriteFiles(t *testing.T) {
	r := testRenderer(t)
	series := testSeries(t, 2025)
	outDir := t.TempDir()

	files, err := r.WriteFiles(series, "Tokyo", locale.English, outDir)
	require.NoError(t, err)

	assert.Equal(t, locale.English, files.Language)
	assert.Equal(t, filepath.Join(outDir, "sunrise_sunset_Tokyo_2025.svg"), files.SVG)
	assert.Equal(t, filepath.Join(outDir, "sunrise_sunset_Tokyo_2025.png"), files.PNG)

	svg, err := os.ReadFile(files.SVG)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	png, err := os.ReadFile(files.PNG)
	require.NoError(t, err)
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestRenderer_WriteFiles_LanguageSuffix(t *testing.T) {
	r := testRenderer(t)
	series := testSeries(t, 2025)
	outDir := t.TempDir()

	files, err := r.WriteFiles(series, "東京都", locale.Japanese, outDir)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(files.SVG, "_japanese.svg"), "got %s", files.SVG)
	assert.True(t, strings.HasSuffix(files.PNG, "_japanese.png"), "got %s", files.PNG)
}

func TestRenderer_WriteFiles_CreatesOutputDir(t *testing.T) {
	r := testRenderer(t)
	series := testSeries(t, 2025)
	outDir := filepath.Join(t.TempDir(), "nested", "charts")

	_, err := r.WriteFiles(series, "Tokyo", locale.English, outDir)
	require.NoError(t, err)

	info, err := os.Stat(outDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
