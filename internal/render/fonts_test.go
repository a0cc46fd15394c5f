package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sun-chart/internal/locale"
)

func TestLoadFonts_MissingDirectory(t *testing.T) {
	reg := LoadFonts(filepath.Join(t.TempDir(), "does-not-exist"), discardLogger())
	assert.Empty(t, reg.Families())
}

func TestLoadFonts_SkipsUnparseableFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("not a font"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("readme"), 0o644))

	reg := LoadFonts(dir, discardLogger())
	assert.Empty(t, reg.Families())
}

func TestFontRegistry_ForScript_FallsBackToBuiltin(t *testing.T) {
	reg := LoadFonts(t.TempDir(), discardLogger())

	for _, script := range []locale.Script{locale.ScriptDefault, locale.ScriptArabic, locale.ScriptCJK} {
		font := reg.ForScript(script)
		assert.NotNil(t, font, "script %s should fall back to the built-in font", script)
	}
}

func TestFontRegistry_ForScript_UnknownScript(t *testing.T) {
	reg := LoadFonts(t.TempDir(), discardLogger())
	assert.NotNil(t, reg.ForScript(locale.Script("runic")))
}
