package render

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/couchcryptid/sun-chart/internal/locale"
)

// fontPreferences lists font families per script, best first. The registry
// walks the list until it finds a loaded family.
var fontPreferences = map[locale.Script][]string{
	locale.ScriptDefault: {
		"IBM Plex Sans",
		"Noto Sans",
		"DejaVu Sans",
		"Arial",
		"Liberation Sans",
		"FreeSans",
	},
	locale.ScriptArabic: {
		"IBM Plex Sans Arabic",
		"Noto Sans Arabic",
		"Amiri",
		"DejaVu Sans",
		"Arial Unicode MS",
		"Arial",
		"Liberation Sans",
		"FreeSans",
	},
	locale.ScriptCJK: {
		"Noto Sans CJK JP",
		"Noto Sans JP",
		"Noto Serif CJK JP",
		"Source Han Sans",
		"Source Han Sans JP",
		"Harano Aji Gothic",
		"Harano Aji Mincho",
		"IBM Plex Sans JP",
		"Droid Sans Japanese",
		"WenQuanYi Zen Hei",
		"Yu Gothic",
		"Meiryo",
		"Droid Sans Fallback",
		"Arial Unicode MS",
		"Noto Sans",
		"IBM Plex Sans",
		"Source Sans Pro",
		"DejaVu Sans",
		"Arial",
		"Liberation Sans",
		"FreeSans",
	},
}

// FontRegistry holds the TrueType fonts bundled with the application,
// indexed by family name.
type FontRegistry struct {
	fonts  map[string]*truetype.Font
	logger *slog.Logger
}

// LoadFonts parses every .ttf file in dir. A missing or empty directory is
// not an error; affected scripts fall back to the built-in font.
func LoadFonts(dir string, logger *slog.Logger) *FontRegistry {
	reg := &FontRegistry{
		fonts:  make(map[string]*truetype.Font),
		logger: logger,
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("fonts directory unavailable", "dir", dir, "error", err)
		return reg
	}

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".ttf") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("could not read font", "file", e.Name(), "error", err)
			continue
		}
		font, err := truetype.Parse(data)
		if err != nil {
			logger.Warn("could not parse font", "file", e.Name(), "error", err)
			continue
		}
		family := font.Name(truetype.NameIDFontFamily)
		if family == "" {
			family = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		reg.fonts[family] = font
		logger.Debug("registered font", "family", family, "file", e.Name())
	}

	if len(reg.fonts) > 0 {
		logger.Info("registered bundled fonts", "count", len(reg.fonts), "dir", dir)
	}
	return reg
}

// Families returns the loaded family names, unordered.
func (r *FontRegistry) Families() []string {
	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	return names
}

// ForScript picks the most preferred loaded font for a script, falling back
// to the renderer's built-in font when none of the preferred families are
// available.
func (r *FontRegistry) ForScript(script locale.Script) *truetype.Font {
	prefs, ok := fontPreferences[script]
	if !ok {
		prefs = fontPreferences[locale.ScriptDefault]
	}
	for _, family := range prefs {
		if font, ok := r.fonts[family]; ok {
			return font
		}
	}

	r.logger.Warn("no preferred font loaded, using built-in font", "script", string(script))
	font, err := chart.GetDefaultFont()
	if err != nil {
		r.logger.Error("built-in font unavailable", "error", err)
		return nil
	}
	return font
}
