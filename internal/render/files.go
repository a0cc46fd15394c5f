package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/sun-chart/internal/domain"
	"github.com/couchcryptid/sun-chart/internal/locale"
)

// filenameUnsafe holds the characters replaced during sanitization. Comma is
// included because localized place names often carry one.
const filenameUnsafe = `<>:"/\|?*,`

// SanitizeName makes a location name safe for use in a filename: unsafe
// characters become underscores and whitespace runs collapse to a single
// underscore.
func SanitizeName(name string) string {
	replaced := strings.Map(func(r rune) rune {
		if strings.ContainsRune(filenameUnsafe, r) {
			return '_'
		}
		return r
	}, name)
	return strings.Join(strings.Fields(replaced), "_")
}

// BaseName composes the filename stem for a chart. English output carries no
// language suffix; other languages append one.
func BaseName(location string, year int, lang locale.Language) string {
	base := fmt.Sprintf("sunrise_sunset_%s_%d", SanitizeName(location), year)
	if lang != locale.English {
		base += "_" + string(lang)
	}
	return base
}

// ChartFiles holds the written output paths for one language.
type ChartFiles struct {
	Language locale.Language
	SVG      string
	PNG      string
}

// WriteFiles renders both encodings of a chart into outDir, creating the
// directory if needed.
func (r *Renderer) WriteFiles(series domain.YearSeries, location string, lang locale.Language, outDir string) (ChartFiles, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return ChartFiles{}, fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	base := BaseName(location, series.Year(), lang)
	files := ChartFiles{
		Language: lang,
		SVG:      filepath.Join(outDir, base+".svg"),
		PNG:      filepath.Join(outDir, base+".png"),
	}

	if err := r.renderToFile(series, location, lang, FormatSVG, files.SVG); err != nil {
		return ChartFiles{}, err
	}
	if err := r.renderToFile(series, location, lang, FormatPNG, files.PNG); err != nil {
		return ChartFiles{}, err
	}
	return files, nil
}

func (r *Renderer) renderToFile(series domain.YearSeries, location string, lang locale.Language, format Format, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := r.Render(series, location, lang, format, f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	r.logger.Info("saved chart", "path", path, "format", string(format), "language", string(lang))
	return nil
}
