// Command gencharts renders reference charts for a built-in set of cities
// without touching the network. It runs the real computation and rendering
// paths, so the output doubles as fixtures for eyeballing font and shaping
// changes, and the printed stats feed test assertions.
//
// Usage:
//
//	go run ./cmd/gencharts -out output/reference -year 2025 -json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/sun-chart/internal/adapter/astral"
	"github.com/couchcryptid/sun-chart/internal/adapter/noaa"
	"github.com/couchcryptid/sun-chart/internal/domain"
	"github.com/couchcryptid/sun-chart/internal/locale"
	"github.com/couchcryptid/sun-chart/internal/render"
)

type city struct {
	name       string
	lat, lon   float64
	zone       string
	localNames map[string]string
}

var cities = []city{
	{name: "Quito", lat: -0.2201641, lon: -78.5123274, zone: "America/Guayaquil"},
	{name: "Tokyo", lat: 35.6768601, lon: 139.7638947, zone: "Asia/Tokyo",
		localNames: map[string]string{"en": "Tokyo", "ja": "東京都", "ar": "طوكيو"}},
	{name: "Cairo", lat: 30.0443879, lon: 31.2357257, zone: "Africa/Cairo",
		localNames: map[string]string{"en": "Cairo", "ar": "القاهرة", "ja": "カイロ"}},
	{name: "Sydney", lat: -33.8698439, lon: 151.2082848, zone: "Australia/Sydney",
		localNames: map[string]string{"en": "Sydney", "ja": "シドニー", "ar": "سيدني"}},
	{name: "Longyearbyen", lat: 78.2231, lon: 15.6267, zone: "Arctic/Longyearbyen"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "output/reference", "output directory for chart files")
	year := flag.Int("year", 0, "calendar year (default: current year)")
	engine := flag.String("ephemeris", "astral", "ephemeris engine: astral or noaa")
	langsFlag := flag.String("langs", "english,arabic,japanese", "comma-separated chart languages")
	dumpJSON := flag.Bool("json", false, "also write each computed series as JSON")
	fontsDir := flag.String("fonts", "fonts", "directory of .ttf fonts for PNG text")
	flag.Parse()

	chartYear := *year
	if chartYear == 0 {
		chartYear = domain.CurrentYear()
	}

	var eph domain.Ephemeris
	switch *engine {
	case "astral":
		eph = astral.New()
	case "noaa":
		eph = noaa.New()
	default:
		return fmt.Errorf("unknown ephemeris %q", *engine)
	}

	var languages []locale.Language
	for _, name := range strings.Split(*langsFlag, ",") {
		lang, err := locale.Parse(name)
		if err != nil {
			return err
		}
		languages = append(languages, lang)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	fonts := render.LoadFonts(*fontsDir, logger)
	renderer := render.NewRenderer(fonts, 1400, 800, logger)

	var results []cityResult
	for _, c := range cities {
		loc := &domain.Location{Name: c.name, Lat: c.lat, Lon: c.lon, Zone: c.zone, LocalNames: c.localNames}

		series, err := domain.ComputeYear(loc.Position(), chartYear, eph, logger)
		if err != nil {
			return fmt.Errorf("compute %s: %w", c.name, err)
		}
		log.Printf("%s: %d days, %d valid sunrises, %d polar days",
			c.name, len(series), series.ValidSunrises(), series.PolarDays())

		if series.ValidSunrises() == 0 {
			log.Printf("%s: no usable data, skipping charts", c.name)
		} else {
			for _, lang := range languages {
				files, err := renderer.WriteFiles(series, loc.LocalizedName(string(lang)), lang, *outDir)
				if err != nil {
					return fmt.Errorf("render %s (%s): %w", c.name, lang.DisplayName(), err)
				}
				log.Printf("wrote %s", files.SVG)
				log.Printf("wrote %s", files.PNG)
			}
		}

		if *dumpJSON {
			path := filepath.Join(*outDir, fmt.Sprintf("%s_%d.json", render.SanitizeName(c.name), chartYear))
			if err := writeJSON(path, series); err != nil {
				return fmt.Errorf("writing series for %s: %w", c.name, err)
			}
			log.Printf("wrote %s", path)
		}

		results = append(results, cityResult{name: c.name, series: series})
	}

	printStats(results, chartYear)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type cityResult struct {
	name   string
	series domain.YearSeries
}

func printStats(results []cityResult, year int) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	for _, r := range results {
		fmt.Printf("\n%s (%d):\n", r.name, year)
		fmt.Printf("  Days: %d, valid sunrises: %d, polar days: %d\n",
			len(r.series), r.series.ValidSunrises(), r.series.PolarDays())
		printExtremes(r.series)
	}
}

// printExtremes reports the earliest sunrise, latest sunset, and longest day
// of a series, skipping days without sun events.
func printExtremes(series domain.YearSeries) {
	var earliest, latest, longest *domain.SolarDay
	for i := range series {
		d := &series[i]
		if d.Sunrise == nil || d.Sunset == nil {
			continue
		}
		if earliest == nil || *d.Sunrise < *earliest.Sunrise {
			earliest = d
		}
		if latest == nil || *d.Sunset > *latest.Sunset {
			latest = d
		}
		if longest == nil || *d.Sunset-*d.Sunrise > *longest.Sunset-*longest.Sunrise {
			longest = d
		}
	}
	if earliest == nil {
		return
	}

	const dateFmt = "2006-01-02"
	fmt.Printf("  Earliest sunrise: %s on %s\n", domain.FormatHour(*earliest.Sunrise), earliest.Date.Format(dateFmt))
	fmt.Printf("  Latest sunset: %s on %s\n", domain.FormatHour(*latest.Sunset), latest.Date.Format(dateFmt))
	fmt.Printf("  Longest day: %s (sunrise %s, sunset %s) on %s\n",
		domain.FormatHour(*longest.Sunset-*longest.Sunrise),
		domain.FormatHour(*longest.Sunrise), domain.FormatHour(*longest.Sunset),
		longest.Date.Format(dateFmt))
}
