// Command validate performs end-to-end integrity checks on the sun time
// computation and rendering stack: agreement between the astral and NOAA
// ephemeris engines, year-series invariants, polar-region containment, and
// chart output well-formedness.
//
// Usage:
//
//	go run ./cmd/validate -year 2025 -tolerance-min 5
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/sun-chart/internal/adapter/astral"
	"github.com/couchcryptid/sun-chart/internal/adapter/noaa"
	"github.com/couchcryptid/sun-chart/internal/domain"
	"github.com/couchcryptid/sun-chart/internal/locale"
	"github.com/couchcryptid/sun-chart/internal/render"
)

// site is a reference position with a known character: polar sites see
// midnight sun and polar night, the rest have a sunrise and sunset every
// single day.
type site struct {
	name     string
	lat, lon float64
	zone     string
	polar    bool
}

var sites = []site{
	{name: "Quito", lat: -0.2201641, lon: -78.5123274, zone: "America/Guayaquil"},
	{name: "Tokyo", lat: 35.6768601, lon: 139.7638947, zone: "Asia/Tokyo"},
	{name: "Sydney", lat: -33.8698439, lon: 151.2082848, zone: "Australia/Sydney"},
	{name: "Anchorage", lat: 61.2163129, lon: -149.894852, zone: "America/Anchorage"},
	{name: "Longyearbyen", lat: 78.2231, lon: 15.6267, zone: "Arctic/Longyearbyen", polar: true},
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	year := flag.Int("year", 0, "calendar year to validate (default: current year)")
	toleranceMin := flag.Float64("tolerance-min", 5, "allowed engine disagreement in minutes")
	flag.Parse()

	if code := run(*year, *toleranceMin); code != 0 {
		os.Exit(code)
	}
}

func run(year int, toleranceMin float64) int {
	if year == 0 {
		year = domain.CurrentYear()
	}

	fmt.Println("=== Sun Time Integrity Validation ===")
	fmt.Printf("Year %d, tolerance %.1f min\n", year, toleranceMin)
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// ── Compute all series up front ──
	astralSeries, err := computeAll(astral.New(), year, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: astral engine: %v\n", err)
		return 1
	}
	noaaSeries, err := computeAll(noaa.New(), year, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: noaa engine: %v\n", err)
		return 1
	}

	// ── Run validation phases ──
	phases := []*phase{
		validateEngineAgreement(astralSeries, noaaSeries, toleranceMin),
		validateSeriesInvariants("astral", astralSeries, year),
		validateSeriesInvariants("noaa", noaaSeries, year),
		validatePolarContainment(astralSeries, noaaSeries),
		validateChartOutput(astralSeries, logger),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Sites: %d, days per engine: %d\n", len(sites), countDays(astralSeries))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func computeAll(eph domain.Ephemeris, year int, logger *slog.Logger) (map[string]domain.YearSeries, error) {
	result := make(map[string]domain.YearSeries, len(sites))
	for _, s := range sites {
		pos := domain.Position{Lat: s.lat, Lon: s.lon, Zone: s.zone}
		series, err := domain.ComputeYear(pos, year, eph, logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		result[s.name] = series
	}
	return result, nil
}

func countDays(sets map[string]domain.YearSeries) int {
	n := 0
	for _, series := range sets {
		n += len(series)
	}
	return n
}

// ── Phase 1: Engine Agreement ──
// The two ephemeris engines must agree within tolerance at non-polar sites.
// The NOAA engine works in UTC calendar days, so near the date line its
// records can describe the neighboring local day; day-to-day drift keeps
// that well inside any reasonable tolerance.

func validateEngineAgreement(astralSets, noaaSets map[string]domain.YearSeries, toleranceMin float64) *phase {
	p := &phase{name: "Phase 1: Engine Agreement (astral vs noaa)"}
	toleranceHours := toleranceMin / 60

	for _, s := range sites {
		if s.polar {
			continue
		}
		a, n := astralSets[s.name], noaaSets[s.name]
		if len(a) != len(n) {
			p.errorf("%s: astral has %d days, noaa has %d", s.name, len(a), len(n))
			continue
		}

		for i := range a {
			date := a[i].Date.Format("2006-01-02")
			comparePresence(p, s.name, date, "sunrise", a[i].Sunrise, n[i].Sunrise, toleranceHours)
			comparePresence(p, s.name, date, "sunset", a[i].Sunset, n[i].Sunset, toleranceHours)
		}
	}
	return p
}

func comparePresence(p *phase, site, date, event string, a, b *float64, toleranceHours float64) {
	switch {
	case a == nil && b == nil:
	case a == nil || b == nil:
		p.errorf("%s %s: %s present in one engine only", site, date, event)
	case math.Abs(*a-*b) > toleranceHours:
		p.errorf("%s %s: %s differs by %.1f min (astral=%s, noaa=%s)",
			site, date, event, math.Abs(*a-*b)*60, domain.FormatHour(*a), domain.FormatHour(*b))
	}
}

// ── Phase 2: Series Invariants ──
// One record per calendar day, ascending without gaps, decimal hours in
// [0, 24), events all present or all absent, and sunrise < noon < sunset.

func validateSeriesInvariants(engine string, sets map[string]domain.YearSeries, year int) *phase {
	p := &phase{name: fmt.Sprintf("Phase 2: Series Invariants (%s)", engine)}

	for _, s := range sites {
		series := sets[s.name]

		if len(series) != domain.DaysInYear(year) {
			p.errorf("%s: expected %d records, got %d", s.name, domain.DaysInYear(year), len(series))
			continue
		}

		checkDates(p, s.name, series, year)
		for i := range series {
			checkDayRecord(p, s.name, &series[i])
		}
	}
	return p
}

func checkDates(p *phase, name string, series domain.YearSeries, year int) {
	first := series[0].Date
	if first.Year() != year || first.Month() != time.January || first.Day() != 1 {
		p.errorf("%s: series starts at %s, not January 1", name, first.Format("2006-01-02"))
	}
	for i := 1; i < len(series); i++ {
		want := series[i-1].Date.AddDate(0, 0, 1)
		got := series[i].Date
		if got.Year() != want.Year() || got.YearDay() != want.YearDay() {
			p.errorf("%s: record %d has date %s, want %s", name, i, got.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
}

func checkDayRecord(p *phase, name string, d *domain.SolarDay) {
	date := d.Date.Format("2006-01-02")

	present := 0
	for _, v := range []*float64{d.Sunrise, d.Noon, d.Sunset} {
		if v == nil {
			continue
		}
		present++
		if *v < 0 || *v >= 24 {
			p.errorf("%s %s: hour %.4f outside [0, 24)", name, date, *v)
		}
	}
	if present != 0 && present != 3 {
		p.errorf("%s %s: %d of 3 events present, want all or none", name, date, present)
	}
	if present == 3 {
		if *d.Sunrise >= *d.Noon {
			p.errorf("%s %s: sunrise %s not before noon %s", name, date, domain.FormatHour(*d.Sunrise), domain.FormatHour(*d.Noon))
		}
		if *d.Noon >= *d.Sunset {
			p.errorf("%s %s: noon %s not before sunset %s", name, date, domain.FormatHour(*d.Noon), domain.FormatHour(*d.Sunset))
		}
	}
}

// ── Phase 3: Polar Containment ──
// Polar sites must show both polar days and normal days, and every record
// must be either fully populated or fully absent so valid + polar covers
// the whole year.

func validatePolarContainment(astralSets, noaaSets map[string]domain.YearSeries) *phase {
	p := &phase{name: "Phase 3: Polar Containment"}

	engines := []struct {
		name string
		sets map[string]domain.YearSeries
	}{
		{name: "astral", sets: astralSets},
		{name: "noaa", sets: noaaSets},
	}

	for _, s := range sites {
		if !s.polar {
			continue
		}
		for _, eng := range engines {
			series := eng.sets[s.name]
			valid, polar := series.ValidSunrises(), series.PolarDays()

			if polar == 0 {
				p.errorf("%s/%s: expected polar days at latitude %.2f, found none", eng.name, s.name, s.lat)
			}
			if valid == 0 {
				p.errorf("%s/%s: expected some normal days in spring and fall, found none", eng.name, s.name)
			}
			if valid+polar != len(series) {
				p.errorf("%s/%s: valid (%d) + polar (%d) != %d days", eng.name, s.name, valid, polar, len(series))
			}
		}
	}
	return p
}

// ── Phase 4: Chart Output ──
// Every language renders to well-formed SVG and PNG.

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func validateChartOutput(astralSets map[string]domain.YearSeries, logger *slog.Logger) *phase {
	p := &phase{name: "Phase 4: Chart Output (SVG/PNG)"}

	renderer := render.NewRenderer(render.LoadFonts("fonts", logger), 1400, 800, logger)
	series := astralSets["Tokyo"]

	for _, lang := range locale.All() {
		var svg bytes.Buffer
		if err := renderer.Render(series, "Tokyo", lang, render.FormatSVG, &svg); err != nil {
			p.errorf("%s SVG: %v", lang.DisplayName(), err)
		} else {
			if !bytes.Contains(svg.Bytes(), []byte("<svg")) || !bytes.Contains(svg.Bytes(), []byte("</svg>")) {
				p.errorf("%s SVG: output is not a complete SVG document", lang.DisplayName())
			}
			if svg.Len() < 1024 {
				p.errorf("%s SVG: suspiciously small output (%d bytes)", lang.DisplayName(), svg.Len())
			}
		}

		var png bytes.Buffer
		if err := renderer.Render(series, "Tokyo", lang, render.FormatPNG, &png); err != nil {
			p.errorf("%s PNG: %v", lang.DisplayName(), err)
		} else if !bytes.HasPrefix(png.Bytes(), pngMagic) {
			p.errorf("%s PNG: output missing PNG signature", lang.DisplayName())
		}
	}
	return p
}
