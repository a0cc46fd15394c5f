// Command sunchart generates sunrise and sunset charts for a place.
//
// It prompts for a city name or coordinates (or takes -place), resolves the
// location through Nominatim, computes a full year of sun times, and writes
// annotated SVG and PNG charts for each configured language.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/couchcryptid/sun-chart/internal/adapter/astral"
	"github.com/couchcryptid/sun-chart/internal/adapter/noaa"
	"github.com/couchcryptid/sun-chart/internal/adapter/nominatim"
	"github.com/couchcryptid/sun-chart/internal/adapter/tzlookup"
	"github.com/couchcryptid/sun-chart/internal/config"
	"github.com/couchcryptid/sun-chart/internal/domain"
	"github.com/couchcryptid/sun-chart/internal/locale"
	"github.com/couchcryptid/sun-chart/internal/observability"
	"github.com/couchcryptid/sun-chart/internal/pipeline"
	"github.com/couchcryptid/sun-chart/internal/render"
)

const banner = `
╔══════════════════════════════════════════════════════════════╗
║         Sunrise to Sunset Chart Generator                    ║
║         Generate beautiful sun time visualizations           ║
╚══════════════════════════════════════════════════════════════╝
`

func main() {
	os.Exit(run())
}

func run() int {
	place := flag.String("place", "", "city name or coordinates, skips the interactive prompt")
	year := flag.Int("year", 0, "calendar year to chart (default: current year)")
	out := flag.String("out", "", "output directory for chart files (default: OUTPUT_DIR)")
	langs := flag.String("langs", "", "comma-separated chart languages (default: LANGUAGES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	if *langs != "" {
		cfg.Languages = strings.Split(*langs, ",")
	}

	// Interactive use wants a quiet text logger unless explicitly overridden.
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "warn"
	}
	if os.Getenv("LOG_FORMAT") == "" {
		cfg.LogFormat = "text"
	}
	logger := observability.NewLogger(cfg)

	languages := make([]locale.Language, 0, len(cfg.Languages))
	for _, name := range cfg.Languages {
		lang, err := locale.Parse(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		languages = append(languages, lang)
	}

	chartYear := *year
	if chartYear == 0 {
		chartYear = domain.CurrentYear()
	}
	if chartYear < 1 || chartYear > 9999 {
		fmt.Fprintf(os.Stderr, "Error: invalid year %d.\n", chartYear)
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n\nOperation cancelled by user.")
		os.Exit(130)
	}()

	var ephemeris domain.Ephemeris
	switch cfg.Ephemeris {
	case "noaa":
		ephemeris = noaa.New()
	default:
		ephemeris = astral.New()
	}

	geocoder := nominatim.NewClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.NominatimTimeout, logger)
	fonts := render.LoadFonts(cfg.FontsDir, logger)
	renderer := render.NewRenderer(fonts, cfg.ChartWidth, cfg.ChartHeight, logger)
	metrics := observability.NewMetrics()

	gen := pipeline.New(geocoder, tzlookup.New(), ephemeris, renderer, cfg.OutputDir, languages, logger, metrics)

	fmt.Print(banner)

	scanner := bufio.NewScanner(os.Stdin)

	input := strings.TrimSpace(*place)
	if input == "" {
		var ok bool
		input, ok = promptLine(scanner, "Enter city name or coordinates (lat, lon): ")
		if !ok {
			fmt.Println("\nOperation cancelled by user.")
			return 0
		}
	}
	if input == "" {
		fmt.Println("Error: No input provided.")
		return 1
	}

	fmt.Println("\nResolving location...")

	loc, matches, err := gen.Resolve(context.Background(), input)
	switch {
	case errors.Is(err, domain.ErrAmbiguousLocation):
		loc = selectLocation(scanner, matches)
		if loc == nil {
			fmt.Println("No location selected. Exiting.")
			return 0
		}
	case errors.Is(err, domain.ErrLocationNotFound):
		fmt.Printf("Error: Could not find location '%s'.\n", input)
		fmt.Println("Please check the spelling or try using coordinates (lat, lon).")
		return 1
	case err != nil:
		fmt.Printf("\nError: %v\n", err)
		fmt.Println("Please check your input and try again.")
		return 1
	}

	fmt.Printf("\n✓ Location: %s\n", loc)
	fmt.Printf("  Coordinates: (%.4f, %.4f)\n", loc.Lat, loc.Lon)
	fmt.Printf("  Timezone: %s\n", loc.Zone)
	printToday(gen, loc)

	fmt.Printf("\nCalculating sunrise and sunset times for %d...\n", chartYear)

	series, err := gen.ComputeYear(loc.Position(), chartYear)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		fmt.Println("Please check your input and try again.")
		return 1
	}

	displayName := loc.LocalizedName(string(locale.English))
	valid := series.ValidSunrises()
	if valid == 0 {
		fmt.Printf("Error: Could not calculate sun times for %s.\n", displayName)
		fmt.Println("This location may be in a polar region where the sun doesn't rise/set regularly.")
		return 1
	}
	fmt.Printf("✓ Calculated sun times for %d days (%d with valid data)\n", len(series), valid)

	names := make([]string, len(languages))
	for i, lang := range languages {
		names[i] = lang.DisplayName()
	}
	fmt.Printf("\nGenerating charts in %s...\n", joinNames(names))

	files := make([]render.ChartFiles, 0, len(languages))
	for _, lang := range languages {
		fmt.Printf("  Generating %s version...\n", lang.DisplayName())
		cf, err := gen.LanguageCharts(series, loc, lang)
		if err != nil {
			fmt.Printf("\nError: %v\n", err)
			return 1
		}
		files = append(files, cf)
	}

	line := strings.Repeat("=", 70)
	fmt.Println("\n" + line)
	fmt.Println("✓ Charts generated successfully!")
	fmt.Println(line)
	for _, f := range files {
		fmt.Printf("\n%s:\n", f.Language.DisplayName())
		fmt.Printf("  SVG: %s\n", f.SVG)
		fmt.Printf("  PNG: %s\n", f.PNG)
	}
	fmt.Println(line)

	return 0
}

// printToday shows today's sunrise and sunset for the location when the sun
// rises and sets there at all.
func printToday(gen *pipeline.Generator, loc *domain.Location) {
	tz, err := time.LoadLocation(loc.Zone)
	if err != nil {
		return
	}
	rise, set, err := gen.ComputeDay(loc.Position(), domain.Today(tz))
	if err != nil {
		return
	}
	if !rise.IsZero() {
		fmt.Printf("  Today's sunrise: %s\n", rise.Format("15:04"))
	}
	if !set.IsZero() {
		fmt.Printf("  Today's sunset:  %s\n", set.Format("15:04"))
	}
}

// promptLine prints msg and reads one trimmed line. ok is false when stdin
// is closed.
func promptLine(scanner *bufio.Scanner, msg string) (string, bool) {
	fmt.Print(msg)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// selectLocation shows a numbered menu and reads a choice. Returns nil when
// the user quits.
func selectLocation(scanner *bufio.Scanner, locations []domain.Location) *domain.Location {
	if len(locations) == 0 {
		return nil
	}

	fmt.Println("\nMultiple locations found. Please select one:")
	fmt.Println(strings.Repeat("-", 70))
	for i, loc := range locations {
		fmt.Printf("%d. %s\n", i+1, loc)
		fmt.Printf("   Coordinates: (%.4f, %.4f)\n", loc.Lat, loc.Lon)
	}
	fmt.Println(strings.Repeat("-", 70))

	for {
		choice, ok := promptLine(scanner, fmt.Sprintf("\nEnter your choice (1-%d), or 'q' to quit: ", len(locations)))
		if !ok || strings.EqualFold(choice, "q") {
			return nil
		}

		n, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Println("Invalid input. Please enter a number or 'q' to quit.")
			continue
		}
		if n < 1 || n > len(locations) {
			fmt.Printf("Please enter a number between 1 and %d.\n", len(locations))
			continue
		}
		return &locations[n-1]
	}
}

// joinNames renders a human list: "English", "English and Arabic",
// "English, Arabic, and Japanese".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}
