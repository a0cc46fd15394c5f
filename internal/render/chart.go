// Package render draws the annotated sunrise/sunset charts and writes the
// SVG and PNG outputs.
package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/sun-chart/internal/domain"
	"github.com/couchcryptid/sun-chart/internal/locale"
)

// Format selects the chart encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Color scheme shared by every language variant.
const (
	sunriseColor    = "FFA500" // warm morning orange
	noonColor       = "FFD700" // midday gold
	sunsetColor     = "DC143C" // deep crimson
	gridColor       = "D3D3D3"
	backgroundColor = "FFFFFF"

	chartDPI    = 100
	strokeWidth = 2.5
)

// ErrEmptySeries is returned when a chart is requested for a year with no
// computed days.
var ErrEmptySeries = errors.New("year series is empty")

// Renderer builds sunrise/sunset charts from a computed year series.
type Renderer struct {
	fonts  *FontRegistry
	width  int
	height int
	logger *slog.Logger
}

// NewRenderer creates a Renderer producing width x height pixel charts.
func NewRenderer(fonts *FontRegistry, width, height int, logger *slog.Logger) *Renderer {
	return &Renderer{
		fonts:  fonts,
		width:  width,
		height: height,
		logger: logger,
	}
}

// Render draws the chart for one language and encodes it to w. location must
// already be localized for the language.
func (r *Renderer) Render(series domain.YearSeries, location string, lang locale.Language, format Format, w io.Writer) error {
	graph, err := r.build(series, location, lang)
	if err != nil {
		return err
	}

	switch format {
	case FormatSVG:
		return graph.Render(chart.SVG, w)
	case FormatPNG:
		return graph.Render(chart.PNG, w)
	}
	return fmt.Errorf("unknown chart format %q", format)
}

func (r *Renderer) build(series domain.YearSeries, location string, lang locale.Language) (*chart.Chart, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	year := series.Year()
	labels := locale.ForLanguage(lang)
	font := r.fonts.ForScript(lang.Script())

	background := drawing.ColorFromHex(backgroundColor)
	grid := drawing.ColorFromHex(gridColor)
	grid.A = 178

	gridStyle := chart.Style{
		StrokeColor: grid,
		StrokeWidth: 0.8,
	}

	graph := &chart.Chart{
		Title:      lang.Title(location, year),
		TitleStyle: chart.Style{FontSize: 16},
		Width:      r.width,
		Height:     r.height,
		DPI:        chartDPI,
		Background: chart.Style{
			FillColor: background,
			Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{FillColor: background},
		Font:   font,
		XAxis: chart.XAxis{
			Name:           labels.XAxis,
			NameStyle:      chart.Style{FontSize: 12},
			TickStyle:      chart.Style{TextRotationDegrees: 45.0},
			Ticks:          monthTicks(year, labels.Months),
			GridLines:      monthGridLines(year),
			GridMajorStyle: gridStyle,
			Range: &chart.ContinuousRange{
				Min: 1,
				Max: float64(domain.DaysInYear(year)),
			},
		},
		YAxis: chart.YAxis{
			Name:           labels.YAxis,
			NameStyle:      chart.Style{FontSize: 12},
			Ticks:          hourTicks(lang),
			GridMajorStyle: gridStyle,
			// Midnight at the top, matching how people read a day.
			Range: &chart.ContinuousRange{
				Min:        0,
				Max:        24,
				Descending: true,
			},
		},
	}

	graph.Series = seriesLines(series, labels)
	if len(graph.Series) == 0 {
		return nil, ErrEmptySeries
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}

	return graph, nil
}

// seriesLines converts the year series into one line per solar event,
// dropping days on which the event did not occur.
func seriesLines(series domain.YearSeries, labels locale.Strings) []chart.Series {
	sunrise := chart.ContinuousSeries{
		Name:  labels.Sunrise,
		Style: chart.Style{StrokeColor: drawing.ColorFromHex(sunriseColor), StrokeWidth: strokeWidth},
	}
	noon := chart.ContinuousSeries{
		Name:  labels.Noon,
		Style: chart.Style{StrokeColor: drawing.ColorFromHex(noonColor), StrokeWidth: strokeWidth},
	}
	sunset := chart.ContinuousSeries{
		Name:  labels.Sunset,
		Style: chart.Style{StrokeColor: drawing.ColorFromHex(sunsetColor), StrokeWidth: strokeWidth},
	}

	for _, day := range series {
		x := float64(day.Date.YearDay())
		if day.Sunrise != nil {
			sunrise.XValues = append(sunrise.XValues, x)
			sunrise.YValues = append(sunrise.YValues, *day.Sunrise)
		}
		if day.Noon != nil {
			noon.XValues = append(noon.XValues, x)
			noon.YValues = append(noon.YValues, *day.Noon)
		}
		if day.Sunset != nil {
			sunset.XValues = append(sunset.XValues, x)
			sunset.YValues = append(sunset.YValues, *day.Sunset)
		}
	}

	var lines []chart.Series
	for _, s := range []chart.ContinuousSeries{sunrise, noon, sunset} {
		if len(s.XValues) > 0 {
			lines = append(lines, s)
		}
	}
	return lines
}

// monthTicks labels the first day of each month with its localized name.
func monthTicks(year int, months [12]string) []chart.Tick {
	ticks := make([]chart.Tick, 0, 12)
	for m := 1; m <= 12; m++ {
		first := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
		ticks = append(ticks, chart.Tick{
			Value: float64(first.YearDay()),
			Label: months[m-1],
		})
	}
	return ticks
}

// monthGridLines marks the 1st and 15th of every month.
func monthGridLines(year int) []chart.GridLine {
	lines := make([]chart.GridLine, 0, 24)
	for m := 1; m <= 12; m++ {
		first := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
		fifteenth := time.Date(year, time.Month(m), 15, 0, 0, 0, 0, time.UTC)
		lines = append(lines,
			chart.GridLine{Value: float64(first.YearDay())},
			chart.GridLine{Value: float64(fifteenth.YearDay())},
		)
	}
	return lines
}

// hourTicks labels every hour from 00:00 through 24:00.
func hourTicks(lang locale.Language) []chart.Tick {
	ticks := make([]chart.Tick, 0, 25)
	for h := 0; h <= 24; h++ {
		ticks = append(ticks, chart.Tick{
			Value: float64(h),
			Label: lang.HourLabel(h),
		})
	}
	return ticks
}
