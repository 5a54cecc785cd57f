package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/dotcommander/shelf/internal/models"
)

// Ratings are drawn over this window; the catalog's top records all sit above 4.
const (
	RatingMin = 4.0
	RatingMax = 5.0
)

// ChartFormat selects the file format of an exported chart.
type ChartFormat string

// Chart formats.
const (
	ChartPNG ChartFormat = "png"
	ChartSVG ChartFormat = "svg"
)

const (
	barCells    = 30
	labelWidth  = 32
	chartColor  = "d8780a"
	chartHeight = 520
)

var errNoRecords = errors.New("no records to chart")

// Ranking renders the top records as a horizontal terminal bar chart scaled over
// RatingMin..RatingMax.
func Ranking(kind models.ResourceKind, records []models.Record) string {
	if len(records) == 0 {
		return styleDim.Render(NoResults)
	}
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, styleTitle.Render(fmt.Sprintf("Top %d %ss by rating", len(records), kind.DisplayName())))
	for i, r := range records {
		label := fmt.Sprintf("%2d. %s", i+1, truncate(rankLabel(r), labelWidth-4))
		cells := barLength(r.Rating(), barCells)
		bar := styleBar.Render(strings.Repeat("█", cells)) + strings.Repeat(" ", barCells-cells)
		stats := fmt.Sprintf("%.2f", r.Rating()) + styleDim.Render(fmt.Sprintf("  (%s ratings)", humanize.Comma(r.RatingCount())))
		lines = append(lines, lipgloss.NewStyle().Width(labelWidth).Render(label)+" "+bar+" "+stats)
	}
	return stylePanel.Render(strings.Join(lines, "\n"))
}

// barLength maps rating onto 0..width cells over the rating window.
func barLength(rating float64, width int) int {
	frac := (clampRating(rating) - RatingMin) / (RatingMax - RatingMin)
	return int(math.Round(frac * float64(width)))
}

func clampRating(v float64) float64 {
	return math.Min(math.Max(v, RatingMin), RatingMax)
}

func rankLabel(r models.Record) string {
	if t := r.Title(); t != "" {
		return t
	}
	return r.ID()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// WriteChart draws the ranking as a bar chart image and writes it to w.
func WriteChart(w io.Writer, format ChartFormat, kind models.ResourceKind, records []models.Record) error {
	if len(records) == 0 {
		return errNoRecords
	}
	var provider chart.RendererProvider
	switch format {
	case ChartPNG:
		provider = chart.PNG
	case ChartSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("unknown chart format %q", format)
	}

	barStyle := chart.Style{
		FillColor:   drawing.ColorFromHex(chartColor),
		StrokeColor: drawing.ColorFromHex(chartColor),
		StrokeWidth: 1,
	}
	bars := make([]chart.Value, 0, len(records))
	for _, r := range records {
		bars = append(bars, chart.Value{
			Label: truncate(rankLabel(r), 14),
			Value: clampRating(r.Rating()),
			Style: barStyle,
		})
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("Top %d %ss by rating", len(records), kind.DisplayName()),
		Width:      160 + len(records)*70,
		Height:     chartHeight,
		BarWidth:   40,
		BarSpacing: 30,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: RatingMin, Max: RatingMax},
		},
		Bars: bars,
	}
	return bc.Render(provider, w)
}
