// Package render draws navigator charts as PNG images.
package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/brokerlens/internal/domain/model"
)

// Default image size in pixels.
const (
	DefaultWidth  = 900
	DefaultHeight = 400

	minPoints = 2
)

// ErrTooFewPoints is returned when a series cannot be drawn as a line.
var ErrTooFewPoints = errors.New("need at least 2 data points")

// RevenueTrendPNG renders the synthetic daily revenue trend of one entry.
// Non-positive sizes fall back to the defaults.
func RevenueTrendPNG(entry model.NavigatorValueEntry, width, height int) ([]byte, error) {
	if len(entry.RevenueTrend) < minPoints {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewPoints, len(entry.RevenueTrend))
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	xValues := make([]float64, len(entry.RevenueTrend))
	ticks := make([]chart.Tick, len(entry.RevenueTrend))
	for i := range entry.RevenueTrend {
		xValues[i] = float64(i + 1)
		ticks[i] = chart.Tick{Value: xValues[i], Label: dayLabel(i, len(entry.RevenueTrend))}
	}

	revenue := chart.ContinuousSeries{
		Name: "Daily Revenue",
		Style: chart.Style{
			StrokeColor: tierColor(entry.ValueScore.Tier),
			StrokeWidth: 2.5,
			DotWidth:    3,
			DotColor:    tierColor(entry.ValueScore.Tier),
		},
		XValues: xValues,
		YValues: entry.RevenueTrend,
	}

	title := entry.Name
	if title == "" {
		title = entry.NavigatorID
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s - %s", title, entry.ValueScore.Label),
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{Ticks: ticks},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{revenue},
	}
	// go-chart refuses a zero-height value range.
	if lo, hi := bounds(entry.RevenueTrend); lo == hi {
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// dayLabel names point i of n counting back from today.
func dayLabel(i, n int) string {
	if back := n - 1 - i; back > 0 {
		return fmt.Sprintf("D-%d", back)
	}
	return "Today"
}

func tierColor(t model.Tier) drawing.Color {
	switch t {
	case model.TierHigh:
		return drawing.ColorFromHex("16a34a") // green-600
	case model.TierMedium:
		return drawing.ColorFromHex("2563eb") // blue-600
	default:
		return drawing.ColorFromHex("dc2626") // red-600
	}
}
