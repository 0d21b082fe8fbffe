package render

import (
	"image/color"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/carbocation/variantatlas/variant"
)

// FrequencyBars writes a PNG bar chart of the points' frequencies, in the
// order given. Bars are clamped to 1 like the map circles.
func FrequencyBars(w io.Writer, points []variant.PopulationPoint) error {
	if len(points) == 0 {
		return ErrNoPoints
	}

	yMax := 0.0
	for _, p := range points {
		if p.Clamped() > yMax {
			yMax = p.Clamped()
		}
	}
	if yMax == 0 {
		return ErrNoPoints
	}

	bars := make([]chart.Value, 0, len(points))
	for _, p := range points {
		bars = append(bars, chart.Value{
			Label: p.Region,
			Value: p.Clamped(),
			Style: chart.Style{
				FillColor:   drawingColor(YlOrRd(p.Clamped() / yMax)),
				StrokeColor: drawingColor(outlineColor),
				StrokeWidth: 1,
			},
		})
	}

	const (
		barWidth   = 60
		barSpacing = 30
	)

	graph := chart.BarChart{
		Title:  "Allele frequency by population",
		Width:  len(bars)*(barWidth+barSpacing) + 160,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: yMax * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatPercent(f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	return graph.Render(chart.PNG, w)
}

func drawingColor(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
