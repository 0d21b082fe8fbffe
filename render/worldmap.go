// Package render draws what the dashboard shows about a variant: the
// population-frequency world map, a bar chart of the same numbers and a
// spreadsheet of the current listing.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/carbocation/variantatlas/variant"
)

// ErrNoPoints is returned by renderers that have nothing to draw.
var ErrNoPoints = errors.New("render: no population frequencies to draw")

var (
	oceanColor     = color.RGBA{0xe8, 0xf1, 0xf8, 0xff}
	graticuleColor = color.RGBA{0xc4, 0xd4, 0xe2, 0xff}
	equatorColor   = color.RGBA{0x9a, 0xb2, 0xc8, 0xff}
	outlineColor   = color.RGBA{0x40, 0x40, 0x40, 0xff}
	textColor      = color.RGBA{0x20, 0x20, 0x20, 0xff}
)

// MapOptions size the world canvas.
type MapOptions struct {
	Width  int
	Height int

	// MaxRadius is the radius, in pixels, of the circle for the largest
	// frequency on the map.
	MaxRadius float64

	// MinRadius keeps tiny frequencies visible.
	MinRadius float64

	Title string
}

func DefaultMapOptions() MapOptions {
	return MapOptions{
		Width:     960,
		Height:    480,
		MaxRadius: 45,
		MinRadius: 3,
	}
}

func (o MapOptions) normalized() MapOptions {
	def := DefaultMapOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.MaxRadius <= 0 {
		o.MaxRadius = def.MaxRadius
	}
	if o.MinRadius <= 0 || o.MinRadius > o.MaxRadius {
		o.MinRadius = math.Min(def.MinRadius, o.MaxRadius)
	}
	return o
}

// Project converts a latitude/longitude to canvas pixels on an
// equirectangular projection.
func (o MapOptions) Project(lat, lon float64) (x, y float64) {
	o = o.normalized()
	x = (lon + 180) / 360 * float64(o.Width)
	y = (90 - lat) / 180 * float64(o.Height)
	return x, y
}

// Radius is the circle radius for freq, scaled so that largest gets
// MaxRadius. Circle area is proportional to frequency.
func (o MapOptions) Radius(freq, largest float64) float64 {
	o = o.normalized()
	if largest <= 0 || freq <= 0 {
		return o.MinRadius
	}

	r := o.MaxRadius * math.Sqrt(math.Min(freq, largest)/largest)
	return math.Max(o.MinRadius, r)
}

// WorldMap draws one circle per point. Circle area tracks the clamped
// frequency and colour runs along YlOrRd from the smallest to the largest
// frequency shown.
func WorldMap(points []variant.PopulationPoint, opts MapOptions) image.Image {
	opts = opts.normalized()
	dc := baseMap(opts)

	if len(points) == 0 {
		return dc.Image()
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p.Clamped())
		hi = math.Max(hi, p.Clamped())
	}

	// Big circles first so small ones stay on top.
	ordered := append([]variant.PopulationPoint(nil), points...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Clamped() > ordered[j].Clamped()
	})

	for _, p := range ordered {
		x, y := opts.Project(p.Lat, p.Lon)
		r := opts.Radius(p.Clamped(), hi)

		t := 1.0
		if hi > lo {
			t = (p.Clamped() - lo) / (hi - lo)
		}
		c := YlOrRd(t)
		c.A = 0xd9

		dc.DrawCircle(x, y, r)
		dc.SetColor(c)
		dc.FillPreserve()
		dc.SetColor(outlineColor)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	dc.SetColor(textColor)
	for _, p := range points {
		x, y := opts.Project(p.Lat, p.Lon)
		r := opts.Radius(p.Clamped(), hi)
		dc.DrawStringAnchored(p.Region, x, y+r+4, 0.5, 1)
		dc.DrawStringAnchored(FormatPercent(p.Freq), x, y+r+18, 0.5, 1)
	}

	drawColorBar(dc, opts, lo, hi)

	return dc.Image()
}

// EncodeWorldMapPNG writes WorldMap(points, opts) to w as a PNG.
func EncodeWorldMapPNG(w io.Writer, points []variant.PopulationPoint, opts MapOptions) error {
	if len(points) == 0 {
		return ErrNoPoints
	}

	dc := gg.NewContextForImage(WorldMap(points, opts))
	return dc.EncodePNG(w)
}

// CoverageColors maps each research-coverage class to its fill.
var CoverageColors = map[string]color.RGBA{
	variant.CoverageHigh:          {0x21, 0x71, 0xb5, 0xff},
	variant.CoverageRecorded:      {0x6b, 0xae, 0xd6, 0xff},
	variant.CoverageUnderreported: {0xfb, 0x6a, 0x4a, 0xff},
}

// CoverageMap draws the coarse research-coverage regions shown when a
// variant has no frequency data.
func CoverageMap(regions []variant.CoverageRegion, opts MapOptions) image.Image {
	opts = opts.normalized()
	dc := baseMap(opts)

	r := opts.MaxRadius
	for _, region := range regions {
		x, y := opts.Project(region.Lat, region.Lon)

		c, ok := CoverageColors[region.Coverage]
		if !ok {
			c = graticuleColor
		}
		c.A = 0xc0

		dc.DrawCircle(x, y, r)
		dc.SetColor(c)
		dc.FillPreserve()
		dc.SetColor(outlineColor)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(region.Region, x, y+r+4, 0.5, 1)
		dc.DrawStringAnchored(region.Coverage, x, y+r+18, 0.5, 1)
	}

	return dc.Image()
}

// EncodeCoverageMapPNG writes CoverageMap(regions, opts) to w as a PNG.
func EncodeCoverageMapPNG(w io.Writer, regions []variant.CoverageRegion, opts MapOptions) error {
	dc := gg.NewContextForImage(CoverageMap(regions, opts))
	return dc.EncodePNG(w)
}

// baseMap paints the ocean, a 30 degree graticule, the land and the title.
func baseMap(opts MapOptions) *gg.Context {
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(oceanColor)
	dc.Clear()

	dc.SetLineWidth(1)
	dc.SetColor(graticuleColor)
	for lon := -180.0; lon <= 180; lon += 30 {
		x, _ := opts.Project(0, lon)
		dc.DrawLine(x, 0, x, float64(opts.Height))
		dc.Stroke()
	}
	for lat := -90.0; lat <= 90; lat += 30 {
		if lat == 0 {
			continue
		}
		_, y := opts.Project(lat, 0)
		dc.DrawLine(0, y, float64(opts.Width), y)
		dc.Stroke()
	}

	dc.SetColor(equatorColor)
	_, y := opts.Project(0, 0)
	dc.DrawLine(0, y, float64(opts.Width), y)
	dc.Stroke()

	drawLand(dc, opts, worldLand)

	if opts.Title != "" {
		dc.SetColor(textColor)
		dc.DrawStringAnchored(opts.Title, float64(opts.Width)/2, 8, 0.5, 1)
	}

	return dc
}

func drawColorBar(dc *gg.Context, opts MapOptions, lo, hi float64) {
	const (
		barW   = 160
		barH   = 10
		margin = 12
	)

	x0 := float64(margin)
	y0 := float64(opts.Height) - margin - barH - 14

	for i := 0; i < barW; i++ {
		dc.SetColor(YlOrRd(float64(i) / (barW - 1)))
		dc.DrawRectangle(x0+float64(i), y0, 1, barH)
		dc.Fill()
	}

	dc.SetColor(outlineColor)
	dc.DrawRectangle(x0, y0, barW, barH)
	dc.Stroke()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(FormatPercent(lo), x0, y0+barH+2, 0, 1)
	dc.DrawStringAnchored(FormatPercent(hi), x0+barW, y0+barH+2, 1, 1)
}

// FormatPercent renders an allele frequency as a percentage, keeping
// significant digits for very rare alleles.
func FormatPercent(freq float64) string {
	pct := freq * 100
	switch {
	case pct == 0:
		return "0%"
	case math.Abs(pct) < 0.01:
		return fmt.Sprintf("%.2g%%", pct)
	default:
		return fmt.Sprintf("%.2f%%", pct)
	}
}
