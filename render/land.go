package render

import (
	_ "embed"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Coarse continent and major-island outlines, lon/lat in WGS84.
//
//go:embed geodata/land.geojson
var landGeoJSON []byte

var (
	landColor  = color.RGBA{0xf2, 0xef, 0xe6, 0xff}
	coastColor = color.RGBA{0xa8, 0xa2, 0x94, 0xff}
)

var worldLand = mustParseLand(landGeoJSON)

func mustParseLand(data []byte) []orb.Polygon {
	land, err := parseLand(data)
	if err != nil {
		panic(err)
	}
	return land
}

// parseLand flattens a GeoJSON feature collection into its polygons.
func parseLand(data []byte) ([]orb.Polygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("land outlines: %w", err)
	}

	var out []orb.Polygon
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			out = append(out, g)
		case orb.MultiPolygon:
			out = append(out, g...)
		case nil:
			return nil, fmt.Errorf("land outlines: feature %v has no geometry", f.Properties["name"])
		default:
			return nil, fmt.Errorf("land outlines: feature %v is a %s, not a polygon", f.Properties["name"], f.Geometry.GeoJSONType())
		}
	}

	return out, nil
}

// drawLand fills and outlines every land polygon. Holes are painted with
// the even-odd rule.
func drawLand(dc *gg.Context, opts MapOptions, land []orb.Polygon) {
	dc.SetFillRule(gg.FillRuleEvenOdd)
	dc.SetLineWidth(0.75)

	for _, poly := range land {
		for _, ring := range poly {
			if len(ring) < 3 {
				continue
			}
			dc.NewSubPath()
			for i, pt := range ring {
				x, y := opts.Project(pt.Lat(), pt.Lon())
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.ClosePath()
		}

		dc.SetColor(landColor)
		dc.FillPreserve()
		dc.SetColor(coastColor)
		dc.Stroke()
	}

	dc.SetFillRule(gg.FillRuleWinding)
}
