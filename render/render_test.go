package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/carbocation/variantatlas/variant"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func samplePoints() []variant.PopulationPoint {
	return variant.Project(&variant.Record{
		RSID:  variant.NewRSID(113993960),
		AFEas: variant.NewFrequency(0.002),
		AFNfe: variant.NewFrequency(0.015),
		AFOth: variant.NewFrequency(1.4),
	})
}

func TestYlOrRd(t *testing.T) {
	require.Equal(t, ylOrRd[0], YlOrRd(0))
	require.Equal(t, ylOrRd[len(ylOrRd)-1], YlOrRd(1))
	require.Equal(t, YlOrRd(1), YlOrRd(7))
	require.Equal(t, YlOrRd(0), YlOrRd(-1))

	// Darker as t grows
	prev := 3 * 255
	for i := 0; i <= 10; i++ {
		c := YlOrRd(float64(i) / 10)
		sum := int(c.R) + int(c.G) + int(c.B)
		require.LessOrEqual(t, sum, prev)
		prev = sum
	}

	require.Equal(t, "#ffffcc", Hex(YlOrRd(0)))
}

func TestRadius(t *testing.T) {
	opts := DefaultMapOptions()

	require.Equal(t, 45.0, opts.Radius(1, 1))
	require.InDelta(t, 22.5, opts.Radius(0.25, 1), 1e-9)
	require.Equal(t, opts.MinRadius, opts.Radius(0.0001, 1))
	require.Equal(t, opts.MinRadius, opts.Radius(0, 1))
}

func TestProject(t *testing.T) {
	opts := MapOptions{Width: 360, Height: 180}

	x, y := opts.Project(0, 0)
	require.Equal(t, 180.0, x)
	require.Equal(t, 90.0, y)

	x, y = opts.Project(90, -180)
	require.Equal(t, 0.0, x)
	require.Equal(t, 0.0, y)
}

func TestWorldMap(t *testing.T) {
	opts := DefaultMapOptions()
	points := samplePoints()
	require.Len(t, points, 3)

	img := WorldMap(points, opts)
	require.Equal(t, image.Rect(0, 0, opts.Width, opts.Height), img.Bounds())

	// The largest frequency is painted in the darkest ramp colour.
	var oth variant.PopulationPoint
	for _, p := range points {
		if p.Population == variant.Other {
			oth = p
		}
	}
	x, y := opts.Project(oth.Lat, oth.Lon)
	c := color.RGBAModel.Convert(img.At(int(x), int(y))).(color.RGBA)
	require.NotEqual(t, oceanColor, c)
	require.Greater(t, int(c.R), int(c.G)+50)

	var buf bytes.Buffer
	require.NoError(t, EncodeWorldMapPNG(&buf, points, opts))
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), decoded.Bounds())
}

func pixel(img image.Image, opts MapOptions, lat, lon float64) color.RGBA {
	x, y := opts.Project(lat, lon)
	return color.RGBAModel.Convert(img.At(int(x), int(y))).(color.RGBA)
}

func TestBaseMapLand(t *testing.T) {
	opts := DefaultMapOptions()
	img := WorldMap(nil, opts)

	// Central Africa, the Gobi, the Amazon and central Australia are land.
	for _, ll := range [][2]float64{{5, 20}, {43, 105}, {-5, -60}, {-25, 133}} {
		c := pixel(img, opts, ll[0], ll[1])
		require.NotEqual(t, oceanColor, c, "%v", ll)
		require.Equal(t, landColor, c, "%v", ll)
	}

	// South Atlantic and central Pacific are not.
	for _, ll := range [][2]float64{{-40, -20}, {10, -140}} {
		require.Equal(t, oceanColor, pixel(img, opts, ll[0], ll[1]), "%v", ll)
	}
}

func TestParseLand(t *testing.T) {
	require.NotEmpty(t, worldLand)

	for _, poly := range worldLand {
		require.NotEmpty(t, poly)
		outer := poly[0]
		require.GreaterOrEqual(t, len(outer), 4)
		require.Equal(t, outer[0], outer[len(outer)-1])
	}

	_, err := parseLand([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":"x"},"geometry":{"type":"Point","coordinates":[0,0]}}]}`))
	require.Error(t, err)

	_, err = parseLand([]byte(`not json`))
	require.Error(t, err)
}

func TestWorldMapEmpty(t *testing.T) {
	img := WorldMap(nil, MapOptions{})
	require.Equal(t, DefaultMapOptions().Width, img.Bounds().Dx())

	var buf bytes.Buffer
	require.ErrorIs(t, EncodeWorldMapPNG(&buf, nil, MapOptions{}), ErrNoPoints)
	require.Zero(t, buf.Len())
}

func TestCoverageMap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCoverageMapPNG(&buf, variant.Fallback().Coverage, DefaultMapOptions()))
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))

	for _, region := range variant.Fallback().Coverage {
		_, ok := CoverageColors[region.Coverage]
		require.True(t, ok, region.Coverage)
	}
}

func TestFrequencyBars(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FrequencyBars(&buf, samplePoints()))
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))

	buf.Reset()
	require.ErrorIs(t, FrequencyBars(&buf, nil), ErrNoPoints)
}

func TestFormatPercent(t *testing.T) {
	require.Equal(t, "0%", FormatPercent(0))
	require.Equal(t, "1.50%", FormatPercent(0.015))
	require.Equal(t, "0.002%", FormatPercent(0.00002))
}

func TestWriteXLSX(t *testing.T) {
	table := variant.NewTable("test", []*variant.Record{
		{
			RSID:          variant.NewRSID(113993960),
			GeneSymbol:    variant.NewText("CFTR"),
			Name:          variant.NewText("NM_000492.4(CFTR):c.1521_1523del (p.Phe508del)"),
			PhenotypeList: variant.NewText("Cystic fibrosis"),
			AFNfe:         variant.NewFrequency(0.015),
		},
		{
			GeneSymbol: variant.NewText("BRCA1"),
		},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, table, 0))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, XLSXHeader(), rows[0])
	require.Equal(t, []string{"0", "rs113993960", "CFTR"}, rows[1][:3])
	require.Equal(t, "Cystic fibrosis", rows[1][4])
	require.Equal(t, "1", rows[2][0])
	require.Equal(t, "", rows[2][1])
	require.Equal(t, "BRCA1", rows[2][2])

	buf.Reset()
	require.NoError(t, WriteXLSX(&buf, table, 1))
	f2, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f2.Close()

	rows, err = f2.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}
