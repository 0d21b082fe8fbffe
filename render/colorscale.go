package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/BenLubar/memoize"
)

// ylOrRd is the 9-class ColorBrewer YlOrRd sequential ramp, light to dark.
var ylOrRd = []color.RGBA{
	{0xff, 0xff, 0xcc, 0xff},
	{0xff, 0xed, 0xa0, 0xff},
	{0xfe, 0xd9, 0x76, 0xff},
	{0xfe, 0xb2, 0x4c, 0xff},
	{0xfd, 0x8d, 0x3c, 0xff},
	{0xfc, 0x4e, 0x2a, 0xff},
	{0xe3, 0x1a, 0x1c, 0xff},
	{0xbd, 0x00, 0x26, 0xff},
	{0x80, 0x00, 0x26, 0xff},
}

// rampSteps is the resolution of the memoized lookup.
const rampSteps = 255

var memoizedRampStep = memoize.Memoize(rampStep)

// YlOrRd maps t in [0,1] onto the YlOrRd ramp. Values outside the range are
// clamped; NaN maps to the lightest colour.
func YlOrRd(t float64) color.RGBA {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))

	return memoizedRampStep.(func(int) color.RGBA)(int(math.Round(t * rampSteps)))
}

func rampStep(step int) color.RGBA {
	pos := float64(step) / rampSteps * float64(len(ylOrRd)-1)

	lo := int(math.Floor(pos))
	if lo >= len(ylOrRd)-1 {
		return ylOrRd[len(ylOrRd)-1]
	}
	frac := pos - float64(lo)

	a, b := ylOrRd[lo], ylOrRd[lo+1]
	return color.RGBA{
		R: lerp(a.R, b.R, frac),
		G: lerp(a.G, b.G, frac),
		B: lerp(a.B, b.B, frac),
		A: 0xff,
	}
}

func lerp(a, b uint8, frac float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*frac))
}

// Hex formats c as #rrggbb, for legends in HTML.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
