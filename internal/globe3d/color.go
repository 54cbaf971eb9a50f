package globe3d

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// RGB is linear radiance; channels are not bounded to [0,1].
type RGB struct {
	R, G, B float64
}

func (a RGB) Add(b RGB) RGB       { return RGB{a.R + b.R, a.G + b.G, a.B + b.B} }
func (a RGB) Mul(b RGB) RGB       { return RGB{a.R * b.R, a.G * b.G, a.B * b.B} }
func (a RGB) Scale(s float64) RGB { return RGB{a.R * s, a.G * s, a.B * s} }

// Lerp blends from a to b by t (t=0 gives a).
func (a RGB) Lerp(b RGB, t float64) RGB {
	return RGB{a.R + (b.R-a.R)*t, a.G + (b.G-a.G)*t, a.B + (b.B-a.B)*t}
}

// parseColor reads a "#rrggbb" hex color into linear RGB.
func parseColor(hex string) (RGB, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, errors.Wrapf(err, "bad color %q", hex)
	}
	r, g, b := c.LinearRgb()
	return RGB{r, g, b}, nil
}

// srgbToLinear maps an 8-bit sRGB channel to linear.
var srgbToLinear = func() (lut [256]float64) {
	for i := range lut {
		v := float64(i) / 255
		r, _, _ := colorful.Color{R: v, G: v, B: v}.LinearRgb()
		lut[i] = r
	}
	return lut
}()

// toSRGB converts linear radiance to clamped sRGB in [0,1].
func (a RGB) toSRGB() colorful.Color {
	return colorful.LinearRgb(clamp(a.R, 0, 1), clamp(a.G, 0, 1), clamp(a.B, 0, 1)).Clamped()
}
