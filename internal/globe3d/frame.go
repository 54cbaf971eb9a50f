package globe3d

import (
	"image"
	"math"

	"github.com/pkg/errors"
)

// Frame is a linear RGB framebuffer, row-major with (0, 0) top-left.
type Frame struct {
	W, H int
	Buf  []float64 // (y*W + x)*3 + c
}

func NewFrame(w, h int) (*Frame, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("frame size must be positive, got (%d, %d)", w, h)
	}
	return &Frame{W: w, H: h, Buf: make([]float64, w*h*3)}, nil
}

func (f *Frame) idx(x, y int) int { return (y*f.W + x) * 3 }

func (f *Frame) At(x, y int) RGB {
	i := f.idx(x, y)
	return RGB{f.Buf[i], f.Buf[i+1], f.Buf[i+2]}
}

func (f *Frame) Set(x, y int, c RGB) {
	i := f.idx(x, y)
	f.Buf[i], f.Buf[i+1], f.Buf[i+2] = c.R, c.G, c.B
}

// encode maps a linear channel to display [0,1]: sRGB transfer, then an
// extra 1/gamma power when gamma != 1 (gamma < 1 darkens, > 1 brightens).
func encode(gamma float64) func(RGB) (r, g, b float64) {
	return func(c RGB) (float64, float64, float64) {
		s := c.toSRGB()
		if gamma != 1 {
			inv := 1 / gamma
			return math.Pow(s.R, inv), math.Pow(s.G, inv), math.Pow(s.B, inv)
		}
		return s.R, s.G, s.B
	}
}

// ToNRGBA converts the frame to 8-bit sRGB.
func (f *Frame) ToNRGBA(gamma float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.W, f.H))
	f.fill8(img, gamma)
	return img
}

func (f *Frame) fill8(img *image.NRGBA, gamma float64) {
	enc := encode(gamma)
	toByte := func(n float64) uint8 { return uint8(math.Round(clamp(n, 0, 1) * 255)) }
	for y := 0; y < f.H; y++ {
		rowOff := y * img.Stride
		for x := 0; x < f.W; x++ {
			r, g, b := enc(f.At(x, y))
			p := rowOff + x*4
			img.Pix[p+0] = toByte(r)
			img.Pix[p+1] = toByte(g)
			img.Pix[p+2] = toByte(b)
			img.Pix[p+3] = 255
		}
	}
}

// ToNRGBA64 converts the frame to 16-bit sRGB.
func (f *Frame) ToNRGBA64(gamma float64) *image.NRGBA64 {
	enc := encode(gamma)
	toU16 := func(n float64) uint16 { return uint16(math.Round(clamp(n, 0, 1) * 65535)) }
	img := image.NewNRGBA64(image.Rect(0, 0, f.W, f.H))
	const pxBytes = 8
	for y := 0; y < f.H; y++ {
		rowOff := y * img.Stride
		for x := 0; x < f.W; x++ {
			r, g, b := enc(f.At(x, y))
			p := rowOff + x*pxBytes
			// big-endian uint16 per channel
			for i, v := range [4]uint16{toU16(r), toU16(g), toU16(b), 0xFFFF} {
				img.Pix[p+2*i] = uint8(v >> 8)
				img.Pix[p+2*i+1] = uint8(v)
			}
		}
	}
	return img
}

// loadRGBA replaces the frame contents with the sRGB image src, which
// must have the frame's size.
func (f *Frame) loadRGBA(src *image.RGBA) {
	for y := 0; y < f.H; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < f.W; x++ {
			p := row[x*4:]
			i := f.idx(x, y)
			f.Buf[i] = srgbToLinear[p[0]]
			f.Buf[i+1] = srgbToLinear[p[1]]
			f.Buf[i+2] = srgbToLinear[p[2]]
		}
	}
}
