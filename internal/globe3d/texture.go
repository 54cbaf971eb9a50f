package globe3d

import (
	"image"
	"math"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Texture is an equirectangular map held as linear RGBA texels.
// A texture with no texels samples as Solid everywhere.
type Texture struct {
	W, H  int
	Pix   []float32 // (y*W + x)*4 + c, linear RGB then alpha
	Solid RGB
	Name  string
}

// SolidTexture returns a texture that samples as c everywhere.
func SolidTexture(c RGB) *Texture { return &Texture{Solid: c, Name: "solid"} }

// LoadTexture decodes the image at path (png, jpeg, gif, tiff, bmp),
// downscaling it to maxWidth when maxWidth > 0 and the image is wider.
func LoadTexture(path string, maxWidth int) (*Texture, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading texture %s", path)
	}
	if b := img.Bounds(); maxWidth > 0 && b.Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	t := NewTexture(img)
	t.Name = filepath.Base(path)
	DebugLog("Loaded texture %s: (%d, %d)", path, t.W, t.H)
	return t, nil
}

// NewTexture converts img to linear texels.
func NewTexture(img image.Image) *Texture {
	src := imaging.Clone(img) // *image.NRGBA, origin at (0, 0)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	t := &Texture{W: w, H: h, Pix: make([]float32, w*h*4)}
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			p := row[x*4:]
			o := (y*w + x) * 4
			t.Pix[o+0] = float32(srgbToLinear[p[0]])
			t.Pix[o+1] = float32(srgbToLinear[p[1]])
			t.Pix[o+2] = float32(srgbToLinear[p[2]])
			t.Pix[o+3] = float32(p[3]) / 255
		}
	}
	return t
}

func (t *Texture) empty() bool { return t == nil || t.W == 0 || t.H == 0 }

func (t *Texture) texel(x, y int) (RGB, float64) {
	o := (y*t.W + x) * 4
	return RGB{float64(t.Pix[o]), float64(t.Pix[o+1]), float64(t.Pix[o+2])}, float64(t.Pix[o+3])
}

// Sample returns the bilinearly filtered color and alpha at (u, v). u wraps
// around, v is clamped to [0, 1].
func (t *Texture) Sample(u, v float64) (RGB, float64) {
	if t.empty() {
		if t == nil {
			return RGB{}, 0
		}
		return t.Solid, 1
	}
	fx := (u-math.Floor(u))*float64(t.W) - 0.5
	fy := clamp(v, 0, 1)*float64(t.H) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	ax := fx - float64(x0)
	ay := fy - float64(y0)

	wrap := func(x int) int {
		x %= t.W
		if x < 0 {
			x += t.W
		}
		return x
	}
	cy := func(y int) int {
		if y < 0 {
			return 0
		}
		if y >= t.H {
			return t.H - 1
		}
		return y
	}
	xa, xb := wrap(x0), wrap(x0+1)
	ya, yb := cy(y0), cy(y0+1)

	c00, a00 := t.texel(xa, ya)
	c10, a10 := t.texel(xb, ya)
	c01, a01 := t.texel(xa, yb)
	c11, a11 := t.texel(xb, yb)
	top := c00.Lerp(c10, ax)
	bot := c01.Lerp(c11, ax)
	aTop := a00 + (a10-a00)*ax
	aBot := a01 + (a11-a01)*ax
	return top.Lerp(bot, ay), aTop + (aBot-aTop)*ay
}

// luminance is the Rec. 709 relative luminance of linear c.
func luminance(c RGB) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// resolveTexture joins a relative path onto dir.
func resolveTexture(dir, path string) string {
	if path == "" || filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
