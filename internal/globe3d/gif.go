package globe3d

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// GIFWriter quantizes each frame as it arrives and encodes the animation
// on Close. The GIF format needs every frame at encode time, so the
// paletted frames (one byte per pixel) stay in memory until then.
// delay is in 100ths of a second (4 => 25 fps).
type GIFWriter struct {
	path  string
	f     *os.File
	delay int
	gamma float64
	out   *gif.GIF
	rgba  *image.NRGBA
}

// NewGIFWriter creates path and its parent directory up front, so a bad
// output path fails before any frame is rendered.
func NewGIFWriter(path string, delay int, gamma float64) (*GIFWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating gif directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating gif")
	}
	return &GIFWriter{
		path:  path,
		f:     f,
		delay: delay,
		gamma: gamma,
		out:   &gif.GIF{LoopCount: 0},
	}, nil
}

func (w *GIFWriter) WriteFrame(f *Frame) error {
	if w.rgba == nil || w.rgba.Bounds().Dx() != f.W || w.rgba.Bounds().Dy() != f.H {
		w.rgba = image.NewNRGBA(image.Rect(0, 0, f.W, f.H))
	}
	f.fill8(w.rgba, w.gamma)
	pimg := image.NewPaletted(w.rgba.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), w.rgba, image.Point{})
	w.out.Image = append(w.out.Image, pimg)
	w.out.Delay = append(w.out.Delay, w.delay)
	return nil
}

// Close encodes the frames written so far. With no frames the empty file
// is removed and an error returned.
func (w *GIFWriter) Close() (err error) {
	if len(w.out.Image) == 0 {
		return multierr.Combine(errors.Errorf("no frames for %s", w.path), w.f.Close(), os.Remove(w.path))
	}
	defer func() { err = multierr.Combine(err, w.f.Close()) }()
	if err := gif.EncodeAll(w.f, w.out); err != nil {
		return errors.Wrapf(err, "encoding %s", w.path)
	}
	DebugLog("Saved animated GIF: %s (%d frames)", w.path, len(w.out.Image))
	return nil
}

// SaveAnimatedGIF writes frames as a looping GIF.
func SaveAnimatedGIF(frames []*Frame, path string, delay int, gamma float64) error {
	w, err := NewGIFWriter(path, delay, gamma)
	if err != nil {
		return err
	}
	return writeAll(w, frames)
}
