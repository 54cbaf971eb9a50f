package globe3d

import (
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// PNGSequenceWriter writes one 16-bit PNG per frame, named
// <prefix>_<k>.png with k zero-padded to fit total.
type PNGSequenceWriter struct {
	prefix string
	gamma  float64
	width  int
	k      int
}

func NewPNGSequenceWriter(prefix string, total int, gamma float64) *PNGSequenceWriter {
	width := 1
	if total > 1 {
		width = int(math.Log10(float64(total-1))) + 1
	}
	return &PNGSequenceWriter{prefix: prefix, gamma: gamma, width: width}
}

// Name returns the file name of frame k.
func (w *PNGSequenceWriter) Name(k int) string {
	return fmt.Sprintf("%s_%0*d.png", w.prefix, w.width, k)
}

func (w *PNGSequenceWriter) WriteFrame(fr *Frame) (err error) {
	full := w.Name(w.k)
	if dir := filepath.Dir(full); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "creating png directory")
		}
	}
	f, err := os.Create(full)
	if err != nil {
		return errors.Wrap(err, "creating png")
	}
	defer func() { err = multierr.Combine(err, f.Close()) }()
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, fr.ToNRGBA64(w.gamma)); err != nil {
		return errors.Wrapf(err, "encoding %s", full)
	}
	w.k++
	return nil
}

func (w *PNGSequenceWriter) Close() error {
	DebugLog("Saved PNG sequence with prefix: %s (%d frames)", w.prefix, w.k)
	return nil
}

// SavePNGSequence16 writes frames as a zero-padded 16-bit PNG sequence.
func SavePNGSequence16(frames []*Frame, prefix string, gamma float64) error {
	return writeAll(NewPNGSequenceWriter(prefix, len(frames), gamma), frames)
}
