package globe3d

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// RawWriter dumps linear frames for offline tone mapping. Layout, all
// little-endian: int32 W, int32 H, int32 N, then N frames of W*H*3
// float64 in Frame.Buf order.
type RawWriter struct {
	f      *os.File
	w      *bufio.Writer
	width  int
	height int
	n, k   int
}

func NewRawWriter(path string, width, height, frames int) (*RawWriter, error) {
	if width <= 0 || height <= 0 || frames < 0 {
		return nil, errors.Errorf("bad raw dimensions: W=%d H=%d N=%d", width, height, frames)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating raw directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating raw file")
	}
	rw := &RawWriter{f: f, w: bufio.NewWriter(f), width: width, height: height, n: frames}
	for _, v := range []int32{int32(width), int32(height), int32(frames)} {
		if err := binary.Write(rw.w, binary.LittleEndian, v); err != nil {
			return nil, multierr.Combine(errors.Wrap(err, "writing raw header"), f.Close())
		}
	}
	return rw, nil
}

func (rw *RawWriter) WriteFrame(fr *Frame) error {
	if fr.W != rw.width || fr.H != rw.height {
		return errors.Errorf("raw frame size mismatch: got (%d, %d), want (%d, %d)", fr.W, fr.H, rw.width, rw.height)
	}
	if rw.k >= rw.n {
		return errors.Errorf("raw file already holds %d frames", rw.n)
	}
	if err := binary.Write(rw.w, binary.LittleEndian, fr.Buf); err != nil {
		return errors.Wrap(err, "writing raw frame")
	}
	rw.k++
	return nil
}

func (rw *RawWriter) Close() error {
	var err error
	if rw.k != rw.n {
		err = errors.Errorf("raw file truncated: wrote %d of %d frames", rw.k, rw.n)
	}
	return multierr.Combine(err, rw.w.Flush(), rw.f.Close())
}
