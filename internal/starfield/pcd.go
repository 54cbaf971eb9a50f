package starfield

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// PCDType is the data layout of a written PCD file.
type PCDType int

const (
	// PCDAscii writes one "x y z" line per point.
	PCDAscii PCDType = iota
	// PCDBinary writes little-endian float32 triples.
	PCDBinary
)

// ParsePCDType maps "ascii" / "binary" to a PCDType.
func ParsePCDType(s string) (PCDType, error) {
	switch strings.ToLower(s) {
	case "", "ascii":
		return PCDAscii, nil
	case "binary":
		return PCDBinary, nil
	}
	return PCDAscii, errors.Errorf("unknown PCD type %q (want ascii or binary)", s)
}

// ToPCD writes the cloud as a PCD v0.7 file, unorganized (HEIGHT 1).
func ToPCD(c *PointCloud, out io.Writer, pcdType PCDType) error {
	var data string
	switch pcdType {
	case PCDAscii:
		data = "ascii"
	case PCDBinary:
		data = "binary"
	default:
		return errors.Errorf("unsupported PCD type %d", pcdType)
	}
	w := bufio.NewWriter(out)
	if _, err := fmt.Fprintf(w, "VERSION .7\n"+
		"FIELDS x y z\n"+
		"SIZE 4 4 4\n"+
		"TYPE F F F\n"+
		"COUNT 1 1 1\n"+
		"WIDTH %d\n"+
		"HEIGHT 1\n"+
		"VIEWPOINT 0 0 0 1 0 0 0\n"+
		"POINTS %d\n"+
		"DATA %s\n", c.Len(), c.Len(), data); err != nil {
		return err
	}
	var err error
	buf := make([]byte, 12)
	c.Iterate(func(_ int, p r3.Vector) bool {
		switch pcdType {
		case PCDBinary:
			binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(p.X)))
			binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(float32(p.Y)))
			binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(float32(p.Z)))
			_, err = w.Write(buf)
		default:
			_, err = fmt.Fprintf(w, "%f %f %f\n", p.X, p.Y, p.Z)
		}
		return err == nil
	})
	if err != nil {
		return err
	}
	return w.Flush()
}

// ToJSON writes the cloud as a JSON array of [x, y, z] triples.
func ToJSON(c *PointCloud, out io.Writer) error {
	triples := make([][3]float64, 0, c.Len())
	c.Iterate(func(_ int, p r3.Vector) bool {
		triples = append(triples, [3]float64{p.X, p.Y, p.Z})
		return true
	})
	enc := json.NewEncoder(out)
	return enc.Encode(triples)
}

// WriteFile picks the format from the file extension (.pcd or .json).
func WriteFile(c *PointCloud, path string, pcdType PCDType) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pcd" && ext != ".json" {
		return errors.Errorf("unsupported point cloud file extension %q", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	if ext == ".json" {
		return ToJSON(c, f)
	}
	return ToPCD(c, f, pcdType)
}
