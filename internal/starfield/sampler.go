// Package starfield generates decorative star point clouds: points spread
// uniformly over the surface of a sphere with a small inward radial jitter.
package starfield

import (
	"math"
	"math/rand"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

const (
	// DefaultNumStars is used when a caller leaves the star count unset.
	DefaultNumStars = 10
	// DefaultRadius is used when a caller leaves the shell radius unset.
	DefaultRadius = 25.0
	// MinJitter is the lowest fraction of the radius a point may sit at.
	MinJitter = 0.8
	// JitterSpan is added on top of MinJitter, scaled by a uniform draw.
	JitterSpan = 0.2
)

// ErrInvalidParameter is returned for a negative count or a non-positive radius.
var ErrInvalidParameter = errors.New("invalid parameter")

// Source yields uniform values in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded Source, handy for reproducible clouds.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// ambientSource is what Generate uses when no source is given: every run differs.
func ambientSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generate places count points on a spherical shell of the given radius.
// Each point takes three draws from src, in order: azimuth, polar angle
// (through acos(2u-1), so the poles are not oversampled), radial jitter.
// A nil src falls back to a time-seeded generator.
func Generate(count int, radius float64, src Source) (*PointCloud, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "count must be >= 0, got %d", count)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, errors.Wrapf(ErrInvalidParameter, "radius must be a finite value > 0, got %g", radius)
	}
	if src == nil {
		src = ambientSource()
	}
	pts := make([]r3.Vector, count)
	for i := range pts {
		pts[i] = samplePoint(radius, src)
	}
	return &PointCloud{points: pts, radius: radius}, nil
}

func samplePoint(radius float64, src Source) r3.Vector {
	theta := 2 * math.Pi * src.Float64()
	phi := math.Acos(2*src.Float64() - 1)
	d := radius * (MinJitter + JitterSpan*src.Float64())
	sinPhi := math.Sin(phi)
	return r3.Vector{
		X: d * sinPhi * math.Cos(theta),
		Y: d * sinPhi * math.Sin(theta),
		Z: d * math.Cos(phi),
	}
}
