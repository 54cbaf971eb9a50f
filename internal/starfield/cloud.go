package starfield

import (
	"math"

	"github.com/golang/geo/r3"
)

// PointCloud is an ordered, read-only set of star positions.
// Only Generate creates one; nothing mutates it afterwards.
type PointCloud struct {
	points []r3.Vector
	radius float64
}

// Len returns the number of points in the cloud.
func (c *PointCloud) Len() int { return len(c.points) }

// Radius returns the nominal shell radius the cloud was generated with.
func (c *PointCloud) Radius() float64 { return c.radius }

// At returns the i-th point in generation order.
func (c *PointCloud) At(i int) r3.Vector { return c.points[i] }

// Points returns a copy of the points, so callers cannot modify the cloud.
func (c *PointCloud) Points() []r3.Vector {
	out := make([]r3.Vector, len(c.points))
	copy(out, c.points)
	return out
}

// Iterate calls fn for every point in order until fn returns false.
func (c *PointCloud) Iterate(fn func(i int, p r3.Vector) bool) {
	for i, p := range c.points {
		if !fn(i, p) {
			return
		}
	}
}

// DistanceRange returns the smallest and largest distance from the origin.
// Both are zero for an empty cloud.
func (c *PointCloud) DistanceRange() (lo, hi float64) {
	if len(c.points) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range c.points {
		d := p.Norm()
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}
