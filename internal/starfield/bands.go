package starfield

import (
	"math"

	"github.com/pkg/errors"
)

// BandCounts splits the sphere into n bands of equal surface area, stacked
// along Z, and counts how many points fall in each. Band 0 holds the south
// pole (cos(phi) near -1). Equal-area bands have equal width in cos(phi).
func BandCounts(c *PointCloud, n int) ([]int, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "band count must be > 0, got %d", n)
	}
	counts := make([]int, n)
	for _, p := range c.points {
		d := p.Norm()
		if d == 0 {
			continue
		}
		counts[bandOf(p.Z/d, n)]++
	}
	return counts, nil
}

func bandOf(cosPhi float64, n int) int {
	b := int(math.Floor((cosPhi + 1) / 2 * float64(n)))
	if b < 0 {
		return 0
	}
	if b >= n {
		return n - 1
	}
	return b
}
