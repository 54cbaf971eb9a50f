package starfield

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// seqSource replays a fixed list of uniform values.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestGenerateCount(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10, 1000} {
		c, err := Generate(n, 25, NewSource(int64(n)))
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, n, c.Len())
	}
}

func TestGenerateSinglePointIsOnShell(t *testing.T) {
	c, err := Generate(1, 3, NewSource(7))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	d := c.At(0).Norm()
	assert.GreaterOrEqual(t, d, 0.8*3-1e-12)
	assert.LessOrEqual(t, d, 3+1e-12)
}

func TestGenerateShellBounds(t *testing.T) {
	const radius = 25.0
	c, err := Generate(20000, radius, NewSource(1))
	require.NoError(t, err)
	c.Iterate(func(i int, p r3.Vector) bool {
		d := p.Norm()
		if d < MinJitter*radius-1e-9 || d > radius+1e-9 {
			t.Fatalf("point %d at distance %g outside [%g, %g]", i, d, MinJitter*radius, radius)
		}
		return true
	})
	lo, hi := c.DistanceRange()
	assert.InDelta(t, MinJitter*radius, lo, 0.05)
	assert.InDelta(t, radius, hi, 0.05)
}

func TestGenerateInvalidParameters(t *testing.T) {
	cases := []struct {
		name   string
		count  int
		radius float64
	}{
		{"negative count", -1, 25},
		{"zero radius", 10, 0},
		{"negative radius", 10, -5},
		{"nan radius", 10, math.NaN()},
		{"inf radius", 10, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Generate(tc.count, tc.radius, NewSource(1))
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Nil(t, c)
		})
	}
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	a, err := Generate(500, 40, NewSource(42))
	require.NoError(t, err)
	b, err := Generate(500, 40, NewSource(42))
	require.NoError(t, err)
	if diff := cmp.Diff(a.Points(), b.Points()); diff != "" {
		t.Fatalf("same seed produced different clouds (-a +b):\n%s", diff)
	}
	c, err := Generate(500, 40, NewSource(43))
	require.NoError(t, err)
	assert.NotEqual(t, a.Points(), c.Points())
}

func TestGenerateAmbientSource(t *testing.T) {
	c, err := Generate(64, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 64, c.Len())
	lo, hi := c.DistanceRange()
	assert.GreaterOrEqual(t, lo, 8-1e-9)
	assert.LessOrEqual(t, hi, 10+1e-9)
}

func TestGenerateFixture(t *testing.T) {
	src := &seqSource{vals: []float64{
		0, 0, 0,
		0.25, 0.25, 0.25,
		0.5, 0.5, 0.5,
		0.75, 0.75, 0.75,
	}}
	c, err := Generate(4, 10, src)
	require.NoError(t, err)
	want := []r3.Vector{
		{X: 0, Y: 0, Z: -8},
		{X: 0, Y: 8.5 * math.Sqrt(3) / 2, Z: -4.25},
		{X: -9, Y: 0, Z: 0},
		{X: 0, Y: -9.5 * math.Sqrt(3) / 2, Z: 4.75},
	}
	if diff := cmp.Diff(want, c.Points(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("fixture mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 7.361215932167728, c.At(1).Y, 1e-12)
	assert.InDelta(t, -8.227241335952167, c.At(3).Y, 1e-12)
	assert.Equal(t, 12, src.i, "three draws per point")
}

func TestPointsReturnsCopy(t *testing.T) {
	c, err := Generate(3, 5, NewSource(3))
	require.NoError(t, err)
	pts := c.Points()
	orig := c.At(0)
	pts[0] = r3.Vector{X: 1000}
	assert.Equal(t, orig, c.At(0))
}

// bandChiSquare bins the polar cosine of every point into equal-area bands
// and returns the chi-square statistic against the uniform expectation.
func bandChiSquare(t *testing.T, c *PointCloud, bands int) float64 {
	t.Helper()
	counts, err := BandCounts(c, bands)
	require.NoError(t, err)
	obs := make([]float64, bands)
	exp := make([]float64, bands)
	for i, n := range counts {
		obs[i] = float64(n)
		exp[i] = float64(c.Len()) / float64(bands)
	}
	return stat.ChiSquare(obs, exp)
}

func TestGenerateEqualAreaUniformity(t *testing.T) {
	const (
		n     = 100_000
		bands = 20
	)
	c, err := Generate(n, 25, NewSource(2024))
	require.NoError(t, err)
	crit := distuv.ChiSquared{K: bands - 1}.Quantile(0.9999)
	chi := bandChiSquare(t, c, bands)
	assert.Less(t, chi, crit, "bands are not equal-area uniform: chi2=%g crit=%g", chi, crit)
}

func TestNaivePolarDrawFailsUniformity(t *testing.T) {
	const (
		n      = 100_000
		bands  = 20
		radius = 25.0
	)
	rng := rand.New(rand.NewSource(2024))
	pts := make([]r3.Vector, n)
	for i := range pts {
		theta := 2 * math.Pi * rng.Float64()
		phi := math.Pi * rng.Float64()
		d := radius * (MinJitter + JitterSpan*rng.Float64())
		pts[i] = r3.Vector{
			X: d * math.Sin(phi) * math.Cos(theta),
			Y: d * math.Sin(phi) * math.Sin(theta),
			Z: d * math.Cos(phi),
		}
	}
	naive := &PointCloud{points: pts, radius: radius}
	crit := distuv.ChiSquared{K: bands - 1}.Quantile(0.9999)
	assert.Greater(t, bandChiSquare(t, naive, bands), crit)
}

// ksD is the Kolmogorov-Smirnov statistic of xs against the CDF F.
func ksD(xs []float64, F func(float64) float64) float64 {
	sort.Float64s(xs)
	n := len(xs)
	var d float64
	for i, x := range xs {
		Fi := F(x)
		di := math.Max(Fi-float64(i)/float64(n), float64(i+1)/float64(n)-Fi)
		if di > d {
			d = di
		}
	}
	return d
}

func TestGeneratePolarCosineKS(t *testing.T) {
	const n = 50_000
	c, err := Generate(n, 1, NewSource(12345))
	require.NoError(t, err)
	cosines := make([]float64, 0, n)
	c.Iterate(func(_ int, p r3.Vector) bool {
		cosines = append(cosines, p.Z/p.Norm())
		return true
	})
	D := ksD(cosines, func(x float64) float64 { return (x + 1) / 2 })
	crit := 1.95 / math.Sqrt(n) // alpha ~ 0.001
	assert.Less(t, D, crit)
}

func TestGenerateAzimuthKS(t *testing.T) {
	const n = 50_000
	c, err := Generate(n, 1, NewSource(777))
	require.NoError(t, err)
	az := make([]float64, 0, n)
	c.Iterate(func(_ int, p r3.Vector) bool {
		a := math.Atan2(p.Y, p.X)
		if a < 0 {
			a += 2 * math.Pi
		}
		az = append(az, a)
		return true
	})
	D := ksD(az, func(x float64) float64 { return x / (2 * math.Pi) })
	assert.Less(t, D, 1.95/math.Sqrt(n))
}
