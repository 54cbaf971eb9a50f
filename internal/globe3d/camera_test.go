package globe3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera(DefaultConfig())
	assertVecNear(t, mgl64.Vec3{0, 0, CameraDistance}, c.Eye(), 1e-12)
	assert.InDelta(t, 640.0/480.0, c.Aspect, 1e-12)
	assert.Equal(t, MinDistance, c.MinDistance)
	// innermost default shell is at radius 25
	assert.InDelta(t, (0.8*25-GlobeRadius*CloudScale)/2, c.MaxDistance, 1e-12)
}

func TestCameraCenterRay(t *testing.T) {
	c := NewCamera(DefaultConfig())
	O, D := c.Ray(float64(c.Width)/2-0.5, float64(c.Height)/2-0.5)
	assertVecNear(t, mgl64.Vec3{0, 0, CameraDistance}, O, 1e-12)
	assertVecNear(t, mgl64.Vec3{0, 0, -1}, D, 1e-12)
}

func TestCameraRayProjectRoundTrip(t *testing.T) {
	c := NewCamera(DefaultConfig())
	c.Orbit(37, -12)
	for _, px := range [][2]float64{{0, 0}, {100, 50}, {639, 479}, {320, 10}} {
		O, D := c.Ray(px[0], px[1])
		assert.InDelta(t, 1.0, D.Len(), 1e-12)
		sx, sy, depth, ok := c.Project(O.Add(D.Mul(10)))
		require.True(t, ok)
		assert.InDelta(t, px[0]+0.5, sx, 1e-6)
		assert.InDelta(t, px[1]+0.5, sy, 1e-6)
		assert.Greater(t, depth, 0.0)
	}
}

func TestCameraProjectOrigin(t *testing.T) {
	c := NewCamera(DefaultConfig())
	sx, sy, depth, ok := c.Project(mgl64.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 320.0, sx, 1e-9)
	assert.InDelta(t, 240.0, sy, 1e-9)
	assert.InDelta(t, CameraDistance, depth, 1e-9)

	_, _, _, ok = c.Project(mgl64.Vec3{0, 0, 10})
	assert.False(t, ok, "point behind the eye")
	_, _, _, ok = c.Project(mgl64.Vec3{0, 0, -2000})
	assert.False(t, ok, "point beyond far")
}

func TestCameraResize(t *testing.T) {
	c := NewCamera(DefaultConfig())
	c.Resize(800, 400)
	assert.Equal(t, 800, c.Width)
	assert.InDelta(t, 2.0, c.Aspect, 1e-12)
	c.Resize(0, -3)
	assert.Equal(t, 1, c.Width)
	assert.Equal(t, 1, c.Height)
}

func TestCameraOrbitAndZoomClamp(t *testing.T) {
	c := NewCamera(DefaultConfig())
	c.Orbit(0, 1e6)
	assert.InDelta(t, deg2rad(MaxElevationDeg), c.Elevation, 1e-12)
	c.Orbit(0, -1e7)
	assert.InDelta(t, -deg2rad(MaxElevationDeg), c.Elevation, 1e-12)

	c.Orbit(float64(c.Height)/4, 0)
	assert.InDelta(t, 1.5*math.Pi, c.Azimuth, 1e-12)

	c.Zoom(1000)
	assert.Equal(t, c.MinDistance, c.Distance)
	c.Zoom(-1000)
	assert.Equal(t, c.MaxDistance, c.Distance)
	c.Distance = 3
	c.Zoom(1)
	assert.InDelta(t, 2.85, c.Distance, 1e-12)
}
