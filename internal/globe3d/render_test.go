package globe3d

import (
	"context"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszgryglicki/globe3d/internal/starfield"
)

// tinyConfig is a small seeded scene without textures.
func tinyConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 64, 48
	cfg.Frames = 3
	seed := int64(1)
	cfg.Seed = &seed
	cfg.Stars = []StarLayerCfg{{
		Options:         starfield.Options{NumStars: starfield.Int(300), Radius: starfield.Float64(25)},
		Color:           StarColor,
		Size:            StarSize,
		SizeAttenuation: boolPtr(true),
	}}
	require.NoError(t, cfg.Validate())
	return cfg
}

// whiteTexture writes a small opaque white PNG into dir.
func whiteTexture(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, imaging.Save(imaging.New(16, 8, color.White), filepath.Join(dir, name)))
}

func newTestRenderer(t *testing.T, cfg *Config) *Renderer {
	t.Helper()
	scene, err := NewScene(cfg)
	require.NoError(t, err)
	return NewRenderer(scene, NewCamera(cfg))
}

// earthPixel finds a pixel whose primary ray hits the unrotated globe at a
// normal accepted by pred.
func earthPixel(t *testing.T, r *Renderer, pred func(n mgl64.Vec3) bool) (int, int) {
	t.Helper()
	earth := newSphere(r.Scene.Radius, tiltedYaw(r.Scene.Tilt, 0))
	for y := 0; y < r.Camera.Height; y++ {
		for x := 0; x < r.Camera.Width; x++ {
			O, D := r.Camera.Ray(float64(x), float64(y))
			if h, ok := earth.intersect(O, D); ok && pred(h.N) {
				return x, y
			}
		}
	}
	t.Fatal("no matching earth pixel")
	return 0, 0
}

func TestRenderSolidGlobe(t *testing.T) {
	cfg := tinyConfig(t)
	r := newTestRenderer(t, cfg)
	f, err := r.Render(context.Background(), Pose{})
	require.NoError(t, err)
	require.Equal(t, cfg.Width, f.W)
	require.Equal(t, cfg.Height, f.H)

	c := f.At(cfg.Width/2, cfg.Height/2)
	assert.Greater(t, c.B, c.R, "ocean fallback is blue")
	assert.Greater(t, c.B, 0.05)

	frames, stars, counts := r.Stats.Snapshot()
	assert.Equal(t, 1, frames)
	assert.Greater(t, stars, 0)
	assert.Equal(t, cfg.Width*cfg.Height, counts.Total())
	assert.Greater(t, counts[DaySide], 0)
	assert.Greater(t, counts[NightSide], 0)
	assert.Greater(t, counts[Space], counts[DaySide]+counts[NightSide])
	assert.Zero(t, counts[CloudRim])
}

func TestRenderNightSideIsDarkWithoutLights(t *testing.T) {
	cfg := tinyConfig(t)
	cfg.Atmosphere.Intensity = float64Ptr(0)
	r := newTestRenderer(t, cfg)
	sun := r.Scene.Light.Sun
	dx, dy := earthPixel(t, r, func(n mgl64.Vec3) bool { return n.Dot(sun) > 0.5 })
	nx, ny := earthPixel(t, r, func(n mgl64.Vec3) bool { return n.Dot(sun) < -0.3 })
	f, err := r.Render(context.Background(), Pose{})
	require.NoError(t, err)
	assert.Greater(t, luminance(f.At(dx, dy)), 5*luminance(f.At(nx, ny)))
}

func TestRenderNightLights(t *testing.T) {
	cfg := tinyConfig(t)
	dark := newTestRenderer(t, cfg)
	sun := dark.Scene.Light.Sun
	x, y := earthPixel(t, dark, func(n mgl64.Vec3) bool { return n.Dot(sun) < -0.3 })

	dir := t.TempDir()
	whiteTexture(t, dir, "night.png")
	cfg.Globe.TextureDir = dir
	cfg.Globe.NightMap = "night.png"
	lit := newTestRenderer(t, cfg)
	require.NotNil(t, lit.Scene.Night)

	f0, err := dark.Render(context.Background(), Pose{})
	require.NoError(t, err)
	f1, err := lit.Render(context.Background(), Pose{})
	require.NoError(t, err)
	assert.InDelta(t, luminance(f0.At(x, y))+NightIntensity, luminance(f1.At(x, y)), 1e-6)
}

func TestRenderClouds(t *testing.T) {
	cfg := tinyConfig(t)
	plain := newTestRenderer(t, cfg)

	dir := t.TempDir()
	whiteTexture(t, dir, "clouds.png")
	cfg.Globe.TextureDir = dir
	cfg.Globe.CloudMap = "clouds.png"
	cloudy := newTestRenderer(t, cfg)
	require.NotNil(t, cloudy.Scene.Clouds)

	f0, err := plain.Render(context.Background(), Pose{})
	require.NoError(t, err)
	f1, err := cloudy.Render(context.Background(), Pose{CloudYaw: 1})
	require.NoError(t, err)
	cx, cy := cfg.Width/2, cfg.Height/2
	assert.Greater(t, f1.At(cx, cy).R, f0.At(cx, cy).R)

	// zero opacity drops the layer
	cfg.Globe.CloudOpacity = float64Ptr(0)
	s, err := NewScene(cfg)
	require.NoError(t, err)
	assert.Nil(t, s.Clouds)
}

func TestRenderCancelled(t *testing.T) {
	r := newTestRenderer(t, tinyConfig(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Render(ctx, Pose{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderFollowsResize(t *testing.T) {
	r := newTestRenderer(t, tinyConfig(t))
	r.Camera.Resize(30, 20)
	f, err := r.Render(context.Background(), Pose{})
	require.NoError(t, err)
	assert.Equal(t, 30, f.W)
	assert.Equal(t, 20, f.H)
}

func TestNewSceneSeededStars(t *testing.T) {
	cfg := tinyConfig(t)
	cfg.Stars = append(cfg.Stars, cfg.Stars[0])
	a, err := NewScene(cfg)
	require.NoError(t, err)
	b, err := NewScene(cfg)
	require.NoError(t, err)
	require.Len(t, a.Stars, 2)
	assert.Equal(t, 600, a.StarCount())
	assert.Equal(t, a.Stars[0].Cloud.Points(), b.Stars[0].Cloud.Points())
	assert.NotEqual(t, a.Stars[0].Cloud.Points(), a.Stars[1].Cloud.Points(), "layers get distinct seeds")

	cfg.Seed = nil
	c, err := NewScene(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Stars[0].Cloud.Points(), c.Stars[0].Cloud.Points())
}

func TestNewSceneMissingTexture(t *testing.T) {
	cfg := tinyConfig(t)
	cfg.Globe.DayMap = filepath.Join(t.TempDir(), "missing.jpg")
	_, err := NewScene(cfg)
	assert.Error(t, err)
}
