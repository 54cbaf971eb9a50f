package globe3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"

	"github.com/lukaszgryglicki/globe3d/internal/starfield"
)

// Camera is a perspective camera orbiting the origin and looking at it.
// Angles are radians; azimuth 0, elevation 0 puts the eye on +Z.
type Camera struct {
	FOV       float64 // vertical field of view
	Near, Far float64
	Width     int
	Height    int
	Aspect    float64

	Azimuth, Elevation, Distance float64
	MinDistance, MaxDistance     float64
}

// NewCamera builds the camera described by cfg for a cfg.Width x
// cfg.Height viewport.
func NewCamera(cfg *Config) *Camera {
	c := &Camera{
		FOV:         deg2rad(cfg.Camera.FOVDeg),
		Near:        cfg.Camera.Near,
		Far:         cfg.Camera.Far,
		Azimuth:     deg2rad(cfg.Camera.AzimuthDeg),
		Elevation:   clamp(deg2rad(cfg.Camera.ElevationDeg), -deg2rad(MaxElevationDeg), deg2rad(MaxElevationDeg)),
		Distance:    cfg.Camera.Distance,
		MinDistance: math.Min(math.Max(MinDistance, 1.05*cfg.Globe.Radius*cfg.Globe.CloudScale), cfg.Camera.Distance),
		MaxDistance: math.Max(maxOrbitDistance(cfg), cfg.Camera.Distance),
	}
	c.Resize(cfg.Width, cfg.Height)
	DebugLog("Created camera: fov=%.2f°, distance=%.3f, range=[%.3f, %.3f], viewport=(%d, %d)", cfg.Camera.FOVDeg, c.Distance, c.MinDistance, c.MaxDistance, c.Width, c.Height)
	return c
}

// maxOrbitDistance keeps the innermost star shell behind the globe while
// zooming out.
func maxOrbitDistance(cfg *Config) float64 {
	limit := float64(MaxDistance)
	if len(cfg.Stars) == 0 {
		return limit
	}
	inner := lo.Min(lo.Map(cfg.Stars, func(l StarLayerCfg, _ int) float64 {
		_, r := l.Resolve()
		return r
	}))
	shell := cfg.Globe.Radius * cfg.Globe.CloudScale
	return math.Min(limit, (starfield.MinJitter*inner-shell)/2)
}

// Resize sets a new viewport and recomputes the aspect ratio.
func (c *Camera) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Aspect = float64(w) / float64(h)
}

// Orbit rotates the eye around the origin by a pointer drag of (dx, dy)
// pixels; a full viewport height of drag is one turn.
func (c *Camera) Orbit(dx, dy float64) {
	k := 2 * math.Pi / float64(c.Height)
	c.Azimuth = wrapAngle(c.Azimuth - dx*k)
	lim := deg2rad(MaxElevationDeg)
	c.Elevation = clamp(c.Elevation+dy*k, -lim, lim)
}

// Zoom scales the distance by 0.95 per step; positive steps move closer.
func (c *Camera) Zoom(steps float64) {
	c.Distance = clamp(c.Distance*math.Pow(0.95, steps), c.MinDistance, c.MaxDistance)
}

func (c *Camera) Eye() mgl64.Vec3 {
	ce := math.Cos(c.Elevation)
	return mgl64.Vec3{
		c.Distance * ce * math.Sin(c.Azimuth),
		c.Distance * math.Sin(c.Elevation),
		c.Distance * ce * math.Cos(c.Azimuth),
	}
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
}

func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// basis returns the eye and the world-space forward, right and up axes.
func (c *Camera) basis() (eye, fwd, right, up mgl64.Vec3) {
	eye = c.Eye()
	fwd = eye.Mul(-1).Normalize()
	right = fwd.Cross(mgl64.Vec3{0, 1, 0}).Normalize()
	up = right.Cross(fwd)
	return eye, fwd, right, up
}

// Ray returns the primary ray through pixel (px, py), (0, 0) being the
// top-left corner. D is unit length.
func (c *Camera) Ray(px, py float64) (O, D mgl64.Vec3) {
	eye, fwd, right, up := c.basis()
	return eye, c.rayDir(fwd, right, up, px, py)
}

func (c *Camera) rayDir(fwd, right, up mgl64.Vec3, px, py float64) mgl64.Vec3 {
	th := math.Tan(c.FOV / 2)
	x := (2*(px+0.5)/float64(c.Width) - 1) * th * c.Aspect
	y := (1 - 2*(py+0.5)/float64(c.Height)) * th
	return fwd.Add(right.Mul(x)).Add(up.Mul(y)).Normalize()
}

// Project maps a world point to pixel coordinates and its view depth.
// ok is false for points outside the near/far range.
func (c *Camera) Project(p mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	return project(c.Projection().Mul4(c.View()), c.Width, c.Height, p)
}

func project(viewProj mgl64.Mat4, w, h int, p mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	if ndc[2] < -1 || ndc[2] > 1 {
		return 0, 0, 0, false
	}
	sx = (ndc[0] + 1) / 2 * float64(w)
	sy = (1 - ndc[1]) / 2 * float64(h)
	return sx, sy, clip[3], true
}
