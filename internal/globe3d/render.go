package globe3d

import (
	"context"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Renderer draws a scene through a camera. The camera may be changed
// between calls to Render but not during one.
type Renderer struct {
	Scene   *Scene
	Camera  *Camera
	Workers int
	Stats   *RenderStats
}

func NewRenderer(scene *Scene, cam *Camera) *Renderer {
	return &Renderer{Scene: scene, Camera: cam, Workers: runtime.NumCPU(), Stats: &RenderStats{}}
}

// Render produces one frame for pose. Stars are drawn first, then the
// globe and clouds are ray traced over them one row per task.
func (r *Renderer) Render(ctx context.Context, pose Pose) (*Frame, error) {
	cam := r.Camera
	frame, err := NewFrame(cam.Width, cam.Height)
	if err != nil {
		return nil, err
	}
	bg, stars := drawStars(r.Scene.Stars, cam, pose.StarYaw)
	frame.loadRGBA(bg)

	s := r.Scene
	earth := newSphere(s.Radius, tiltedYaw(s.Tilt, pose.EarthYaw))
	var clouds *sphere
	if s.Clouds != nil {
		c := newSphere(s.CloudRadius, tiltedYaw(s.Tilt, pose.CloudYaw))
		clouds = &c
	}
	eye, fwd, right, up := cam.basis()
	DebugLogOnce("Rendering %dx%d with %d workers", frame.W, frame.H, r.Workers)

	rows := make([]PixelCounts, frame.H)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Workers))
	for y := 0; y < frame.H; y++ {
		if gctx.Err() != nil {
			break
		}
		y := y
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for x := 0; x < frame.W; x++ {
				D := cam.rayDir(fwd, right, up, float64(x), float64(y))
				c, cat := s.shade(eye, D, earth, clouds, frame.At(x, y))
				frame.Set(x, y, c)
				rows[y][cat]++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "rendering frame")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "rendering frame")
	}

	var counts PixelCounts
	for _, rc := range rows {
		counts.add(rc)
	}
	if r.Stats != nil {
		r.Stats.record(counts, stars)
	}
	return frame, nil
}

// shade returns the color seen along ray (O, D) over background bg.
func (s *Scene) shade(O, D mgl64.Vec3, earth sphere, clouds *sphere, bg RGB) (RGB, Category) {
	col, cat := bg, Space
	if h, ok := earth.intersect(O, D); ok {
		col, cat = s.shadeEarth(h, D), DaySide
		if h.N.Dot(s.Light.Sun) <= 0 {
			cat = NightSide
		}
	}
	if clouds == nil {
		return col, cat
	}
	h, ok := clouds.intersect(O, D)
	if !ok {
		return col, cat
	}
	tex, a := s.Clouds.Sample(h.U, h.V)
	alpha := clamp(luminance(tex)*a*s.CloudOpacity, 0, 1)
	if alpha == 0 {
		return col, cat
	}
	if cat == Space {
		cat = CloudRim
	}
	return col.Lerp(s.Light.diffuse(tex, h.N), alpha), cat
}

func (s *Scene) shadeEarth(h sphereHit, D mgl64.Vec3) RGB {
	albedo, _ := s.Day.Sample(h.U, h.V)
	c := s.Light.diffuse(albedo, h.N)
	if s.Night != nil && s.Light.Night > 0 {
		if w := s.Light.nightWeight(h.N); w > 0 {
			lights, _ := s.Night.Sample(h.U, h.V)
			c = c.Add(lights.Scale(w * s.Light.Night))
		}
	}
	if f := s.Light.fresnel(h.N, D); f > 0 {
		c = c.Add(s.Light.Rim.Scale(f))
	}
	return c
}
