package globe3d

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/lukaszgryglicki/globe3d/internal/starfield"
)

// Scene is everything that stays fixed between frames: textures, lights
// and the generated star layers.
type Scene struct {
	Radius       float64
	CloudRadius  float64
	Tilt         float64 // radians
	CloudOpacity float64
	Day          *Texture
	Night        *Texture // nil: no city lights
	Clouds       *Texture // nil: no cloud layer
	Light        Lighting
	Stars        []StarLayer
	Spin         Spin
}

// NewScene loads the textures named by cfg and samples its star layers.
// With cfg.Seed set, layer i is seeded with Seed+i; otherwise every run
// draws a new sky.
func NewScene(cfg *Config) (*Scene, error) {
	g := cfg.Globe
	light, err := newLighting(cfg)
	if err != nil {
		return nil, err
	}
	s := &Scene{
		Radius:       g.Radius,
		CloudRadius:  g.Radius * g.CloudScale,
		Tilt:         deg2rad(*g.TiltDeg),
		CloudOpacity: *g.CloudOpacity,
		Light:        light,
		Spin:         cfg.spin(),
	}

	if g.DayMap != "" {
		if s.Day, err = LoadTexture(resolveTexture(g.TextureDir, g.DayMap), g.MaxTextureWidth); err != nil {
			return nil, err
		}
	} else {
		c, err := parseColor(g.DayColor)
		if err != nil {
			return nil, err
		}
		s.Day = SolidTexture(c)
	}
	if g.NightMap != "" {
		if s.Night, err = LoadTexture(resolveTexture(g.TextureDir, g.NightMap), g.MaxTextureWidth); err != nil {
			return nil, err
		}
	}
	if g.CloudMap != "" && s.CloudOpacity > 0 {
		if s.Clouds, err = LoadTexture(resolveTexture(g.TextureDir, g.CloudMap), g.MaxTextureWidth); err != nil {
			return nil, err
		}
	}

	for i, lc := range cfg.Stars {
		var src starfield.Source
		if cfg.Seed != nil {
			src = starfield.NewSource(*cfg.Seed + int64(i))
		}
		cloud, err := lc.Generate(src)
		if err != nil {
			return nil, errors.Wrapf(err, "star layer #%d", i)
		}
		col, err := parseColor(lc.Color)
		if err != nil {
			return nil, errors.Wrapf(err, "star layer #%d", i)
		}
		s.Stars = append(s.Stars, StarLayer{
			Cloud:     cloud,
			Color:     col,
			Size:      lc.Size,
			Attenuate: *lc.SizeAttenuation,
		})
		dmin, dmax := cloud.DistanceRange()
		DebugLog("Star layer #%d: %d stars, distance [%.3f, %.3f]", i, cloud.Len(), dmin, dmax)
	}
	DebugLog("Created scene: radius=%.3f, tilt=%.2f°, clouds=%t, night=%t, stars=%d", s.Radius, *g.TiltDeg, s.Clouds != nil, s.Night != nil, s.StarCount())
	return s, nil
}

// StarCount is the number of stars over all layers.
func (s *Scene) StarCount() int {
	return lo.SumBy(s.Stars, func(l StarLayer) int { return l.Cloud.Len() })
}
