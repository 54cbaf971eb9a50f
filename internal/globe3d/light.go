package globe3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SunDirection returns the unit vector pointing from the origin towards
// the sun. Azimuth is measured from +Z towards +X, elevation up from the
// XZ plane, both in degrees.
func SunDirection(azimuthDeg, elevationDeg float64) mgl64.Vec3 {
	az, el := deg2rad(azimuthDeg), deg2rad(elevationDeg)
	return mgl64.Vec3{
		math.Cos(el) * math.Sin(az),
		math.Sin(el),
		math.Cos(el) * math.Cos(az),
	}
}

// Lighting holds the resolved light and atmosphere parameters.
type Lighting struct {
	Sun     mgl64.Vec3 // unit, towards the sun
	SunRad  RGB        // color * intensity
	Ambient float64
	Night   float64 // night map multiplier

	Rim      RGB
	RimBias  float64
	RimScale float64
	RimPower float64
}

func newLighting(cfg *Config) (Lighting, error) {
	sun, err := parseColor(cfg.Sun.Color)
	if err != nil {
		return Lighting{}, err
	}
	rim, err := parseColor(cfg.Atmosphere.Color)
	if err != nil {
		return Lighting{}, err
	}
	a := cfg.Atmosphere
	return Lighting{
		Sun:      SunDirection(*cfg.Sun.AzimuthDeg, *cfg.Sun.ElevationDeg),
		SunRad:   sun.Scale(cfg.Sun.Intensity),
		Ambient:  *cfg.Globe.Ambient,
		Night:    *cfg.Globe.NightIntensity,
		Rim:      rim.Scale(*a.Intensity),
		RimBias:  *a.Bias,
		RimScale: *a.Scale,
		RimPower: a.Power,
	}, nil
}

// diffuse lights albedo with the ambient term plus a Lambert sun term.
func (l *Lighting) diffuse(albedo RGB, n mgl64.Vec3) RGB {
	ndl := math.Max(n.Dot(l.Sun), 0)
	irr := l.SunRad.Scale(ndl / math.Pi).Add(RGB{l.Ambient, l.Ambient, l.Ambient})
	return albedo.Mul(irr)
}

// nightWeight is 1 on the dark side, 0 on the lit side, with a smooth
// band of TerminatorWidth on each side of the terminator.
func (l *Lighting) nightWeight(n mgl64.Vec3) float64 {
	return smoothstep(TerminatorWidth, -TerminatorWidth, n.Dot(l.Sun))
}

// fresnel is the rim glow factor for normal n seen along view ray d.
func (l *Lighting) fresnel(n, d mgl64.Vec3) float64 {
	cos := clamp(-n.Dot(d), 0, 1)
	return clamp(l.RimBias+l.RimScale*math.Pow(1-cos, l.RimPower), 0, 1)
}
