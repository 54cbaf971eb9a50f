package globe3d

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/lukaszgryglicki/globe3d/internal/starfield"
)

// ErrInvalidConfig wraps every config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type CameraCfg struct {
	FOVDeg       float64 `json:"fovDeg,omitempty"`
	Distance     float64 `json:"distance,omitempty"`
	AzimuthDeg   float64 `json:"azimuthDeg,omitempty"`
	ElevationDeg float64 `json:"elevationDeg,omitempty"`
	Near         float64 `json:"near,omitempty"`
	Far          float64 `json:"far,omitempty"`
}

type GlobeCfg struct {
	Radius  float64  `json:"radius,omitempty"`
	TiltDeg *float64 `json:"tiltDeg,omitempty"`
	// Texture paths; relative ones are resolved against TextureDir.
	TextureDir      string `json:"textureDir,omitempty"`
	DayMap          string `json:"dayMap,omitempty"`
	NightMap        string `json:"nightMap,omitempty"`
	CloudMap        string `json:"cloudMap,omitempty"`
	MaxTextureWidth int    `json:"maxTextureWidth,omitempty"`
	// DayColor is used when DayMap is empty.
	DayColor       string   `json:"dayColor,omitempty"`
	CloudScale     float64  `json:"cloudScale,omitempty"`
	CloudOpacity   *float64 `json:"cloudOpacity,omitempty"`
	NightIntensity *float64 `json:"nightIntensity,omitempty"`
	Ambient        *float64 `json:"ambient,omitempty"`
}

type SunCfg struct {
	AzimuthDeg   *float64 `json:"azimuthDeg,omitempty"`
	ElevationDeg *float64 `json:"elevationDeg,omitempty"`
	Intensity    float64  `json:"intensity,omitempty"`
	Color        string   `json:"color,omitempty"`
}

// AtmosphereCfg is the fresnel rim glow; Intensity 0 disables it.
type AtmosphereCfg struct {
	Color     string   `json:"color,omitempty"`
	Intensity *float64 `json:"intensity,omitempty"`
	Bias      *float64 `json:"bias,omitempty"`
	Scale     *float64 `json:"scale,omitempty"`
	Power     float64  `json:"power,omitempty"`
}

// SpinCfg holds rotation rates in radians per frame at FrameRate.
type SpinCfg struct {
	Earth  *float64 `json:"earth,omitempty"`
	Clouds *float64 `json:"clouds,omitempty"`
	Stars  *float64 `json:"stars,omitempty"`
}

// StarLayerCfg is one starfield shell. Unset count/radius take the
// starfield defaults (10 stars at radius 25).
type StarLayerCfg struct {
	starfield.Options
	Color           string  `json:"color,omitempty"`
	Size            float64 `json:"size,omitempty"`
	SizeAttenuation *bool   `json:"sizeAttenuation,omitempty"`
}

type WindowCfg struct {
	Scale int    `json:"scale,omitempty"` // window pixels per rendered pixel
	TPS   int    `json:"tps,omitempty"`
	Title string `json:"title,omitempty"`
}

type Config struct {
	Width      int            `json:"width,omitempty"`
	Height     int            `json:"height,omitempty"`
	Frames     int            `json:"frames,omitempty"`
	GIFOut     string         `json:"gifOut,omitempty"`
	GIFDelay   int            `json:"gifDelay,omitempty"`
	Gamma      float64        `json:"gamma,omitempty"`
	Seed       *int64         `json:"seed,omitempty"`
	Camera     CameraCfg      `json:"camera"`
	Globe      GlobeCfg       `json:"globe"`
	Sun        SunCfg         `json:"sun"`
	Atmosphere AtmosphereCfg  `json:"atmosphere"`
	Spin       SpinCfg        `json:"spin"`
	Stars      []StarLayerCfg `json:"stars,omitempty"`
	Window     WindowCfg      `json:"window"`
}

func float64Ptr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool          { return &v }

// DefaultConfig returns a fully defaulted config with no textures.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads a JSON config, fills defaults and validates it.
// An empty path yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	DebugLog("Loaded config from %s: size=(%d, %d), frames=%d, layers=%d, gamma=%f", path, cfg.Width, cfg.Height, cfg.Frames, len(cfg.Stars), cfg.Gamma)
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Width <= 0 {
		cfg.Width = Width
	}
	if cfg.Height <= 0 {
		cfg.Height = Height
	}
	if cfg.Frames <= 0 {
		cfg.Frames = Frames
	}
	if cfg.GIFOut == "" {
		cfg.GIFOut = GIFOut
	}
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = GIFDelay
	}
	if cfg.Gamma <= 0 {
		cfg.Gamma = Gamma
	}

	c := &cfg.Camera
	if c.FOVDeg == 0 {
		c.FOVDeg = FOVDeg
	}
	if c.Distance == 0 {
		c.Distance = CameraDistance
	}
	if c.Near == 0 {
		c.Near = CameraNear
	}
	if c.Far == 0 {
		c.Far = CameraFar
	}

	g := &cfg.Globe
	if g.Radius == 0 {
		g.Radius = GlobeRadius
	}
	if g.TiltDeg == nil {
		g.TiltDeg = float64Ptr(TiltDeg)
	}
	if g.DayColor == "" {
		g.DayColor = DayColor
	}
	if g.CloudScale == 0 {
		g.CloudScale = CloudScale
	}
	if g.CloudOpacity == nil {
		g.CloudOpacity = float64Ptr(CloudOpacity)
	}
	if g.NightIntensity == nil {
		g.NightIntensity = float64Ptr(NightIntensity)
	}
	if g.Ambient == nil {
		g.Ambient = float64Ptr(Ambient)
	}

	s := &cfg.Sun
	if s.AzimuthDeg == nil {
		s.AzimuthDeg = float64Ptr(SunAzimuthDeg)
	}
	if s.ElevationDeg == nil {
		s.ElevationDeg = float64Ptr(SunElevationDeg)
	}
	if s.Intensity == 0 {
		s.Intensity = SunIntensity
	}
	if s.Color == "" {
		s.Color = SunColor
	}

	a := &cfg.Atmosphere
	if a.Color == "" {
		a.Color = AtmosphereColor
	}
	if a.Intensity == nil {
		a.Intensity = float64Ptr(1)
	}
	if a.Bias == nil {
		a.Bias = float64Ptr(FresnelBias)
	}
	if a.Scale == nil {
		a.Scale = float64Ptr(FresnelScale)
	}
	if a.Power == 0 {
		a.Power = FresnelPower
	}

	sp := &cfg.Spin
	if sp.Earth == nil {
		sp.Earth = float64Ptr(EarthSpin)
	}
	if sp.Clouds == nil {
		sp.Clouds = float64Ptr(CloudSpin)
	}
	if sp.Stars == nil {
		sp.Stars = float64Ptr(StarSpin)
	}

	if cfg.Stars == nil {
		for _, l := range defaultStarLayers {
			cfg.Stars = append(cfg.Stars, StarLayerCfg{
				Options: starfield.Options{
					NumStars: starfield.Int(l.count),
					Radius:   starfield.Float64(l.radius),
				},
			})
		}
	}
	for i := range cfg.Stars {
		l := &cfg.Stars[i]
		if l.Color == "" {
			l.Color = StarColor
		}
		if l.Size == 0 {
			l.Size = StarSize
		}
		if l.SizeAttenuation == nil {
			l.SizeAttenuation = boolPtr(true)
		}
	}

	w := &cfg.Window
	if w.Scale <= 0 {
		w.Scale = WindowScale
	}
	if w.TPS <= 0 {
		w.TPS = WindowTPS
	}
	if w.Title == "" {
		w.Title = "globe3d"
	}
}

// Validate checks a defaulted config.
func (cfg *Config) Validate() error {
	bad := func(format string, args ...interface{}) error {
		return errors.Wrapf(ErrInvalidConfig, format, args...)
	}
	c := cfg.Camera
	if !(c.FOVDeg > 0 && c.FOVDeg < 180) {
		return bad("camera fovDeg must be in (0, 180), got %g", c.FOVDeg)
	}
	if !(c.Near > 0 && c.Far > c.Near) {
		return bad("camera needs 0 < near < far, got near=%g far=%g", c.Near, c.Far)
	}
	g := cfg.Globe
	if !(g.Radius > 0) || !isFinite(g.Radius) {
		return bad("globe radius must be > 0, got %g", g.Radius)
	}
	if c.Distance <= g.Radius*g.CloudScale {
		return bad("camera distance %g must be outside the globe (cloud shell %g)", c.Distance, g.Radius*g.CloudScale)
	}
	if g.CloudScale < 1 {
		return bad("cloudScale must be >= 1, got %g", g.CloudScale)
	}
	if o := *g.CloudOpacity; o < 0 || o > 1 {
		return bad("cloudOpacity must be in [0, 1], got %g", o)
	}
	if *g.NightIntensity < 0 || *g.Ambient < 0 {
		return bad("nightIntensity and ambient must be >= 0")
	}
	if g.MaxTextureWidth < 0 {
		return bad("maxTextureWidth must be >= 0, got %d", g.MaxTextureWidth)
	}
	if cfg.Sun.Intensity < 0 || *cfg.Atmosphere.Intensity < 0 {
		return bad("sun and atmosphere intensity must be >= 0")
	}
	for _, hex := range []string{g.DayColor, cfg.Sun.Color, cfg.Atmosphere.Color} {
		if _, err := parseColor(hex); err != nil {
			return errors.Wrap(ErrInvalidConfig, err.Error())
		}
	}
	// Stars are drawn behind the globe, so no star may be nearer to the
	// camera than the far side of the cloud shell.
	limit := 2*c.Distance + g.Radius*g.CloudScale
	outer := 0.0
	for i, l := range cfg.Stars {
		count, radius := l.Resolve()
		if count < 0 {
			return bad("star layer #%d: numStars must be >= 0, got %d", i, count)
		}
		if !(radius > 0) || math.IsInf(radius, 0) {
			return bad("star layer #%d: radius must be > 0, got %g", i, radius)
		}
		if starfield.MinJitter*radius <= limit {
			return bad("star layer #%d: radius %g puts stars in front of the globe (need %g·R > %g)", i, radius, starfield.MinJitter, limit)
		}
		if l.Size <= 0 {
			return bad("star layer #%d: size must be > 0, got %g", i, l.Size)
		}
		if _, err := parseColor(l.Color); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "star layer #%d: %v", i, err)
		}
		outer = math.Max(outer, radius)
	}
	if len(cfg.Stars) > 0 && c.Far <= c.Distance+outer {
		return bad("camera far %g clips star layers (need > %g)", c.Far, c.Distance+outer)
	}
	return nil
}

// spin returns the configured rates.
func (cfg *Config) spin() Spin {
	return Spin{Earth: *cfg.Spin.Earth, Clouds: *cfg.Spin.Clouds, Stars: *cfg.Spin.Stars}
}
