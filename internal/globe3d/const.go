package globe3d

// Defaults for an unset config field.
const (
	Width           = 640
	Height          = 480
	Frames          = 120
	GIFOut          = "globe.gif"
	GIFDelay        = 4 // 100ths of a second per frame
	Gamma           = 1.0
	FrameRate       = 60 // ticks per second the spin rates are expressed against
	FOVDeg          = 75
	CameraDistance  = 3.0
	CameraNear      = 0.1
	CameraFar       = 1000
	MinDistance     = 1.5
	MaxDistance     = 20
	MaxElevationDeg = 89
	GlobeRadius     = 1.0
	TiltDeg         = 23.4
	CloudScale      = 1.003
	CloudOpacity    = 0.8
	Ambient         = 0.02
	NightIntensity  = 1.0
	TerminatorWidth = 0.15 // half-width, in N·L units, of the day/night blend
	DayColor        = "#1e4d8c"
	SunAzimuthDeg   = -53.13
	SunElevationDeg = 11.31
	SunIntensity    = 2.0
	SunColor        = "#ffffff"
	AtmosphereColor = "#0088ff"
	FresnelBias     = 0.1
	FresnelScale    = 1.0
	FresnelPower    = 4.0
	EarthSpin       = 0.002
	CloudSpin       = 0.0023
	StarSpin        = -0.0002
	StarColor       = "#ffffff"
	StarSize        = 0.2
	WindowScale     = 2
	WindowTPS       = 60
	// hot-loop constants
	epsDist = 1e-9
)

// Default star layers: count and radius per layer.
var defaultStarLayers = [...]struct {
	count  int
	radius float64
}{
	{2000, 25},
	{1500, 40},
	{1000, 60},
}
