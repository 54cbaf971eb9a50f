package globe3d

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Spin holds per-layer yaw rates in radians per frame at FrameRate.
type Spin struct {
	Earth, Clouds, Stars float64
}

// Pose is the rotation state of every animated layer at one instant.
type Pose struct {
	EarthYaw, CloudYaw, StarYaw float64
}

// Tick advances the pose by frames (may be fractional) and returns the new
// pose; p is not modified.
func (p Pose) Tick(s Spin, frames float64) Pose {
	return Pose{
		EarthYaw: wrapAngle(p.EarthYaw + s.Earth*frames),
		CloudYaw: wrapAngle(p.CloudYaw + s.Clouds*frames),
		StarYaw:  wrapAngle(p.StarYaw + s.Stars*frames),
	}
}

// TickDuration converts wall time into frames at FrameRate.
func TickDuration(d time.Duration) float64 {
	return d.Seconds() * FrameRate
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// tiltedYaw builds local->world for a layer spinning about its own Y axis
// inside a group tilted about Z: Rz(-tilt)·Ry(yaw).
func tiltedYaw(tilt, yaw float64) mgl64.Mat3 {
	return mgl64.Rotate3DZ(-tilt).Mul3(mgl64.Rotate3DY(yaw))
}
