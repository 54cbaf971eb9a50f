package globe3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// sphere is an origin-centred textured sphere. R maps local to world, RT
// is its transpose.
type sphere struct {
	Radius float64
	R, RT  mgl64.Mat3
}

func newSphere(radius float64, r mgl64.Mat3) sphere {
	return sphere{Radius: radius, R: r, RT: r.Transpose()}
}

type sphereHit struct {
	t      float64
	P      mgl64.Vec3 // world hit point
	N      mgl64.Vec3 // world unit normal
	U, V   float64    // equirectangular texture coords
	inside bool
}

// intersect solves |O + tD|^2 = r^2 for the nearest t > eps. D must be a
// unit vector.
func (s sphere) intersect(O, D mgl64.Vec3) (hit sphereHit, ok bool) {
	b := O.Dot(D)
	c := O.Dot(O) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return sphereHit{}, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	inside := false
	if t <= epsDist {
		t = -b + sq
		inside = true
	}
	if t <= epsDist {
		return sphereHit{}, false
	}
	P := O.Add(D.Mul(t))
	N := P.Mul(1 / s.Radius)
	u, v := sphereUV(s.RT.Mul3x1(N))
	return sphereHit{t: t, P: P, N: N, U: u, V: v, inside: inside}, true
}

// sphereUV maps a local unit normal to equirectangular (u, v): u=0 at -X
// growing towards +Z, v=0 at the north pole (+Y).
func sphereUV(n mgl64.Vec3) (u, v float64) {
	u = math.Atan2(n[2], -n[0]) / (2 * math.Pi)
	if u < 0 {
		u += 1
	}
	v = math.Acos(clamp(n[1], -1, 1)) / math.Pi
	return u, v
}
