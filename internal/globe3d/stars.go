package globe3d

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/lukaszgryglicki/globe3d/internal/starfield"
)

// StarLayer is one point-sprite shell of the background.
type StarLayer struct {
	Cloud     *starfield.PointCloud
	Color     RGB
	Size      float64 // world units with attenuation, pixels without
	Attenuate bool
}

// spriteDiameter returns the on-screen diameter in pixels of a star at
// view depth for a viewport of height h.
func (l *StarLayer) spriteDiameter(depth float64, h int) float64 {
	if !l.Attenuate {
		return l.Size
	}
	return l.Size * float64(h) / 2 / depth
}

// drawStars paints every layer, rotated by yaw about +Y, onto a black
// canvas of the camera's size. Returns the number of stars drawn.
func drawStars(layers []StarLayer, cam *Camera, yaw float64) (*image.RGBA, int) {
	dc := gg.NewContext(cam.Width, cam.Height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	viewProj := cam.Projection().Mul4(cam.View())
	rot := mgl64.Rotate3DY(yaw)
	drawn := 0
	for i := range layers {
		l := &layers[i]
		c := l.Color.toSRGB()
		dc.SetRGB(c.R, c.G, c.B)
		n := 0
		l.Cloud.Iterate(func(_ int, p r3.Vector) bool {
			w := rot.Mul3x1(mgl64.Vec3{p.X, p.Y, p.Z})
			sx, sy, depth, ok := project(viewProj, cam.Width, cam.Height, w)
			if !ok {
				return true
			}
			d := l.spriteDiameter(depth, cam.Height)
			if sx < -d || sy < -d || sx > float64(cam.Width)+d || sy > float64(cam.Height)+d {
				return true
			}
			dc.DrawCircle(sx, sy, d/2)
			n++
			return true
		})
		if n > 0 {
			dc.Fill()
		}
		drawn += n
	}
	return dc.Image().(*image.RGBA), drawn
}
