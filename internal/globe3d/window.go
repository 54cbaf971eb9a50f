//go:build cgo

package globe3d

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
)

// WindowOptions configures the live window.
type WindowOptions struct {
	// Reload delivers replacement configs, e.g. from WatchConfig.
	Reload <-chan *Config
}

// RunWindow opens a resizable window that animates the scene in real
// time. Left-drag orbits, the wheel zooms, Esc quits. It blocks until the
// window closes or ctx ends.
func RunWindow(ctx context.Context, cfg *Config, opts WindowOptions) error {
	g, err := newGlobeGame(ctx, cfg, opts.Reload)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Window.Scale, cfg.Height*cfg.Window.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "running window")
	}
	g.renderer.Stats.Log()
	return nil
}

type globeGame struct {
	ctx      context.Context
	cfg      *Config
	renderer *Renderer
	reload   <-chan *Config
	pose     Pose
	last     time.Time

	dragging     bool
	lastX, lastY int

	img   *ebiten.Image
	frame *Frame
}

func newGlobeGame(ctx context.Context, cfg *Config, reload <-chan *Config) (*globeGame, error) {
	scene, err := NewScene(cfg)
	if err != nil {
		return nil, err
	}
	return &globeGame{
		ctx:      ctx,
		cfg:      cfg,
		renderer: NewRenderer(scene, NewCamera(cfg)),
		reload:   reload,
	}, nil
}

// applyConfig swaps in a reloaded config, keeping the orbit and pose.
func (g *globeGame) applyConfig(cfg *Config) {
	scene, err := NewScene(cfg)
	if err != nil {
		Logger().Warnw("keeping previous scene", "error", err)
		return
	}
	old := g.renderer.Camera
	cam := NewCamera(cfg)
	cam.Azimuth, cam.Elevation = old.Azimuth, old.Elevation
	cam.Distance = clamp(old.Distance, cam.MinDistance, cam.MaxDistance)
	cam.Resize(old.Width, old.Height)
	// The window scale comes from the command line, not the scene file.
	cfg.Window.Scale = g.cfg.Window.Scale
	g.cfg = cfg
	g.renderer.Scene = scene
	g.renderer.Camera = cam
}

func (g *globeGame) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	select {
	case cfg, ok := <-g.reload:
		if ok {
			g.applyConfig(cfg)
		}
	default:
	}

	now := time.Now()
	if !g.last.IsZero() {
		g.pose = g.pose.Tick(g.renderer.Scene.Spin, TickDuration(now.Sub(g.last)))
	}
	g.last = now

	cam := g.renderer.Camera
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			cam.Orbit(float64(x-g.lastX), float64(y-g.lastY))
		}
		g.dragging = true
		g.lastX, g.lastY = x, y
	} else {
		g.dragging = false
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		cam.Zoom(dy)
	}
	return nil
}

func (g *globeGame) Draw(screen *ebiten.Image) {
	frame, err := g.renderer.Render(g.ctx, g.pose)
	if err != nil {
		if g.frame == nil {
			return
		}
		frame = g.frame // keep showing the last good frame
	}
	g.frame = frame
	if g.img == nil || g.img.Bounds().Dx() != frame.W || g.img.Bounds().Dy() != frame.H {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(frame.W, frame.H)
	}
	g.img.WritePixels(frame.ToNRGBA(g.cfg.Gamma).Pix)
	screen.DrawImage(g.img, nil)
}

// Layout renders at 1/Scale of the window size and tracks resizes.
func (g *globeGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := max(1, g.cfg.Window.Scale)
	w, h := max(1, outsideWidth/s), max(1, outsideHeight/s)
	cam := g.renderer.Camera
	if cam.Width != w || cam.Height != h {
		cam.Resize(w, h)
		DebugLog("Resized viewport to (%d, %d)", w, h)
	}
	return w, h
}
