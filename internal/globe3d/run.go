package globe3d

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// RunOptions overrides parts of the config for a headless render.
type RunOptions struct {
	Frames int    // > 0 overrides cfg.Frames
	GIFOut string // overrides cfg.GIFOut
	PNG    bool   // write a 16-bit PNG sequence instead of a GIF
	// PNGPrefix defaults to PNGPrefix(gif path).
	PNGPrefix string
	RawOut    string // also dump linear frames here
	// Progress, if set, is called after each frame reaches the outputs.
	Progress func(done, total int)
}

// PNGPrefix derives a PNG sequence prefix from a GIF path:
// "gifs/earth.gif" becomes "pngs/earth".
func PNGPrefix(gifOut string) string {
	prefix := strings.TrimSuffix(gifOut, ".gif")
	if strings.HasPrefix(prefix, "gifs/") {
		prefix = "pngs/" + strings.TrimPrefix(prefix, "gifs/")
	}
	return prefix
}

// Run renders the animation described by cfg, advancing the pose one tick
// per frame, and streams the frames to the configured outputs. When ctx
// ends mid-run the outputs are closed with the frames finished so far
// (a shorter GIF, fewer PNGs) and the context error is returned; the raw
// dump reports itself truncated.
func Run(ctx context.Context, cfg *Config, opts RunOptions) (*RenderStats, error) {
	frames := cfg.Frames
	if opts.Frames > 0 {
		frames = opts.Frames
	}
	gifOut := cfg.GIFOut
	if opts.GIFOut != "" {
		gifOut = opts.GIFOut
	}

	scene, err := NewScene(cfg)
	if err != nil {
		return nil, err
	}
	renderer := NewRenderer(scene, NewCamera(cfg))

	var sinks multiSink
	if opts.PNG {
		prefix := opts.PNGPrefix
		if prefix == "" {
			prefix = PNGPrefix(gifOut)
		}
		sinks = append(sinks, NewPNGSequenceWriter(prefix, frames, cfg.Gamma))
	} else {
		gw, err := NewGIFWriter(gifOut, cfg.GIFDelay, cfg.Gamma)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, gw)
	}
	if opts.RawOut != "" {
		raw, err := NewRawWriter(opts.RawOut, cfg.Width, cfg.Height, frames)
		if err != nil {
			return nil, multierr.Combine(err, sinks.Close())
		}
		sinks = append(sinks, raw)
	}

	step := max(1, frames/100)
	start := time.Now()
	var pose Pose
	for k := 0; k < frames; k++ {
		if k%step == 0 {
			Logger().Infof("[render] %.2f%%", float64(k+1)*100/float64(frames))
		}
		frame, err := renderer.Render(ctx, pose)
		if err != nil {
			return nil, multierr.Combine(errors.Wrapf(err, "frame %d", k), sinks.Close())
		}
		if err := sinks.WriteFrame(frame); err != nil {
			return nil, multierr.Combine(err, sinks.Close())
		}
		if opts.Progress != nil {
			opts.Progress(k+1, frames)
		}
		pose = pose.Tick(scene.Spin, 1)
	}
	if err := sinks.Close(); err != nil {
		return nil, err
	}
	DebugLog("Frames: %d, time: %s", frames, time.Since(start))
	renderer.Stats.Log()
	return renderer.Stats, nil
}
