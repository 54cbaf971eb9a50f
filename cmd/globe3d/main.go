package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/lukaszgryglicki/globe3d/internal/globe3d"
	"github.com/lukaszgryglicki/globe3d/internal/starfield"
)

const defaultConfig = "scenes/earth.json"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "globe3d",
		Usage: "render a textured earth inside a random starfield",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", EnvVars: []string{"DEBUG"}, Usage: "verbose logging"},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{"GLOBE3D_CONFIG"},
				Value:   defaultConfig,
				Usage:   "scene config `FILE`",
			},
		},
		Before: func(c *cli.Context) error {
			l, err := globe3d.NewLoggerConfig(c.Bool("debug")).Build()
			if err != nil {
				return errors.Wrap(err, "building logger")
			}
			globe3d.SetLogger(l.Sugar())
			return nil
		},
		After: func(c *cli.Context) error {
			_ = globe3d.Logger().Sync()
			return nil
		},
		Commands: []*cli.Command{
			renderCommand(),
			windowCommand(),
			starsCommand(),
			schemaCommand(),
		},
	}
}

func loadConfig(c *cli.Context) (*globe3d.Config, error) {
	path := c.String("config")
	if _, err := os.Stat(path); err != nil && !c.IsSet("config") && path == defaultConfig {
		globe3d.Logger().Infof("%s not found, using built-in defaults", path)
		return globe3d.DefaultConfig(), nil
	}
	return globe3d.LoadConfig(path)
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render frames headless to an animated GIF or a 16-bit PNG sequence",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "frames", Aliases: []string{"n"}, Usage: "number of frames (overrides config)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "GIF `PATH` (overrides config)"},
			&cli.BoolFlag{Name: "png", EnvVars: []string{"PNG"}, Usage: "write 16-bit PNGs instead of a GIF"},
			&cli.StringFlag{Name: "png-prefix", Usage: "PNG file `PREFIX`"},
			&cli.StringFlag{Name: "raw", EnvVars: []string{"RAW"}, Usage: "also dump linear float64 frames to `PATH`"},
			&cli.BoolFlag{Name: "profile", EnvVars: []string{"PROFILE"}, Usage: "write a CPU profile to cpu.out"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.Bool("profile") {
				f, err := os.Create("cpu.out")
				if err != nil {
					return errors.Wrap(err, "creating profile")
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					_ = f.Close()
					return errors.Wrap(err, "starting profile")
				}
				defer func() {
					pprof.StopCPUProfile()
					_ = f.Close()
				}()
			}
			_, err = globe3d.Run(c.Context, cfg, globe3d.RunOptions{
				Frames:    c.Int("frames"),
				GIFOut:    c.String("out"),
				PNG:       c.Bool("png"),
				PNGPrefix: c.String("png-prefix"),
				RawOut:    c.String("raw"),
			})
			return err
		},
	}
}

func windowCommand() *cli.Command {
	return &cli.Command{
		Name:  "window",
		Usage: "show the scene in a live window (drag to orbit, wheel to zoom, Esc to quit)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "watch", Usage: "reload the config file when it changes"},
			&cli.IntFlag{Name: "scale", Usage: "window pixels per rendered pixel (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if s := c.Int("scale"); s > 0 {
				cfg.Window.Scale = s
			}
			var opts globe3d.WindowOptions
			if c.Bool("watch") {
				reload, err := globe3d.WatchConfig(c.Context, c.String("config"))
				if err != nil {
					return err
				}
				opts.Reload = reload
			}
			return globe3d.RunWindow(c.Context, cfg, opts)
		},
	}
}

func starsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stars",
		Usage: "sample one starfield shell and export it",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Value: starfield.DefaultNumStars, Usage: "number of stars"},
			&cli.Float64Flag{Name: "radius", Value: starfield.DefaultRadius, Usage: "shell outer radius"},
			&cli.Int64Flag{Name: "seed", Usage: "seed for a reproducible cloud (unset: random)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "stars.pcd", Usage: "output `PATH` (.pcd or .json)"},
			&cli.StringFlag{Name: "pcd-type", Value: "ascii", Usage: "PCD encoding: ascii or binary"},
			&cli.StringFlag{Name: "plot", Usage: "also plot the equal-area band histogram to `PATH`"},
			&cli.IntFlag{Name: "bands", Value: 20, Usage: "number of bands in the plot"},
		},
		Action: func(c *cli.Context) error {
			pcdType, err := starfield.ParsePCDType(c.String("pcd-type"))
			if err != nil {
				return err
			}
			var src starfield.Source
			if c.IsSet("seed") {
				src = starfield.NewSource(c.Int64("seed"))
			}
			cloud, err := starfield.Generate(c.Int("count"), c.Float64("radius"), src)
			if err != nil {
				return err
			}
			if err := starfield.WriteFile(cloud, c.String("out"), pcdType); err != nil {
				return err
			}
			lo, hi := cloud.DistanceRange()
			globe3d.Logger().Infow("wrote starfield", "path", c.String("out"), "stars", cloud.Len(), "minDistance", lo, "maxDistance", hi)
			if p := c.String("plot"); p != "" {
				if err := starfield.PlotBands(cloud, c.Int("bands"), p); err != nil {
					return err
				}
				globe3d.Logger().Infow("wrote band plot", "path", p)
			}
			return nil
		},
	}
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "print the JSON Schema of the scene config",
		Action: func(c *cli.Context) error {
			out, err := globe3d.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, string(out))
			return err
		},
	}
}
