package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/df07/go-progressive-raytracer/pkg/integrator"
	"github.com/df07/go-progressive-raytracer/pkg/output"
	"github.com/df07/go-progressive-raytracer/pkg/render"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

func main() {
	app := &cli.App{
		Name:  "raytracer",
		Usage: "render a scene with a Monte Carlo path tracer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scene", Value: "cornell", Usage: "scene to render: cornell, wall"},
			&cli.IntFlag{Name: "width", Value: 400},
			&cli.IntFlag{Name: "height", Value: 400},
			&cli.IntFlag{Name: "spp", Value: 16, Usage: "samples per pixel"},
			&cli.IntFlag{Name: "workers", Value: 0, Usage: "parallel workers (0 = auto)"},
			&cli.IntFlag{Name: "tiles-x", Value: 0, Usage: "tile grid columns (0 = renderer default)"},
			&cli.IntFlag{Name: "tiles-y", Value: 0, Usage: "tile grid rows (0 = renderer default)"},
			&cli.Float64Flag{Name: "rr", Value: 0, Usage: "Russian-roulette survival probability (0 = scene default)"},
			&cli.StringFlag{Name: "out", Value: "render.ppm"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn, or error"},
			&cli.BoolFlag{Name: "verbose", Usage: "log per-bounce contributions"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger, err := newLogger(c.String("log-level"))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	sceneName := c.String("scene")
	width, height := c.Int("width"), c.Int("height")

	var scn *scene.Scene
	switch sceneName {
	case "cornell":
		scn = scene.NewCornellBoxScene(width, height)
	case "wall":
		scn = scene.NewSingleWallScene(width, height)
	default:
		return fmt.Errorf("unknown scene %q (want cornell or wall)", sceneName)
	}

	if rr := c.Float64("rr"); rr > 0 {
		scn.RussianRoulette = rr
	}

	logger.Info("starting render",
		zap.String("scene", sceneName),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("spp", c.Int("spp")),
		zap.Int("primitives", len(scn.Primitives)),
		zap.Int("lights", len(scn.Lights)),
		zap.Float64("russian_roulette", scn.RussianRoulette),
	)

	pt := integrator.NewPathTracingIntegrator()
	pt.Verbose = c.Bool("verbose")

	start := time.Now()
	fb := render.Render(scn, pt, render.Options{
		SamplesPerPixel: c.Int("spp"),
		Workers:         c.Int("workers"),
		TilesX:          c.Int("tiles-x"),
		TilesY:          c.Int("tiles-y"),
		ShowProgress:    true,
	})
	logger.Info("render complete", zap.Duration("elapsed", time.Since(start)))

	outPath := c.String("out")
	if err := output.WritePPMFile(outPath, fb); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("wrote output", zap.String("path", outPath))

	return nil
}

// newLogger builds a production zap logger at the given level name
// (debug, info, warn, error).
func newLogger(levelName string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}
