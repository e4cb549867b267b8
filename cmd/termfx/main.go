// Termfx runs the canvasfx effects in a terminal. Each cell shows two
// pixels using half-block characters. Move the mouse to spray particles,
// or pass -image to rain particles over a picture.
//
// Press q, Escape or Ctrl-C to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/canvasfx"
	"github.com/phanxgames/canvasfx/internal/cliutil"
	"github.com/phanxgames/canvasfx/termhost"
)

func main() {
	var (
		imagePath = flag.String("image", "", "rain particles over this image instead of following the mouse")
		path      = flag.String("path", "rose", "spawn curve for the particle effect: rose, rose3, rose4, lissajous or none")
		dpr       = flag.Float64("dpr", 1, "render resolution multiplier")
		count     = flag.Int("n", 2000, "particle count for -image")
		logFile   = flag.String("log", "", "write logs to this file")
	)
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		cliutil.SetupLogging(f, true)
	}

	if err := run(*imagePath, *path, *dpr, *count); err != nil {
		fmt.Fprintf(os.Stderr, "termfx: %v\n", err)
		os.Exit(1)
	}
}

func run(imagePath, path string, dpr float64, count int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}

	bg := color.Color(color.White)
	if imagePath != "" {
		bg = color.Black
	}
	term, err := termhost.New(screen, termhost.Config{DPR: dpr, Background: bg})
	if err != nil {
		return err
	}
	defer term.Close()

	scope := canvasfx.NewScope()
	defer scope.Close()
	if err := mountEffect(scope, term.Host(), imagePath, path, count); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := term.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func mountEffect(scope *canvasfx.Scope, host canvasfx.Host, imagePath, path string, count int) error {
	if imagePath == "" {
		cfg := canvasfx.ParticleEffectConfig{
			PointerBurst: 10,
			// Terminal pixels are large; shrink particles faster.
			DecayRate: 0.5,
			Spawn:     canvasfx.SpawnConfig{Velocity: 0.5},
		}
		if curve := cliutil.CurveByName(path); curve != nil {
			cfg.Path = &canvasfx.CurvePath{Curve: curve}
		}
		_, err := canvasfx.MountParticles(scope, host, canvasfx.NewParticleEffect(cfg), canvasfx.DriverConfig{
			FadeColor:       color.White,
			FadeAlpha:       0.2,
			PauseWhenHidden: true,
		})
		return err
	}

	img, err := canvasfx.LoadImage(os.DirFS(filepath.Dir(imagePath)), filepath.Base(imagePath))
	if err != nil {
		return err
	}
	effect, err := canvasfx.NewImageEffectFromImage(img, canvasfx.SamplerOptions{}, canvasfx.ImageEffectConfig{
		Count: count,
		// Few particles cover a small surface; brighten them accordingly.
		BrightnessAlpha: 0.01,
	})
	if err != nil {
		return err
	}
	_, err = canvasfx.MountImageEffect(scope, host, effect, canvasfx.DriverConfig{
		FadeColor:       color.Black,
		FadeAlpha:       0.05,
		PauseWhenHidden: true,
	})
	return err
}
