// Canvasfx-render plays a JSON render script against an in-memory surface
// and writes the requested screenshots as PNG files. It needs no display,
// which makes it suitable for CI and for checking effects by eye.
//
// A script lays out the surface and lists steps:
//
//	{
//	  "width": 320, "height": 200, "dpr": 2,
//	  "steps": [
//	    {"action": "drag", "fromX": 20, "fromY": 100, "toX": 300, "toY": 100, "frames": 30},
//	    {"action": "screenshot", "label": "trail"},
//	    {"action": "resize", "width": 200, "height": 200},
//	    {"action": "frames", "frames": 10},
//	    {"action": "screenshot", "label": "resized"}
//	  ]
//	}
//
// Usage:
//
//	canvasfx-render -script run.json -out shots [-image photo.png] [-path rose]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/phanxgames/canvasfx"
	"github.com/phanxgames/canvasfx/headless"
	"github.com/phanxgames/canvasfx/internal/cliutil"
)

func main() {
	var (
		scriptPath = flag.String("script", "", "render script (JSON)")
		outDir     = flag.String("out", ".", "directory for screenshots")
		imagePath  = flag.String("image", "", "run the image effect over this image")
		path       = flag.String("path", "", "spawn curve for the particle effect: rose, rose3, rose4, lissajous or none")
		seed       = flag.Uint64("seed", 1, "random seed")
		verbose    = flag.Bool("v", false, "log every step")
	)
	flag.Parse()
	cliutil.SetupLogging(os.Stderr, *verbose)

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: canvasfx-render -script <file.json> [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	shots, err := render(*scriptPath, *outDir, *imagePath, *path, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "canvasfx-render: %v\n", err)
		os.Exit(1)
	}
	for _, s := range shots {
		fmt.Println(s)
	}
}

func render(scriptPath, outDir, imagePath, path string, seed uint64) ([]string, error) {
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, err
	}
	script, err := headless.LoadScript(data)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	host := headless.NewHost(script.DPR)
	canvas := headless.NewCanvas(canvasfx.RectFromSize(0, 0, script.Width, script.Height))
	rng := rand.New(rand.NewPCG(seed, seed))

	scope := canvasfx.NewScope()
	defer scope.Close()
	if err := mount(scope, host.Mount(canvas), imagePath, path, rng); err != nil {
		return nil, err
	}

	runner := headless.NewRunner(script, host, canvas, outDir)
	if err := runner.Run(); err != nil {
		return nil, err
	}
	return runner.Screenshots(), nil
}

func mount(scope *canvasfx.Scope, h canvasfx.Host, imagePath, path string, rng *rand.Rand) error {
	if imagePath == "" {
		cfg := canvasfx.ParticleEffectConfig{Rand: rng}
		if curve := cliutil.CurveByName(path); curve != nil {
			cfg.Path = &canvasfx.CurvePath{Curve: curve, PerFrame: 3}
		}
		_, err := canvasfx.MountParticles(scope, h, canvasfx.NewParticleEffect(cfg), canvasfx.DriverConfig{
			FadeColor: color.White,
			FadeAlpha: 0.2,
		})
		return err
	}

	img, err := canvasfx.LoadImage(os.DirFS(filepath.Dir(imagePath)), filepath.Base(imagePath))
	if err != nil {
		return err
	}
	effect, err := canvasfx.NewImageEffectFromImage(img, canvasfx.SamplerOptions{}, canvasfx.ImageEffectConfig{Rand: rng})
	if err != nil {
		return err
	}
	_, err = canvasfx.MountImageEffect(scope, h, effect, canvasfx.DriverConfig{
		FadeColor: color.Black,
		FadeAlpha: 0.05,
	})
	return err
}
