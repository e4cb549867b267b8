// Pixeleffect rains thousands of small particles over an image. Each
// particle takes the color of the pixel beneath it and is drawn with an
// alpha proportional to that pixel's brightness, so the picture slowly
// emerges from a black background.
//
// Usage:
//
//	pixeleffect -image photo.jpg [-n 10000]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/phanxgames/canvasfx"
	"github.com/phanxgames/canvasfx/ebitenhost"
	"github.com/phanxgames/canvasfx/internal/cliutil"
)

const windowTitle = "canvasfx: Pixel Effect"

func main() {
	var (
		imagePath = flag.String("image", "", "image to sample (PNG, JPEG, GIF, BMP or WebP)")
		count     = flag.Int("n", canvasfx.DefaultImageParticles, "number of particles")
		fadeIn    = flag.Float64("fadein", 2, "seconds to ramp particle alpha in")
		width     = flag.Int("width", 800, "window width")
		height    = flag.Int("height", 600, "window height")
		showFPS   = flag.Bool("fps", true, "show FPS and particle count")
		verbose   = flag.Bool("v", false, "log frame statistics")
	)
	flag.Parse()
	cliutil.SetupLogging(os.Stderr, *verbose)

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: pixeleffect -image <file> [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	fsys := os.DirFS(filepath.Dir(*imagePath))
	name := filepath.Base(*imagePath)
	cfg, err := canvasfx.DecodeConfig(fsys, name)
	if err != nil {
		log.Fatal(err)
	}
	if err := canvasfx.CheckPixelBudget(cfg.Width, cfg.Height, canvasfx.DefaultMaxSamplePixels); err != nil {
		log.Fatal(err)
	}
	img, err := canvasfx.LoadImage(fsys, name)
	if err != nil {
		log.Fatal(err)
	}

	effect, err := canvasfx.NewImageEffectFromImage(img, canvasfx.SamplerOptions{}, canvasfx.ImageEffectConfig{
		Count:  *count,
		FadeIn: float32(*fadeIn),
	})
	if err != nil {
		log.Fatal(err)
	}

	game := ebitenhost.New(ebitenhost.Config{
		Title:        windowTitle,
		Width:        *width,
		Height:       *height,
		ShowFPS:      *showFPS,
		Counter:      effect,
		QuitOnEscape: true,
	})

	scope := canvasfx.NewScope()
	defer scope.Close()
	if _, err := canvasfx.MountImageEffect(scope, game.Host(), effect, canvasfx.DriverConfig{
		FadeColor:       color.Black,
		FadeAlpha:       0.05,
		PauseWhenHidden: true,
		Debug:           *verbose,
	}); err != nil {
		log.Fatal(err)
	}

	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
