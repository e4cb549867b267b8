// Particles opens a window where moving the mouse sprays shrinking black
// particles over a white background that fades their trails. With -path a
// second stream is spawned along a pulsing rose curve centered in the window.
//
// Press Escape to quit.
package main

import (
	"flag"
	"image/color"
	"log"
	"os"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/canvasfx"
	"github.com/phanxgames/canvasfx/ebitenhost"
	"github.com/phanxgames/canvasfx/internal/cliutil"
)

const windowTitle = "canvasfx: Particles"

func main() {
	var (
		width   = flag.Int("width", 800, "window width")
		height  = flag.Int("height", 600, "window height")
		path    = flag.String("path", "", "spawn along a curve: rose, rose3, rose4, lissajous or none")
		burst   = flag.Int("burst", canvasfx.DefaultPointerBurst, "particles spawned per pointer move")
		showFPS = flag.Bool("fps", true, "show FPS and particle count")
		verbose = flag.Bool("v", false, "log frame statistics")
	)
	flag.Parse()
	cliutil.SetupLogging(os.Stderr, *verbose)

	cfg := canvasfx.ParticleEffectConfig{PointerBurst: *burst}
	if curve := cliutil.CurveByName(*path); curve != nil {
		pulse := canvasfx.NewTween(0.7, 1, 2, ease.InOutSine)
		pulse.Yoyo = true
		cfg.Path = &canvasfx.CurvePath{Curve: curve, PerFrame: 3, Pulse: pulse}
	}
	effect := canvasfx.NewParticleEffect(cfg)

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
	if _, err := canvasfx.MountParticles(scope, game.Host(), effect, canvasfx.DriverConfig{
		FadeColor:       color.White,
		FadeAlpha:       0.2,
		PauseWhenHidden: true,
		Debug:           *verbose,
	}); err != nil {
		log.Fatal(err)
	}

	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
