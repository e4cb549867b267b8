package ebitenhost

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay shows FPS, TPS and the particle count in the top-left corner.
// The text is re-rendered about every half second.
type fpsOverlay struct {
	img        *ebiten.Image
	counter    interface{ Len() int }
	lastUpdate time.Time
}

func newFPSOverlay(counter interface{ Len() int }) *fpsOverlay {
	// 140x48 fits three lines of debug text.
	return &fpsOverlay{img: ebiten.NewImage(140, 48), counter: counter}
}

func (o *fpsOverlay) update() {
	now := time.Now()
	if now.Sub(o.lastUpdate) < 500*time.Millisecond {
		return
	}
	o.lastUpdate = now

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text(ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *fpsOverlay) text(fps, tps float64) string {
	s := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
	if o.counter != nil {
		s += fmt.Sprintf("\nParticles: %d", o.counter.Len())
	}
	return s
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
