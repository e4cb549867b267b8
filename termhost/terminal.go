// Package termhost runs canvasfx effects in a terminal using tcell. The
// surface is rasterized in memory by the headless host and presented with
// half-block characters, so each terminal cell shows two vertically stacked
// pixels: one CSS pixel is half a cell tall and one cell wide.
package termhost

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/phanxgames/canvasfx"
	"github.com/phanxgames/canvasfx/headless"
)

const upperHalfBlock = '▀'

// Config controls a Terminal.
type Config struct {
	// DPR is the pixel ratio of the in-memory surface. Values above 1
	// render at a higher resolution and downsample when presenting.
	DPR float64
	// Background is composited under translucent pixels. Nil means the
	// terminal's default background is treated as black.
	Background color.Color
	// FrameInterval is the tick period of Run. Zero means 16ms.
	FrameInterval time.Duration
}

// Terminal hosts one full-screen surface on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	cfg    Config
	host   *headless.Host
	canvas *headless.Canvas
	bg     color.RGBA

	cols, rows int
	frame      *image.RGBA
}

// New initializes screen and lays a surface out over all of it.
func New(screen tcell.Screen, cfg Config) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()

	if cfg.DPR <= 0 {
		cfg.DPR = 1
	}
	if cfg.Background == nil {
		cfg.Background = color.Black
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 16 * time.Millisecond
	}

	cols, rows := screen.Size()
	t := &Terminal{
		screen: screen,
		cfg:    cfg,
		host:   headless.NewHost(cfg.DPR),
		canvas: headless.NewCanvas(canvasfx.RectFromSize(0, 0, float64(cols), float64(rows*2))),
		bg:     color.RGBAModel.Convert(cfg.Background).(color.RGBA),
		cols:   cols,
		rows:   rows,
	}
	return t, nil
}

// Host returns the canvasfx.Host for the terminal's surface.
func (t *Terminal) Host() canvasfx.Host { return t.host.Mount(t.canvas) }

// Canvas returns the in-memory surface.
func (t *Terminal) Canvas() *headless.Canvas { return t.canvas }

// Close restores the terminal.
func (t *Terminal) Close() { t.screen.Fini() }

// HandleEvent applies one tcell event and reports whether the terminal
// should keep running. Escape, Ctrl-C and q quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		if cols != t.cols || rows != t.rows {
			t.cols, t.rows = cols, rows
			t.screen.Sync()
			t.host.Resize(t.canvas, float64(cols), float64(rows*2))
		}
	case *tcell.EventFocus:
		t.host.SetDocumentHidden(!ev.Focused)
	case *tcell.EventMouse:
		x, y := ev.Position()
		// Aim at the middle of the cell, which spans two CSS pixels.
		t.host.MovePointer(t.canvas, float64(x)+0.5, float64(y*2)+1, ev.Buttons()&tcell.ButtonPrimary != 0)
	}
	return true
}

// Tick runs one animation frame and presents the result.
func (t *Terminal) Tick() {
	t.host.RunFrame()
	t.Present()
}

// Present copies the surface to the screen, two pixels per cell.
func (t *Terminal) Present() {
	snap := t.canvas.Snapshot()
	if snap == nil || t.cols <= 0 || t.rows <= 0 {
		t.screen.Clear()
		t.screen.Show()
		return
	}

	dst := image.Rect(0, 0, t.cols, t.rows*2)
	if t.frame == nil || t.frame.Bounds() != dst {
		t.frame = image.NewRGBA(dst)
	}
	if snap.Bounds().Size() == dst.Size() {
		draw.Draw(t.frame, dst, snap, snap.Bounds().Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(t.frame, dst, snap, snap.Bounds(), draw.Src, nil)
	}

	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			top := t.composite(t.frame.RGBAAt(x, y*2))
			bottom := t.composite(t.frame.RGBAAt(x, y*2+1))
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(x, y, upperHalfBlock, nil, style)
		}
	}
	t.screen.Show()
}

// composite blends a premultiplied pixel over the background.
func (t *Terminal) composite(c color.RGBA) tcell.Color {
	inv := 255 - int32(c.A)
	r := int32(c.R) + int32(t.bg.R)*inv/255
	g := int32(c.G) + int32(t.bg.G)*inv/255
	b := int32(c.B) + int32(t.bg.B)*inv/255
	return tcell.NewRGBColor(r, g, b)
}

// Run ticks frames and handles events until ctx is done or the user
// quits.
func (t *Terminal) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.cfg.FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go t.screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !t.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.Tick()
		}
	}
}
