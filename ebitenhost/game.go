// Package ebitenhost runs canvasfx effects in a desktop window using
// Ebitengine. The window is the viewport and a single Surface fills it.
package ebitenhost

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/canvasfx"
	"github.com/phanxgames/canvasfx/internal/hostkit"
)

// Config controls the window a Game opens.
type Config struct {
	Title  string
	Width  int // initial window width in device-independent pixels
	Height int
	// ShowFPS draws an FPS, TPS and particle-count overlay.
	ShowFPS bool
	// Counter reports the particle count for the overlay.
	Counter interface{ Len() int }
	// QuitOnEscape ends the game when Escape is pressed.
	QuitOnEscape bool
}

type intersectionObserver struct {
	el        canvasfx.Element
	fn        func([]canvasfx.IntersectionEntry)
	delivered bool
}

type resizeObserver struct {
	el canvasfx.Element
	fn func([]canvasfx.ResizeEntry)
}

type pointerListener struct {
	el canvasfx.Element
	fn func(canvasfx.PointerEvent)
}

// Game is an ebiten.Game hosting one Surface. It implements
// canvasfx.Window, canvasfx.PointerSource and canvasfx.FrameScheduler.
// Frame callbacks run in Update, once per tick.
type Game struct {
	cfg     Config
	surface *Surface

	dpr       float64
	minimized bool
	quit      bool

	visibility    hostkit.Listeners[func()]
	intersections hostkit.Listeners[*intersectionObserver]
	resizes       hostkit.Listeners[*resizeObserver]
	pointers      hostkit.Listeners[*pointerListener]
	frames        hostkit.FrameQueue

	cursorX, cursorY int
	cursorDown       bool
	cursorSeen       bool

	overlay *fpsOverlay
}

// New returns a game whose surface is laid out at the configured window
// size. The pixel ratio starts at 1 and follows the monitor once the game
// runs.
func New(cfg Config) *Game {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	g := &Game{
		cfg:     cfg,
		surface: newSurface(),
		dpr:     1,
	}
	g.surface.setRect(canvasfx.RectFromSize(0, 0, float64(cfg.Width), float64(cfg.Height)))
	if cfg.ShowFPS {
		g.overlay = newFPSOverlay(cfg.Counter)
	}
	return g
}

// Surface returns the window's drawing surface.
func (g *Game) Surface() *Surface { return g.surface }

// Host returns the canvasfx.Host wiring the surface into the game.
func (g *Game) Host() canvasfx.Host {
	return canvasfx.Host{Element: g.surface, Window: g, Context: g.surface, Scheduler: g, Pointer: g}
}

// Close ends the game at the next Update.
func (g *Game) Close() { g.quit = true }

// Run opens the window and blocks until it closes.
func (g *Game) Run() error {
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	canvasfx.Logger().Info("window opening", "title", g.cfg.Title, "width", g.cfg.Width, "height", g.cfg.Height)
	return ebiten.RunGame(g)
}

// --- ebiten.Game ---

// Update polls the window state, delivers pointer events and runs queued
// frame callbacks.
func (g *Game) Update() error {
	if g.quit || (g.cfg.QuitOnEscape && ebiten.IsKeyPressed(ebiten.KeyEscape)) {
		return ebiten.Termination
	}

	g.setMinimized(ebiten.IsWindowMinimized())
	g.setDPR(monitorScale())
	g.deliverIntersections()

	x, y := ebiten.CursorPosition()
	g.pollPointer(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

	g.frames.Run()
	if g.overlay != nil {
		g.overlay.update()
	}
	return nil
}

// Draw blits the surface to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if img := g.surface.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
	if g.overlay != nil {
		g.overlay.draw(screen)
	}
}

// Layout receives the window size in device-independent pixels, which is
// the surface's CSS size, and asks for a device-pixel screen so the
// backing store maps 1:1 onto it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	r := g.surface.BoundingClientRect()
	if float64(outsideWidth) != r.Width || float64(outsideHeight) != r.Height {
		g.surface.setRect(canvasfx.RectFromSize(0, 0, float64(outsideWidth), float64(outsideHeight)))
		g.notifyResize()
	}
	return canvasfx.BackingSize(float64(outsideWidth), float64(outsideHeight), g.dpr)
}

// --- canvasfx.Window ---

// DevicePixelRatio returns the monitor scale last seen.
func (g *Game) DevicePixelRatio() float64 { return g.dpr }

// DocumentHidden reports whether the window is minimized.
func (g *Game) DocumentHidden() bool { return g.minimized }

// OnVisibilityChange subscribes to minimize and restore.
func (g *Game) OnVisibilityChange(fn func()) func() {
	return g.visibility.Add(fn)
}

// ObserveIntersection subscribes to intersection changes. The surface
// fills the window, so it always intersects; the entry is delivered on the
// next Update.
func (g *Game) ObserveIntersection(el canvasfx.Element, _ canvasfx.IntersectionOptions, fn func([]canvasfx.IntersectionEntry)) func() {
	return g.intersections.Add(&intersectionObserver{el: el, fn: fn})
}

// ObserveResize subscribes to window size changes.
func (g *Game) ObserveResize(el canvasfx.Element, fn func([]canvasfx.ResizeEntry)) func() {
	return g.resizes.Add(&resizeObserver{el: el, fn: fn})
}

// --- canvasfx.PointerSource ---

// OnPointerMove subscribes to cursor movement in CSS pixels.
func (g *Game) OnPointerMove(el canvasfx.Element, fn func(canvasfx.PointerEvent)) func() {
	return g.pointers.Add(&pointerListener{el: el, fn: fn})
}

// --- canvasfx.FrameScheduler ---

// RequestFrame queues fn for the next Update.
func (g *Game) RequestFrame(fn func()) canvasfx.FrameToken { return g.frames.RequestFrame(fn) }

// CancelFrame drops a queued callback.
func (g *Game) CancelFrame(token canvasfx.FrameToken) { g.frames.CancelFrame(token) }

// --- polling ---

func (g *Game) setMinimized(v bool) {
	if v == g.minimized {
		return
	}
	g.minimized = v
	canvasfx.Logger().Debug("window visibility", "minimized", v)
	g.visibility.Each(func(fn func()) { fn() })
}

// setDPR records a monitor scale change. Moving between monitors re-lays
// out the surface at the same CSS size, so resize observers are notified.
func (g *Game) setDPR(dpr float64) {
	if dpr == g.dpr {
		return
	}
	g.dpr = dpr
	g.notifyResize()
}

func (g *Game) deliverIntersections() {
	g.intersections.Each(func(o *intersectionObserver) {
		if o.delivered {
			return
		}
		o.delivered = true
		o.fn([]canvasfx.IntersectionEntry{{
			Target:            o.el,
			IsIntersecting:    true,
			IntersectionRatio: 1,
			BoundingRect:      o.el.BoundingClientRect(),
		}})
	})
}

// pollPointer converts a cursor position in screen pixels, which are
// device pixels, to CSS pixels and delivers it when it changed.
func (g *Game) pollPointer(x, y int, pressed bool) {
	if g.cursorSeen && x == g.cursorX && y == g.cursorY && pressed == g.cursorDown {
		return
	}
	g.cursorSeen = true
	g.cursorX, g.cursorY, g.cursorDown = x, y, pressed
	ev := canvasfx.PointerEvent{X: float64(x) / g.dpr, Y: float64(y) / g.dpr, Pressed: pressed}
	g.pointers.Each(func(l *pointerListener) { l.fn(ev) })
}

func (g *Game) notifyResize() {
	r := g.surface.BoundingClientRect()
	g.resizes.Each(func(o *resizeObserver) {
		o.fn([]canvasfx.ResizeEntry{{
			Target:      o.el,
			ContentRect: canvasfx.RectFromSize(0, 0, r.Width, r.Height),
		}})
	})
}

func monitorScale() float64 {
	m := ebiten.Monitor()
	if m == nil {
		return 1
	}
	s := m.DeviceScaleFactor()
	if s <= 0 || math.IsNaN(s) {
		return 1
	}
	return s
}
