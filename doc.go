// Package canvasfx renders real-time 2D particle animations onto a
// resizable, device-pixel-ratio-aware drawing surface.
//
// The package is host-agnostic. A host supplies the drawing surface
// ([Element]), its environment ([Window]), a drawing context ([Context2D])
// and a frame-pacing primitive ([FrameScheduler]). Three hosts ship with
// the module: ebitenhost (a desktop window via [Ebitengine]), termhost (a
// terminal via [tcell]) and headless (in memory, used by tests and the
// canvasfx-render tool).
//
// # Quick start
//
//	scope := canvasfx.NewScope()
//	defer scope.Close()
//
//	effect := canvasfx.NewParticleEffect(canvasfx.ParticleEffectConfig{})
//	_, err := canvasfx.MountParticles(scope, host, effect, canvasfx.DriverConfig{
//		FadeColor: color.White,
//		FadeAlpha: 0.2,
//	})
//
// # Surface tracking
//
// [SurfaceTracker] keeps a surface's backing store at round(cssSize*dpr)
// device pixels. Observer deliveries only record that something changed
// (and the new width and height); the bounding-box read and the backing
// store reallocation happen in [SurfaceTracker.ApplyPendingResize], which
// the [Driver] calls at the start of the next frame.
//
// # Particles
//
// [ParticleBuffer] holds generic particles that shrink every frame and are
// culled by swap-remove once their radius drops below [DeathThreshold].
// [ImageEffect] rains [ImageParticle] values over an image sampled once by
// [ImageSampler].
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
package canvasfx
