package canvasfx

import (
	"fmt"
	"image"
)

// Host bundles the collaborators a mounted effect needs from its host.
// Pointer may be nil when the surface is not interactive.
type Host struct {
	Element   Element
	Window    Window
	Context   Context2D
	Scheduler FrameScheduler
	Pointer   PointerSource
}

func (h Host) validate() error {
	if h.Element == nil || h.Window == nil {
		return ErrSurfaceUnavailable
	}
	if h.Context == nil {
		return ErrContextUnavailable
	}
	if h.Scheduler == nil {
		return fmt.Errorf("%w: nil frame scheduler", ErrDriverState)
	}
	return nil
}

// Mount is a running effect: its tracker, its driver and the effect.
type Mount[E Effect] struct {
	Tracker *SurfaceTracker
	Driver  *Driver
	Effect  E
}

// MountParticles tracks h.Element, subscribes the effect to pointer
// movement and starts a driver, registering every release action with
// scope. On error nothing stays registered.
func MountParticles(scope *Scope, h Host, effect *ParticleEffect, cfg DriverConfig) (*Mount[*ParticleEffect], error) {
	return mount(scope, h, effect, cfg, TrackerConfig{}, func(t *SurfaceTracker, register func(func())) {
		if h.Pointer != nil {
			register(h.Pointer.OnPointerMove(h.Element, func(ev PointerEvent) {
				if !t.Closed() {
					effect.HandlePointer(ev)
				}
			}))
		}
	})
}

// MountImageEffect tracks h.Element, keeps the effect's contain fit in step
// with backing-store resizes and starts a driver.
func MountImageEffect(scope *Scope, h Host, effect *ImageEffect, cfg DriverConfig) (*Mount[*ImageEffect], error) {
	tc := TrackerConfig{
		OnResizeEnd: func(_ float64, state *SurfaceState) {
			effect.Fit(state)
		},
	}
	return mount(scope, h, effect, cfg, tc, func(t *SurfaceTracker, _ func(func())) {
		effect.Fit(t.State())
	})
}

// NewImageEffectFromImage builds a sampler for img and an effect over it.
func NewImageEffectFromImage(img image.Image, opts SamplerOptions, cfg ImageEffectConfig) (*ImageEffect, error) {
	s, err := NewImageSampler(img, opts)
	if err != nil {
		return nil, err
	}
	return NewImageEffect(s, cfg), nil
}

// mount builds tracker and driver inside a private scope, then hands the
// private scope to the caller's scope. A failure closes the private scope
// so no subscription outlives it.
func mount[E Effect](scope *Scope, h Host, effect E, cfg DriverConfig, tc TrackerConfig, setup func(*SurfaceTracker, func(func()))) (*Mount[E], error) {
	if scope == nil {
		return nil, ErrNoCleanup
	}
	if err := h.validate(); err != nil {
		Logger().Warn("mount failed", "err", err)
		return nil, err
	}

	local := NewScope()
	tc.OnCleanup = local.OnCleanup
	tracker, err := NewSurfaceTracker(h.Element, h.Window, tc)
	if err != nil {
		local.Close()
		Logger().Warn("mount failed", "err", err)
		return nil, err
	}
	setup(tracker, func(release func()) { local.OnCleanup(once(release)) })

	if cfg.Counter == nil {
		if c, ok := any(effect).(interface{ Len() int }); ok {
			cfg.Counter = c
		}
	}
	driver, err := NewDriver(h.Scheduler, tracker, h.Context, effect, cfg)
	if err != nil {
		local.Close()
		Logger().Warn("mount failed", "err", err)
		return nil, err
	}
	local.OnCleanup(driver.Close)
	if err := driver.Start(); err != nil {
		local.Close()
		return nil, err
	}

	scope.OnCleanup(local.Close)
	return &Mount[E]{Tracker: tracker, Driver: driver, Effect: effect}, nil
}
