package canvasfx

import (
	"image/color"
	"testing"
)

// --- ParticleEffect ---

func TestParticleEffectDefaults(t *testing.T) {
	e := NewParticleEffect(ParticleEffectConfig{Rand: testRand()})
	e.HandlePointer(PointerEvent{X: 10, Y: 20})
	if e.Len() != DefaultPointerBurst {
		t.Fatalf("Len = %d, want %d", e.Len(), DefaultPointerBurst)
	}
	p := e.Buffer().At(0)
	if p.X != 10 || p.Y != 20 {
		t.Errorf("spawn at (%v,%v), want (10,20)", p.X, p.Y)
	}
}

func TestParticleEffectPointerDisabled(t *testing.T) {
	e := NewParticleEffect(ParticleEffectConfig{PointerBurst: -1})
	e.HandlePointer(PointerEvent{})
	if e.Len() != 0 {
		t.Errorf("Len = %d, want 0", e.Len())
	}
}

func TestParticleEffectMaxParticles(t *testing.T) {
	e := NewParticleEffect(ParticleEffectConfig{PointerBurst: 30, MaxParticles: 40, Rand: testRand()})
	e.HandlePointer(PointerEvent{})
	e.HandlePointer(PointerEvent{})
	if e.Len() != 40 {
		t.Errorf("Len = %d, want cap 40", e.Len())
	}
	e.HandlePointer(PointerEvent{})
	if e.Len() != 40 {
		t.Errorf("Len = %d, want 40 after burst at cap", e.Len())
	}
	if n := e.SpawnAt(0, 0, 5); n != 0 {
		t.Errorf("SpawnAt at cap = %d, want 0", n)
	}
}

func TestParticleEffectFrame(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	e := NewParticleEffect(ParticleEffectConfig{PointerBurst: 4, Color: red, Rand: testRand()})
	e.HandlePointer(PointerEvent{X: 5, Y: 5})

	ctx := newFakeContext()
	state := &SurfaceState{DPR: 2, Rect: RectFromSize(0, 0, 50, 50)}
	e.Frame(ctx, state)

	if ctx.count("circle") != 4 {
		t.Fatalf("circles = %d, want 4", ctx.count("circle"))
	}
	for _, c := range ctx.calls {
		if c.matrix != ScaleMatrix(2, 0, 0) {
			t.Errorf("matrix = %+v, want DPR scale", c.matrix)
		}
		if c.color != color.Color(red) {
			t.Errorf("color = %v, want red", c.color)
		}
		assertNear(t, "x", c.x, 5)
	}
	// Drawn at the spawn point, then moved.
	if p := e.Buffer().At(0); p.X == 5 && p.Y == 5 {
		t.Error("particle should have moved after Frame")
	}
}

func TestParticleEffectFrameCulls(t *testing.T) {
	e := NewParticleEffect(ParticleEffectConfig{DecayRate: 100})
	e.Buffer().Push(Particle{Radius: 50})
	e.Frame(newFakeContext(), &SurfaceState{DPR: 1})
	if e.Len() != 0 {
		t.Errorf("Len = %d, want 0", e.Len())
	}
}

func TestParticleEffectPathSpawns(t *testing.T) {
	e := NewParticleEffect(ParticleEffectConfig{
		PointerBurst: -1,
		Path:         &CurvePath{PerFrame: 2},
		Rand:         testRand(),
	})
	ctx := newFakeContext()
	e.Frame(ctx, &SurfaceState{DPR: 1, Rect: RectFromSize(0, 0, 100, 100)})
	if ctx.count("circle") != 2 || e.Len() != 2 {
		t.Errorf("circles = %d, Len = %d; want 2, 2", ctx.count("circle"), e.Len())
	}
}

// --- ImageEffect ---

func newTestImageEffect(t *testing.T, cfg ImageEffectConfig) *ImageEffect {
	t.Helper()
	s, err := NewImageSampler(gradientImage(20, 10), SamplerOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rand == nil {
		cfg.Rand = testRand()
	}
	return NewImageEffect(s, cfg)
}

func TestImageEffectDefaults(t *testing.T) {
	e := newTestImageEffect(t, ImageEffectConfig{})
	if e.Len() != DefaultImageParticles || len(e.Particles()) != DefaultImageParticles {
		t.Errorf("Len = %d, want %d", e.Len(), DefaultImageParticles)
	}
	assertNear(t, "BrightnessAlpha", e.cfg.BrightnessAlpha, DefaultBrightnessAlpha)
}

func TestImageEffectFrame(t *testing.T) {
	e := newTestImageEffect(t, ImageEffectConfig{Count: 5})
	e.Fit(&SurfaceState{DPR: 2, Rect: RectFromSize(0, 0, 40, 40)})
	assertNear(t, "Scale", e.Sampler().Scale, 4)

	ctx := newFakeContext()
	e.Frame(ctx, nil)
	if ctx.count("circle") != 5 {
		t.Fatalf("circles = %d, want 5", ctx.count("circle"))
	}
	for i, c := range ctx.calls {
		p := e.Particles()[i]
		if c.matrix != e.Sampler().Transform() {
			t.Errorf("matrix = %+v, want sampler transform", c.matrix)
		}
		assertNear(t, "alpha", c.alpha, p.Brightness*DefaultBrightnessAlpha)
		if c.color != color.Color(e.Sampler().ColorAt(p.X, p.Y)) {
			t.Errorf("color = %v, want sampled color", c.color)
		}
	}
	assertNear(t, "reset alpha", ctx.alpha, 1)
}

func TestImageEffectAlphaCapped(t *testing.T) {
	e := newTestImageEffect(t, ImageEffectConfig{Count: 3, BrightnessAlpha: 10})
	ctx := newFakeContext()
	e.Frame(ctx, nil)
	for _, c := range ctx.calls {
		if c.alpha > 1 {
			t.Errorf("alpha = %v, want <= 1", c.alpha)
		}
	}
}

func TestImageEffectFadeIn(t *testing.T) {
	e := newTestImageEffect(t, ImageEffectConfig{Count: 1, FadeIn: 1, FrameTime: 0.5, BrightnessAlpha: 0.001})
	ctx := newFakeContext()
	e.Frame(ctx, nil)
	p := e.Particles()[0]
	// OutQuad at half time is 0.75.
	assertApprox(t, "alpha", ctx.calls[0].alpha, p.Brightness*0.001*0.75)

	ctx.calls = nil
	e.Frame(ctx, nil)
	p = e.Particles()[0]
	assertApprox(t, "alpha", ctx.calls[0].alpha, p.Brightness*0.001)
}
