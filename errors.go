package canvasfx

import "errors"

var (
	// ErrSurfaceUnavailable reports a missing or unusable surface element.
	ErrSurfaceUnavailable = errors.New("canvasfx: surface unavailable")
	// ErrContextUnavailable reports that no 2D drawing context could be
	// created for a surface.
	ErrContextUnavailable = errors.New("canvasfx: 2d context unavailable")
	// ErrImageTooLarge reports an image whose pixel count exceeds the
	// configured sampling budget.
	ErrImageTooLarge = errors.New("canvasfx: image too large")
	// ErrSamplerBuild reports that an image could not be rasterized for
	// sampling.
	ErrSamplerBuild = errors.New("canvasfx: sampler build failed")
	// ErrNoCleanup reports a tracker configuration without a cleanup hook.
	ErrNoCleanup = errors.New("canvasfx: missing cleanup registrar")
	// ErrDriverState reports a driver operation invalid in its current state.
	ErrDriverState = errors.New("canvasfx: invalid driver state")
)
