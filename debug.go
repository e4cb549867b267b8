package canvasfx

import "time"

// debugStats accumulates frame timing between two debug log lines. Only
// populated when DriverConfig.Debug is set.
type debugStats struct {
	resizeTime   time.Duration
	renderTime   time.Duration
	frames       int
	pausedFrames int
	particles    int
}

// log reports the averages over the accumulated frames.
func (s debugStats) log() {
	if s.frames == 0 {
		return
	}
	n := time.Duration(s.frames)
	Logger().Debug("frame stats",
		"frames", s.frames,
		"paused", s.pausedFrames,
		"resize_avg", s.resizeTime/n,
		"render_avg", s.renderTime/n,
		"particles", s.particles,
	)
}
