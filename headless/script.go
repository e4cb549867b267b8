package headless

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/phanxgames/canvasfx"
)

// Step is a single action in a render script.
type Step struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	DPR    float64 `json:"dpr,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// Script is the top-level JSON structure of a render script. Width, Height
// and DPR describe the initial layout.
type Script struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	DPR    float64 `json:"dpr,omitempty"`
	Steps  []Step  `json:"steps"`
}

// LoadScript parses a JSON render script.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse render script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse render script: no steps")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("parse render script: size %gx%g", s.Width, s.Height)
	}
	for i, st := range s.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse render script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &s, nil
}

func knownAction(a string) bool {
	switch a {
	case "frames", "wait", "move", "drag", "resize", "dpr",
		"hide", "show", "scroll-out", "scroll-in", "screenshot":
		return true
	}
	return false
}

// Runner plays a Script against a Host and Canvas, one frame at a time.
type Runner struct {
	Host   *Host
	Canvas *Canvas
	// Dir is where screenshots are written.
	Dir string
	// Now stamps screenshot file names. Nil means time.Now.
	Now func() time.Time

	steps     []Step
	cursor    int
	waitCount int
	pointer   []canvasfx.PointerEvent
	shots     []string
	done      bool
}

// NewRunner returns a runner for s.
func NewRunner(s *Script, h *Host, c *Canvas, dir string) *Runner {
	return &Runner{Host: h, Canvas: c, Dir: dir, steps: s.Steps}
}

// Done reports whether every step ran and every queued pointer event was
// delivered.
func (r *Runner) Done() bool { return r.done }

// Screenshots returns the paths written so far.
func (r *Runner) Screenshots() []string { return r.shots }

// Run steps until the script is done.
func (r *Runner) Run() error {
	for !r.done {
		if err := r.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step delivers one queued pointer event or executes the next step, then
// runs one host frame.
func (r *Runner) Step() error {
	if r.done {
		return nil
	}
	defer r.Host.RunFrame()

	if len(r.pointer) > 0 {
		ev := r.pointer[0]
		r.pointer = r.pointer[1:]
		r.Host.MovePointer(r.Canvas, ev.X, ev.Y, ev.Pressed)
		r.checkDone()
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++
	canvasfx.Logger().Debug("script step", "index", r.cursor-1, "action", st.Action)

	switch st.Action {
	case "frames", "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "move":
		r.Host.MovePointer(r.Canvas, st.X, st.Y, false)
	case "drag":
		r.queueDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "resize":
		r.Host.Resize(r.Canvas, st.Width, st.Height)
	case "dpr":
		r.Host.SetDPR(st.DPR)
	case "hide":
		r.Host.SetDocumentHidden(true)
	case "show":
		r.Host.SetDocumentHidden(false)
	case "scroll-out":
		r.Host.SetIntersecting(r.Canvas, false)
	case "scroll-in":
		r.Host.SetIntersecting(r.Canvas, true)
	case "screenshot":
		now := time.Now
		if r.Now != nil {
			now = r.Now
		}
		path := canvasfx.ScreenshotPath(r.Dir, fmt.Sprintf("%03d_%s", len(r.shots), st.Label), now())
		if err := canvasfx.SavePNG(path, r.Canvas); err != nil {
			return fmt.Errorf("step %d: %w", r.cursor-1, err)
		}
		r.shots = append(r.shots, path)
	}
	r.checkDone()
	return nil
}

// queueDrag queues a pressed pointer path from (fromX, fromY) to (toX, toY)
// delivered over frames frames, at least two.
func (r *Runner) queueDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := range frames {
		t := float64(i) / float64(frames-1)
		r.pointer = append(r.pointer, canvasfx.PointerEvent{
			X:       fromX + (toX-fromX)*t,
			Y:       fromY + (toY-fromY)*t,
			Pressed: true,
		})
	}
}

func (r *Runner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.pointer) == 0 {
		r.done = true
	}
}
