// Package cliutil holds setup shared by the canvasfx commands.
package cliutil

import (
	"io"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/phanxgames/canvasfx"
)

// SetupLogging routes canvasfx and gg logs to w as text. Debug records are
// included when verbose is set; otherwise only warnings and errors.
func SetupLogging(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	canvasfx.SetLogger(l)
	gg.SetLogger(l)
	return l
}

// CurveByName returns the spawn curve selected on the command line. Unknown
// names return nil.
func CurveByName(name string) func(float64) canvasfx.Vec2 {
	switch name {
	case "rose":
		return canvasfx.RoseCurve(canvasfx.DefaultRoseK)
	case "rose4":
		return canvasfx.RoseCurve(4)
	case "rose3":
		return canvasfx.RoseCurve(3)
	case "lissajous":
		return canvasfx.LissajousCurve(3, 2, 0)
	case "none", "":
		return nil
	}
	return nil
}
