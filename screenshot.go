package canvasfx

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SavePNG writes the current contents of a readable context to path. No
// file is created when the context has nothing to read.
func SavePNG(path string, s Snapshotter) (err error) {
	img := s.Snapshot()
	if img == nil {
		return fmt.Errorf("snapshot %s: %w", path, ErrContextUnavailable)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// ScreenshotPath returns a timestamped PNG path in dir for label.
func ScreenshotPath(dir, label string, now time.Time) string {
	return filepath.Join(dir, now.Format("20060102_150405")+"_"+shotName(label)+".png")
}

// shotName keeps ASCII letters, digits, '-' and '.' and turns every other
// rune into '_'. Separators at either end are dropped; a label with
// nothing left becomes "shot".
func shotName(label string) string {
	name := strings.Map(func(r rune) rune {
		if r < 0x80 && (r == '-' || r == '.' || 'a' <= r|0x20 && r|0x20 <= 'z' || '0' <= r && r <= '9') {
			return r
		}
		return '_'
	}, label)
	name = strings.Trim(name, "_.")
	if name == "" {
		return "shot"
	}
	return name
}
