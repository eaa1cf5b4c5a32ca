package arbor

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a capture of the next frame drawn by Run, saved as
// ScreenshotDir/<timestamp>_<label>.png. Safe to call from the update
// callback or a script.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots captures screen once for all pending labels. Run calls
// it after everything else in the frame has been drawn.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	s.saveScreenshots(unpremultiply(pixels, b.Dx(), b.Dy()), time.Now())
}

// saveScreenshots writes frame once per pending label and empties the
// queue. Failures are logged and dropped so a bad directory cannot stall a
// script waiting for the queue to drain.
func (s *Scene) saveScreenshots(frame image.Image, at time.Time) {
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[arbor] screenshot: %v\n", err)
		return
	}
	stamp := at.Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		name := stamp + "_" + sanitizeLabel(label) + ".png"
		if err := writePNG(filepath.Join(s.ScreenshotDir, name), frame); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[arbor] screenshot: %v\n", err)
		}
	}
}

// unpremultiply turns premultiplied RGBA pixels, as read back from the GPU,
// into a straight-alpha image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pixels)
	for p := img.Pix; len(p) >= 4; p = p[4:] {
		a := int(p[3])
		if a == 0 || a == 255 {
			continue
		}
		for c := range 3 {
			p[c] = uint8(min(int(p[c])*255/a, 255))
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("arbor: screenshot %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("arbor: screenshot %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', maps everything else to
// '_', and names empty labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
