package effect

import (
	"image/color"
	"testing"

	"github.com/phinze/lockshot/internal/frame"
)

// solid returns a w x h buffer filled with c.
func solid(w, h int, c color.NRGBA) *frame.Buffer {
	b := frame.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, c)
		}
	}
	return b
}

func assertSize(t *testing.T, b *frame.Buffer, w, h int) {
	t.Helper()
	if b.Width != w || b.Height != h {
		t.Fatalf("size = %dx%d, want %dx%d", b.Width, b.Height, w, h)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}
