package overlay

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ff8000", color.NRGBA{R: 255, G: 128, B: 0, A: 255}, false},
		{"00ff00", color.NRGBA{G: 255, A: 255}, false},
		{"#zzzzzz", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseColor(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderCaption(t *testing.T) {
	buf, err := RenderCaption(Caption{Text: "Locked", Size: 24, Color: color.NRGBA{R: 255, A: 255}})
	if err != nil {
		t.Fatalf("RenderCaption() error = %v", err)
	}
	if buf.Width <= 0 || buf.Height <= 0 {
		t.Fatalf("size = %dx%d, want non-empty", buf.Width, buf.Height)
	}

	var inked int
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := buf.At(x, y)
			if c.A == 0 {
				continue
			}
			inked++
			if c.G != 0 || c.B != 0 {
				t.Fatalf("At(%d,%d) = %v, want pure red ink", x, y, c)
			}
		}
	}
	if inked == 0 {
		t.Error("caption has no visible pixels")
	}
}

func TestRenderCaptionDefaultsAndEmpty(t *testing.T) {
	if _, err := RenderCaption(Caption{Text: "  "}); !errors.Is(err, ErrEmptyCaption) {
		t.Errorf("RenderCaption(blank) error = %v, want ErrEmptyCaption", err)
	}

	small, err := RenderCaption(Caption{Text: "x", Size: 10})
	if err != nil {
		t.Fatalf("RenderCaption() error = %v", err)
	}
	def, err := RenderCaption(Caption{Text: "x"})
	if err != nil {
		t.Fatalf("RenderCaption() error = %v", err)
	}
	if def.Height <= small.Height {
		t.Errorf("default size height %d should exceed size-10 height %d", def.Height, small.Height)
	}
}

func TestCaptionPosition(t *testing.T) {
	screen := image.Rect(100, 0, 300, 100)
	size := image.Pt(50, 10)

	if got := CaptionPosition(screen, size, nil); got != image.Pt(175, 45) {
		t.Errorf("centered = %v, want (175,45)", got)
	}

	icon := image.Rect(180, 30, 220, 70)
	if got := CaptionPosition(screen, size, &icon); got != image.Pt(175, 70+CaptionGap) {
		t.Errorf("below icon = %v, want (175,%d)", got, 70+CaptionGap)
	}
}
