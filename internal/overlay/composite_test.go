package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/phinze/lockshot/internal/frame"
)

func fill(w, h int, c color.NRGBA) *frame.Buffer {
	b := frame.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, c)
		}
	}
	return b
}

func TestCompositeAlpha(t *testing.T) {
	base := color.NRGBA{R: 100, G: 50, B: 200, A: 255}

	tests := []struct {
		name   string
		icon   color.NRGBA
		invert bool
		want   color.NRGBA
	}{
		{
			name: "opaque replaces",
			icon: color.NRGBA{R: 1, G: 2, B: 3, A: 255},
			want: color.NRGBA{R: 1, G: 2, B: 3, A: 255},
		},
		{
			name: "transparent keeps",
			icon: color.NRGBA{R: 1, G: 2, B: 3, A: 0},
			want: base,
		},
		{
			name: "half blends",
			icon: color.NRGBA{R: 200, G: 250, B: 0, A: 128},
			// (100*127 + 200*128 + 127)/255 = 150, (50*127+250*128+127)/255 = 150,
			// (200*127 + 0 + 127)/255 = 100
			want: color.NRGBA{R: 150, G: 150, B: 100, A: 255},
		},
		{
			name:   "invert opaque complements",
			icon:   color.NRGBA{R: 9, G: 9, B: 9, A: 255},
			invert: true,
			want:   color.NRGBA{R: 155, G: 205, B: 55, A: 255},
		},
		{
			name:   "invert transparent keeps",
			icon:   color.NRGBA{A: 0},
			invert: true,
			want:   base,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := fill(3, 3, base)
			Composite(dst, fill(1, 1, tt.icon), image.Pt(1, 1), tt.invert)

			if got := dst.At(1, 1); got != tt.want {
				t.Errorf("At(1,1) = %v, want %v", got, tt.want)
			}
			if got := dst.At(0, 0); got != base {
				t.Errorf("At(0,0) = %v, outside the icon should be unchanged", got)
			}
		})
	}
}

func TestCompositeInvertIgnoresIconColor(t *testing.T) {
	a := fill(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	b := fill(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	Composite(a, fill(1, 1, color.NRGBA{R: 0, G: 0, B: 0, A: 200}), image.Point{}, true)
	Composite(b, fill(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 200}), image.Point{}, true)

	if a.At(0, 0) != b.At(0, 0) {
		t.Errorf("invert result depends on icon color: %v vs %v", a.At(0, 0), b.At(0, 0))
	}
}

func TestCompositeClipsOffscreen(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	black := color.NRGBA{A: 255}

	tests := []struct {
		name    string
		at      image.Point
		touched []image.Point
	}{
		{"hangs off top left", image.Pt(-1, -1), []image.Point{{0, 0}}},
		{"hangs off bottom right", image.Pt(3, 3), []image.Point{{3, 3}}},
		{"fully off", image.Pt(10, 10), nil},
		{"fully off negative", image.Pt(-5, 0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := fill(4, 4, black)
			Composite(dst, fill(2, 2, red), tt.at, false)

			want := map[image.Point]bool{}
			for _, p := range tt.touched {
				want[p] = true
			}
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					got := dst.At(x, y)
					if want[image.Pt(x, y)] && got != red {
						t.Errorf("At(%d,%d) = %v, want red", x, y, got)
					}
					if !want[image.Pt(x, y)] && got != black {
						t.Errorf("At(%d,%d) = %v, want untouched", x, y, got)
					}
				}
			}
		})
	}
}

func TestCompositeKeepsDestinationAlpha(t *testing.T) {
	dst := fill(1, 1, color.NRGBA{R: 1, A: 17})
	Composite(dst, fill(1, 1, color.NRGBA{R: 200, A: 255}), image.Point{}, false)
	if got := dst.At(0, 0).A; got != 17 {
		t.Errorf("alpha = %d, want 17", got)
	}
}
