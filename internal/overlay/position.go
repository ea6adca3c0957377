package overlay

import "image"

// Placement is where an overlay goes on a monitor. The zero value centers
// it; an explicit placement uses signed coordinates where negative values
// count back from the far edge.
type Placement struct {
	Explicit bool
	X, Y     int
}

// Centered returns the default placement.
func Centered() Placement {
	return Placement{}
}

// At returns an explicit placement. Use -20 to mean "20 pixels from the
// right (or bottom) edge".
func At(x, y int) Placement {
	return Placement{Explicit: true, X: x, Y: y}
}

// WrapToScreen resolves a signed coordinate against span. Non-negative
// coordinates wrap modulo span; negative ones are measured back from span,
// with an exact multiple of span landing on 0.
func WrapToScreen(coord, span int) int {
	if span <= 0 {
		return 0
	}
	if coord < 0 {
		pos := (-coord) % span
		if pos == 0 {
			return 0
		}
		return span - pos
	}
	return coord % span
}

// Resolve returns the absolute top-left corner for an overlay of the given
// size on the monitor occupying screen. Explicit coordinates wrap against
// the monitor's far edge (origin plus dimension). Centered placement also
// reports whether the overlay is larger than the monitor; the corner is
// still returned and the overlay simply hangs off-screen.
func (p Placement) Resolve(screen image.Rectangle, size image.Point) (corner image.Point, oversize bool) {
	if p.Explicit {
		return image.Pt(
			WrapToScreen(p.X, screen.Max.X),
			WrapToScreen(p.Y, screen.Max.Y),
		), false
	}

	w, h := screen.Dx(), screen.Dy()
	oversize = size.X > w || size.Y > h
	return image.Pt(
		w/2-size.X/2+screen.Min.X,
		h/2-size.Y/2+screen.Min.Y,
	), oversize
}
