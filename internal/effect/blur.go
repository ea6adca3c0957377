package effect

import (
	"fmt"

	"github.com/phinze/lockshot/internal/frame"
)

// ClampRadius limits a blur radius to something the buffer can hold:
// max(1, min(radius, min(width, height)/2)).
func ClampRadius(radius, width, height int) int {
	limit := min(width, height) / 2
	return max(1, min(radius, limit))
}

// Blur applies a separable box blur in place: a horizontal pass over every
// row followed by a vertical pass over every column. Each pass keeps a
// running sum over a 2r+1 window, so cost doesn't grow with the radius.
// Samples beyond the border repeat the edge pixel.
func Blur(buf *frame.Buffer, radius int) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if buf.Empty() {
		return fmt.Errorf("%w: cannot blur an empty buffer", ErrInvalidDimension)
	}

	r := ClampRadius(radius, buf.Width, buf.Height)
	blurRows(buf, r)
	blurColumns(buf, r)
	return nil
}

// blurRows runs the horizontal pass. Each row is copied to a scratch line
// first so the window only ever reads unblurred values.
func blurRows(buf *frame.Buffer, r int) {
	const bpp = frame.BytesPerPixel
	w := buf.Width
	win := uint32(2*r + 1)
	half := win / 2
	line := make([]byte, buf.Stride())

	for y := 0; y < buf.Height; y++ {
		row := buf.Pix[y*buf.Stride() : (y+1)*buf.Stride()]
		copy(line, row)

		var sum [bpp]uint32
		for c := 0; c < bpp; c++ {
			sum[c] = uint32(r+1) * uint32(line[c])
		}
		for i := 1; i <= r; i++ {
			p := min(i, w-1) * bpp
			for c := 0; c < bpp; c++ {
				sum[c] += uint32(line[p+c])
			}
		}

		for x := 0; x < w; x++ {
			o := x * bpp
			add := min(x+r+1, w-1) * bpp
			sub := max(x-r, 0) * bpp
			for c := 0; c < bpp; c++ {
				row[o+c] = uint8((sum[c] + half) / win)
				sum[c] += uint32(line[add+c])
				sum[c] -= uint32(line[sub+c])
			}
		}
	}
}

// blurColumns runs the vertical pass with one running sum per byte column,
// walking rows top to bottom against a snapshot of the horizontal result.
func blurColumns(buf *frame.Buffer, r int) {
	h := buf.Height
	stride := buf.Stride()
	win := uint32(2*r + 1)
	half := win / 2

	src := make([]byte, len(buf.Pix))
	copy(src, buf.Pix)
	rowAt := func(y int) []byte {
		return src[y*stride : (y+1)*stride]
	}

	sums := make([]uint32, stride)
	first := rowAt(0)
	for k := range sums {
		sums[k] = uint32(r+1) * uint32(first[k])
	}
	for i := 1; i <= r; i++ {
		row := rowAt(min(i, h-1))
		for k := range sums {
			sums[k] += uint32(row[k])
		}
	}

	for y := 0; y < h; y++ {
		out := buf.Pix[y*stride : (y+1)*stride]
		add := rowAt(min(y+r+1, h-1))
		sub := rowAt(max(y-r, 0))
		for k := range sums {
			out[k] = uint8((sums[k] + half) / win)
			sums[k] += uint32(add[k])
			sums[k] -= uint32(sub[k])
		}
	}
}
