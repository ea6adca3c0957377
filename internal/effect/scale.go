// Package effect implements the pixel effects lockshot applies to a
// screenshot: block scaling, box blur, and brightness adjustment.
package effect

import (
	"errors"
	"fmt"

	"github.com/phinze/lockshot/internal/frame"
)

var (
	// ErrInvalidDimension is returned when an effect would produce or
	// operate on an empty buffer.
	ErrInvalidDimension = errors.New("effect: invalid dimension")

	// ErrInvalidFactor is returned for a scale factor outside [1, 255].
	ErrInvalidFactor = errors.New("effect: invalid scale factor")
)

// MaxFactor is the largest accepted scale factor.
const MaxFactor = 255

func checkFactor(factor int) error {
	if factor < 1 || factor > MaxFactor {
		return fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}
	return nil
}

// ScaleDown shrinks src by factor, averaging each factor x factor block into
// one pixel. Rows and columns that don't fill a whole block are dropped.
// src is left untouched; the result is a fresh buffer.
func ScaleDown(src *frame.Buffer, factor int) (*frame.Buffer, error) {
	if err := checkFactor(factor); err != nil {
		return nil, err
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}

	w, h := src.Width/factor, src.Height/factor
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: %dx%d scaled down by %d is empty", ErrInvalidDimension, src.Width, src.Height, factor)
	}

	dst := frame.New(w, h)
	if factor == 1 {
		copy(dst.Pix, src.Pix)
		return dst, nil
	}

	area := uint32(factor * factor)
	half := area / 2
	stride := src.Stride()
	var sum [frame.BytesPerPixel]uint32

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum = [frame.BytesPerPixel]uint32{}
			base := src.Offset(x*factor, y*factor)
			for by := 0; by < factor; by++ {
				row := src.Pix[base+by*stride : base+by*stride+factor*frame.BytesPerPixel]
				for i := 0; i < len(row); i += frame.BytesPerPixel {
					sum[0] += uint32(row[i])
					sum[1] += uint32(row[i+1])
					sum[2] += uint32(row[i+2])
					sum[3] += uint32(row[i+3])
				}
			}
			o := dst.Offset(x, y)
			for c := range sum {
				dst.Pix[o+c] = uint8((sum[c] + half) / area)
			}
		}
	}

	return dst, nil
}

// ScaleUp grows src by factor, replicating each pixel into a factor x factor
// block. The result is a fresh buffer of src.Width*factor x src.Height*factor.
func ScaleUp(src *frame.Buffer, factor int) (*frame.Buffer, error) {
	if err := checkFactor(factor); err != nil {
		return nil, err
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if src.Empty() {
		return nil, fmt.Errorf("%w: cannot scale up an empty buffer", ErrInvalidDimension)
	}

	dst := frame.New(src.Width*factor, src.Height*factor)
	dstStride := dst.Stride()

	for y := 0; y < src.Height; y++ {
		// Expand one source row, then copy it into the remaining rows of the block.
		first := dst.Pix[y*factor*dstStride : (y*factor+1)*dstStride]
		srcRow := src.Pix[y*src.Stride() : (y+1)*src.Stride()]
		for x := 0; x < src.Width; x++ {
			px := srcRow[x*frame.BytesPerPixel : (x+1)*frame.BytesPerPixel]
			out := first[x*factor*frame.BytesPerPixel:]
			for i := 0; i < factor; i++ {
				copy(out[i*frame.BytesPerPixel:], px)
			}
		}
		for r := 1; r < factor; r++ {
			copy(dst.Pix[(y*factor+r)*dstStride:], first)
		}
	}

	return dst, nil
}
