// Package frame holds the pixel buffer that every stage of the lockshot
// pipeline reads and mutates.
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixel is the size of one B,G,R,A pixel.
const BytesPerPixel = 4

// Channel offsets within a pixel.
const (
	B = 0
	G = 1
	R = 2
	A = 3
)

// ErrSize is returned when a buffer's pixel slice doesn't match its dimensions.
var ErrSize = errors.New("frame: pixel data does not match dimensions")

// Buffer is a rectangular grid of BGRA pixels stored row-major with no
// padding between rows. This is the layout i3lock expects for --raw=...:native
// on little-endian X servers.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte
}

// New allocates a zeroed buffer of the given size.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// Validate checks the length invariant.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrSize)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrSize, b.Width, b.Height)
	}
	if want := b.Width * b.Height * BytesPerPixel; len(b.Pix) != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, have %d", ErrSize, b.Width, b.Height, want, len(b.Pix))
	}
	return nil
}

// Empty reports whether the buffer has no pixels.
func (b *Buffer) Empty() bool {
	return b == nil || b.Width == 0 || b.Height == 0
}

// Offset returns the index of the first byte of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * BytesPerPixel
}

// Stride returns the number of bytes in one row.
func (b *Buffer) Stride() int {
	return b.Width * BytesPerPixel
}

// Bounds returns the buffer's rectangle anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Bytes returns the raw pixel data. The slice is shared with the buffer.
func (b *Buffer) Bytes() []byte {
	return b.Pix
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// At returns the pixel at (x, y) as straight-alpha color.
func (b *Buffer) At(x, y int) color.NRGBA {
	i := b.Offset(x, y)
	return color.NRGBA{R: b.Pix[i+R], G: b.Pix[i+G], B: b.Pix[i+B], A: b.Pix[i+A]}
}

// Set writes the pixel at (x, y). Out-of-range coordinates are ignored.
func (b *Buffer) Set(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i := b.Offset(x, y)
	b.Pix[i+B] = c.B
	b.Pix[i+G] = c.G
	b.Pix[i+R] = c.R
	b.Pix[i+A] = c.A
}

// FromImage copies img into a new BGRA buffer with straight alpha.
func FromImage(img image.Image) *Buffer {
	r := img.Bounds()
	dst := New(r.Dx(), r.Dy())

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < dst.Height; y++ {
			row := src.Pix[src.PixOffset(r.Min.X, r.Min.Y+y):]
			out := dst.Pix[y*dst.Stride():]
			for x := 0; x < dst.Width; x++ {
				s := row[x*4 : x*4+4 : x*4+4]
				d := out[x*4 : x*4+4 : x*4+4]
				d[B], d[G], d[R], d[A] = s[2], s[1], s[0], s[3]
			}
		}
	case *image.RGBA:
		for y := 0; y < dst.Height; y++ {
			row := src.Pix[src.PixOffset(r.Min.X, r.Min.Y+y):]
			out := dst.Pix[y*dst.Stride():]
			for x := 0; x < dst.Width; x++ {
				s := row[x*4 : x*4+4 : x*4+4]
				d := out[x*4 : x*4+4 : x*4+4]
				d[B], d[G], d[R], d[A] = unpremultiply(s[2], s[3]), unpremultiply(s[1], s[3]), unpremultiply(s[0], s[3]), s[3]
			}
		}
	default:
		for y := 0; y < dst.Height; y++ {
			for x := 0; x < dst.Width; x++ {
				c := color.NRGBAModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
				dst.Set(x, y, c)
			}
		}
	}

	return dst
}

// unpremultiply converts a premultiplied channel back to straight alpha.
func unpremultiply(c, a uint8) uint8 {
	switch a {
	case 0xff:
		return c
	case 0:
		return 0
	}
	v := (uint32(c)*0xff + uint32(a)/2) / uint32(a)
	if v > 0xff {
		v = 0xff
	}
	return uint8(v)
}
