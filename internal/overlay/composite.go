// Package overlay places icons and captions on top of the distorted
// screenshot: decoding, placement math, and alpha compositing.
package overlay

import (
	"image"

	"github.com/phinze/lockshot/internal/frame"
)

// Composite blends icon onto dst with its top-left corner at at. Only the
// part of the icon that overlaps dst is touched; the rest is dropped.
//
// Normally the icon's color is painted using its alpha as weight. With
// invert set the icon acts as a mask: dst channels move toward their
// complement (255-c) by the icon's alpha and the icon's color is ignored.
// The destination alpha channel is never modified.
func Composite(dst, icon *frame.Buffer, at image.Point, invert bool) {
	area := icon.Bounds().Add(at).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}

	for y := area.Min.Y; y < area.Max.Y; y++ {
		d := dst.Pix[dst.Offset(area.Min.X, y):dst.Offset(area.Max.X, y)]
		s := icon.Pix[icon.Offset(area.Min.X-at.X, y-at.Y):]

		for i := 0; i < len(d); i += frame.BytesPerPixel {
			a := uint32(s[i+frame.A])
			switch {
			case a == 0:
				continue
			case invert:
				d[i+frame.B] = mix(d[i+frame.B], 0xff-d[i+frame.B], a)
				d[i+frame.G] = mix(d[i+frame.G], 0xff-d[i+frame.G], a)
				d[i+frame.R] = mix(d[i+frame.R], 0xff-d[i+frame.R], a)
			default:
				d[i+frame.B] = mix(d[i+frame.B], s[i+frame.B], a)
				d[i+frame.G] = mix(d[i+frame.G], s[i+frame.G], a)
				d[i+frame.R] = mix(d[i+frame.R], s[i+frame.R], a)
			}
		}
	}
}

// mix returns dst*(1-a) + src*a with a in [0, 255], rounded.
func mix(dst, src uint8, a uint32) uint8 {
	return uint8((uint32(dst)*(0xff-a) + uint32(src)*a + 0x7f) / 0xff)
}
