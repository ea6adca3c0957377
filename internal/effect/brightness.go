package effect

import "github.com/phinze/lockshot/internal/frame"

// Brighten adds amount to the color channels of every pixel, saturating at
// 255. Alpha is left alone.
func Brighten(buf *frame.Buffer, amount uint8) {
	if amount == 0 {
		return
	}
	pix := buf.Pix
	for i := 0; i+frame.A < len(pix); i += frame.BytesPerPixel {
		pix[i+frame.B] = addSat(pix[i+frame.B], amount)
		pix[i+frame.G] = addSat(pix[i+frame.G], amount)
		pix[i+frame.R] = addSat(pix[i+frame.R], amount)
	}
}

// Darken subtracts amount from the color channels of every pixel,
// saturating at 0. Alpha is left alone.
//
// Brighten followed by Darken is not an identity once a channel saturates:
// 250 brightened by 10 is 255, which darkens back to 245.
func Darken(buf *frame.Buffer, amount uint8) {
	if amount == 0 {
		return
	}
	pix := buf.Pix
	for i := 0; i+frame.A < len(pix); i += frame.BytesPerPixel {
		pix[i+frame.B] = subSat(pix[i+frame.B], amount)
		pix[i+frame.G] = subSat(pix[i+frame.G], amount)
		pix[i+frame.R] = subSat(pix[i+frame.R], amount)
	}
}

func addSat(v, d uint8) uint8 {
	if s := v + d; s >= v {
		return s
	}
	return 0xff
}

func subSat(v, d uint8) uint8 {
	if v > d {
		return v - d
	}
	return 0
}
