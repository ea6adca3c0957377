package overlay

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/phinze/lockshot/internal/frame"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when an overlay image can't be read.
var ErrDecode = errors.New("overlay: decode failed")

// Load reads the overlay image at path. SVG files are rasterized; anything
// else goes through the registered image decoders (PNG, JPEG, GIF, BMP,
// TIFF, WebP). If size is positive the image is scaled so its longer side
// is size pixels.
func Load(path string, size int) (*frame.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	if isSVG(path, r) {
		return DecodeSVG(r, size)
	}
	return Decode(r, size)
}

// Decode decodes a raster image into a BGRA buffer.
func Decode(r io.Reader, size int) (*frame.Buffer, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s image is empty", ErrDecode, format)
	}
	if size > 0 {
		img = fit(img, size)
	}
	return frame.FromImage(img), nil
}

// DecodeSVG rasterizes an SVG document. Without a size the icon is drawn at
// its viewBox dimensions.
func DecodeSVG(r io.Reader, size int) (*frame.Buffer, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse svg: %w", ErrDecode, err)
	}

	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if size > 0 {
		w, h = fitSize(w, h, size)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: svg has no usable size (%dx%d)", ErrDecode, w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	return frame.FromImage(img), nil
}

// isSVG checks the extension first, then sniffs the head of the stream.
func isSVG(path string, r *bufio.Reader) bool {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return true
	}
	head, _ := r.Peek(512)
	head = bytes.TrimSpace(head)
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

// fit scales img so its longer side is size, keeping the aspect ratio.
func fit(src image.Image, size int) image.Image {
	b := src.Bounds()
	w, h := fitSize(b.Dx(), b.Dy(), size)
	if w == b.Dx() && h == b.Dy() {
		return src
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func fitSize(w, h, size int) (int, int) {
	switch {
	case w <= 0 || h <= 0:
		return size, size
	case w >= h:
		return size, max(1, h*size/w)
	default:
		return max(1, w*size/h), size
	}
}
