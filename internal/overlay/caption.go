package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/phinze/lockshot/internal/frame"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// CaptionGap is the vertical space between a centered icon and its caption.
const CaptionGap = 16

// DefaultCaptionSize is the font size used when none is given.
const DefaultCaptionSize = 32

// ErrEmptyCaption is returned when asked to render blank text.
var ErrEmptyCaption = errors.New("overlay: empty caption")

// Caption is a line of text drawn on every monitor.
type Caption struct {
	Text  string
	Size  float64
	Color color.Color
}

// ParseColor parses a "#rrggbb" hex color.
func ParseColor(s string) (color.Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// RenderCaption draws the caption onto a transparent buffer just large
// enough to hold it.
func RenderCaption(c Caption) (*frame.Buffer, error) {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return nil, ErrEmptyCaption
	}

	size := c.Size
	if size <= 0 {
		size = DefaultCaptionSize
	}
	col := c.Color
	if col == nil {
		col = color.White
	}

	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse caption font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create caption face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	w := font.MeasureString(face, text).Ceil()
	h := (metrics.Ascent + metrics.Descent).Ceil()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %q measures %dx%d", ErrEmptyCaption, text, w, h)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	d.DrawString(text)

	return frame.FromImage(img), nil
}

// CaptionPosition returns the top-left corner for a caption of the given
// size on screen. It is centered horizontally; vertically it sits
// CaptionGap below icon when an icon box is given, otherwise it is
// centered on the monitor.
func CaptionPosition(screen image.Rectangle, size image.Point, icon *image.Rectangle) image.Point {
	x := screen.Dx()/2 - size.X/2 + screen.Min.X
	if icon != nil {
		return image.Pt(x, icon.Max.Y+CaptionGap)
	}
	return image.Pt(x, screen.Dy()/2-size.Y/2+screen.Min.Y)
}
