package overlay

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="24" height="24">
<rect x="0" y="0" width="24" height="24" fill="#ff0000"/>
</svg>`

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	buf, err := Decode(bytes.NewReader(encodePNG(t, src)), 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if buf.Width != 3 || buf.Height != 2 {
		t.Fatalf("size = %dx%d, want 3x2", buf.Width, buf.Height)
	}
	if got := buf.At(2, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("At(2,1) = %v", got)
	}
}

func TestDecodeFitsSize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	buf, err := Decode(bytes.NewReader(encodePNG(t, src)), 10)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if buf.Width != 10 || buf.Height != 5 {
		t.Errorf("size = %dx%d, want 10x5", buf.Width, buf.Height)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not an image"), 0)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Decode() error = %v, want ErrDecode", err)
	}
}

func TestDecodeSVG(t *testing.T) {
	buf, err := DecodeSVG(strings.NewReader(squareSVG), 0)
	if err != nil {
		t.Fatalf("DecodeSVG() error = %v", err)
	}
	if buf.Width != 24 || buf.Height != 24 {
		t.Fatalf("size = %dx%d, want 24x24", buf.Width, buf.Height)
	}
	if got := buf.At(12, 12); got.R != 255 || got.A != 255 {
		t.Errorf("At(12,12) = %v, want opaque red", got)
	}
}

func TestDecodeSVGSized(t *testing.T) {
	buf, err := DecodeSVG(strings.NewReader(squareSVG), 64)
	if err != nil {
		t.Fatalf("DecodeSVG() error = %v", err)
	}
	if buf.Width != 64 || buf.Height != 64 {
		t.Errorf("size = %dx%d, want 64x64", buf.Width, buf.Height)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "icon.png")
	if err := os.WriteFile(pngPath, encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 4, 4))), 0o644); err != nil {
		t.Fatal(err)
	}
	// An SVG with the wrong extension is still detected by content.
	svgPath := filepath.Join(dir, "icon.img")
	if err := os.WriteFile(svgPath, []byte(squareSVG), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		w, h int
		err  error
	}{
		{"png", pngPath, 4, 4, nil},
		{"sniffed svg", svgPath, 24, 24, nil},
		{"missing", filepath.Join(dir, "nope.png"), 0, 0, ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Load(tt.path, 0)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("Load() error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if buf.Width != tt.w || buf.Height != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", buf.Width, buf.Height, tt.w, tt.h)
			}
		})
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, size   int
		wantW, wantH int
	}{
		{100, 50, 10, 10, 5},
		{50, 100, 10, 5, 10},
		{100, 1, 10, 10, 1},
		{0, 0, 8, 8, 8},
	}
	for _, tt := range tests {
		w, h := fitSize(tt.w, tt.h, tt.size)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fitSize(%d, %d, %d) = %d, %d, want %d, %d", tt.w, tt.h, tt.size, w, h, tt.wantW, tt.wantH)
		}
	}
}
