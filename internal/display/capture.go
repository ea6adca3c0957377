package display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/kbinani/screenshot"
	"github.com/phinze/lockshot/internal/frame"
	"go.uber.org/zap"
)

// ErrCapture is returned when the screen can't be captured.
var ErrCapture = errors.New("display: capture failed")

const (
	// MaxCaptureAttempts bounds the retry loop for a busy screen.
	MaxCaptureAttempts = 30

	// CaptureRetryInterval is roughly one frame at 30Hz.
	CaptureRetryInterval = 33 * time.Millisecond
)

// Capturer grabs the current screen contents.
type Capturer interface {
	Capture(ctx context.Context) (*frame.Buffer, error)
}

// Screen captures the whole X screen, covering every active display.
type Screen struct {
	log      *zap.Logger
	attempts int
	interval time.Duration

	// Overridable for tests.
	bounds func() (image.Rectangle, error)
	grab   func(image.Rectangle) (*image.RGBA, error)
}

// NewScreen creates a capturer backed by the system screenshot API.
func NewScreen(log *zap.Logger) *Screen {
	return &Screen{
		log:      log,
		attempts: MaxCaptureAttempts,
		interval: CaptureRetryInterval,
		bounds:   screenBounds,
		grab:     screenshot.CaptureRect,
	}
}

// Capture returns the screen as a BGRA buffer. Grab failures are retried
// every interval until the attempts run out or ctx is done.
func (s *Screen) Capture(ctx context.Context) (*frame.Buffer, error) {
	rect, err := s.bounds()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCapture, err)
	}

	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		img, err := s.grab(rect)
		if err == nil {
			return frame.FromImage(img), nil
		}
		lastErr = err
		s.log.Debug("Screen busy, retrying", zap.Int("attempt", attempt), zap.Error(err))

		if attempt == s.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrCapture, ctx.Err())
		case <-time.After(s.interval):
		}
	}

	return nil, fmt.Errorf("%w: gave up after %d attempts: %w", ErrCapture, s.attempts, lastErr)
}

// screenBounds returns the rectangle from the screen origin to the far
// corner of all active displays, so buffer coordinates match monitor
// coordinates.
func screenBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return image.Rectangle{}, errors.New("no active displays found")
	}

	var rect image.Rectangle
	for i := 0; i < n; i++ {
		rect = rect.Union(screenshot.GetDisplayBounds(i))
	}
	return image.Rect(0, 0, rect.Max.X, rect.Max.Y), nil
}
