// Package pipeline runs the distortion stages over a captured screen in a
// fixed order: scale down, blur, scale up, brighten, darken, then icon and
// caption overlays per monitor.
package pipeline

import (
	"errors"
	"fmt"
	"image"

	"github.com/phinze/lockshot/internal/display"
	"github.com/phinze/lockshot/internal/effect"
	"github.com/phinze/lockshot/internal/frame"
	"github.com/phinze/lockshot/internal/logging"
	"github.com/phinze/lockshot/internal/overlay"
	"go.uber.org/zap"
)

// Pipeline applies a Config to screenshots.
type Pipeline struct {
	cfg      Config
	monitors display.Enumerator
	log      *zap.Logger
}

// New creates a pipeline. monitors is only queried when an icon or caption
// is configured.
func New(cfg Config, monitors display.Enumerator, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, monitors: monitors, log: log}
}

// Run transforms buf and returns the result, which may be a different
// buffer if scaling changed its size. On error nothing usable is returned
// and buf must not be handed to the locker.
func (p *Pipeline) Run(buf *frame.Buffer) (*frame.Buffer, error) {
	if err := p.cfg.Check(); err != nil {
		return nil, err
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	var err error
	if f := p.cfg.ScaleFactor; f > 0 {
		stop := logging.Timer(p.log, "Downscaling")
		buf, err = effect.ScaleDown(buf, f)
		stop()
		if err != nil {
			return nil, fmt.Errorf("scale down: %w", err)
		}
	}

	if r := p.cfg.BlurRadius; r > 0 {
		stop := logging.Timer(p.log, "Blurring")
		err = effect.Blur(buf, int(r))
		stop()
		if err != nil {
			return nil, fmt.Errorf("blur: %w", err)
		}
	}

	if f := p.cfg.ScaleFactor; f > 0 {
		stop := logging.Timer(p.log, "Upscaling")
		buf, err = effect.ScaleUp(buf, f)
		stop()
		if err != nil {
			return nil, fmt.Errorf("scale up: %w", err)
		}
	}

	if b := p.cfg.Brighten; b > 0 {
		stop := logging.Timer(p.log, "Brightening")
		effect.Brighten(buf, b)
		stop()
	}

	if d := p.cfg.Darken; d > 0 {
		stop := logging.Timer(p.log, "Darkening")
		effect.Darken(buf, d)
		stop()
	}

	if p.cfg.wantsOverlay() {
		if err := p.overlay(buf); err != nil {
			return nil, err
		}
	}

	return buf, nil
}

// overlay draws the icon and caption on every active, non-ignored monitor
// in enumeration order.
func (p *Pipeline) overlay(buf *frame.Buffer) error {
	if p.monitors == nil {
		return errors.New("overlay: no monitor enumerator configured")
	}
	monitors, err := p.monitors.Monitors()
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}

	var caption *frame.Buffer
	if p.cfg.Caption != nil {
		caption, err = overlay.RenderCaption(*p.cfg.Caption)
		if err != nil {
			return fmt.Errorf("caption: %w", err)
		}
	}

	for _, m := range monitors {
		if !m.Active || p.cfg.Ignored(m.Index) {
			continue
		}
		screen := m.Bounds()

		var iconBox *image.Rectangle
		if icon := p.cfg.Icon; icon != nil {
			corner, oversize := p.cfg.Placement.Resolve(screen, image.Pt(icon.Width, icon.Height))
			if oversize {
				p.log.Warn("Your image is larger than your monitor, image positions may be off!",
					zap.Int("monitor", m.Index))
			}
			p.log.Debug("Calculated image position on monitor",
				zap.Int("monitor", m.Index), zap.Int("x", corner.X), zap.Int("y", corner.Y))

			stop := logging.Timer(p.log, "Overlaying image")
			overlay.Composite(buf, icon, corner, p.cfg.Invert)
			stop()

			if !p.cfg.Placement.Explicit {
				box := icon.Bounds().Add(corner)
				iconBox = &box
			}
		}

		if caption != nil {
			at := overlay.CaptionPosition(screen, image.Pt(caption.Width, caption.Height), iconBox)
			stop := logging.Timer(p.log, "Drawing caption")
			overlay.Composite(buf, caption, at, false)
			stop()
		}
	}

	return nil
}
