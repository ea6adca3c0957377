package pipeline

import (
	"errors"
	"fmt"

	"github.com/phinze/lockshot/internal/frame"
	"github.com/phinze/lockshot/internal/overlay"
)

// ErrUnsupported is returned when a stage is requested that this build
// can't run.
var ErrUnsupported = errors.New("pipeline: unsupported operation")

// Capabilities lists the stages available to a pipeline.
type Capabilities struct {
	Scale      bool
	Blur       bool
	Brightness bool
	Overlay    bool
	Caption    bool
}

// AllCapabilities enables every stage.
func AllCapabilities() Capabilities {
	return Capabilities{
		Scale:      true,
		Blur:       true,
		Brightness: true,
		Overlay:    true,
		Caption:    true,
	}
}

// Config selects and parameterizes the pipeline stages. A zero value for a
// stage's parameter disables that stage.
type Config struct {
	ScaleFactor int
	BlurRadius  uint8
	Brighten    uint8
	Darken      uint8

	// Icon is the decoded overlay image, composited on every monitor.
	Icon      *frame.Buffer
	Invert    bool
	Placement overlay.Placement

	// Caption, when set, is drawn on every monitor after the icon.
	Caption *overlay.Caption

	// IgnoredMonitors holds monitor indexes that get no overlay.
	IgnoredMonitors map[int]struct{}

	Capabilities Capabilities
}

// Ignored reports whether monitor index i is excluded from overlays.
func (c Config) Ignored(i int) bool {
	_, ok := c.IgnoredMonitors[i]
	return ok
}

// wantsOverlay reports whether any per-monitor stage is enabled.
func (c Config) wantsOverlay() bool {
	return c.Icon != nil || c.Caption != nil
}

// Check verifies every requested stage is available.
func (c Config) Check() error {
	caps := c.Capabilities
	switch {
	case c.ScaleFactor > 0 && !caps.Scale:
		return fmt.Errorf("%w: scale", ErrUnsupported)
	case c.BlurRadius > 0 && !caps.Blur:
		return fmt.Errorf("%w: blur", ErrUnsupported)
	case (c.Brighten > 0 || c.Darken > 0) && !caps.Brightness:
		return fmt.Errorf("%w: brightness", ErrUnsupported)
	case c.Icon != nil && !caps.Overlay:
		return fmt.Errorf("%w: overlay", ErrUnsupported)
	case c.Caption != nil && !caps.Caption:
		return fmt.Errorf("%w: caption", ErrUnsupported)
	}
	return nil
}
