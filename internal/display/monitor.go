// Package display talks to the X server: it lists the monitors attached to
// the screen and captures the screen contents.
package display

import (
	"errors"
	"fmt"
	"image"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"go.uber.org/zap"
)

// ErrMonitorQuery is returned when monitors can't be enumerated.
var ErrMonitorQuery = errors.New("display: monitor query failed")

// Monitor describes one CRTC of the X screen.
type Monitor struct {
	Index  int
	Width  int
	Height int
	X, Y   int
	Active bool
}

// Bounds returns the monitor's rectangle in screen coordinates.
func (m Monitor) Bounds() image.Rectangle {
	return image.Rect(m.X, m.Y, m.X+m.Width, m.Y+m.Height)
}

// Enumerator lists monitors in a stable order.
type Enumerator interface {
	Monitors() ([]Monitor, error)
}

// Static is an Enumerator over a fixed list.
type Static []Monitor

// Monitors returns the list as-is.
func (s Static) Monitors() ([]Monitor, error) {
	return s, nil
}

// RandR enumerates monitors through the X RandR extension, one entry per
// CRTC in the order the server reports them. A CRTC with no mode set is
// reported as inactive.
type RandR struct {
	// Display is the X display name; empty uses $DISPLAY.
	Display string

	log *zap.Logger
}

// NewRandR creates a RandR enumerator for the given display.
func NewRandR(display string, log *zap.Logger) *RandR {
	return &RandR{Display: display, log: log}
}

// Monitors queries the X server.
func (r *RandR) Monitors() ([]Monitor, error) {
	conn, err := xgb.NewConnDisplay(r.Display)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to X: %w", ErrMonitorQuery, err)
	}
	defer conn.Close()

	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("%w: randr init: %w", ErrMonitorQuery, err)
	}

	root := xproto.Setup(conn).DefaultScreen(conn).Root
	res, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("%w: get screen resources: %w", ErrMonitorQuery, err)
	}

	monitors := r.fromCrtcs(res.Crtcs, func(crtc randr.Crtc) (*randr.GetCrtcInfoReply, error) {
		return randr.GetCrtcInfo(conn, crtc, res.ConfigTimestamp).Reply()
	})

	r.log.Debug("Enumerated monitors", zap.Int("count", len(monitors)))
	return monitors, nil
}

// fromCrtcs builds one Monitor per readable CRTC. Unreadable CRTCs are
// skipped and don't take an index.
func (r *RandR) fromCrtcs(crtcs []randr.Crtc, info func(randr.Crtc) (*randr.GetCrtcInfoReply, error)) []Monitor {
	monitors := make([]Monitor, 0, len(crtcs))
	for _, crtc := range crtcs {
		reply, err := info(crtc)
		if err != nil {
			r.log.Debug("Skipping CRTC", zap.Uint32("crtc", uint32(crtc)), zap.Error(err))
			continue
		}
		monitors = append(monitors, monitorFromCrtc(len(monitors), reply))
	}
	return monitors
}

func monitorFromCrtc(index int, info *randr.GetCrtcInfoReply) Monitor {
	return Monitor{
		Index:  index,
		Width:  int(info.Width),
		Height: int(info.Height),
		X:      int(info.X),
		Y:      int(info.Y),
		Active: info.Mode != 0,
	}
}
