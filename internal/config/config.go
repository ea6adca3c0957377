// Package config parses lockshot's command line and environment into a
// pipeline configuration and locker options.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"

	"github.com/phinze/lockshot/internal/locker"
	"github.com/phinze/lockshot/internal/overlay"
	"github.com/phinze/lockshot/internal/pipeline"
)

// Environment variables read by Parse.
const (
	EnvLocker = "LOCKSHOT_LOCKER"
	EnvIcon   = "LOCKSHOT_ICON"
)

// ErrUsage is returned for invalid command lines.
var ErrUsage = errors.New("usage error")

// Options is the parsed command line.
type Options struct {
	Version bool
	Verbose bool

	Darken     uint8
	Brighten   uint8
	BlurRadius uint8
	Scale      uint8

	IgnoredMonitors []int
	Invert          bool
	Placement       overlay.Placement

	Icon     string
	IconSize int

	Text      string
	TextColor string
	TextSize  float64

	Locker locker.Options

	// Warnings holds non-fatal problems found while parsing.
	Warnings []string
}

// Parse reads args (without the program name). Everything after "--" is
// passed to the locker. getenv supplies environment defaults; pass
// os.Getenv in production.
func Parse(args []string, getenv func(string) string, output io.Writer) (*Options, error) {
	var lockerArgs []string
	if i := slices.Index(args, "--"); i >= 0 {
		lockerArgs = slices.Clone(args[i+1:])
		args = args[:i]
	}

	var (
		o                          Options
		dark, bright, blur, factor byteFlag
		ignore                     listFlag
		pos                        pointFlag
	)

	fs := flag.NewFlagSet("lockshot", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Distort a screenshot and run i3lock")
		fmt.Fprintln(fs.Output(), "\nUsage: lockshot [flags] [-- i3lock args...]")
		fs.PrintDefaults()
	}

	boolVar(fs, &o.Version, "Prints version information", "V", "version", "vers")
	boolVar(fs, &o.Verbose, "Print how long each step takes, among other things", "v", "verbose", "verb", "debug")
	valueVar(fs, &dark, "Darken the screenshot by [1, 255]. Example: 15", "darken", "dark")
	valueVar(fs, &bright, "Brighten the screenshot by [1, 255]. Example: 15", "brighten", "bright")
	valueVar(fs, &blur, "Blur strength. Example: 10", "b", "blur", "rad")
	valueVar(fs, &factor, "Scale factor. Increases blur strength by a factor of this. Example: 2", "p", "scale")
	valueVar(fs, &ignore, "Don't overlay an icon on these monitors. Must be comma separated. Example: 0,2", "ignore-monitors", "ignore")
	fs.BoolVar(&o.Invert, "invert", false, "Interpret the icon as a mask, inverting masked pixels on the screenshot")
	valueVar(fs, &pos, "Icon placement, \"x,y\" (from top-left), or \"-x,-y\" (from bottom-right). Example: 945,-20", "u", "position", "pos")
	stringVar(fs, &o.Icon, "Path to icon to overlay on screenshot", "i", "icon")
	fs.IntVar(&o.IconSize, "icon-size", 0, "Scale the icon so its longer side is this many pixels")
	fs.StringVar(&o.Text, "text", "", "Caption drawn on every monitor")
	fs.StringVar(&o.TextColor, "text-color", "#ffffff", "Caption color as #rrggbb")
	fs.Float64Var(&o.TextSize, "text-size", overlay.DefaultCaptionSize, "Caption font size in points")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q (pass locker arguments after --)", ErrUsage, fs.Arg(0))
	}

	if dark.set && bright.set {
		return nil, fmt.Errorf("%w: --darken conflicts with --brighten", ErrUsage)
	}
	if o.IconSize < 0 {
		return nil, fmt.Errorf("%w: --icon-size must not be negative", ErrUsage)
	}
	if o.TextSize <= 0 {
		return nil, fmt.Errorf("%w: --text-size must be positive", ErrUsage)
	}

	o.Darken, o.Brighten, o.BlurRadius, o.Scale = dark.v, bright.v, blur.v, factor.v
	o.IgnoredMonitors = ignore
	if pos.set {
		o.Placement = overlay.At(pos.x, pos.y)
	}

	if o.Icon == "" {
		o.Icon = getenv(EnvIcon)
	}
	o.Locker = locker.Options{
		Binary: getenv(EnvLocker),
		Args:   lockerArgs,
	}

	if o.Icon == "" && o.Invert {
		o.Warnings = append(o.Warnings, "--invert has no effect without --icon")
	}
	if o.Icon == "" && o.Text == "" {
		if pos.set {
			o.Warnings = append(o.Warnings, "--position has no effect without --icon or --text")
		}
		if len(ignore) > 0 {
			o.Warnings = append(o.Warnings, "--ignore-monitors has no effect without --icon or --text")
		}
	}

	return &o, nil
}

// Pipeline builds the pipeline configuration, decoding the icon and
// preparing the caption. Decode failures wrap overlay.ErrDecode.
func (o *Options) Pipeline() (pipeline.Config, error) {
	cfg := pipeline.Config{
		ScaleFactor:  int(o.Scale),
		BlurRadius:   o.BlurRadius,
		Brighten:     o.Brighten,
		Darken:       o.Darken,
		Invert:       o.Invert,
		Placement:    o.Placement,
		Capabilities: pipeline.AllCapabilities(),
	}

	if len(o.IgnoredMonitors) > 0 {
		cfg.IgnoredMonitors = make(map[int]struct{}, len(o.IgnoredMonitors))
		for _, i := range o.IgnoredMonitors {
			cfg.IgnoredMonitors[i] = struct{}{}
		}
	}

	if o.Icon != "" {
		icon, err := overlay.Load(o.Icon, o.IconSize)
		if err != nil {
			return pipeline.Config{}, fmt.Errorf("load icon %s: %w", o.Icon, err)
		}
		cfg.Icon = icon
	}

	if o.Text != "" {
		col, err := overlay.ParseColor(o.TextColor)
		if err != nil {
			return pipeline.Config{}, fmt.Errorf("%w: --text-color: %w", ErrUsage, err)
		}
		cfg.Caption = &overlay.Caption{Text: o.Text, Size: o.TextSize, Color: col}
	}

	return cfg, nil
}

func boolVar(fs *flag.FlagSet, p *bool, usage string, names ...string) {
	for _, n := range names {
		fs.BoolVar(p, n, false, usage)
	}
}

func stringVar(fs *flag.FlagSet, p *string, usage string, names ...string) {
	for _, n := range names {
		fs.StringVar(p, n, "", usage)
	}
}

func valueVar(fs *flag.FlagSet, v flag.Value, usage string, names ...string) {
	for _, n := range names {
		fs.Var(v, n, usage)
	}
}
