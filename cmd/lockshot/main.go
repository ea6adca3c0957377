package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/phinze/lockshot/internal/config"
	"github.com/phinze/lockshot/internal/display"
	"github.com/phinze/lockshot/internal/locker"
	"github.com/phinze/lockshot/internal/logging"
	"github.com/phinze/lockshot/internal/pipeline"
	"go.uber.org/zap"
)

func main() {
	opts, err := config.Parse(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if opts.Version {
		fmt.Fprintln(os.Stderr, versionString())
		return
	}

	log, err := logging.New(opts.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, log); err != nil {
		log.Error("lockshot failed", zap.Error(err))
		log.Sync()
		os.Exit(exitCode(err))
	}
}

// exitCode maps a run failure to the process exit status: 2 for usage
// errors, the locker's own status when it has one, 1 otherwise.
func exitCode(err error) int {
	if errors.Is(err, config.ErrUsage) {
		return 2
	}
	var exitErr *locker.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

// run captures, distorts, and locks. Nothing reaches the locker unless
// every stage succeeded.
func run(ctx context.Context, opts *config.Options, log *zap.Logger) error {
	log.Debug("Found args", zap.Any("options", opts))
	for _, w := range opts.Warnings {
		log.Warn(w)
	}

	// Decode the icon before capturing so a bad path fails fast.
	stopDecode := logging.Timer(log, "Decoding overlay image")
	cfg, err := opts.Pipeline()
	stopDecode()
	if err != nil {
		return err
	}

	stopCapture := logging.Timer(log, "Capturing screenshot")
	shot, err := display.NewScreen(log).Capture(ctx)
	stopCapture()
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, display.NewRandR(os.Getenv("DISPLAY"), log), log)
	out, err := p.Run(shot)
	if err != nil {
		return err
	}

	defer logging.Timer(log, "Handing off to locker")()
	return locker.New(opts.Locker, log).Lock(ctx, out)
}

// versionString describes the build: module version, target, and VCS
// revision when available.
func versionString() string {
	version, revision, modified := "(devel)", "unknown", ""
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" {
			version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				if s.Value == "true" {
					modified = "+dirty"
				}
			}
		}
	}
	return fmt.Sprintf("lockshot %s compiled for '%s/%s' with %s (%s%s)",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(), revision, modified)
}
