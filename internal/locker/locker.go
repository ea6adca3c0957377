// Package locker hands the finished frame to i3lock (or a compatible
// locker) over stdin.
package locker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/phinze/lockshot/internal/frame"
	"go.uber.org/zap"
)

// DefaultBinary is the locker started when none is configured.
const DefaultBinary = "i3lock"

// ForkGrace is how long to wait for a forking locker's parent process to
// exit before assuming it is running the lock screen itself.
const ForkGrace = 5 * time.Second

// ErrRenderHandoff is returned when the frame can't be delivered.
var ErrRenderHandoff = errors.New("locker: render handoff failed")

// Options configures the locker process.
type Options struct {
	// Binary is the locker executable; empty means DefaultBinary.
	Binary string

	// Args are passed through to the locker after lockshot's own arguments.
	Args []string
}

// ExitError reports a locker that exited unsuccessfully.
type ExitError struct {
	Code   int
	Signal syscall.Signal
}

func (e *ExitError) Error() string {
	if e.Signal != 0 {
		return fmt.Sprintf("locker killed by signal: %v", e.Signal)
	}
	return fmt.Sprintf("locker exited with status %d", e.Code)
}

// RawArg is the argument telling i3lock how to read the frame from stdin.
func RawArg(width, height int) string {
	return fmt.Sprintf("--raw=%dx%d:native", width, height)
}

// Command builds the locker command for buf without starting it.
func Command(buf *frame.Buffer, opts Options) *exec.Cmd {
	bin := opts.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	args := append([]string{"-i", "/dev/stdin", RawArg(buf.Width, buf.Height)}, opts.Args...)
	return exec.Command(bin, args...)
}

// NoFork reports whether the locker args ask it to stay in the foreground:
// either --nofork, or a short-flag group containing n (-n, -en, ...).
func NoFork(args []string) bool {
	for _, a := range args {
		if a == "--nofork" {
			return true
		}
	}
	for _, a := range args {
		if !strings.HasPrefix(a, "--") && strings.Contains(a, "n") {
			return true
		}
	}
	return false
}

// Locker starts the lock screen.
type Locker struct {
	opts  Options
	log   *zap.Logger
	grace time.Duration
}

// New creates a Locker.
func New(opts Options, log *zap.Logger) *Locker {
	return &Locker{opts: opts, log: log, grace: ForkGrace}
}

// Lock starts the locker and writes exactly len(buf.Pix) bytes to its
// stdin. With NoFork args it blocks until the screen is unlocked;
// otherwise it waits up to the fork grace period for the locker's parent
// process to exit and reports its status. Canceling ctx ends the wait
// with ctx.Err() and leaves the locker running.
func (l *Locker) Lock(ctx context.Context, buf *frame.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrRenderHandoff, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := Command(buf, l.opts)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRenderHandoff, err)
	}

	l.log.Debug("Calling locker", zap.String("path", cmd.Path), zap.Strings("args", cmd.Args[1:]))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: start %s: %w", ErrRenderHandoff, cmd.Path, err)
	}

	if _, err := stdin.Write(buf.Pix); err != nil {
		_ = stdin.Close()
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("%w: write frame: %w", ErrRenderHandoff, err)
	}
	if err := stdin.Close(); err != nil {
		l.log.Debug("Closing locker stdin", zap.Error(err))
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	// The lock screen is never killed on cancellation; lockshot just stops
	// waiting for it.
	var grace <-chan time.Time
	if NoFork(l.opts.Args) {
		l.log.Debug("Asked locker not to fork, waiting for exit")
	} else {
		grace = time.After(l.grace)
	}

	select {
	case err := <-done:
		return exitStatus(err)
	case <-grace:
		l.log.Debug("Locker still running, not waiting further")
		return nil
	case <-ctx.Done():
		l.log.Debug("Stopped waiting for locker", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

// exitStatus maps a Wait error onto ExitError.
func exitStatus(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return err
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return &ExitError{Signal: ws.Signal()}
	}
	return &ExitError{Code: exitErr.ExitCode()}
}
