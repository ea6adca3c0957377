package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/phinze/lockshot/internal/config"
	"github.com/phinze/lockshot/internal/locker"
	"github.com/phinze/lockshot/internal/overlay"
)

func TestVersionString(t *testing.T) {
	v := versionString()
	if !strings.HasPrefix(v, "lockshot ") {
		t.Errorf("versionString() = %q, want lockshot prefix", v)
	}
	if !strings.Contains(v, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("versionString() = %q, want target %s/%s", v, runtime.GOOS, runtime.GOARCH)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"usage", fmt.Errorf("%w: --text-color: bad", config.ErrUsage), 2},
		{"locker status", fmt.Errorf("lock: %w", &locker.ExitError{Code: 3}), 3},
		{"locker signal", &locker.ExitError{Signal: 15}, 1},
		{"other", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestBadTextColorIsUsageError(t *testing.T) {
	opts, err := config.Parse([]string{"--text", "hi", "--text-color", "nope"},
		func(string) string { return "" }, io.Discard)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	_, err = opts.Pipeline()
	if got := exitCode(err); got != 2 {
		t.Errorf("exitCode(%v) = %d, want 2", err, got)
	}
	if errors.Is(err, overlay.ErrDecode) {
		t.Errorf("error = %v, should not be a decode failure", err)
	}
}
