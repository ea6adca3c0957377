// Package logging builds the zap logger shared by lockshot's packages.
package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr. Verbose enables debug
// output, which includes per-stage timings.
func New(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = !verbose
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)

	return cfg.Build()
}

// Timer starts timing a step and returns a func that logs how long it took
// at debug level. Typical use:
//
//	defer logging.Timer(log, "Blurring")()
func Timer(log *zap.Logger, step string) func() {
	start := time.Now()
	return func() {
		log.Debug(step, zap.Duration("took", time.Since(start)))
	}
}
