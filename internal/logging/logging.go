// Package logging builds the zap loggers used by seatnorm commands.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel keeps command output free of log lines unless something is
// wrong.
const DefaultLevel = "warn"

// ErrInvalidLogLevel is returned for a level zap does not know.
var ErrInvalidLogLevel = errors.New("invalid log level")

// ParseLevel parses debug, info, warn or error (any case).
func ParseLevel(text string) (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(text)))
	if err != nil {
		return zapcore.InvalidLevel, fmt.Errorf("%w: %q (want debug|info|warn|error)", ErrInvalidLogLevel, text)
	}

	return level, nil
}

// New returns a console logger writing to w at the given level.
// Timestamps are omitted so output is stable across runs.
func New(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)

	return zap.New(core), nil
}
