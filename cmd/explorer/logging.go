package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/viraasat/explorer"
)

// zeroLogger adapts a zerolog.Logger to explorer.Logger.
type zeroLogger struct {
	mu  sync.Mutex
	log zerolog.Logger
}

func newZeroLogger(w io.Writer, scene string, debug bool) *zeroLogger {
	l := zerolog.New(w).With().Timestamp().Str("scene", scene).Logger()
	z := &zeroLogger{log: l}
	z.SetDebug(debug)
	return z
}

func (z *zeroLogger) DebugEnabled() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.log.GetLevel() <= zerolog.DebugLevel
}

func (z *zeroLogger) SetDebug(enabled bool) {
	z.mu.Lock()
	defer z.mu.Unlock()
	if enabled {
		z.log = z.log.Level(zerolog.DebugLevel)
	} else {
		z.log = z.log.Level(zerolog.InfoLevel)
	}
}

func (z *zeroLogger) logger() zerolog.Logger {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.log
}

func (z *zeroLogger) Debugf(format string, args ...any) {
	l := z.logger()
	l.Debug().Msgf(format, args...)
}

func (z *zeroLogger) Infof(format string, args ...any) {
	l := z.logger()
	l.Info().Msgf(format, args...)
}

func (z *zeroLogger) Warnf(format string, args ...any) {
	l := z.logger()
	l.Warn().Msgf(format, args...)
}

func (z *zeroLogger) Errorf(format string, args ...any) {
	l := z.logger()
	l.Error().Msgf(format, args...)
}

// buildLogger picks the logger for --log-format.
func buildLogger(format, scene string, debug bool, out io.Writer) (explorer.Logger, error) {
	switch format {
	case "", "text":
		return explorer.NewWriterLogger(out, os.Stderr, "explorer", debug), nil
	case "console":
		return newZeroLogger(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}, scene, debug), nil
	case "json":
		return newZeroLogger(out, scene, debug), nil
	}
	return nil, fmt.Errorf("unknown log format %q (text, console, json)", format)
}
