package explorer

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// DefaultLogger writes "[prefix] LEVEL: message" lines. Debug and info go to
// out, warnings and errors to errOut.
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewWriterLogger(os.Stdout, os.Stderr, prefix, debug)
}

func NewWriterLogger(out, errOut io.Writer, prefix string, debug bool) *DefaultLogger {
	const flags = log.LstdFlags | log.Lmicroseconds
	l := &DefaultLogger{debug: debug, out: log.New(out, "", flags), err: log.New(errOut, "", flags)}
	if prefix != "" {
		l.prefix = "[" + prefix + "] "
	}
	return l
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = enabled
}

func (l *DefaultLogger) write(lv level, format string, args []any) {
	if lv == levelDebug && !l.DebugEnabled() {
		return
	}
	dst := l.out
	if lv >= levelWarn {
		dst = l.err
	}
	dst.Print(l.prefix + levelNames[lv] + ": " + fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.write(levelDebug, format, args) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.write(levelInfo, format, args) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.write(levelWarn, format, args) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.write(levelError, format, args) }

// LoggingModule installs a logger as a resource. A nil Logger installs a
// DefaultLogger with the given prefix.
type LoggingModule struct {
	Logger Logger
	Prefix string
	Debug  bool
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	logger := m.Logger
	if logger == nil {
		logger = NewDefaultLogger(m.Prefix, m.Debug)
	}
	cmd.AddResources(&loggerResource{Logger: logger})
}

type loggerResource struct {
	Logger
}

// nopLogger discards everything. Scenes built without a logger use it.
type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Logger returns the installed logger, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	if l, ok := Resource[loggerResource](app); ok && l.Logger != nil {
		return l.Logger
	}
	return NewNopLogger()
}
