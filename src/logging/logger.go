// Package logging is the small leveled logger shared by the renderer, the CLIs and the viewer.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var currentLevel int32 = int32(LevelInfo)

var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// SetLevel parses and sets the global log level. Unknown names are ignored and reported as false.
func SetLevel(s string) bool {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return false
	}
	atomic.StoreInt32(&currentLevel, int32(l))
	return true
}

// GetLevel returns the current global log level.
func GetLevel() Level { return Level(atomic.LoadInt32(&currentLevel)) }

// SetOutput redirects log output and returns a func restoring the previous destination.
func SetOutput(w io.Writer) (restore func()) {
	saved := baseLogger
	baseLogger = log.New(w, "", saved.Flags())
	return func() { baseLogger = saved }
}

func logf(l Level, component, format string, args ...interface{}) {
	if GetLevel() > l {
		return
	}
	msg := format
	// Only format when there are args so literal % in pre-formatted messages survives.
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if component != "" {
		baseLogger.Printf("[%s] %s: %s", l, component, msg)
		return
	}
	baseLogger.Printf("[%s] %s", l, msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, "", format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, "", format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, "", format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, "", format, a...) }

// Logger tags every line with a component name, e.g. "render" or "traces".
type Logger struct {
	component string
}

// For returns a Logger for the named component.
func For(component string) Logger { return Logger{component: component} }

func (g Logger) Debugf(format string, a ...interface{}) { logf(LevelDebug, g.component, format, a...) }
func (g Logger) Infof(format string, a ...interface{})  { logf(LevelInfo, g.component, format, a...) }
func (g Logger) Warnf(format string, a ...interface{})  { logf(LevelWarn, g.component, format, a...) }
func (g Logger) Errorf(format string, a ...interface{}) { logf(LevelError, g.component, format, a...) }

// TimeTrack logs how long a phase took at debug level. Use with defer.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
