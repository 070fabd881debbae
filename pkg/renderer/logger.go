package renderer

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger on top of the standard log package.
// Printf is info level; Warnf goes to stderr and Debugf is dropped unless
// debug output is enabled.
type DefaultLogger struct {
	mu    sync.Mutex
	debug bool
	out   *log.Logger
	err   *log.Logger
}

var _ core.Logger = (*DefaultLogger)(nil)

// NewDefaultLogger creates a logger writing to stdout and stderr
func NewDefaultLogger() *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		out: log.New(os.Stdout, "", flags),
		err: log.New(os.Stderr, "", flags),
	}
}

// SetDebug toggles Debugf output
func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) Printf(format string, args ...interface{}) {
	l.out.Print(fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...interface{}) {
	l.err.Print("WARN: " + fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...interface{}) {
	l.mu.Lock()
	debug := l.debug
	l.mu.Unlock()
	if !debug {
		return
	}
	l.out.Print("DEBUG: " + fmt.Sprintf(format, args...))
}
